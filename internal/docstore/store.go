package docstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("document not found")
	ErrBadQuery = errors.New("bad query")
)

func IsErrNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// serverTime marks a field that the backend fills with its own clock on write.
type serverTime struct{}

// ServerTime is the write-side placeholder for a server assigned timestamp.
var ServerTime = serverTime{}

// Store is the document-store capability the profile pages are built on.
// Firestore backs it in production; Memory backs tests and local runs.
type Store interface {
	Get(ctx context.Context, collection, id string) (*Record, error)
	Query(ctx context.Context, q Query) ([]Record, error)
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Increment(ctx context.Context, collection, id, field string, delta int64) error
	// Batch applies every op or none of them.
	Batch(ctx context.Context, ops []Op) error
	// Subscribe calls onChange whenever a document matching q is written.
	// The returned handle must be stopped by the caller.
	Subscribe(ctx context.Context, q Query, onChange func()) (Subscription, error)
}

type Subscription interface {
	Stop()
}

// MaxBatchOps mirrors the Firestore limit on writes per commit.
const MaxBatchOps = 500

type OpKind int

const (
	OpAdd OpKind = iota
	OpUpdate
	OpDelete
)

type Op struct {
	Kind       OpKind
	Collection string
	ID         string
	Fields     map[string]any
}

func AddOp(collection string, fields map[string]any) Op {
	return Op{Kind: OpAdd, Collection: collection, Fields: fields}
}

func UpdateOp(collection, id string, fields map[string]any) Op {
	return Op{Kind: OpUpdate, Collection: collection, ID: id, Fields: fields}
}

func DeleteOp(collection, id string) Op {
	return Op{Kind: OpDelete, Collection: collection, ID: id}
}

type Direction int

const (
	Asc Direction = iota
	Desc
)

type Filter struct {
	Field string
	Op    string // "==", "array-contains", "in"
	Value any
}

// Query is an immutable query description; builder methods return copies.
type Query struct {
	Collection string
	Filters    []Filter
	OrderField string
	OrderDir   Direction
	Max        int
}

func Collection(name string) Query {
	return Query{Collection: name}
}

func (q Query) Where(field, op string, value any) Query {
	fs := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(fs, q.Filters)
	q.Filters = append(fs, Filter{Field: field, Op: op, Value: value})
	return q
}

func (q Query) OrderBy(field string, dir Direction) Query {
	q.OrderField = field
	q.OrderDir = dir
	return q
}

func (q Query) Limit(n int) Query {
	q.Max = n
	return q
}

func validOp(op string) bool {
	switch op {
	case "==", "array-contains", "in":
		return true
	}
	return false
}

var (
	_ Store = (*Firestore)(nil)
	_ Store = (*Memory)(nil)
)
