package docstore

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Firestore struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

func (f *Firestore) Get(ctx context.Context, collection, id string) (*Record, error) {
	snap, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
		}
		return nil, err
	}
	if !snap.Exists() {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	return &Record{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (f *Firestore) Query(ctx context.Context, q Query) ([]Record, error) {
	fq, err := f.build(q)
	if err != nil {
		return nil, err
	}

	it := fq.Documents(ctx)
	defer it.Stop()

	out := []Record{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", q.Collection, err)
		}
		out = append(out, Record{ID: doc.Ref.ID, Data: doc.Data()})
	}
	return out, nil
}

func (f *Firestore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	ref, _, err := f.client.Collection(collection).Add(ctx, resolve(fields))
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (f *Firestore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	_, err := f.client.Collection(collection).Doc(id).Set(ctx, resolve(fields), firestore.MergeAll)
	return err
}

func (f *Firestore) Delete(ctx context.Context, collection, id string) error {
	_, err := f.client.Collection(collection).Doc(id).Delete(ctx)
	return err
}

func (f *Firestore) Increment(ctx context.Context, collection, id, field string, delta int64) error {
	_, err := f.client.Collection(collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.Increment(delta)},
	})
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	return err
}

func (f *Firestore) Batch(ctx context.Context, ops []Op) error {
	if len(ops) == 0 {
		return nil
	}
	if len(ops) > MaxBatchOps {
		return fmt.Errorf("%w: %d ops exceeds batch limit", ErrBadQuery, len(ops))
	}

	batch := f.client.Batch()
	for _, op := range ops {
		col := f.client.Collection(op.Collection)
		switch op.Kind {
		case OpAdd:
			batch.Create(col.NewDoc(), resolve(op.Fields))
		case OpUpdate:
			batch.Set(col.Doc(op.ID), resolve(op.Fields), firestore.MergeAll)
		case OpDelete:
			batch.Delete(col.Doc(op.ID))
		default:
			return fmt.Errorf("%w: unknown op kind %d", ErrBadQuery, op.Kind)
		}
	}
	_, err := batch.Commit(ctx)
	return err
}

func (f *Firestore) Subscribe(ctx context.Context, q Query, onChange func()) (Subscription, error) {
	fq, err := f.build(q)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	it := fq.Snapshots(ctx)

	go func() {
		defer it.Stop()
		initial := true
		for {
			_, err := it.Next()
			if err != nil {
				if ctx.Err() == nil && status.Code(err) != codes.Canceled {
					log.Printf("[docstore] listener on %s stopped: %v", q.Collection, err)
				}
				return
			}
			// the first snapshot is the current state, not a change
			if initial {
				initial = false
				continue
			}
			onChange()
		}
	}()

	return cancelSub(cancel), nil
}

func (f *Firestore) build(q Query) (firestore.Query, error) {
	fq := f.client.Collection(q.Collection).Query
	for _, flt := range q.Filters {
		if !validOp(flt.Op) {
			return fq, fmt.Errorf("%w: operator %q", ErrBadQuery, flt.Op)
		}
		fq = fq.Where(flt.Field, flt.Op, flt.Value)
	}
	if q.OrderField != "" {
		dir := firestore.Asc
		if q.OrderDir == Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderField, dir)
	}
	if q.Max > 0 {
		fq = fq.Limit(q.Max)
	}
	return fq, nil
}

type cancelSub context.CancelFunc

func (c cancelSub) Stop() { c() }

// resolve swaps ServerTime placeholders for the Firestore sentinel.
func resolve(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		switch x := v.(type) {
		case serverTime:
			out[k] = firestore.ServerTimestamp
		case map[string]any:
			out[k] = resolve(x)
		default:
			out[k] = v
		}
	}
	return out
}
