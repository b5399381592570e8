package docstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Memory is an in-process Store with Firestore-like query semantics.
type Memory struct {
	mu       sync.Mutex
	cols     map[string]map[string]map[string]any
	subs     map[*memSub]struct{}
	seq      int
	now      func() time.Time
	failures map[string]error
}

type memSub struct {
	q       Query
	fn      func()
	store   *Memory
	stopped bool
}

func (s *memSub) Stop() {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.stopped = true
	delete(s.store.subs, s)
}

func NewMemory() *Memory {
	return &Memory{
		cols:     map[string]map[string]map[string]any{},
		subs:     map[*memSub]struct{}{},
		now:      func() time.Time { return time.Now().UTC() },
		failures: map[string]error{},
	}
}

// SetClock replaces the clock used to resolve ServerTime.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// FailOn makes every later operation on collection return err; nil clears it.
func (m *Memory) FailOn(collection string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, collection)
		return
	}
	m.failures[collection] = err
}

// Put writes a document under a fixed id without notifying subscribers.
func (m *Memory) Put(collection, id string, fields map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.col(collection)[id] = m.normalize(fields)
}

// Len reports the number of documents in collection.
func (m *Memory) Len(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cols[collection])
}

// Subscribers reports how many subscriptions are still active.
func (m *Memory) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

func (m *Memory) Get(ctx context.Context, collection, id string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(collection); err != nil {
		return nil, err
	}
	doc, ok := m.cols[collection][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	return &Record{ID: id, Data: cloneMap(doc)}, nil
}

func (m *Memory) Query(ctx context.Context, q Query) ([]Record, error) {
	for _, f := range q.Filters {
		if !validOp(f.Op) {
			return nil, fmt.Errorf("%w: operator %q", ErrBadQuery, f.Op)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(q.Collection); err != nil {
		return nil, err
	}

	out := []Record{}
	for id, doc := range m.cols[q.Collection] {
		if !matches(q, doc) {
			continue
		}
		// Firestore drops documents that lack the ordering field
		if q.OrderField != "" {
			if _, ok := doc[q.OrderField]; !ok {
				continue
			}
		}
		out = append(out, Record{ID: id, Data: cloneMap(doc)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if q.OrderField != "" {
			c := compare(out[i].Data[q.OrderField], out[j].Data[q.OrderField])
			if c != 0 {
				if q.OrderDir == Desc {
					return c > 0
				}
				return c < 0
			}
		}
		return out[i].ID < out[j].ID
	})

	if q.Max > 0 && len(out) > q.Max {
		out = out[:q.Max]
	}
	return out, nil
}

func (m *Memory) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	m.mu.Lock()
	if err := m.failure(collection); err != nil {
		m.mu.Unlock()
		return "", err
	}
	id := m.nextID()
	doc := m.normalize(fields)
	m.col(collection)[id] = doc
	notify := m.affected(collection, nil, doc)
	m.mu.Unlock()

	fire(notify)
	return id, nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	if err := m.failure(collection); err != nil {
		m.mu.Unlock()
		return err
	}
	old, doc := m.merge(collection, id, fields)
	notify := m.affected(collection, old, doc)
	m.mu.Unlock()

	fire(notify)
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	if err := m.failure(collection); err != nil {
		m.mu.Unlock()
		return err
	}
	old := m.cols[collection][id]
	delete(m.cols[collection], id)
	notify := m.affected(collection, old, nil)
	m.mu.Unlock()

	fire(notify)
	return nil
}

func (m *Memory) Increment(ctx context.Context, collection, id, field string, delta int64) error {
	m.mu.Lock()
	if err := m.failure(collection); err != nil {
		m.mu.Unlock()
		return err
	}
	doc, ok := m.cols[collection][id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	old := cloneMap(doc)
	switch v := doc[field].(type) {
	case int64:
		doc[field] = v + delta
	case float64:
		doc[field] = v + float64(delta)
	default:
		doc[field] = delta
	}
	notify := m.affected(collection, old, doc)
	m.mu.Unlock()

	fire(notify)
	return nil
}

func (m *Memory) Batch(ctx context.Context, ops []Op) error {
	if len(ops) > MaxBatchOps {
		return fmt.Errorf("%w: %d ops exceeds batch limit", ErrBadQuery, len(ops))
	}

	m.mu.Lock()
	for _, op := range ops {
		if err := m.failure(op.Collection); err != nil {
			m.mu.Unlock()
			return err
		}
		if op.Kind != OpAdd && op.Kind != OpUpdate && op.Kind != OpDelete {
			m.mu.Unlock()
			return fmt.Errorf("%w: unknown op kind %d", ErrBadQuery, op.Kind)
		}
	}

	var notify []func()
	for _, op := range ops {
		switch op.Kind {
		case OpAdd:
			doc := m.normalize(op.Fields)
			m.col(op.Collection)[m.nextID()] = doc
			notify = append(notify, m.affected(op.Collection, nil, doc)...)
		case OpUpdate:
			old, doc := m.merge(op.Collection, op.ID, op.Fields)
			notify = append(notify, m.affected(op.Collection, old, doc)...)
		case OpDelete:
			old := m.cols[op.Collection][op.ID]
			delete(m.cols[op.Collection], op.ID)
			notify = append(notify, m.affected(op.Collection, old, nil)...)
		}
	}
	m.mu.Unlock()

	fire(notify)
	return nil
}

func (m *Memory) Subscribe(ctx context.Context, q Query, onChange func()) (Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(q.Collection); err != nil {
		return nil, err
	}
	s := &memSub{q: q, fn: onChange, store: m}
	m.subs[s] = struct{}{}
	return s, nil
}

func (m *Memory) col(name string) map[string]map[string]any {
	c, ok := m.cols[name]
	if !ok {
		c = map[string]map[string]any{}
		m.cols[name] = c
	}
	return c
}

func (m *Memory) failure(collection string) error {
	return m.failures[collection]
}

func (m *Memory) nextID() string {
	m.seq++
	return "doc" + strconv.Itoa(m.seq)
}

func (m *Memory) merge(collection, id string, fields map[string]any) (old, doc map[string]any) {
	c := m.col(collection)
	cur, ok := c[id]
	if ok {
		old = cloneMap(cur)
	} else {
		cur = map[string]any{}
	}
	for k, v := range m.normalize(fields) {
		cur[k] = v
	}
	c[id] = cur
	return old, cur
}

// affected collects callbacks of live subscriptions that match either side
// of a write. Callers run them after releasing the lock.
func (m *Memory) affected(collection string, before, after map[string]any) []func() {
	var out []func()
	for s := range m.subs {
		if s.stopped || s.q.Collection != collection {
			continue
		}
		if (before != nil && matches(s.q, before)) || (after != nil && matches(s.q, after)) {
			out = append(out, s.fn)
		}
	}
	return out
}

func fire(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

func (m *Memory) normalize(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = m.normalizeValue(v)
	}
	return out
}

func (m *Memory) normalizeValue(v any) any {
	switch x := v.(type) {
	case serverTime:
		return m.now()
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = m.normalizeValue(e)
		}
		return out
	case map[string]any:
		return m.normalize(x)
	case time.Time:
		return x.UTC()
	}
	return v
}

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneMap(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}

func matches(q Query, doc map[string]any) bool {
	for _, f := range q.Filters {
		v, ok := doc[f.Field]
		if !ok {
			return false
		}
		switch f.Op {
		case "==":
			if !equal(v, f.Value) {
				return false
			}
		case "array-contains":
			if !contains(v, f.Value) {
				return false
			}
		case "in":
			if !contains(f.Value, v) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func contains(list, v any) bool {
	rv := reflect.ValueOf(list)
	if rv.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if equal(rv.Index(i).Interface(), v) {
			return true
		}
	}
	return false
}

func equal(a, b any) bool {
	if fa, ok := number(a); ok {
		fb, ok := number(b)
		return ok && fa == fb
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}

func compare(a, b any) int {
	if fa, ok := number(a); ok {
		if fb, ok := number(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			switch {
			case sa < sb:
				return -1
			case sa > sb:
				return 1
			}
		}
	}
	return 0
}
