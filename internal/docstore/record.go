package docstore

import (
	"time"
)

// Record is a document snapshot: its id plus the raw field map.
type Record struct {
	ID   string
	Data map[string]any
}

func (r Record) String(key string) string {
	s, _ := r.Data[key].(string)
	return s
}

func (r Record) Bool(key string) bool {
	b, _ := r.Data[key].(bool)
	return b
}

// Float reads any numeric field as float64.
func (r Record) Float(key string) float64 {
	f, _ := number(r.Data[key])
	return f
}

// FloatPtr is Float for nullable fields: nil when absent or not a number.
func (r Record) FloatPtr(key string) *float64 {
	f, ok := number(r.Data[key])
	if !ok {
		return nil
	}
	return &f
}

func (r Record) Int(key string) int64 {
	switch v := r.Data[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// Time returns the zero time when the field is missing or not a timestamp.
func (r Record) Time(key string) time.Time {
	switch v := r.Data[key].(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	}
	return time.Time{}
}

func (r Record) Strings(key string) []string {
	switch v := r.Data[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, x := range v {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func (r Record) Map(key string) map[string]any {
	m, _ := r.Data[key].(map[string]any)
	return m
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}
