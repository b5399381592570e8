package gifts

import (
	"math"
	"sort"
	"time"

	"sewalink/backend/internal/docstore"
)

const ColGifts = "gifts"

// Direction is relative to the profile being viewed.
type Direction string

const (
	Sent     Direction = "sent"
	Received Direction = "received"
)

type Gift struct {
	ID           string    `json:"id"`
	SenderID     string    `json:"senderId"`
	SenderName   string    `json:"senderName"`
	ReceiverID   string    `json:"receiverId"`
	ReceiverName string    `json:"receiverName"`
	Amount       float64   `json:"amount"`
	Message      string    `json:"message,omitempty"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"createdAt"`
	Direction    Direction `json:"direction"`
}

func FromRecord(r docstore.Record, dir Direction) Gift {
	amount := r.Float("amount")
	if amount < 0 || math.IsNaN(amount) {
		amount = 0
	}
	typ := r.String("type")
	if typ == "" {
		typ = "general"
	}
	return Gift{
		ID:           r.ID,
		SenderID:     r.String("senderId"),
		SenderName:   r.String("senderName"),
		ReceiverID:   r.String("receiverId"),
		ReceiverName: r.String("receiverName"),
		Amount:       amount,
		Message:      r.String("message"),
		Type:         typ,
		CreatedAt:    r.Time("createdAt"),
		Direction:    dir,
	}
}

// Totals sums gift amounts as stored; coins may be fractional.
type Totals struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// Aggregate is shared through the cache and must be treated as read-only.
type Aggregate struct {
	Sent     Totals `json:"sent"`
	Received Totals `json:"received"`
	All      []Gift `json:"all"`
}

// Empty is the aggregate of a user with no gifts.
func Empty() *Aggregate {
	return &Aggregate{All: []Gift{}}
}

// Filter values accepted by Aggregate.Filter.
const (
	FilterAll      = "all"
	FilterSent     = string(Sent)
	FilterReceived = string(Received)
)

func ValidFilter(f string) bool {
	return f == FilterAll || f == FilterSent || f == FilterReceived
}

// Filter returns the gifts in one direction; any other value returns all of them.
func (a *Aggregate) Filter(f string) []Gift {
	if a == nil {
		return nil
	}
	if f != FilterSent && f != FilterReceived {
		return a.All
	}
	out := make([]Gift, 0, len(a.All))
	for _, g := range a.All {
		if string(g.Direction) == f {
			out = append(out, g)
		}
	}
	return out
}

func build(sent, received []docstore.Record) *Aggregate {
	agg := &Aggregate{All: make([]Gift, 0, len(sent)+len(received))}
	for _, rec := range sent {
		g := FromRecord(rec, Sent)
		agg.Sent.Count++
		agg.Sent.Total += g.Amount
		agg.All = append(agg.All, g)
	}
	for _, rec := range received {
		g := FromRecord(rec, Received)
		agg.Received.Count++
		agg.Received.Total += g.Amount
		agg.All = append(agg.All, g)
	}

	// newest first; a missing timestamp is the zero time and sorts last
	sort.SliceStable(agg.All, func(i, j int) bool {
		return agg.All[i].CreatedAt.After(agg.All[j].CreatedAt)
	})
	return agg
}
