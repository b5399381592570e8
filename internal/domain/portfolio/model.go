package portfolio

import (
	"time"

	"sewalink/backend/internal/docstore"
)

const ColPortfolio = "portfolio"

type Item struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Link        string    `json:"link,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromRecord(r docstore.Record) Item {
	return Item{
		ID:          r.ID,
		UserID:      r.String("userId"),
		Title:       r.String("title"),
		Description: r.String("description"),
		Image:       r.String("image"),
		Link:        r.String("link"),
		CreatedAt:   r.Time("createdAt"),
	}
}
