package reviews

import (
	"time"

	"sewalink/backend/internal/docstore"
	"sewalink/backend/internal/utils"
)

const (
	ColReviews = "reviews"

	MaxContentLen = 2000
)

type Review struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	ReviewerID    string    `json:"reviewerId,omitempty"`
	ReviewerName  string    `json:"reviewerName"`
	ReviewerPhoto string    `json:"reviewerPhoto,omitempty"`
	Rating        float64   `json:"rating"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromRecord clamps the stored rating into [0,5].
func FromRecord(r docstore.Record) Review {
	rating := r.Float("rating")
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return Review{
		ID:            r.ID,
		UserID:        r.String("userId"),
		ReviewerID:    r.String("reviewerId"),
		ReviewerName:  r.String("reviewerName"),
		ReviewerPhoto: r.String("reviewerPhoto"),
		Rating:        rating,
		Content:       r.String("content"),
		CreatedAt:     r.Time("createdAt"),
	}
}

// Average is the arithmetic mean of the ratings, 0 for no reviews.
func Average(list []Review) float64 {
	if len(list) == 0 {
		return 0
	}
	var sum float64
	for _, r := range list {
		sum += r.Rating
	}
	return sum / float64(len(list))
}

type CreateInput struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

func (in *CreateInput) Trim() {
	in.Content = utils.TrimMax(in.Content, MaxContentLen)
}
