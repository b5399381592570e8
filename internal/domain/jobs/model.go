package jobs

import (
	"time"

	"sewalink/backend/internal/docstore"
)

const (
	ColJobs = "jobs"

	// ListLimit caps how many jobs a profile shows.
	ListLimit = 10
)

type Job struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      *float64  `json:"budget,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromRecord(r docstore.Record) Job {
	status := r.String("status")
	if status == "" {
		status = "open"
	}
	return Job{
		ID:          r.ID,
		UserID:      r.String("userId"),
		Title:       r.String("title"),
		Description: r.String("description"),
		Budget:      r.FloatPtr("budget"),
		Status:      status,
		CreatedAt:   r.Time("createdAt"),
	}
}
