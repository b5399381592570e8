package jobs

import (
	"context"
	"fmt"

	"sewalink/backend/internal/docstore"
)

type Repo struct {
	store docstore.Store
}

func NewRepo(store docstore.Store) *Repo {
	return &Repo{store: store}
}

// ListByUser returns uid's most recent jobs.
func (r *Repo) ListByUser(ctx context.Context, uid string) ([]Job, error) {
	recs, err := r.store.Query(ctx, docstore.Collection(ColJobs).
		Where("userId", "==", uid).
		OrderBy("createdAt", docstore.Desc).
		Limit(ListLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	out := make([]Job, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FromRecord(rec))
	}
	return out, nil
}
