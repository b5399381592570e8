package reviews

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

func (r *Repo) ListByUser(ctx context.Context, uid string) ([]Review, error) {
	recs, err := r.store.Query(ctx, docstore.Collection(ColReviews).
		Where("userId", "==", uid).
		OrderBy("createdAt", docstore.Desc))
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	out := make([]Review, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FromRecord(rec))
	}
	return out, nil
}

func (r *Repo) Add(ctx context.Context, fields map[string]any) (string, error) {
	id, err := r.store.Add(ctx, ColReviews, fields)
	if err != nil {
		return "", fmt.Errorf("failed to create review: %w", err)
	}
	return id, nil
}
