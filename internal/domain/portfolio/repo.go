package portfolio

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

// ListByUser returns uid's items, newest first.
func (r *Repo) ListByUser(ctx context.Context, uid string) ([]Item, error) {
	recs, err := r.store.Query(ctx, docstore.Collection(ColPortfolio).
		Where("userId", "==", uid).
		OrderBy("createdAt", docstore.Desc))
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio: %w", err)
	}

	out := make([]Item, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FromRecord(rec))
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Item, error) {
	rec, err := r.store.Get(ctx, ColPortfolio, id)
	if err != nil {
		if docstore.IsErrNotFound(err) {
			return nil, fmt.Errorf("%w: portfolio item %s", ErrNotFound, id)
		}
		return nil, err
	}
	it := FromRecord(*rec)
	return &it, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, ColPortfolio, id)
}
