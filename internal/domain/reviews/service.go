package reviews

import (
	"context"
	"fmt"

	"sewalink/backend/internal/authctx"
	"sewalink/backend/internal/docstore"
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, uid string) ([]Review, error) {
	return s.repo.ListByUser(ctx, uid)
}

// Create records a review of subjectUID written by the signed-in reviewer.
func (s *Service) Create(ctx context.Context, reviewer *authctx.Identity, reviewerPhoto, subjectUID string, input CreateInput) (string, error) {
	if reviewer == nil || reviewer.UID == "" {
		return "", fmt.Errorf("%w: sign in to leave a review", ErrUnauthorized)
	}
	input.Trim()

	if subjectUID == "" {
		return "", fmt.Errorf("%w: userId is required", ErrBadRequest)
	}
	if subjectUID == reviewer.UID {
		return "", fmt.Errorf("%w: cannot review your own profile", ErrBadRequest)
	}
	if input.Rating < 1 || input.Rating > 5 {
		return "", fmt.Errorf("%w: rating must be between 1 and 5", ErrBadRequest)
	}
	if input.Content == "" {
		return "", fmt.Errorf("%w: content is required", ErrBadRequest)
	}

	fields := map[string]any{
		"userId":       subjectUID,
		"reviewerId":   reviewer.UID,
		"reviewerName": reviewer.Name(),
		"rating":       input.Rating,
		"content":      input.Content,
		"createdAt":    docstore.ServerTime,
	}
	if reviewerPhoto != "" {
		fields["reviewerPhoto"] = reviewerPhoto
	}
	return s.repo.Add(ctx, fields)
}
