package portfolio

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// ImageRemover deletes an uploaded image when it belongs to uid.
type ImageRemover interface {
	RemoveOwned(ctx context.Context, uid, rawURL string) (bool, error)
}

type Service struct {
	repo   *Repo
	images ImageRemover
}

func NewService(repo *Repo, images ImageRemover) *Service {
	return &Service{repo: repo, images: images}
}

func (s *Service) List(ctx context.Context, uid string) ([]Item, error) {
	return s.repo.ListByUser(ctx, uid)
}

// Delete removes one of the caller's own items and its uploaded image.
func (s *Service) Delete(ctx context.Context, callerUID, itemID string) error {
	itemID = strings.TrimSpace(itemID)
	if callerUID == "" || itemID == "" {
		return fmt.Errorf("%w: uid and itemId are required", ErrBadRequest)
	}

	it, err := s.repo.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if it.UserID != callerUID {
		return fmt.Errorf("%w: item belongs to another user", ErrUnauthorized)
	}

	if err := s.repo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete portfolio item: %w", err)
	}

	if it.Image != "" && s.images != nil {
		// the document is gone already; a stray object only costs storage
		if _, err := s.images.RemoveOwned(ctx, callerUID, it.Image); err != nil {
			log.Printf("[portfolio] image cleanup for %s failed: %v", itemID, err)
		}
	}
	return nil
}
