package onboarding

import (
	"context"
	"fmt"

	"github.com/poupanca/poupanca/internal/storage"
)

// TutorialKey marks the one-time walkthrough as completed. Any stored
// value means "already shown"; absence triggers the walkthrough.
const TutorialKey = "poupanca_tutorial_done"

type Service interface {
	IsDone(ctx context.Context) (bool, error)
	MarkDone(ctx context.Context) error
	// Reset clears the flag so the walkthrough is replayed.
	Reset(ctx context.Context) error
}

type ServiceImpl struct {
	store storage.Store
}

func NewService(store storage.Store) *ServiceImpl {
	return &ServiceImpl{store: store}
}

func (s *ServiceImpl) IsDone(ctx context.Context) (bool, error) {
	_, found, err := s.store.Get(ctx, TutorialKey)
	if err != nil {
		return false, fmt.Errorf("could not read tutorial flag: %w", err)
	}
	return found, nil
}

func (s *ServiceImpl) MarkDone(ctx context.Context) error {
	if err := s.store.Put(ctx, TutorialKey, "true"); err != nil {
		return fmt.Errorf("could not store tutorial flag: %w", err)
	}
	return nil
}

func (s *ServiceImpl) Reset(ctx context.Context) error {
	if err := s.store.Delete(ctx, TutorialKey); err != nil {
		return fmt.Errorf("could not clear tutorial flag: %w", err)
	}
	return nil
}
