package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lostfound/moderation/internal/moderation"
	"github.com/lostfound/moderation/internal/store"
	"github.com/lostfound/moderation/types"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	List(ctx context.Context) ([]types.User, error)
	Get(ctx context.Context, id string) (types.User, error)
	UpdateStatus(ctx context.Context, id string, from, to types.UserStatus) (types.User, error)
	Upsert(ctx context.Context, user types.User) error
}

// UserService encapsulates account moderation use-cases.
type UserService struct {
	repo      UserRepository
	observers []ChangeObserver
}

func NewUserService(repo UserRepository, observers ...ChangeObserver) *UserService {
	return &UserService{repo: repo, observers: observers}
}

func (s *UserService) List(ctx context.Context, filter moderation.Filter, query string) ([]types.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return moderation.FilterUsers(users, filter, query), nil
}

func (s *UserService) Get(ctx context.Context, id string) (types.User, error) {
	return s.repo.Get(ctx, id)
}

// SetStatus toggles an account between active and suspended.
func (s *UserService) SetStatus(ctx context.Context, id string, to types.UserStatus) (types.User, error) {
	action, err := moderation.UserActionFor(to)
	if err != nil {
		return types.User{}, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.User{}, err
	}
	if err := moderation.CheckUserTransition(current.Status, to); err != nil {
		return types.User{}, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, to)
	if err != nil {
		if errors.Is(err, store.ErrStaleStatus) {
			return types.User{}, fmt.Errorf("%w: user %s changed while updating", moderation.ErrInvalidTransition, id)
		}
		return types.User{}, err
	}

	notifyObservers(ctx, s.observers, StatusChange{
		Kind:     KindUser,
		RecordID: updated.ID,
		Action:   string(action),
		Status:   string(updated.Status),
		Subject:  updated.Email,
	})
	return updated, nil
}

// Apply performs a suspend or activate action.
func (s *UserService) Apply(ctx context.Context, id string, action moderation.UserAction) (types.User, error) {
	return s.SetStatus(ctx, id, action.TargetStatus())
}

func (s *UserService) Import(ctx context.Context, users []types.User) error {
	for _, user := range users {
		if err := s.repo.Upsert(ctx, user); err != nil {
			return fmt.Errorf("import user %s: %w", user.ID, err)
		}
	}
	return nil
}
