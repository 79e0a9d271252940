package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"finledger/internal/core"
	"finledger/internal/storage"
)

// UserService bootstraps accounts. Creating a user also creates the system
// transfer category so transfers work from the first request.
type UserService struct {
	store *storage.Repository
}

func NewUserService(store *storage.Repository) *UserService {
	return &UserService{store: store}
}

func (s *UserService) Create(ctx context.Context, name string) (core.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.User{}, core.ErrEmptyName
	}
	if len(name) > 255 {
		return core.User{}, core.ErrNameTooLong
	}

	user, err := s.store.CreateUser(ctx, name)
	if err != nil {
		return core.User{}, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User created", "id", user.ID, "name", user.Name)
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (core.User, error) {
	return s.store.GetUser(ctx, id)
}
