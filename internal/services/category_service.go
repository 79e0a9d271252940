package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"finledger/internal/core"
	"finledger/internal/storage"
)

// CategoryService manages user categories. The system transfer category is
// created with the user and can be neither renamed nor deleted.
type CategoryService struct {
	store *storage.Repository
}

func NewCategoryService(store *storage.Repository) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) Create(ctx context.Context, userID int64, name string) (core.Category, error) {
	category := core.Category{
		Name:   strings.TrimSpace(name),
		Kind:   core.CategoryRegular,
		UserID: userID,
	}
	if err := category.Validate(); err != nil {
		return core.Category{}, err
	}

	category, err := s.store.CreateCategory(ctx, category)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}

	slog.InfoContext(ctx, "Category created", "id", category.ID, "user_id", userID, "name", category.Name)
	return category, nil
}

func (s *CategoryService) Rename(ctx context.Context, userID, id int64, name string) error {
	category, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	if category.IsTransfer() {
		return core.ErrSystemCategory
	}

	category.Name = strings.TrimSpace(name)
	if err := category.Validate(); err != nil {
		return err
	}

	if err := s.store.RenameCategory(ctx, id, category.Name); err != nil {
		return fmt.Errorf("rename category: %w", err)
	}
	return nil
}

// Delete removes a category and, by cascade, all of its transactions.
func (s *CategoryService) Delete(ctx context.Context, userID, id int64) error {
	category, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	if category.IsTransfer() {
		return core.ErrSystemCategory
	}

	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	slog.InfoContext(ctx, "Category deleted", "id", id, "user_id", userID)
	return nil
}

func (s *CategoryService) List(ctx context.Context, userID int64) ([]core.Category, error) {
	return s.store.ListCategories(ctx, userID)
}

func (s *CategoryService) loadOwned(ctx context.Context, userID, id int64) (core.Category, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return core.Category{}, fmt.Errorf("load category: %w", err)
	}
	if category.UserID != userID {
		return core.Category{}, core.ErrForbidden
	}
	return category, nil
}
