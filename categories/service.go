package categories

import (
	"context"
	"errors"
	"log"

	"github.com/user/financas-go/apperror"
)

// Service implements the category operations and the ownership rules that
// gate them.
type Service struct {
	store Store
}

// NewService creates a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create adds a globally unique category and, as a documented side effect,
// links it to the creating user.
func (s *Service) Create(ctx context.Context, name string, callerID int) (*Category, error) {
	category, err := s.store.CreateCategory(ctx, name)
	if err != nil {
		if errors.Is(err, ErrDuplicateName) {
			return nil, apperror.NewConflictError("category already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create category", err)
	}

	if err := s.store.LinkUserCategory(ctx, category.ID, callerID); err != nil {
		return nil, apperror.NewDatabaseError("failed to link category to user", err)
	}
	return category, nil
}

// List returns the categories linked to userID, ordered by name.
func (s *Service) List(ctx context.Context, userID int) ([]Category, error) {
	result, err := s.store.GetCategoriesByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list categories", err)
	}
	return result, nil
}

// Update renames a category. The caller must hold a link to it: a missing
// category is 404, an existing one the caller is not linked to is 403.
func (s *Service) Update(ctx context.Context, id int, name string, callerID int) (*Category, error) {
	if _, err := s.getExisting(ctx, id); err != nil {
		return nil, err
	}
	if err := s.requireOwnership(ctx, id, callerID); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateCategory(ctx, id, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewNotFoundError("category not found", nil)
		}
		if errors.Is(err, ErrDuplicateName) {
			return nil, apperror.NewConflictError("category already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update category", err)
	}
	return updated, nil
}

// Delete removes a category and all its user links. Default categories are
// never deletable, regardless of who asks or what links exist.
func (s *Service) Delete(ctx context.Context, id int, callerID int) error {
	category, err := s.getExisting(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireOwnership(ctx, id, callerID); err != nil {
		return err
	}
	if IsDefaultCategory(category.Name) {
		return apperror.NewBadRequestError("default categories cannot be deleted", nil)
	}

	if err := s.store.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.NewNotFoundError("category not found", nil)
		}
		return apperror.NewDatabaseError("failed to delete category", err)
	}
	return nil
}

// AssignDefaultsToUser links every existing category to userID. The
// operation is idempotent: links that already exist are skipped, so it is
// safe to run on every registration.
func (s *Service) AssignDefaultsToUser(ctx context.Context, userID int) error {
	if err := s.store.AssignAllToUser(ctx, userID); err != nil {
		return apperror.NewDatabaseError("failed to assign categories to user", err)
	}
	return nil
}

// BackfillAllUsers links every category to every user. Run once at startup
// to cover users created before per-registration assignment existed.
func (s *Service) BackfillAllUsers(ctx context.Context) error {
	if err := s.store.AssignAllToAllUsers(ctx); err != nil {
		return apperror.NewDatabaseError("failed to backfill user categories", err)
	}
	log.Println("user category backfill complete")
	return nil
}

// getExisting resolves id or reports 404.
func (s *Service) getExisting(ctx context.Context, id int) (*Category, error) {
	category, err := s.store.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewNotFoundError("category not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get category", err)
	}
	return category, nil
}

// requireOwnership reports 403 when callerID holds no link to the
// category. The category is known to exist at this point, so the response
// deliberately confirms existence without granting access.
func (s *Service) requireOwnership(ctx context.Context, categoryID, callerID int) error {
	linked, err := s.store.BelongsToUser(ctx, categoryID, callerID)
	if err != nil {
		return apperror.NewDatabaseError("failed to check category ownership", err)
	}
	if !linked {
		return apperror.NewForbiddenError("access denied", nil)
	}
	return nil
}
