package expenses

import (
	"context"
	"errors"
	"math"

	"github.com/user/financas-go/apperror"
	"github.com/user/financas-go/categories"
)

// Service implements the expense operations. It consults the category
// store for the existence and link checks that gate expense creation.
type Service struct {
	store      Store
	categories categories.Store
}

// NewService creates a Service.
func NewService(store Store, categoryStore categories.Store) *Service {
	return &Service{store: store, categories: categoryStore}
}

// Create records a new expense for callerID. The category must exist; if
// the caller is not yet linked to it, the link is granted on the spot
// rather than rejecting the request. Any authenticated user may adopt an
// existing category by using it. Only a failure of that grant itself
// rejects the create.
func (s *Service) Create(ctx context.Context, req ExpenseRequest, callerID int) (*Expense, error) {
	if _, err := s.categories.GetCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, categories.ErrNotFound) {
			return nil, apperror.NewBadRequestError("category not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get category", err)
	}

	linked, err := s.categories.BelongsToUser(ctx, req.CategoryID, callerID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to check category access", err)
	}
	if !linked {
		if err := s.categories.LinkUserCategory(ctx, req.CategoryID, callerID); err != nil {
			return nil, apperror.NewBadRequestError("category not available for this user", err)
		}
	}

	expense := &Expense{
		Description: req.Description,
		Amount:      roundAmount(*req.Amount),
		Date:        *req.Date,
		CategoryID:  req.CategoryID,
		UserID:      callerID,
	}
	created, err := s.store.CreateExpense(ctx, expense)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create expense", err)
	}
	return created, nil
}

// List returns all expenses owned by userID, most recent date first.
func (s *Service) List(ctx context.Context, userID int) ([]Expense, error) {
	result, err := s.store.GetExpensesByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list expenses", err)
	}
	return result, nil
}

// GetByID returns a single expense. A missing id is 404; an existing
// expense owned by someone else is 403.
func (s *Service) GetByID(ctx context.Context, id, callerID int) (*Expense, error) {
	expense, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense.UserID != callerID {
		return nil, apperror.NewForbiddenError("access denied", nil)
	}
	return expense, nil
}

// Update rewrites an expense's fields. The caller must own the expense,
// and the new category must already be linked to the caller: unlike
// Create, Update never auto-grants the link.
func (s *Service) Update(ctx context.Context, id int, req ExpenseRequest, callerID int) (*Expense, error) {
	expense, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense.UserID != callerID {
		return nil, apperror.NewForbiddenError("access denied", nil)
	}

	linked, err := s.categories.BelongsToUser(ctx, req.CategoryID, callerID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to check category access", err)
	}
	if !linked {
		return nil, apperror.NewBadRequestError("category not available for this user", nil)
	}

	expense.Description = req.Description
	expense.Amount = roundAmount(*req.Amount)
	expense.Date = *req.Date
	expense.CategoryID = req.CategoryID

	updated, err := s.store.UpdateExpense(ctx, expense)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewNotFoundError("expense not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update expense", err)
	}
	return updated, nil
}

// Delete removes an expense owned by callerID.
func (s *Service) Delete(ctx context.Context, id, callerID int) error {
	expense, err := s.getExisting(ctx, id)
	if err != nil {
		return err
	}
	if expense.UserID != callerID {
		return apperror.NewForbiddenError("access denied", nil)
	}

	if err := s.store.DeleteExpense(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.NewNotFoundError("expense not found", nil)
		}
		return apperror.NewDatabaseError("failed to delete expense", err)
	}
	return nil
}

func (s *Service) getExisting(ctx context.Context, id int) (*Expense, error) {
	expense, err := s.store.GetExpenseByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewNotFoundError("expense not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get expense", err)
	}
	return expense, nil
}

// roundAmount normalizes a monetary amount to 2 decimal places.
func roundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}
