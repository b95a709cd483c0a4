package expenses

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no expense matches the lookup.
var ErrNotFound = errors.New("expense not found")

// Store is the persistence interface for expenses. Each method is a single
// parameterized statement; reads join the category name in.
type Store interface {
	CreateExpense(ctx context.Context, e *Expense) (*Expense, error)
	GetExpensesByUserID(ctx context.Context, userID int) ([]Expense, error)
	GetExpenseByID(ctx context.Context, id int) (*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) (*Expense, error)
	DeleteExpense(ctx context.Context, id int) error
	BelongsToUser(ctx context.Context, expenseID, userID int) (bool, error)
}

// PgxStore implements Store over a pgx connection pool.
type PgxStore struct {
	db *pgxpool.Pool
}

// NewPgxStore creates a PgxStore.
func NewPgxStore(db *pgxpool.Pool) *PgxStore {
	return &PgxStore{db: db}
}

func (s *PgxStore) CreateExpense(ctx context.Context, e *Expense) (*Expense, error) {
	query := `
		INSERT INTO expenses (description, amount, date, category_id, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := s.db.QueryRow(ctx, query, e.Description, e.Amount, e.Date.Time, e.CategoryID, e.UserID).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s.GetExpenseByID(ctx, e.ID)
}

func (s *PgxStore) GetExpensesByUserID(ctx context.Context, userID int) ([]Expense, error) {
	query := `
		SELECT e.id, e.description, e.amount, e.date, e.category_id, c.name,
		       e.user_id, e.created_at, e.updated_at
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.user_id = $1
		ORDER BY e.date DESC`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

func (s *PgxStore) GetExpenseByID(ctx context.Context, id int) (*Expense, error) {
	query := `
		SELECT e.id, e.description, e.amount, e.date, e.category_id, c.name,
		       e.user_id, e.created_at, e.updated_at
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.id = $1`
	row := s.db.QueryRow(ctx, query, id)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *PgxStore) UpdateExpense(ctx context.Context, e *Expense) (*Expense, error) {
	query := `
		UPDATE expenses
		SET description = $1, amount = $2, date = $3, category_id = $4, updated_at = now()
		WHERE id = $5`
	tag, err := s.db.Exec(ctx, query, e.Description, e.Amount, e.Date.Time, e.CategoryID, e.ID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return s.GetExpenseByID(ctx, e.ID)
}

func (s *PgxStore) DeleteExpense(ctx context.Context, id int) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PgxStore) BelongsToUser(ctx context.Context, expenseID, userID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM expenses WHERE id = $1 AND user_id = $2)`
	if err := s.db.QueryRow(ctx, query, expenseID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// scanExpense reads one joined expense row. The DATE column arrives as a
// time.Time and is narrowed to the wire Date type here.
func scanExpense(row pgx.Row) (*Expense, error) {
	var e Expense
	var date time.Time
	err := row.Scan(
		&e.ID, &e.Description, &e.Amount, &date, &e.CategoryID, &e.CategoryName,
		&e.UserID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Date = Date{date}
	return &e, nil
}
