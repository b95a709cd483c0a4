package categories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store errors mapped by the service layer (and returned by test fakes).
var (
	// ErrNotFound is returned when no category matches the lookup.
	ErrNotFound = errors.New("category not found")
	// ErrDuplicateName is returned when an insert or rename hits the
	// global name uniqueness constraint.
	ErrDuplicateName = errors.New("category name already exists")
)

const pgUniqueViolation = "23505"

// Store is the persistence interface for categories and user-category
// links. Link inserts are idempotent: concurrent grants of the same pair
// must both succeed, so inserts rely on ON CONFLICT DO NOTHING rather
// than a prior existence check.
type Store interface {
	CreateCategory(ctx context.Context, name string) (*Category, error)
	GetCategoryByID(ctx context.Context, id int) (*Category, error)
	GetCategoriesByUserID(ctx context.Context, userID int) ([]Category, error)
	UpdateCategory(ctx context.Context, id int, name string) (*Category, error)
	// DeleteCategory removes every user link for the category and then the
	// category row itself, in one transaction.
	DeleteCategory(ctx context.Context, id int) error
	// LinkUserCategory grants userID access to categoryID. Granting an
	// already-linked pair is a no-op, not an error.
	LinkUserCategory(ctx context.Context, categoryID, userID int) error
	BelongsToUser(ctx context.Context, categoryID, userID int) (bool, error)
	// AssignAllToUser links every existing category to userID, skipping
	// pairs that already exist.
	AssignAllToUser(ctx context.Context, userID int) error
	// AssignAllToAllUsers back-fills links for every user/category pair.
	AssignAllToAllUsers(ctx context.Context) error
}

// PgxStore implements Store over a pgx connection pool.
type PgxStore struct {
	db *pgxpool.Pool
}

// NewPgxStore creates a PgxStore.
func NewPgxStore(db *pgxpool.Pool) *PgxStore {
	return &PgxStore{db: db}
}

func (s *PgxStore) CreateCategory(ctx context.Context, name string) (*Category, error) {
	var c Category
	query := `INSERT INTO categories (name) VALUES ($1) RETURNING id, name, updated_at`
	err := s.db.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &c, nil
}

func (s *PgxStore) GetCategoryByID(ctx context.Context, id int) (*Category, error) {
	var c Category
	query := `SELECT id, name, updated_at FROM categories WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *PgxStore) GetCategoriesByUserID(ctx context.Context, userID int) ([]Category, error) {
	query := `
		SELECT c.id, c.name, c.updated_at
		FROM categories c
		JOIN user_categories uc ON c.id = uc.category_id
		WHERE uc.user_id = $1
		ORDER BY c.name`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (s *PgxStore) UpdateCategory(ctx context.Context, id int, name string) (*Category, error) {
	var c Category
	query := `UPDATE categories SET name = $1, updated_at = now() WHERE id = $2
	          RETURNING id, name, updated_at`
	err := s.db.QueryRow(ctx, query, name, id).Scan(&c.ID, &c.Name, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &c, nil
}

func (s *PgxStore) DeleteCategory(ctx context.Context, id int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_categories WHERE category_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func (s *PgxStore) LinkUserCategory(ctx context.Context, categoryID, userID int) error {
	query := `INSERT INTO user_categories (user_id, category_id) VALUES ($1, $2)
	          ON CONFLICT DO NOTHING`
	_, err := s.db.Exec(ctx, query, userID, categoryID)
	return err
}

func (s *PgxStore) BelongsToUser(ctx context.Context, categoryID, userID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
	              SELECT 1 FROM user_categories WHERE category_id = $1 AND user_id = $2
	          )`
	if err := s.db.QueryRow(ctx, query, categoryID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PgxStore) AssignAllToUser(ctx context.Context, userID int) error {
	query := `INSERT INTO user_categories (user_id, category_id)
	          SELECT $1, id FROM categories
	          ON CONFLICT DO NOTHING`
	_, err := s.db.Exec(ctx, query, userID)
	return err
}

func (s *PgxStore) AssignAllToAllUsers(ctx context.Context) error {
	query := `INSERT INTO user_categories (user_id, category_id)
	          SELECT u.id, c.id FROM users u CROSS JOIN categories c
	          ON CONFLICT DO NOTHING`
	_, err := s.db.Exec(ctx, query)
	return err
}
