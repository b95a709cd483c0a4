package tags

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no tag matches the lookup.
var ErrNotFound = errors.New("tag not found")

// Store is the persistence interface for tags and their expense links.
type Store interface {
	CreateTag(ctx context.Context, name, color string) (*Tag, error)
	GetTagByID(ctx context.Context, id int) (*Tag, error)
	ListTags(ctx context.Context) ([]Tag, error)
	AddTagToExpense(ctx context.Context, expenseID, tagID int) error
	RemoveTagFromExpense(ctx context.Context, expenseID, tagID int) error
	GetTagsForExpense(ctx context.Context, expenseID int) ([]Tag, error)
}

// PgxStore implements Store over a pgx connection pool.
type PgxStore struct {
	db *pgxpool.Pool
}

// NewPgxStore creates a PgxStore.
func NewPgxStore(db *pgxpool.Pool) *PgxStore {
	return &PgxStore{db: db}
}

// CreateTag inserts a tag. An empty color falls back to DefaultColor.
func (s *PgxStore) CreateTag(ctx context.Context, name, color string) (*Tag, error) {
	if color == "" {
		color = DefaultColor
	}
	var t Tag
	query := `INSERT INTO tags (name, color) VALUES ($1, $2) RETURNING id, name, color`
	if err := s.db.QueryRow(ctx, query, name, color).Scan(&t.ID, &t.Name, &t.Color); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *PgxStore) GetTagByID(ctx context.Context, id int) (*Tag, error) {
	var t Tag
	query := `SELECT id, name, color FROM tags WHERE id = $1`
	if err := s.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Color); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *PgxStore) ListTags(ctx context.Context) ([]Tag, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, color FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Tag{}
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (s *PgxStore) AddTagToExpense(ctx context.Context, expenseID, tagID int) error {
	query := `INSERT INTO expense_tags (expense_id, tag_id) VALUES ($1, $2)
	          ON CONFLICT DO NOTHING`
	_, err := s.db.Exec(ctx, query, expenseID, tagID)
	return err
}

func (s *PgxStore) RemoveTagFromExpense(ctx context.Context, expenseID, tagID int) error {
	query := `DELETE FROM expense_tags WHERE expense_id = $1 AND tag_id = $2`
	_, err := s.db.Exec(ctx, query, expenseID, tagID)
	return err
}

func (s *PgxStore) GetTagsForExpense(ctx context.Context, expenseID int) ([]Tag, error) {
	query := `
		SELECT t.id, t.name, t.color
		FROM tags t
		JOIN expense_tags et ON t.id = et.tag_id
		WHERE et.expense_id = $1
		ORDER BY t.name`
	rows, err := s.db.Query(ctx, query, expenseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Tag{}
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
