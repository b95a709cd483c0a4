package categories

import (
	"context"
	"errors"
	"sort"
	"time"
)

// memStore is an in-memory Store honoring the same sentinel errors and
// ordering contract as the pgx implementation.
type memStore struct {
	nextID  int
	cats    map[int]Category
	links   map[[2]int]bool // (userID, categoryID)
	userIDs []int           // known users, for AssignAllToAllUsers
	linkErr error           // injected LinkUserCategory failure
}

func newMemStore() *memStore {
	return &memStore{
		nextID: 1,
		cats:   map[int]Category{},
		links:  map[[2]int]bool{},
	}
}

func (s *memStore) CreateCategory(ctx context.Context, name string) (*Category, error) {
	for _, c := range s.cats {
		if c.Name == name {
			return nil, ErrDuplicateName
		}
	}
	c := Category{ID: s.nextID, Name: name, UpdatedAt: time.Now()}
	s.nextID++
	s.cats[c.ID] = c
	return &c, nil
}

func (s *memStore) GetCategoryByID(ctx context.Context, id int) (*Category, error) {
	c, ok := s.cats[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *memStore) GetCategoriesByUserID(ctx context.Context, userID int) ([]Category, error) {
	result := []Category{}
	for _, c := range s.cats {
		if s.links[[2]int{userID, c.ID}] {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *memStore) UpdateCategory(ctx context.Context, id int, name string) (*Category, error) {
	c, ok := s.cats[id]
	if !ok {
		return nil, ErrNotFound
	}
	for otherID, other := range s.cats {
		if otherID != id && other.Name == name {
			return nil, ErrDuplicateName
		}
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	s.cats[id] = c
	return &c, nil
}

func (s *memStore) DeleteCategory(ctx context.Context, id int) error {
	if _, ok := s.cats[id]; !ok {
		return ErrNotFound
	}
	for link := range s.links {
		if link[1] == id {
			delete(s.links, link)
		}
	}
	delete(s.cats, id)
	return nil
}

func (s *memStore) LinkUserCategory(ctx context.Context, categoryID, userID int) error {
	if s.linkErr != nil {
		return s.linkErr
	}
	if _, ok := s.cats[categoryID]; !ok {
		return errors.New("foreign key violation: category does not exist")
	}
	s.links[[2]int{userID, categoryID}] = true
	return nil
}

func (s *memStore) BelongsToUser(ctx context.Context, categoryID, userID int) (bool, error) {
	return s.links[[2]int{userID, categoryID}], nil
}

func (s *memStore) AssignAllToUser(ctx context.Context, userID int) error {
	for id := range s.cats {
		s.links[[2]int{userID, id}] = true
	}
	return nil
}

func (s *memStore) AssignAllToAllUsers(ctx context.Context) error {
	for _, userID := range s.userIDs {
		if err := s.AssignAllToUser(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

// seedDefaults loads the protected default set, as the migration does.
func (s *memStore) seedDefaults() {
	for _, name := range DefaultCategories {
		_, _ = s.CreateCategory(context.Background(), name)
	}
}
