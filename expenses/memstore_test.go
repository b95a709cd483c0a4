package expenses

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/user/financas-go/categories"
)

// fakeCategoryStore implements categories.Store in memory for the
// existence/link checks the expense service performs.
type fakeCategoryStore struct {
	nextID  int
	cats    map[int]categories.Category
	links   map[[2]int]bool // (userID, categoryID)
	linkErr error           // injected LinkUserCategory failure
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{
		nextID: 1,
		cats:   map[int]categories.Category{},
		links:  map[[2]int]bool{},
	}
}

func (s *fakeCategoryStore) addCategory(name string) int {
	id := s.nextID
	s.nextID++
	s.cats[id] = categories.Category{ID: id, Name: name, UpdatedAt: time.Now()}
	return id
}

func (s *fakeCategoryStore) link(userID, categoryID int) {
	s.links[[2]int{userID, categoryID}] = true
}

func (s *fakeCategoryStore) CreateCategory(ctx context.Context, name string) (*categories.Category, error) {
	id := s.addCategory(name)
	c := s.cats[id]
	return &c, nil
}

func (s *fakeCategoryStore) GetCategoryByID(ctx context.Context, id int) (*categories.Category, error) {
	c, ok := s.cats[id]
	if !ok {
		return nil, categories.ErrNotFound
	}
	return &c, nil
}

func (s *fakeCategoryStore) GetCategoriesByUserID(ctx context.Context, userID int) ([]categories.Category, error) {
	result := []categories.Category{}
	for _, c := range s.cats {
		if s.links[[2]int{userID, c.ID}] {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *fakeCategoryStore) UpdateCategory(ctx context.Context, id int, name string) (*categories.Category, error) {
	c, ok := s.cats[id]
	if !ok {
		return nil, categories.ErrNotFound
	}
	c.Name = name
	s.cats[id] = c
	return &c, nil
}

func (s *fakeCategoryStore) DeleteCategory(ctx context.Context, id int) error {
	if _, ok := s.cats[id]; !ok {
		return categories.ErrNotFound
	}
	delete(s.cats, id)
	return nil
}

func (s *fakeCategoryStore) LinkUserCategory(ctx context.Context, categoryID, userID int) error {
	if s.linkErr != nil {
		return s.linkErr
	}
	if _, ok := s.cats[categoryID]; !ok {
		return errors.New("foreign key violation: category does not exist")
	}
	s.link(userID, categoryID)
	return nil
}

func (s *fakeCategoryStore) BelongsToUser(ctx context.Context, categoryID, userID int) (bool, error) {
	return s.links[[2]int{userID, categoryID}], nil
}

func (s *fakeCategoryStore) AssignAllToUser(ctx context.Context, userID int) error {
	for id := range s.cats {
		s.link(userID, id)
	}
	return nil
}

func (s *fakeCategoryStore) AssignAllToAllUsers(ctx context.Context) error {
	return nil
}

// fakeExpenseStore is an in-memory Store. It resolves the joined category
// name through the category fake, like the SQL join does.
type fakeExpenseStore struct {
	cats     *fakeCategoryStore
	nextID   int
	expenses map[int]Expense
}

func newFakeExpenseStore(cats *fakeCategoryStore) *fakeExpenseStore {
	return &fakeExpenseStore{cats: cats, nextID: 1, expenses: map[int]Expense{}}
}

func (s *fakeExpenseStore) CreateExpense(ctx context.Context, e *Expense) (*Expense, error) {
	stored := *e
	stored.ID = s.nextID
	s.nextID++
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.expenses[stored.ID] = stored
	return s.GetExpenseByID(ctx, stored.ID)
}

func (s *fakeExpenseStore) GetExpensesByUserID(ctx context.Context, userID int) ([]Expense, error) {
	result := []Expense{}
	for _, e := range s.expenses {
		if e.UserID == userID {
			withName := e
			withName.CategoryName = s.categoryName(e.CategoryID)
			result = append(result, withName)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date.Time) })
	return result, nil
}

func (s *fakeExpenseStore) GetExpenseByID(ctx context.Context, id int) (*Expense, error) {
	e, ok := s.expenses[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.CategoryName = s.categoryName(e.CategoryID)
	return &e, nil
}

func (s *fakeExpenseStore) UpdateExpense(ctx context.Context, e *Expense) (*Expense, error) {
	stored, ok := s.expenses[e.ID]
	if !ok {
		return nil, ErrNotFound
	}
	stored.Description = e.Description
	stored.Amount = e.Amount
	stored.Date = e.Date
	stored.CategoryID = e.CategoryID
	stored.UpdatedAt = time.Now()
	s.expenses[e.ID] = stored
	return s.GetExpenseByID(ctx, e.ID)
}

func (s *fakeExpenseStore) DeleteExpense(ctx context.Context, id int) error {
	if _, ok := s.expenses[id]; !ok {
		return ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *fakeExpenseStore) BelongsToUser(ctx context.Context, expenseID, userID int) (bool, error) {
	e, ok := s.expenses[expenseID]
	return ok && e.UserID == userID, nil
}

func (s *fakeExpenseStore) categoryName(categoryID int) string {
	if c, ok := s.cats.cats[categoryID]; ok {
		return c.Name
	}
	return ""
}
