package categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/financas-go/apperror"
)

func TestCreateLinksCreator(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	created, err := svc.Create(context.Background(), "Viagens", 1)
	require.NoError(t, err)
	assert.Equal(t, "Viagens", created.Name)

	linked, err := store.BelongsToUser(context.Background(), created.ID, 1)
	require.NoError(t, err)
	assert.True(t, linked, "creating a category must link it to the creator")
}

func TestCreateDuplicateName(t *testing.T) {
	svc := NewService(newMemStore())

	_, err := svc.Create(context.Background(), "Viagens", 1)
	require.NoError(t, err)

	// Same name from a different user: names are globally unique.
	_, err = svc.Create(context.Background(), "Viagens", 2)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestListOnlyLinkedSortedByName(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	_, err := svc.Create(context.Background(), "Books", 1)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "Auto", 1)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "Zoo", 2) // another user's category

	require.NoError(t, err)

	result, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Auto", result[0].Name)
	assert.Equal(t, "Books", result[1].Name)
}

func TestUpdateOwnershipRules(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	created, err := svc.Create(context.Background(), "Viagens", 1)
	require.NoError(t, err)

	// Linked caller can rename.
	updated, err := svc.Update(context.Background(), created.ID, "Férias", 1)
	require.NoError(t, err)
	assert.Equal(t, "Férias", updated.Name)

	// Existing category, caller without a link: forbidden, not 404.
	_, err = svc.Update(context.Background(), created.ID, "Hack", 2)
	require.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))

	// Unknown id: not found.
	_, err = svc.Update(context.Background(), 9999, "Ghost", 1)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteProtectsDefaults(t *testing.T) {
	store := newMemStore()
	store.seedDefaults()
	svc := NewService(store)
	require.NoError(t, svc.AssignDefaultsToUser(context.Background(), 1))

	for _, name := range DefaultCategories {
		var id int
		for cid, c := range store.cats {
			if c.Name == name {
				id = cid
			}
		}
		err := svc.Delete(context.Background(), id, 1)
		require.Error(t, err, "default category %q must not be deletable", name)
		assert.True(t, apperror.IsBadRequest(err))
	}
}

func TestDeleteRemovesLinksAndRow(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	created, err := svc.Create(context.Background(), "Viagens", 1)
	require.NoError(t, err)
	// A second user adopts the category.
	require.NoError(t, store.LinkUserCategory(context.Background(), created.ID, 2))

	require.NoError(t, svc.Delete(context.Background(), created.ID, 1))

	_, err = store.GetCategoryByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	for link := range store.links {
		assert.NotEqual(t, created.ID, link[1], "no link may survive the category")
	}

	// Already gone: 404.
	err = svc.Delete(context.Background(), created.ID, 1)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteForbiddenForUnlinkedCaller(t *testing.T) {
	svc := NewService(newMemStore())

	created, err := svc.Create(context.Background(), "Viagens", 1)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID, 2)
	require.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))
}

func TestAssignDefaultsToUserIsIdempotent(t *testing.T) {
	store := newMemStore()
	store.seedDefaults()
	svc := NewService(store)

	require.NoError(t, svc.AssignDefaultsToUser(context.Background(), 1))
	require.NoError(t, svc.AssignDefaultsToUser(context.Background(), 1))

	result, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, result, len(DefaultCategories), "repeated assignment must not duplicate links")
}

func TestBackfillAllUsers(t *testing.T) {
	store := newMemStore()
	store.seedDefaults()
	store.userIDs = []int{1, 2}
	svc := NewService(store)

	require.NoError(t, svc.BackfillAllUsers(context.Background()))

	for _, userID := range store.userIDs {
		result, err := svc.List(context.Background(), userID)
		require.NoError(t, err)
		assert.Len(t, result, len(DefaultCategories))
	}
}

func TestIsDefaultCategory(t *testing.T) {
	assert.True(t, IsDefaultCategory("Alimentação"))
	assert.True(t, IsDefaultCategory("Outros"))
	assert.False(t, IsDefaultCategory("alimentação"), "match is exact, not case-folded")
	assert.False(t, IsDefaultCategory("Viagens"))
}
