package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/pom-practice/internal/domain/model"
)

func TestStaticUserDirectory_ListUsers(t *testing.T) {
	dir := NewStaticUserDirectory()

	want := []model.User{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
		{ID: 3, Name: "Charlie"},
	}
	assert.Equal(t, want, dir.ListUsers())
}

func TestStaticUserDirectory_StableAcrossCalls(t *testing.T) {
	dir := NewStaticUserDirectory()
	first := dir.ListUsers()
	for range 5 {
		assert.Equal(t, first, dir.ListUsers())
	}
}

func TestStaticUserDirectory_CallersCannotMutate(t *testing.T) {
	dir := NewStaticUserDirectory()

	users := dir.ListUsers()
	require.Len(t, users, 3)
	users[0].Name = "Mallory"
	users = append(users, model.User{ID: 4, Name: "Dave"})
	_ = users

	got := dir.ListUsers()
	require.Len(t, got, 3)
	assert.Equal(t, "Alice", got[0].Name)
}

func TestStaticUserDirectory_IDsUnique(t *testing.T) {
	seen := map[int]bool{}
	for _, u := range NewStaticUserDirectory().ListUsers() {
		assert.False(t, seen[u.ID], "duplicate id %d", u.ID)
		seen[u.ID] = true
		assert.NotEmpty(t, u.Name)
	}
}
