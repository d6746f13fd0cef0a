package data

import (
	"slices"

	"github.com/target/pom-practice/internal/domain/model"
)

var seedUsers = []model.User{
	{ID: 1, Name: "Alice"},
	{ID: 2, Name: "Bob"},
	{ID: 3, Name: "Charlie"},
}

// StaticUserDirectory serves the fixed, process-lifetime list of users.
type StaticUserDirectory struct {
	users []model.User
}

// NewStaticUserDirectory returns a directory holding Alice, Bob and Charlie.
func NewStaticUserDirectory() *StaticUserDirectory {
	return &StaticUserDirectory{users: slices.Clone(seedUsers)}
}

// ListUsers returns a copy of every user in insertion order.
func (d *StaticUserDirectory) ListUsers() []model.User {
	return slices.Clone(d.users)
}
