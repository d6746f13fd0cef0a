package ports

import "github.com/target/pom-practice/internal/domain/model"

// UserDirectory lists the fixed set of known users.
type UserDirectory interface {
	ListUsers() []model.User
}
