package service

import (
	"github.com/target/pom-practice/internal/domain/model"
	"github.com/target/pom-practice/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Directory ports.UserDirectory
}

// UserService exposes the user directory to the transport layer.
type UserService struct {
	directory ports.UserDirectory
}

// NewUserService constructs a UserService. Directory is required.
func NewUserService(opts UserServiceOptions) *UserService {
	if opts.Directory == nil {
		panic("UserDirectory is required")
	}
	return &UserService{directory: opts.Directory}
}

// List returns every user in directory order.
func (s *UserService) List() []model.User {
	users := s.directory.ListUsers()
	if users == nil {
		return []model.User{}
	}
	return users
}
