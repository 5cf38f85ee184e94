package service

import (
	"context"

	"github.com/vitrine-app/vitrine-api/internal/modules/model"
	"github.com/vitrine-app/vitrine-api/internal/modules/repo"
)

// UserService backs the admin moderation views.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
}

type userService struct{ users repo.UserRepo }

func NewUserService(users repo.UserRepo) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}
