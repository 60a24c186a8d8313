package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetCurrentUser(ctx context.Context) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

// CreateUser registers a user under a freshly generated uid.
func (s *ServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	user.Username = strings.TrimSpace(user.Username)
	if user.Username == "" {
		return User{}, ErrUserDataInvalid
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}
	user.Uid = uuid.NewString()

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	log.Infof("Created user %s (%s)", created.Username, created.Uid)
	return created, nil
}

func (s *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetUser(ctx, userId)
}

func (s *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return s.repo.GetUserByUid(ctx, uid)
}

func (s *ServiceImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	return s.repo.IsUsernameAvailable(ctx, strings.TrimSpace(username))
}
