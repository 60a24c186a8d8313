package user

import (
	"context"
	"time"
)

type RepositoryStub struct {
	nextId int
	data   map[int]User
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{data: map[int]User{}}
}

func (s *RepositoryStub) CreateUser(_ context.Context, user User) (User, error) {
	for _, existing := range s.data {
		if existing.Username == user.Username {
			return User{}, ErrUsernameTaken
		}
	}
	s.nextId++
	user.Id = s.nextId
	user.CreatedAt = time.Date(2016, 3, 26, 10, 0, 0, 0, time.UTC)
	s.data[user.Id] = user
	return user, nil
}

func (s *RepositoryStub) GetUser(_ context.Context, id int) (User, error) {
	user, ok := s.data[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *RepositoryStub) GetUserByUid(_ context.Context, uid string) (User, error) {
	for _, user := range s.data {
		if user.Uid == uid {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *RepositoryStub) IsUsernameAvailable(_ context.Context, username string) (bool, error) {
	for _, user := range s.data {
		if user.Username == username {
			return false, nil
		}
	}
	return true, nil
}

func (s *RepositoryStub) Reset() {
	s.nextId = 0
	s.data = map[int]User{}
}
