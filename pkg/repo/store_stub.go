package repo

import (
	"context"
	"slices"
)

type StoreStub struct {
	nextId int
	data   map[int][]Repository
}

func NewStoreStub() *StoreStub {
	return &StoreStub{data: map[int][]Repository{}}
}

func (s *StoreStub) Store(_ context.Context, userId int, repository Repository) (Repository, error) {
	if _, found := s.find(userId, repository.Owner, repository.Name); found {
		return Repository{}, ErrRepoAlreadyImported
	}
	s.nextId++
	repository.Id = s.nextId
	s.data[userId] = append(s.data[userId], repository)
	return repository, nil
}

func (s *StoreStub) List(_ context.Context, userId int) ([]Repository, error) {
	repositories := slices.Clone(s.data[userId])
	slices.Reverse(repositories)
	if repositories == nil {
		repositories = []Repository{}
	}
	return repositories, nil
}

func (s *StoreStub) Get(_ context.Context, userId int, owner, name string) (Repository, error) {
	idx, found := s.find(userId, owner, name)
	if !found {
		return Repository{}, ErrRepoNotFound
	}
	return s.data[userId][idx], nil
}

func (s *StoreStub) SetHasTimecard(_ context.Context, userId int, owner, name string, hasTimecard bool) error {
	idx, found := s.find(userId, owner, name)
	if !found {
		return ErrRepoNotFound
	}
	s.data[userId][idx].HasTimecard = hasTimecard
	return nil
}

func (s *StoreStub) find(userId int, owner, name string) (int, bool) {
	idx := slices.IndexFunc(s.data[userId], func(r Repository) bool {
		return r.Owner == owner && r.Name == name
	})
	return idx, idx >= 0
}

func (s *StoreStub) Reset() {
	s.nextId = 0
	s.data = map[int][]Repository{}
}
