package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/klokku/repocard/internal/event_bus"
	"github.com/klokku/repocard/internal/utils"
	"github.com/klokku/repocard/pkg/timecard"
	"github.com/klokku/repocard/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Source is the remote host of the repositories.
type Source interface {
	GetDefaultBranch(ctx context.Context, owner, name string) (string, error)
	ListBranches(ctx context.Context, owner, name string) ([]string, error)
	GetTimecard(ctx context.Context, ref Ref) (timecard.Timecard, error)
}

type Service interface {
	Import(ctx context.Context, req ImportRequest) (Repository, error)
	List(ctx context.Context) ([]Repository, error)
	Get(ctx context.Context, owner, name string) (Repository, error)
	Branches(ctx context.Context, owner, name string) ([]string, error)
	GetTimecard(ctx context.Context, ref Ref) (timecard.Timecard, error)
}

type ServiceImpl struct {
	store    Store
	source   Source
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewService(store Store, source Source, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{store: store, source: source, eventBus: eventBus, clock: clock}
}

// Import records a repository for the current user. When a timecard is
// requested and the branch has none yet, RepoImported subscribers create it.
// A failed creation leaves the repository imported without a timecard.
func (s *ServiceImpl) Import(ctx context.Context, req ImportRequest) (Repository, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Repository{}, fmt.Errorf("failed to get current user: %w", err)
	}
	req.Owner = strings.TrimSpace(req.Owner)
	req.Name = strings.TrimSpace(req.Name)
	if req.Owner == "" || req.Name == "" {
		return Repository{}, ErrRepoInvalid
	}

	branch := req.Branch
	if branch == "" {
		branch, err = s.source.GetDefaultBranch(ctx, req.Owner, req.Name)
		if err != nil {
			return Repository{}, fmt.Errorf("failed to get default branch: %w", err)
		}
	}
	ref := Ref{Owner: req.Owner, Name: req.Name, Branch: branch}

	hasTimecard := true
	if _, err := s.source.GetTimecard(ctx, ref); errors.Is(err, ErrTimecardNotFound) {
		hasTimecard = false
	} else if err != nil {
		return Repository{}, fmt.Errorf("failed to get timecard: %w", err)
	}
	createTimecard := req.CreateTimecard && !hasTimecard
	if req.CreateTimecard && hasTimecard {
		log.Infof("%s already has a timecard on %s, not creating one", ref.FullName(), branch)
	}

	stored, err := s.store.Store(ctx, userId, Repository{
		Uid:           uuid.NewString(),
		Owner:         req.Owner,
		Name:          req.Name,
		DefaultBranch: branch,
		HasTimecard:   hasTimecard || createTimecard,
		ImportedAt:    s.clock.Now(),
	})
	if err != nil {
		return Repository{}, fmt.Errorf("failed to store repository: %w", err)
	}
	log.Infof("User %d imported %s", userId, ref.FullName())

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.RepoImportedType, event_bus.RepoImported{
		Uid:            stored.Uid,
		UserId:         userId,
		Owner:          stored.Owner,
		Name:           stored.Name,
		Branch:         branch,
		CreateTimecard: createTimecard,
		Timecard:       req.Timecard,
		ImportedAt:     stored.ImportedAt,
	}))
	if err != nil && createTimecard {
		log.Warnf("Timecard for %s was not created: %v", ref.FullName(), err)
		if err := s.store.SetHasTimecard(ctx, userId, stored.Owner, stored.Name, false); err != nil {
			return Repository{}, fmt.Errorf("failed to update repository: %w", err)
		}
		stored.HasTimecard = false
	} else if err != nil {
		log.Errorf("failed to publish repo imported event: %v", err)
	}

	return stored, nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]Repository, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.store.List(ctx, userId)
}

func (s *ServiceImpl) Get(ctx context.Context, owner, name string) (Repository, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Repository{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.store.Get(ctx, userId, owner, name)
}

func (s *ServiceImpl) Branches(ctx context.Context, owner, name string) ([]string, error) {
	branches, err := s.source.ListBranches(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	if branches == nil {
		branches = []string{}
	}
	return branches, nil
}

func (s *ServiceImpl) GetTimecard(ctx context.Context, ref Ref) (timecard.Timecard, error) {
	tc, err := s.source.GetTimecard(ctx, ref)
	if err != nil {
		return timecard.Timecard{}, fmt.Errorf("failed to get timecard: %w", err)
	}
	if tc.Malformed() {
		log.Warnf("Timecard of %s is malformed", ref.FullName())
	}
	return tc, nil
}
