package timeline

import (
	"context"
	"fmt"

	"github.com/klokku/repocard/pkg/commit"
	"github.com/klokku/repocard/pkg/repo"
	log "github.com/sirupsen/logrus"
)

type CommitSource interface {
	GetCommits(ctx context.Context, ref repo.Ref) ([]commit.Commit, error)
}

type Service interface {
	GetTimeline(ctx context.Context, ref repo.Ref) ([]Marker, error)
}

type ServiceImpl struct {
	source CommitSource
}

func NewService(source CommitSource) *ServiceImpl {
	return &ServiceImpl{source: source}
}

func (s *ServiceImpl) GetTimeline(ctx context.Context, ref repo.Ref) ([]Marker, error) {
	commits, err := s.source.GetCommits(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get commits: %w", err)
	}
	markers := Normalize(commits)
	log.Debugf("Timeline of %s has %d markers", ref.FullName(), len(markers))
	return markers, nil
}
