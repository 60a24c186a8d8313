package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/klokku/repocard/pkg/commit"
	"github.com/klokku/repocard/pkg/repo"
	"github.com/klokku/repocard/pkg/timecard"
	log "github.com/sirupsen/logrus"
)

// Source supplies the raw timecard and commits of a repository branch.
type Source interface {
	GetTimecard(ctx context.Context, ref repo.Ref) (timecard.Timecard, error)
	GetCommits(ctx context.Context, ref repo.Ref) ([]commit.Commit, error)
}

type StatsService interface {
	GetStats(ctx context.Context, ref repo.Ref) (StatsSummary, error)
}

type StatsServiceImpl struct {
	source Source
}

func NewStatsServiceImpl(source Source) *StatsServiceImpl {
	return &StatsServiceImpl{source: source}
}

func (s *StatsServiceImpl) GetStats(ctx context.Context, ref repo.Ref) (StatsSummary, error) {
	tc, err := s.source.GetTimecard(ctx, ref)
	if err != nil {
		if !errors.Is(err, repo.ErrTimecardNotFound) {
			return StatsSummary{}, fmt.Errorf("failed to get timecard: %w", err)
		}
		log.Warnf("No timecard in %s (branch %q). Timecard statistics will be unavailable.", ref.FullName(), ref.Branch)
		tc = timecard.Timecard{}
	}

	commits, err := s.source.GetCommits(ctx, ref)
	if err != nil {
		return StatsSummary{}, fmt.Errorf("failed to get commits: %w", err)
	}
	log.Debugf("Calculating stats for %s: %d days, %d commits", ref.FullName(), len(tc.Card), len(commits))

	summary := Summarize(tc, commits)
	summary.Repo = ref
	log.Tracef("Stats: %+v", summary)
	return summary, nil
}
