package stats

import (
	"context"

	"github.com/klokku/repocard/pkg/commit"
	"github.com/klokku/repocard/pkg/repo"
	"github.com/klokku/repocard/pkg/timecard"
)

type sourceStub struct {
	timecard    timecard.Timecard
	timecardErr error
	commits     []commit.Commit
	commitsErr  error
	requested   []repo.Ref
}

func newSourceStub() *sourceStub {
	return &sourceStub{}
}

func (s *sourceStub) GetTimecard(ctx context.Context, ref repo.Ref) (timecard.Timecard, error) {
	s.requested = append(s.requested, ref)
	if s.timecardErr != nil {
		return timecard.Timecard{}, s.timecardErr
	}
	return s.timecard, nil
}

func (s *sourceStub) GetCommits(ctx context.Context, ref repo.Ref) ([]commit.Commit, error) {
	if s.commitsErr != nil {
		return nil, s.commitsErr
	}
	return s.commits, nil
}

func (s *sourceStub) reset() {
	*s = sourceStub{}
}
