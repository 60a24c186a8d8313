package timeline

import (
	"context"
	"errors"
	"testing"

	"github.com/klokku/repocard/pkg/commit"
	"github.com/klokku/repocard/pkg/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// every length ends up divided by 7*6*5*4*3*2*1
const totalDivisor = 5040.0

func commitsAt(whens ...string) []commit.Commit {
	commits := make([]commit.Commit, 0, len(whens))
	for i, when := range whens {
		commits = append(commits, commit.Commit{
			Committer: commit.Committer{Username: "1egoman"},
			Message:   "change",
			Sha:       string(rune('a' + i)),
			When:      when,
		})
	}
	return commits
}

func TestNormalize_Empty(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, Normalize([]commit.Commit{}))
}

func TestNormalize_SingleCommit(t *testing.T) {
	markers := Normalize(commitsAt("2016-03-26T10:45:00Z"))

	require.Len(t, markers, 1)
	assert.Equal(t, float64(ReferenceLength), markers[0].TimeLength)
	assert.InDelta(t, 100/totalDivisor, markers[0].Length, 1e-9)
	assert.False(t, markers[0].BreakInside)
}

func TestNormalize_LengthsAndBreaks(t *testing.T) {
	// given
	commits := commitsAt(
		"2016-03-26T12:45:00Z",
		"2016-03-26T12:44:00Z",
		"2016-03-26T10:44:00Z",
		"2016-03-26T10:45:00Z",
	)

	// when
	markers := Normalize(commits)

	// then
	require.Len(t, markers, 4)
	tests := []struct {
		name        string
		timeLength  float64
		breakInside bool
	}{
		{name: "first commit", timeLength: 100, breakInside: false},
		{name: "one minute", timeLength: 60_000, breakInside: false},
		{name: "two hours", timeLength: 7_200_000, breakInside: true},
		{name: "one minute forward", timeLength: 60_000, breakInside: false},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, commits[i], markers[i].Commit)
			assert.Equal(t, tt.timeLength, markers[i].TimeLength)
			assert.InDelta(t, tt.timeLength/totalDivisor, markers[i].Length, 1e-9)
			assert.Equal(t, tt.breakInside, markers[i].BreakInside)
		})
	}
}

func TestNormalize_BreakThresholdIsExclusive(t *testing.T) {
	// 201600ms compresses to exactly 40
	markers := Normalize(commitsAt("2016-03-26T10:00:00Z", "2016-03-26T10:03:21.600Z", "2016-03-26T10:06:43.201Z"))

	require.Len(t, markers, 3)
	assert.InDelta(t, 40, markers[1].Length, 1e-9)
	assert.False(t, markers[1].BreakInside)
	assert.True(t, markers[2].BreakInside)
}

func TestNormalize_UnparseableWhen(t *testing.T) {
	commits := commitsAt("2016-03-26T10:00:00Z", "yesterday", "2016-03-26T12:00:00Z")

	markers := Normalize(commits)

	require.Len(t, markers, 3)
	assert.Equal(t, float64(0), markers[1].TimeLength)
	assert.Equal(t, float64(0), markers[2].TimeLength)
	assert.Equal(t, float64(0), markers[2].Length)
	assert.False(t, markers[2].BreakInside)
}

func TestNormalize_IsoFormsWithoutExtendedOffset(t *testing.T) {
	commits := commitsAt("2016-03-26T11:45:00+0100", "2016-03-26 10:46:00Z", "2016-03-26T10:47:00.000Z")

	markers := Normalize(commits)

	require.Len(t, markers, 3)
	assert.Equal(t, float64(60_000), markers[1].TimeLength)
	assert.Equal(t, float64(60_000), markers[2].TimeLength)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	commits := commitsAt("2016-03-26T10:00:00Z", "2016-03-26T12:00:00Z")
	before := make([]commit.Commit, len(commits))
	copy(before, commits)

	Normalize(commits)

	assert.Equal(t, before, commits)
}

type commitSourceStub struct {
	commits []commit.Commit
	err     error
}

func (s *commitSourceStub) GetCommits(_ context.Context, _ repo.Ref) ([]commit.Commit, error) {
	return s.commits, s.err
}

func TestServiceImpl_GetTimeline(t *testing.T) {
	service := NewService(&commitSourceStub{commits: commitsAt("2016-03-26T10:00:00Z", "2016-03-26T10:01:00Z")})

	markers, err := service.GetTimeline(context.Background(), repo.Ref{Owner: "1egoman", Name: "waltz"})

	require.NoError(t, err)
	require.Len(t, markers, 2)
	assert.Equal(t, float64(60_000), markers[1].TimeLength)
}

func TestServiceImpl_GetTimeline_SourceError(t *testing.T) {
	service := NewService(&commitSourceStub{err: repo.ErrRepoNotFound})

	_, err := service.GetTimeline(context.Background(), repo.Ref{Owner: "1egoman", Name: "waltz"})

	assert.True(t, errors.Is(err, repo.ErrRepoNotFound))
}
