package stats

import (
	"time"

	"github.com/klokku/repocard/pkg/commit"
	"github.com/klokku/repocard/pkg/repo"
	"github.com/klokku/repocard/pkg/timecard"
)

type StatsSummary struct {
	Repo            repo.Ref
	CommitCount     int
	WorkPeriodCount int

	AverageWorkPeriodLength                   Result[time.Duration]
	AverageCommitTime                         Result[time.Duration]
	AverageCommitsPerWorkPeriod               Result[float64]
	Contributors                              Result[map[string]int]
	AverageCommitsPerContributorPerWorkPeriod Result[float64]
}

// Summarize computes every statistic for one timecard and commit list.
func Summarize(tc timecard.Timecard, commits []commit.Commit) StatsSummary {
	return StatsSummary{
		CommitCount:     len(commits),
		WorkPeriodCount: countWorkPeriods(tc),

		AverageWorkPeriodLength:                   AverageWorkPeriodLength(tc),
		AverageCommitTime:                         AverageCommitTime(commits),
		AverageCommitsPerWorkPeriod:               AverageCommitsPerWorkPeriod(tc, commits),
		Contributors:                              Contributors(tc),
		AverageCommitsPerContributorPerWorkPeriod: AverageCommitsPerContributorPerWorkPeriod(tc, commits),
	}
}

func countWorkPeriods(tc timecard.Timecard) int {
	count := 0
	for _, day := range tc.Card {
		for _, r := range day.Times {
			if _, closed := r.Duration(); closed {
				count++
			}
		}
	}
	return count
}
