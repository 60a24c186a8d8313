package stats

import (
	"fmt"
	"time"

	"github.com/klokku/repocard/pkg/commit"
	"github.com/klokku/repocard/pkg/timecard"
)

// AverageWorkPeriodLength returns the mean length of all closed time ranges in the timecard.
// Open ranges and ranges that do not end after they start are skipped. A well-formed
// timecard without closed ranges yields 0.
func AverageWorkPeriodLength(tc timecard.Timecard) Result[time.Duration] {
	if tc.Malformed() {
		return failed[time.Duration](StatusInvalid)
	}

	var total time.Duration
	count := 0
	for _, day := range tc.Card {
		for _, r := range day.Times {
			d, closed := r.Duration()
			if !closed {
				continue
			}
			total += d
			count++
		}
	}
	if count == 0 {
		return ok(time.Duration(0))
	}
	return ok(total / time.Duration(count))
}

// AverageCommitTime returns the mean gap between adjacent commits, in the order given.
// A commit with an unparseable timestamp only breaks the two pairs it belongs to;
// pairs elsewhere in the list still count.
func AverageCommitTime(commits []commit.Commit) Result[time.Duration] {
	if len(commits) == 0 {
		return failed[time.Duration](StatusInvalid)
	}

	var total time.Duration
	pairs := 0
	prev, prevOk := commits[0].Time()
	for i := 1; i < len(commits); i++ {
		cur, curOk := commits[i].Time()
		if prevOk && curOk {
			gap := cur.Sub(prev)
			if gap < 0 {
				gap = -gap
			}
			total += gap
			pairs++
		}
		prev, prevOk = cur, curOk
	}
	if pairs == 0 {
		return failed[time.Duration](StatusInvalid)
	}
	return ok(total / time.Duration(pairs))
}

// AverageCommitsPerWorkPeriod divides the average commit gap by the average work period length.
// The quotient is the size of a typical gap relative to a typical work period; it is not a
// frequency, so smaller values mean more frequent commits.
func AverageCommitsPerWorkPeriod(tc timecard.Timecard, commits []commit.Commit) Result[float64] {
	commitTime := AverageCommitTime(commits)
	workPeriod := AverageWorkPeriodLength(tc)
	if !commitTime.Ok() || !workPeriod.Ok() || workPeriod.Value == 0 {
		return failed[float64](StatusInvalid)
	}
	return ok(float64(commitTime.Value) / float64(workPeriod.Value))
}

// Contributors counts the time ranges attributed to each contributor.
// Ranges without a contributor are ignored.
func Contributors(tc timecard.Timecard) Result[map[string]int] {
	if tc.Malformed() {
		return failed[map[string]int](StatusMalformed)
	}

	contributors := make(map[string]int)
	for _, day := range tc.Card {
		for _, r := range day.Times {
			if r.By == "" {
				continue
			}
			contributors[r.By]++
		}
	}
	return ok(contributors)
}

func AverageCommitsPerContributorPerWorkPeriod(tc timecard.Timecard, commits []commit.Commit) Result[float64] {
	perWorkPeriod := AverageCommitsPerWorkPeriod(tc, commits)
	if !perWorkPeriod.Ok() {
		return failed[float64](StatusUnavailable)
	}
	contributors := Contributors(tc)
	if !contributors.Ok() || len(contributors.Value) == 0 {
		return failed[float64](StatusUnavailable)
	}
	return ok(perWorkPeriod.Value / float64(len(contributors.Value)))
}

// Instant is either epoch milliseconds or a point in time. Untyped integer
// constants infer as int and are read as epoch milliseconds too.
type Instant interface {
	int | int64 | time.Time
}

// FormatTime renders the hour of day and minute of hour of an instant, e.g. "10 hours and 30 minutes".
// Epoch milliseconds are read in the local time zone, a time.Time in its own location.
func FormatTime[T Instant](instant T) string {
	var t time.Time
	switch v := any(instant).(type) {
	case int:
		t = time.UnixMilli(int64(v))
	case int64:
		t = time.UnixMilli(v)
	case time.Time:
		t = v
	}
	return fmt.Sprintf("%d hours and %d minutes", t.Hour(), t.Minute())
}

// FormatDuration renders a sub-day duration with FormatTime.
func FormatDuration(d time.Duration) string {
	return FormatTime(time.Time{}.Add(d))
}
