package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCsvStatsRendererImpl_RenderStats(t1 *testing.T) {
	type args struct {
		stats StatsSummary
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "RenderStats with valid data",
			args: args{
				stats: StatsSummary{
					CommitCount:                 3,
					WorkPeriodCount:             2,
					AverageWorkPeriodLength:     Result[time.Duration]{Value: 5 * time.Hour},
					AverageCommitTime:           Result[time.Duration]{Value: 37*time.Minute + 30*time.Second},
					AverageCommitsPerWorkPeriod: Result[float64]{Value: 0.125},
					Contributors:                Result[map[string]int]{Value: map[string]int{"user two": 1, "user": 3, "alice": 1}},
					AverageCommitsPerContributorPerWorkPeriod: Result[float64]{Value: 0.0625},
				},
			},
			want: "Statistic,Value,Status\n" +
				"Commits,3,ok\n" +
				"Work periods,2,ok\n" +
				"Average work period length,05:00:00,ok\n" +
				"Average commit time,00:37:30,ok\n" +
				"Average commits per work period,0.125000,ok\n" +
				"Average commits per contributor per work period,0.062500,ok\n" +
				"\n" +
				"Contributor,Work periods\n" +
				"user,3\n" +
				"alice,1\n" +
				"user two,1\n",
		},
		{
			name: "RenderStats without a timecard",
			args: args{
				stats: StatsSummary{
					CommitCount:                 1,
					AverageWorkPeriodLength:     Result[time.Duration]{Status: StatusInvalid},
					AverageCommitTime:           Result[time.Duration]{Status: StatusInvalid},
					AverageCommitsPerWorkPeriod: Result[float64]{Status: StatusInvalid},
					Contributors:                Result[map[string]int]{Status: StatusMalformed},
					AverageCommitsPerContributorPerWorkPeriod: Result[float64]{Status: StatusUnavailable},
				},
			},
			want: "Statistic,Value,Status\n" +
				"Commits,1,ok\n" +
				"Work periods,0,ok\n" +
				"Average work period length,,invalid\n" +
				"Average commit time,,invalid\n" +
				"Average commits per work period,,invalid\n" +
				"Average commits per contributor per work period,,unavailable\n",
		},
	}
	for _, tt := range tests {
		t1.Run(tt.name, func(t1 *testing.T) {
			t := NewCsvStatsTransformer()
			got, err := t.RenderStats(tt.args.stats)
			assert.NoError(t1, err)
			assert.Equal(t1, tt.want, got)
		})
	}
}

func Test_durationToString(t *testing.T) {
	assert.Equal(t, "00:00:00", durationToString(0))
	assert.Equal(t, "02:15:00", durationToString(2*time.Hour+15*time.Minute))
	assert.Equal(t, "30:00:05", durationToString(30*time.Hour+5*time.Second))
}
