package stats

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderStats(stats StatsSummary) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsTransformer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

func (t *CsvStatsRendererImpl) RenderStats(stats StatsSummary) (string, error) {
	data := [][]string{
		{"Statistic", "Value", "Status"},
		{"Commits", strconv.Itoa(stats.CommitCount), StatusOK.String()},
		{"Work periods", strconv.Itoa(stats.WorkPeriodCount), StatusOK.String()},
		durationRow("Average work period length", stats.AverageWorkPeriodLength),
		durationRow("Average commit time", stats.AverageCommitTime),
		ratioRow("Average commits per work period", stats.AverageCommitsPerWorkPeriod),
		ratioRow("Average commits per contributor per work period", stats.AverageCommitsPerContributorPerWorkPeriod),
	}

	if stats.Contributors.Ok() {
		data = append(data, []string{}, []string{"Contributor", "Work periods"})
		data = append(data, contributorRows(stats.Contributors.Value)...)
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func durationRow(name string, r Result[time.Duration]) []string {
	if !r.Ok() {
		return []string{name, "", r.Status.String()}
	}
	return []string{name, durationToString(r.Value), r.Status.String()}
}

func ratioRow(name string, r Result[float64]) []string {
	if !r.Ok() {
		return []string{name, "", r.Status.String()}
	}
	return []string{name, strconv.FormatFloat(r.Value, 'f', 6, 64), r.Status.String()}
}

// contributorRows lists contributors by descending count, then by name.
func contributorRows(contributors map[string]int) [][]string {
	names := make([]string, 0, len(contributors))
	for name := range contributors {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if contributors[names[i]] != contributors[names[j]] {
			return contributors[names[i]] > contributors[names[j]]
		}
		return names[i] < names[j]
	})

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(contributors[name])})
	}
	return rows
}

func durationToString(duration time.Duration) string {
	hours := strconv.Itoa(int(duration.Hours()))
	if len(hours) == 1 {
		hours = "0" + hours
	}
	minutes := strconv.Itoa(int(duration.Minutes()) % 60)
	if len(minutes) == 1 {
		minutes = "0" + minutes
	}
	seconds := strconv.Itoa(int(duration.Seconds()) % 60)
	if len(seconds) == 1 {
		seconds = "0" + seconds
	}
	return hours + ":" + minutes + ":" + seconds
}
