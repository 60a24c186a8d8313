package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/klokku/repocard/pkg/commit"
	"github.com/klokku/repocard/pkg/stats"
	"github.com/klokku/repocard/pkg/timecard"
	"github.com/klokku/repocard/pkg/timeline"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	labelColor = color.New(color.FgCyan)
	warnColor  = color.New(color.FgYellow)
	breakColor = color.New(color.FgHiMagenta)
)

func statsAction(c *cli.Context) error {
	tc, err := readTimecard(c.Path("timecard"))
	if err != nil {
		return err
	}
	commits, err := readCommits(c.Path("commits"))
	if err != nil {
		return err
	}

	summary := stats.Summarize(tc, commits)
	out := c.App.Writer
	switch c.String("format") {
	case "json":
		return writeJSON(out, stats.ToDTO(&summary))
	case "csv":
		csv, err := stats.NewCsvStatsTransformer().RenderStats(summary)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, csv)
		return err
	case "text":
		writeStatsText(out, summary)
		return nil
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q", c.String("format")), 2)
	}
}

func timelineAction(c *cli.Context) error {
	commits, err := readCommits(c.Path("commits"))
	if err != nil {
		return err
	}

	markers := timeline.Normalize(commits)
	out := c.App.Writer
	switch c.String("format") {
	case "json":
		dtos := make([]timeline.MarkerDTO, 0, len(markers))
		for _, m := range markers {
			dtos = append(dtos, timeline.MarkerToDTO(m))
		}
		return writeJSON(out, dtos)
	case "text":
		writeTimelineText(out, markers)
		return nil
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q", c.String("format")), 2)
	}
}

// readTimecard loads a timecard file. Content that is not JSON yields a malformed timecard.
func readTimecard(path string) (timecard.Timecard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return timecard.Timecard{}, fmt.Errorf("could not read timecard: %w", err)
	}
	var tc timecard.Timecard
	if err := json.Unmarshal(data, &tc); err != nil {
		log.Warnf("Timecard %s is not valid JSON: %v", path, err)
		return timecard.Timecard{}, nil
	}
	return tc, nil
}

// readCommits loads a JSON array of commits. Entries that are not commit objects are skipped.
func readCommits(path string) ([]commit.Commit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read commits: %w", err)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("could not parse commits: %w", err)
	}
	commits := make([]commit.Commit, 0, len(entries))
	for i, entry := range entries {
		var c commit.Commit
		if err := json.Unmarshal(entry, &c); err != nil {
			log.Warnf("Skipping commit %d of %s: %v", i, path, err)
			continue
		}
		commits = append(commits, c)
	}
	return commits, nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeStatsText(w io.Writer, s stats.StatsSummary) {
	line := func(label, value string) {
		labelColor.Fprintf(w, "%-50s", label+":")
		fmt.Fprintln(w, value)
	}
	line("Commits", fmt.Sprint(s.CommitCount))
	line("Work periods", fmt.Sprint(s.WorkPeriodCount))
	line("Average work period length", durationText(s.AverageWorkPeriodLength))
	line("Average commit time", durationText(s.AverageCommitTime))
	line("Average commits per work period", ratioText(s.AverageCommitsPerWorkPeriod))
	line("Average commits per contributor per work period", ratioText(s.AverageCommitsPerContributorPerWorkPeriod))

	if !s.Contributors.Ok() {
		line("Contributors", warnColor.Sprintf("n/a (%s)", s.Contributors.Status))
		return
	}
	names := make([]string, 0, len(s.Contributors.Value))
	for name := range s.Contributors.Value {
		names = append(names, name)
	}
	sort.Strings(names)
	line("Contributors", fmt.Sprint(len(names)))
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %d\n", name, s.Contributors.Value[name])
	}
}

func durationText(r stats.Result[time.Duration]) string {
	if !r.Ok() {
		return warnColor.Sprintf("n/a (%s)", r.Status)
	}
	return stats.FormatDuration(r.Value)
}

func ratioText(r stats.Result[float64]) string {
	if !r.Ok() {
		return warnColor.Sprintf("n/a (%s)", r.Status)
	}
	return fmt.Sprintf("%.6f", r.Value)
}

func writeTimelineText(w io.Writer, markers []timeline.Marker) {
	for _, m := range markers {
		sha := m.Commit.Sha
		if len(sha) > 7 {
			sha = sha[:7]
		}
		labelColor.Fprintf(w, "%-7s ", sha)
		fmt.Fprintf(w, "%-20s %12.4f  %s", m.Commit.When, m.Length, m.Commit.Committer.Username)
		if m.BreakInside {
			breakColor.Fprint(w, "  [break]")
		}
		fmt.Fprintln(w)
	}
}
