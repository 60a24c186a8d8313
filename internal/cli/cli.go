package cli

import (
	"github.com/urfave/cli/v2"
)

const defaultConfigPath = "./config/application.yaml"

// NewApp builds the repocard command line. Without a command it serves the HTTP API.
func NewApp() *cli.App {
	return &cli.App{
		Name:  "repocard",
		Usage: "Commit timelines and timecard statistics for GitHub repositories",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration file",
				Value:   defaultConfigPath,
				EnvVars: []string{"REPOCARD_CONFIG"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serve,
			},
			{
				Name:  "stats",
				Usage: "Compute statistics from a timecard file and a commits file",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     "timecard",
						Aliases:  []string{"t"},
						Usage:    "Timecard JSON file",
						Required: true,
					},
					&cli.PathFlag{
						Name:     "commits",
						Usage:    "JSON array of commits",
						Required: true,
					},
					formatFlag("text, json or csv"),
				},
				Action: statsAction,
			},
			{
				Name:  "timeline",
				Usage: "Compute timeline markers from a commits file",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     "commits",
						Usage:    "JSON array of commits",
						Required: true,
					},
					formatFlag("text or json"),
				},
				Action: timelineAction,
			},
		},
	}
}

func formatFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: " + usage,
		Value:   "text",
	}
}
