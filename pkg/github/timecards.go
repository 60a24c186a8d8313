package github

import (
	"context"
	"encoding/json"
	"fmt"

	gh "github.com/google/go-github/v57/github"
	"github.com/klokku/repocard/internal/event_bus"
	"github.com/klokku/repocard/pkg/repo"
	"github.com/klokku/repocard/pkg/timecard"
	log "github.com/sirupsen/logrus"
)

// GetTimecard reads the timecard file of ref.Branch. A file that is not valid
// JSON is returned as a malformed timecard rather than an error.
func (c *Client) GetTimecard(ctx context.Context, ref repo.Ref) (timecard.Timecard, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: ref.Branch}
	file, _, _, err := c.gh.Repositories.GetContents(ctx, ref.Owner, ref.Name, c.cfg.TimecardPath, opts)
	if err != nil {
		log.Debugf("could not get timecard of %s: %v", ref.FullName(), err)
		return timecard.Timecard{}, notFoundAs(err, repo.ErrTimecardNotFound)
	}
	if file == nil {
		// the path is a directory
		return timecard.Timecard{}, repo.ErrTimecardNotFound
	}

	content, err := file.GetContent()
	if err != nil {
		log.Errorf("could not decode timecard of %s: %v", ref.FullName(), err)
		return timecard.Timecard{}, fmt.Errorf("could not decode timecard: %w", err)
	}

	var tc timecard.Timecard
	if err := json.Unmarshal([]byte(content), &tc); err != nil {
		log.Warnf("Timecard of %s is not valid JSON: %v", ref.FullName(), err)
		return timecard.Timecard{}, nil
	}
	return tc, nil
}

// WriteTimecard commits tc as a new timecard file on ref.Branch.
func (c *Client) WriteTimecard(ctx context.Context, ref repo.Ref, tc timecard.Timecard) error {
	content, err := json.MarshalIndent(tc, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode timecard: %w", err)
	}

	opts := &gh.RepositoryContentFileOptions{
		Message: gh.String("Add timecard"),
		Content: content,
	}
	if ref.Branch != "" {
		opts.Branch = gh.String(ref.Branch)
	}
	_, _, err = c.gh.Repositories.CreateFile(ctx, ref.Owner, ref.Name, c.cfg.TimecardPath, opts)
	if err != nil {
		log.Errorf("could not create timecard in %s: %v", ref.FullName(), err)
		return notFoundAs(err, repo.ErrRepoNotFound)
	}
	log.Infof("Created timecard %s in %s", c.cfg.TimecardPath, ref.FullName())
	return nil
}

// SubscribeTimecardWriter commits a timecard to every imported repository that asked for one.
func SubscribeTimecardWriter(bus *event_bus.EventBus, client *Client) (unsubscribe func()) {
	return event_bus.SubscribeTyped[event_bus.RepoImported](
		bus,
		event_bus.RepoImportedType,
		func(e event_bus.EventT[event_bus.RepoImported]) error {
			log.Debugf("received repo imported event: %s/%s", e.Data.Owner, e.Data.Name)
			return client.onRepoImported(e.Context(), e.Data)
		},
	)
}

func (c *Client) onRepoImported(ctx context.Context, imported event_bus.RepoImported) error {
	if !imported.CreateTimecard {
		return nil
	}
	tc := timecard.NewTemplate(imported.Name, "")
	if imported.Timecard != nil {
		tc = *imported.Timecard
		if tc.Card == nil {
			tc.Card = []timecard.DayEntry{}
		}
	}
	ref := repo.Ref{Owner: imported.Owner, Name: imported.Name, Branch: imported.Branch}
	if err := c.WriteTimecard(ctx, ref, tc); err != nil {
		return fmt.Errorf("failed to write timecard: %w", err)
	}
	return nil
}
