package github

import (
	"context"

	gh "github.com/google/go-github/v57/github"
	"github.com/klokku/repocard/pkg/commit"
	"github.com/klokku/repocard/pkg/repo"
	log "github.com/sirupsen/logrus"
)

// GetCommits lists the commits of ref.Branch, newest first, up to the configured cap.
// An empty branch means the repository's default branch.
func (c *Client) GetCommits(ctx context.Context, ref repo.Ref) ([]commit.Commit, error) {
	opts := &gh.CommitsListOptions{
		SHA:         ref.Branch,
		ListOptions: gh.ListOptions{PerPage: c.cfg.PerPage},
	}
	commits := make([]commit.Commit, 0)
	for {
		page, resp, err := c.gh.Repositories.ListCommits(ctx, ref.Owner, ref.Name, opts)
		if err != nil {
			log.Errorf("could not list commits of %s: %v", ref.FullName(), err)
			return nil, notFoundAs(err, repo.ErrRepoNotFound)
		}
		for _, rc := range page {
			commits = append(commits, toCommit(rc))
			if c.cfg.MaxCommits > 0 && len(commits) >= c.cfg.MaxCommits {
				log.Debugf("Commit cap of %d reached for %s", c.cfg.MaxCommits, ref.FullName())
				return commits, nil
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	log.Debugf("Fetched %d commits of %s", len(commits), ref.FullName())
	return commits, nil
}

func toCommit(rc *gh.RepositoryCommit) commit.Commit {
	gitCommit := rc.GetCommit()
	return commit.Commit{
		Committer: toCommitter(rc),
		Message:   gitCommit.GetMessage(),
		Sha:       rc.GetSHA(),
		When:      commitWhen(gitCommit),
	}
}

// toCommitter prefers the GitHub account of the author and falls back to the git author name.
func toCommitter(rc *gh.RepositoryCommit) commit.Committer {
	if author := rc.GetAuthor(); author != nil {
		return commit.Committer{
			Username: author.GetLogin(),
			Avatar:   author.GetAvatarURL(),
			URL:      author.GetHTMLURL(),
			Type:     author.GetType(),
		}
	}
	return commit.Committer{Username: rc.GetCommit().GetAuthor().GetName()}
}

func commitWhen(gitCommit *gh.Commit) string {
	when := gitCommit.GetAuthor().GetDate()
	if when.IsZero() {
		when = gitCommit.GetCommitter().GetDate()
	}
	if when.IsZero() {
		return ""
	}
	return commit.FormatWhen(when.Time)
}
