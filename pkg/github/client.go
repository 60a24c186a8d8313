package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v57/github"
	"github.com/klokku/repocard/internal/config"
	"github.com/klokku/repocard/pkg/repo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Client reads commits and timecards from GitHub and writes timecards back.
type Client struct {
	gh  *gh.Client
	cfg config.GitHub
}

func NewClient(cfg config.GitHub) (*Client, error) {
	client := newGithubClient(cfg.Token)
	if cfg.BaseUrl != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.BaseUrl, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid github base url %q: %w", cfg.BaseUrl, err)
		}
		client.BaseURL = base
		client.UploadURL = base
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = 100
	}
	return &Client{gh: client, cfg: cfg}, nil
}

func newGithubClient(token string) *gh.Client {
	if token == "" {
		return gh.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return gh.NewClient(oauth2.NewClient(context.Background(), ts))
}

func (c *Client) GetDefaultBranch(ctx context.Context, owner, name string) (string, error) {
	repository, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		log.Errorf("could not get repository %s/%s: %v", owner, name, err)
		return "", notFoundAs(err, repo.ErrRepoNotFound)
	}
	return repository.GetDefaultBranch(), nil
}

func (c *Client) ListBranches(ctx context.Context, owner, name string) ([]string, error) {
	opts := &gh.BranchListOptions{ListOptions: gh.ListOptions{PerPage: c.cfg.PerPage}}
	var branches []string
	for {
		page, resp, err := c.gh.Repositories.ListBranches(ctx, owner, name, opts)
		if err != nil {
			log.Errorf("could not list branches of %s/%s: %v", owner, name, err)
			return nil, notFoundAs(err, repo.ErrRepoNotFound)
		}
		for _, b := range page {
			branches = append(branches, b.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return branches, nil
}

// notFoundAs replaces a GitHub 404 with target and wraps any other error.
func notFoundAs(err error, target error) error {
	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
		return target
	}
	return fmt.Errorf("github request failed: %w", err)
}
