// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/go-github/v73/github"
	"github.com/sethvargo/go-retry"
	"golang.org/x/oauth2"

	"github.com/sevigo/review-warden/internal/core"
	"github.com/sevigo/review-warden/internal/gitutil"
)

const perPage = 100

// Client defines the GitHub operations reviewer assignment needs. It also
// serves as the core.ReviewerDirectory and core.CommitHistory for the engine.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	TeamMembers(ctx context.Context, teamID int64) ([]string, error)
	Commits(ctx context.Context, repository, number string) ([]core.Commit, error)
	ChangedFiles(ctx context.Context, owner, repo string, number int) ([]string, error)
	PullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers []string) error
	CreateCheckRun(ctx context.Context, owner, repo string, opts github.CreateCheckRunOptions) (*github.CheckRun, error)
}

// RetryConfig bounds the Fibonacci backoff applied to GitHub calls that fail
// with a network error, a 5xx or a 429. Zero MaxRetries disables retrying.
type RetryConfig struct {
	MaxRetries        uint64
	InitialRetryDelay time.Duration
	MaxRetryDelay     time.Duration
}

// DefaultRetryConfig is used unless WithRetry overrides it.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:        3,
	InitialRetryDelay: time.Second,
	MaxRetryDelay:     10 * time.Second,
}

// Option configures a Client.
type Option func(*gitHubClient)

// WithRetry sets the retry policy for API calls.
func WithRetry(cfg RetryConfig) Option {
	return func(g *gitHubClient) { g.retry = cfg }
}

type gitHubClient struct {
	client *github.Client
	retry  RetryConfig
	logger *slog.Logger
}

// NewGitHubClient wraps the official go-github client to provide a focused,
// testable interface for application-specific GitHub operations.
func NewGitHubClient(client *github.Client, logger *slog.Logger, opts ...Option) Client {
	g := &gitHubClient{client: client, retry: DefaultRetryConfig, logger: logger}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewPATClient creates a new GitHub client authenticated with a Personal Access Token (PAT).
// This is useful for CLI tools or local development where an App installation is not available.
func NewPATClient(ctx context.Context, token string, logger *slog.Logger, opts ...Option) Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return NewGitHubClient(github.NewClient(tc), logger, opts...)
}

func (g *gitHubClient) withRetries(ctx context.Context, retryFunc retry.RetryFunc) error {
	if g.retry.MaxRetries == 0 {
		return retryFunc(ctx)
	}
	backoff := retry.NewFibonacci(g.retry.InitialRetryDelay)
	backoff = retry.WithMaxRetries(g.retry.MaxRetries, backoff)
	backoff = retry.WithCappedDuration(g.retry.MaxRetryDelay, backoff)
	return retry.Do(ctx, backoff, retryFunc)
}

// retryable marks err for another attempt when the failure looks transient.
func retryable(resp *github.Response, err error) error {
	if resp == nil || resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return retry.RetryableError(err)
	}
	return err
}

// TeamMembers lists the logins of a team through the /teams/{id}/members
// endpoint, which addresses teams by ID alone.
func (g *gitHubClient) TeamMembers(ctx context.Context, teamID int64) ([]string, error) {
	var logins []string
	page := 1

	for {
		u := fmt.Sprintf("teams/%d/members?per_page=%d&page=%d", teamID, perPage, page)
		req, err := g.client.NewRequest("GET", u, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: team %d: %w", core.ErrDirectoryUnavailable, teamID, err)
		}

		var users []*github.User
		var resp *github.Response
		err = g.withRetries(ctx, func(ctx context.Context) error {
			users = nil
			var err error
			resp, err = g.client.Do(ctx, req, &users)
			if err != nil {
				return retryable(resp, err)
			}
			return nil
		})
		if err != nil {
			g.logger.Error("failed to list team members", "team_id", teamID, "error", err)
			return nil, fmt.Errorf("%w: team %d: %w", core.ErrDirectoryUnavailable, teamID, err)
		}

		for _, user := range users {
			logins = append(logins, user.GetLogin())
		}

		if resp.NextPage == 0 {
			break
		}
		page = resp.NextPage
	}

	return logins, nil
}

// Commits lists a pull request's commits in the order GitHub returns them,
// oldest first. Author is the GitHub login linked to the commit, if any.
func (g *gitHubClient) Commits(ctx context.Context, repository, number string) ([]core.Commit, error) {
	owner, repo, err := gitutil.SplitRepository(repository)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrHistoryUnavailable, err)
	}
	n, err := strconv.Atoi(number)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pull request number %q", core.ErrHistoryUnavailable, number)
	}

	var commits []core.Commit
	opts := &github.ListOptions{PerPage: perPage}

	for {
		var page []*github.RepositoryCommit
		var resp *github.Response
		err := g.withRetries(ctx, func(ctx context.Context) error {
			var err error
			page, resp, err = g.client.PullRequests.ListCommits(ctx, owner, repo, n, opts)
			if err != nil {
				return retryable(resp, err)
			}
			return nil
		})
		if err != nil {
			g.logger.Error("failed to list commits for pull request", "owner", owner, "repo", repo, "pr", n, "error", err)
			return nil, fmt.Errorf("%w: %s#%d: %w", core.ErrHistoryUnavailable, repository, n, err)
		}

		for _, c := range page {
			commits = append(commits, core.Commit{
				SHA:    c.GetSHA(),
				Author: c.GetAuthor().GetLogin(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return commits, nil
}

// ChangedFiles retrieves the paths of files modified in a pull request.
// It handles pagination automatically to ensure all files are fetched
// from the GitHub API, which returns a maximum of 100 files per page.
func (g *gitHubClient) ChangedFiles(ctx context.Context, owner, repo string, number int) ([]string, error) {
	var files []string
	opts := &github.ListOptions{PerPage: perPage}

	for {
		var page []*github.CommitFile
		var resp *github.Response
		err := g.withRetries(ctx, func(ctx context.Context) error {
			var err error
			page, resp, err = g.client.PullRequests.ListFiles(ctx, owner, repo, number, opts)
			if err != nil {
				return retryable(resp, err)
			}
			return nil
		})
		if err != nil {
			g.logger.Error("failed to list files for pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
			return nil, err
		}

		for _, f := range page {
			files = append(files, f.GetFilename())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return files, nil
}

// PullRequest fetches a single pull request.
func (g *gitHubClient) PullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	var pr *github.PullRequest
	err := g.withRetries(ctx, func(ctx context.Context) error {
		var resp *github.Response
		var err error
		pr, resp, err = g.client.PullRequests.Get(ctx, owner, repo, number)
		if err != nil {
			return retryable(resp, err)
		}
		return nil
	})
	if err != nil {
		g.logger.Error("failed to get pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
		return nil, err
	}
	return pr, nil
}

// RequestReviewers asks GitHub to request reviews from the given users.
func (g *gitHubClient) RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers []string) error {
	err := g.withRetries(ctx, func(ctx context.Context) error {
		_, resp, err := g.client.PullRequests.RequestReviewers(ctx, owner, repo, number, github.ReviewersRequest{
			Reviewers: reviewers,
		})
		if err != nil {
			return retryable(resp, err)
		}
		return nil
	})
	if err != nil {
		g.logger.Error("failed to request reviewers", "owner", owner, "repo", repo, "pr", number, "reviewers", reviewers, "error", err)
	}
	return err
}

// CreateCheckRun creates a new check run.
func (g *gitHubClient) CreateCheckRun(ctx context.Context, owner, repo string, opts github.CreateCheckRunOptions) (*github.CheckRun, error) {
	checkRun, _, err := g.client.Checks.CreateCheckRun(ctx, owner, repo, opts)
	if err != nil {
		g.logger.Error("failed to create check run", "owner", owner, "repo", repo, "error", err)
		return nil, err
	}
	return checkRun, nil
}
