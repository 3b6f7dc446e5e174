package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/sevigo/review-warden/internal/config"
	"github.com/sevigo/review-warden/internal/core"
	"github.com/sevigo/review-warden/internal/github"
	"github.com/sevigo/review-warden/internal/rules"
	"github.com/sevigo/review-warden/internal/storage"
)

// AssignJob applies a repository's review rules to a pull request and keeps
// the pending and completed reviewer lists up to date.
type AssignJob struct {
	cfg     *config.Config
	store   storage.Store
	clients github.ClientFactory
	locks   prLocks
	logger  *slog.Logger
}

// NewAssignJob creates an AssignJob. clients builds the GitHub client used for
// an event's installation.
func NewAssignJob(cfg *config.Config, store storage.Store, clients github.ClientFactory, logger *slog.Logger) *AssignJob {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if store == nil {
		panic("store cannot be nil")
	}
	if clients == nil {
		panic("client factory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &AssignJob{cfg: cfg, store: store, clients: clients, logger: logger}
}

var _ core.Job = (*AssignJob)(nil)

// Run dispatches on the event type. Jobs for the same pull request run one at a time.
func (j *AssignJob) Run(ctx context.Context, event *core.GitHubEvent) error {
	switch {
	case event == nil:
		return validateEvent(event)
	case event.Type == core.AssignReviewers:
		_, err := j.Assign(ctx, event)
		return err
	case event.Type == core.ReviewSubmitted:
		return j.CompleteReview(ctx, event)
	default:
		return fmt.Errorf("unsupported event type %s", event.Type)
	}
}

// Assign runs every rule of the event's repository, in stored order, and
// returns one result per rule evaluated. The chosen reviewers are requested
// on GitHub when assignment.request_reviews is set.
func (j *AssignJob) Assign(ctx context.Context, event *core.GitHubEvent) ([]core.RuleResult, error) {
	if err := validateEvent(event); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	defer j.locks.lock(event.RepoFullName, event.PRNumber)()

	logger := j.logger.With("repo", event.RepoFullName, "pr", event.PRNumber)

	ruleSet, err := j.store.ForRepository(ctx, event.RepoFullName)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules for %s: %w", event.RepoFullName, err)
	}
	if len(ruleSet) == 0 {
		logger.Info("no review rules configured")
		return []core.RuleResult{}, nil
	}

	client, err := j.clients(ctx, event.InstallationID)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	payload := event.Payload()
	if rules.NeedsChangedFiles(ruleSet) {
		files, err := client.ChangedFiles(ctx, event.RepoOwner, event.RepoName, event.PRNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to list changed files: %w", err)
		}
		payload.ChangedFiles = files
	}

	engine := rules.NewEngine(client, client, j.store, logger)
	results, err := engine.ApplyAll(ctx, ruleSet, payload)
	if err != nil {
		return results, fmt.Errorf("failed to apply review rules: %w", err)
	}

	if j.cfg.Assignment.RequestReviews {
		if err := j.requestReviewers(ctx, client, event, results); err != nil {
			return results, err
		}
	}

	if j.cfg.Assignment.CheckRun && event.HeadSHA != "" {
		if err := github.NewReporter(client).Report(ctx, event, results); err != nil {
			return results, err
		}
	}

	logger.Info("reviewer assignment finished", "rules", len(results))
	return results, nil
}

// requestReviewers asks GitHub for reviews from every reviewer the rules
// chose, including ones already pending, so a request that failed on an
// earlier run is sent again. Re-requesting a pending reviewer is a no-op on
// GitHub. GitHub refuses review requests for the pull request's own author,
// so the author is left pending in the store but not requested.
func (j *AssignJob) requestReviewers(ctx context.Context, client github.Client, event *core.GitHubEvent, results []core.RuleResult) error {
	var reviewers []string
	for _, res := range results {
		if !res.Success() || res.Reviewer == "" || slices.Contains(reviewers, res.Reviewer) {
			continue
		}
		if res.Reviewer == event.Author {
			j.logger.Warn("not requesting review from pull request author", "repo", event.RepoFullName, "pr", event.PRNumber, "reviewer", res.Reviewer)
			continue
		}
		reviewers = append(reviewers, res.Reviewer)
	}
	if len(reviewers) == 0 {
		return nil
	}

	if err := client.RequestReviewers(ctx, event.RepoOwner, event.RepoName, event.PRNumber, reviewers); err != nil {
		return fmt.Errorf("failed to request reviewers: %w", err)
	}
	return nil
}

// CompleteReview moves the event's reviewer from the pending to the completed
// list. Reviews on pull requests that were never tracked are ignored.
func (j *AssignJob) CompleteReview(ctx context.Context, event *core.GitHubEvent) error {
	if err := validateEvent(event); err != nil {
		return fmt.Errorf("input validation failed: %w", err)
	}
	defer j.locks.lock(event.RepoFullName, event.PRNumber)()

	number := strconv.Itoa(event.PRNumber)
	pr, err := j.store.GetPullRequest(ctx, event.RepoFullName, number)
	if errors.Is(err, storage.ErrNotFound) {
		j.logger.Debug("review on untracked pull request", "repo", event.RepoFullName, "pr", event.PRNumber)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load pull request %s#%s: %w", event.RepoFullName, number, err)
	}

	if !pr.CompleteReview(event.Reviewer) {
		return nil
	}
	if err := j.store.SavePullRequest(ctx, pr); err != nil {
		return fmt.Errorf("failed to save pull request %s#%s: %w", event.RepoFullName, number, err)
	}
	j.logger.Info("review completed", "repo", event.RepoFullName, "pr", event.PRNumber, "reviewer", event.Reviewer)
	return nil
}
