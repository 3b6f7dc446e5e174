// Package rules evaluates review rules against pull requests and assigns reviewers.
package rules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sevigo/review-warden/internal/core"
)

// ErrNoCandidates is returned when a rule's reviewer resolves to nobody, e.g. an empty team.
var ErrNoCandidates = errors.New("reviewer resolved to no candidates")

// Engine applies review rules. It holds no locks: running two applications
// against the same pull request concurrently can lose updates, so callers must
// serialize per pull request.
type Engine struct {
	directory core.ReviewerDirectory
	history   core.CommitHistory
	store     core.PullRequestStore
	logger    *slog.Logger
}

// NewEngine creates an Engine backed by the given directory, commit history and store.
func NewEngine(directory core.ReviewerDirectory, history core.CommitHistory, store core.PullRequestStore, logger *slog.Logger) *Engine {
	return &Engine{
		directory: directory,
		history:   history,
		store:     store,
		logger:    logger,
	}
}

// PossibleReviewers returns the usernames a rule's reviewer denotes: the team's
// members for a team ID, or the literal username.
func (e *Engine) PossibleReviewers(ctx context.Context, rule *core.ReviewRule) ([]string, error) {
	ref := rule.ReviewerRef()
	if ref.Kind == core.KindLiteral {
		return []string{ref.Username}, nil
	}

	members, err := e.directory.TeamMembers(ctx, ref.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reviewers for rule %q: %w", rule.Name, err)
	}
	return members, nil
}

// AddReviewer picks one reviewer for pr from the rule's candidates, skipping the
// pull request author unless the author is the only candidate. A candidate who
// is already pending is returned without changing pr. Otherwise the first
// eligible candidate is appended to the pending list and the record is saved.
func (e *Engine) AddReviewer(ctx context.Context, rule *core.ReviewRule, pr *core.PullRequest) (string, error) {
	reviewer, _, err := e.addReviewer(ctx, rule, pr)
	return reviewer, err
}

func (e *Engine) addReviewer(ctx context.Context, rule *core.ReviewRule, pr *core.PullRequest) (string, bool, error) {
	candidates, err := e.PossibleReviewers(ctx, rule)
	if err != nil {
		return "", false, err
	}
	if len(candidates) == 0 {
		return "", false, fmt.Errorf("rule %q: %w", rule.Name, ErrNoCandidates)
	}

	author, err := e.author(ctx, pr)
	if err != nil {
		return "", false, err
	}
	eligible := excludeAuthor(candidates, author)

	for _, u := range eligible {
		if pr.HasPendingReview(u) {
			e.logger.Debug("reviewer already pending", "rule", rule.Name, "repo", pr.Repository, "pr", pr.Number, "reviewer", u)
			return u, false, nil
		}
	}

	chosen := eligible[0]
	pr.AddPendingReview(chosen)
	if err := e.store.SavePullRequest(ctx, pr); err != nil {
		return "", false, fmt.Errorf("failed to save pull request %s#%s: %w", pr.Repository, pr.Number, err)
	}
	e.logger.Info("reviewer added", "rule", rule.Name, "repo", pr.Repository, "pr", pr.Number, "reviewer", chosen)
	return chosen, true, nil
}

// author returns the author of the earliest commit, or "" for an empty history.
func (e *Engine) author(ctx context.Context, pr *core.PullRequest) (string, error) {
	commits, err := e.history.Commits(ctx, pr.Repository, pr.Number)
	if err != nil {
		return "", fmt.Errorf("failed to determine author of %s#%s: %w", pr.Repository, pr.Number, err)
	}
	if len(commits) == 0 {
		return "", nil
	}
	return commits[0].Author, nil
}

// excludeAuthor drops author from candidates, falling back to the full list
// when the author is the only candidate.
func excludeAuthor(candidates []string, author string) []string {
	if author == "" {
		return candidates
	}
	eligible := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c != author {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return candidates
	}
	return eligible
}

// Matches evaluates the rule's matching strategy against payload.
func (e *Engine) Matches(rule *core.ReviewRule, payload *core.PullRequestPayload) (string, bool, error) {
	m, err := MatcherFor(rule)
	if err != nil {
		return "", false, err
	}
	token, ok := m.Match(payload)
	return token, ok, nil
}

// Apply evaluates a single rule against a pull request payload. A rule that
// does not match yields a failure result and leaves the record untouched; only
// errors from the directory, commit history or store are returned as errors.
func (e *Engine) Apply(ctx context.Context, rule *core.ReviewRule, payload *core.PullRequestPayload) (core.RuleResult, error) {
	repo, number := payload.Repository(), payload.Number

	token, ok, err := e.Matches(rule, payload)
	if err != nil {
		return core.RuleResult{}, err
	}
	if !ok {
		e.logger.Debug("rule did not match", "rule", rule.Name, "repo", repo, "pr", number)
		return core.RuleResult{RuleName: rule.Name, Outcome: core.OutcomeFailure}, nil
	}

	pr, err := e.store.FindOrCreatePullRequest(ctx, repo, number)
	if err != nil {
		return core.RuleResult{}, fmt.Errorf("failed to load pull request %s#%s: %w", repo, number, err)
	}

	e.logger.Debug("rule matched", "rule", rule.Name, "repo", repo, "pr", number, "match", token)
	reviewer, added, err := e.addReviewer(ctx, rule, pr)
	if err != nil {
		return core.RuleResult{}, err
	}
	return core.RuleResult{
		RuleName: rule.Name,
		Outcome:  core.OutcomeSuccess,
		Reviewer: reviewer,
		Added:    added,
	}, nil
}

// ApplyAll applies rules in order and stops at the first error, returning the
// results gathered so far.
func (e *Engine) ApplyAll(ctx context.Context, rules []core.ReviewRule, payload *core.PullRequestPayload) ([]core.RuleResult, error) {
	results := make([]core.RuleResult, 0, len(rules))
	for i := range rules {
		res, err := e.Apply(ctx, &rules[i], payload)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
