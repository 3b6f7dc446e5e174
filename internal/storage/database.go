// Package storage persists review rules and pull request review state in PostgreSQL.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	// import db drivers
	_ "github.com/lib/pq"

	"github.com/sevigo/review-warden/internal/core"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = core.ErrNotFound

// Store defines the interface for all database operations.
type Store interface {
	core.RuleStore
	core.PullRequestStore

	ListRules(ctx context.Context) ([]core.ReviewRule, error)
	CreateRule(ctx context.Context, rule *core.ReviewRule) error
	DeleteRule(ctx context.Context, id int64) error
	GetPullRequest(ctx context.Context, repository, number string) (*core.PullRequest, error)
}

type postgresStore struct {
	db *sqlx.DB
}

// NewStore creates a new Store
func NewStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

const ruleColumns = `id, name, type, file_match, reviewer, repository, created_at, updated_at`

// ForRepository returns every rule whose repository equals repository exactly.
func (s *postgresStore) ForRepository(ctx context.Context, repository string) ([]core.ReviewRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM review_rules WHERE repository = $1 ORDER BY id`

	rules := []core.ReviewRule{}
	if err := s.db.SelectContext(ctx, &rules, query, repository); err != nil {
		return nil, fmt.Errorf("failed to select rules for %s: %w", repository, err)
	}
	resolveAll(rules)
	return rules, nil
}

// ListRules returns all rules ordered by repository.
func (s *postgresStore) ListRules(ctx context.Context) ([]core.ReviewRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM review_rules ORDER BY repository, id`

	rules := []core.ReviewRule{}
	if err := s.db.SelectContext(ctx, &rules, query); err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	resolveAll(rules)
	return rules, nil
}

func resolveAll(rules []core.ReviewRule) {
	for i := range rules {
		rules[i].Resolve()
	}
}

// CreateRule validates and inserts a rule, filling in its ID and timestamps.
func (s *postgresStore) CreateRule(ctx context.Context, rule *core.ReviewRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO review_rules (name, type, file_match, reviewer, repository)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	row := s.db.QueryRowxContext(ctx, query, rule.Name, rule.Type, rule.FileMatch, rule.Reviewer, rule.Repository)
	if err := row.Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert rule %q: %w", rule.Name, err)
	}
	return nil
}

// DeleteRule removes a rule by ID.
func (s *postgresStore) DeleteRule(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM review_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("rule %d: %w", id, ErrNotFound)
	}
	return nil
}

const pullRequestColumns = `id, repository, number, status, pending_reviews, completed_reviews, created_at, updated_at`

// GetPullRequest loads the record for repository and number.
func (s *postgresStore) GetPullRequest(ctx context.Context, repository, number string) (*core.PullRequest, error) {
	query := `SELECT ` + pullRequestColumns + ` FROM pull_requests WHERE repository = $1 AND number = $2`

	var pr core.PullRequest
	if err := s.db.GetContext(ctx, &pr, query, repository, number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("pull request %s#%s: %w", repository, number, ErrNotFound)
		}
		return nil, err
	}
	return &pr, nil
}

// FindOrCreatePullRequest returns the record for repository and number,
// inserting an empty one first if needed.
func (s *postgresStore) FindOrCreatePullRequest(ctx context.Context, repository, number string) (*core.PullRequest, error) {
	insert := `
		INSERT INTO pull_requests (repository, number)
		VALUES ($1, $2)
		ON CONFLICT (repository, number) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, insert, repository, number); err != nil {
		return nil, fmt.Errorf("failed to create pull request %s#%s: %w", repository, number, err)
	}
	return s.GetPullRequest(ctx, repository, number)
}

// SavePullRequest upserts the record keyed by repository and number.
func (s *postgresStore) SavePullRequest(ctx context.Context, pr *core.PullRequest) error {
	query := `
		INSERT INTO pull_requests (repository, number, status, pending_reviews, completed_reviews)
		VALUES ($1, $2, $3, COALESCE($4::text[], '{}'), COALESCE($5::text[], '{}'))
		ON CONFLICT (repository, number) DO UPDATE SET
			status = EXCLUDED.status,
			pending_reviews = EXCLUDED.pending_reviews,
			completed_reviews = EXCLUDED.completed_reviews,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	row := s.db.QueryRowxContext(ctx, query, pr.Repository, pr.Number, pr.Status, pr.PendingReviews, pr.CompletedReviews)
	if err := row.Scan(&pr.ID, &pr.CreatedAt, &pr.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save pull request %s#%s: %w", pr.Repository, pr.Number, err)
	}
	return nil
}
