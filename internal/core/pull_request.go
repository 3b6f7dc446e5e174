package core

import (
	"slices"
	"time"

	"github.com/lib/pq"
)

// PullRequest tracks which reviewers are pending and which have finished
// reviewing a single pull request, keyed by repository and number.
//
// The record is mutated in place. Callers must make sure at most one
// assignment runs against the same record at a time.
type PullRequest struct {
	ID               int64          `db:"id"`
	Repository       string         `db:"repository"`
	Number           string         `db:"number"`
	Status           string         `db:"status"`
	PendingReviews   pq.StringArray `db:"pending_reviews"`
	CompletedReviews pq.StringArray `db:"completed_reviews"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

// HasPendingReview reports whether username is waiting to review.
func (p *PullRequest) HasPendingReview(username string) bool {
	return slices.Contains(p.PendingReviews, username)
}

// AddPendingReview appends username to the pending list unless it is already
// there. It reports whether the list changed.
func (p *PullRequest) AddPendingReview(username string) bool {
	if p.HasPendingReview(username) {
		return false
	}
	p.PendingReviews = append(p.PendingReviews, username)
	return true
}

// CompleteReview moves username from the pending to the completed list.
// It reports whether the record changed.
func (p *PullRequest) CompleteReview(username string) bool {
	idx := slices.Index(p.PendingReviews, username)
	if idx < 0 {
		return false
	}
	p.PendingReviews = slices.Delete(p.PendingReviews, idx, idx+1)
	if !slices.Contains(p.CompletedReviews, username) {
		p.CompletedReviews = append(p.CompletedReviews, username)
	}
	return true
}

// PullRequestPayload is the subset of a pull request webhook payload the rule
// engine reads.
type PullRequestPayload struct {
	Number       string   `json:"number"`
	Base         BaseRef  `json:"base"`
	HeadSHA      string   `json:"-"`
	ChangedFiles []string `json:"-"`
}

// BaseRef mirrors payload.base.
type BaseRef struct {
	Repo BaseRepo `json:"repo"`
}

// BaseRepo mirrors payload.base.repo.
type BaseRepo struct {
	FullName string `json:"full_name"`
}

// Repository returns payload.base.repo.full_name.
func (p *PullRequestPayload) Repository() string {
	return p.Base.Repo.FullName
}

// Commit is one entry of a pull request's commit history.
type Commit struct {
	SHA    string
	Author string
}
