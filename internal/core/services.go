package core

import "context"

// ReviewerDirectory expands a team identifier into its members' logins.
//
//go:generate mockgen -destination=../../mocks/mock_services.go -package=mocks . ReviewerDirectory,CommitHistory,PullRequestStore
type ReviewerDirectory interface {
	TeamMembers(ctx context.Context, teamID int64) ([]string, error)
}

// CommitHistory returns the commits of a pull request in the order the host
// reports them, oldest first.
type CommitHistory interface {
	Commits(ctx context.Context, repository, number string) ([]Commit, error)
}

// PullRequestStore loads and persists PullRequest records.
type PullRequestStore interface {
	FindOrCreatePullRequest(ctx context.Context, repository, number string) (*PullRequest, error)
	SavePullRequest(ctx context.Context, pr *PullRequest) error
}

// RuleStore selects the review rules scoped to a repository.
type RuleStore interface {
	ForRepository(ctx context.Context, repository string) ([]ReviewRule, error)
}
