// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import (
	"fmt"
	"strconv"

	"github.com/google/go-github/v73/github"
)

// EventType tells a job which flow a GitHubEvent should run.
type EventType int

const (
	// AssignReviewers runs every review rule of the repository against the pull request.
	AssignReviewers EventType = iota
	// ReviewSubmitted records that a reviewer finished reviewing.
	ReviewSubmitted
)

func (t EventType) String() string {
	switch t {
	case AssignReviewers:
		return "assign_reviewers"
	case ReviewSubmitted:
		return "review_submitted"
	default:
		return "unknown"
	}
}

// GitHubEvent represents a simplified, internal view of a GitHub webhook event.
type GitHubEvent struct {
	Type EventType

	// Repository details
	RepoOwner    string
	RepoName     string
	RepoFullName string

	PRNumber int
	HeadSHA  string
	Author   string

	// Reviewer is set for ReviewSubmitted events.
	Reviewer       string
	InstallationID int64
}

// Payload converts the event into the form the rule engine evaluates.
func (e *GitHubEvent) Payload() *PullRequestPayload {
	return &PullRequestPayload{
		Number:  strconv.Itoa(e.PRNumber),
		Base:    BaseRef{Repo: BaseRepo{FullName: e.RepoFullName}},
		HeadSHA: e.HeadSHA,
	}
}

var assignActions = map[string]bool{
	"opened":           true,
	"reopened":         true,
	"ready_for_review": true,
	"synchronize":      true,
}

// EventFromPullRequest transforms a raw GitHub PullRequestEvent into the application's
// internal GitHubEvent representation. Only actions that may require new
// reviewers are accepted.
func EventFromPullRequest(event *github.PullRequestEvent) (*GitHubEvent, error) {
	if !assignActions[event.GetAction()] {
		return nil, fmt.Errorf("pull request action %q does not trigger assignment", event.GetAction())
	}
	if event.GetPullRequest().GetDraft() {
		return nil, fmt.Errorf("pull request is a draft")
	}

	ev, err := baseEvent(event.GetRepo(), event.GetNumber(), event.GetInstallation())
	if err != nil {
		return nil, err
	}
	ev.Type = AssignReviewers
	ev.HeadSHA = event.GetPullRequest().GetHead().GetSHA()
	ev.Author = event.GetPullRequest().GetUser().GetLogin()
	return ev, nil
}

// EventFromPullRequestReview transforms a submitted review into a ReviewSubmitted event.
// Pending reviews (not yet submitted) and dismissals are ignored.
func EventFromPullRequestReview(event *github.PullRequestReviewEvent) (*GitHubEvent, error) {
	if event.GetAction() != "submitted" {
		return nil, fmt.Errorf("review action %q is not a submission", event.GetAction())
	}

	switch event.GetReview().GetState() {
	case "approved", "changes_requested", "commented":
	default:
		return nil, fmt.Errorf("review state %q is not a completed review", event.GetReview().GetState())
	}

	reviewer := event.GetReview().GetUser().GetLogin()
	if reviewer == "" {
		return nil, fmt.Errorf("reviewer information is missing from the event")
	}

	ev, err := baseEvent(event.GetRepo(), event.GetPullRequest().GetNumber(), event.GetInstallation())
	if err != nil {
		return nil, err
	}
	ev.Type = ReviewSubmitted
	ev.HeadSHA = event.GetPullRequest().GetHead().GetSHA()
	ev.Reviewer = reviewer
	return ev, nil
}

func baseEvent(repo *github.Repository, number int, installation *github.Installation) (*GitHubEvent, error) {
	if repo == nil || repo.GetOwner() == nil || repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return nil, fmt.Errorf("repository or owner information is missing from the event")
	}
	if number <= 0 {
		return nil, fmt.Errorf("invalid pull request number: %d", number)
	}
	if installation == nil || installation.GetID() == 0 {
		return nil, fmt.Errorf("installation ID is missing from the event")
	}

	fullName := repo.GetFullName()
	if fullName == "" {
		fullName = repo.GetOwner().GetLogin() + "/" + repo.GetName()
	}
	return &GitHubEvent{
		RepoOwner:      repo.GetOwner().GetLogin(),
		RepoName:       repo.GetName(),
		RepoFullName:   fullName,
		PRNumber:       number,
		InstallationID: installation.GetID(),
	}, nil
}
