package jobs

import (
	"errors"
	"fmt"

	"github.com/sevigo/review-warden/internal/core"
)

// validateEvent ensures the event carries the fields its flow needs.
func validateEvent(event *core.GitHubEvent) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}
	if event.RepoOwner == "" || event.RepoName == "" {
		return errors.New("repository owner and name are required")
	}
	if event.RepoFullName != event.RepoOwner+"/"+event.RepoName {
		return fmt.Errorf("repository full name %q does not match %s/%s", event.RepoFullName, event.RepoOwner, event.RepoName)
	}
	if event.PRNumber <= 0 {
		return fmt.Errorf("invalid PR number: %d", event.PRNumber)
	}
	if event.Type == core.ReviewSubmitted && event.Reviewer == "" {
		return errors.New("reviewer is required for review events")
	}
	return nil
}
