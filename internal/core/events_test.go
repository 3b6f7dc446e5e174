package core

import (
	"testing"

	"github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepo() *github.Repository {
	return &github.Repository{
		Name:     github.Ptr("testrepo"),
		FullName: github.Ptr("aergonaut/testrepo"),
		Owner:    &github.User{Login: github.Ptr("aergonaut")},
	}
}

func TestEventFromPullRequest(t *testing.T) {
	tests := []struct {
		name    string
		event   *github.PullRequestEvent
		wantErr bool
	}{
		{
			name: "opened pull request",
			event: &github.PullRequestEvent{
				Action:       github.Ptr("opened"),
				Number:       github.Ptr(42),
				Repo:         testRepo(),
				Installation: &github.Installation{ID: github.Ptr(int64(7))},
				PullRequest: &github.PullRequest{
					Head: &github.PullRequestBranch{SHA: github.Ptr("abc123")},
					User: &github.User{Login: github.Ptr("BrentW")},
				},
			},
		},
		{
			name: "closed pull request is ignored",
			event: &github.PullRequestEvent{
				Action:       github.Ptr("closed"),
				Number:       github.Ptr(42),
				Repo:         testRepo(),
				Installation: &github.Installation{ID: github.Ptr(int64(7))},
			},
			wantErr: true,
		},
		{
			name: "draft is ignored",
			event: &github.PullRequestEvent{
				Action:       github.Ptr("opened"),
				Number:       github.Ptr(42),
				Repo:         testRepo(),
				Installation: &github.Installation{ID: github.Ptr(int64(7))},
				PullRequest:  &github.PullRequest{Draft: github.Ptr(true)},
			},
			wantErr: true,
		},
		{
			name: "missing installation",
			event: &github.PullRequestEvent{
				Action: github.Ptr("opened"),
				Number: github.Ptr(42),
				Repo:   testRepo(),
			},
			wantErr: true,
		},
		{
			name: "missing repository",
			event: &github.PullRequestEvent{
				Action:       github.Ptr("opened"),
				Number:       github.Ptr(42),
				Installation: &github.Installation{ID: github.Ptr(int64(7))},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := EventFromPullRequest(tt.event)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, AssignReviewers, ev.Type)
			assert.Equal(t, "aergonaut/testrepo", ev.RepoFullName)
			assert.Equal(t, 42, ev.PRNumber)
			assert.Equal(t, "abc123", ev.HeadSHA)
			assert.Equal(t, "BrentW", ev.Author)
			assert.Equal(t, int64(7), ev.InstallationID)

			payload := ev.Payload()
			assert.Equal(t, "42", payload.Number)
			assert.Equal(t, "aergonaut/testrepo", payload.Repository())
		})
	}
}

func TestEventFromPullRequestReview(t *testing.T) {
	newEvent := func(action, state string) *github.PullRequestReviewEvent {
		return &github.PullRequestReviewEvent{
			Action: github.Ptr(action),
			Review: &github.PullRequestReview{
				State: github.Ptr(state),
				User:  &github.User{Login: github.Ptr("mityaz")},
			},
			PullRequest:  &github.PullRequest{Number: github.Ptr(42)},
			Repo:         testRepo(),
			Installation: &github.Installation{ID: github.Ptr(int64(7))},
		}
	}

	ev, err := EventFromPullRequestReview(newEvent("submitted", "approved"))
	require.NoError(t, err)
	assert.Equal(t, ReviewSubmitted, ev.Type)
	assert.Equal(t, "mityaz", ev.Reviewer)
	assert.Equal(t, 42, ev.PRNumber)

	_, err = EventFromPullRequestReview(newEvent("dismissed", "approved"))
	assert.Error(t, err)

	_, err = EventFromPullRequestReview(newEvent("submitted", "pending"))
	assert.Error(t, err)
}
