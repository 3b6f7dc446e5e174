package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	gh "github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/review-warden/internal/config"
	"github.com/sevigo/review-warden/internal/core"
	"github.com/sevigo/review-warden/internal/github"
	"github.com/sevigo/review-warden/internal/gitutil"
	"github.com/sevigo/review-warden/internal/jobs"
	"github.com/sevigo/review-warden/internal/storage"
	"github.com/sevigo/review-warden/mocks"
)

var testRef = gitutil.PullRequestRef{Owner: "aergonaut", Repo: "testrepo", Number: 42}

func TestAssignEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().PullRequest(gomock.Any(), "aergonaut", "testrepo", 42).Return(&gh.PullRequest{
		User: &gh.User{Login: gh.Ptr("coreyja")},
		Head: &gh.PullRequestBranch{SHA: gh.Ptr("abc123")},
	}, nil)

	event, err := assignEvent(context.Background(), client, testRef)
	require.NoError(t, err)
	assert.Equal(t, &core.GitHubEvent{
		Type:         core.AssignReviewers,
		RepoOwner:    "aergonaut",
		RepoName:     "testrepo",
		RepoFullName: "aergonaut/testrepo",
		PRNumber:     42,
		HeadSHA:      "abc123",
		Author:       "coreyja",
	}, event)
}

func TestAssignEvent_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	boom := errors.New("not found")
	client.EXPECT().PullRequest(gomock.Any(), "aergonaut", "testrepo", 42).Return(nil, boom)

	_, err := assignEvent(context.Background(), client, testRef)
	assert.ErrorIs(t, err, boom)
}

func TestAssignEvent_AuthorFallbackIsNotRequested(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	store := storage.NewMemoryStore()
	require.NoError(t, store.CreateRule(ctx, &core.ReviewRule{
		Name: "self", Type: core.RuleTypeAlways, Reviewer: "coreyja", Repository: "aergonaut/testrepo",
	}))

	client.EXPECT().PullRequest(gomock.Any(), "aergonaut", "testrepo", 42).Return(&gh.PullRequest{
		User: &gh.User{Login: gh.Ptr("coreyja")},
	}, nil)
	client.EXPECT().Commits(gomock.Any(), "aergonaut/testrepo", "42").Return([]core.Commit{{Author: "coreyja"}}, nil)
	client.EXPECT().RequestReviewers(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	cfg := &config.Config{Assignment: config.AssignmentConfig{RequestReviews: true}}
	job := jobs.NewAssignJob(cfg, store, func(context.Context, int64) (github.Client, error) {
		return client, nil
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	event, err := assignEvent(ctx, client, testRef)
	require.NoError(t, err)
	results, err := job.Assign(ctx, event)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "coreyja", results[0].Reviewer)
}
