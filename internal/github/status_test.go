package github

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-warden/internal/core"
)

type recordingClient struct {
	Client
	owner, repo string
	opts        github.CreateCheckRunOptions
	err         error
}

func (c *recordingClient) CreateCheckRun(_ context.Context, owner, repo string, opts github.CreateCheckRunOptions) (*github.CheckRun, error) {
	c.owner, c.repo, c.opts = owner, repo, opts
	if c.err != nil {
		return nil, c.err
	}
	return &github.CheckRun{ID: github.Ptr(int64(1))}, nil
}

func TestFormatAssignmentSummary(t *testing.T) {
	tests := []struct {
		name     string
		results  []core.RuleResult
		contains []string
		excludes []string
	}{
		{
			name:     "no rules",
			results:  nil,
			contains: []string{"No review rules"},
			excludes: []string{"| Rule |"},
		},
		{
			name: "mixed outcomes",
			results: []core.RuleResult{
				{RuleName: "backend", Outcome: core.OutcomeSuccess, Reviewer: "aergonaut", Added: true},
				{RuleName: "docs", Outcome: core.OutcomeFailure},
				{RuleName: "owners", Outcome: core.OutcomeSuccess, Reviewer: "BrentW"},
			},
			contains: []string{
				"| backend | ✅ assigned | @aergonaut |",
				"| docs | ⚪ no match | - |",
				"| owners | ✅ already pending | @BrentW |",
			},
		},
		{
			name: "pipe in rule name is escaped",
			results: []core.RuleResult{
				{RuleName: "a|b", Outcome: core.OutcomeFailure},
			},
			contains: []string{`| a\|b |`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatAssignmentSummary(tt.results)
			for _, c := range tt.contains {
				assert.Contains(t, got, c)
			}
			for _, e := range tt.excludes {
				assert.NotContains(t, got, e)
			}
		})
	}
}

func TestAssignmentTitle(t *testing.T) {
	assert.Equal(t, "No new reviewers", assignmentTitle([]core.RuleResult{{Outcome: core.OutcomeSuccess}}))
	assert.Equal(t, "1 reviewer assigned", assignmentTitle([]core.RuleResult{{Added: true}}))
	assert.Equal(t, "2 reviewers assigned", assignmentTitle([]core.RuleResult{{Added: true}, {Added: true}, {}}))
}

func TestReporter_Report(t *testing.T) {
	event := &core.GitHubEvent{RepoOwner: "aergonaut", RepoName: "testrepo", HeadSHA: "abc123"}

	t.Run("success when a reviewer was chosen", func(t *testing.T) {
		client := &recordingClient{}
		err := NewReporter(client).Report(context.Background(), event, []core.RuleResult{
			{RuleName: "r", Outcome: core.OutcomeSuccess, Reviewer: "aergonaut", Added: true},
		})
		require.NoError(t, err)
		assert.Equal(t, "aergonaut", client.owner)
		assert.Equal(t, "testrepo", client.repo)
		assert.Equal(t, CheckRunName, client.opts.Name)
		assert.Equal(t, "abc123", client.opts.HeadSHA)
		assert.Equal(t, "completed", client.opts.GetStatus())
		assert.Equal(t, "success", client.opts.GetConclusion())
	})

	t.Run("neutral when nothing matched", func(t *testing.T) {
		client := &recordingClient{}
		err := NewReporter(client).Report(context.Background(), event, []core.RuleResult{
			{RuleName: "r", Outcome: core.OutcomeFailure},
		})
		require.NoError(t, err)
		assert.Equal(t, "neutral", client.opts.GetConclusion())
	})

	t.Run("client error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		err := NewReporter(&recordingClient{err: boom}).Report(context.Background(), event, nil)
		assert.ErrorIs(t, err, boom)
	})
}
