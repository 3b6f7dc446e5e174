package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/review-warden/internal/core"
)

// CheckRunName is the name of the check run posted after each assignment.
const CheckRunName = "Reviewer Assignment"

// Reporter publishes the outcome of a reviewer assignment on the pull request.
type Reporter interface {
	Report(ctx context.Context, event *core.GitHubEvent, results []core.RuleResult) error
}

type checkRunReporter struct {
	client Client
}

// NewReporter creates a Reporter that posts a completed check run on the head commit.
func NewReporter(client Client) Reporter {
	return &checkRunReporter{client: client}
}

// Report creates a completed check run summarizing results. The conclusion is
// "success" when at least one rule chose a reviewer and "neutral" otherwise.
func (r *checkRunReporter) Report(ctx context.Context, event *core.GitHubEvent, results []core.RuleResult) error {
	conclusion := "neutral"
	for _, res := range results {
		if res.Success() {
			conclusion = "success"
			break
		}
	}

	title := assignmentTitle(results)
	summary := formatAssignmentSummary(results)
	opts := github.CreateCheckRunOptions{
		Name:        CheckRunName,
		HeadSHA:     event.HeadSHA,
		Status:      github.Ptr("completed"),
		Conclusion:  github.Ptr(conclusion),
		CompletedAt: &github.Timestamp{Time: time.Now()},
		Output: &github.CheckRunOutput{
			Title:   &title,
			Summary: &summary,
		},
	}
	if _, err := r.client.CreateCheckRun(ctx, event.RepoOwner, event.RepoName, opts); err != nil {
		return fmt.Errorf("failed to create check run: %w", err)
	}
	return nil
}

func assignmentTitle(results []core.RuleResult) string {
	added := 0
	for _, res := range results {
		if res.Added {
			added++
		}
	}
	switch added {
	case 0:
		return "No new reviewers"
	case 1:
		return "1 reviewer assigned"
	default:
		return fmt.Sprintf("%d reviewers assigned", added)
	}
}

// formatAssignmentSummary renders one table row per rule result, in evaluation order.
func formatAssignmentSummary(results []core.RuleResult) string {
	if len(results) == 0 {
		return "No review rules are configured for this repository."
	}

	var sb strings.Builder
	sb.WriteString("| Rule | Outcome | Reviewer |\n")
	sb.WriteString("|------|---------|----------|\n")
	for _, res := range results {
		outcome := "⚪ no match"
		reviewer := "-"
		if res.Success() {
			reviewer = "@" + res.Reviewer
			outcome = "✅ already pending"
			if res.Added {
				outcome = "✅ assigned"
			}
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", escapeCell(res.RuleName), outcome, reviewer)
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
