package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sevigo/review-warden/internal/config"
	"github.com/sevigo/review-warden/internal/core"
	"github.com/sevigo/review-warden/internal/github"
	"github.com/sevigo/review-warden/internal/gitutil"
	"github.com/sevigo/review-warden/internal/jobs"
	"github.com/sevigo/review-warden/internal/logger"
	"github.com/sevigo/review-warden/internal/storage"
	"github.com/sevigo/review-warden/internal/wire"
)

var (
	dryRunRules    string
	requestReviews bool
)

var assignCmd = &cobra.Command{
	Use:   "assign <pr-url>",
	Short: "Assign reviewers to a pull request",
	Long: `Run the repository's review rules against a pull request using a personal
access token.

With --dry-run, rules are read from a YAML file and state is kept in memory,
so nothing is written to the database or GitHub.

Examples:
  review-warden-cli assign https://github.com/owner/repo/pull/123
  review-warden-cli assign --dry-run rules.yaml https://github.com/owner/repo/pull/123`,
	Args: cobra.ExactArgs(1),
	RunE: runAssign,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	assignCmd.Flags().StringVar(&dryRunRules, "dry-run", "", "evaluate rules from this YAML file against an in-memory store")
	assignCmd.Flags().BoolVar(&requestReviews, "request", false, "request reviews on GitHub from newly added reviewers")
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	ref, err := gitutil.ParsePullRequestURL(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	cfg, store, log, cleanup, err := assignDeps(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	token := githubToken
	if token == "" {
		token = cfg.GitHub.Token
	}
	if token == "" {
		return errors.New("a GitHub token is required (--github-token or RW_GITHUB_TOKEN)")
	}
	client := github.NewPATClient(ctx, token, log, github.WithRetry(github.RetryConfigFrom(cfg)))

	runCfg := *cfg
	runCfg.Assignment.RequestReviews = requestReviews && dryRunRules == ""
	runCfg.Assignment.CheckRun = false

	job := jobs.NewAssignJob(&runCfg, store, func(context.Context, int64) (github.Client, error) {
		return client, nil
	}, log)

	event, err := assignEvent(ctx, client, ref)
	if err != nil {
		return err
	}

	titleColor.Printf("Assigning reviewers for %s#%d (author @%s)\n", ref.FullName(), ref.Number, event.Author)
	results, err := job.Assign(ctx, event)
	printResults(results)
	return err
}

// assignEvent builds the event for a pull request URL. The author comes from
// GitHub so that --request never asks the author to review their own change.
func assignEvent(ctx context.Context, client github.Client, ref gitutil.PullRequestRef) (*core.GitHubEvent, error) {
	pr, err := client.PullRequest(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull request %s#%d: %w", ref.FullName(), ref.Number, err)
	}
	return &core.GitHubEvent{
		Type:         core.AssignReviewers,
		RepoOwner:    ref.Owner,
		RepoName:     ref.Repo,
		RepoFullName: ref.FullName(),
		PRNumber:     ref.Number,
		HeadSHA:      pr.GetHead().GetSHA(),
		Author:       pr.GetUser().GetLogin(),
	}, nil
}

// assignDeps returns the config, store and logger for an assign run. A dry
// run never touches the database.
func assignDeps(ctx context.Context) (*config.Config, storage.Store, *slog.Logger, func(), error) {
	if dryRunRules == "" {
		a, cleanup, err := wire.InitializeApp()
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to initialize application: %w", err)
		}
		return a.Cfg, a.Store, a.Logger, cleanup, nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.NewLogger(cfg.Logging, os.Stderr)

	rules, err := config.LoadRulesFile(dryRunRules)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	store := storage.NewMemoryStore()
	for i := range rules {
		if err := store.CreateRule(ctx, &rules[i]); err != nil {
			return nil, nil, nil, nil, err
		}
	}
	dimColor.Printf("dry run: %d rule(s) loaded from %s\n", len(rules), dryRunRules)
	return cfg, store, log, func() {}, nil
}

func printResults(results []core.RuleResult) {
	if len(results) == 0 {
		warnColor.Println("no rules applied")
		return
	}
	for _, r := range results {
		switch {
		case r.Failure():
			dimColor.Printf("  - %s: no match\n", r.RuleName)
		case r.Added:
			successColor.Printf("  ✔ %s: assigned @%s\n", r.RuleName, r.Reviewer)
		default:
			successColor.Printf("  ✔ %s: @%s already pending\n", r.RuleName, r.Reviewer)
		}
	}
}
