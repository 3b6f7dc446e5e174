package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sevigo/review-warden/internal/config"
	"github.com/sevigo/review-warden/internal/core"
	"github.com/sevigo/review-warden/internal/wire"
)

var listRepo string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage review rules",
}

var rulesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import review rules from a YAML file",
	Long: `Import review rules from a YAML file into the database.

Example file:
  rules:
    - name: backend owners
      type: file_match
      file_match: '^internal/'
      reviewer: "1234567"
      repository: acme/api`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesImport,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored review rules",
	Args:  cobra.NoArgs,
	RunE:  runRulesList,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rulesListCmd.Flags().StringVar(&listRepo, "repo", "", "only show rules for this owner/name repository")
	rulesCmd.AddCommand(rulesImportCmd, rulesListCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesImport(cmd *cobra.Command, args []string) error {
	rules, err := config.LoadRulesFile(args[0])
	if err != nil {
		return err
	}

	a, cleanup, err := wire.InitializeApp()
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer cleanup()

	ctx := cmd.Context()
	for i := range rules {
		if err := a.Store.CreateRule(ctx, &rules[i]); err != nil {
			return fmt.Errorf("failed to import rule %q: %w", rules[i].Name, err)
		}
		successColor.Printf("✔ imported %q (id %d) for %s\n", rules[i].Name, rules[i].ID, rules[i].Repository)
	}
	titleColor.Printf("%d rule(s) imported\n", len(rules))
	return nil
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	a, cleanup, err := wire.InitializeApp()
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer cleanup()

	var rules []core.ReviewRule
	if listRepo != "" {
		rules, err = a.Store.ForRepository(cmd.Context(), listRepo)
	} else {
		rules, err = a.Store.ListRules(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list rules: %w", err)
	}
	if len(rules) == 0 {
		warnColor.Println("no rules found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tMATCH\tREVIEWER\tREPOSITORY")
	for _, r := range rules {
		match := r.FileMatch
		if match == "" {
			match = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Type, match, r.ReviewerRef(), r.Repository)
	}
	return w.Flush()
}
