package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var githubToken string

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	dimColor     = color.New(color.FgHiBlack)
)

var rootCmd = &cobra.Command{
	Use:           "review-warden-cli",
	Short:         "review-warden-cli manages review rules and runs reviewer assignment by hand.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.PersistentFlags().StringVarP(&githubToken, "github-token", "t", "", "GitHub token (defaults to github.token / RW_GITHUB_TOKEN)")
}
