package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/sevigo/review-warden/internal/config"
)

// ClientFactory returns a Client authenticated for one App installation.
type ClientFactory func(ctx context.Context, installationID int64) (Client, error)

// NewInstallationClientFactory binds CreateInstallationClient to the
// application's GitHub App credentials.
func NewInstallationClientFactory(cfg *config.Config, logger *slog.Logger) ClientFactory {
	return func(ctx context.Context, installationID int64) (Client, error) {
		return CreateInstallationClient(ctx, cfg, installationID, logger)
	}
}

// CreateInstallationClient creates a GitHub client that is authenticated as a specific application installation.
func CreateInstallationClient(ctx context.Context, cfg *config.Config, installationID int64, logger *slog.Logger) (Client, error) {
	logger.Info("creating GitHub installation client", "installation_id", installationID)

	privateKey, err := os.ReadFile(cfg.GitHub.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key from %s: %w", cfg.GitHub.PrivateKeyPath, err)
	}

	// The apps transport signs JWTs for the App API, which issues installation tokens.
	appTransport, err := ghinstallation.NewAppsTransport(http.DefaultTransport, cfg.GitHub.AppID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport: %w", err)
	}
	appClient := github.NewClient(&http.Client{Transport: appTransport})

	token, _, err := appClient.Apps.CreateInstallationToken(ctx, installationID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create installation token for installation ID %d: %w", installationID, err)
	}
	if token.GetToken() == "" {
		return nil, errors.New("received an empty installation token")
	}
	logger.Debug("installation token created", "installation_id", installationID, "expires_at", token.GetExpiresAt())

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token.GetToken()})
	tc := oauth2.NewClient(ctx, ts)
	return NewGitHubClient(github.NewClient(tc), logger, WithRetry(RetryConfigFrom(cfg))), nil
}

// RetryConfigFrom reads the retry policy from the github config section.
func RetryConfigFrom(cfg *config.Config) RetryConfig {
	return RetryConfig{
		MaxRetries:        cfg.GitHub.MaxRetries,
		InitialRetryDelay: cfg.GitHub.InitialRetryDelay,
		MaxRetryDelay:     cfg.GitHub.MaxRetryDelay,
	}
}
