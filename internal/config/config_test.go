package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-warden/internal/core"
)

func TestDecodeDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := decode(v)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 5, cfg.MaxWorkers)
	assert.True(t, cfg.Assignment.RequestReviews)
	assert.Equal(t, uint64(3), cfg.GitHub.MaxRetries)
	assert.Equal(t, time.Second, cfg.GitHub.InitialRetryDelay)

	assert.Error(t, cfg.ValidateServer(), "server needs GitHub App credentials")
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RW_GITHUB_APP_ID", "12345")
	t.Setenv("RW_GITHUB_WEBHOOK_SECRET", "s3cret")
	t.Setenv("RW_DATABASE_HOST", "db.internal")
	t.Setenv("RW_MAX_WORKERS", "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(12345), cfg.GitHub.AppID)
	assert.Equal(t, "s3cret", cfg.GitHub.WebhookSecret)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 2, cfg.MaxWorkers)
	assert.NoError(t, cfg.ValidateServer())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	content := `
server:
  port: "9090"
github:
  app_id: 99
  webhook_secret: hook
logging:
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, int64(99), cfg.GitHub.AppID)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)
}

func TestLoadConfigFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("RW_SERVER_PORT", "7000")
	// registers a restore of the original value, then clears it for .env to fill
	t.Setenv("RW_DATABASE_HOST", "")
	require.NoError(t, os.Unsetenv("RW_DATABASE_HOST"))

	env := "RW_DATABASE_HOST=from-dotenv\nRW_SERVER_PORT=1111\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Database.Host)
	assert.Equal(t, "7000", cfg.Server.Port, "process environment wins over .env")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{Database: DBConfig{Host: "localhost", Database: "rw"}}},
		{name: "missing host", cfg: Config{Database: DBConfig{Database: "rw"}}, wantErr: true},
		{name: "missing database", cfg: Config{Database: DBConfig{Host: "localhost"}}, wantErr: true},
		{name: "negative workers", cfg: Config{Database: DBConfig{Host: "localhost", Database: "rw"}, MaxWorkers: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseRules(t *testing.T) {
	data := []byte(`
rules:
  - name: everything
    reviewer: aergonaut
    repository: aergonaut/testrepo
  - name: migrations
    type: file_match
    file_match: "^db/migrate/"
    reviewer: 1234
    repository: aergonaut/cody
`)
	rules, err := ParseRules(data)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, core.RuleTypeAlways, rules[0].Type)
	assert.Equal(t, "aergonaut", rules[0].Reviewer)
	assert.Equal(t, core.RuleTypeFileMatch, rules[1].Type)
	assert.Equal(t, "1234", rules[1].Reviewer)
	assert.Equal(t, core.ReviewerRef{Kind: core.KindTeam, TeamID: 1234}, rules[1].Ref)
}

func TestParseRules_Invalid(t *testing.T) {
	_, err := ParseRules([]byte("rules:\n  - name: no-reviewer\n    repository: a/b\n"))
	assert.ErrorIs(t, err, core.ErrInvalidRule)

	_, err = ParseRules([]byte("rules: [unterminated"))
	assert.ErrorIs(t, err, ErrRulesParsing)
}

func TestLoadRulesFile_NotFound(t *testing.T) {
	_, err := LoadRulesFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, ErrRulesFileNotFound)
}
