package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-warden/internal/core"
)

func TestMatcherFor(t *testing.T) {
	tests := []struct {
		name      string
		rule      core.ReviewRule
		files     []string
		wantOK    bool
		wantToken string
		wantErr   bool
	}{
		{
			name:      "always matches without files",
			rule:      core.ReviewRule{Type: core.RuleTypeAlways},
			wantOK:    true,
			wantToken: "always",
		},
		{
			name:      "file match returns first matching path",
			rule:      core.ReviewRule{Type: core.RuleTypeFileMatch, FileMatch: `^db/migrate/`},
			files:     []string{"README.md", "db/migrate/001_init.rb", "db/migrate/002_users.rb"},
			wantOK:    true,
			wantToken: "db/migrate/001_init.rb",
		},
		{
			name:  "file match without a matching path",
			rule:  core.ReviewRule{Type: core.RuleTypeFileMatch, FileMatch: `\.sql$`},
			files: []string{"main.go"},
		},
		{
			name: "file match with no changed files",
			rule: core.ReviewRule{Type: core.RuleTypeFileMatch, FileMatch: `.*`},
		},
		{
			name:    "invalid pattern",
			rule:    core.ReviewRule{Type: core.RuleTypeFileMatch, FileMatch: `(`},
			wantErr: true,
		},
		{
			name:    "unknown type",
			rule:    core.ReviewRule{Type: "label"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := MatcherFor(&tt.rule)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrInvalidRule)
				return
			}
			require.NoError(t, err)

			token, ok := m.Match(&core.PullRequestPayload{ChangedFiles: tt.files})
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestNeedsChangedFiles(t *testing.T) {
	assert.False(t, NeedsChangedFiles([]core.ReviewRule{{Type: core.RuleTypeAlways}}))
	assert.True(t, NeedsChangedFiles([]core.ReviewRule{{Type: core.RuleTypeAlways}, {Type: core.RuleTypeFileMatch}}))
	assert.False(t, NeedsChangedFiles(nil))
}
