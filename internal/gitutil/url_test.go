package gitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePullRequestURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantID    int
		wantErr   bool
	}{
		{
			name:      "Valid HTTPS URL",
			url:       "https://github.com/aergonaut/testrepo/pull/123",
			wantOwner: "aergonaut",
			wantRepo:  "testrepo",
			wantID:    123,
			wantErr:   false,
		},
		{
			name:      "Valid URL without scheme",
			url:       "github.com/aergonaut/testrepo/pull/456",
			wantOwner: "aergonaut",
			wantRepo:  "testrepo",
			wantID:    456,
			wantErr:   false,
		},
		{
			name:      "URL with trailing slash",
			url:       "https://github.com/aergonaut/testrepo/pull/789/",
			wantOwner: "aergonaut",
			wantRepo:  "testrepo",
			wantID:    789,
			wantErr:   false,
		},
		{
			name:    "Invalid PR ID",
			url:     "https://github.com/aergonaut/testrepo/pull/abc",
			wantErr: true,
		},
		{
			name:    "Invalid format (missing pull)",
			url:     "https://github.com/aergonaut/testrepo/issues/123",
			wantErr: true,
		},
		{
			name:    "Invalid format (too many segments)",
			url:     "https://github.com/aergonaut/testrepo/pull/123/files",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParsePullRequestURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantOwner, ref.Owner)
			assert.Equal(t, tt.wantRepo, ref.Repo)
			assert.Equal(t, tt.wantID, ref.Number)
			assert.Equal(t, tt.wantOwner+"/"+tt.wantRepo, ref.FullName())
		})
	}
}

func TestSplitRepository(t *testing.T) {
	owner, repo, err := SplitRepository("aergonaut/testrepo")
	assert.NoError(t, err)
	assert.Equal(t, "aergonaut", owner)
	assert.Equal(t, "testrepo", repo)

	for _, bad := range []string{"", "aergonaut", "/testrepo", "aergonaut/", "a/b/c"} {
		_, _, err := SplitRepository(bad)
		assert.Error(t, err, bad)
	}
}
