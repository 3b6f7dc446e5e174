// Package gitutil parses GitHub repository and pull request identifiers.
package gitutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var prURLRegex = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/pull/(\d+)$`)

// PullRequestRef identifies a pull request on GitHub.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

// FullName returns "owner/repo".
func (r PullRequestRef) FullName() string {
	return r.Owner + "/" + r.Repo
}

// ParsePullRequestURL parses https://github.com/{owner}/{repo}/pull/{number}.
// The scheme and a trailing slash are optional.
func ParsePullRequestURL(url string) (PullRequestRef, error) {
	url = strings.TrimSuffix(url, "/")

	matches := prURLRegex.FindStringSubmatch(url)
	if len(matches) != 4 {
		return PullRequestRef{}, fmt.Errorf("invalid pull request URL format: %s", url)
	}

	number, err := strconv.Atoi(matches[3])
	if err != nil {
		return PullRequestRef{}, fmt.Errorf("invalid PR number '%s': %w", matches[3], err)
	}
	return PullRequestRef{Owner: matches[1], Repo: matches[2], Number: number}, nil
}

// SplitRepository splits an "owner/name" repository identifier.
func SplitRepository(fullName string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository name %q, expected owner/name", fullName)
	}
	return owner, repo, nil
}
