package rules

import (
	"fmt"
	"regexp"

	"github.com/sevigo/review-warden/internal/core"
)

// Matcher decides whether a rule applies to a pull request. The returned token
// is strategy specific and only meaningful when ok is true.
type Matcher interface {
	Match(payload *core.PullRequestPayload) (token string, ok bool)
}

// AlwaysMatch matches every pull request.
type AlwaysMatch struct{}

func (AlwaysMatch) Match(_ *core.PullRequestPayload) (string, bool) {
	return string(core.RuleTypeAlways), true
}

// FilePathMatch matches when any changed file path matches Pattern. The token
// is the first matching path.
type FilePathMatch struct {
	Pattern *regexp.Regexp
}

func (m FilePathMatch) Match(payload *core.PullRequestPayload) (string, bool) {
	for _, f := range payload.ChangedFiles {
		if m.Pattern.MatchString(f) {
			return f, true
		}
	}
	return "", false
}

// MatcherFor builds the matching strategy for a rule's type.
func MatcherFor(rule *core.ReviewRule) (Matcher, error) {
	switch rule.Type {
	case core.RuleTypeAlways:
		return AlwaysMatch{}, nil
	case core.RuleTypeFileMatch:
		re, err := regexp.Compile(rule.FileMatch)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %q: %w", core.ErrInvalidRule, rule.Name, err)
		}
		return FilePathMatch{Pattern: re}, nil
	default:
		return nil, fmt.Errorf("%w: rule %q has unknown type %q", core.ErrInvalidRule, rule.Name, rule.Type)
	}
}

// NeedsChangedFiles reports whether any rule inspects the changed file list,
// so callers can skip fetching it otherwise.
func NeedsChangedFiles(rules []core.ReviewRule) bool {
	for i := range rules {
		if rules[i].Type == core.RuleTypeFileMatch {
			return true
		}
	}
	return false
}
