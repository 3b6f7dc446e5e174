package core

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// RuleType selects the matching strategy of a ReviewRule.
type RuleType string

const (
	// RuleTypeAlways matches every pull request of the rule's repository.
	RuleTypeAlways RuleType = "always"
	// RuleTypeFileMatch matches when a changed file path matches the rule's FileMatch pattern.
	RuleTypeFileMatch RuleType = "file_match"
)

// ReviewRule maps a repository and a match condition to a reviewer identifier.
type ReviewRule struct {
	ID         int64     `db:"id" yaml:"-"`
	Name       string    `db:"name" yaml:"name"`
	Type       RuleType  `db:"type" yaml:"type"`
	FileMatch  string    `db:"file_match" yaml:"file_match"`
	Reviewer   string    `db:"reviewer" yaml:"reviewer"`
	Repository string    `db:"repository" yaml:"repository"`
	CreatedAt  time.Time `db:"created_at" yaml:"-"`
	UpdatedAt  time.Time `db:"updated_at" yaml:"-"`

	// Ref is Reviewer parsed by Resolve when the rule is loaded.
	Ref ReviewerRef `db:"-" yaml:"-"`
}

// Validate reports whether the rule can be stored. Rules are checked once on
// creation; evaluation assumes a valid rule.
func (r *ReviewRule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRule)
	}
	if r.Reviewer == "" {
		return fmt.Errorf("%w: reviewer is required", ErrInvalidRule)
	}
	if r.Repository == "" {
		return fmt.Errorf("%w: repository is required", ErrInvalidRule)
	}

	switch r.Type {
	case RuleTypeAlways:
	case RuleTypeFileMatch:
		if r.FileMatch == "" {
			return fmt.Errorf("%w: file_match is required for %q rules", ErrInvalidRule, r.Type)
		}
		if _, err := regexp.Compile(r.FileMatch); err != nil {
			return fmt.Errorf("%w: invalid file_match %q: %w", ErrInvalidRule, r.FileMatch, err)
		}
	default:
		return fmt.Errorf("%w: unknown rule type %q", ErrInvalidRule, r.Type)
	}
	r.Resolve()
	return nil
}

// Resolve parses Reviewer into Ref. Stores call it for every rule they load.
func (r *ReviewRule) Resolve() {
	r.Ref = ParseReviewer(r.Reviewer)
}

// ReviewerRef returns the parsed form of the rule's reviewer identifier,
// parsing it on the spot only for rules that were never resolved.
func (r *ReviewRule) ReviewerRef() ReviewerRef {
	if r.Ref == (ReviewerRef{}) {
		return ParseReviewer(r.Reviewer)
	}
	return r.Ref
}

// ReviewerKind distinguishes literal usernames from team identifiers.
type ReviewerKind int

const (
	KindLiteral ReviewerKind = iota
	KindTeam
)

// ReviewerRef is either a literal username or a numeric team ID that has to be
// expanded through a ReviewerDirectory.
type ReviewerRef struct {
	Kind     ReviewerKind
	Username string
	TeamID   int64
}

// ParseReviewer classifies a reviewer identifier. A string made only of ASCII
// digits is a team ID, anything else is taken verbatim as a username.
func ParseReviewer(s string) ReviewerRef {
	if isDigits(s) {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			return ReviewerRef{Kind: KindTeam, TeamID: id}
		}
	}
	return ReviewerRef{Kind: KindLiteral, Username: s}
}

func (r ReviewerRef) String() string {
	if r.Kind == KindTeam {
		return "team:" + strconv.FormatInt(r.TeamID, 10)
	}
	return r.Username
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
