package core

// Outcome of a single rule evaluation.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// RuleResult is produced once per rule evaluated against a pull request.
// Reviewer is empty on failure. Added is true only when the reviewer was newly
// appended to the pending list.
type RuleResult struct {
	RuleName string
	Outcome  Outcome
	Reviewer string
	Added    bool
}

// Success reports whether the rule matched and a reviewer was chosen.
func (r RuleResult) Success() bool { return r.Outcome == OutcomeSuccess }

// Failure reports whether the rule did not match.
func (r RuleResult) Failure() bool { return r.Outcome == OutcomeFailure }
