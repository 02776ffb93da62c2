package validation

import (
	"errors"
	"fmt"
)

// Kind groups issues by the rule they violate.
type Kind string

const (
	// KindCompatibility is an adjacent-type mismatch inside one chain.
	KindCompatibility Kind = "compatibility"
	// KindConsistency is a cross-chain endpoint mismatch or an empty chain.
	KindConsistency Kind = "consistency"
)

// Issue represents a single validation failure.
type Issue struct {
	Kind    Kind
	Chain   int // 1-based chain number, 0 when checking a lone chain
	Message string
}

func (i *Issue) Error() string {
	return i.Message
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Issues returns all validation issues if err is (or wraps) an AggregateError.
// Otherwise returns nil.
func Issues(err error) []*Issue {
	var aggr *AggregateError
	if !errors.As(err, &aggr) {
		return nil
	}
	issues := make([]*Issue, 0, len(aggr.Errors))
	for _, e := range aggr.Errors {
		var issue *Issue
		if errors.As(e, &issue) {
			issues = append(issues, issue)
		}
	}
	return issues
}
