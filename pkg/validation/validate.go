package validation

import (
	"fmt"

	"github.com/aretw0/chainalign/pkg/domain"
)

// Report is the outcome of a validation pass.
type Report struct {
	Valid  bool
	Issues []*Issue
}

func newReport(issues []*Issue) Report {
	return Report{Valid: len(issues) == 0, Issues: issues}
}

// Messages returns the issue messages in order.
func (r Report) Messages() []string {
	msgs := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		msgs[i] = issue.Message
	}
	return msgs
}

// Err returns nil for a valid report and an *AggregateError otherwise.
func (r Report) Err() error {
	if r.Valid {
		return nil
	}
	errs := make([]error, len(r.Issues))
	for i, issue := range r.Issues {
		errs[i] = issue
	}
	return &AggregateError{Errors: errs}
}

// CheckChain scans adjacent units of a flattened chain and reports every pair where
// the earlier output type differs from the later input type.
// Chains with zero or one unit are trivially valid.
func CheckChain(units []domain.Unit) Report {
	var issues []*Issue

	for i := 0; i+1 < len(units); i++ {
		cur, next := units[i], units[i+1]
		if cur.Feeds(next) {
			continue
		}
		issues = append(issues, &Issue{
			Kind: KindCompatibility,
			Message: fmt.Sprintf(
				"Incompatible types between %s and %s: %s outputs %s but %s expects %s",
				cur.Name, next.Name, cur.Name, cur.OutputType, next.Name, next.InputType,
			),
		})
	}

	return newReport(issues)
}

// CheckConsistency verifies every chain shares the overall input and output type of the
// first chain, so chains can be compared head-to-head.
// Empty chains are reported and excluded from the type comparison. When the first chain
// is itself empty there is no reference, so only emptiness is reported.
func CheckConsistency(chains [][]domain.Unit) Report {
	var issues []*Issue

	if len(chains) == 0 {
		return newReport(nil)
	}

	wantIn, wantOut, hasRef := domain.Endpoints(chains[0])

	for i, chain := range chains {
		num := i + 1

		in, out, ok := domain.Endpoints(chain)
		if !ok {
			issues = append(issues, &Issue{
				Kind:    KindConsistency,
				Chain:   num,
				Message: fmt.Sprintf("Chain %d is empty", num),
			})
			continue
		}
		if !hasRef {
			continue
		}

		if in != wantIn {
			issues = append(issues, &Issue{
				Kind:    KindConsistency,
				Chain:   num,
				Message: fmt.Sprintf("Chain %d has inconsistent input type: expected %s but got %s", num, wantIn, in),
			})
		}
		if out != wantOut {
			issues = append(issues, &Issue{
				Kind:    KindConsistency,
				Chain:   num,
				Message: fmt.Sprintf("Chain %d has inconsistent output type: expected %s but got %s", num, wantOut, out),
			})
		}
	}

	return newReport(issues)
}

// ValidateChainSet runs CheckChain on every chain (issues prefixed with the chain number)
// followed by CheckConsistency across the set.
// It is the single entry point callers must use before sending chains onward.
func ValidateChainSet(chains [][]domain.Unit) Report {
	var issues []*Issue

	for i, chain := range chains {
		num := i + 1
		for _, issue := range CheckChain(chain).Issues {
			issues = append(issues, &Issue{
				Kind:    issue.Kind,
				Chain:   num,
				Message: fmt.Sprintf("Chain %d: %s", num, issue.Message),
			})
		}
	}

	issues = append(issues, CheckConsistency(chains).Issues...)

	return newReport(issues)
}
