/*
Package validation checks the type compatibility of chains and chain sets.

Every function here is pure: it inspects flattened unit lists and returns a Report.
Problems are returned as data, never panicked or thrown, so callers can display them
before allowing a submission to proceed.

	report := validation.ValidateChainSet(chains)
	if !report.Valid {
		for _, msg := range report.Messages() {
			fmt.Println(msg)
		}
	}
*/
package validation
