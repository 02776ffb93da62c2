package cli

import (
	"fmt"
	"strings"

	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/aretw0/chainalign/pkg/validation"
)

// ChainView is one chain as shown to the user.
type ChainView struct {
	ID     domain.ChainID
	Active bool
	Links  []domain.Link
}

// RenderChains produces a markdown overview of a chain set.
func RenderChains(chains []ChainView) string {
	var sb strings.Builder
	sb.WriteString("# Chain set\n\n")

	for _, c := range chains {
		title := fmt.Sprintf("## Chain %d", c.ID)
		if c.Active {
			title += " (active)"
		}
		sb.WriteString(title + "\n\n")

		units := domain.Units(c.Links)
		if in, out, ok := domain.Endpoints(units); ok {
			sb.WriteString(fmt.Sprintf("`%s → %s`\n\n", in, out))
		}

		for i, l := range c.Links {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, describeLink(l)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func describeLink(l domain.Link) string {
	var s string
	if l.Unit == nil {
		s = "_empty_"
	} else {
		s = fmt.Sprintf("**%s** (%s) `%s → %s`", l.Unit.Name, l.Unit.Provider, l.Unit.InputType, l.Unit.OutputType)
	}
	if !l.Settled() {
		s += fmt.Sprintf(" _%s_", l.State)
	}
	return s
}

// RenderReport produces a markdown summary of a validation report.
func RenderReport(report validation.Report) string {
	var sb strings.Builder
	sb.WriteString("# Validation\n\n")

	if report.Valid {
		sb.WriteString("✅ The chain set is valid and can be submitted.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("❌ %d issue(s) found:\n\n", len(report.Issues)))
	for _, msg := range report.Messages() {
		sb.WriteString("- " + msg + "\n")
	}
	return sb.String()
}

// RenderUnits produces a markdown table of units.
func RenderUnits(units []domain.Unit) string {
	var sb strings.Builder
	sb.WriteString("| # | ID | Name | Provider | Input | Output |\n")
	sb.WriteString("|---|----|------|----------|-------|--------|\n")
	for i, u := range units {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s |\n", i+1, u.ID, u.Name, u.Provider, u.InputType, u.OutputType))
	}
	if len(units) == 0 {
		sb.WriteString("\n_No units match._\n")
	}
	return sb.String()
}
