package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/chainalign/pkg/domain"
)

// Chain is one chain to draw.
type Chain struct {
	ID    domain.ChainID
	Units []domain.Unit
}

// Overlay contains editing state to visualize on the graph.
type Overlay struct {
	Active domain.ChainID
}

// GenerateMermaid produces a Mermaid flowchart (graph LR) with one subgraph per chain.
// Unit shapes follow the produced medium:
// - text: [Rectangle]
// - audio: ([Stadium])
// - image: [/Parallelogram/]
// - video: [[Subroutine]]
// Edges are labelled with the medium passed along; incompatible pairs are drawn
// dotted and styled as broken.
func GenerateMermaid(chains []Chain, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	var broken []int
	edge := 0

	for _, c := range chains {
		sb.WriteString(fmt.Sprintf("    subgraph chain%d [\"Chain %d\"]\n", c.ID, c.ID))

		if len(c.Units) == 0 {
			sb.WriteString(fmt.Sprintf("        c%d_empty((\"empty\"))\n", c.ID))
		}

		for i, u := range c.Units {
			opener, closer := shape(u.OutputType)
			label := escape(u.Name) + " <br/> " + string(u.InputType) + " → " + string(u.OutputType)
			sb.WriteString(fmt.Sprintf("        %s%s\"%s\"%s\n", nodeID(c.ID, i), opener, label, closer))
		}

		for i := 0; i+1 < len(c.Units); i++ {
			cur, next := c.Units[i], c.Units[i+1]
			from, to := nodeID(c.ID, i), nodeID(c.ID, i+1)
			if cur.Feeds(next) {
				sb.WriteString(fmt.Sprintf("        %s -- \"%s\" --> %s\n", from, cur.OutputType, to))
			} else {
				sb.WriteString(fmt.Sprintf("        %s -. \"%s ≠ %s\" .-> %s\n", from, cur.OutputType, next.InputType, to))
				broken = append(broken, edge)
			}
			edge++
		}

		sb.WriteString("    end\n")
	}

	if len(broken) > 0 {
		ids := make([]string, len(broken))
		for i, b := range broken {
			ids[i] = fmt.Sprint(b)
		}
		sb.WriteString(fmt.Sprintf("    linkStyle %s stroke:#d32f2f,stroke-width:2px;\n", strings.Join(ids, ",")))
	}

	if overlay != nil && overlay.Active != 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme.
		sb.WriteString("    classDef active fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class chain%d active;\n", overlay.Active))
	}

	return sb.String()
}

func shape(media domain.MediaType) (string, string) {
	switch media {
	case domain.MediaAudio:
		return "([", "])"
	case domain.MediaImage:
		return "[/", "/]"
	case domain.MediaVideo:
		return "[[", "]]"
	default:
		return "[", "]"
	}
}

func nodeID(id domain.ChainID, pos int) string {
	return fmt.Sprintf("c%d_%d", id, pos)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
