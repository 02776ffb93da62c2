package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/chainalign/internal/presentation/graph"
	"github.com/aretw0/chainalign/pkg/domain"
)

var (
	gpt   = domain.Unit{ID: "gpt-4", Name: "GPT-4", InputType: domain.MediaText, OutputType: domain.MediaText}
	tts   = domain.Unit{ID: "tts-1", Name: "TTS \"1\"", InputType: domain.MediaText, OutputType: domain.MediaAudio}
	dalle = domain.Unit{ID: "dall-e-3", Name: "DALL-E 3", InputType: domain.MediaText, OutputType: domain.MediaImage}
	video = domain.Unit{ID: "v", Name: "Video", InputType: domain.MediaImage, OutputType: domain.MediaVideo}
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		chains      []graph.Chain
		overlay     *graph.Overlay
		contains    []string
		notContains []string
	}{
		{
			name:   "Unit Shapes",
			chains: []graph.Chain{{ID: 1, Units: []domain.Unit{gpt, tts}}, {ID: 2, Units: []domain.Unit{dalle, video}}},
			contains: []string{
				"subgraph chain1 [\"Chain 1\"]",
				"c1_0[\"GPT-4 <br/> text → text\"]",
				"c1_1([\"TTS '1' <br/> text → audio\"])",
				"c2_0[/\"DALL-E 3 <br/> text → image\"/]",
				"c2_1[[\"Video <br/> image → video\"]]",
			},
		},
		{
			name:     "Compatible Edge",
			chains:   []graph.Chain{{ID: 1, Units: []domain.Unit{gpt, tts}}},
			contains: []string{"c1_0 -- \"text\" --> c1_1"},
			notContains: []string{
				"linkStyle",
			},
		},
		{
			name:   "Broken Edge",
			chains: []graph.Chain{{ID: 1, Units: []domain.Unit{gpt, tts}}, {ID: 3, Units: []domain.Unit{tts, gpt}}},
			contains: []string{
				"c3_0 -. \"audio ≠ text\" .-> c3_1",
				"linkStyle 1 stroke:#d32f2f",
			},
		},
		{
			name:     "Empty Chain",
			chains:   []graph.Chain{{ID: 2}},
			contains: []string{"c2_empty((\"empty\"))"},
		},
		{
			name:    "Active Overlay",
			chains:  []graph.Chain{{ID: 1, Units: []domain.Unit{gpt}}},
			overlay: &graph.Overlay{Active: 1},
			contains: []string{
				"classDef active",
				"class chain1 active;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.chains, tt.overlay)
			if !strings.HasPrefix(got, "graph LR\n") {
				t.Errorf("expected graph LR header, got:\n%s", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("expected output not to contain %q, got:\n%s", unwanted, got)
				}
			}
		})
	}
}
