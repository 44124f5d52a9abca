package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/reliefmap/relief/internal/model"
)

// Renderer writes analysis reports as JSON, Markdown, and a stdout summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full analysis as indented JSON.
func (r *Renderer) RenderJSON(a *model.StructuralAnalysis, path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(a *model.StructuralAnalysis, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Claim Landscape Analysis\n\n")
	fmt.Fprintf(&b, "**Shape:** %s (confidence %.2f, signal %.2f)\n\n",
		a.Shape.Primary, a.Shape.Confidence, a.Shape.SignalStrength)
	if a.Shape.TransferQuestion != "" {
		fmt.Fprintf(&b, "> %s\n\n", a.Shape.TransferQuestion)
	}

	if len(a.Shape.Evidence) > 0 {
		fmt.Fprintf(&b, "## Why this classification\n\n")
		for _, ev := range a.Shape.Evidence {
			fmt.Fprintf(&b, "- %s\n", ev)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Core ratios\n\n")
	fmt.Fprintf(&b, "| Ratio | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Concentration | %.2f |\n", a.Ratios.Concentration)
	fmt.Fprintf(&b, "| Alignment | %.2f |\n", a.Ratios.Alignment)
	fmt.Fprintf(&b, "| Tension | %.2f |\n", a.Ratios.Tension)
	fmt.Fprintf(&b, "| Fragmentation | %.2f |\n", a.Ratios.Fragmentation)
	fmt.Fprintf(&b, "| Depth | %.2f |\n\n", a.Ratios.Depth)

	if len(a.Insights) > 0 {
		fmt.Fprintf(&b, "## Findings\n\n")
		for _, ins := range a.Insights {
			label := ins.Claim.Label
			if label == "" {
				label = ins.Claim.ID
			}
			fmt.Fprintf(&b, "- **%s** [%s] %s\n", ins.Kind, ins.Severity, label)
		}
		fmt.Fprintf(&b, "\n")
	}

	if a.GhostAnalysis.Count > 0 {
		fmt.Fprintf(&b, "## Unaddressed areas\n\n")
		for _, topic := range a.GhostAnalysis.Topics {
			fmt.Fprintf(&b, "- %s\n", topic)
		}
		fmt.Fprintf(&b, "\n")
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n\nGenerated by relief. The analysis measures structure and support, not truth.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints a short report to stdout.
func (r *Renderer) RenderSummary(a *model.StructuralAnalysis) {
	fmt.Printf("\n")
	fmt.Printf("  Shape:          %s (confidence %.2f)\n", a.Shape.Primary, a.Shape.Confidence)
	fmt.Printf("  Claims:         %d across %d sources\n", a.Landscape.ClaimCount, a.Landscape.ModelCount)
	fmt.Printf("  Relationships:  %d (tension %.2f)\n", a.Landscape.EdgeCount, a.Ratios.Tension)
	fmt.Printf("  Components:     %d (fragmentation %.2f)\n", a.Graph.ComponentCount, a.Ratios.Fragmentation)
	if a.Graph.HubClaim != "" {
		fmt.Printf("  Hub:            %s (dominance %.2f)\n", a.Graph.HubClaim, a.Graph.HubDominance)
	}
	fmt.Printf("  Findings:       %d\n", len(a.Insights))
	if a.Shape.TransferQuestion != "" {
		fmt.Printf("\n  %s\n", a.Shape.TransferQuestion)
	}
	fmt.Printf("\n")
}
