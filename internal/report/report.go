// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders analysis projects for people and for other tools:
// cleaned Markdown, YAML, or JSON.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/startup-analyzer/pkg/types"
)

// ErrUnknownFormat is returned by Write for an unsupported format.
var ErrUnknownFormat = errors.New("unknown report format")

var (
	boldItalic = regexp.MustCompile(`\*\*\*([^*]+)\*\*\*`)
	bold       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italic     = regexp.MustCompile(`\*([^*]+)\*`)
	underBold3 = regexp.MustCompile(`___([^_]+)___`)
	underBold  = regexp.MustCompile(`__([^_]+)__`)
	starBullet = regexp.MustCompile(`(?m)^\* `)
	heading    = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	blankRuns  = regexp.MustCompile(`\n{3,}`)
)

// CleanMarkdown strips emphasis markers from model output and turns
// asterisk bullets into "•" bullets. Headings are kept.
func CleanMarkdown(s string) string {
	s = starBullet.ReplaceAllString(s, "• ")
	return strings.TrimSpace(stripEmphasis(s))
}

// PlainText is CleanMarkdown with headings flattened to plain lines and
// runs of blank lines collapsed.
func PlainText(s string) string {
	s = heading.ReplaceAllString(s, "\n$1\n")
	s = starBullet.ReplaceAllString(s, "• ")
	s = stripEmphasis(s)
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func stripEmphasis(s string) string {
	s = boldItalic.ReplaceAllString(s, "$1")
	s = bold.ReplaceAllString(s, "$1")
	s = italic.ReplaceAllString(s, "$1")
	s = underBold3.ReplaceAllString(s, "$1")
	s = underBold.ReplaceAllString(s, "$1")
	return strings.ReplaceAll(s, "*", "")
}

// Section is one titled block of a report.
type Section struct {
	Title string
	Body  string
}

// Sections returns the seven result fields in display order. Empty fields
// are skipped.
func Sections(a types.Analysis) []Section {
	all := []Section{
		{"Market Analysis", a.MarketAnalysis},
		{"Cost Prediction", a.CostPrediction},
		{"Business Strategy", a.BusinessStrategy},
		{"Monetization Models", a.Monetization},
		{"Legal Considerations", a.LegalConsiderations},
		{"Technology Stack", a.TechStack},
		{"Final Strategy", a.StrategistCritique},
	}
	out := all[:0]
	for _, s := range all {
		if strings.TrimSpace(s.Body) != "" {
			out = append(out, s)
		}
	}
	return out
}

// Markdown renders p as a titled Markdown document with one section per
// result field and a key-figures table when figures can be found.
func Markdown(p types.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.StartupIdea)
	if p.TargetMarket != "" {
		fmt.Fprintf(&b, "Target market: %s\n\n", p.TargetMarket)
	}
	meta := []string{}
	if !p.CreatedAt.IsZero() {
		meta = append(meta, "Generated: "+p.CreatedAt.Format("January 2, 2006"))
	}
	if p.Status != "" {
		meta = append(meta, "Status: "+strings.ToUpper(string(p.Status)))
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "%s\n\n", strings.Join(meta, " | "))
	}
	if p.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n\n", p.Error)
	}

	if figs := Highlights(p.Analysis); len(figs) > 0 {
		b.WriteString("## Key Figures\n\n| Area | Figure | Value |\n|------|--------|-------|\n")
		for _, f := range figs {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", f.Area, f.Label, f.Value)
		}
		b.WriteString("\n")
	}

	for _, s := range Sections(p.Analysis) {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", s.Title, CleanMarkdown(s.Body))
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Write renders p to w in format.
func Write(w io.Writer, format types.ReportFormat, p types.Project) error {
	switch format {
	case types.ReportMarkdown, "":
		_, err := io.WriteString(w, Markdown(p))
		return err
	case types.ReportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	case types.ReportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
