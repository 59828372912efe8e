// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"regexp"
	"strings"

	"github.com/pdiddy/startup-analyzer/pkg/types"
)

// Figure is one number pulled out of free-text analysis.
type Figure struct {
	Area  string `json:"area" yaml:"area"`
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

var marketSizes = []struct {
	label string
	re    *regexp.Regexp
}{
	{"TAM", regexp.MustCompile(`(?i)\bTAM\b[^$\n]*?(\$?[\d.,]+\s*(?:billion|million|B|M)\b)`)},
	{"SAM", regexp.MustCompile(`(?i)\bSAM\b[^$\n]*?(\$?[\d.,]+\s*(?:billion|million|B|M)\b)`)},
	{"SOM", regexp.MustCompile(`(?i)\bSOM\b[^$\n]*?(\$?[\d.,]+\s*(?:billion|million|B|M)\b)`)},
}

var costCategories = []struct {
	label string
	re    *regexp.Regexp
}{
	{"Technology", regexp.MustCompile(`(?i)technology|tech|infrastructure`)},
	{"Team", regexp.MustCompile(`(?i)team|personnel|salaries|employees`)},
	{"Marketing", regexp.MustCompile(`(?i)marketing|advertising|customer acquisition`)},
	{"Legal", regexp.MustCompile(`(?i)legal|compliance|incorporation`)},
	{"Operations", regexp.MustCompile(`(?i)operations|overhead|office`)},
}

var dollarAmount = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`)

// Highlights extracts market-size figures from the market analysis and the
// first dollar amount per cost category from the cost prediction. Nothing is
// returned for text without recognisable figures.
func Highlights(a types.Analysis) []Figure {
	var out []Figure
	for _, m := range marketSizes {
		if match := m.re.FindStringSubmatch(a.MarketAnalysis); match != nil {
			out = append(out, Figure{Area: "Market", Label: m.label, Value: strings.TrimSpace(match[1])})
		}
	}

	lines := strings.Split(a.CostPrediction, "\n")
	for _, c := range costCategories {
		for _, line := range lines {
			if !c.re.MatchString(line) {
				continue
			}
			if amt := dollarAmount.FindString(line); amt != "" {
				out = append(out, Figure{Area: "Cost", Label: c.label, Value: amt})
				break
			}
		}
	}
	return out
}
