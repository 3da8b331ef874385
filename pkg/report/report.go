// Package report renders validation results for the CLI: a per-error
// listing from a small Handlebars-style template, and a runewidth-aligned
// summary table of count totals by category.
package report

import (
	"fmt"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/mattn/go-runewidth"
)

const errorLineTemplate = `{{#each Errors}}{{Category}}: {{Diagnostic}}{{#if Path}} ({{Path}}){{/if}}
{{/each}}`

// Finding is one reportable problem, already flattened from whichever
// error type produced it (jsonnode.ValidationError, semantic.CountError,
// manifestfs.CheckError, ...).
type Finding struct {
	Category   string
	Diagnostic string
	Path       string
}

// RenderFindings renders findings as one line per finding, grouped in the
// order given, using the package's Handlebars-style template.
func RenderFindings(findings []Finding) (string, error) {
	tpl, err := raymond.Parse(errorLineTemplate)
	if err != nil {
		return "", fmt.Errorf("report: parsing template: %w", err)
	}
	out, err := tpl.Exec(map[string]interface{}{"Errors": findings})
	if err != nil {
		return "", fmt.Errorf("report: executing template: %w", err)
	}
	return out, nil
}

// Summary is one row of the category-count table.
type Summary struct {
	Category string
	Count    int
}

// Summarize tallies findings by Category, preserving first-seen order.
func Summarize(findings []Finding) []Summary {
	var order []string
	counts := map[string]int{}
	for _, f := range findings {
		if _, seen := counts[f.Category]; !seen {
			order = append(order, f.Category)
		}
		counts[f.Category]++
	}
	out := make([]Summary, 0, len(order))
	for _, cat := range order {
		out = append(out, Summary{Category: cat, Count: counts[cat]})
	}
	return out
}

// RenderSummaryTable renders rows as a two-column, rune-width-aligned table
// suitable for a monospace terminal (go-runewidth accounts for wide glyphs
// so category names containing them still line up).
func RenderSummaryTable(rows []Summary) string {
	if len(rows) == 0 {
		return ""
	}

	width := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r.Category); w > width {
			width = w
		}
	}

	var b strings.Builder
	for _, r := range rows {
		pad := width - runewidth.StringWidth(r.Category)
		b.WriteString(r.Category)
		b.WriteString(strings.Repeat(" ", pad))
		fmt.Fprintf(&b, "  %d\n", r.Count)
	}
	return b.String()
}
