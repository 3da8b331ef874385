package report

import (
	"strings"
	"testing"
)

func TestRenderFindings(t *testing.T) {
	out, err := RenderFindings([]Finding{
		{Category: "manifest", Diagnostic: "expected 1 valid auth_JSON, found: 0"},
		{Category: "filesystem", Diagnostic: "declared file is missing", Path: "prog.c"},
	})
	if err != nil {
		t.Fatalf("RenderFindings: %v", err)
	}
	if !strings.Contains(out, "manifest: expected 1 valid auth_JSON, found: 0") {
		t.Errorf("missing first finding in output: %q", out)
	}
	if !strings.Contains(out, "filesystem: declared file is missing (prog.c)") {
		t.Errorf("missing second finding in output: %q", out)
	}
}

func TestSummarizePreservesFirstSeenOrder(t *testing.T) {
	rows := Summarize([]Finding{
		{Category: "b"}, {Category: "a"}, {Category: "b"},
	})
	if len(rows) != 2 || rows[0].Category != "b" || rows[0].Count != 2 {
		t.Fatalf("unexpected summary: %+v", rows)
	}
	if rows[1].Category != "a" || rows[1].Count != 1 {
		t.Fatalf("unexpected summary: %+v", rows)
	}
}

func TestRenderSummaryTableAligns(t *testing.T) {
	table := RenderSummaryTable([]Summary{
		{Category: "manifest", Count: 3},
		{Category: "fs", Count: 1},
	})
	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), table)
	}
	idxA := strings.LastIndex(lines[0], "3")
	idxB := strings.LastIndex(lines[1], "1")
	if idxA != idxB {
		t.Fatalf("expected aligned counts, got columns %d and %d", idxA, idxB)
	}
}

func TestRenderSummaryTableEmpty(t *testing.T) {
	if got := RenderSummaryTable(nil); got != "" {
		t.Fatalf("expected empty string for no rows, got %q", got)
	}
}
