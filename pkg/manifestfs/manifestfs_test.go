package manifestfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ioccc-src/submitcheck/pkg/submission"
)

func writeFixture(t *testing.T, dir string, name string, perm os.FileMode) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), perm); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	// WriteFile's perm is modified by umask; force the exact bits.
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("chmod %s: %v", name, err)
	}
}

func TestWalkCollectsRegularFiles(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "prog.c", 0o444)
	writeFixture(t, dir, "try.sh", 0o555)

	tree, err := Walk(dir)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("tree = %+v, want 2 entries", tree)
	}
	if tree["prog.c"].Mode.Perm() != 0o444 {
		t.Errorf("prog.c perm = %v, want 0444", tree["prog.c"].Mode.Perm())
	}
}

func TestCheckPassesForWellFormedSubmission(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, ".info.json", 0o444)
	writeFixture(t, dir, ".auth.json", 0o444)
	writeFixture(t, dir, "prog.c", 0o444)
	writeFixture(t, dir, "Makefile", 0o444)
	writeFixture(t, dir, "remarks.md", 0o444)
	writeFixture(t, dir, "try.sh", 0o555)

	m := &submission.Manifest{
		InfoJSON: ".info.json", AuthJSON: ".auth.json", CSrc: "prog.c",
		Makefile: "Makefile", Remarks: "remarks.md",
		Shell: []string{"try.sh"},
	}
	tree, err := Walk(dir)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if errs := Check(dir, m, tree); len(errs) != 0 {
		t.Fatalf("expected no errors, got %+v", errs)
	}
}

func TestCheckFlagsMissingFile(t *testing.T) {
	dir := t.TempDir()
	m := &submission.Manifest{
		InfoJSON: ".info.json", AuthJSON: ".auth.json", CSrc: "prog.c",
		Makefile: "Makefile", Remarks: "remarks.md",
	}
	errs := Check(dir, m, map[string]Entry{})
	if len(errs) != 5 {
		t.Fatalf("expected 5 missing-file errors, got %d: %+v", len(errs), errs)
	}
}

func TestCheckFlagsWrongPermissions(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "prog.c", 0o644) // wrong: should be 0444

	m := &submission.Manifest{CSrc: "prog.c"}
	tree, err := Walk(dir)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	errs := Check(dir, m, tree)
	found := false
	for _, e := range errs {
		if e.Path == "prog.c" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a permission error for prog.c, got %+v", errs)
	}
}

func TestEnsureWithinRootRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "prog.c", 0o444)

	if _, err := EnsureWithinRoot(dir, "../escape"); err == nil {
		t.Fatal("expected traversal to be rejected")
	}
	if _, err := EnsureWithinRoot(dir, "prog.c"); err != nil {
		t.Fatalf("expected prog.c to resolve, got %v", err)
	}
}

func TestValidateExecutableClassification(t *testing.T) {
	errs := ValidateExecutableClassification([]string{"helper.sh"}, []string{"data.txt"})
	if len(errs) != 3 {
		t.Fatalf("expected 3 classification errors, got %+v", errs)
	}
}
