package cmd

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ioccc-src/submitcheck/pkg/policyconfig"
)

func TestExpandDirsGlobNoPattern(t *testing.T) {
	dirs := []string{"a", "b"}
	out, err := expandDirsGlob(dirs, "")
	if err != nil {
		t.Fatalf("expandDirsGlob: %v", err)
	}
	if len(out) != 2 || out[0] != "a" || out[1] != "b" {
		t.Fatalf("expected dirs unchanged, got %v", out)
	}
}

func TestExpandDirsGlobMergesMatchesDeduped(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"sub1", "sub2"} {
		if err := os.MkdirAll(filepath.Join(root, "submissions", name), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	explicit := filepath.Clean("submissions/sub1")
	out, err := expandDirsGlob([]string{explicit}, "submissions/*")
	if err != nil {
		t.Fatalf("expandDirsGlob: %v", err)
	}

	sort.Strings(out)
	want := []string{"submissions/sub1", "submissions/sub2"}
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("got %v, want %v", out, want)
			break
		}
	}
}

func TestExpandDirsGlobInvalidPattern(t *testing.T) {
	_, err := expandDirsGlob(nil, "[")
	if err == nil {
		t.Fatal("expected error for invalid doublestar pattern")
	}
}

func TestValidateDirReportsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	policy := policyconfig.Default()

	findings, err := validateDir(dir, policy)
	if err != nil {
		t.Fatalf("validateDir: %v", err)
	}
	if len(findings) == 0 {
		t.Fatal("expected findings for a directory missing .auth.json and .info.json")
	}
}
