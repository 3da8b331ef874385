// Package manifestfs cross-checks a validated submission.Manifest against
// an actual submission directory: every declared file must exist with the
// right type and permission bits.
package manifestfs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ioccc-src/submitcheck/pkg/domain"
	"github.com/ioccc-src/submitcheck/pkg/safeio"
	"github.com/ioccc-src/submitcheck/pkg/submission"
)

const (
	mandatoryPerm fs.FileMode = 0o444
	shellPerm     fs.FileMode = 0o555
)

// Entry is one file discovered by Walk: its mode and size.
type Entry struct {
	Mode fs.FileMode
	Size int64
}

// Walk collects every non-directory entry under root, recursing into
// subdirectories, into a map keyed by its slash-separated path relative to
// root. Non-regular entries such as symlinks are recorded too, so that
// Check can report them as not regular files.
func Walk(root string) (map[string]Entry, error) {
	out := make(map[string]Entry)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}
		out[rel] = Entry{Mode: info.Mode(), Size: info.Size()}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("manifestfs: walking %s: %w", root, err)
	}
	return out, nil
}

// CheckError reports one declared file's mismatch against the filesystem.
type CheckError struct {
	Path       string
	Diagnostic string
}

func (e CheckError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Diagnostic)
}

// Check cross-references m's declared filenames against tree (as produced
// by Walk(root)), returning one CheckError per declared file that is
// missing, has the wrong type or permission bits, or — despite passing
// those stat-level checks — cannot actually be opened and read from inside
// root (stat-reported permission bits can lag reality behind ACLs, open
// file descriptor races, or a symlink swapped in after Walk ran).
func Check(root string, m *submission.Manifest, tree map[string]Entry) []CheckError {
	var errs []CheckError

	checkMandatory := func(name string) {
		errs = append(errs, checkOne(root, tree, name, mandatoryPerm)...)
	}
	checkMandatory(m.InfoJSON)
	checkMandatory(m.AuthJSON)
	checkMandatory(m.CSrc)
	checkMandatory(m.Makefile)
	checkMandatory(m.Remarks)
	if m.HasCAltSrc {
		checkMandatory(m.CAltSrc)
	}

	for _, name := range m.Extra {
		errs = append(errs, checkOne(root, tree, name, mandatoryPerm)...)
	}
	for _, name := range m.Shell {
		errs = append(errs, checkOne(root, tree, name, shellPerm)...)
	}
	if m.HasTrySh {
		errs = append(errs, checkOne(root, tree, m.TrySh, shellPerm)...)
	}
	if m.HasTryAltSh {
		errs = append(errs, checkOne(root, tree, m.TryAltSh, shellPerm)...)
	}

	return errs
}

func checkOne(root string, tree map[string]Entry, name string, wantPerm fs.FileMode) []CheckError {
	if name == "" {
		return nil
	}
	entry, ok := tree[name]
	if !ok {
		return []CheckError{{Path: name, Diagnostic: "declared file is missing"}}
	}
	if !entry.Mode.IsRegular() {
		return []CheckError{{Path: name, Diagnostic: fmt.Sprintf("not a regular file (mode %s)", entry.Mode)}}
	}
	if entry.Mode.Perm() != wantPerm {
		return []CheckError{{Path: name, Diagnostic: fmt.Sprintf("expected permissions %#o, found %#o", wantPerm, entry.Mode.Perm())}}
	}
	if _, err := safeio.ReadFileContained(root, filepath.Join(root, name)); err != nil {
		return []CheckError{{Path: name, Diagnostic: fmt.Sprintf("declared file is not readable: %v", err)}}
	}
	return nil
}

// ValidateExecutableClassification reports a CheckError when an entry in
// shell does not satisfy domain.IsExecutableFilename, or an entry in extra
// does — a cross-check complementary to submission.LoadManifest's own
// filename validation, useful when the caller built the lists by hand
// rather than through LoadManifest. An extra entry ending in ".sh" also
// gets its own "must not end in .sh" CheckError, so it yields two errors.
func ValidateExecutableClassification(extra, shell []string) []CheckError {
	var errs []CheckError
	for _, name := range extra {
		if domain.IsExecutableFilename(name) {
			errs = append(errs, CheckError{Path: name, Diagnostic: "extra file is classified as executable"})
		}
		if strings.HasSuffix(name, ".sh") {
			errs = append(errs, CheckError{Path: name, Diagnostic: "extra file must not end in .sh"})
		}
	}
	for _, name := range shell {
		if !domain.IsExecutableFilename(name) {
			errs = append(errs, CheckError{Path: name, Diagnostic: "shell file is not classified as executable"})
		}
	}
	return errs
}

// EnsureWithinRoot is a thin safety gate over os.Open/os.Stat style
// operations a caller might layer on top of the declared filenames before
// invoking Walk; it never allows a name to escape root via "..".
func EnsureWithinRoot(root, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("manifestfs: %q escapes submission root", name)
	}
	clean, err := safeio.CleanUserPath(name)
	if err != nil {
		return "", fmt.Errorf("manifestfs: %q escapes submission root: %w", name, err)
	}
	full := filepath.Join(root, clean)
	if _, err := os.Stat(full); err != nil {
		return "", fmt.Errorf("manifestfs: stat %s: %w", full, err)
	}
	return full, nil
}
