package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ioccc-src/submitcheck/pkg/domain"
	"github.com/ioccc-src/submitcheck/pkg/docschema"
	"github.com/ioccc-src/submitcheck/pkg/jsonnode"
	"github.com/ioccc-src/submitcheck/pkg/logger"
	"github.com/ioccc-src/submitcheck/pkg/manifestfs"
	"github.com/ioccc-src/submitcheck/pkg/policyconfig"
	"github.com/ioccc-src/submitcheck/pkg/report"
	"github.com/ioccc-src/submitcheck/pkg/submission"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var validateDirsGlob string

var validateCmd = &cobra.Command{
	Use:   "validate <submission-dir>...",
	Short: "Validate one or more submission directories' .auth.json and .info.json manifest",
	Long: `validate loads each <submission-dir>/.auth.json as an author object (or
array of author objects) and <submission-dir>/.info.json's "manifest" array,
runs the structural pre-check, the domain predicates, the cross-field
uniqueness checks, and the filesystem cross-check, then prints a report of
every finding.

Each directory's validation is an independent, synchronous pipeline; when
more than one directory is given, submitcheck runs them concurrently (the
pipeline for a single submission is never itself parallelized) and
prints results in argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateDirsGlob, "dirs-glob", "", "additional submission directories to validate, matched with a doublestar pattern (e.g. 'submissions/**/')")
	rootCmd.AddCommand(validateCmd)
}

// expandDirsGlob resolves --dirs-glob (when set) against the current
// working directory, merging its matches after the explicit positional
// directories with duplicates removed.
func expandDirsGlob(dirs []string, pattern string) ([]string, error) {
	if pattern == "" {
		return dirs, nil
	}
	matches, err := doublestar.Glob(os.DirFS("."), pattern)
	if err != nil {
		return nil, fmt.Errorf("validate: invalid --dirs-glob pattern %q: %w", pattern, err)
	}

	seen := make(map[string]bool, len(dirs))
	out := make([]string, 0, len(dirs)+len(matches))
	for _, d := range dirs {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	for _, m := range matches {
		clean := filepath.Clean(m)
		if !seen[clean] {
			seen[clean] = true
			out = append(out, clean)
		}
	}
	return out, nil
}

// dirResult is one directory's outcome, gathered concurrently and then
// printed in argument order.
type dirResult struct {
	dir      string
	findings []report.Finding
	err      error
}

func runValidate(cmd *cobra.Command, args []string) error {
	policyPath, _ := cmd.Flags().GetString("policy")
	policy, err := policyconfig.Load(policyPath)
	if err != nil {
		return err
	}

	args, err = expandDirsGlob(args, validateDirsGlob)
	if err != nil {
		return err
	}

	results := make([]dirResult, len(args))
	var group errgroup.Group
	for i, dir := range args {
		i, dir := i, dir
		group.Go(func() error {
			findings, err := validateDir(dir, policy)
			results[i] = dirResult{dir: dir, findings: findings, err: err}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	var allFindings []report.Finding
	for _, r := range results {
		if r.err != nil {
			return r.err
		}
		if len(args) > 1 {
			fmt.Printf("== %s ==\n", r.dir)
		}
		allFindings = append(allFindings, r.findings...)
		rendered, err := report.RenderFindings(r.findings)
		if err != nil {
			return err
		}
		fmt.Print(rendered)
	}
	fmt.Print(report.RenderSummaryTable(report.Summarize(allFindings)))

	if len(allFindings) > 0 {
		os.Exit(1)
	}
	return nil
}

// validateDir runs the full pipeline for a single submission directory.
// Everything it does is synchronous and single-threaded, matching the
// semantic walker's own concurrency model; only the outer loop in
// runValidate runs multiple calls to validateDir concurrently.
func validateDir(dir string, policy policyconfig.Policy) ([]report.Finding, error) {
	logger.Debug("validating submission directory", logger.String("dir", dir))
	var findings []report.Finding

	authors, authorErrs := loadAuthors(filepath.Join(dir, domain.AuthJSONFilename), policy)
	findings = append(findings, toFindings("author", authorErrs)...)
	if len(authors) > 0 {
		for _, e := range submission.ValidateAuthorList(authors) {
			findings = append(findings, report.Finding{Category: "author", Diagnostic: e.Diagnostic})
		}
	}

	manifest, manifestErrs := loadManifest(filepath.Join(dir, domain.InfoJSONFilename), policy)
	findings = append(findings, toFindings("manifest", manifestErrs)...)

	if manifest != nil {
		tree, walkErr := manifestfs.Walk(dir)
		if walkErr != nil {
			return nil, walkErr
		}
		for _, e := range manifestfs.Check(dir, manifest, tree) {
			findings = append(findings, report.Finding{Category: "filesystem", Diagnostic: e.Diagnostic, Path: e.Path})
		}
	}

	logger.Info("submission directory validated", logger.String("dir", dir), logger.Int("findings", len(findings)))
	return findings, nil
}

func loadAuthors(path string, policy policyconfig.Policy) ([]*submission.Author, []jsonnode.ValidationError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []jsonnode.ValidationError{{Diagnostic: fmt.Sprintf("reading %s: %v", path, err)}}
	}

	var decoded interface{}
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, []jsonnode.ValidationError{{Diagnostic: fmt.Sprintf("parsing %s: %v", path, err)}}
	}

	authorDocs := []interface{}{decoded}
	if arr, isArr := decoded.([]interface{}); isArr {
		authorDocs = arr
	}
	var schemaErrs []jsonnode.ValidationError
	for _, doc := range authorDocs {
		if res, err := docschema.ValidateAuthor(doc); err == nil && !res.Valid {
			for _, e := range res.Errors {
				schemaErrs = append(schemaErrs, jsonnode.ValidationError{Diagnostic: fmt.Sprintf("%s: %s", e.Field, e.Message)})
			}
		}
	}
	if len(schemaErrs) > 0 {
		return nil, schemaErrs
	}

	node, err := jsonnode.FromAny(decoded)
	if err != nil {
		return nil, []jsonnode.ValidationError{{Diagnostic: err.Error()}}
	}

	var errs []jsonnode.ValidationError
	var authors []*submission.Author
	if node.Kind == jsonnode.Array {
		for _, elem := range node.Elements {
			if a, ok := submission.LoadAuthor(elem, policy, &errs); ok {
				authors = append(authors, a)
			}
		}
	} else if a, ok := submission.LoadAuthor(node, policy, &errs); ok {
		authors = append(authors, a)
	}
	return authors, errs
}

func loadManifest(infoPath string, policy policyconfig.Policy) (*submission.Manifest, []jsonnode.ValidationError) {
	data, err := os.ReadFile(infoPath)
	if err != nil {
		return nil, []jsonnode.ValidationError{{Diagnostic: fmt.Sprintf("reading %s: %v", infoPath, err)}}
	}

	var decoded map[string]interface{}
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, []jsonnode.ValidationError{{Diagnostic: fmt.Sprintf("parsing %s: %v", infoPath, err)}}
	}

	manifestRaw, ok := decoded["manifest"]
	if !ok {
		return nil, []jsonnode.ValidationError{{Diagnostic: fmt.Sprintf("%s: missing \"manifest\" member", infoPath)}}
	}
	if res, err := docschema.ValidateManifest(manifestRaw); err == nil && !res.Valid {
		var errs []jsonnode.ValidationError
		for _, e := range res.Errors {
			errs = append(errs, jsonnode.ValidationError{Diagnostic: fmt.Sprintf("%s: %s", e.Field, e.Message)})
		}
		return nil, errs
	}

	node, err := jsonnode.FromAny(manifestRaw)
	if err != nil {
		return nil, []jsonnode.ValidationError{{Diagnostic: err.Error()}}
	}

	var errs []jsonnode.ValidationError
	manifest, _ := submission.LoadManifest(node, policy, &errs)
	return manifest, errs
}

func toFindings(category string, errs []jsonnode.ValidationError) []report.Finding {
	out := make([]report.Finding, 0, len(errs))
	for _, e := range errs {
		out = append(out, report.Finding{Category: category, Diagnostic: e.Diagnostic})
	}
	return out
}
