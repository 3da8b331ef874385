package submission

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ioccc-src/submitcheck/pkg/jsonnode"
	"github.com/ioccc-src/submitcheck/pkg/policyconfig"
)

func mustNode(t *testing.T, text string) *jsonnode.Node {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	n, err := jsonnode.FromAny(v)
	if err != nil {
		t.Fatalf("FromAny: %v", err)
	}
	return n
}

const validAuthorJSON = `{
	"name": "Ada Lovelace",
	"location_code": "GB",
	"email": null,
	"url": "https://example.com/ada",
	"alt_url": null,
	"mastodon": null,
	"github": "@ada",
	"affiliation": null,
	"past_winning_author": false,
	"default_handle": true,
	"author_handle": "ada",
	"author_number": 0
}`

func TestLoadAuthorValid(t *testing.T) {
	n := mustNode(t, validAuthorJSON)
	var errs []jsonnode.ValidationError
	a, ok := LoadAuthor(n, policyconfig.Default(), &errs)
	if !ok {
		t.Fatalf("expected valid author, errs=%+v", errs)
	}
	if a.Name != "Ada Lovelace" {
		t.Errorf("Name = %q", a.Name)
	}
	if !a.EmailWithheld {
		t.Error("expected email to be withheld")
	}
	if a.GitHub != "@ada" || a.GitHubWithheld {
		t.Errorf("GitHub = %q withheld=%v", a.GitHub, a.GitHubWithheld)
	}
}

func TestLoadAuthorUnknownKey(t *testing.T) {
	n := mustNode(t, `{"name":"x","bogus":"y"}`)
	var errs []jsonnode.ValidationError
	_, ok := LoadAuthor(n, policyconfig.Default(), &errs)
	if ok {
		t.Fatal("expected failure for unknown key")
	}
	found := false
	for _, e := range errs {
		if strings.Contains(e.Diagnostic, "unknown key") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unknown-key diagnostic, got %+v", errs)
	}
}

func TestLoadAuthorMissingRequiredKey(t *testing.T) {
	n := mustNode(t, `{"name":"x"}`)
	var errs []jsonnode.ValidationError
	_, ok := LoadAuthor(n, policyconfig.Default(), &errs)
	if ok {
		t.Fatal("expected failure for missing keys")
	}
	if len(errs) == 0 {
		t.Fatal("expected missing-key diagnostics")
	}
}

func TestValidateAuthorListDetectsDuplicates(t *testing.T) {
	authors := []*Author{
		{Name: "A", AuthorHandle: "a", AuthorNumber: 0},
		{Name: "A", AuthorHandle: "b", AuthorNumber: 0},
	}
	errs := ValidateAuthorList(authors)
	if len(errs) == 0 {
		t.Fatal("expected duplicate name and author_number errors")
	}
}

func manifestJSON(extra, shell string) string {
	return `[
		{"info_JSON":".info.json"},
		{"auth_JSON":".auth.json"},
		{"c_src":"prog.c"},
		{"Makefile":"Makefile"},
		{"remarks":"remarks.md"}` + extra + shell + `
	]`
}

func TestLoadManifestValid(t *testing.T) {
	n := mustNode(t, manifestJSON(`,{"extra_file":"data.txt"}`, `,{"shell_script":"try.sh"}`))
	var errs []jsonnode.ValidationError
	m, ok := LoadManifest(n, policyconfig.Default(), &errs)
	if !ok {
		t.Fatalf("expected valid manifest, errs=%+v", errs)
	}
	if len(m.Extra) != 1 || m.Extra[0] != "data.txt" {
		t.Errorf("Extra = %v", m.Extra)
	}
	if len(m.Shell) != 1 || m.Shell[0] != "try.sh" {
		t.Errorf("Shell = %v", m.Shell)
	}
}

func TestLoadManifestMissingAuthJSON(t *testing.T) {
	n := mustNode(t, `[
		{"info_JSON":".info.json"},
		{"c_src":"prog.c"},
		{"Makefile":"Makefile"},
		{"remarks":"remarks.md"}
	]`)
	var errs []jsonnode.ValidationError
	_, ok := LoadManifest(n, policyconfig.Default(), &errs)
	if ok {
		t.Fatal("expected failure for missing auth_JSON")
	}
	found := false
	for _, e := range errs {
		if e.Diagnostic == "manifest: expected 1 valid auth_JSON, found: 0" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected exact auth_JSON diagnostic, got %+v", errs)
	}
}

func TestLoadManifestRejectsExtraMatchingMandatory(t *testing.T) {
	n := mustNode(t, manifestJSON(`,{"extra_file":"Makefile"}`, ``))
	var errs []jsonnode.ValidationError
	_, ok := LoadManifest(n, policyconfig.Default(), &errs)
	if ok {
		t.Fatal("expected failure when extra_file matches a mandatory filename")
	}
}

func TestLoadManifestRejectsExtraEndingInSh(t *testing.T) {
	n := mustNode(t, manifestJSON(`,{"extra_file":"helper.sh"}`, ``))
	var errs []jsonnode.ValidationError
	_, ok := LoadManifest(n, policyconfig.Default(), &errs)
	if ok {
		t.Fatal("expected failure when extra_file ends in .sh")
	}
}

func TestLoadManifestRejectsUnsafeExtraFilename(t *testing.T) {
	n := mustNode(t, manifestJSON(`,{"extra_file":"my file.txt"}`, ``))
	var errs []jsonnode.ValidationError
	_, ok := LoadManifest(n, policyconfig.Default(), &errs)
	if ok {
		t.Fatal("expected failure when extra_file contains a space")
	}
	found := false
	for _, e := range errs {
		if strings.Contains(e.Diagnostic, "safe-path check") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a safe-path diagnostic, got %+v", errs)
	}
}

func TestLoadManifestRejectsDuplicateAcrossLists(t *testing.T) {
	n := mustNode(t, manifestJSON(`,{"extra_file":"shared.dat"}`, `,{"shell_script":"shared.dat"}`))
	var errs []jsonnode.ValidationError
	_, ok := LoadManifest(n, policyconfig.Default(), &errs)
	if ok {
		t.Fatal("expected failure for a name duplicated across extra and shell")
	}
}

func TestLoadManifestEnforcesMaxExtraFileCount(t *testing.T) {
	policy := policyconfig.Default()
	policy.MaxExtraFileCount = 1
	n := mustNode(t, manifestJSON(`,{"extra_file":"a.dat"},{"extra_file":"b.dat"}`, ``))
	var errs []jsonnode.ValidationError
	_, ok := LoadManifest(n, policy, &errs)
	if ok {
		t.Fatal("expected failure when extra+shell exceeds the policy cap")
	}
}
