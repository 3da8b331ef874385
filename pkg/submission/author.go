// Package submission loads validated domain records — authors and
// manifests — out of decoded JSON object/array nodes, and checks
// cross-field uniqueness across a loaded author list.
package submission

import (
	"fmt"

	"github.com/ioccc-src/submitcheck/pkg/domain"
	"github.com/ioccc-src/submitcheck/pkg/jsonnode"
	"github.com/ioccc-src/submitcheck/pkg/policyconfig"
)

// Author is the materialized form of an author object from .auth.json.
// Contact fields that were supplied as JSON null are stored as the empty
// string with the paired Withheld flag set.
type Author struct {
	Name                string
	LocationCode        string
	Email               string
	EmailWithheld       bool
	URL                 string
	URLWithheld         bool
	AltURL              string
	AltURLWithheld      bool
	Mastodon            string
	MastodonWithheld    bool
	GitHub              string
	GitHubWithheld      bool
	Affiliation         string
	AffiliationWithheld bool
	PastWinningAuthor   bool
	DefaultHandle       bool
	AuthorHandle        string
	AuthorNumber        int
}

var authorRequiredKeys = []string{
	"name", "location_code", "email", "url", "alt_url", "mastodon", "github",
	"affiliation", "past_winning_author", "default_handle", "author_handle",
	"author_number",
}

var authorNullableKeys = map[string]bool{
	"email": true, "url": true, "alt_url": true, "mastodon": true,
	"github": true, "affiliation": true,
}

// LoadAuthor validates obj (an Object node) against the closed author key
// set and materializes an Author. It reports false when a structural or
// predicate error occurred; every error is appended to errs.
func LoadAuthor(obj *jsonnode.Node, policy policyconfig.Policy, errs *[]jsonnode.ValidationError) (*Author, bool) {
	if err := jsonnode.NodeValidConverted(obj, errs); err != nil || obj.Kind != jsonnode.Object {
		return nil, false
	}

	seen := make(map[string]bool, len(authorRequiredKeys))
	required := make(map[string]bool, len(authorRequiredKeys))
	for _, k := range authorRequiredKeys {
		required[k] = true
	}

	a := &Author{}
	ok := true

	for _, member := range obj.Members {
		name, mok := jsonnode.MemberNameStr(member, errs)
		if !mok {
			ok = false
			continue
		}
		if !required[name] {
			appendErr(errs, member, fmt.Sprintf("author: unknown key %q", name))
			ok = false
			continue
		}
		if seen[name] {
			appendErr(errs, member, fmt.Sprintf("author: duplicate key %q", name))
			ok = false
			continue
		}
		seen[name] = true

		if !loadAuthorField(a, name, member, policy, errs) {
			ok = false
		}
	}

	for _, k := range authorRequiredKeys {
		if !seen[k] {
			appendErr(errs, obj, fmt.Sprintf("author: missing required key %q", k))
			ok = false
		}
	}

	if !ok {
		return nil, false
	}
	return a, true
}

func loadAuthorField(a *Author, name string, member *jsonnode.Node, policy policyconfig.Policy, errs *[]jsonnode.ValidationError) bool {
	if authorNullableKeys[name] {
		value, isNull, vok := jsonnode.MemberValueStrOrNull(member, errs)
		if !vok {
			return false
		}
		return assignNullableField(a, name, value, isNull, policy, errs, member)
	}

	switch name {
	case "name":
		s, ok := jsonnode.MemberValueStr(member, errs)
		if !ok || s == "" {
			appendErr(errs, member, "author: name must be a non-empty string")
			return false
		}
		a.Name = s
		return true
	case "location_code":
		s, ok := jsonnode.MemberValueStr(member, errs)
		if !ok || !domain.IsValidLocationCode(s) {
			appendErr(errs, member, fmt.Sprintf("author: invalid location_code %q", s))
			return false
		}
		a.LocationCode = s
		return true
	case "past_winning_author":
		b, ok := jsonnode.MemberValueBool(member, errs)
		if !ok {
			return false
		}
		a.PastWinningAuthor = b
		return true
	case "default_handle":
		b, ok := jsonnode.MemberValueBool(member, errs)
		if !ok {
			return false
		}
		a.DefaultHandle = b
		return true
	case "author_handle":
		s, ok := jsonnode.MemberValueStr(member, errs)
		if !ok || !domain.IsValidAuthorHandle(s, policy.MaxHandleLen) {
			appendErr(errs, member, fmt.Sprintf("author: invalid author_handle %q", s))
			return false
		}
		a.AuthorHandle = s
		return true
	case "author_number":
		n, ok := jsonnode.MemberValueInt(member, errs)
		if !ok || !domain.IsValidAuthorNumber(int(n), policy.MaxAuthors) {
			appendErr(errs, member, fmt.Sprintf("author: invalid author_number %d", n))
			return false
		}
		a.AuthorNumber = int(n)
		return true
	default:
		appendErr(errs, member, fmt.Sprintf("author: unhandled key %q", name))
		return false
	}
}

func assignNullableField(a *Author, name, value string, isNull bool, policy policyconfig.Policy, errs *[]jsonnode.ValidationError, member *jsonnode.Node) bool {
	switch name {
	case "email":
		if !isNull && !domain.IsValidEmail(value, policy.MaxEmailLen) {
			appendErr(errs, member, fmt.Sprintf("author: invalid email %q", value))
			return false
		}
		a.Email, a.EmailWithheld = withheldOr(value, isNull)
	case "url":
		if !isNull && !domain.IsValidURL(value) {
			appendErr(errs, member, fmt.Sprintf("author: invalid url %q", value))
			return false
		}
		a.URL, a.URLWithheld = withheldOr(value, isNull)
	case "alt_url":
		if !isNull && !domain.IsValidURL(value) {
			appendErr(errs, member, fmt.Sprintf("author: invalid alt_url %q", value))
			return false
		}
		a.AltURL, a.AltURLWithheld = withheldOr(value, isNull)
	case "mastodon":
		if !isNull && !domain.IsValidMastodonHandle(value, policy.MaxHandleLen) {
			appendErr(errs, member, fmt.Sprintf("author: invalid mastodon handle %q", value))
			return false
		}
		a.Mastodon, a.MastodonWithheld = withheldOr(value, isNull)
	case "github":
		if !isNull && !domain.IsValidGitHubHandle(value, policy.MaxHandleLen) {
			appendErr(errs, member, fmt.Sprintf("author: invalid github handle %q", value))
			return false
		}
		a.GitHub, a.GitHubWithheld = withheldOr(value, isNull)
	case "affiliation":
		a.Affiliation, a.AffiliationWithheld = withheldOr(value, isNull)
	}
	return true
}

func withheldOr(value string, isNull bool) (string, bool) {
	if isNull {
		return "", true
	}
	return value, false
}

func appendErr(errs *[]jsonnode.ValidationError, n *jsonnode.Node, diagnostic string) {
	if errs == nil {
		return
	}
	depth := -1
	if n != nil {
		depth = n.Depth
	}
	*errs = append(*errs, jsonnode.ValidationError{Node: n, Depth: depth, SemIndex: -1, Diagnostic: diagnostic})
}

// ValidateAuthorList checks cross-field uniqueness across a loaded author
// list: every author_num must lie in [0, len(authors)), and author_num,
// name, and author_handle must each be distinct.
func ValidateAuthorList(authors []*Author) []jsonnode.ValidationError {
	var errs []jsonnode.ValidationError

	numSeen := map[int]int{}
	nameSeen := map[string]int{}
	handleSeen := map[string]int{}

	for i, a := range authors {
		if a.AuthorNumber < 0 || a.AuthorNumber >= len(authors) {
			appendErr(&errs, nil, fmt.Sprintf("author[%d]: author_number %d out of range [0, %d)", i, a.AuthorNumber, len(authors)))
		}
		if j, dup := numSeen[a.AuthorNumber]; dup {
			appendErr(&errs, nil, fmt.Sprintf("author[%d]: duplicate author_number %d (first seen at author[%d])", i, a.AuthorNumber, j))
		} else {
			numSeen[a.AuthorNumber] = i
		}
		if j, dup := nameSeen[a.Name]; dup {
			appendErr(&errs, nil, fmt.Sprintf("author[%d]: duplicate name %q (first seen at author[%d])", i, a.Name, j))
		} else {
			nameSeen[a.Name] = i
		}
		if j, dup := handleSeen[a.AuthorHandle]; dup {
			appendErr(&errs, nil, fmt.Sprintf("author[%d]: duplicate author_handle %q (first seen at author[%d])", i, a.AuthorHandle, j))
		} else {
			handleSeen[a.AuthorHandle] = i
		}
	}

	return errs
}
