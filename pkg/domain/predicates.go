// Package domain implements the pure validation predicates applied to
// decoded IOCCC submission metadata: contest identifiers, contact fields,
// handles, timestamps, counts, filenames, and tool versions. Every function
// here has no shared state, and all except TarballFilename (which derives a
// string) are boolean predicates, grounded in soup/entry_util.c's test_* family in the original source tree
// this tool's behavior was distilled from.
package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ioccc-src/submitcheck/pkg/versioning"
)

var contestUUIDPattern = regexp.MustCompile(
	`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`,
)

// IsContestUUID reports whether s is the literal "test" or a 36-character
// UUID whose version nibble is 4 and whose variant nibble is one of
// 8/9/a/b, case-folded to lowercase before the check.
func IsContestUUID(s string) bool {
	folded := strings.ToLower(s)
	if folded == "test" {
		return true
	}
	return contestUUIDPattern.MatchString(folded)
}

// IsValidEmail reports whether s is acceptable as an (optionally withheld)
// email field: empty is allowed, otherwise s must be no longer than maxLen,
// contain exactly one '@', and that '@' must be neither the first nor the
// last character.
func IsValidEmail(s string, maxLen int) bool {
	if s == "" {
		return true
	}
	if maxLen > 0 && len(s) > maxLen {
		return false
	}
	at := strings.Count(s, "@")
	if at != 1 {
		return false
	}
	idx := strings.IndexByte(s, '@')
	return idx != 0 && idx != len(s)-1
}

// IsValidURL reports whether s starts with "http://" or "https://" followed
// by at least one character other than '/'. Empty is allowed (withheld).
func IsValidURL(s string) bool {
	if s == "" {
		return true
	}
	var rest string
	switch {
	case strings.HasPrefix(s, "https://"):
		rest = s[len("https://"):]
	case strings.HasPrefix(s, "http://"):
		rest = s[len("http://"):]
	default:
		return false
	}
	return len(rest) > 0 && rest[0] != '/'
}

// IsValidMastodonHandle reports whether s has exactly two '@' characters,
// starts with '@', has no adjacent "@@", does not end in '@', and is no
// longer than maxLen. Empty is allowed (withheld).
func IsValidMastodonHandle(s string, maxLen int) bool {
	if s == "" {
		return true
	}
	if maxLen > 0 && len(s) > maxLen {
		return false
	}
	if strings.Count(s, "@") != 2 {
		return false
	}
	if !strings.HasPrefix(s, "@") {
		return false
	}
	if strings.Contains(s, "@@") {
		return false
	}
	if strings.HasSuffix(s, "@") {
		return false
	}
	return true
}

// IsValidGitHubHandle reports whether s starts with '@', contains exactly
// one '@', and is no longer than maxLen. Empty is allowed (withheld).
func IsValidGitHubHandle(s string, maxLen int) bool {
	if s == "" {
		return true
	}
	if maxLen > 0 && len(s) > maxLen {
		return false
	}
	if !strings.HasPrefix(s, "@") {
		return false
	}
	return strings.Count(s, "@") == 1
}

// IsValidLocationCode reports whether s is exactly two ASCII uppercase
// letters that resolve in the ISO-3166-1 alpha-2 table.
func IsValidLocationCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	if s[0] < 'A' || s[0] > 'Z' || s[1] < 'A' || s[1] > 'Z' {
		return false
	}
	return iso3166Alpha2[s]
}

var authorHandlePattern = regexp.MustCompile(`^[0-9A-Za-z._][0-9A-Za-z._+-]*$`)

// IsValidAuthorHandle reports whether s starts with an ASCII alphanumeric,
// dot, or underscore, matches the POSIX-safe component charset throughout,
// and is no longer than maxLen.
func IsValidAuthorHandle(s string, maxLen int) bool {
	if s == "" {
		return false
	}
	if maxLen > 0 && len(s) > maxLen {
		return false
	}
	return authorHandlePattern.MatchString(s)
}

// IsValidAuthorNumber reports whether 0 <= n < maxAuthors.
func IsValidAuthorNumber(n, maxAuthors int) bool {
	return n >= 0 && n < maxAuthors
}

// IsValidSubmitSlot reports whether 0 <= n <= maxSubmitSlot.
func IsValidSubmitSlot(n, maxSubmitSlot int) bool {
	return n >= 0 && n <= maxSubmitSlot
}

// IsValidFormedTimestamp reports whether minTimestamp <= t <= now+futureSkew.
func IsValidFormedTimestamp(t, minTimestamp int64, now time.Time, futureSkew time.Duration) bool {
	if t < minTimestamp {
		return false
	}
	limit := now.Add(futureSkew).Unix()
	return t <= limit
}

// IsValidVersion reports whether actual is not present (case-insensitive)
// in poison and, when minimum is non-empty, parses as a version tuple
// greater than or equal to minimum. An empty minimum passes without
// parsing actual.
func IsValidVersion(actual, minimum string, poison []string) bool {
	ok, err := versioning.MeetsMinimum(actual, minimum, poison)
	return err == nil && ok
}

// TarballFilename derives the canonical submission tarball name:
// submit.{id}-{slot}.{epochSeconds}.txz, where id is either "test" or a
// contest UUID.
func TarballFilename(id string, slot int, epochSeconds int64) string {
	return fmt.Sprintf("submit.%s-%d.%d.txz", strings.ToLower(id), slot, epochSeconds)
}

// IsValidTarballFilename reports whether name is exactly the tarball
// filename TarballFilename would derive for the given fields.
func IsValidTarballFilename(name, id string, slot int, epochSeconds int64) bool {
	return name == TarballFilename(id, slot, epochSeconds)
}
