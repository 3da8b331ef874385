package domain

import (
	"testing"
	"time"
)

func TestIsContestUUID(t *testing.T) {
	cases := map[string]bool{
		"test": true,
		"TEST": true,
		"12345678-1234-4abc-8abc-123456789012": true,
		"12345678-1234-4ABC-9ABC-123456789012": true,
		"12345678-1234-3abc-8abc-123456789012": false, // wrong version nibble
		"12345678-1234-4abc-cabc-123456789012": false, // wrong variant nibble
		"not-a-uuid": false,
	}
	for in, want := range cases {
		if got := IsContestUUID(in); got != want {
			t.Errorf("IsContestUUID(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	cases := map[string]bool{
		"":                true,
		"a@b.com":         true,
		"@b.com":          false,
		"a@":              false,
		"a@b@c":           false,
		"noat":            false,
	}
	for in, want := range cases {
		if got := IsValidEmail(in, 254); got != want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", in, got, want)
		}
	}
	if IsValidEmail("a@bbbbbbbbbb.com", 5) {
		t.Error("expected length cap to reject long email")
	}
}

func TestIsValidURL(t *testing.T) {
	cases := map[string]bool{
		"":                     true,
		"https://example.com":  true,
		"http://x":             true,
		"ftp://example.com":    false,
		"https://":             false,
		"https:///slash-first": false,
	}
	for in, want := range cases {
		if got := IsValidURL(in); got != want {
			t.Errorf("IsValidURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsValidMastodonHandle(t *testing.T) {
	cases := map[string]bool{
		"":                true,
		"@user@instance":  true,
		"user@instance":   false, // missing leading @
		"@user@@instance": false, // adjacent @@
		"@user@instance@": false, // trailing @
		"@user":           false, // only one @
	}
	for in, want := range cases {
		if got := IsValidMastodonHandle(in, 64); got != want {
			t.Errorf("IsValidMastodonHandle(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsValidGitHubHandle(t *testing.T) {
	cases := map[string]bool{
		"":           true,
		"@octocat":   true,
		"octocat":    false,
		"@oct@ocat":  false,
	}
	for in, want := range cases {
		if got := IsValidGitHubHandle(in, 64); got != want {
			t.Errorf("IsValidGitHubHandle(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsValidLocationCode(t *testing.T) {
	cases := map[string]bool{
		"US": true,
		"GB": true,
		"XX": false,
		"us": false,
		"USA": false,
	}
	for in, want := range cases {
		if got := IsValidLocationCode(in); got != want {
			t.Errorf("IsValidLocationCode(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsValidAuthorHandle(t *testing.T) {
	if !IsValidAuthorHandle("a.b_c-d", 32) {
		t.Error("expected a.b_c-d to be valid")
	}
	if IsValidAuthorHandle("-leadingdash", 32) {
		t.Error("expected leading dash to be invalid")
	}
	if IsValidAuthorHandle("has space", 32) {
		t.Error("expected space to be invalid")
	}
	if IsValidAuthorHandle("toolong", 3) {
		t.Error("expected length cap to reject")
	}
}

func TestIsValidAuthorNumberAndSubmitSlot(t *testing.T) {
	if !IsValidAuthorNumber(0, 5) || IsValidAuthorNumber(5, 5) || IsValidAuthorNumber(-1, 5) {
		t.Error("author number bounds check failed")
	}
	if !IsValidSubmitSlot(9, 9) || IsValidSubmitSlot(10, 9) || IsValidSubmitSlot(-1, 9) {
		t.Error("submit slot bounds check failed")
	}
}

func TestIsValidFormedTimestamp(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	min := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	skew := time.Hour

	if !IsValidFormedTimestamp(now.Unix(), min, now, skew) {
		t.Error("expected current timestamp to be valid")
	}
	if IsValidFormedTimestamp(min-1, min, now, skew) {
		t.Error("expected timestamp before minimum to be invalid")
	}
	if IsValidFormedTimestamp(now.Add(2*time.Hour).Unix(), min, now, skew) {
		t.Error("expected timestamp beyond future skew to be invalid")
	}
}

func TestIsValidVersion(t *testing.T) {
	if !IsValidVersion("2.1.0", "2.0.0", nil) {
		t.Error("expected 2.1.0 >= 2.0.0 to pass")
	}
	if IsValidVersion("1.9.0", "2.0.0", nil) {
		t.Error("expected 1.9.0 < 2.0.0 to fail")
	}
	if IsValidVersion("2.5.0", "2.0.0", []string{"2.5.0"}) {
		t.Error("expected poisoned version to fail")
	}
}

func TestTarballFilename(t *testing.T) {
	got := TarballFilename("TEST", 3, 1700000000)
	want := "submit.test-3.1700000000.txz"
	if got != want {
		t.Errorf("TarballFilename = %q, want %q", got, want)
	}
	if !IsValidTarballFilename(want, "test", 3, 1700000000) {
		t.Error("expected derivation to validate its own output")
	}
}

func TestFilenameClassifiers(t *testing.T) {
	if !IsMandatoryFilename(".INFO.JSON") {
		t.Error("expected case-insensitive mandatory filename match")
	}
	if !IsExecutableFilename("TRY.SH") {
		t.Error("expected case-insensitive executable filename match")
	}
	if !IsExecutableFilename("custom.sh") {
		t.Error("expected .sh suffix to count as executable")
	}
	if IsExecutableFilename("custom.SH") {
		t.Error("expected .sh suffix check to be case-sensitive")
	}
}
