package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// filenameFold is used instead of strings.EqualFold for the mandatory and
// executable filename comparisons: entry_util.c's case-insensitive filename
// match is byte-oriented C, but this tool accepts UTF-8 manifest values, and
// cases.Fold compares correctly under full Unicode case folding rather than
// ASCII-only folding.
var filenameFold = cases.Fold()

func equalFoldUnicode(a, b string) bool {
	return filenameFold.String(a) == filenameFold.String(b)
}

// The five filenames every submission's manifest must declare exactly once.
const (
	InfoJSONFilename = ".info.json"
	AuthJSONFilename = ".auth.json"
	CSrcFilename     = "prog.c"
	MakefileFilename = "Makefile"
	RemarksFilename  = "remarks.md"
)

// The three optional-unique filenames: at most one of each per manifest.
const (
	CAltSrcFilename  = "prog.alt.c"
	TrySh            = "try.sh"
	TryAltSh         = "try.alt.sh"
)

var mandatoryFilenames = []string{
	InfoJSONFilename, AuthJSONFilename, CSrcFilename, MakefileFilename, RemarksFilename,
}

// executableSuffixFilenames lists the fixed executable-named files; any
// filename additionally counts as executable-named when it ends in ".sh"
// (checked case-sensitively, per IsExecutableFilename).
var executableSuffixFilenames = []string{TrySh, TryAltSh}

// IsMandatoryFilename reports whether name matches one of the five
// mandatory manifest filenames, compared case-insensitively.
func IsMandatoryFilename(name string) bool {
	for _, m := range mandatoryFilenames {
		if equalFoldUnicode(name, m) {
			return true
		}
	}
	return false
}

// IsExecutableFilename reports whether name matches one of the fixed
// executable filenames (case-insensitive) or ends in ".sh" (case-sensitive).
func IsExecutableFilename(name string) bool {
	for _, e := range executableSuffixFilenames {
		if equalFoldUnicode(name, e) {
			return true
		}
	}
	return strings.HasSuffix(name, ".sh")
}

// MatchesCSrc reports whether name is exactly the mandatory c_src filename.
func MatchesCSrc(name string) bool { return name == CSrcFilename }

// MatchesCAltSrc reports whether name is exactly the optional c_alt_src
// filename.
func MatchesCAltSrc(name string) bool { return name == CAltSrcFilename }

// MatchesTrySh reports whether name is exactly the optional try_sh filename.
func MatchesTrySh(name string) bool { return name == TrySh }

// MatchesTryAltSh reports whether name is exactly the optional try_alt_sh
// filename.
func MatchesTryAltSh(name string) bool { return name == TryAltSh }

// MatchesMakefile reports whether name is exactly the mandatory Makefile
// filename.
func MatchesMakefile(name string) bool { return name == MakefileFilename }

// MatchesRemarks reports whether name is exactly the mandatory remarks
// filename.
func MatchesRemarks(name string) bool { return name == RemarksFilename }

// MatchesInfoJSON reports whether name is exactly the mandatory info_JSON
// filename.
func MatchesInfoJSON(name string) bool { return name == InfoJSONFilename }

// MatchesAuthJSON reports whether name is exactly the mandatory auth_JSON
// filename.
func MatchesAuthJSON(name string) bool { return name == AuthJSONFilename }
