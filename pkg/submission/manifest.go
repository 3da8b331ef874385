package submission

import (
	"fmt"
	"strings"

	"github.com/ioccc-src/submitcheck/pkg/canonpath"
	"github.com/ioccc-src/submitcheck/pkg/domain"
	"github.com/ioccc-src/submitcheck/pkg/jsonnode"
	"github.com/ioccc-src/submitcheck/pkg/policyconfig"
)

// Manifest is the materialized form of the "manifest" array from .info.json:
// the five mandatory slots (each required exactly once), the three
// optional-unique slots, and the accumulated extra/shell file lists.
type Manifest struct {
	InfoJSON string
	AuthJSON string
	CSrc     string
	Makefile string
	Remarks  string

	CAltSrc  string
	HasCAltSrc bool
	TrySh      string
	HasTrySh   bool
	TryAltSh   string
	HasTryAltSh bool

	Extra []string
	Shell []string
}

var manifestSlotKeys = map[string]bool{
	"info_JSON": true, "auth_JSON": true, "c_src": true, "Makefile": true,
	"remarks": true, "c_alt_src": true, "try_sh": true, "try_alt_sh": true,
	"extra_file": true, "shell_script": true,
}

// LoadManifest validates arr (an Array node of single-member Objects)
// against the manifest slot rules and materializes a Manifest.
func LoadManifest(arr *jsonnode.Node, policy policyconfig.Policy, errs *[]jsonnode.ValidationError) (*Manifest, bool) {
	if err := jsonnode.NodeValidConverted(arr, errs); err != nil || arr.Kind != jsonnode.Array {
		return nil, false
	}

	m := &Manifest{}
	ok := true
	countInfoJSON, countAuthJSON, countCSrc, countMakefile, countRemarks := 0, 0, 0, 0, 0

	for i, elem := range arr.Elements {
		if err := jsonnode.NodeValidConverted(elem, errs); err != nil || elem.Kind != jsonnode.Object {
			ok = false
			continue
		}
		if len(elem.Members) != 1 {
			appendErr(errs, elem, fmt.Sprintf("manifest[%d]: expected exactly one member, found %d", i, len(elem.Members)))
			ok = false
			continue
		}
		member := elem.Members[0]
		key, kok := jsonnode.MemberNameStr(member, errs)
		if !kok {
			ok = false
			continue
		}
		if !manifestSlotKeys[key] {
			appendErr(errs, member, fmt.Sprintf("manifest[%d]: unknown slot key %q", i, key))
			ok = false
			continue
		}
		value, vok := jsonnode.MemberValueStr(member, errs)
		if !vok {
			ok = false
			continue
		}

		switch key {
		case "info_JSON":
			countInfoJSON++
			if !domain.MatchesInfoJSON(value) {
				appendErr(errs, member, fmt.Sprintf("manifest: info_JSON filename is invalid: %q", value))
				ok = false
			} else if countInfoJSON == 1 {
				m.InfoJSON = value
			}
		case "auth_JSON":
			countAuthJSON++
			if !domain.MatchesAuthJSON(value) {
				appendErr(errs, member, fmt.Sprintf("manifest: auth_JSON filename is invalid: %q", value))
				ok = false
			} else if countAuthJSON == 1 {
				m.AuthJSON = value
			}
		case "c_src":
			countCSrc++
			if !domain.MatchesCSrc(value) {
				appendErr(errs, member, fmt.Sprintf("manifest: c_src filename is invalid: %q", value))
				ok = false
			} else if countCSrc == 1 {
				m.CSrc = value
			}
		case "Makefile":
			countMakefile++
			if !domain.MatchesMakefile(value) {
				appendErr(errs, member, fmt.Sprintf("manifest: Makefile filename is invalid: %q", value))
				ok = false
			} else if countMakefile == 1 {
				m.Makefile = value
			}
		case "remarks":
			countRemarks++
			if !domain.MatchesRemarks(value) {
				appendErr(errs, member, fmt.Sprintf("manifest: remarks filename is invalid: %q", value))
				ok = false
			} else if countRemarks == 1 {
				m.Remarks = value
			}
		case "c_alt_src":
			if m.HasCAltSrc {
				appendErr(errs, member, "manifest: found more than one c_alt_src filename")
				ok = false
				continue
			}
			if !domain.MatchesCAltSrc(value) {
				appendErr(errs, member, fmt.Sprintf("manifest: c_alt_src filename is invalid: %q", value))
				ok = false
				continue
			}
			m.CAltSrc, m.HasCAltSrc = value, true
		case "try_sh":
			if m.HasTrySh {
				appendErr(errs, member, "manifest: found more than one try_sh filename")
				ok = false
				continue
			}
			if !domain.MatchesTrySh(value) {
				appendErr(errs, member, fmt.Sprintf("manifest: try_sh filename is invalid: %q", value))
				ok = false
				continue
			}
			m.TrySh, m.HasTrySh = value, true
		case "try_alt_sh":
			if m.HasTryAltSh {
				appendErr(errs, member, "manifest: found more than one try_alt_sh filename")
				ok = false
				continue
			}
			if !domain.MatchesTryAltSh(value) {
				appendErr(errs, member, fmt.Sprintf("manifest: try_alt_sh filename is invalid: %q", value))
				ok = false
				continue
			}
			m.TryAltSh, m.HasTryAltSh = value, true
		case "extra_file":
			m.Extra = append(m.Extra, value)
		case "shell_script":
			m.Shell = append(m.Shell, value)
		}
	}

	if countInfoJSON != 1 {
		appendErr(errs, arr, fmt.Sprintf("manifest: expected 1 valid info_JSON, found: %d", countInfoJSON))
		ok = false
	}
	if countAuthJSON != 1 {
		appendErr(errs, arr, fmt.Sprintf("manifest: expected 1 valid auth_JSON, found: %d", countAuthJSON))
		ok = false
	}
	if countCSrc != 1 {
		appendErr(errs, arr, fmt.Sprintf("manifest: expected 1 valid c_src, found: %d", countCSrc))
		ok = false
	}
	if countMakefile != 1 {
		appendErr(errs, arr, fmt.Sprintf("manifest: expected 1 valid Makefile, found: %d", countMakefile))
		ok = false
	}
	if countRemarks != 1 {
		appendErr(errs, arr, fmt.Sprintf("manifest: expected 1 valid remarks, found: %d", countRemarks))
		ok = false
	}

	if !validateAccumulatedNames(m, policy, errs) {
		ok = false
	}

	if !ok {
		return nil, false
	}
	return m, true
}

// validateAccumulatedNames applies the per-filename rules to every extra and
// shell entry: safe-path, not-mandatory, not-executable (for extra)/
// executable (for shell), and no duplicates within or across the two lists.
func validateAccumulatedNames(m *Manifest, policy policyconfig.Policy, errs *[]jsonnode.ValidationError) bool {
	ok := true
	seen := map[string]string{} // filename -> which list it was first seen in

	checkOne := func(list, name string) {
		safe := canonpath.Canonicalize(&name, canonpath.Policy{SafeChk: true, AnyCase: false})
		if safe.Sanity != canonpath.OK {
			appendErr(errs, nil, fmt.Sprintf("manifest: %s entry %q fails the safe-path check: %s", list, name, safe.Sanity))
			ok = false
			return
		}
		if domain.IsMandatoryFilename(name) {
			appendErr(errs, nil, fmt.Sprintf("manifest: %s entry %q matches a mandatory filename", list, name))
			ok = false
			return
		}
		isExec := domain.IsExecutableFilename(name)
		if list == "extra" && isExec {
			appendErr(errs, nil, fmt.Sprintf("manifest: extra_file %q matches an executable filename", name))
			ok = false
			return
		}
		if list == "shell" && !isExec {
			appendErr(errs, nil, fmt.Sprintf("manifest: shell_script %q is not an executable filename", name))
			ok = false
			return
		}
		if list == "extra" && strings.HasSuffix(name, ".sh") {
			appendErr(errs, nil, fmt.Sprintf("manifest: extra_file %q must not end in .sh", name))
			ok = false
			return
		}
		if prior, dup := seen[name]; dup {
			appendErr(errs, nil, fmt.Sprintf("manifest: %q is a duplicate (first seen in %s)", name, prior))
			ok = false
			return
		}
		seen[name] = list
	}

	for _, name := range m.Extra {
		checkOne("extra", name)
	}
	for _, name := range m.Shell {
		checkOne("shell", name)
	}

	if policy.MaxExtraFileCount > 0 && len(m.Extra)+len(m.Shell) > policy.MaxExtraFileCount {
		appendErr(errs, nil, fmt.Sprintf("manifest: |extra|+|shell| = %d exceeds maximum %d", len(m.Extra)+len(m.Shell), policy.MaxExtraFileCount))
		ok = false
	}

	return ok
}
