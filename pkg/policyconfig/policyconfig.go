// Package policyconfig loads the numeric and list-valued policy knobs that
// the domain layer enforces but the data model does not itself fix: author
// and file-count caps, timestamp windows, and the minimum accepted tool
// version together with its poison list.
//
// Defaults are a Go literal returned by Default, which MarshalDefaultTOML
// renders as a TOML document with go-toml/v2; Load lets viper merge a policy
// file and environment overrides on top of those defaults.
package policyconfig

import (
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Policy collects every contest-wide constant the domain validators need.
// Field names mirror the C constants they replace so the grounding in
// original_source/soup/entry_util.c stays legible.
type Policy struct {
	MaxAuthors          int      `toml:"max_authors" mapstructure:"max_authors"`
	MaxSubmitSlot       int      `toml:"max_submit_slot" mapstructure:"max_submit_slot"`
	MaxExtraFileCount   int      `toml:"max_extra_file_count" mapstructure:"max_extra_file_count"`
	MinTimestamp        int64    `toml:"min_timestamp" mapstructure:"min_timestamp"`
	FutureClockSkewSecs int64    `toml:"future_clock_skew_seconds" mapstructure:"future_clock_skew_seconds"`
	MaxEmailLen         int      `toml:"max_email_len" mapstructure:"max_email_len"`
	MaxHandleLen        int      `toml:"max_handle_len" mapstructure:"max_handle_len"`
	MinToolVersion       string   `toml:"min_tool_version" mapstructure:"min_tool_version"`
	PoisonedVersions     []string `toml:"poisoned_versions" mapstructure:"poisoned_versions"`
}

// Default returns the built-in policy. The numeric caps are not specified by
// the contest's published rules text available to this tool; they are this
// package's own reasonable operating limits and are documented as such in
// the project's design notes rather than claimed as contest-official values.
func Default() Policy {
	return Policy{
		MaxAuthors:          5,
		MaxSubmitSlot:       9,
		MaxExtraFileCount:   32,
		MinTimestamp:        1262304000, // 2010-01-01T00:00:00Z
		FutureClockSkewSecs: 86400,
		MaxEmailLen:         254,
		MaxHandleLen:        32,
		MinToolVersion:      "1.0.0",
		PoisonedVersions:    nil,
	}
}

// FutureClockSkew is the configured skew as a time.Duration.
func (p Policy) FutureClockSkew() time.Duration {
	return time.Duration(p.FutureClockSkewSecs) * time.Second
}

// MarshalDefaultTOML renders Default() as a TOML document. Load does not
// read this document; it takes its defaults from Default() directly.
func MarshalDefaultTOML() ([]byte, error) {
	return toml.Marshal(Default())
}

// Load reads policy from path (TOML, YAML, or JSON — detected by extension)
// via viper, falling back to Default() for any key the file omits and
// honoring SUBMITCHECK_-prefixed environment overrides (e.g.
// SUBMITCHECK_MAX_AUTHORS).
func Load(path string) (Policy, error) {
	v := viper.New()
	v.SetEnvPrefix("SUBMITCHECK")
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("max_authors", def.MaxAuthors)
	v.SetDefault("max_submit_slot", def.MaxSubmitSlot)
	v.SetDefault("max_extra_file_count", def.MaxExtraFileCount)
	v.SetDefault("min_timestamp", def.MinTimestamp)
	v.SetDefault("future_clock_skew_seconds", def.FutureClockSkewSecs)
	v.SetDefault("max_email_len", def.MaxEmailLen)
	v.SetDefault("max_handle_len", def.MaxHandleLen)
	v.SetDefault("min_tool_version", def.MinToolVersion)
	v.SetDefault("poisoned_versions", def.PoisonedVersions)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Policy{}, fmt.Errorf("policyconfig: reading %s: %w", path, err)
		}
	}

	var p Policy
	if err := v.Unmarshal(&p); err != nil {
		return Policy{}, fmt.Errorf("policyconfig: decoding: %w", err)
	}
	return p, nil
}
