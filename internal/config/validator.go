package config

import (
	"path/filepath"
	"strings"

	"prefixsub/internal/splitter"
)

// ConfigWarning describes a setting that is valid but likely not what the user meant.
type ConfigWarning struct {
	Field   string // Flag the warning is about, e.g. "--split-on"
	Message string // Human-readable description
}

// Warnings inspects a resolved configuration and returns every finding.
// None of them stop the run.
func Warnings(c RunConfig) []ConfigWarning {
	var warnings []ConfigWarning

	if strings.ContainsAny(c.SplitOn, `/\`) {
		warnings = append(warnings, ConfigWarning{
			Field:   "--split-on",
			Message: "delimiter contains a path separator and can never match a filename",
		})
	}

	if strings.TrimSpace(c.SplitOn) == "" && c.SplitOn != "" {
		warnings = append(warnings, ConfigWarning{
			Field:   "--split-on",
			Message: "delimiter is whitespace only; every name containing it will be grouped",
		})
	}

	if c.LogFile != "" && logFileInTarget(c) {
		warnings = append(warnings, ConfigWarning{
			Field:   "--logfile",
			Message: "logfile lives in the target directory and may be moved with its prefix group",
		})
	}

	return warnings
}

// logFileInTarget reports whether the logfile sits directly in the scanned
// directory under a name that splits into a prefix.
func logFileInTarget(c RunConfig) bool {
	logDir, err := filepath.Abs(filepath.Dir(c.LogFile))
	if err != nil {
		return false
	}
	target, err := filepath.Abs(c.Path)
	if err != nil {
		return false
	}
	return logDir == target && splitter.HasPrefix(c.LogFile, c.SplitOn)
}
