// Package config resolves the run configuration for prefixsub.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"prefixsub/internal/scanner"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	// ValidationError indicates a missing or invalid setting.
	ValidationError ConfigErrorType = "VALIDATION_ERROR"
	// DirectoryNotResolved indicates the working directory could not be determined.
	DirectoryNotResolved ConfigErrorType = "DIRECTORY_NOT_RESOLVED"
)

// ConfigError represents an error that occurred while resolving the configuration.
type ConfigError struct {
	Type    ConfigErrorType
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case ValidationError:
		if e.Field != "" {
			return fmt.Sprintf("configuration validation error: %s %s", e.Field, e.Message)
		}
		return fmt.Sprintf("configuration validation error: %s", e.Message)
	case DirectoryNotResolved:
		return fmt.Sprintf("could not resolve the working directory: %s", e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Options holds the raw values collected from the command line.
type Options struct {
	Directory        string
	SplitOn          string
	RemovePrefix     bool
	DryRun           bool
	Verbose          bool
	LogFile          string
	RenameDuplicates bool
	SymlinkPolicy    string
}

// RunConfig is the resolved, immutable configuration of one run.
type RunConfig struct {
	Path             string `validate:"required"`
	SplitOn          string `validate:"required"`
	RemovePrefix     bool
	DryRun           bool
	Verbose          bool
	LogFile          string
	RenameDuplicates bool
	SymlinkPolicy    string `validate:"oneof=follow skip error"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Resolve applies defaults to opts and validates the result.
// An empty directory falls back to the current working directory.
func Resolve(opts Options) (RunConfig, error) {
	dir := strings.TrimSpace(opts.Directory)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return RunConfig{}, &ConfigError{
				Type:    DirectoryNotResolved,
				Message: err.Error(),
				Err:     err,
			}
		}
		dir = wd
	}

	policy := strings.ToLower(strings.TrimSpace(opts.SymlinkPolicy))
	if policy == "" {
		policy = scanner.SymlinkPolicyFollow
	}

	cfg := RunConfig{
		Path:             filepath.Clean(dir),
		SplitOn:          opts.SplitOn,
		RemovePrefix:     opts.RemovePrefix,
		DryRun:           opts.DryRun,
		Verbose:          opts.Verbose,
		LogFile:          strings.TrimSpace(opts.LogFile),
		RenameDuplicates: opts.RenameDuplicates,
		SymlinkPolicy:    policy,
	}

	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration has all required fields.
func (c RunConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ConfigError{Type: ValidationError, Message: err.Error(), Err: err}
	}

	fe := fieldErrs[0]
	return &ConfigError{
		Type:    ValidationError,
		Field:   flagName(fe.Field()),
		Message: describe(fe),
		Err:     err,
	}
}

// SilentDryRun reports whether a dry run would produce no visible trace of
// what it planned: no verbose console output and no logfile.
func (c RunConfig) SilentDryRun() bool {
	return c.DryRun && !c.Verbose && strings.TrimSpace(c.LogFile) == ""
}

// ScanOptions returns the scanner options for this run.
func (c RunConfig) ScanOptions() scanner.ScanOptions {
	opts := scanner.DefaultScanOptions()
	if c.SymlinkPolicy != "" {
		opts.SymlinkPolicy = c.SymlinkPolicy
	}
	return opts
}

// LogValue implements slog.LogValuer so settings can be logged as one group.
func (c RunConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("directory", c.Path),
		slog.String("split_on", c.SplitOn),
		slog.Bool("remove_prefix", c.RemovePrefix),
		slog.Bool("dry_run", c.DryRun),
		slog.Bool("verbose", c.Verbose),
		slog.String("logfile", c.LogFile),
		slog.Bool("rename_duplicates", c.RenameDuplicates),
		slog.String("symlinks", c.SymlinkPolicy),
	)
}

func flagName(field string) string {
	switch field {
	case "Path":
		return "--directory"
	case "SplitOn":
		return "--split-on"
	case "SymlinkPolicy":
		return "--symlinks"
	default:
		return field
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("failed the %q check", fe.Tag())
	}
}
