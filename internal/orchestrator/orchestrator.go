// Package orchestrator drives one prefixsub run: list, group, reorganize.
package orchestrator

import (
	"fmt"

	"prefixsub/internal/config"
	"prefixsub/internal/grouper"
	"prefixsub/internal/organizer"
)

// FatalError reports a failure that ended the run early.
// It has already been logged at critical level when Run returns it.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal error: %v", e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Run executes a single reorganization of cfg.Path.
//
// Files that could not be moved are reported in the returned report and do
// not make the run fail. Any other error, or a panic, is logged once as
// critical and returned as a *FatalError together with the partial report.
func Run(cfg config.RunConfig, fs organizer.FileSystem, log organizer.Logger) (report *organizer.Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			log.Critical("fatal error", err)
			err = &FatalError{Err: err}
		}
	}()

	log.Trace("settings", "config", cfg)

	if cfg.DryRun {
		log.Info("dry run")
		if cfg.SilentDryRun() {
			log.Warn("there is no logging output on this dry run", nil)
			log.Info("try -v for verbose or -l for a logfile")
		}
	}

	for _, w := range config.Warnings(cfg) {
		log.Warn(w.Message, nil, "field", w.Field)
	}

	entries, err := fs.ListFiles(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", cfg.Path, err)
	}

	groups := grouper.GroupByPrefixWithOptions(entries, cfg.SplitOn, grouper.Options{
		OnNewKey: func(key string) {
			log.Trace("found new prefix", "prefix", key)
		},
	})

	eligible := len(groups.Eligible())
	log.Trace("prefix count", "prefixes", groups.Len())
	log.Info("prefixes with more than one item", "prefixes", eligible)

	report, err = organizer.New(fs, log).Reorganize(groups, cfg)
	if err != nil {
		return report, err
	}

	log.Info("successfully ran to completion")
	return report, nil
}
