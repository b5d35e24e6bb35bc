// Package organizer moves grouped files into prefix-named subdirectories for prefixsub.
package organizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"prefixsub/internal/config"
	"prefixsub/internal/grouper"
	"prefixsub/internal/scanner"
	"prefixsub/internal/splitter"
)

// Logger is the leveled sink the organizer reports through.
// Arguments after the message are slog-style key/value pairs.
type Logger interface {
	Trace(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, err error, args ...any)
	Critical(msg string, err error, args ...any)
}

// MoveStatus is the outcome of one file in a run.
type MoveStatus string

const (
	// StatusPlanned marks a move computed during a dry run.
	StatusPlanned MoveStatus = "PLANNED"
	// StatusMoved marks a file that now lives at its destination.
	StatusMoved MoveStatus = "MOVED"
	// StatusFailed marks a file whose move failed and was left in place.
	StatusFailed MoveStatus = "FAILED"
	// StatusInPlace marks a file whose destination is its current path.
	StatusInPlace MoveStatus = "IN_PLACE"
)

// MoveRecord describes what happened, or would happen, to one file.
type MoveRecord struct {
	SourcePath      string
	DestinationPath string
	Status          MoveStatus
	IsDuplicate     bool   // True if the destination name was changed to avoid a clash
	OriginalName    string // Destination name before duplicate renaming (empty if not a duplicate)
	Error           error
}

// GroupReport holds the records of one reorganized prefix group.
type GroupReport struct {
	Key       string
	Prefix    string // Canonical prefix, also the directory name
	Directory string
	Moves     []MoveRecord
}

// Report is the outcome of a Reorganize call.
type Report struct {
	DryRun bool
	Groups []GroupReport
}

// Count returns the number of records with the given status.
func (r *Report) Count(status MoveStatus) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, g := range r.Groups {
		for _, m := range g.Moves {
			if m.Status == status {
				n++
			}
		}
	}
	return n
}

// Failures returns every failed record in run order.
func (r *Report) Failures() []MoveRecord {
	if r == nil {
		return nil
	}
	var failed []MoveRecord
	for _, g := range r.Groups {
		for _, m := range g.Moves {
			if m.Status == StatusFailed {
				failed = append(failed, m)
			}
		}
	}
	return failed
}

// Organizer applies prefix groups to a filesystem.
type Organizer struct {
	fs  FileSystem
	log Logger
}

// New creates an Organizer working on fs and reporting to log.
func New(fs FileSystem, log Logger) *Organizer {
	return &Organizer{fs: fs, log: log}
}

// TargetName returns the name a file gets inside its prefix directory.
// With removePrefix the first segment and the delimiter after it are dropped.
func TargetName(fileName, delimiter string, removePrefix bool) string {
	start := 0
	if removePrefix {
		start = 1
	}
	return splitter.Join(splitter.Split(fileName, delimiter), delimiter, start)
}

// Reorganize moves every file of every group with more than one member into
// <cfg.Path>/<canonical prefix>. In a dry run nothing is created or moved.
//
// A failed move is recorded and logged as a warning and the run goes on.
// Any other failure, including a directory that cannot be created, stops the
// run and is returned together with the report built so far.
func (o *Organizer) Reorganize(groups *grouper.Groups, cfg config.RunConfig) (*Report, error) {
	report := &Report{
		DryRun: cfg.DryRun,
		Groups: make([]GroupReport, 0),
	}
	state := newRunState(o.fs)

	for _, group := range groups.Eligible() {
		groupReport, err := o.reorganizeGroup(group, cfg, state)
		report.Groups = append(report.Groups, groupReport)
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

// runState tracks the paths a run has already used or freed, so a dry run
// sees the same occupied names as the real run would.
type runState struct {
	fs      FileSystem
	claimed map[string]bool
	vacated map[string]bool
}

func newRunState(fs FileSystem) *runState {
	return &runState{
		fs:      fs,
		claimed: make(map[string]bool),
		vacated: make(map[string]bool),
	}
}

// occupied reports whether path is taken at this point of the run.
func (s *runState) occupied(path string) bool {
	if s.claimed[path] {
		return true
	}
	if s.vacated[path] {
		return false
	}
	return s.fs.Exists(path)
}

func (s *runState) record(src, dst string) {
	s.vacated[src] = true
	delete(s.claimed, src)
	s.claimed[dst] = true
}

func (o *Organizer) reorganizeGroup(group *grouper.Group, cfg config.RunConfig, state *runState) (GroupReport, error) {
	prefix := group.CanonicalPrefix(cfg.SplitOn)
	newDirectory := filepath.Join(cfg.Path, prefix)

	report := GroupReport{
		Key:       group.Key,
		Prefix:    prefix,
		Directory: newDirectory,
		Moves:     make([]MoveRecord, 0, len(group.Files)),
	}

	if !cfg.DryRun {
		if err := o.fs.CreateDirectory(newDirectory); err != nil {
			return report, fmt.Errorf("prefix %q: %w", prefix, err)
		}
	}

	for _, file := range group.Files {
		record, err := o.moveFile(file, newDirectory, cfg, state)
		report.Moves = append(report.Moves, record)
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

func (o *Organizer) moveFile(file scanner.FileEntry, newDirectory string, cfg config.RunConfig, state *runState) (MoveRecord, error) {
	newName := TargetName(file.Name, cfg.SplitOn, cfg.RemovePrefix)
	record := MoveRecord{
		SourcePath:      file.FullPath,
		DestinationPath: filepath.Join(newDirectory, newName),
		Status:          StatusPlanned,
	}

	// An empty prefix without -r maps a file onto itself.
	if record.DestinationPath == record.SourcePath {
		o.log.Trace("file already in place", "path", record.SourcePath)
		record.Status = StatusInPlace
		state.claimed[record.DestinationPath] = true
		return record, nil
	}

	if state.occupied(record.DestinationPath) {
		if cfg.RenameDuplicates {
			unique := GenerateDuplicateName(state.occupied, newDirectory, newName)
			record.OriginalName = newName
			record.IsDuplicate = true
			record.DestinationPath = filepath.Join(newDirectory, unique)
		} else if cfg.DryRun {
			o.recordMoveFailure(&record, &MoveError{Type: DestinationExists, Path: record.DestinationPath, Err: os.ErrExist})
			return record, nil
		}
	}

	o.log.Trace("moving file", "old", record.SourcePath, "new", record.DestinationPath)

	if cfg.DryRun {
		state.record(record.SourcePath, record.DestinationPath)
		return record, nil
	}

	if err := o.fs.Move(record.SourcePath, record.DestinationPath); err != nil {
		var moveErr *MoveError
		if !errors.As(err, &moveErr) {
			record.Status = StatusFailed
			record.Error = err
			return record, fmt.Errorf("move %s: %w", file.FullPath, err)
		}
		o.recordMoveFailure(&record, moveErr)
		return record, nil
	}

	state.record(record.SourcePath, record.DestinationPath)
	record.Status = StatusMoved
	return record, nil
}

func (o *Organizer) recordMoveFailure(record *MoveRecord, moveErr *MoveError) {
	o.log.Warn("could not move file", moveErr,
		"path", record.SourcePath,
		"destination", record.DestinationPath,
		"reason", string(moveErr.Type),
	)
	record.Status = StatusFailed
	record.Error = moveErr
}
