package orchestrator

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"prefixsub/internal/config"
	"prefixsub/internal/scanner"
)

type logEntry struct {
	Level string
	Msg   string
	Err   error
	Args  []any
}

type recordingLogger struct {
	entries []logEntry
}

func (r *recordingLogger) Trace(msg string, args ...any) {
	r.entries = append(r.entries, logEntry{Level: "trace", Msg: msg, Args: args})
}

func (r *recordingLogger) Info(msg string, args ...any) {
	r.entries = append(r.entries, logEntry{Level: "info", Msg: msg, Args: args})
}

func (r *recordingLogger) Warn(msg string, err error, args ...any) {
	r.entries = append(r.entries, logEntry{Level: "warn", Msg: msg, Err: err, Args: args})
}

func (r *recordingLogger) Critical(msg string, err error, args ...any) {
	r.entries = append(r.entries, logEntry{Level: "critical", Msg: msg, Err: err, Args: args})
}

// arg returns the value logged under key by the first entry with msg.
func (r *recordingLogger) arg(msg, key string) any {
	for _, e := range r.entries {
		if e.Msg != msg {
			continue
		}
		for i := 0; i+1 < len(e.Args); i += 2 {
			if e.Args[i] == key {
				return e.Args[i+1]
			}
		}
	}
	return nil
}

func (r *recordingLogger) count(level string) int {
	n := 0
	for _, e := range r.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

func (r *recordingLogger) has(level, msgPart string) bool {
	for _, e := range r.entries {
		if e.Level == level && strings.Contains(e.Msg, msgPart) {
			return true
		}
	}
	return false
}

// stubFS lets a test replace individual FileSystem operations.
type stubFS struct {
	list  func(dir string) ([]scanner.FileEntry, error)
	mkdir func(path string) error
	move  func(src, dst string) error
}

func (s *stubFS) ListFiles(dir string) ([]scanner.FileEntry, error) {
	return s.list(dir)
}

func (s *stubFS) CreateDirectory(path string) error {
	if s.mkdir == nil {
		return nil
	}
	return s.mkdir(path)
}

func (s *stubFS) Move(src, dst string) error {
	if s.move == nil {
		return nil
	}
	return s.move(src, dst)
}

func (s *stubFS) Exists(string) bool { return false }

func entries(dir string, names ...string) []scanner.FileEntry {
	out := make([]scanner.FileEntry, len(names))
	for i, n := range names {
		out[i] = scanner.FileEntry{Name: n, FullPath: filepath.Join(dir, n)}
	}
	return out
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("content of "+n), 0o644))
	}
}

func runConfig(dir, splitOn string) config.RunConfig {
	return config.RunConfig{
		Path:          dir,
		SplitOn:       splitOn,
		SymlinkPolicy: scanner.SymlinkPolicyFollow,
	}
}

// FileSnapshot represents the state of a file for comparison.
type FileSnapshot struct {
	Path    string
	Content []byte
}

// DirectorySnapshot represents the state of a directory tree for comparison.
type DirectorySnapshot struct {
	Files       []FileSnapshot
	Directories []string
}

// captureDirectorySnapshot captures the current state of a directory tree.
func captureDirectorySnapshot(rootDir string) (*DirectorySnapshot, error) {
	snapshot := &DirectorySnapshot{
		Files:       make([]FileSnapshot, 0),
		Directories: make([]string, 0),
	}

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, _ := filepath.Rel(rootDir, path)
		if info.IsDir() {
			if relPath != "." {
				snapshot.Directories = append(snapshot.Directories, filepath.ToSlash(relPath))
			}
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		snapshot.Files = append(snapshot.Files, FileSnapshot{Path: filepath.ToSlash(relPath), Content: content})
		return nil
	})

	sort.Strings(snapshot.Directories)
	sort.Slice(snapshot.Files, func(i, j int) bool {
		return snapshot.Files[i].Path < snapshot.Files[j].Path
	})

	return snapshot, err
}

func snapshotsEqual(before, after *DirectorySnapshot) bool {
	return reflect.DeepEqual(before, after)
}

// filePaths lists the relative paths of every file in the snapshot.
func (s *DirectorySnapshot) filePaths() []string {
	out := make([]string, len(s.Files))
	for i, f := range s.Files {
		out[i] = f.Path
	}
	return out
}
