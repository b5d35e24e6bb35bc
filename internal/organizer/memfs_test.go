package organizer

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"prefixsub/internal/scanner"
)

// memFS is an in-memory FileSystem for driving the organizer without disk I/O.
type memFS struct {
	root     string
	order    []string // file paths in listing order
	files    map[string]bool
	dirs     map[string]bool
	mkdirs   []string
	moves    [][2]string
	failFor  map[string]error // source path -> error returned by Move
	mkdirErr error
}

func newMemFS(root string, names ...string) *memFS {
	fs := &memFS{
		root:    root,
		files:   make(map[string]bool),
		dirs:    map[string]bool{root: true},
		failFor: make(map[string]error),
	}
	for _, n := range names {
		p := filepath.Join(root, n)
		fs.order = append(fs.order, p)
		fs.files[p] = true
	}
	return fs
}

func (m *memFS) ListFiles(dir string) ([]scanner.FileEntry, error) {
	if !m.dirs[dir] {
		return nil, &scanner.ScanError{Type: scanner.DirectoryNotFound, Path: dir, Err: os.ErrNotExist}
	}
	var out []scanner.FileEntry
	for _, p := range m.order {
		if m.files[p] && filepath.Dir(p) == dir {
			out = append(out, scanner.FileEntry{Name: filepath.Base(p), FullPath: p})
		}
	}
	return out, nil
}

func (m *memFS) CreateDirectory(path string) error {
	m.mkdirs = append(m.mkdirs, path)
	if m.mkdirErr != nil {
		return m.mkdirErr
	}
	if m.files[path] {
		return errors.New("not a directory: " + path)
	}
	m.dirs[path] = true
	return nil
}

func (m *memFS) Move(src, dst string) error {
	if err, ok := m.failFor[src]; ok {
		return err
	}
	if !m.files[src] {
		return &MoveError{Type: SourceNotFound, Path: src, Err: os.ErrNotExist}
	}
	if m.Exists(dst) {
		return &MoveError{Type: DestinationExists, Path: dst, Err: os.ErrExist}
	}
	delete(m.files, src)
	m.files[dst] = true
	m.order = append(m.order, dst)
	m.moves = append(m.moves, [2]string{src, dst})
	return nil
}

func (m *memFS) Exists(path string) bool {
	return m.files[path] || m.dirs[path]
}

// paths returns every existing file path relative to root, sorted.
func (m *memFS) paths() []string {
	var out []string
	for p, ok := range m.files {
		if ok {
			rel, _ := filepath.Rel(m.root, p)
			out = append(out, filepath.ToSlash(rel))
		}
	}
	sort.Strings(out)
	return out
}

// logEntry is one call recorded by recordingLogger.
type logEntry struct {
	Level string
	Msg   string
	Err   error
	Args  []any
}

// recordingLogger captures every call for assertions.
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
