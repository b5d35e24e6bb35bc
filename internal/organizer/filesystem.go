package organizer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"prefixsub/internal/scanner"
)

// MoveErrorType represents the type of move error.
type MoveErrorType string

const (
	// SourceNotFound indicates the source file does not exist.
	SourceNotFound MoveErrorType = "SOURCE_NOT_FOUND"
	// DestinationExists indicates a file already exists at the destination.
	DestinationExists MoveErrorType = "DESTINATION_EXISTS"
	// PermissionDenied indicates insufficient permissions for the operation.
	PermissionDenied MoveErrorType = "PERMISSION_DENIED"
	// CrossDevice indicates the copy fallback for a cross-device move failed.
	CrossDevice MoveErrorType = "CROSS_DEVICE"
	// IOError covers any other I/O failure of a single move.
	IOError MoveErrorType = "IO_ERROR"
)

// MoveError is a recoverable failure to move one file.
// It never aborts the batch the file belongs to.
type MoveError struct {
	Type MoveErrorType
	Path string
	Err  error
}

func (e *MoveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// FileSystem is everything the reorganizer needs from the filesystem.
type FileSystem interface {
	// ListFiles returns the files directly inside dir.
	ListFiles(dir string) ([]scanner.FileEntry, error)
	// CreateDirectory creates path and any parents; an existing directory is not an error.
	CreateDirectory(path string) error
	// Move renames src to dst. Recoverable failures are returned as *MoveError.
	// An existing dst is never overwritten.
	Move(src, dst string) error
	// Exists reports whether anything is present at path.
	Exists(path string) bool
}

// OSFileSystem implements FileSystem on the host filesystem.
type OSFileSystem struct {
	ScanOptions scanner.ScanOptions
}

// NewOSFileSystem returns an OSFileSystem listing with the given scan options.
func NewOSFileSystem(opts scanner.ScanOptions) *OSFileSystem {
	return &OSFileSystem{ScanOptions: opts}
}

// ListFiles implements FileSystem.
func (f *OSFileSystem) ListFiles(dir string) ([]scanner.FileEntry, error) {
	return scanner.ScanWithOptions(dir, f.ScanOptions)
}

// CreateDirectory implements FileSystem.
func (f *OSFileSystem) CreateDirectory(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// Exists implements FileSystem.
func (f *OSFileSystem) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Move implements FileSystem.
func (f *OSFileSystem) Move(src, dst string) error {
	if _, err := os.Lstat(src); err != nil {
		if os.IsNotExist(err) {
			return &MoveError{Type: SourceNotFound, Path: src, Err: err}
		}
		return classifyMoveError(src, err)
	}

	// os.Rename replaces an existing destination on unix, so check first.
	if f.Exists(dst) {
		return &MoveError{Type: DestinationExists, Path: dst, Err: os.ErrExist}
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if os.IsPermission(err) {
		return &MoveError{Type: PermissionDenied, Path: src, Err: err}
	}
	if isCrossDevice(err) {
		if cerr := copyAndDelete(src, dst); cerr != nil {
			var moveErr *MoveError
			if errors.As(cerr, &moveErr) {
				return moveErr
			}
			return &MoveError{Type: CrossDevice, Path: src, Err: cerr}
		}
		return nil
	}
	return classifyMoveError(src, err)
}

func classifyMoveError(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return &MoveError{Type: SourceNotFound, Path: path, Err: err}
	case os.IsExist(err):
		return &MoveError{Type: DestinationExists, Path: path, Err: err}
	case os.IsPermission(err):
		return &MoveError{Type: PermissionDenied, Path: path, Err: err}
	default:
		return &MoveError{Type: IOError, Path: path, Err: err}
	}
}

// copyAndDelete copies a file to a new location and deletes the original.
// Used as a fallback when os.Rename fails across devices.
func copyAndDelete(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return classifyMoveError(src, err)
	}
	defer in.Close()

	srcInfo, err := in.Stat()
	if err != nil {
		return classifyMoveError(src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return classifyMoveError(dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return &MoveError{Type: CrossDevice, Path: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return &MoveError{Type: CrossDevice, Path: dst, Err: err}
	}

	if err := os.Remove(src); err != nil {
		// Keep exactly one copy.
		os.Remove(dst)
		return classifyMoveError(src, err)
	}

	return nil
}
