// Package errors defines the sentinel error kinds that zerofs operations
// surface to callers, along with a path-qualified wrapper type.
package errors

import "fmt"

// Kind identifies the category of a file-system error. Kinds are compared
// with errors.Is against the sentinel values below; they never carry
// path-specific detail themselves (that lives in PathError).
type Kind int

const (
	// KindNone indicates the absence of any file-system error.
	KindNone Kind = iota
	KindNoSuchFile
	KindFileAlreadyExists
	KindNotDirectory
	KindIsDirectory
	KindDirectoryNotEmpty
	KindNotLink
	KindAccessDenied
	KindTooManySymbolicLinks
	KindOutOfSpace
	KindUnsupportedOperation
	KindClosedFileSystem
	KindClosedWatchService
	KindClosedChannel
	KindProviderMismatch
	KindInvalidPath
	KindIllegalArgument
	KindIO
)

var kindNames = map[Kind]string{
	KindNoSuchFile:           "no such file",
	KindFileAlreadyExists:    "file already exists",
	KindNotDirectory:         "not a directory",
	KindIsDirectory:          "is a directory",
	KindDirectoryNotEmpty:    "directory not empty",
	KindNotLink:              "not a symbolic link",
	KindAccessDenied:         "access denied",
	KindTooManySymbolicLinks: "too many levels of symbolic links",
	KindOutOfSpace:           "out of disk space",
	KindUnsupportedOperation: "unsupported operation",
	KindClosedFileSystem:     "file system is closed",
	KindClosedWatchService:   "watch service is closed",
	KindClosedChannel:        "channel is closed",
	KindProviderMismatch:     "path belongs to a different file system",
	KindInvalidPath:          "invalid path",
	KindIllegalArgument:      "illegal argument",
	KindIO:                   "I/O error",
}

// Error implements the error interface so that a bare Kind can be compared
// with errors.Is without being wrapped first.
func (k Kind) Error() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown error"
}

// PathError pairs an error Kind with the operation and path that produced
// it, mirroring the standard library's os.PathError.
type PathError struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

// New constructs a PathError for the given operation, path, and kind.
func New(op, path string, kind Kind) *PathError {
	return &PathError{Op: op, Path: path, Kind: kind}
}

// Wrap constructs a PathError for the given operation, path, and kind,
// recording the underlying cause.
func Wrap(op, path string, kind Kind, err error) *PathError {
	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}

func (e *PathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
}

func (e *PathError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is allows errors.Is(err, SomeKind) to match a *PathError carrying that
// kind without needing to unwrap twice.
func (e *PathError) Is(target error) bool {
	if k, ok := target.(Kind); ok {
		return e.Kind == k
	}
	return false
}
