package errors

import (
	stderrs "errors"
	"io/fs"
)

// FSErrorCode classifies a filesystem error into an ErrorCode
// ok=false when err carries no filesystem meaning
func FSErrorCode(err error) (ErrorCode, bool) {
	if err == nil {
		return ErrorCodeUnknown, false
	}
	switch {
	case stderrs.Is(err, fs.ErrNotExist):
		return ErrorCodeNotFound, true
	case stderrs.Is(err, fs.ErrPermission):
		return ErrorCodeForbidden, true
	}
	var pe *fs.PathError
	if stderrs.As(err, &pe) {
		return ErrorCodeIO, true
	}
	return ErrorCodeUnknown, false
}

// FromFS wraps a filesystem error with a mapped code and message
// errors that are already ours pass through untouched
func FromFS(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	code, ok := FSErrorCode(err)
	if !ok {
		code = ErrorCodeIO
	}
	return Wrap(err, code, msg)
}

// FromFSf is FromFS with a formatted message
func FromFSf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	code, ok := FSErrorCode(err)
	if !ok {
		code = ErrorCodeIO
	}
	return Wrapf(err, code, format, a...)
}
