package extract

import (
	"errors"

	"github.com/webfansplz/vuedoc-parser/internal/loader"
)

// Errors reported for files that cannot be documented. They are wrapped in
// a *FileError.
var (
	ErrUnsupportedLanguage = loader.ErrUnsupportedLanguage
	ErrInvalidContent      = errors.New("content is not valid UTF-8")
	ErrFileTooLarge        = errors.New("file exceeds size limit")
	ErrParseFailed         = errors.New("parse failed")
)

// FileError records the file an extraction failed for.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}
