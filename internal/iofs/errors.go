package iofs

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/reinderien/mycota/pkg/errcode"
)

// CreateDirError creates an error for when a directory cannot be
// created.
func CreateDirError(dir string, err error) error {
	msg := `Cannot create directory <em>%s</em>`
	vars := []any{dir}

	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to create directory: %w", err),
	}
}

// CopyFileError creates an error for when a default file cannot be
// written.
func CopyFileError(path string, err error) error {
	msg := `Cannot write file <em>%s</em>`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to write file: %w", err),
	}
}

// ReadFileError creates an error for when a configuration file cannot
// be read.
func ReadFileError(path string, err error) error {
	msg := `Cannot read file <em>%s</em>`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read file: %w", err),
	}
}
