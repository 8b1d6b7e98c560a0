package iologger

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/reinderien/mycota/pkg/errcode"
)

// CreateLogFileError creates an error for when the log file cannot be
// created.
func CreateLogFileError(path string, err error) error {
	msg := `Cannot create log file <em>%s</em>`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to create log file: %w", err),
	}
}
