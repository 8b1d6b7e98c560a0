package iobuild

import (
	"fmt"

	"github.com/gnames/gn"

	"github.com/reinderien/mycota/pkg/errcode"
)

// NoRecordsError happens when a build fetched articles but produced
// no records, so there is nothing worth committing.
func NoRecordsError(fetched int) error {
	msg := `No records extracted from <em>%d</em> fetched articles.

The previous store, if any, is kept.`

	vars := []any{fetched}

	return &gn.Error{
		Code: errcode.BuildNoRecordsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no records from %d articles", fetched),
	}
}

// CancelledError happens when the build is interrupted before commit.
func CancelledError(err error) error {
	return &gn.Error{
		Code: errcode.BuildCancelledError,
		Msg:  "Build cancelled. The previous store, if any, is kept.",
		Err:  err,
	}
}

// PipelineError happens when a pipeline stage fails in a way that is
// not already wrapped by a more specific error.
func PipelineError(err error) error {
	return &gn.Error{
		Code: errcode.BuildPipelineError,
		Msg:  "Build pipeline failed.",
		Err:  err,
	}
}
