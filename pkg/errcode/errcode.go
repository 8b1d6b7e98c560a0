// Package errcode enumerates error codes used across mycota.
// Codes let the CLI map internal failures to user-facing messages
// without string matching.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Store errors
	StoreOpenError
	StoreNotBuiltError
	StoreSchemaError
	StoreInsertError
	StoreCommitError
	StoreQueryError
	StoreConsistencyError

	// Wiki source errors
	WikiRequestError
	WikiResponseError
	WikiDumpReadError

	// Build errors
	BuildNoRecordsError
	BuildCancelledError
	BuildPipelineError

	// Alias configuration errors
	AliasFileError
	AliasEntryError
)
