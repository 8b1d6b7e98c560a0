package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/reinderien/mycota/pkg/errcode"
)

// OpenError creates an error for when a store file cannot be opened
// or removed.
func OpenError(path string, err error) error {
	msg := `Cannot open store file <em>%s</em>

<em>Possible causes:</em>
  - Cache directory missing or not writable
  - File locked by another process`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to open store: %w", err),
	}
}

// NotBuiltError creates an error for when a query is attempted before
// any build has committed a store.
func NotBuiltError(path string) error {
	msg := `No store found at <em>%s</em>

Run <em>'mycota build'</em> first to create the dataset.`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.StoreNotBuiltError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("store not built: %s", path),
	}
}

// NotOpenError creates an error for store operations attempted without
// an open staging database.
func NotOpenError() error {
	msg := "Store operation attempted without an open staging database"

	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("staging database not open"),
	}
}

// SchemaError creates an error for failed schema creation.
func SchemaError(err error) error {
	msg := "Cannot create store schema"

	return &gn.Error{
		Code: errcode.StoreSchemaError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// InsertError creates an error for failed batch inserts.
func InsertError(err error) error {
	msg := "Cannot write records to the staging store"

	return &gn.Error{
		Code: errcode.StoreInsertError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to insert records: %w", err),
	}
}

// CommitError creates an error for a failed atomic commit. The
// previous live store is untouched.
func CommitError(err error) error {
	msg := `Cannot commit the new store

The previous dataset, if any, is still intact.`

	return &gn.Error{
		Code: errcode.StoreCommitError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to commit store: %w", err),
	}
}

// ConsistencyError creates an error for diverging key sets between the
// relational table and the full-text index. Internal invariant
// failure - the build is aborted rather than committing disagreeing
// query surfaces.
func ConsistencyError(onlyRows, onlyDocs int) error {
	msg := `Store consistency violation

<em>Records only in relational table:</em> %d
<em>Records only in full-text index:</em> %d`

	vars := []any{onlyRows, onlyDocs}

	return &gn.Error{
		Code: errcode.StoreConsistencyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"key sets diverge: %d relational-only, %d full-text-only",
			onlyRows, onlyDocs),
	}
}

// QueryError creates an error for failed reads against the store.
func QueryError(err error) error {
	msg := "Cannot query the store"

	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("query failed: %w", err),
	}
}
