package ioquery

import (
	"fmt"

	"github.com/gnames/gn"

	"github.com/reinderien/mycota/pkg/errcode"
)

// QueryError happens when an ad-hoc query fails to run or scan.
func QueryError(err error) error {
	msg := `Query failed.

<em>Possible causes:</em>
  - SQL syntax error
  - Unknown table or column (run <em>'mycota schema'</em>)
  - Write statement against the read-only store`

	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Err:  fmt.Errorf("query failed: %w", err),
	}
}
