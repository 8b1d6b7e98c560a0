// Package ioquery runs ad-hoc read-only SQL against a committed store
// and renders results as a text table.
package ioquery

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Run executes a read-only query and writes a tab-aligned table with a
// header row to w. NULL cells render empty. The store connection is
// opened mode=ro by the caller, so mutating statements fail there.
func Run(ctx context.Context, db *sql.DB, query string, w io.Writer) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return QueryError(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return QueryError(err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(cols, "\t"))

	vals := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	var count int
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return QueryError(err)
		}
		cells := make([]string, len(vals))
		for i, v := range vals {
			if v.Valid {
				cells[i] = v.String
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
		count++
	}
	if err := rows.Err(); err != nil {
		return QueryError(err)
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "(%d rows)\n", count)
	return nil
}
