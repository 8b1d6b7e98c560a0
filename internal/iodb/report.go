package iodb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reinderien/mycota/pkg/schema"
)

// ValueCount is one bucket of the frequency report. A null Value is
// the absent bucket: articles that do not record the attribute at all,
// as opposed to recording a literal token like "unknown".
type ValueCount struct {
	Value sql.NullString
	Count int
}

// ColumnFreq is the value-frequency report for one slot column.
type ColumnFreq struct {
	Column string
	Values []ValueCount
}

// SchemaReport returns the DDL of both storage structures as recorded
// by SQLite. Diagnostic projection for operators.
func SchemaReport(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
SELECT sql FROM sqlite_master
WHERE type = 'table' AND name IN (?, ?)
ORDER BY name`,
		schema.TableName, schema.FTSName,
	)
	if err != nil {
		return nil, QueryError(err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var ddl string
		if err := rows.Scan(&ddl); err != nil {
			return nil, QueryError(err)
		}
		res = append(res, ddl)
	}
	return res, rows.Err()
}

// FrequencyReport returns the value-frequency projection over every
// positional slot column, including the null bucket. Operators use it
// to audit normalization quality and spot near-duplicate tokens; the
// system never auto-corrects based on it.
func FrequencyReport(
	ctx context.Context,
	db *sql.DB,
	reg *schema.Registry,
) ([]ColumnFreq, error) {
	var res []ColumnFreq

	for _, attr := range reg.Attributes() {
		for s := 1; s <= attr.Slots; s++ {
			col := schema.SlotColumn(attr.Key, s)
			freq, err := columnFreq(ctx, db, col)
			if err != nil {
				return nil, err
			}
			res = append(res, freq)
		}
	}
	return res, nil
}

func columnFreq(
	ctx context.Context,
	db *sql.DB,
	col string,
) (ColumnFreq, error) {
	// Column names come from the registry, not from user input.
	q := fmt.Sprintf(
		"SELECT %s, count(*) FROM %s GROUP BY %s ORDER BY %s",
		col, schema.TableName, col, col,
	)

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return ColumnFreq{}, QueryError(err)
	}
	defer rows.Close()

	freq := ColumnFreq{Column: col}
	for rows.Next() {
		var vc ValueCount
		if err := rows.Scan(&vc.Value, &vc.Count); err != nil {
			return ColumnFreq{}, QueryError(err)
		}
		freq.Values = append(freq.Values, vc)
	}
	return freq, rows.Err()
}

// Counts returns the row and document counts of an open store.
func Counts(ctx context.Context, db *sql.DB) (int, int, error) {
	var nRows, nDocs int
	q := fmt.Sprintf(
		"SELECT (SELECT count(*) FROM %s), (SELECT count(*) FROM %s)",
		schema.TableName, schema.FTSName,
	)
	if err := db.QueryRowContext(ctx, q).Scan(&nRows, &nDocs); err != nil {
		return 0, 0, QueryError(err)
	}
	return nRows, nDocs, nil
}
