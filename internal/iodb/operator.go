// Package iodb implements the dual-representation store on embedded
// SQLite: the wide relational table and the FTS5 index, built into a
// staging file and committed atomically by renaming it over the live
// store. This is an impure I/O package implementing contracts defined
// in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/reinderien/mycota/pkg/config"
	"github.com/reinderien/mycota/pkg/mycota"
	"github.com/reinderien/mycota/pkg/schema"
)

// pair keeps one record's two projections together until flush.
type pair struct {
	row schema.Row
	doc schema.Document
}

// sqliteStore implements the mycota.Store interface.
type sqliteStore struct {
	cfg *config.Config
	reg *schema.Registry

	db          *sql.DB
	stagingPath string
	livePath    string
	buffer      []pair
}

// NewStore creates a store rooted in the cache directory
// (without opening anything).
func NewStore(cfg *config.Config, reg *schema.Registry) mycota.Store {
	return &sqliteStore{
		cfg:         cfg,
		reg:         reg,
		stagingPath: config.DBStagingPath(cfg.HomeDir),
		livePath:    config.DBPath(cfg.HomeDir),
	}
}

// Create opens a fresh staging database and creates both structures'
// schemas. A stale staging file from an aborted build is discarded.
func (s *sqliteStore) Create(ctx context.Context) error {
	if err := os.Remove(s.stagingPath); err != nil && !os.IsNotExist(err) {
		return OpenError(s.stagingPath, err)
	}

	db, err := sql.Open("sqlite", s.stagingPath)
	if err != nil {
		return OpenError(s.stagingPath, err)
	}

	for _, ddl := range []string{s.reg.TableDDL(), s.reg.FTSDDL()} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			db.Close()
			return SchemaError(err)
		}
	}

	s.db = db
	slog.Info("Created staging store", "path", s.stagingPath)
	return nil
}

// Insert buffers one projected pair; a full buffer flushes as a batch.
func (s *sqliteStore) Insert(
	ctx context.Context,
	row schema.Row,
	doc schema.Document,
) error {
	if s.db == nil {
		return NotOpenError()
	}

	s.buffer = append(s.buffer, pair{row: row, doc: doc})
	if len(s.buffer) >= s.cfg.DB.BatchSize {
		return s.Flush(ctx)
	}
	return nil
}

// Flush writes the buffered pairs inside one transaction. Both
// projections of a record are inserted together, so a failure can
// never leave a record present in one structure only.
func (s *sqliteStore) Flush(ctx context.Context) error {
	if s.db == nil {
		return NotOpenError()
	}
	if len(s.buffer) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InsertError(err)
	}
	defer tx.Rollback()

	rowStmt, err := tx.PrepareContext(ctx, s.rowInsertSQL())
	if err != nil {
		return InsertError(err)
	}
	defer rowStmt.Close()

	docStmt, err := tx.PrepareContext(ctx, s.docInsertSQL())
	if err != nil {
		return InsertError(err)
	}
	defer docStmt.Close()

	for _, p := range s.buffer {
		if _, err := rowStmt.ExecContext(ctx, s.rowArgs(p.row)...); err != nil {
			return InsertError(err)
		}
		if _, err := docStmt.ExecContext(ctx, s.docArgs(p.doc)...); err != nil {
			return InsertError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return InsertError(err)
	}

	s.buffer = s.buffer[:0]
	return nil
}

// Commit verifies both structures cover the identical record set,
// closes the staging database, and renames it over the live store.
// The rename is the single atomic step: a reader never observes one
// structure newer than the other, and any earlier failure leaves the
// previous store untouched.
func (s *sqliteStore) Commit(ctx context.Context) error {
	if s.db == nil {
		return NotOpenError()
	}

	if err := s.Flush(ctx); err != nil {
		return err
	}

	if err := s.checkConsistency(ctx); err != nil {
		return err
	}

	if err := s.db.Close(); err != nil {
		s.db = nil
		return CommitError(err)
	}
	s.db = nil

	if err := os.Rename(s.stagingPath, s.livePath); err != nil {
		return CommitError(err)
	}

	slog.Info("Committed store", "path", s.livePath)
	return nil
}

// Discard drops the staging database, keeping the live store.
func (s *sqliteStore) Discard() error {
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
	s.buffer = nil

	if err := os.Remove(s.stagingPath); err != nil && !os.IsNotExist(err) {
		return OpenError(s.stagingPath, err)
	}
	return nil
}

// checkConsistency asserts the defensive invariant that the relational
// and full-text key sets are identical. It never fires when the
// projector emits pairs; the check exists so a bug surfaces as a
// failed build instead of two disagreeing query surfaces.
func (s *sqliteStore) checkConsistency(ctx context.Context) error {
	q := fmt.Sprintf(`
SELECT
  (SELECT count(*) FROM (
    SELECT page_id FROM %s EXCEPT SELECT page_id FROM %s)),
  (SELECT count(*) FROM (
    SELECT page_id FROM %s EXCEPT SELECT page_id FROM %s))`,
		schema.TableName, schema.FTSName,
		schema.FTSName, schema.TableName,
	)

	var onlyRows, onlyDocs int
	if err := s.db.QueryRowContext(ctx, q).Scan(&onlyRows, &onlyDocs); err != nil {
		return CommitError(err)
	}

	if onlyRows != 0 || onlyDocs != 0 {
		return ConsistencyError(onlyRows, onlyDocs)
	}
	return nil
}

func (s *sqliteStore) rowInsertSQL() string {
	cols := s.reg.Columns()
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		schema.TableName,
		strings.Join(cols, ", "),
		placeholders(len(cols)),
	)
}

func (s *sqliteStore) docInsertSQL() string {
	cols := append(s.reg.FTSColumns(), "page_id")
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		schema.FTSName,
		strings.Join(cols, ", "),
		placeholders(len(cols)),
	)
}

func (s *sqliteStore) rowArgs(row schema.Row) []any {
	args := []any{row.PageID, row.Title, row.Name, row.Canonical, row.NameUUID}
	for _, col := range s.reg.Columns()[5:] {
		args = append(args, row.Cells[col])
	}
	return args
}

func (s *sqliteStore) docArgs(doc schema.Document) []any {
	args := []any{doc.Title, doc.Name, doc.Canonical}
	for _, attr := range s.reg.Attributes() {
		args = append(args, doc.Fields[attr.Key])
	}
	return append(args, doc.PageID)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// OpenRead opens the live store read-only for queries and reports.
func OpenRead(cfg *config.Config) (*sql.DB, error) {
	path := config.DBPath(cfg.HomeDir)

	if _, err := os.Stat(path); err != nil {
		return nil, NotBuiltError(path)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, OpenError(path, err)
	}
	return db, nil
}
