package iodb_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reinderien/mycota/internal/iodb"
	"github.com/reinderien/mycota/pkg/config"
	"github.com/reinderien/mycota/pkg/schema"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	home := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir(home)})
	require.NoError(t, os.MkdirAll(config.CacheDir(home), 0755))
	return cfg
}

func testRecord(pageID int64, title string, values map[string][]string) *schema.Record {
	return &schema.Record{
		PageID: pageID,
		Title:  title,
		Name:   title,
		Values: values,
	}
}

func commitRecords(
	t *testing.T,
	cfg *config.Config,
	reg *schema.Registry,
	recs ...*schema.Record,
) {
	t.Helper()
	ctx := context.Background()

	store := iodb.NewStore(cfg, reg)
	require.NoError(t, store.Create(ctx))
	for _, rec := range recs {
		row, doc := reg.Project(rec)
		require.NoError(t, store.Insert(ctx, row, doc))
	}
	require.NoError(t, store.Commit(ctx))
}

func TestStoreBuildAndQuery(t *testing.T) {
	cfg := testConfig(t)
	reg := schema.NewRegistry()
	ctx := context.Background()

	commitRecords(t, cfg, reg,
		testRecord(1, "Agaricus campestris", map[string][]string{
			"which_gills": {"free"},
			"cap_shape":   {"convex", "flat"},
			"how_edible":  {"choice"},
		}),
		testRecord(2, "Amanita phalloides", map[string][]string{
			"which_gills": {"free"},
			"cap_shape":   {"convex"},
			"how_edible":  {"deadly"},
		}),
	)

	db, err := iodb.OpenRead(cfg)
	require.NoError(t, err)
	defer db.Close()

	t.Run("both structures populated", func(t *testing.T) {
		nRows, nDocs, err := iodb.Counts(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, 2, nRows)
		assert.Equal(t, 2, nDocs)
	})

	t.Run("column query on slot values", func(t *testing.T) {
		var title string
		err := db.QueryRowContext(ctx,
			"SELECT title FROM mycota WHERE cap_shape_2 = 'flat'",
		).Scan(&title)
		require.NoError(t, err)
		assert.Equal(t, "Agaricus campestris", title)
	})

	t.Run("collapsed column holds first slot", func(t *testing.T) {
		var capShape string
		err := db.QueryRowContext(ctx,
			"SELECT cap_shape FROM mycota WHERE page_id = 1",
		).Scan(&capShape)
		require.NoError(t, err)
		assert.Equal(t, "convex", capShape)
	})

	t.Run("fts match across fields", func(t *testing.T) {
		var title string
		err := db.QueryRowContext(ctx,
			"SELECT title FROM mycota_fts WHERE mycota_fts MATCH 'deadly'",
		).Scan(&title)
		require.NoError(t, err)
		assert.Equal(t, "Amanita phalloides", title)
	})

	t.Run("fts column filter", func(t *testing.T) {
		rows, err := db.QueryContext(ctx,
			"SELECT page_id FROM mycota_fts WHERE cap_shape MATCH 'flat'",
		)
		require.NoError(t, err)
		defer rows.Close()

		var ids []int64
		for rows.Next() {
			var id int64
			require.NoError(t, rows.Scan(&id))
			ids = append(ids, id)
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, []int64{1}, ids)
	})

	t.Run("fts match is case-insensitive on values", func(t *testing.T) {
		var n int
		err := db.QueryRowContext(ctx,
			"SELECT count(*) FROM mycota_fts WHERE mycota_fts MATCH 'CONVEX'",
		).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestFTSProximity(t *testing.T) {
	cfg := testConfig(t)
	reg := schema.NewRegistry()
	ctx := context.Background()

	// Page 2 carries "flat" under a different attribute, so scoped
	// queries must not see it through cap_shape.
	commitRecords(t, cfg, reg,
		testRecord(1, "Agaricus campestris", map[string][]string{
			"cap_shape": {"convex", "flat"},
		}),
		testRecord(2, "Boletus edulis", map[string][]string{
			"cap_shape":       {"convex"},
			"stipe_character": {"flat"},
		}),
	)

	db, err := iodb.OpenRead(cfg)
	require.NoError(t, err)
	defer db.Close()

	queryIDs := func(t *testing.T, q string) []int64 {
		t.Helper()
		rows, err := db.QueryContext(ctx, q)
		require.NoError(t, err)
		defer rows.Close()

		var ids []int64
		for rows.Next() {
			var id int64
			require.NoError(t, rows.Scan(&id))
			ids = append(ids, id)
		}
		require.NoError(t, rows.Err())
		return ids
	}

	t.Run("near proximity within a field", func(t *testing.T) {
		ids := queryIDs(t,
			"SELECT page_id FROM mycota_fts WHERE cap_shape MATCH 'NEAR(convex flat)'")
		assert.Equal(t, []int64{1}, ids)
	})

	t.Run("two-term match ignores slot order", func(t *testing.T) {
		ids := queryIDs(t,
			"SELECT page_id FROM mycota_fts WHERE cap_shape MATCH 'flat convex'")
		assert.Equal(t, []int64{1}, ids)
	})

	t.Run("field scope excludes other attributes", func(t *testing.T) {
		ids := queryIDs(t,
			"SELECT page_id FROM mycota_fts WHERE cap_shape MATCH 'flat'")
		assert.Equal(t, []int64{1}, ids)
	})
}

func TestRebuildReplacesStore(t *testing.T) {
	cfg := testConfig(t)
	reg := schema.NewRegistry()
	ctx := context.Background()

	commitRecords(t, cfg, reg,
		testRecord(1, "Agaricus campestris", nil))
	commitRecords(t, cfg, reg,
		testRecord(2, "Boletus edulis", nil),
		testRecord(3, "Amanita muscaria", nil))

	db, err := iodb.OpenRead(cfg)
	require.NoError(t, err)
	defer db.Close()

	nRows, _, err := iodb.Counts(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 2, nRows, "rebuild must fully replace earlier records")

	var n int
	err = db.QueryRowContext(ctx,
		"SELECT count(*) FROM mycota WHERE page_id = 1").Scan(&n)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRebuildDeterministic(t *testing.T) {
	cfg := testConfig(t)
	reg := schema.NewRegistry()
	ctx := context.Background()

	recs := []*schema.Record{
		testRecord(1, "Agaricus campestris", map[string][]string{
			"cap_shape": {"convex", "flat"},
		}),
		testRecord(2, "Boletus edulis", map[string][]string{
			"how_edible": {"choice"},
		}),
	}

	build := func() (ddls []string, titles []string) {
		commitRecords(t, cfg, reg, recs...)

		db, err := iodb.OpenRead(cfg)
		require.NoError(t, err)
		defer db.Close()

		ddls, err = iodb.SchemaReport(ctx, db)
		require.NoError(t, err)

		rows, err := db.QueryContext(ctx,
			"SELECT title FROM mycota ORDER BY page_id")
		require.NoError(t, err)
		defer rows.Close()
		for rows.Next() {
			var title string
			require.NoError(t, rows.Scan(&title))
			titles = append(titles, title)
		}
		require.NoError(t, rows.Err())
		return ddls, titles
	}

	ddls1, titles1 := build()
	ddls2, titles2 := build()

	assert.Equal(t, ddls1, ddls2,
		"rebuilding from identical input yields identical schema")
	assert.Equal(t, titles1, titles2)
}

func TestCommitFailureKeepsLiveStore(t *testing.T) {
	cfg := testConfig(t)
	reg := schema.NewRegistry()
	ctx := context.Background()

	commitRecords(t, cfg, reg,
		testRecord(1, "Agaricus campestris", nil))

	// The second build collides on the primary key mid-persist;
	// the failure must never reach the live store.
	store := iodb.NewStore(cfg, reg)
	require.NoError(t, store.Create(ctx))
	for i := 0; i < 2; i++ {
		row, doc := reg.Project(testRecord(2, "Boletus edulis", nil))
		require.NoError(t, store.Insert(ctx, row, doc))
	}
	require.Error(t, store.Commit(ctx))
	require.NoError(t, store.Discard())

	db, err := iodb.OpenRead(cfg)
	require.NoError(t, err)
	defer db.Close()

	nRows, nDocs, err := iodb.Counts(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 1, nRows)
	assert.Equal(t, 1, nDocs)

	var title string
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT title FROM mycota WHERE page_id = 1").Scan(&title))
	assert.Equal(t, "Agaricus campestris", title)
}

func TestDiscardKeepsLiveStore(t *testing.T) {
	cfg := testConfig(t)
	reg := schema.NewRegistry()
	ctx := context.Background()

	commitRecords(t, cfg, reg,
		testRecord(1, "Agaricus campestris", nil))

	// An aborted second build must not disturb the committed store.
	store := iodb.NewStore(cfg, reg)
	require.NoError(t, store.Create(ctx))
	row, doc := reg.Project(testRecord(2, "Boletus edulis", nil))
	require.NoError(t, store.Insert(ctx, row, doc))
	require.NoError(t, store.Discard())

	_, err := os.Stat(config.DBStagingPath(cfg.HomeDir))
	assert.True(t, os.IsNotExist(err), "staging file must be removed")

	db, err := iodb.OpenRead(cfg)
	require.NoError(t, err)
	defer db.Close()

	nRows, nDocs, err := iodb.Counts(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 1, nRows)
	assert.Equal(t, 1, nDocs)
}

func TestOpenReadNotBuilt(t *testing.T) {
	cfg := testConfig(t)

	_, err := iodb.OpenRead(cfg)
	assert.Error(t, err)
}

func TestInsertBeforeCreate(t *testing.T) {
	cfg := testConfig(t)
	reg := schema.NewRegistry()
	ctx := context.Background()

	store := iodb.NewStore(cfg, reg)
	row, doc := reg.Project(testRecord(1, "X", nil))
	assert.Error(t, store.Insert(ctx, row, doc))
	assert.Error(t, store.Commit(ctx))
}

func TestBatchedInserts(t *testing.T) {
	cfg := testConfig(t)
	cfg.Update([]config.Option{config.OptDBBatchSize(2)})
	reg := schema.NewRegistry()
	ctx := context.Background()

	store := iodb.NewStore(cfg, reg)
	require.NoError(t, store.Create(ctx))

	// Odd count forces a partial final batch.
	for i := int64(1); i <= 5; i++ {
		row, doc := reg.Project(testRecord(i, "X", nil))
		require.NoError(t, store.Insert(ctx, row, doc))
	}
	require.NoError(t, store.Commit(ctx))

	db, err := iodb.OpenRead(cfg)
	require.NoError(t, err)
	defer db.Close()

	nRows, nDocs, err := iodb.Counts(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 5, nRows)
	assert.Equal(t, 5, nDocs)
}

func TestFrequencyReport(t *testing.T) {
	cfg := testConfig(t)
	reg := schema.NewRegistry()
	ctx := context.Background()

	commitRecords(t, cfg, reg,
		testRecord(1, "A", map[string][]string{"how_edible": {"choice"}}),
		testRecord(2, "B", map[string][]string{"how_edible": {"choice"}}),
		testRecord(3, "C", map[string][]string{"how_edible": {"unknown"}}),
		testRecord(4, "D", nil),
	)

	db, err := iodb.OpenRead(cfg)
	require.NoError(t, err)
	defer db.Close()

	freqs, err := iodb.FrequencyReport(ctx, db, reg)
	require.NoError(t, err)

	byCol := make(map[string][]iodb.ValueCount)
	for _, cf := range freqs {
		byCol[cf.Column] = cf.Values
	}

	edible := byCol["how_edible_1"]
	require.Len(t, edible, 3)

	counts := make(map[string]int)
	var nullCount int
	for _, vc := range edible {
		if vc.Value.Valid {
			counts[vc.Value.String] = vc.Count
		} else {
			nullCount = vc.Count
		}
	}

	assert.Equal(t, 2, counts["choice"])
	assert.Equal(t, 1, counts["unknown"],
		"literal 'unknown' is a value, not the null bucket")
	assert.Equal(t, 1, nullCount,
		"articles without the trait land in the null bucket")
}

func TestSchemaReport(t *testing.T) {
	cfg := testConfig(t)
	reg := schema.NewRegistry()
	ctx := context.Background()

	commitRecords(t, cfg, reg, testRecord(1, "A", nil))

	db, err := iodb.OpenRead(cfg)
	require.NoError(t, err)
	defer db.Close()

	ddls, err := iodb.SchemaReport(ctx, db)
	require.NoError(t, err)
	require.Len(t, ddls, 2)

	joined := ddls[0] + ddls[1]
	assert.Contains(t, joined, "CREATE TABLE mycota")
	assert.Contains(t, joined, "fts5")
}
