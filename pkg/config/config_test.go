package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reinderien/mycota/pkg/config"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "mycota"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "mycota"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "mycota", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "mycota", "config.yaml"),
		},
		{
			msg: "alias file",
			fn:  config.AliasFilePath,
			res: filepath.Join(tempHome, ".config", "mycota", "aliases.yaml"),
		},
		{
			msg: "live store",
			fn:  config.DBPath,
			res: filepath.Join(tempHome, ".cache", "mycota", "mycota.db"),
		},
		{
			msg: "staging store",
			fn:  config.DBStagingPath,
			res: filepath.Join(tempHome, ".cache", "mycota", "mycota.db.build"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Wiki defaults
		assert.Equal(t, "https://en.wikipedia.org/w/api.php", cfg.Wiki.APIURL)
		assert.Equal(t, "Mycomorphbox", cfg.Wiki.Template)
		assert.Equal(t, 500, cfg.Wiki.ListChunk)
		assert.Equal(t, 50, cfg.Wiki.PageChunk)

		// Store defaults
		assert.Equal(t, 500, cfg.DB.BatchSize)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		assert.Greater(t, cfg.JobsNumber, 0)

		// Runtime-only fields start empty
		assert.Empty(t, cfg.Build.InputFile)
		assert.Empty(t, cfg.HomeDir)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("applies valid options", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptWikiPageChunk(25),
			config.OptDBBatchSize(100),
			config.OptLogLevel("debug"),
			config.OptJobsNumber(4),
			config.OptBuildInputFile("pages.json"),
			config.OptHomeDir("/tmp/home"),
		})

		assert.Equal(t, 25, cfg.Wiki.PageChunk)
		assert.Equal(t, 100, cfg.DB.BatchSize)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 4, cfg.JobsNumber)
		assert.Equal(t, "pages.json", cfg.Build.InputFile)
		assert.Equal(t, "/tmp/home", cfg.HomeDir)
	})

	t.Run("rejects invalid values, keeping config valid", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptWikiAPIURL(""),
			config.OptDBBatchSize(-5),
			config.OptLogLevel("verbose"),
		})

		assert.Equal(t, "https://en.wikipedia.org/w/api.php", cfg.Wiki.APIURL)
		assert.Equal(t, 500, cfg.DB.BatchSize)
		assert.Equal(t, "info", cfg.Log.Level)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("round-trips persistent fields", func(t *testing.T) {
		orig := config.New()
		orig.Update([]config.Option{
			config.OptWikiPageChunk(10),
			config.OptLogFormat("text"),
		})

		cfg := config.New()
		cfg.Update(orig.ToOptions())

		assert.Equal(t, 10, cfg.Wiki.PageChunk)
		assert.Equal(t, "text", cfg.Log.Format)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		orig := config.New()
		orig.Update([]config.Option{
			config.OptBuildInputFile("pages.json"),
			config.OptHomeDir("/tmp/home"),
		})

		cfg := config.New()
		cfg.Update(orig.ToOptions())

		assert.Empty(t, cfg.Build.InputFile)
		assert.Empty(t, cfg.HomeDir)
	})
}
