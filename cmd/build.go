/*
Copyright © 2026 Reinderien

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/reinderien/mycota/internal/ioalias"
	"github.com/reinderien/mycota/internal/iobuild"
	"github.com/reinderien/mycota/internal/iodb"
	"github.com/reinderien/mycota/internal/iowiki"
	"github.com/reinderien/mycota/pkg/config"
	"github.com/reinderien/mycota/pkg/mycota"
)

// getBuildCmd returns the build command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getBuildCmd() *cobra.Command {
	var (
		inputFile string
		jobsNum   int
	)

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build the dataset from Wikipedia Mycomorphbox articles",
		Long: `Build the mushroom trait dataset from scratch.

This command:
  1. Lists every article transcluding Template:Mycomorphbox
  2. Fetches raw wikitext in batches
  3. Parses the infobox and normalizes trait values into slots
  4. Writes the relational table and the full-text index together
  5. Atomically replaces the previous dataset on success

A failed or interrupted build never touches the previous dataset.
Articles without a recognizable infobox are skipped and counted.

Examples:
  # Build from the live Wikipedia API
  mycota build

  # Build from a local JSON dump of pages
  mycota build --input pages.json

  # Limit parser workers
  mycota build --jobs 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBuild(cmd, inputFile, jobsNum)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	buildCmd.Flags().StringVarP(
		&inputFile, "input", "i", "",
		"read pages from a local JSON dump instead of the API",
	)
	buildCmd.Flags().IntVarP(
		&jobsNum, "jobs", "j", 0,
		"number of parser workers (default: number of CPUs)",
	)

	return buildCmd
}

func runBuild(cmd *cobra.Command, inputFile string, jobsNum int) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// Build options from explicitly set flags
	var buildOpts []config.Option

	if cmd.Flags().Changed("input") {
		buildOpts = append(buildOpts, config.OptBuildInputFile(inputFile))
	}
	if cmd.Flags().Changed("jobs") {
		buildOpts = append(buildOpts, config.OptJobsNumber(jobsNum))
	}
	if len(buildOpts) > 0 {
		cfg.Update(buildOpts)
	}

	reg, err := ioalias.LoadRegistry(cfg)
	if err != nil {
		return err
	}

	var src mycota.Source
	if cfg.Build.InputFile != "" {
		gn.Info("Reading pages from <em>%s</em>", cfg.Build.InputFile)
		src = iowiki.NewDump(cfg.Build.InputFile)
	} else {
		gn.Info("Fetching pages from <em>%s</em>", cfg.Wiki.APIURL)
		src = iowiki.New(cfg)
	}

	store := iodb.NewStore(cfg, reg)
	builder := iobuild.New(cfg, reg, store)

	stats, err := builder.Build(ctx, src)
	if err != nil {
		return err
	}

	reportStats(stats)

	gn.Info(`Next steps:
	 - Run '<em>mycota columns</em>' to audit trait value frequencies
	 - Run '<em>mycota query</em>' to search the dataset
`)

	return nil
}

func reportStats(stats *mycota.BuildStats) {
	gn.Message("Fetched articles:  %s",
		humanize.Comma(int64(stats.Fetched)))
	gn.Message("Records stored:    %s",
		humanize.Comma(int64(stats.Records)))
	gn.Message("Articles skipped:  %s",
		humanize.Comma(int64(stats.Skipped)))

	if len(stats.SkippedIDs) > 0 {
		slog.Info("Skipped articles", "pageids", stats.SkippedIDs)
	}

	for attr, n := range stats.Overflow {
		gn.Warn("<warn>Dropped %d surplus value(s) of '%s'</warn>", n, attr)
	}
}
