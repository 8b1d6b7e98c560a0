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
	"os"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/reinderien/mycota/internal/iodb"
	"github.com/reinderien/mycota/internal/ioquery"
)

// getQueryCmd returns the query command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getQueryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:   "query \"SQL\"",
		Short: "Run a read-only SQL query against the dataset",
		Long: `Run an ad-hoc SELECT against the built dataset.

The store is opened read-only; a build running at the same time cannot
be observed half-written. Two structures are available: the relational
table 'mycota' and the full-text index 'mycota_fts'.

Examples:
  # Column query on the relational table
  mycota query "SELECT title, how_edible FROM mycota WHERE cap_shape = 'convex'"

  # Full-text search, all fields
  mycota query "SELECT title FROM mycota_fts WHERE mycota_fts MATCH 'edible NEAR poisonous'"

  # Full-text search scoped to one trait
  mycota query "SELECT title FROM mycota_fts WHERE spore_print_color MATCH 'brown'"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runQuery(args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return queryCmd
}

func runQuery(query string) error {
	ctx := context.Background()

	db, err := iodb.OpenRead(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return ioquery.Run(ctx, db, query, os.Stdout)
}
