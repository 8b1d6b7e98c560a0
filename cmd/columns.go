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
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/reinderien/mycota/internal/ioalias"
	"github.com/reinderien/mycota/internal/iodb"
)

// getColumnsCmd returns the columns command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getColumnsCmd() *cobra.Command {
	columnsCmd := &cobra.Command{
		Use:   "columns",
		Short: "Report value frequencies per trait column",
		Long: `Report how often each value occurs in every positional slot column,
including a <null> bucket for articles that do not record the trait.

The report is a diagnostic: it surfaces near-duplicate values such as
'conical' next to 'convex' misspellings, but never changes the data.
To reconcile a near-duplicate, add an alias to aliases.yaml and run
'mycota build' again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runColumns()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return columnsCmd
}

func runColumns() error {
	ctx := context.Background()

	reg, err := ioalias.LoadRegistry(cfg)
	if err != nil {
		return err
	}

	db, err := iodb.OpenRead(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	freqs, err := iodb.FrequencyReport(ctx, db, reg)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, cf := range freqs {
		fmt.Fprintf(tw, "%s\n", cf.Column)
		for _, vc := range cf.Values {
			val := "<null>"
			if vc.Value.Valid {
				val = vc.Value.String
			}
			fmt.Fprintf(tw, "  %s\t%d\n", val, vc.Count)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
