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

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/reinderien/mycota/internal/iodb"
)

// getSchemaCmd returns the schema command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getSchemaCmd() *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the DDL of both storage structures",
		Long: `Print the schema of the built dataset as recorded by SQLite:
the relational table and the full-text index. Useful before writing
ad-hoc queries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSchema()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return schemaCmd
}

func runSchema() error {
	ctx := context.Background()

	db, err := iodb.OpenRead(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ddls, err := iodb.SchemaReport(ctx, db)
	if err != nil {
		return err
	}

	for _, ddl := range ddls {
		fmt.Printf("%s;\n\n", ddl)
	}
	return nil
}
