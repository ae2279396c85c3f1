package main

import (
	"Contact-Search/internal/app/datasource"
	"fmt"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the single block that ends at --end-row",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := newSource()
		if err != nil {
			return err
		}

		endRow, _ := cmd.Flags().GetInt("end-row")
		if endRow == 0 {
			endRow = src.BlockSize()
		}

		page, err := src.FetchPage(cmd.Context(), datasource.PageRequest{EndRow: endRow}, currentQuery())
		if err != nil {
			return err
		}

		columns := loadColumns(cmd.Context())
		out := cmd.OutOrStdout()
		if err := printRows(out, columns, endRow-src.BlockSize(), page.Rows); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nlastRow: %d\n", page.LastRow)
		return nil
	},
}

func init() {
	fetchCmd.Flags().Int("end-row", 0, "exclusive end row of the block (default: one block)")
}
