package main

import (
	"Contact-Search/internal/app/datasource"
	"fmt"

	"github.com/spf13/cobra"
)

var scrollCmd = &cobra.Command{
	Use:   "scroll",
	Short: "Fetch consecutive blocks until the server reports the last row",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := newSource()
		if err != nil {
			return err
		}
		maxBlocks, _ := cmd.Flags().GetInt("max-blocks")

		query := currentQuery()
		columns := loadColumns(cmd.Context())
		out := cmd.OutOrStdout()

		var rows []datasource.Row
		lastRow := datasource.UnknownLastRow
		for block := 1; maxBlocks <= 0 || block <= maxBlocks; block++ {
			endRow := block * src.BlockSize()
			page, err := src.FetchPage(cmd.Context(), datasource.PageRequest{EndRow: endRow}, query)
			if err != nil {
				return fmt.Errorf("block %d: %w", block, err)
			}
			rows = append(rows, page.Rows...)
			lastRow = page.LastRow
			if lastRow != datasource.UnknownLastRow {
				break
			}
		}

		if err := printRows(out, columns, 0, rows); err != nil {
			return err
		}
		if lastRow == datasource.UnknownLastRow {
			fmt.Fprintf(out, "\n%d rows shown, more available\n", len(rows))
		} else {
			fmt.Fprintf(out, "\n%d of %d rows\n", len(rows), lastRow)
		}
		return nil
	},
}

func init() {
	scrollCmd.Flags().Int("max-blocks", 0, "stop after this many blocks (0: until the last row)")
}
