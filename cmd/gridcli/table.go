package main

import (
	"Contact-Search/internal/app/datasource"
	"Contact-Search/internal/app/ds"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
)

const columnsPath = "api/columns"

// loadColumns спрашивает раскладку колонок у сервера; при ошибке
// используется встроенная ds.ColumnDefs.
func loadColumns(ctx context.Context) []ds.ColumnDef {
	columns, err := fetchColumns(ctx)
	if err != nil {
		logrus.Debugf("using built-in columns: %v", err)
		return ds.ColumnDefs
	}
	return columns
}

func fetchColumns(ctx context.Context) ([]ds.ColumnDef, error) {
	base, err := url.Parse(v.GetString("base_url"))
	if err != nil {
		return nil, err
	}
	target := base.ResolveReference(&url.URL{Path: columnsPath}).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: v.GetDuration("timeout")}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", target, resp.StatusCode)
	}

	var columns []ds.ColumnDef
	if err := json.NewDecoder(resp.Body).Decode(&columns); err != nil {
		return nil, err
	}
	return columns, nil
}

// printRows печатает строки таблицей; колонка без поля получает индекс строки
func printRows(out io.Writer, columns []ds.ColumnDef, firstIndex int, rows []datasource.Row) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	headers := make([]string, 0, len(columns))
	for _, col := range columns {
		headers = append(headers, col.HeaderName)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for i, row := range rows {
		cells := make([]string, 0, len(columns))
		for _, col := range columns {
			if col.Field == "" {
				cells = append(cells, fmt.Sprint(firstIndex+i))
				continue
			}
			value, ok := row[col.Field]
			if !ok || value == nil {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, fmt.Sprint(value))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}
