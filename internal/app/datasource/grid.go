package datasource

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// GetRowsParams mirrors what an infinite-row grid hands its datasource.
type GetRowsParams struct {
	StartRow int
	EndRow   int

	SuccessCallback func(rows []Row, lastRow int)
}

// Datasource is the interface an infinite-row grid consumes.
type Datasource interface {
	GetRows(params GetRowsParams)
}

// DatasourceFunc adapts a function to Datasource.
type DatasourceFunc func(params GetRowsParams)

func (f DatasourceFunc) GetRows(params GetRowsParams) { f(params) }

// For binds q to the source. The grid should receive a fresh Datasource
// whenever the query text or field changes.
func (s *PagedResultsSource) For(q Query) Datasource {
	return DatasourceFunc(func(params GetRowsParams) {
		go s.deliver(params, q)
	})
}

// deliver runs one fetch and reports its outcome the way the grid expects:
// SuccessCallback on success, nothing at all on transport or status
// failures, OnError for undecodable bodies.
func (s *PagedResultsSource) deliver(params GetRowsParams, q Query) {
	page, err := s.FetchPage(context.Background(), PageRequest{EndRow: params.EndRow}, q)
	switch {
	case err == nil:
		if params.SuccessCallback != nil {
			params.SuccessCallback(page.Rows, page.LastRow)
		}
	case errors.Is(err, ErrDecode):
		s.onError(err)
	default:
		logrus.Debugf("datasource: rows %d-%d dropped: %v", params.StartRow, params.EndRow, err)
	}
}
