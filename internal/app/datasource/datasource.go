// Package datasource feeds an infinite-row results grid from the search API.
//
// A PagedResultsSource turns a requested row range into a page offset, issues
// one GET against the search endpoint and hands the rows back together with
// the grid's lastRow marker. It keeps no state between calls: callers build a
// new Datasource with For whenever the query text or field changes.
package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultBlockSize is the number of rows fetched per page.
	DefaultBlockSize = 20
	// DefaultEndpoint is resolved relative to Config.BaseURL.
	DefaultEndpoint = "search"

	// FieldAll disables the field restriction.
	FieldAll = "all"
	// UnknownLastRow tells the grid that more pages may exist.
	UnknownLastRow = -1
)

var (
	ErrUnexpectedStatus = errors.New("datasource: unexpected response status")
	ErrDecode           = errors.New("datasource: malformed response body")
	ErrMisaligned       = errors.New("datasource: end row is not a positive multiple of the block size")
)

// StatusError is returned by FetchPage for any status other than 200.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnexpectedStatus.Error(), e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// Row is one result row, passed through exactly as the server sent it.
type Row map[string]any

// Query is the user's search input.
type Query struct {
	Text  string
	Field string
}

// PageRequest asks for the block that ends at EndRow (exclusive).
type PageRequest struct {
	EndRow int
}

// Page is one delivered block.
type Page struct {
	Rows    []Row
	LastRow int
	Total   int
}

// Config replaces the grid-wide globals of a browser integration. BlockSize
// must equal the block size of the grid that drives the source, or pages are
// fetched out of alignment.
type Config struct {
	BaseURL   string
	Endpoint  string
	BlockSize int

	// Timeout applies only when HTTPClient is nil. Zero leaves timeouts to
	// the transport defaults.
	Timeout    time.Duration
	HTTPClient *http.Client

	// OnError receives decode failures from GetRows. Transport errors and
	// non-200 responses are dropped. Defaults to logging.
	OnError func(error)
}

// PagedResultsSource fetches fixed-size blocks of search results over HTTP.
type PagedResultsSource struct {
	base      *url.URL
	endpoint  string
	blockSize int
	client    *http.Client
	onError   func(error)
}

// searchParams is the wire form of a page request. Field is a pointer so that
// FieldAll omits the parameter while any other value, even "", is sent.
type searchParams struct {
	Query  string  `url:"query"`
	Offset int     `url:"offset"`
	Field  *string `url:"field,omitempty"`
}

type searchResponse struct {
	Results []Row `json:"results"`
	Total   int   `json:"total"`
}

// New returns a source for cfg, filling unset fields with defaults.
func New(cfg Config) (*PagedResultsSource, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("datasource: invalid base url %q: %w", cfg.BaseURL, err)
	}

	s := &PagedResultsSource{
		base:      base,
		endpoint:  cfg.Endpoint,
		blockSize: cfg.BlockSize,
		client:    cfg.HTTPClient,
		onError:   cfg.OnError,
	}
	if s.endpoint == "" {
		s.endpoint = DefaultEndpoint
	}
	if s.blockSize <= 0 {
		s.blockSize = DefaultBlockSize
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: cfg.Timeout}
	}
	if s.onError == nil {
		s.onError = func(err error) {
			logrus.WithError(err).Error("datasource: page could not be delivered")
		}
	}
	return s, nil
}

// BlockSize returns the number of rows per request.
func (s *PagedResultsSource) BlockSize() int { return s.blockSize }

// Offset returns the zero-based page index for a block ending at endRow.
func (s *PagedResultsSource) Offset(endRow int) int {
	return endRow/s.blockSize - 1
}

// LastRow returns total once the requested range reaches the end of the
// results and UnknownLastRow otherwise.
func LastRow(total, endRow int) int {
	if total <= endRow {
		return total
	}
	return UnknownLastRow
}

// Values builds the query string for one page.
func (s *PagedResultsSource) Values(req PageRequest, q Query) (url.Values, error) {
	params := searchParams{
		Query:  q.Text,
		Offset: s.Offset(req.EndRow),
	}
	if q.Field != FieldAll {
		field := q.Field
		params.Field = &field
	}
	return query.Values(params)
}

// URL returns the absolute request URL for one page.
func (s *PagedResultsSource) URL(req PageRequest, q Query) (string, error) {
	values, err := s.Values(req, q)
	if err != nil {
		return "", err
	}
	ref := &url.URL{Path: s.endpoint, RawQuery: values.Encode()}
	return s.base.ResolveReference(ref).String(), nil
}

// FetchPage issues exactly one GET for the block ending at req.EndRow.
// Overlapping calls are independent and may complete in any order.
func (s *PagedResultsSource) FetchPage(ctx context.Context, req PageRequest, q Query) (Page, error) {
	if req.EndRow <= 0 || req.EndRow%s.blockSize != 0 {
		return Page{}, fmt.Errorf("%w: end row %d, block size %d", ErrMisaligned, req.EndRow, s.blockSize)
	}

	target, err := s.URL(req, q)
	if err != nil {
		return Page{}, fmt.Errorf("datasource: build query: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Page{}, fmt.Errorf("datasource: create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return Page{}, fmt.Errorf("datasource: GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Page{}, &StatusError{StatusCode: resp.StatusCode}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Page{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	logrus.Debugf("datasource: fetched %d rows for end row %d (total %d)", len(body.Results), req.EndRow, body.Total)

	return Page{
		Rows:    body.Results,
		LastRow: LastRow(body.Total, req.EndRow),
		Total:   body.Total,
	}, nil
}
