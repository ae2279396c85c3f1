package datasource

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

type delivery struct {
	rows    []Row
	lastRow int
}

func TestGetRowsDeliversPage(t *testing.T) {
	srv, requests := newSearchServer(t, http.StatusOK, pageBody(t, 20, 45))
	src := newSource(t, srv.URL)

	done := make(chan delivery, 1)
	src.For(Query{Text: "a", Field: "email"}).GetRows(GetRowsParams{
		StartRow: 20,
		EndRow:   40,
		SuccessCallback: func(rows []Row, lastRow int) {
			done <- delivery{rows: rows, lastRow: lastRow}
		},
	})

	select {
	case got := <-done:
		if len(got.rows) != 20 {
			t.Fatalf("got %d rows, want 20", len(got.rows))
		}
		if got.lastRow != UnknownLastRow {
			t.Fatalf("lastRow = %d, want %d", got.lastRow, UnknownLastRow)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("success callback was not invoked")
	}

	seen := requests()
	if len(seen) != 1 || seen[0].RawQuery != "field=email&offset=1&query=a" {
		t.Fatalf("unexpected requests %+v", seen)
	}
}

func TestGetRowsNeverCallsBackOnErrorStatus(t *testing.T) {
	srv, requests := newSearchServer(t, http.StatusInternalServerError, `{"error":"boom"}`)

	errs := make(chan error, 1)
	src, err := New(Config{BaseURL: srv.URL + "/", OnError: func(err error) { errs <- err }})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	called := make(chan struct{}, 1)
	src.For(Query{Field: FieldAll}).GetRows(GetRowsParams{
		EndRow:          20,
		SuccessCallback: func([]Row, int) { called <- struct{}{} },
	})

	deadline := time.Now().Add(5 * time.Second)
	for len(requests()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if len(requests()) != 1 {
		t.Fatal("request never reached the server")
	}

	select {
	case <-called:
		t.Fatal("success callback invoked for a 500 response")
	case err := <-errs:
		t.Fatalf("OnError invoked for a status failure: %v", err)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestGetRowsReportsDecodeFailures(t *testing.T) {
	srv, _ := newSearchServer(t, http.StatusOK, `not json`)

	errs := make(chan error, 1)
	src, err := New(Config{BaseURL: srv.URL + "/", OnError: func(err error) { errs <- err }})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	src.For(Query{Field: FieldAll}).GetRows(GetRowsParams{
		EndRow:          20,
		SuccessCallback: func([]Row, int) { t.Error("success callback invoked for malformed body") },
	})

	select {
	case err := <-errs:
		if !errors.Is(err, ErrDecode) {
			t.Fatalf("expected ErrDecode, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("decode failure was not reported")
	}
}

func TestForBindsQueryPerDatasource(t *testing.T) {
	srv, requests := newSearchServer(t, http.StatusOK, pageBody(t, 1, 1))
	src := newSource(t, srv.URL)

	first := src.For(Query{Text: "old", Field: FieldAll})
	second := src.For(Query{Text: "new", Field: "city"})

	done := make(chan struct{}, 2)
	cb := func([]Row, int) { done <- struct{}{} }
	first.GetRows(GetRowsParams{EndRow: 20, SuccessCallback: cb})
	second.GetRows(GetRowsParams{EndRow: 20, SuccessCallback: cb})

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("callbacks were not invoked")
		}
	}

	got := map[string]bool{}
	for _, r := range requests() {
		got[r.RawQuery] = true
	}
	for _, want := range []string{"offset=0&query=old", "field=city&offset=0&query=new"} {
		if !got[want] {
			t.Fatalf("missing request %q in %v", want, got)
		}
	}
}
