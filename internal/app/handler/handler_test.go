package handler

import (
	"Contact-Search/internal/app/config"
	"Contact-Search/internal/app/ds"
	"Contact-Search/internal/app/repository"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func seedContacts(n int) []ds.Contact {
	records := make([]ds.ContactRecord, n)
	for i := range records {
		city := "Berlin"
		if i%3 == 0 {
			city = "Paris"
		}
		records[i] = ds.ContactRecord{
			Name:       fmt.Sprintf("Contact %02d", i),
			Email:      fmt.Sprintf("contact%02d@example.com", i),
			Company:    "Acme",
			City:       city,
			Country:    "Europe",
			JobHistory: []string{"Initech", "Globex"},
		}
	}
	return ds.ContactsFromRecords(records)
}

func newTestRouter(t *testing.T, contacts []ds.Contact) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &repository.Repository{
		Contact: repository.NewSnapshotRepository(contacts),
	}
	router := gin.New()
	RegisterHandlers(router, repo, &config.Config{BlockSize: config.DefaultBlockSize})
	return router
}

func doGet(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decodeSearch(t *testing.T, w *httptest.ResponseRecorder) ds.SearchResponse {
	t.Helper()
	var resp ds.SearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestSearchDefaults(t *testing.T) {
	router := newTestRouter(t, seedContacts(45))

	w := doGet(router, "/search")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	resp := decodeSearch(t, w)
	if resp.Total != 45 || len(resp.Results) != 20 {
		t.Fatalf("got %d results of %d, want 20 of 45", len(resp.Results), resp.Total)
	}
	if resp.Results[0].Name != "Contact 00" {
		t.Fatalf("first result = %q", resp.Results[0].Name)
	}
	if resp.Results[0].JobHistory != "Initech, Globex" {
		t.Fatalf("job history = %q", resp.Results[0].JobHistory)
	}
}

func TestSearchResponseShape(t *testing.T) {
	router := newTestRouter(t, seedContacts(1))

	w := doGet(router, "/search")
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := raw["results"]; !ok {
		t.Fatalf("response lacks results: %s", w.Body.String())
	}
	if _, ok := raw["total"]; !ok {
		t.Fatalf("response lacks total: %s", w.Body.String())
	}

	var rows []map[string]any
	if err := json.Unmarshal(raw["results"], &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	for _, key := range []string{"name", "email", "company", "city", "country", "job_history"} {
		if _, ok := rows[0][key]; !ok {
			t.Fatalf("row lacks %q: %v", key, rows[0])
		}
	}
}

func TestSearchFieldAndPaging(t *testing.T) {
	router := newTestRouter(t, seedContacts(45))

	w := doGet(router, "/search?query=PARIS&field=city&offset=0")
	resp := decodeSearch(t, w)
	// i%3 == 0 for i in [0, 45) gives 15 contacts
	if resp.Total != 15 || len(resp.Results) != 15 {
		t.Fatalf("got %d results of %d, want 15 of 15", len(resp.Results), resp.Total)
	}

	w = doGet(router, "/search?size=10&offset=4")
	resp = decodeSearch(t, w)
	if resp.Total != 45 || len(resp.Results) != 5 || resp.Results[0].Name != "Contact 40" {
		t.Fatalf("unexpected last page: total %d, %d rows", resp.Total, len(resp.Results))
	}
}

func TestSearchRejectsBadParameters(t *testing.T) {
	router := newTestRouter(t, seedContacts(45))

	tests := []struct {
		target string
		status int
	}{
		{"/search?field=all", http.StatusUnprocessableEntity},
		{"/search?field=", http.StatusUnprocessableEntity},
		{"/search?field=phone", http.StatusUnprocessableEntity},
		{"/search?offset=abc", http.StatusBadRequest},
		{"/search?offset=-1", http.StatusBadRequest},
		{"/search?size=0", http.StatusBadRequest},
		{"/search?offset=3", http.StatusBadRequest},
		{fmt.Sprintf("/search?size=%d", ds.MaxPageSize+1), http.StatusBadRequest},
		// size*offset переполняет int64
		{"/search?size=4611686018427387904&offset=4", http.StatusBadRequest},
		{"/search?size=4611686018427387904&offset=2", http.StatusBadRequest},
		{"/search?size=2&offset=9223372036854775807", http.StatusBadRequest},
	}

	for _, tt := range tests {
		w := doGet(router, tt.target)
		if w.Code != tt.status {
			t.Errorf("GET %s = %d, want %d (body %s)", tt.target, w.Code, tt.status, w.Body.String())
		}
	}
}

func TestSearchMaxPageSize(t *testing.T) {
	router := newTestRouter(t, seedContacts(45))

	w := doGet(router, fmt.Sprintf("/search?size=%d&offset=0", ds.MaxPageSize))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if resp := decodeSearch(t, w); resp.Total != 45 || len(resp.Results) != 45 {
		t.Fatalf("got %d results of %d, want 45 of 45", len(resp.Results), resp.Total)
	}
}

func TestCountsAsNewSearch(t *testing.T) {
	tests := []struct {
		params repository.SearchParams
		want   bool
	}{
		{repository.SearchParams{Query: "smith", Offset: 0}, true},
		{repository.SearchParams{Query: "smith", Offset: 1}, false},
		{repository.SearchParams{Query: "", Offset: 0}, false},
	}
	for _, tt := range tests {
		if got := countsAsNewSearch(tt.params); got != tt.want {
			t.Errorf("countsAsNewSearch(%+v) = %v, want %v", tt.params, got, tt.want)
		}
	}
}

func TestSearchOffsetAtExactEnd(t *testing.T) {
	router := newTestRouter(t, seedContacts(40))

	w := doGet(router, "/search?offset=2")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := decodeSearch(t, w)
	if resp.Total != 40 || len(resp.Results) != 0 {
		t.Fatalf("got %d results of %d, want 0 of 40", len(resp.Results), resp.Total)
	}
}

func TestColumns(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doGet(router, "/api/columns")
	var cols []ds.ColumnDef
	if err := json.Unmarshal(w.Body.Bytes(), &cols); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cols) != len(ds.ColumnDefs) || cols[1].Field != ds.FieldName {
		t.Fatalf("unexpected columns %+v", cols)
	}
}

func TestIndexPage(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doGet(router, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`id="results-grid"`, `"blockSize":20`, `"headerName":"Job History"`, `value="job_history"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("page lacks %q", want)
		}
	}

	w = doGet(router, "/static/js/data-grid.js")
	if w.Code != http.StatusOK {
		t.Fatalf("static asset status = %d", w.Code)
	}
}

func TestStatsWithoutRedis(t *testing.T) {
	router := newTestRouter(t, seedContacts(5))

	// Без Redis поиск работает, статистика пустая
	if w := doGet(router, "/search?query=contact"); w.Code != http.StatusOK {
		t.Fatalf("search status = %d", w.Code)
	}

	w := doGet(router, "/api/stats/queries")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("stats = %d %s, want 200 []", w.Code, w.Body.String())
	}

	if w := doGet(router, "/api/stats/queries?limit=0"); w.Code != http.StatusBadRequest {
		t.Fatalf("limit=0 status = %d, want 400", w.Code)
	}
}

func TestUploadDatasetWithoutStorage(t *testing.T) {
	router := newTestRouter(t, seedContacts(5))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("dataset", "contacts.json")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write([]byte(`[{"name": "Eve"}]`))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/dataset", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

type failingStore struct{}

func (failingStore) Search(context.Context, repository.SearchParams) ([]ds.Contact, int, error) {
	return nil, 0, errors.New("search unavailable")
}

func (failingStore) Replace(context.Context, []ds.Contact) error {
	return errors.New("replace failed")
}

func newDatasetUpload(t *testing.T, body string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("dataset", "contacts.json")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write([]byte(body))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/dataset", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// Если поиск не принял датасет, в MinIO ничего не пишется
func TestUploadDatasetNotStoredWhenReloadFails(t *testing.T) {
	var storageCalls atomic.Int32
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		storageCalls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer storage.Close()

	minioClient, err := minio.New(strings.TrimPrefix(storage.URL, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Secure: false,
	})
	if err != nil {
		t.Fatalf("minio client: %v", err)
	}

	gin.SetMode(gin.TestMode)
	repo := &repository.Repository{
		Contact: failingStore{},
		Dataset: repository.NewDatasetRepository(minioClient, "contacts", "contacts.json"),
	}
	router := gin.New()
	RegisterHandlers(router, repo, &config.Config{BlockSize: config.DefaultBlockSize})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, newDatasetUpload(t, `[{"name": "Eve"}]`))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if n := storageCalls.Load(); n != 0 {
		t.Fatalf("object storage received %d requests, want none", n)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, newDatasetUpload(t, `{"name": "Eve"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid dataset status = %d, want 400", w.Code)
	}
}
