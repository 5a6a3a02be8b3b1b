package routes_test

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bluehands/branchfinder/internal/adapters/export"
	"github.com/bluehands/branchfinder/internal/api/handlers"
	"github.com/bluehands/branchfinder/internal/api/routes"
	"github.com/bluehands/branchfinder/internal/application/services"
	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSearcher struct{}

func (fixedSearcher) Search(ctx context.Context, req services.SearchRequest) *entities.SearchResult {
	return &entities.SearchResult{Status: entities.SearchStatusNoResults}
}

func (fixedSearcher) ListRegions(ctx context.Context) *entities.RegionList {
	return &entities.RegionList{All: entities.RegionAll, Regions: []string{"서울"}}
}

type panickingSearcher struct{ fixedSearcher }

func (panickingSearcher) Search(context.Context, services.SearchRequest) *entities.SearchResult {
	panic("search exploded")
}

func newTestRouter() http.Handler {
	return newRouterWith(fixedSearcher{})
}

func newRouterWith(searcher handlers.BranchSearcher) http.Handler {
	r := routes.NewRouter(
		handlers.NewBranchHandler(searcher, export.NewExcelExporter()),
		handlers.NewHealthHandler(nil),
		[]string{"*"},
		nil,
	)
	return r.SetupRoutes()
}

func TestRouter_Routes(t *testing.T) {
	h := newTestRouter()

	cases := []struct {
		method string
		target string
		status int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/api/capabilities", http.StatusOK},
		{"GET", "/api/regions", http.StatusOK},
		{"GET", "/api/branches/search?region=서울", http.StatusOK},
		{"GET", "/api/branches/search?capability=bogus", http.StatusBadRequest},
		{"POST", "/api/branches/search", http.StatusMethodNotAllowed},
		{"GET", "/api/unknown", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(tc.method, tc.target, nil))
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestRouter_SearchIsNotCacheable(t *testing.T) {
	h := newTestRouter()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/branches/search?region=서울", nil))

	assert.Equal(t, "private, no-store", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), "no_results")
}

func TestRouter_PanicWithGzipReturnsCompressed500(t *testing.T) {
	h := newRouterWith(panickingSearcher{})

	req := httptest.NewRequest("GET", "/api/branches/search?region=서울", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"internal server error"}`, string(body))
}
