package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"codeberg.org/hadithsearch/server/internal/auth"
	"codeberg.org/hadithsearch/server/internal/search"
	"codeberg.org/hadithsearch/server/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	results []store.SearchResult
	err     error

	gotQuery string
	gotPage  int
}

func (f *fakeSearcher) Search(_ context.Context, query string, page int) ([]store.SearchResult, error) {
	f.gotQuery = query
	f.gotPage = page

	if f.err != nil {
		return nil, f.err
	}

	// mimic the real service's validation so handler mapping is exercised
	if strings.TrimSpace(query) == "" {
		return nil, search.ErrEmptyQuery
	}

	if page < 1 {
		return nil, search.ErrInvalidPage
	}

	return f.results, nil
}

type fakeSaver struct {
	saved chan string
	err   error
}

func (f *fakeSaver) Save(_ context.Context, userID, queryText string) (bool, error) {
	if f.saved != nil {
		f.saved <- userID + ":" + queryText
	}

	return f.err == nil, f.err
}

func newTestRouter(searcher Searcher, saver HistorySaver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), searcher, saver)

	return router
}

func doSearch(t *testing.T, router *gin.Engine, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestSearchHandler_Success(t *testing.T) {
	searcher := &fakeSearcher{results: []store.SearchResult{
		{HadithID: "h1", TextEn: "A", Similarity: 0.9},
		{HadithID: "h2", TextEn: "B", Similarity: 0.8},
	}}
	router := newTestRouter(searcher, &fakeSaver{})

	w := doSearch(t, router, `{"query": "faith", "page": 2}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "faith", searcher.gotQuery)
	assert.Equal(t, 2, searcher.gotPage)

	var results []store.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "h1", results[0].HadithID)
	assert.InDelta(t, 0.9, results[0].Similarity, 1e-6)
}

func TestSearchHandler_PageDefaultsToOne(t *testing.T) {
	searcher := &fakeSearcher{}
	router := newTestRouter(searcher, &fakeSaver{})

	w := doSearch(t, router, `{"query": "faith"}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, searcher.gotPage)
}

func TestSearchHandler_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty query", `{"query": "", "page": 1}`},
		{"whitespace query", `{"query": "   ", "page": 1}`},
		{"zero page", `{"query": "faith", "page": 0}`},
		{"negative page", `{"query": "faith", "page": -1}`},
		{"fractional page", `{"query": "faith", "page": 1.5}`},
		{"non-string query", `{"query": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeSearcher{}, &fakeSaver{})

			w := doSearch(t, router, tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestSearchHandler_RetrievalFailure(t *testing.T) {
	searcher := &fakeSearcher{err: search.ErrRetrieval}
	router := newTestRouter(searcher, &fakeSaver{})

	w := doSearch(t, router, `{"query": "faith"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to fetch search results")
}

func TestSearchHandler_EmptyResultsIsJSONArray(t *testing.T) {
	router := newTestRouter(&fakeSearcher{}, &fakeSaver{})

	w := doSearch(t, router, `{"query": "faith"}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSearchHandler_SavesHistoryForLoggedInUser(t *testing.T) {
	os.Setenv( //nolint:errcheck // test fixture
	"JWT_SECRET", "test-secret-key-for-testing")
	defer os.Unsetenv( //nolint:errcheck // test cleanup
	"JWT_SECRET")

	token, err := auth.GenerateJWT("user-42", "test@example.com")
	require.NoError(t, err)

	saver := &fakeSaver{saved: make(chan string, 1)}
	router := newTestRouter(&fakeSearcher{}, saver)

	w := doSearch(t, router, `{"query": "  faith  "}`, map[string]string{
		"Authorization": "Bearer " + token,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	select {
	case got := <-saver.saved:
		assert.Equal(t, "user-42:faith", got, "saved query must be trimmed")
	case <-time.After(2 * time.Second):
		t.Fatal("history save was never dispatched")
	}
}

func TestSearchHandler_NoHistoryForAnonymousUser(t *testing.T) {
	saver := &fakeSaver{saved: make(chan string, 1)}
	router := newTestRouter(&fakeSearcher{}, saver)

	w := doSearch(t, router, `{"query": "faith"}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	select {
	case <-saver.saved:
		t.Fatal("history must not be saved for anonymous users")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSearchHandler_HistoryFailureDoesNotAffectResponse(t *testing.T) {
	os.Setenv( //nolint:errcheck // test fixture
	"JWT_SECRET", "test-secret-key-for-testing")
	defer os.Unsetenv( //nolint:errcheck // test cleanup
	"JWT_SECRET")

	token, err := auth.GenerateJWT("user-42", "test@example.com")
	require.NoError(t, err)

	saver := &fakeSaver{saved: make(chan string, 1), err: assert.AnError}
	searcher := &fakeSearcher{results: []store.SearchResult{{HadithID: "h1"}}}
	router := newTestRouter(searcher, saver)

	w := doSearch(t, router, `{"query": "faith"}`, map[string]string{
		"Authorization": "Bearer " + token,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	<-saver.saved // the save is still attempted
}
