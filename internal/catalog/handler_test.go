package catalog

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, f *fakeUpstream) (*gin.Engine, *Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	store := NewStore()
	loader := NewLoader(store, NewClient(srv.URL), NewEnricher(testCDN), nil)
	h := NewHandler(store, loader, DefaultPerPage)

	router := gin.New()
	h.RegisterRoutes(router.Group("/api"))
	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, path string, out any) int {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w.Code
}

func TestListReturnsEnvelope(t *testing.T) {
	router, _ := newTestRouter(t, newFakeUpstream())

	var res struct {
		Count    int              `json:"count"`
		Next     *string          `json:"next"`
		Previous *string          `json:"previous"`
		Results  []map[string]any `json:"results"`
	}
	code := doJSON(t, router, "/api/people", &res)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, res.Count)
	assert.Nil(t, res.Next)
	assert.Nil(t, res.Previous)
	require.Len(t, res.Results, 2)
	assert.Equal(t, "1", res.Results[0]["id"])
	assert.Equal(t, testCDN+"/characters/1.jpg", res.Results[0]["image"])
}

func TestListSearchFiltering(t *testing.T) {
	router, _ := newTestRouter(t, newFakeUpstream())

	var res struct {
		Count   int              `json:"count"`
		Results []map[string]any `json:"results"`
	}
	code := doJSON(t, router, "/api/people?search=yoda", &res)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, res.Count)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "Yoda", res.Results[0]["name"])
}

func TestListPaginationLinks(t *testing.T) {
	router, _ := newTestRouter(t, newFakeUpstream())

	var res struct {
		Count int     `json:"count"`
		Next  *string `json:"next"`
	}
	code := doJSON(t, router, "/api/people?limit=1", &res)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, res.Count)
	require.NotNil(t, res.Next)
	assert.Equal(t, "http://example.com/api/people?page=2", *res.Next)
}

func TestListUnknownCategory(t *testing.T) {
	router, _ := newTestRouter(t, newFakeUpstream())
	assert.Equal(t, http.StatusNotFound, doJSON(t, router, "/api/wookiees", nil))
}

func TestListDegradesToEmptyPageWhenUpstreamDown(t *testing.T) {
	f := newFakeUpstream()
	f.fail("planets", http.StatusServiceUnavailable)
	router, _ := newTestRouter(t, f)

	var res struct {
		Count   int              `json:"count"`
		Results []map[string]any `json:"results"`
	}
	code := doJSON(t, router, "/api/planets", &res)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, res.Count)
	assert.Empty(t, res.Results)
}

func TestDetailFoundAndNotFound(t *testing.T) {
	router, _ := newTestRouter(t, newFakeUpstream())

	var rec map[string]any
	code := doJSON(t, router, "/api/people/20", &rec)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Yoda", rec["name"])
	assert.NotEmpty(t, rec["id"])
	assert.NotEmpty(t, rec["image"])

	assert.Equal(t, http.StatusNotFound, doJSON(t, router, "/api/people/999", nil))
}

func TestCacheStatus(t *testing.T) {
	router, _ := newTestRouter(t, newFakeUpstream())

	var status map[string]EntryStatus
	code := doJSON(t, router, "/api/cache/status", &status)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, status, len(All))
	assert.False(t, status["people"].Loaded)
	assert.Zero(t, status["people"].Count)

	// warm one category through the detail path, then re-check
	require.Equal(t, http.StatusOK, doJSON(t, router, "/api/people/1", nil))

	status = nil
	doJSON(t, router, "/api/cache/status", &status)
	assert.True(t, status["people"].Loaded)
	assert.Equal(t, 2, status["people"].Count)
}

func TestUniverseLoadsEverything(t *testing.T) {
	router, store := newTestRouter(t, newFakeUpstream())

	var res map[string]struct {
		Count   int              `json:"count"`
		Results []map[string]any `json:"results"`
	}
	code := doJSON(t, router, "/api/universe", &res)

	require.Equal(t, http.StatusOK, code)
	require.Len(t, res, len(All))
	assert.Equal(t, 2, res["people"].Count)
	assert.Equal(t, 4, res["films"].Count) // merged with the sequel set

	for _, cat := range All {
		assert.True(t, store.Loaded(cat), "category %s", cat)
	}
}

// sseEvent is one parsed server-sent event.
type sseEvent struct {
	name string
	data string
}

func readSSE(t *testing.T, body *bufio.Scanner) []sseEvent {
	t.Helper()
	var events []sseEvent
	var current sseEvent
	for body.Scan() {
		line := body.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			current.name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			current.data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		case line == "":
			if current.name != "" || current.data != "" {
				events = append(events, current)
				current = sseEvent{}
			}
		}
	}
	if current.name != "" || current.data != "" {
		events = append(events, current)
	}
	return events
}

func TestStreamColdCategory(t *testing.T) {
	router, _ := newTestRouter(t, newFakeUpstream())
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/people/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", strings.Split(resp.Header.Get("Content-Type"), ";")[0])

	events := readSSE(t, bufio.NewScanner(resp.Body))
	require.NotEmpty(t, events)

	first := events[0]
	assert.Equal(t, "batch", first.name)
	var batch struct {
		Items  []map[string]any `json:"items"`
		Offset int              `json:"offset"`
		Done   bool             `json:"done"`
	}
	require.NoError(t, json.Unmarshal([]byte(first.data), &batch))
	assert.Equal(t, 0, batch.Offset)
	assert.LessOrEqual(t, len(batch.Items), 10)
	assert.False(t, batch.Done)

	last := events[len(events)-1]
	assert.Equal(t, "done", last.name)
	var done struct {
		Total int  `json:"total"`
		Done  bool `json:"done"`
	}
	require.NoError(t, json.Unmarshal([]byte(last.data), &done))
	assert.True(t, done.Done)
	assert.Equal(t, 2, done.Total)

	// the union of all batches reproduces the collection
	seen := map[string]bool{}
	for _, ev := range events[:len(events)-1] {
		require.Equal(t, "batch", ev.name)
		require.NoError(t, json.Unmarshal([]byte(ev.data), &batch))
		for _, item := range batch.Items {
			seen[item["id"].(string)] = true
		}
	}
	assert.Len(t, seen, 2)
}

func TestStreamWithSearch(t *testing.T) {
	router, _ := newTestRouter(t, newFakeUpstream())
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/people/stream?search=yoda")
	require.NoError(t, err)
	defer resp.Body.Close()

	events := readSSE(t, bufio.NewScanner(resp.Body))
	require.NotEmpty(t, events)

	var batch struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(events[0].data), &batch))
	require.Len(t, batch.Items, 1)
	assert.Equal(t, "Yoda", batch.Items[0]["name"])

	var done struct {
		Total int `json:"total"`
	}
	require.Equal(t, "done", events[len(events)-1].name)
	require.NoError(t, json.Unmarshal([]byte(events[len(events)-1].data), &done))
	assert.Equal(t, 1, done.Total)
}

func TestStreamWarmCategoryRemainderBatch(t *testing.T) {
	f := newFakeUpstream()
	// 12 people: first batch of 10, remainder of 2
	var sb strings.Builder
	sb.WriteString("[")
	for i := 1; i <= 12; i++ {
		if i > 1 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"name": "person", "url": "https://swapi.info/api/people/` + string(rune('0'+i%10)) + `"}`)
	}
	sb.WriteString("]")
	f.set("people", sb.String())
	router, _ := newTestRouter(t, f)
	srv := httptest.NewServer(router)
	defer srv.Close()

	// warm it first so the stream takes the already-loaded path
	require.Equal(t, http.StatusOK, doJSON(t, router, "/api/people", nil))

	resp, err := http.Get(srv.URL + "/api/people/stream")
	require.NoError(t, err)
	defer resp.Body.Close()

	events := readSSE(t, bufio.NewScanner(resp.Body))
	require.Len(t, events, 3)
	assert.Equal(t, "batch", events[0].name)
	assert.Equal(t, "batch", events[1].name)
	assert.Equal(t, "done", events[2].name)

	var second struct {
		Items  []map[string]any `json:"items"`
		Offset int              `json:"offset"`
	}
	require.NoError(t, json.Unmarshal([]byte(events[1].data), &second))
	assert.Equal(t, 10, second.Offset)
	assert.Len(t, second.Items, 2)
}
