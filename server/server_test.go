package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Luismorlan/sociograph/store"
	"github.com/Luismorlan/sociograph/utils/dotenv"
	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// fakeGraph is a scriptable store.Runner. Responders are matched by query
// substring in registration order; unmatched queries return no rows.
type fakeGraph struct {
	queries    []string
	params     []map[string]any
	responders []responder
}

type responder struct {
	contains string
	fn       func(params map[string]any) ([]store.Row, error)
}

func (f *fakeGraph) Run(ctx context.Context, query string, params map[string]any) ([]store.Row, error) {
	f.queries = append(f.queries, query)
	f.params = append(f.params, params)
	for _, r := range f.responders {
		if strings.Contains(query, r.contains) {
			return r.fn(params)
		}
	}
	return []store.Row{}, nil
}

func (f *fakeGraph) on(contains string, fn func(params map[string]any) ([]store.Row, error)) {
	f.responders = append(f.responders, responder{contains: contains, fn: fn})
}

func (f *fakeGraph) onRows(contains string, rows ...store.Row) {
	f.on(contains, func(map[string]any) ([]store.Row, error) { return rows, nil })
}

func (f *fakeGraph) onErr(contains string, err error) {
	f.on(contains, func(map[string]any) ([]store.Row, error) { return nil, err })
}

// onExists scripts the per-label existence check; ids missing from the map
// are reported as absent.
func (f *fakeGraph) onExists(label string, present map[string]bool) {
	f.on("MATCH (n:"+label+" {id: $id}) RETURN count(n) > 0", func(params map[string]any) ([]store.Row, error) {
		id, _ := params["id"].(string)
		return []store.Row{{"found": present[id]}}, nil
	})
}

func (f *fakeGraph) ran(substr string) bool {
	for _, q := range f.queries {
		if strings.Contains(q, substr) {
			return true
		}
	}
	return false
}

func newTestRouter(f *fakeGraph) *gin.Engine {
	router := gin.New()
	New(f).Register(router)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func userNode(id, name, email string) dbtype.Node {
	return dbtype.Node{Props: map[string]any{
		"id":         id,
		"name":       name,
		"email":      email,
		"created_at": time.Date(2023, 4, 12, 9, 30, 0, 0, time.UTC),
	}}
}

func postNode(id, title, content string) dbtype.Node {
	return dbtype.Node{Props: map[string]any{
		"id":         id,
		"title":      title,
		"content":    content,
		"created_at": time.Date(2023, 4, 12, 9, 30, 0, 0, time.UTC),
	}}
}

func commentNode(id, content string) dbtype.Node {
	return dbtype.Node{Props: map[string]any{
		"id":         id,
		"content":    content,
		"created_at": time.Date(2023, 4, 12, 9, 30, 0, 0, time.UTC),
	}}
}

func TestPing(t *testing.T) {
	router := newTestRouter(&fakeGraph{})

	w := doRequest(t, router, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "pong", decodeBody(t, w)["message"])
}
