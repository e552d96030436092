package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/qepting91/subreddit-analyzer/internal/analyzer"
	"github.com/qepting91/subreddit-analyzer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCollector knows one subreddit with one post and two commenters.
type stubCollector struct{}

func (stubCollector) CheckSubreddit(ctx context.Context, sub string) error {
	if sub != "golang" {
		return &domain.StatusError{Code: http.StatusNotFound}
	}
	return nil
}

func (stubCollector) FetchNewPosts(ctx context.Context, sub string, limit int) ([]domain.Post, error) {
	return []domain.Post{{ID: "p1"}}, nil
}

func (stubCollector) FetchComments(ctx context.Context, sub, postID string) ([]domain.Comment, error) {
	return []domain.Comment{
		{Author: "alice", Body: "<b>first</b>"},
		{Author: "bob", Body: "second"},
		{Author: "alice", Body: "third"},
	}, nil
}

func (stubCollector) FetchUser(ctx context.Context, username string) (domain.UserProfile, error) {
	return domain.NewUserProfile(username, "", len(username), ""), nil
}

func newTestServer(t *testing.T) (*gin.Engine, *analyzer.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := analyzer.NewService(context.Background(), analyzer.NewPipeline(stubCollector{}, logger), analyzer.NewStore())
	return NewServer(svc, []string{"golang", "netsec"}, logger).Router(), svc
}

func do(router http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func analyze(t *testing.T, router http.Handler, svc *analyzer.Service, sub string) {
	t.Helper()
	w := do(router, http.MethodPost, "/analyze", url.Values{"subreddit": {sub}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	svc.Wait()
}

func TestIndex_Idle(t *testing.T) {
	router, _ := newTestServer(t)

	w := do(router, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Reddit Subreddit Analyzer")
	assert.Contains(t, body, `<option value="netsec">`)
	assert.NotContains(t, body, "<table>")
	assert.NotContains(t, body, "Loading...")
}

func TestAnalyze_RendersTable(t *testing.T) {
	router, svc := newTestServer(t)
	analyze(t, router, svc, "golang")

	w := do(router, http.MethodGet, "/", nil)
	body := w.Body.String()

	assert.Contains(t, body, "<table>")
	assert.Contains(t, body, "&lt;b&gt;first&lt;/b&gt;")
	assert.Contains(t, body, domain.BioPlaceholder)
	assert.Less(t, strings.Index(body, ">alice<"), strings.Index(body, ">bob<"))
	assert.Less(t, strings.Index(body, "first"), strings.Index(body, "third"))
}

func TestAnalyze_ShowsError(t *testing.T) {
	router, svc := newTestServer(t)
	analyze(t, router, svc, "missing")

	body := do(router, http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, body, `<p class="error">subreddit not found</p>`)
	assert.NotContains(t, body, "<table>")
}

func TestAnalyze_EmptyName(t *testing.T) {
	router, _ := newTestServer(t)

	w := do(router, http.MethodPost, "/analyze", url.Values{"subreddit": {"   "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestState_JSON(t *testing.T) {
	router, svc := newTestServer(t)

	w := do(router, http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var idle stateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &idle))
	assert.Equal(t, analyzer.StatusIdle, idle.Status)
	assert.Empty(t, idle.Rows)

	analyze(t, router, svc, "golang")

	var st stateResponse
	require.NoError(t, json.Unmarshal(do(router, http.MethodGet, "/api/state", nil).Body.Bytes(), &st))
	assert.Equal(t, analyzer.StatusSuccess, st.Status)
	assert.Equal(t, "golang", st.Query)
	require.Len(t, st.Rows, 2)
	assert.Equal(t, "alice", st.Rows[0].Profile.Username)
	assert.Len(t, st.Rows[0].Comments, 2)
	assert.Equal(t, 5, st.Rows[0].Profile.PostKarma)
}

func TestExport_NDJSON(t *testing.T) {
	router, svc := newTestServer(t)
	analyze(t, router, svc, "golang")

	w := do(router, http.MethodGet, "/export.ndjson", nil)
	assert.Equal(t, "application/x-ndjson", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 2)
}

func TestChart(t *testing.T) {
	router, svc := newTestServer(t)

	w := do(router, http.MethodGet, "/chart", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	analyze(t, router, svc, "golang")
	w = do(router, http.MethodGet, "/chart", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "echarts")
	assert.Contains(t, w.Body.String(), "westeros")
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := newTestServer(t)

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/healthz", nil).Code)

	w := do(router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
