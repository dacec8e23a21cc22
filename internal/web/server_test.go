package web

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/corrector/corrector"
	"github.com/Alfex4936/corrector/internal/net"
)

// upstream fakes the correction service.
func upstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, corrector.Path, r.URL.Path)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newPage(t *testing.T, up *httptest.Server) *httptest.Server {
	t.Helper()
	client := corrector.New(net.NewStd(up.Client()), nil, corrector.WithBaseURL(up.URL))
	srv := httptest.NewServer(NewServer(client, nil).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postForm(t *testing.T, srv *httptest.Server, text string) string {
	t.Helper()
	resp, err := http.PostForm(srv.URL+"/check", url.Values{"text": {text}})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func TestIndexServesForm(t *testing.T) {
	page := newPage(t, upstream(t, http.StatusOK, "{}"))

	resp, err := http.Get(page.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `<form method="post" action="/check">`)
}

func TestUnknownPathIsNotFound(t *testing.T) {
	page := newPage(t, upstream(t, http.StatusOK, "{}"))

	resp, err := http.Get(page.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheckRendersResult(t *testing.T) {
	up := upstream(t, http.StatusOK, `{"original":"helo wrld","best_suggestion":"hello world","confidence":82,"grammar_corrected":"Hello world.","per_word":[{"original":"helo","spell_correction":"hello","spell_candidates":["hello","help"],"fuzzy_candidates":[{"word":"hello","score":90}]}]}`)
	body := postForm(t, newPage(t, up), "helo wrld")

	assert.Contains(t, body, `<span class="badge">82%</span>`)
	assert.Contains(t, body, "<h4>helo</h4>")
	assert.Contains(t, body, `value="helo wrld"`)
}

func TestCheckEscapesServerText(t *testing.T) {
	up := upstream(t, http.StatusOK, `{"original":"<script>x()</script>","best_suggestion":"<b>","confidence":1,"grammar_corrected":"a & b"}`)
	body := postForm(t, newPage(t, up), "<script>x()</script>")

	result := body[strings.Index(body, `<div id="result">`):]
	assert.NotContains(t, result, "<script>")
	assert.NotContains(t, result, "<b>")
	assert.Contains(t, result, "&lt;script&gt;x()&lt;/script&gt;")
	assert.Contains(t, result, "a &amp; b")
	assert.NotContains(t, body, `value="<script>`)
}

func TestCheckEmptyInput(t *testing.T) {
	var hits atomic.Int32
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits.Add(1) }))
	defer up.Close()

	body := postForm(t, newPage(t, up), "   ")
	assert.Contains(t, body, corrector.MsgEmptyInput)
	assert.Equal(t, int32(0), hits.Load())
}

func TestCheckLogLevels(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	up := upstream(t, http.StatusInternalServerError, "")
	client := corrector.New(net.NewStd(up.Client()), nil, corrector.WithBaseURL(up.URL))
	srv := httptest.NewServer(NewServer(client, log).Routes())
	defer srv.Close()

	postForm(t, srv, "  ")
	assert.Contains(t, logs.String(), `level=DEBUG msg="check rejected"`)
	assert.NotContains(t, logs.String(), "level=ERROR")

	logs.Reset()
	postForm(t, srv, "helo")
	assert.Contains(t, logs.String(), `level=ERROR msg="check failed"`)
}

func TestCheckUpstreamFailure(t *testing.T) {
	body := postForm(t, newPage(t, upstream(t, http.StatusInternalServerError, "trace")), "helo")

	assert.Contains(t, body, `<p class="error">`)
	assert.Contains(t, body, "Error contacting server")
	assert.NotContains(t, body, "trace")
	assert.NotContains(t, body, "500")
}

func TestCheckRejectsGet(t *testing.T) {
	page := newPage(t, upstream(t, http.StatusOK, "{}"))

	resp, err := http.Get(page.URL + "/check")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok","service":"corrector"}`, rec.Body.String())
}
