package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartpick/smartpick/internal/gateway"
	"github.com/smartpick/smartpick/internal/logger"
	"github.com/smartpick/smartpick/internal/orchestrator"
	"github.com/smartpick/smartpick/pkg/kv"
	"github.com/smartpick/smartpick/pkg/sdk"
	"github.com/smartpick/smartpick/pkg/session"
	"github.com/smartpick/smartpick/pkg/utils"
)

type fakeGenerator struct {
	reply string
}

func (f *fakeGenerator) GenerateText(context.Context, string) (string, error) {
	return f.reply, nil
}

type fakeSearcher struct {
	products []gateway.Product
	err      error
}

func (f *fakeSearcher) SearchProducts(context.Context, string) ([]gateway.Product, error) {
	return f.products, f.err
}

func newTestEngine(t *testing.T, values map[string]string) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewStore(kv.NewMemoryStore(), logger.Nop())
	orch := orchestrator.New(store,
		&fakeGenerator{reply: "**Hello** from the assistant"},
		&fakeSearcher{products: []gateway.Product{{Name: "Widget", Price: "$5", Rating: "4.0", URL: "https://example.com"}}},
		logger.Nop())

	return NewEngine(utils.NewConfig(values), orch, store), store
}

func doRequest(engine *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	w := doRequest(engine, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"OK"`)
}

func TestPostMessage(t *testing.T) {
	engine, store := newTestEngine(t, nil)

	w := doRequest(engine, http.MethodPost, "/api/chat/message",
		sdk.PostMessageRequest{Text: "hello there"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out sdk.ApiResponse[sdk.PostMessageResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, sdk.StatusSuccess, out.Status)
	assert.Equal(t, "**Hello** from the assistant", out.Data.Reply)
	assert.Contains(t, out.Data.HTML, "<strong>Hello</strong>")
	assert.False(t, out.Data.Failed)
	assert.NotZero(t, out.Data.SessionID)

	assert.Equal(t, 1, store.Len())
}

func TestPostMessage_EmptyTextRejected(t *testing.T) {
	engine, store := newTestEngine(t, nil)

	w := doRequest(engine, http.MethodPost, "/api/chat/message",
		sdk.PostMessageRequest{Text: "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, store.Len())
}

func TestPostMessage_MalformedBodyRejected(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/message", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionsAndTranscript(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	doRequest(engine, http.MethodPost, "/api/chat/message", sdk.PostMessageRequest{Text: "first"}, nil)

	w := doRequest(engine, http.MethodGet, "/api/chat/sessions", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var sessions sdk.ApiResponse[[]sdk.SessionSummary]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sessions))
	require.Len(t, sessions.Data, 1)
	assert.Equal(t, 2, sessions.Data[0].Turns)

	w = doRequest(engine, http.MethodGet, "/api/chat/sessions/0", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var transcript sdk.ApiResponse[[]sdk.TranscriptMessage]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &transcript))
	require.Len(t, transcript.Data, 2)
	assert.Equal(t, "first", transcript.Data[0].Text)
	assert.Equal(t, "user", transcript.Data[0].Sender)

	// Out of range and non-numeric indexes
	assert.Equal(t, http.StatusNotFound, doRequest(engine, http.MethodGet, "/api/chat/sessions/7", nil, nil).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(engine, http.MethodGet, "/api/chat/sessions/abc", nil, nil).Code)
}

func TestClearHistory(t *testing.T) {
	engine, store := newTestEngine(t, nil)

	doRequest(engine, http.MethodPost, "/api/chat/message", sdk.PostMessageRequest{Text: "hello"}, nil)
	require.Equal(t, 1, store.Len())

	w := doRequest(engine, http.MethodDelete, "/api/chat/history", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, store.Len())
}

func TestApiKeyGuard(t *testing.T) {
	engine, _ := newTestEngine(t, map[string]string{"API_KEY": "secret"})

	// Health stays open, chat routes are guarded
	assert.Equal(t, http.StatusOK, doRequest(engine, http.MethodGet, "/api/health", nil, nil).Code)

	w := doRequest(engine, http.MethodGet, "/api/chat/sessions", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(engine, http.MethodGet, "/api/chat/sessions", nil, map[string]string{"X-API-KEY": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)
}
