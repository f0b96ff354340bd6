package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatrelay/application/services"
	"chatrelay/domain/events"
	"chatrelay/infrastructure/persistence/memory"
	apperrors "chatrelay/pkg/errors"
	"chatrelay/pkg/observability"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAssistant struct {
	reply   string
	sendErr error
	pingErr error
}

func (s *stubAssistant) CreateThread(ctx context.Context) (string, error) {
	return "thread-1", nil
}

func (s *stubAssistant) SendMessage(ctx context.Context, threadID, prompt string) (string, error) {
	if s.sendErr != nil {
		return "", s.sendErr
	}
	return s.reply, nil
}

func (s *stubAssistant) Ping(ctx context.Context) error {
	return s.pingErr
}

type nopBus struct{}

func (nopBus) Publish(ctx context.Context, event events.NotificationEvent) error { return nil }

func (nopBus) PublishBatch(ctx context.Context, batch []events.NotificationEvent) error { return nil }

func newTestHandler(assistant *stubAssistant) *ChatHandler {
	svc := services.NewChatService(
		memory.NewThreadStore(),
		memory.NewThreadCache(),
		assistant,
		nopBus{},
		observability.NewMetrics(nil, "Test", false, nil),
		observability.NewTracer("test", false),
		zap.NewNop(),
		"chatrelay-test",
		"app.",
	)
	return NewChatHandler(svc, zap.NewNop())
}

func newTestRouter(assistant *stubAssistant) http.Handler {
	handler := newTestHandler(assistant)
	router := chi.NewRouter()
	router.Get("/chat", handler.Chat)
	router.Get("/mock", handler.Mock)
	router.Get("/ping", handler.Ping)
	router.Get("/status", handler.Status)
	return router
}

func get(t *testing.T, router http.Handler, target string) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	res := rec.Result()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	res.Body.Close()
	return res, string(body)
}

func TestChat_Success(t *testing.T) {
	router := newTestRouter(&stubAssistant{reply: "Hello Ada!"})

	res, body := get(t, router, "/chat?name=Ada&email=ada@example.com&prompt=hi")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/plain")
	assert.Equal(t, "Hello Ada!", body)
}

func TestChat_CapitalizedParams(t *testing.T) {
	router := newTestRouter(&stubAssistant{reply: "ok"})

	res, body := get(t, router, "/chat?Name=Ada&Email=ada@example.com&Prompt=hi")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestChat_MissingParams(t *testing.T) {
	router := newTestRouter(&stubAssistant{reply: "unused"})

	res, body := get(t, router, "/chat?name=Ada")

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "An error has occurred")
}

func TestChat_RunFailure(t *testing.T) {
	router := newTestRouter(&stubAssistant{sendErr: apperrors.NewAssistantRunError("failed")})

	res, body := get(t, router, "/chat?name=Ada&email=ada@example.com&prompt=hi")

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "*ISSUE* **Run Status: failed**", body)
}

func TestChat_AssistantUnreachable(t *testing.T) {
	router := newTestRouter(&stubAssistant{sendErr: io.ErrUnexpectedEOF})

	res, body := get(t, router, "/chat?name=Ada&email=ada@example.com&prompt=hi")

	assert.Equal(t, apperrors.StatusAssistantFailure, res.StatusCode)
	assert.Contains(t, body, "*ISSUE*")
}

func TestMock(t *testing.T) {
	router := newTestRouter(&stubAssistant{reply: "unused"})

	res, body := get(t, router, "/mock?name=Ada&email=ada@example.com&prompt=trains")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Hello, Ada! So you like to talk about trains", body)
}

func TestMock_MissingEmail(t *testing.T) {
	router := newTestRouter(&stubAssistant{})

	res, _ := get(t, router, "/mock?name=Ada&prompt=trains")

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestPing(t *testing.T) {
	router := newTestRouter(&stubAssistant{})

	res, body := get(t, router, "/ping")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "pong", body)
}

func TestStatus(t *testing.T) {
	router := newTestRouter(&stubAssistant{pingErr: io.ErrUnexpectedEOF})

	res, body := get(t, router, "/status")

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var payload map[string]services.Status
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, "bad", payload["chat_service"].Assistant)
	assert.Equal(t, "good", payload["chat_service"].Database)
}
