package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"prompthash.backend/internal/infrastructure/gateway"
	"prompthash.backend/internal/usecases"
)

func newAssistRouter(t *testing.T, upstream http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	client := gateway.NewAssistClient(srv.URL, "gemini-2.5-flash", 5*time.Second)
	handler := NewAssistHandler(usecases.NewAssistUsecase(client))

	r := gin.New()
	r.GET("/api/v1/assist/chat", handler.Chat)
	r.GET("/api/v1/assist/improve-prompt", handler.ImprovePrompt)
	return r
}

func TestAssistHandler_Chat(t *testing.T) {
	router := newAssistRouter(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "hi there"})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assist/chat?prompt=hello", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var reply struct {
		Text   string `json:"text"`
		Source string `json:"source"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	require.Equal(t, "hi there", reply.Text)
	require.Equal(t, "response", reply.Source)
}

func TestAssistHandler_Chat_MissingPrompt(t *testing.T) {
	router := newAssistRouter(t, func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assist/chat", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssistHandler_ImprovePrompt_DegradesToOriginal(t *testing.T) {
	router := newAssistRouter(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assist/improve-prompt?prompt=keep+me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Prompt   string `json:"prompt"`
		Improved bool   `json:"improved"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, "keep me", result.Prompt)
	require.False(t, result.Improved)
}
