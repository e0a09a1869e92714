package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, router http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPromptHandler_Create_Success(t *testing.T) {
	f := newHandlerFixture(t)

	rec := postJSON(t, f.router, "/api/prompts", map[string]interface{}{
		"image":         "http://x/y.png",
		"title":         "My Prompt",
		"content":       "0123456789",
		"walletAddress": "0xABC",
		"price":         5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Message string `json:"message"`
		Prompt  struct {
			Category      string  `json:"category"`
			Rating        int     `json:"rating"`
			Price         float64 `json:"price"`
			PromptTokenID int64   `json:"promptTokenId"`
			Owner         struct {
				Username      string `json:"username"`
				WalletAddress string `json:"walletAddress"`
			} `json:"owner"`
		} `json:"prompt"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Prompt created successfully", body.Message)
	require.Equal(t, "Other", body.Prompt.Category)
	require.Equal(t, 3, body.Prompt.Rating)
	require.EqualValues(t, 1, body.Prompt.PromptTokenID)
	require.Equal(t, "0xabc", body.Prompt.Owner.WalletAddress)
	require.NotEmpty(t, body.Prompt.Owner.Username)
}

func TestPromptHandler_Create_MissingFields(t *testing.T) {
	f := newHandlerFixture(t)

	rec := postJSON(t, f.router, "/api/prompts", map[string]interface{}{
		"category": "Music",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Missing required fields: Image URL, Title, Content, Wallet Address, Price", body.Error)
}

func TestPromptHandler_List(t *testing.T) {
	f := newHandlerFixture(t)

	rec := postJSON(t, f.router, "/api/prompts", map[string]interface{}{
		"image":         "http://x/y.png",
		"title":         "My Prompt",
		"content":       "0123456789",
		"walletAddress": "0xabc",
		"price":         5,
		"category":      "Music",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/prompts?category=Music", nil)
	recList := httptest.NewRecorder()
	f.router.ServeHTTP(recList, req)
	require.Equal(t, http.StatusOK, recList.Code)

	var prompts []map[string]interface{}
	require.NoError(t, json.Unmarshal(recList.Body.Bytes(), &prompts))
	require.Len(t, prompts, 1)
}

func TestPromptHandler_List_UnknownWalletReturnsEmptyArray(t *testing.T) {
	f := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/prompts?walletAddress=0xghost", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	// Empty array, not null and not an error.
	require.JSONEq(t, "[]", rec.Body.String())
}
