package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserHandler_Register_Idempotent(t *testing.T) {
	f := newHandlerFixture(t)

	rec := postJSON(t, f.router, "/api/user", map[string]string{"walletAddress": "0xAbC"})
	require.Equal(t, http.StatusOK, rec.Code)

	var first struct {
		User struct {
			ID            string `json:"id"`
			WalletAddress string `json:"walletAddress"`
			Rating        int    `json:"rating"`
		} `json:"user"`
		SessionToken string `json:"sessionToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	require.Equal(t, "0xabc", first.User.WalletAddress)
	require.Equal(t, 4, first.User.Rating)
	require.NotEmpty(t, first.SessionToken)

	// Same wallet registers to the same user.
	rec = postJSON(t, f.router, "/api/user", map[string]string{"walletAddress": "0xABC"})
	require.Equal(t, http.StatusOK, rec.Code)

	var second struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	require.Equal(t, first.User.ID, second.User.ID)
}

func TestUserHandler_Register_MissingWallet(t *testing.T) {
	f := newHandlerFixture(t)

	rec := postJSON(t, f.router, "/api/user", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_GetByWallet_NotFound(t *testing.T) {
	f := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/0xmissing", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "User not found. Please connect your wallet first.", body.Error)
}
