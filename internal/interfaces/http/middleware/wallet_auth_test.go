package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"prompthash.backend/pkg/jwt"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := jwt.NewService("test-secret", time.Hour)

	r := gin.New()
	r.Use(WalletAuthMiddleware(svc))
	r.POST("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, WalletFromRequest(c, c.Query("walletAddress")))
	})
	return r, svc
}

func TestWalletAuthMiddleware_ValidTokenWins(t *testing.T) {
	r, svc := newAuthRouter(t)

	token, err := svc.Generate("0xABCDEF", "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/whoami?walletAddress=0xother", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "0xabcdef", w.Body.String())
}

func TestWalletAuthMiddleware_InvalidTokenFallsBack(t *testing.T) {
	r, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/whoami?walletAddress=0xFallBack", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "0xfallback", w.Body.String())
}

func TestWalletFromRequest_TrimsAndLowercasesFallback(t *testing.T) {
	r, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/whoami?walletAddress=%20%200xAAA%20", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "0xaaa", w.Body.String())
}
