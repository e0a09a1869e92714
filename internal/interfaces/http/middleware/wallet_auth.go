package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"prompthash.backend/pkg/jwt"
)

const WalletAddressKey = "wallet_address"

// WalletAuthMiddleware resolves the caller's wallet identity. A valid Bearer
// session token wins; otherwise the walletAddress request field is trusted,
// matching the original API contract. Handlers decide whether an empty
// identity is an error.
func WalletAuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			if claims, err := jwtService.Validate(token); err == nil {
				c.Set(WalletAddressKey, claims.WalletAddress)
				c.Set("username", claims.Username)
			}
		}
		c.Next()
	}
}

// WalletFromRequest returns the authenticated wallet address, falling back to
// the given request-supplied address.
func WalletFromRequest(c *gin.Context, fallback string) string {
	if wallet := c.GetString(WalletAddressKey); wallet != "" {
		return wallet
	}
	return strings.ToLower(strings.TrimSpace(fallback))
}
