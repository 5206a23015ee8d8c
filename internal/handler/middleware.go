package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/seller-portal/internal/service"
)

// Context keys set by AuthMiddleware
const (
	vendorIDKey = "vendor_id"
	claimsKey   = "claims"
	tokenKey    = "token"
)

// AuthMiddleware validates the bearer token and adds the vendor to the context
func AuthMiddleware(vendorService service.VendorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondError(c, http.StatusUnauthorized, "Authorization header is required", nil)
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != "Bearer" || token == "" {
			respondError(c, http.StatusUnauthorized, "Invalid authorization header format", nil)
			return
		}

		claims, err := vendorService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, msgInvalidToken, nil)
			return
		}

		c.Set(vendorIDKey, claims.VendorID)
		c.Set(claimsKey, claims)
		c.Set(tokenKey, token)

		c.Next()
	}
}

// BasicAuthMiddleware guards public endpoints with a static credential.
// It lets everything through when user is empty.
func BasicAuthMiddleware(user, password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user == "" {
			c.Next()
			return
		}

		u, p, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 ||
			subtle.ConstantTimeCompare([]byte(p), []byte(password)) != 1 {
			c.Header("WWW-Authenticate", `Basic realm="seller-portal"`)
			respondError(c, http.StatusUnauthorized, "Basic authentication required", nil)
			return
		}

		c.Next()
	}
}

func vendorID(c *gin.Context) string {
	return c.GetString(vendorIDKey)
}
