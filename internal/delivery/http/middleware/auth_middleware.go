package middleware

import (
	"net/http"
	"strings"

	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys under which Authenticate stores the caller's identity.
const (
	// KeyUserID holds the authenticated user's uuid.UUID.
	KeyUserID = "userID"
	// KeyUserStatus holds the loyalty tier string from the token.
	KeyUserStatus = "userStatus"
)

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the Bearer access token and puts the caller's
// identity on the request context. Refresh tokens are rejected here; they
// are only accepted by the dedicated refresh endpoint.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		if claims.Type != "access" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Access token required"})
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyUserStatus, claims.Status)

		return next(c)
	}
}
