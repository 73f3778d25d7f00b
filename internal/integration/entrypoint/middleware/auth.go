// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerkit/backend/internal/application/adapter"
	domainerror "github.com/ledgerkit/backend/internal/domain/error"
	"github.com/ledgerkit/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey ContextKey = "user_id"
	// UserEmailKey is the context key for the authenticated user's email.
	UserEmailKey ContextKey = "user_email"
)

// AuthMiddleware validates bearer access tokens and exposes the caller's
// identity through the gin context. All auth state is request-scoped.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate rejects requests without a valid access token and stores the
// token's user ID and email for downstream handlers.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, errResp := bearerToken(c.GetHeader("Authorization"))
		if errResp != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, *errResp)
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(UserEmailKey), claims.Email)

		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, *dto.ErrorResponse) {
	if header == "" {
		return "", &dto.ErrorResponse{
			Error: "Authorization header is required",
			Code:  string(domainerror.ErrCodeMissingToken),
		}
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", &dto.ErrorResponse{
			Error: "Invalid authorization header format",
			Code:  string(domainerror.ErrCodeInvalidToken),
		}
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", &dto.ErrorResponse{
			Error: "Token is required",
			Code:  string(domainerror.ErrCodeMissingToken),
		}
	}
	return token, nil
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserEmailFromContext extracts the user email from the Gin context.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(string(UserEmailKey))
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}
