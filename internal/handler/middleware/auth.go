package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey    = "user_id"
	ctxActorRoleKey = "actor_role"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Access token required"},
			})
			return
		}

		userID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid or expired token"},
			})
			return
		}

		setIdentity(c, userID, role)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and never aborts.
// The event stream uses it so anonymous dashboards can still listen.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		if userID, role, err := m.tokenValidator.ValidateToken(token); err == nil {
			setIdentity(c, userID, role)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	// EventSource cannot set headers
	return c.Query("access_token")
}

func setIdentity(c *gin.Context, userID uuid.UUID, role booking.ActorRole) {
	c.Set(ctxUserIDKey, userID)
	c.Set(ctxActorRoleKey, role)
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetActorRole returns the side of the booking the authenticated caller acts for.
func GetActorRole(c *gin.Context) (booking.ActorRole, bool) {
	actorRole, exists := c.Get(ctxActorRoleKey)
	if !exists {
		return "", false
	}

	role, ok := actorRole.(booking.ActorRole)
	return role, ok
}
