package middleware

import (
	"net/http"
	"strings"

	"cinehub/internal/http-api/roles"
	"cinehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// Authenticate is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a bearer token in the
// Authorization header and stores the resolved actor in the context.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(actorKey, service.Actor{ID: claims.UserID, Role: claims.Role})
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", string(claims.Role))

		c.Next()
	}
}

// AuthenticateOptional resolves the actor when a token is supplied but
// lets anonymous requests through; read endpoints are open to everyone.
// A token that is present but invalid is still rejected.
func AuthenticateOptional(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(actorKey, service.Actor{Role: roles.Anonymous})
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(actorKey, service.Actor{ID: claims.UserID, Role: claims.Role})
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", string(claims.Role))

		c.Next()
	}
}

// GetActor returns the actor stored by the auth middlewares; an anonymous
// actor when none was stored.
func GetActor(c *gin.Context) service.Actor {
	v, exists := c.Get(actorKey)
	if !exists {
		return service.Actor{Role: roles.Anonymous}
	}
	actor, ok := v.(service.Actor)
	if !ok {
		return service.Actor{Role: roles.Anonymous}
	}
	return actor
}

// RequireAdmin allows only admin-tier actors through. Must run after
// Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if !roles.IsAdmin(actor.Role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
