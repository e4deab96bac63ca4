package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/PropLedger/prop_ledger_app/internal/utils"
)

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and places the user ID and org scope into the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		userID := claims.Subject
		if userID == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		if claims.OrgID == "" {
			logger.Error("Org scope missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		// Store the identity in both the Gin context and the request context
		c.Set(string(userIDKey), userID)
		c.Set(string(orgIDKey), claims.OrgID)

		enrichedLogger := GetLoggerFromContext(c).With(slog.String("user_id", userID), slog.String("org_id", claims.OrgID))
		c.Set(string(loggerKey), enrichedLogger)

		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, orgIDKey, claims.OrgID)
		ctx = context.WithValue(ctx, loggerKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OrgScopeMiddleware ensures the org in the request path matches the org the
// token was issued for. A mismatch is rejected with 403 rather than 404 so
// misconfigured clients see the scoping failure.
func OrgScopeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		pathOrgID := c.Param("org_id")
		if pathOrgID == "" {
			c.Next()
			return
		}

		tokenOrgID, ok := GetOrgIDFromContext(c)
		if !ok || tokenOrgID != pathOrgID {
			GetLoggerFromContext(c).Warn("Org scope mismatch",
				slog.String("path_org_id", pathOrgID),
				slog.String("token_org_id", tokenOrgID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token is not valid for this org"})
			return
		}

		c.Next()
	}
}
