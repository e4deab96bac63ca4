package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the context.
const userIDKey = contextKey("userID")

// orgIDKey is the key used to store the token's org scope in the context.
const orgIDKey = contextKey("orgID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDVal := c.Request.Context().Value(userIDKey)
		if userIDVal != nil {
			return userIDVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetOrgIDFromContext retrieves the token's org scope from the Gin context.
func GetOrgIDFromContext(c *gin.Context) (string, bool) {
	orgIDVal, exists := c.Get(string(orgIDKey))
	if !exists {
		orgIDVal := c.Request.Context().Value(orgIDKey)
		if orgIDVal != nil {
			return orgIDVal.(string), true
		}
		return "", false
	}

	orgID, ok := orgIDVal.(string)
	if !ok {
		return "", false
	}

	return orgID, true
}
