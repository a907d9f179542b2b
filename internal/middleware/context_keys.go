package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the acting user's ID in the Gin context.
const userIDKey = contextKey("userID")

// ActorHeader names the request header carrying the acting user's identifier.
const ActorHeader = "X-Actor-ID"

// defaultActorID is recorded on audit fields when no actor header is present.
const defaultActorID = "system"

// ActorMiddleware resolves the acting user for audit stamping. Identity comes
// from the school administration system in front of this service, so the
// header is trusted as-is and falls back to a system actor.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(ActorHeader)
		if actorID == "" {
			actorID = defaultActorID
		}
		c.Set(string(userIDKey), actorID)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDCtxVal := c.Request.Context().Value(userIDKey)
		if userIDCtxVal != nil {
			return userIDCtxVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
