package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// actorHeader names the header the authenticating gateway sets after it
// has established the caller's identity. This service treats the value as
// an opaque string; credential management lives outside it.
const actorHeader = "X-Actor"

// ActorMiddleware requires an actor identity on every request and stores
// it in the request context for audit stamping.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(actorHeader)
		if actor == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + actorHeader + " header"})
			return
		}

		c.Request = c.Request.WithContext(WithActor(c.Request.Context(), actor))
		c.Next()
	}
}
