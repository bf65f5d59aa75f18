package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andryushik/MyDiary/apperr"
	"github.com/Andryushik/MyDiary/auth"
)

// CallerKey is the gin context key holding the authenticated user id.
const CallerKey = "userId"

// Auth resolves the bearer token on every protected request and stores the
// caller's id in the context. Identity is recomputed per request; no session
// state is held server-side.
func Auth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// CORS preflight carries no credentials.
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		userID, err := tokens.Resolve(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"msg":     apperr.Message(err),
			})
			return
		}

		c.Set(CallerKey, userID)
		c.Next()
	}
}
