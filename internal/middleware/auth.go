package middleware

import (
	"net/http" // HTTP status codes

	"cashcard_system/internal/identity" // Credential store

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set for downstream handlers.
const (
	PrincipalKey = "principal" // Authenticated username
	RoleKey      = "role"      // Authenticated user's role
)

// BasicAuthMiddleware validates the Basic credential when one is presented and
// then applies the access policy. An invalid credential is rejected outright,
// whatever the policy would have allowed.
func BasicAuthMiddleware(users *identity.Store, policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		hasCredential := c.GetHeader("Authorization") != ""

		var principal *identity.User
		if hasCredential {
			username, password, ok := c.Request.BasicAuth()
			if !ok {
				// A credential we cannot parse is an invalid credential
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			user, ok := users.Authenticate(username, password)
			if !ok {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			principal = user
			c.Set(PrincipalKey, user.Username) // Store principal in context
			c.Set(RoleKey, user.Role)          // Store role in context
		}

		rule := policy.Evaluate(c.Request.Method, c.Request.URL.Path, hasCredential)
		if rule.Allow {
			c.Next() // Permitted without further checks
			return
		}
		if principal == nil {
			// A role is required but nobody is authenticated
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if principal.Role != rule.Role {
			// Authenticated but not holding the required role
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next() // Proceed to the handler
	}
}
