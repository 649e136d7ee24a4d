package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"promptvault-backend/internal/services"
	"promptvault-backend/internal/utils"
)

// SessionAuth gates the HTML pages behind the signed session cookie.
// Missing, tampered, expired or revoked sessions redirect to /login, as
// does a session whose username no longer resolves to a user.
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		revoked, err := services.IsSessionRevoked(token)
		if err != nil || revoked {
			utils.ClearSessionCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		claims, err := utils.ValidateSessionToken(token)
		if err != nil {
			utils.ClearSessionCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		username, ok := claims["username"].(string)
		if !ok {
			utils.ClearSessionCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		// The signature is trusted for identity, but the user may have
		// been deleted since the cookie was issued.
		user, err := services.FindUserByUsername(username)
		if err != nil {
			utils.ClearSessionCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("sessionToken", token)
		c.Next()
	}
}
