package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-inventory/internal/shared/response"
	"book-inventory/pkg/jwt"
)

const (
	AdminCookieName    = "admin"
	ContextKeyIsAdmin  = "is_admin"
	AdminLoginPagePath = "/admin"
)

// AdminTokenValidator is satisfied by *jwt.Manager
type AdminTokenValidator interface {
	ValidateAdminToken(token string) (*jwt.Claims, error)
}

// RequireAdmin guards admin-only routes with the session cookie.
// Browser page loads are redirected to the login page with the original path
// in ?redirect=, API calls get a 403.
func RequireAdmin(tokens AdminTokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAdmin(c, tokens) {
			c.Set(ContextKeyIsAdmin, true)
			c.Next()
			return
		}

		log.Debug().
			Str("request_id", c.GetString(ContextKeyRequestID)).
			Str("path", c.Request.URL.Path).
			Msg("admin session required")

		if wantsHTML(c) {
			target := AdminLoginPagePath + "?redirect=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		response.Forbidden(c, "Admin access required")
		c.Abort()
	}
}

// IsAdmin reports whether the request carries a valid admin session cookie
func IsAdmin(c *gin.Context, tokens AdminTokenValidator) bool {
	token, err := c.Cookie(AdminCookieName)
	if err != nil || token == "" {
		return false
	}
	_, err = tokens.ValidateAdminToken(token)
	return err == nil
}

func wantsHTML(c *gin.Context) bool {
	return c.Request.Method == http.MethodGet &&
		strings.Contains(c.GetHeader("Accept"), "text/html")
}
