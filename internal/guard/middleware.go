package guard

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"ceria/internal/token"
)

const roleContextKey = "guard_role"

// Middleware enforces the route table at the edge, before any page code
// runs. It only reads the credential cookie and routes on the decoded role;
// signature verification stays with the backend, which authorizes every
// API call independently.
func Middleware(table *Table, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rule := table.Match(c.Request.URL.Path)
		if rule == nil {
			c.Next()
			return
		}

		role := token.Role("")
		if cookie, err := c.Cookie(cookieName); err == nil {
			role = token.DecodeRole(cookie)
		}

		if rule.Guest {
			if role != "" {
				c.Redirect(http.StatusSeeOther, HomePath(role))
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if role == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		if !rule.Allows(role) {
			c.Redirect(http.StatusSeeOther, unauthorizedURL(rule, role, c.Request.URL.Path))
			c.Abort()
			return
		}

		c.Set(roleContextKey, role)
		c.Next()
	}
}

// unauthorizedURL carries the diagnostic context the unauthorized page
// renders: the required role, the visitor's role, and the attempted path.
func unauthorizedURL(rule *Rule, current token.Role, attempted string) string {
	query := url.Values{}
	query.Set("required", rule.RequiredLabel())
	query.Set("current", string(current))
	query.Set("next", attempted)
	return "/unauthorized?" + query.Encode()
}

// RoleFromContext returns the role the middleware resolved for this
// request.
func RoleFromContext(c *gin.Context) (token.Role, bool) {
	value, exists := c.Get(roleContextKey)
	if !exists {
		return "", false
	}
	return value.(token.Role), true
}
