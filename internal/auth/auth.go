// Package auth implements the admin session gate: a single shared secret
// carried in an HttpOnly cookie.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dinoverse/internal/config"
)

const DefaultCookieName = "admin_token"

type Gate struct {
	cfg config.AuthConfig
}

func New(cfg config.AuthConfig) *Gate {
	if strings.TrimSpace(cfg.CookieName) == "" {
		cfg.CookieName = DefaultCookieName
	}
	return &Gate{cfg: cfg}
}

func (g *Gate) CookieName() string {
	return g.cfg.CookieName
}

// CheckCredentials compares against the configured admin email and password.
// Unset credentials never match.
func (g *Gate) CheckCredentials(email, password string) bool {
	wantEmail := strings.ToLower(strings.TrimSpace(g.cfg.AdminEmail))
	if wantEmail == "" || g.cfg.AdminPassword == "" {
		return false
	}
	gotEmail := strings.ToLower(strings.TrimSpace(email))
	emailOK := equal(gotEmail, wantEmail)
	passOK := equal(password, g.cfg.AdminPassword)
	return emailOK && passOK
}

// Configured reports whether a session secret is set. Without one no
// session can be issued.
func (g *Gate) Configured() bool {
	return g != nil && g.cfg.AdminToken != ""
}

// ValidToken reports whether token is the configured secret.
func (g *Gate) ValidToken(token string) bool {
	if g == nil || g.cfg.AdminToken == "" || token == "" {
		return false
	}
	return equal(token, g.cfg.AdminToken)
}

func (g *Gate) Authenticated(c *gin.Context) bool {
	token, err := c.Cookie(g.CookieName())
	if err != nil {
		return false
	}
	return g.ValidToken(token)
}

func (g *Gate) SetSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(g.CookieName(), g.cfg.AdminToken, int(g.cfg.CookieMaxAge.Seconds()), "/", "", g.cfg.CookieSecure, true)
}

func (g *Gate) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(g.CookieName(), "", -1, "/", "", g.cfg.CookieSecure, true)
}

// RequireAdmin rejects any request without a valid session cookie.
func (g *Gate) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.Authenticated(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "unauthorized",
			})
			return
		}
		c.Next()
	}
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
