package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinoverse/internal/config"
)

func testGate(token string) *Gate {
	return New(config.AuthConfig{
		AdminEmail:    "Admin@Example.com",
		AdminPassword: "hunter2",
		AdminToken:    token,
		CookieMaxAge:  time.Hour,
	})
}

func protected(g *Gate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Any("/admin", g.RequireAdmin(), func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestRequireAdmin(t *testing.T) {
	r := protected(testGate("s3cret"))

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(method, "/admin", nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"success":false,"message":"unauthorized"}`, w.Body.String())

			req := httptest.NewRequest(method, "/admin", nil)
			req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "wrong"})
			w = httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			req = httptest.NewRequest(method, "/admin", nil)
			req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "s3cret"})
			w = httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestEmptyTokenNeverAuthenticates(t *testing.T) {
	r := protected(testGate(""))
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: ""})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckCredentials(t *testing.T) {
	g := testGate("s3cret")
	assert.True(t, g.CheckCredentials("admin@example.com", "hunter2"))
	assert.True(t, g.CheckCredentials(" ADMIN@example.com ", "hunter2"))
	assert.False(t, g.CheckCredentials("admin@example.com", "hunter3"))
	assert.False(t, g.CheckCredentials("other@example.com", "hunter2"))

	empty := New(config.AuthConfig{})
	assert.False(t, empty.CheckCredentials("", ""))
}

func TestSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := testGate("s3cret")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	g.SetSession(c)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_token", cookies[0].Name)
	assert.Equal(t, "s3cret", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	g.ClearSession(c)
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
