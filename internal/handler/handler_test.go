package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinoverse/internal/app"
	"dinoverse/internal/config"
)

const adminToken = "secret"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (e envelope) fields() []string {
	out := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		out = append(out, fe.Field)
	}
	return out
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newRouterWith(t, nil)
}

func newRouterWith(t *testing.T, mutate func(*config.Config)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		App: config.AppConfig{Env: "dev", Timezone: "UTC"},
		DB:  config.DBConfig{Driver: "sqlite", DSN: ":memory:"},
		Auth: config.AuthConfig{
			AdminEmail:    "admin@example.com",
			AdminPassword: "hunter2",
			AdminToken:    adminToken,
			CookieName:    "admin_token",
		},
		Cache: config.CacheConfig{Backend: "memory"},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	a, err := app.New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	require.NoError(t, a.Migrate())
	r, err := a.Router()
	require.NoError(t, err)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any, admin bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	switch v := body.(type) {
	case nil:
	case string:
		buf.WriteString(v)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(v))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.AddCookie(&http.Cookie{Name: "admin_token", Value: adminToken})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func dataMap(t *testing.T, env envelope) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func dataList(t *testing.T, env envelope) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestAdminRoutesRejectMissingOrWrongSession(t *testing.T) {
	r := newRouter(t)
	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/blog"},
		{http.MethodPut, "/api/blog/x"},
		{http.MethodDelete, "/api/blog/x"},
		{http.MethodGet, "/api/admin/blog"},
		{http.MethodPost, "/api/services"},
		{http.MethodPost, "/api/products"},
		{http.MethodPost, "/api/portfolio"},
		{http.MethodPost, "/api/testimonials"},
		{http.MethodPost, "/api/partners"},
		{http.MethodPost, "/api/features"},
		{http.MethodGet, "/api/admin/contacts"},
		{http.MethodPut, "/api/site-content/hero"},
		{http.MethodGet, "/api/goals"},
		{http.MethodGet, "/api/habits"},
		{http.MethodGet, "/api/habit-logs"},
		{http.MethodGet, "/api/trades"},
		{http.MethodGet, "/api/trades/stats"},
		{http.MethodGet, "/api/transactions/summary"},
		{http.MethodGet, "/api/rules"},
		{http.MethodGet, "/api/reflections"},
		{http.MethodPost, "/api/quotes"},
		{http.MethodGet, "/api/dashboard"},
	}
	for _, rt := range routes {
		w, env := do(t, r, rt.method, rt.path, nil, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, rt.method+" "+rt.path)
		assert.False(t, env.Success)

		req := httptest.NewRequest(rt.method, rt.path, nil)
		req.AddCookie(&http.Cookie{Name: "admin_token", Value: "wrong"})
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "wrong cookie "+rt.method+" "+rt.path)
	}
}

func TestLoginSessionLogout(t *testing.T) {
	r := newRouter(t)

	w, _ := do(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "nope"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := do(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "Admin@Example.com", "password": "hunter2"}, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "admin_token="+adminToken)
	assert.Contains(t, cookie, "HttpOnly")

	_, env = do(t, r, http.MethodGet, "/api/auth/session", nil, true)
	assert.Equal(t, true, dataMap(t, env)["authenticated"])

	_, env = do(t, r, http.MethodGet, "/api/auth/session", nil, false)
	assert.Equal(t, false, dataMap(t, env)["authenticated"])

	w, _ = do(t, r, http.MethodPost, "/api/auth/logout", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestBlogLifecycle(t *testing.T) {
	r := newRouter(t)
	post := map[string]any{
		"title":     "Hello",
		"slug":      "hello-world",
		"content":   "Some **bold** text",
		"tags":      []string{"go", "go", " news "},
		"published": true,
	}

	w, env := do(t, r, http.MethodPost, "/api/blog", post, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := dataMap(t, env)
	id := created["id"].(string)
	assert.Len(t, id, 26)
	assert.Equal(t, []any{"go", "news"}, created["tags"])
	assert.NotNil(t, created["publishedAt"])

	w, _ = do(t, r, http.MethodPost, "/api/blog", post, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/blog/hello-world?render=html", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, dataMap(t, env)["html"], "<strong>bold</strong>")

	w, env = do(t, r, http.MethodGet, "/api/blog?tag=news", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataList(t, env), 1)
	assert.EqualValues(t, 1, env.Meta["total"])

	// Unpublishing hides the post from the public routes only.
	post["published"] = false
	w, env = do(t, r, http.MethodPut, "/api/blog/"+id, post, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := dataMap(t, env)
	_, env = do(t, r, http.MethodPut, "/api/blog/"+id, post, true)
	second := dataMap(t, env)
	delete(first, "updatedAt")
	delete(second, "updatedAt")
	assert.Equal(t, first, second)

	w, _ = do(t, r, http.MethodGet, "/api/blog/hello-world", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = do(t, r, http.MethodGet, "/api/admin/blog/"+id, nil, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/blog/"+id, nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, http.MethodDelete, "/api/blog/"+id, nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = do(t, r, http.MethodPut, "/api/blog/"+id, post, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidationReportsFields(t *testing.T) {
	r := newRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/blog", map[string]any{}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Subset(t, env.fields(), []string{"title", "slug", "content"})

	w, env = do(t, r, http.MethodPost, "/api/blog", map[string]any{"title": "x", "slug": "Bad Slug", "content": "x"}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"slug"}, env.fields())

	w, env = do(t, r, http.MethodPost, "/api/blog", `{"title":`, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"body"}, env.fields())

	w, env = do(t, r, http.MethodPost, "/api/goals", map[string]any{"title": "Run", "status": "someday"}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"status"}, env.fields())

	w, _ = do(t, r, http.MethodGet, "/api/products?sort=cheapest", nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHabitGoalBackReference(t *testing.T) {
	r := newRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/goals", map[string]any{"title": "Get fit", "category": "health", "targetDate": "2024-12-31"}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	goal := dataMap(t, env)
	goalID := goal["id"].(string)
	assert.Equal(t, "active", goal["status"])
	assert.Equal(t, "2024-12-31T00:00:00Z", goal["targetDate"])

	w, env = do(t, r, http.MethodPost, "/api/habits", map[string]any{"name": "Run", "goalId": "01HZZZZZZZZZZZZZZZZZZZZZZZ"}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"goalId"}, env.fields())

	w, env = do(t, r, http.MethodPost, "/api/habits", map[string]any{"name": "Run", "goalId": goalID}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	habit := dataMap(t, env)
	habitID := habit["id"].(string)
	assert.Equal(t, "daily", habit["frequency"])
	assert.EqualValues(t, 7, habit["targetPerWeek"])
	assert.Equal(t, true, habit["active"])

	_, env = do(t, r, http.MethodGet, "/api/goals/"+goalID, nil, true)
	assert.Equal(t, []any{habitID}, dataMap(t, env)["habitIds"])

	// Goal payloads never touch the back-reference.
	w, _ = do(t, r, http.MethodPut, "/api/goals/"+goalID, map[string]any{"title": "Get fitter", "progress": 40}, true)
	require.Equal(t, http.StatusOK, w.Code)
	_, env = do(t, r, http.MethodGet, "/api/goals/"+goalID, nil, true)
	assert.Equal(t, []any{habitID}, dataMap(t, env)["habitIds"])

	w, _ = do(t, r, http.MethodDelete, "/api/habits/"+habitID, nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	_, env = do(t, r, http.MethodGet, "/api/goals/"+goalID, nil, true)
	assert.Empty(t, dataMap(t, env)["habitIds"])
}

func TestTradeStatsRange(t *testing.T) {
	r := newRouter(t)
	yes, no := true, false
	rules := map[string]any{"followedPlan": yes, "respectedDailyLoss": yes, "validSession": yes, "emotional": no}

	w, env := do(t, r, http.MethodPost, "/api/trades", map[string]any{
		"date": "2024-03-10T15:00:00Z", "instrument": " eurusd ", "direction": "long",
		"entryPrice": 1.1, "status": "closed", "resultR": 2, "rules": rules,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "EURUSD", dataMap(t, env)["instrument"])

	w, _ = do(t, r, http.MethodPost, "/api/trades", map[string]any{
		"date": "2024-03-11", "instrument": "GBPUSD", "direction": "short",
		"entryPrice": 1.3, "status": "closed", "resultR": -1,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = do(t, r, http.MethodGet, "/api/trades/stats", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	all := dataMap(t, env)
	assert.EqualValues(t, 2, all["totalTrades"])
	assert.EqualValues(t, 50, all["winRate"])
	assert.EqualValues(t, 0.5, all["avgR"])
	assert.EqualValues(t, 50, all["ruleComplianceRate"])
	assert.EqualValues(t, 100, all["winRateWhenRulesRespected"])

	// A date-only upper bound covers the whole day.
	_, env = do(t, r, http.MethodGet, "/api/trades/stats?from=2024-03-10&to=2024-03-10", nil, true)
	assert.EqualValues(t, 1, dataMap(t, env)["totalTrades"])

	w, env = do(t, r, http.MethodGet, "/api/trades/stats?to=yesterday", nil, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"to"}, env.fields())

	_, env = do(t, r, http.MethodGet, "/api/trades?instrument=EURUSD", nil, true)
	assert.Len(t, dataList(t, env), 1)
}

func TestDateOnlyValuesFollowAppTimezone(t *testing.T) {
	r := newRouterWith(t, func(cfg *config.Config) {
		cfg.App.Timezone = "America/New_York"
	})

	w, env := do(t, r, http.MethodPost, "/api/trades", map[string]any{
		"date": "2024-06-12", "instrument": "ES", "direction": "long", "entryPrice": 5300,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "2024-06-12T04:00:00Z", dataMap(t, env)["date"])

	_, env = do(t, r, http.MethodGet, "/api/trades/stats?from=2024-06-12&to=2024-06-12", nil, true)
	assert.EqualValues(t, 1, dataMap(t, env)["totalTrades"])
	_, env = do(t, r, http.MethodGet, "/api/trades/stats?from=2024-06-11&to=2024-06-11", nil, true)
	assert.EqualValues(t, 0, dataMap(t, env)["totalTrades"])

	// Timestamps keep their instant.
	w, env = do(t, r, http.MethodPost, "/api/trades", map[string]any{
		"date": "2024-06-12T02:00:00Z", "instrument": "ES", "direction": "short", "entryPrice": 5300,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "2024-06-12T02:00:00Z", dataMap(t, env)["date"])
	_, env = do(t, r, http.MethodGet, "/api/trades/stats?from=2024-06-11&to=2024-06-11", nil, true)
	assert.EqualValues(t, 1, dataMap(t, env)["totalTrades"])

	w, _ = do(t, r, http.MethodPost, "/api/transactions", map[string]any{
		"date": "2024-06-01", "type": "income", "amount": "100",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	_, env = do(t, r, http.MethodGet, "/api/transactions?year=2024&month=6", nil, true)
	assert.EqualValues(t, 1, env.Meta["total"])
	_, env = do(t, r, http.MethodGet, "/api/transactions?year=2024&month=5", nil, true)
	assert.EqualValues(t, 0, env.Meta["total"])

	w, env = do(t, r, http.MethodPost, "/api/reflections", map[string]any{
		"date": "2024-06-12", "mood": 7,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "2024-06-12T04:00:00Z", dataMap(t, env)["date"])
}

func TestSiteContentSections(t *testing.T) {
	r := newRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/site-content/hero", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hero", dataMap(t, env)["key"])

	w, _ = do(t, r, http.MethodGet, "/api/site-content/footer", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = do(t, r, http.MethodPut, "/api/site-content/hero", map[string]any{"data": []int{1}}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"data"}, env.fields())

	w, _ = do(t, r, http.MethodPut, "/api/site-content/hero", map[string]any{"data": map[string]string{"title": "New"}}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	_, env = do(t, r, http.MethodGet, "/api/site-content/hero", nil, false)
	assert.Equal(t, map[string]any{"title": "New"}, dataMap(t, env)["data"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New")
}

func TestContactSubmission(t *testing.T) {
	r := newRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/contact", map[string]any{"name": "Ann", "email": "not-an-email", "message": "hi"}, false)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"email"}, env.fields())

	w, env = do(t, r, http.MethodPost, "/api/contact", map[string]any{"name": "Ann", "email": "ann@example.com", "message": "hi"}, false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := dataMap(t, env)["id"].(string)

	_, env = do(t, r, http.MethodGet, "/api/admin/contacts", nil, true)
	items := dataList(t, env)
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0]["status"])

	w, _ = do(t, r, http.MethodPut, "/api/admin/contacts/"+id+"/status", map[string]string{"status": "read"}, true)
	require.Equal(t, http.StatusOK, w.Code)
	w, env = do(t, r, http.MethodPut, "/api/admin/contacts/"+id+"/status", map[string]string{"status": "spam"}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"status"}, env.fields())
}

func TestContactFormPage(t *testing.T) {
	r := newRouter(t)
	post := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(url.Values{"name": {"Ann"}, "email": {"bad"}, "message": {"hi"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email: must be a valid email")
	assert.Contains(t, w.Body.String(), `value="Ann"`)

	w = post(url.Values{"name": {"Ann"}, "email": {"ann@example.com"}, "message": {"hi"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ann")
}

func TestPublicPagesAndFallbacks(t *testing.T) {
	r := newRouter(t)
	for path, want := range map[string]int{
		"/":                  http.StatusOK,
		"/blog":              http.StatusOK,
		"/blog/missing":      http.StatusNotFound,
		"/portfolio":         http.StatusOK,
		"/services":          http.StatusOK,
		"/store":             http.StatusOK,
		"/contact":           http.StatusOK,
		"/no-such-page":      http.StatusNotFound,
		"/api/quotes/random": http.StatusOK,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}

	w, env := do(t, r, http.MethodGet, "/api/missing", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}
