package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ceria/internal/config"
	"ceria/internal/token"
)

func credentialFor(role token.Role) string {
	payload, _ := json.Marshal(map[string]string{
		"user_id": "u1",
		"name":    "Test",
		"role":    string(role),
	})
	segment := base64.RawURLEncoding.EncodeToString
	return segment([]byte(`{"alg":"HS256"}`)) + "." + segment(payload) + "." + segment([]byte("sig"))
}

func testServer(t *testing.T, upstreamURL string) *Server {
	t.Helper()
	cfg := config.Config{
		ServerPort:     "0",
		UpstreamURL:    upstreamURL,
		AuthCookieName: "auth_token",
	}
	srv, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return srv
}

func TestProxyForwardsAllowedRequests(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "upstream:%s", r.URL.Path)
	}))
	defer upstream.Close()

	srv := testServer(t, upstream.URL)
	edge := httptest.NewServer(srv.Handler())
	defer edge.Close()

	resp, err := http.Get(edge.URL + "/pilih-jagoan")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "upstream:/pilih-jagoan", string(body))
}

func TestGuardedPathRedirectsAnonymous(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request for %s must not reach the upstream", r.URL.Path)
	}))
	defer upstream.Close()

	srv := testServer(t, upstream.URL)
	req := httptest.NewRequest(http.MethodGet, "/dashboard/settings", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestGuardedPathForwardedWithRole(t *testing.T) {
	var seen string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Path
	}))
	defer upstream.Close()

	srv := testServer(t, upstream.URL)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	// Real server requests carry a cancellable context; without one, the
	// Go 1.21 ReverseProxy falls back to CloseNotifier, which the recorder
	// does not implement.
	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()
	req = req.WithContext(ctx)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: credentialFor(token.RoleParent)})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/dashboard", seen)
}

func TestWrongRoleRedirectedBeforeUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request for %s must not reach the upstream", r.URL.Path)
	}))
	defer upstream.Close()

	srv := testServer(t, upstream.URL)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: credentialFor(token.RoleChild)})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/unauthorized", loc.Path)
	assert.Equal(t, "child", loc.Query().Get("current"))
}

func TestHealthzBypassesGuard(t *testing.T) {
	srv := testServer(t, "http://127.0.0.1:0")
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUnreachableUpstreamReturnsBadGateway(t *testing.T) {
	// A closed server gives the proxy a guaranteed connection error.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	srv := testServer(t, upstream.URL)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	// See TestGuardedPathForwardedWithRole: the proxy needs a cancellable
	// context when driven through a ResponseRecorder on Go 1.21.
	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"upstream unavailable"}`, rec.Body.String())
}

func TestBadUpstreamURLRejected(t *testing.T) {
	cfg := config.Config{UpstreamURL: "://nope", AuthCookieName: "auth_token"}
	_, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
