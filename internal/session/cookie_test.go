package session

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSecureRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *http.Request)
		want   bool
	}{
		{"plain http", func(r *http.Request) {}, false},
		{"tls connection", func(r *http.Request) { r.TLS = &tls.ConnectionState{} }, true},
		{"forwarded proto https", func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "https") }, true},
		{"forwarded proto http", func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "http") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			tt.mutate(req)
			assert.Equal(t, tt.want, secureRequest(req))
		})
	}
}

func TestCreateAuthCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("X-Forwarded-Proto", "https")

	cookie := CreateAuthCookie(req, DefaultCookieName, "abc.def.ghi", 24*time.Hour)
	assert.Equal(t, DefaultCookieName, cookie.Name)
	assert.Equal(t, "abc.def.ghi", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(24*time.Hour/time.Second), cookie.MaxAge)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestCreateDeleteCookieExpiresImmediately(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)

	cookie := CreateDeleteCookie(req, DefaultCookieName)
	assert.Equal(t, DefaultCookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
	assert.False(t, cookie.Secure)
}
