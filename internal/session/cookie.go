package session

import (
	"net/http"
	"time"
)

// DefaultCookieName matches the cookie the edge guard reads.
const DefaultCookieName = "auth_token"

// secureRequest reports whether the request arrived over HTTPS, either
// terminated here or at the proxy in front. The gateway forwards the
// original scheme in X-Forwarded-Proto.
func secureRequest(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

// CreateAuthCookie creates the short-lived credential mirror cookie. The
// Secure flag is derived from the request scheme.
func CreateAuthCookie(r *http.Request, name, credential string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    credential,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		Secure:   secureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}

// CreateDeleteCookie creates a cookie that clears the credential mirror.
func CreateDeleteCookie(r *http.Request, name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   secureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}
