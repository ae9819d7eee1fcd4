package middleware

import (
	"net/http"
	"time"

	"github.com/cbodonnell/snake/pkg/log"
	"github.com/gorilla/mux"
)

// NewCORSMiddleware allows cross-origin calls from allowOrigin and answers preflight requests.
// It runs after mux.CORSMethodMiddleware, which fills in the allowed methods.
func NewCORSMiddleware(allowOrigin string) mux.MiddlewareFunc {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if allowOrigin != "*" {
				w.Header().Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewLoggingMiddleware traces every request. The ResponseWriter is passed through
// untouched so WebSocket upgrades can still hijack it.
func NewLoggingMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Trace("%s %s from %s took %s", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
		})
	}
}
