package controller

import (
	"context"
	"net/http"
	"time"
)

// WithTimeout returns a middleware that bounds the request context by d.
// Handlers observe the deadline through the context and answer on their own,
// so a request that runs out of time still gets the handler's error body.
func WithTimeout(next http.Handler, d time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
