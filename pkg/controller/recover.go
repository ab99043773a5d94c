package controller

import (
	"dedupgate/pkg/logger"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// WithRecover returns a middleware that turns a panic in next into a 500
// response carrying body as JSON. http.ErrAbortHandler is re-raised so the
// server can abort the connection.
func WithRecover(next http.Handler, body []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler { //nolint: errorlint
				panic(p)
			}

			logger.Error(r.Context(), "recovered from panic",
				zap.Any("panic", p),
				zap.ByteString("stack", debug.Stack()))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write(body)
		}()

		next.ServeHTTP(w, r)
	})
}
