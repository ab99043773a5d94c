package v1handler

import (
	"context"
	"dedupgate/pkg/logger"
	"net/http"
	"time"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// Health reports whether the record store is reachable. It answers 503 with
// status "degraded" when the store ping fails.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status, store := "healthy", "healthy"
	if h.deps.Store == nil {
		store = "not configured"
	} else {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := h.deps.Store.Ping(pingCtx); err != nil {
			logger.Warn(ctx, "store ping failed", zap.Error(err))
			status, store = "degraded", "unhealthy: "+err.Error()
		}
	}

	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	e.Obj(func(e *jx.Encoder) {
		e.Field("status", func(e *jx.Encoder) { e.Str(status) })
		e.Field("uptime", func(e *jx.Encoder) { e.Str(time.Since(h.startedAt).Round(time.Second).String()) })
		e.Field("dependencies", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("store", func(e *jx.Encoder) { e.Str(store) })
			})
		})
	})

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(ctx, w, code, e.Bytes())
}
