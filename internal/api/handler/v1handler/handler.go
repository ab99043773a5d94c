// Package v1handler implements the v1 HTTP endpoints of the validation gate.
// Request bodies are decoded and responses encoded with go-faster/jx so the
// wire layout (member order, nulls, omitted members) stays under control.
package v1handler

import (
	"context"
	"dedupgate/internal/gate"
	"dedupgate/pkg/logger"
	"dedupgate/pkg/serrors"
	"dedupgate/pkg/storage"
	"net/http"
	"time"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// MaxBodyBytes bounds the size of a validation request body.
const MaxBodyBytes = 1 << 20

// Deps groups the collaborators of the handlers.
type Deps struct {
	// Clients validates client submissions.
	Clients gate.Validator
	// Companies validates company submissions.
	Companies gate.Validator
	// Store is pinged by the health endpoint.
	Store storage.Storage
}

type Handler struct {
	deps      Deps
	startedAt time.Time
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps, startedAt: time.Now()}
}

// ErrorBody encodes the {"error": msg} body returned on failures.
func ErrorBody(msg string) []byte {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.Obj(func(e *jx.Encoder) {
		e.Field("error", func(e *jx.Encoder) { e.Str(msg) })
	})

	return append([]byte(nil), e.Bytes()...)
}

// ErrorMessage maps err to the text shown to the caller. Store failures get
// their own message; anything else is an internal error.
func ErrorMessage(c gate.Catalog, err error) string {
	if serrors.KindOf(err) == serrors.ErrUnavailable {
		return c.LookupFailed
	}

	return c.Internal
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, c gate.Catalog, err error) {
	logger.Error(ctx, "could not validate submission",
		zap.String("kind", serrors.KindOf(err).Error()),
		zap.Error(err))
	writeJSON(ctx, w, http.StatusInternalServerError, ErrorBody(ErrorMessage(c, err)))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}
