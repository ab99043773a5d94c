package v1handler

import (
	"dedupgate/internal/gate"
	"dedupgate/pkg/serrors"
	"io"
	"net/http"

	"github.com/go-faster/jx"
)

// ValidateClient handles POST /v1/clients/validate.
func (h *Handler) ValidateClient(w http.ResponseWriter, r *http.Request) {
	h.validate(w, r, h.deps.Clients)
}

// ValidateCompany handles POST /v1/companies/validate.
func (h *Handler) ValidateCompany(w http.ResponseWriter, r *http.Request) {
	h.validate(w, r, h.deps.Companies)
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request, v gate.Validator) {
	ctx := r.Context()
	p := v.Profile()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		h.writeError(ctx, w, p.Catalog, serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body"))

		return
	}

	sub, err := DecodeSubmission(body, p)
	if err != nil {
		h.writeError(ctx, w, p.Catalog, err)

		return
	}

	out, err := v.Validate(ctx, sub)
	if err != nil {
		h.writeError(ctx, w, p.Catalog, err)

		return
	}

	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	EncodeOutcome(e, p, out)
	writeJSON(ctx, w, http.StatusOK, e.Bytes())
}
