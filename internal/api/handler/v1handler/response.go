package v1handler

import (
	"dedupgate/internal/gate"
	"dedupgate/pkg/domain"

	"github.com/go-faster/jx"
)

// EncodeOutcome writes the response body of a validation. Every identifying
// field of the profile appears under duplicates, null when it was not checked
// or did not collide.
//
// A valid outcome is encoded as {isValid, duplicates, registrationData?,
// message?}; a rejected one as {isValid, duplicates, errorMessage,
// requiresNewData, fieldsToChange}.
func EncodeOutcome(e *jx.Encoder, p gate.Profile, out *domain.Outcome) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("isValid", func(e *jx.Encoder) { e.Bool(out.IsValid) })
		e.Field("duplicates", func(e *jx.Encoder) { encodeDuplicates(e, p, out.Duplicates) })

		if out.Rejection != nil {
			e.Field("errorMessage", func(e *jx.Encoder) { e.Str(out.Rejection.Message) })
			e.Field("requiresNewData", func(e *jx.Encoder) { e.Bool(true) })
			e.Field("fieldsToChange", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, l := range out.Rejection.FieldsToChange {
						e.Str(l)
					}
				})
			})

			return
		}

		if out.Registration != nil {
			e.Field("registrationData", func(e *jx.Encoder) { encodeRecord(e, out.Registration) })
		}
		if out.Message != "" {
			e.Field("message", func(e *jx.Encoder) { e.Str(out.Message) })
		}
	})
}

func encodeDuplicates(e *jx.Encoder, p gate.Profile, dups domain.DuplicateSet) {
	e.Obj(func(e *jx.Encoder) {
		for _, f := range p.Identifiers {
			e.Field(f, func(e *jx.Encoder) {
				d, ok := dups.Get(f)
				if !ok || d.Record == nil {
					e.Null()

					return
				}
				encodeStored(e, d.Record)
			})
		}
	})
}

func encodeStored(e *jx.Encoder, r *domain.StoredRecord) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(r.ID) })
		e.Field("name", func(e *jx.Encoder) { strOrNull(e, r.Name) })
		e.Field("email", func(e *jx.Encoder) { strOrNull(e, r.Email) })
		e.Field("phone", func(e *jx.Encoder) { strOrNull(e, r.Phone) })
	})
}

func encodeRecord(e *jx.Encoder, rec domain.NormalizedRecord) {
	e.Obj(func(e *jx.Encoder) {
		for _, f := range rec {
			e.Field(f.Name, func(e *jx.Encoder) {
				if f.JSON {
					e.Raw([]byte(f.Value))

					return
				}
				e.Str(f.Value)
			})
		}
	})
}

func strOrNull(e *jx.Encoder, s string) {
	if s == "" {
		e.Null()

		return
	}
	e.Str(s)
}
