package v1handler

import (
	"bytes"
	"dedupgate/internal/gate"
	"dedupgate/pkg/domain"
	"dedupgate/pkg/serrors"
	"slices"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// DecodeSubmission reads a validation request body for profile p. Only the
// profile's request fields and payload member are kept; other members are
// ignored. Field values may be strings, numbers or booleans and follow JSON
// truthiness. A body that is not a JSON object is a bad request.
func DecodeSubmission(data []byte, p gate.Profile) (domain.Submission, error) {
	sub := domain.Submission{Fields: map[string]string{}}
	if !jx.Valid(data) {
		return sub, serrors.With(serrors.ErrBadRequest, "request body is not valid JSON")
	}

	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		return sub, serrors.With(serrors.ErrBadRequest, "request body must be a JSON object")
	}

	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		k := string(key)
		switch {
		case k == p.PayloadKey:
			payload, err := decodePayload(d)
			if err != nil {
				return errors.Wrapf(err, "decode %s", k)
			}
			sub.Payload = payload
		case slices.Contains(p.RequestFields, k):
			v, err := decodeField(d)
			if err != nil {
				return errors.Wrapf(err, "decode %s", k)
			}
			if v == "" {
				delete(sub.Fields, k)
			} else {
				sub.Fields[k] = v
			}
		default:
			return d.Skip()
		}

		return nil
	})
	if err != nil {
		return sub, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return sub, nil
}

// decodeField returns the text of a scalar request value, or "" when it is
// falsy.
func decodeField(d *jx.Decoder) (string, error) {
	switch tt := d.Next(); tt {
	case jx.String:
		return d.Str()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return "", err
		}
		if f, err := strconv.ParseFloat(n.String(), 64); err == nil && f == 0 {
			return "", nil
		}

		return n.String(), nil
	case jx.Bool:
		b, err := d.Bool()
		if err != nil || !b {
			return "", err
		}

		return "true", nil
	case jx.Null:
		return "", d.Null()
	default:
		return "", errors.Errorf("unexpected %s", tt)
	}
}

func decodePayload(d *jx.Decoder) (domain.Payload, error) {
	switch d.Next() {
	case jx.Object:
		raw, err := d.Raw()
		if err != nil {
			return domain.Payload{}, err
		}

		return domain.Payload{Kind: domain.PayloadObject, Raw: bytes.Clone(raw)}, nil
	case jx.String:
		s, err := d.Str()
		if err != nil || s == "" {
			return domain.Payload{}, err
		}

		return domain.Payload{Kind: domain.PayloadText, Text: s}, nil
	case jx.Array:
		return domain.Payload{Kind: domain.PayloadOther}, d.Skip()
	default:
		v, err := decodeField(d)
		if err != nil || v == "" {
			return domain.Payload{}, err
		}

		return domain.Payload{Kind: domain.PayloadOther}, nil
	}
}
