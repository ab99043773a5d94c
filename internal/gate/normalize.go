package gate

import (
	"context"
	"dedupgate/pkg/domain"
	"dedupgate/pkg/logger"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Candidate is one non-empty value of a payload. JSON marks a value written
// as a JSON literal other than a string (number, true, object or array); its
// Value is that literal as written.
type Candidate struct {
	Value string
	JSON  bool
}

// Source maps candidate keys of a payload to their non-empty values.
type Source map[string]Candidate

// TextSource builds a Source of plain text values.
func TextSource(values map[string]string) Source {
	src := make(Source, len(values))
	for k, v := range values {
		if v != "" {
			src[k] = Candidate{Value: v}
		}
	}

	return src
}

// DecodeSource decodes a JSON document into a Source. Any document other than
// an object yields an empty Source. Members follow JSON truthiness: empty
// strings, zero, false and null are dropped; numbers, true and nested objects
// or arrays keep their JSON text. A later duplicate member replaces an
// earlier one.
func DecodeSource(data []byte) (Source, error) {
	src := Source{}
	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		return src, nil
	}

	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		k := string(key)
		v, ok, err := decodeCandidate(d)
		if err != nil {
			return errors.Wrapf(err, "decode %q", k)
		}
		if !ok {
			delete(src, k)

			return nil
		}
		src[k] = v

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode payload")
	}

	return src, nil
}

func decodeCandidate(d *jx.Decoder) (Candidate, bool, error) {
	switch d.Next() {
	case jx.String:
		s, err := d.Str()

		return Candidate{Value: s}, s != "", err
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return Candidate{}, false, err
		}
		if f, err := strconv.ParseFloat(n.String(), 64); err == nil && f == 0 {
			return Candidate{}, false, nil
		}

		return Candidate{Value: n.String(), JSON: true}, true, nil
	case jx.Bool:
		b, err := d.Bool()

		return Candidate{Value: strconv.FormatBool(b), JSON: true}, b, err
	case jx.Null:
		return Candidate{}, false, d.Null()
	default:
		raw, err := d.Raw()
		if err != nil {
			return Candidate{}, false, err
		}

		return Candidate{Value: string(raw), JSON: true}, true, nil
	}
}

// candidateSource resolves a payload into the Source used for normalization.
// Text that is not valid JSON goes through fallback extraction.
func (g *gate) candidateSource(ctx context.Context, payload domain.Payload) (Source, error) {
	switch payload.Kind {
	case domain.PayloadObject:
		return DecodeSource(payload.Raw)
	case domain.PayloadText:
		data := []byte(payload.Text)
		if jx.Valid(data) {
			if jx.DecodeBytes(data).Next() == jx.Null {
				return nil, errors.New("payload text is JSON null")
			}

			return DecodeSource(data)
		}

		src := TextSource(Extract(payload.Text, g.profile.Extraction.Style, g.profile.Extraction.Keys))
		g.instruments.fallbacks.Add(ctx, 1, metric.WithAttributes(g.kind))
		logger.Warn(ctx, "payload is not valid JSON, extracted fields from text",
			zap.Int("recovered", len(src)),
			zap.Strings("fields", sortedKeys(src)))

		return src, nil
	default:
		return Source{}, nil
	}
}

// Normalize builds the record described by schema. Each field takes the first
// non-empty candidate: the source keys in order, the request fallback, then the
// default. Fields without any candidate or default are left out.
func Normalize(schema []OutputField, src Source, sub domain.Submission) domain.NormalizedRecord {
	rec := make(domain.NormalizedRecord, 0, len(schema))
	for _, f := range schema {
		if c, ok := f.resolve(src, sub); ok {
			rec = append(rec, domain.RecordField{Name: f.Name, Value: c.Value, JSON: c.JSON})
		}
	}

	return rec
}

func (f OutputField) resolve(src Source, sub domain.Submission) (Candidate, bool) {
	for _, k := range f.Keys {
		if c := src[k]; c.Value != "" {
			return c, true
		}
	}
	if f.Fallback != "" {
		if v := sub.Field(f.Fallback); v != "" {
			return Candidate{Value: v}, true
		}
	}
	if f.HasDefault {
		return Candidate{Value: f.Default}, true
	}

	return Candidate{}, false
}
