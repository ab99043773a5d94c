package gate

import (
	"context"
	"dedupgate/pkg/domain"
	"dedupgate/pkg/logger"
	"dedupgate/pkg/serrors"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type check struct {
	field string
	value string
}

// checks lists the identifying fields of sub that carry a value, in check order.
func (g *gate) checks(sub domain.Submission) []check {
	res := make([]check, 0, len(g.profile.Identifiers))
	for _, f := range g.profile.Identifiers {
		if v := sub.Field(f); v != "" {
			res = append(res, check{field: f, value: v})
		}
	}

	return res
}

// lookupAll runs one lookup per check. The first failure aborts the whole
// set; remaining sequential lookups are not issued and concurrent ones are
// cancelled. Entries keep check order whatever the completion order.
func (g *gate) lookupAll(ctx context.Context, checks []check) (domain.DuplicateSet, error) {
	res := make(domain.DuplicateSet, len(checks))

	if !g.options.ConcurrentLookups || len(checks) < 2 {
		for i, c := range checks {
			d, err := g.lookupOne(ctx, c)
			if err != nil {
				return nil, err
			}
			res[i] = d
		}

		return res, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for i, c := range checks {
		eg.Go(func() error {
			d, err := g.lookupOne(egCtx, c)
			if err != nil {
				return err
			}
			res[i] = d

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}

func (g *gate) lookupOne(ctx context.Context, c check) (domain.Duplicate, error) {
	ctx, span := g.tracer.Start(ctx, "gate.lookup", trace.WithAttributes(
		attribute.String("collection", g.profile.Collection),
		attribute.String("field", c.field),
	))
	defer span.End()

	start := time.Now()
	records, err := g.lookup.LookupExact(ctx, g.profile.Collection, c.field, c.value)
	attrs := []attribute.KeyValue{g.kind, attribute.String("field", c.field)}
	g.instruments.lookupDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attrs...))

	if err != nil {
		result := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			result = "timeout"
			err = serrors.Wrap(serrors.ErrTimeout, err, "lookup timed out")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		g.instruments.lookups.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.String("result", result))...))
		logger.Error(ctx, "could not look up field", zap.String("field", c.field), zap.Error(err))

		return domain.Duplicate{}, serrors.Wrap(serrors.ErrUnavailable, err, "could not look up %s", c.field)
	}

	d := domain.Duplicate{Field: c.field, Matches: len(records)}
	span.SetAttributes(attribute.Int("matches", d.Matches))
	if d.Matches == 0 {
		g.instruments.lookups.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.String("result", "miss"))...))

		return d, nil
	}

	first := records[0]
	d.Record = &first
	g.instruments.lookups.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.String("result", "match"))...))
	g.instruments.matches.Record(ctx, int64(d.Matches), metric.WithAttributes(attrs...))
	logger.Info(ctx, "duplicate found",
		zap.String("field", c.field),
		zap.String("record_id", first.ID),
		zap.Int("total", d.Matches))

	return d, nil
}
