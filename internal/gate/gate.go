package gate

import (
	"context"
	"dedupgate/internal/config"
	"dedupgate/pkg/domain"
	"dedupgate/pkg/logger"
	"dedupgate/pkg/serrors"
	"dedupgate/pkg/storage"
	"fmt"
	"slices"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentationName = "dedupgate/internal/gate"

// Options configure how a gate performs its lookups and reports telemetry.
type Options struct {
	// ConcurrentLookups issues the lookups of one submission in parallel.
	ConcurrentLookups bool
	// MeterProvider receives the gate instruments. Nil disables metrics.
	MeterProvider metric.MeterProvider
	// TracerProvider receives validation and lookup spans. Nil uses the global
	// provider.
	TracerProvider trace.TracerProvider
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		ConcurrentLookups: cfg.Validation.ConcurrentLookups,
	}
}

type instruments struct {
	lookups        metric.Int64Counter
	lookupDuration metric.Float64Histogram
	matches        metric.Int64Histogram
	verdicts       metric.Int64Counter
	fallbacks      metric.Int64Counter
}

func newInstruments(meter metric.Meter) (instruments, error) {
	var (
		ins instruments
		err error
	)
	if ins.lookups, err = meter.Int64Counter("dedupgate.lookups",
		metric.WithDescription("Exact-match lookups by field and result")); err != nil {
		return ins, fmt.Errorf("could not create lookups counter: %w", err)
	}
	if ins.lookupDuration, err = meter.Float64Histogram("dedupgate.lookup.duration",
		metric.WithDescription("Duration of exact-match lookups"),
		metric.WithUnit("s")); err != nil {
		return ins, fmt.Errorf("could not create lookup duration histogram: %w", err)
	}
	if ins.matches, err = meter.Int64Histogram("dedupgate.lookup.matches",
		metric.WithDescription("Stored records sharing a submitted value, for colliding lookups")); err != nil {
		return ins, fmt.Errorf("could not create matches histogram: %w", err)
	}
	if ins.verdicts, err = meter.Int64Counter("dedupgate.verdicts",
		metric.WithDescription("Validation verdicts by kind")); err != nil {
		return ins, fmt.Errorf("could not create verdicts counter: %w", err)
	}
	if ins.fallbacks, err = meter.Int64Counter("dedupgate.payload.fallbacks",
		metric.WithDescription("Text payloads recovered by fallback extraction")); err != nil {
		return ins, fmt.Errorf("could not create fallbacks counter: %w", err)
	}

	return ins, nil
}

// gate is the concrete implementation of the Validator interface.
type gate struct {
	profile     Profile
	options     Options
	lookup      storage.Lookup
	tracer      trace.Tracer
	instruments instruments
	kind        attribute.KeyValue
}

// New creates a Validator for profile backed by lookup.
func New(lookup storage.Lookup, profile Profile, options Options) (Validator, error) {
	mp := options.MeterProvider
	if mp == nil {
		mp = noop.NewMeterProvider()
	}
	tp := options.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	ins, err := newInstruments(mp.Meter(instrumentationName))
	if err != nil {
		return nil, err
	}

	return &gate{
		profile:     profile,
		options:     options,
		lookup:      lookup,
		tracer:      tp.Tracer(instrumentationName),
		instruments: ins,
		kind:        attribute.String("kind", profile.Kind),
	}, nil
}

func (g *gate) Profile() Profile { return g.profile }

// Validate looks up the identifying fields of sub, decides the verdict and,
// for a valid submission with a payload, normalizes the record to register.
func (g *gate) Validate(ctx context.Context, sub domain.Submission) (*domain.Outcome, error) {
	ctx, span := g.tracer.Start(ctx, "gate.Validate", trace.WithAttributes(g.kind))
	defer span.End()

	ctx = logger.WithFields(ctx, zap.String("kind", g.profile.Kind))
	checks := g.checks(sub)
	if logger.IsDebug(ctx) {
		logger.Debug(ctx, "validation request",
			zap.Any("fields", sub.Fields),
			zap.Int("payload_kind", int(sub.Payload.Kind)),
			zap.Int("lookups", len(checks)))
	}

	dups, err := g.lookupAll(ctx, checks)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation aborted")

		return nil, err
	}

	out := &domain.Outcome{Duplicates: dups}
	out.IsValid, out.Rejection = Decide(g.profile, dups)
	g.instruments.verdicts.Add(ctx, 1, metric.WithAttributes(
		g.kind, attribute.String("valid", strconv.FormatBool(out.IsValid))))
	logger.Info(ctx, "validation result",
		zap.Bool("valid", out.IsValid),
		zap.Strings("colliding", colliding(dups)))

	if !out.IsValid || !sub.Payload.Present() {
		return out, nil
	}

	src, err := g.candidateSource(ctx, sub.Payload)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not read %s", g.profile.PayloadKey)
	}
	out.Registration = Normalize(g.profile.Schema, src, sub)
	out.Message = g.profile.Messages.Valid

	return out, nil
}

func colliding(dups domain.DuplicateSet) []string {
	var res []string
	for _, d := range dups {
		if d.Record != nil {
			res = append(res, d.Field)
		}
	}

	return res
}

func sortedKeys(src Source) []string {
	res := make([]string, 0, len(src))
	for k := range src {
		res = append(res, k)
	}
	slices.Sort(res)

	return res
}
