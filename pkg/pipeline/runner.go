package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/matzehuels/cutrewrite/pkg/aig"
	"github.com/matzehuels/cutrewrite/pkg/cache"
	"github.com/matzehuels/cutrewrite/pkg/cleanup"
	cerrors "github.com/matzehuels/cutrewrite/pkg/errors"
	"github.com/matzehuels/cutrewrite/pkg/io/bench"
	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/observability"
	"github.com/matzehuels/cutrewrite/pkg/rewrite"
)

var tracer = otel.Tracer("github.com/matzehuels/cutrewrite/pkg/pipeline")

// Runner executes optimisation jobs with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different designs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Result contains the outputs of a job.
type Result struct {
	// RunID identifies the job in logs.
	RunID string
	// Design is the optimised design.
	Design *bench.Design
	// InputHash is the content hash of the input in BENCH form.
	InputHash string

	Before NetworkStats
	After  NetworkStats
	Passes []PassStats

	// CacheHit is set when Design came from the cache. Passes is empty then.
	CacheHit bool
	// Verified is set when the result was proven equivalent to the input.
	Verified bool
	Duration time.Duration
}

// Optimize runs the rewriting passes of opts on a copy of d. The input design
// is not modified.
func (r *Runner) Optimize(ctx context.Context, d *bench.Design, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()
	res := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", res.RunID[:8])
	opts.Logger = logger

	ctx, span := tracer.Start(ctx, "pipeline.Optimize",
		trace.WithAttributes(
			attribute.String("run_id", res.RunID),
			attribute.Int("passes", opts.Passes),
			attribute.String("oracle", opts.Oracle),
		),
	)
	defer span.End()

	var input bytes.Buffer
	if err := bench.Write(&input, d); err != nil {
		return nil, fail(span, fmt.Errorf("serialize input: %w", err))
	}
	res.InputHash = cache.Hash(input.Bytes())
	res.Before = Measure(d.Network)
	key := r.Keyer.ResultKey(res.InputHash, opts.KeyOpts())

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key, d, logger); ok {
			res.Design = cached
			res.CacheHit = true
		}
	}

	if res.Design == nil {
		ntk := cleanup.Dangling(d.Network)
		for pass := 1; pass <= opts.Passes; pass++ {
			if err := ctx.Err(); err != nil {
				return nil, fail(span, err)
			}
			var ps PassStats
			ntk, ps = r.pass(ctx, ntk, pass, &opts)
			res.Passes = append(res.Passes, ps)
			logger.Info("rewriting pass",
				"pass", pass,
				"gates", fmt.Sprintf("%d -> %d", ps.GatesBefore, ps.GatesAfter),
				"substituted", ps.Rewrite.Substituted,
				"duration", ps.Duration.Round(time.Millisecond))
			if ps.Rewrite.Substituted == 0 {
				logger.Debug("converged", "pass", pass)
				break
			}
		}
		res.Design = d.WithNetwork(ntk)
		r.store(ctx, key, res.Design, opts.TTL, logger)
	}
	res.After = Measure(res.Design.Network)

	if opts.Verify {
		if err := r.verify(ctx, d, res.Design); err != nil {
			return nil, fail(span, err)
		}
		res.Verified = true
		logger.Info("verified equivalence")
	}

	res.Duration = time.Since(start)
	span.SetAttributes(
		attribute.Int("gates_before", res.Before.Gates),
		attribute.Int("gates_after", res.After.Gates),
		attribute.Bool("cache_hit", res.CacheHit),
	)
	return res, nil
}

func (r *Runner) pass(ctx context.Context, ntk *network.Network, pass int, opts *Options) (*network.Network, PassStats) {
	ctx, span := tracer.Start(ctx, "pipeline.Pass", trace.WithAttributes(attribute.Int("pass", pass)))
	defer span.End()

	start := time.Now()
	ps := PassStats{Pass: pass, GatesBefore: ntk.NumGates()}
	observability.Rewrite().OnPassStart(ctx, pass, ps.GatesBefore)

	ps.Rewrite = rewrite.Run(ntk, opts.oracle, opts.RewriteParams())
	ntk = cleanup.Dangling(ntk)

	ps.GatesAfter = ntk.NumGates()
	ps.Duration = time.Since(start)
	observability.Rewrite().OnPassComplete(ctx, pass, ps.GatesBefore, ps.GatesAfter, ps.Duration)
	span.SetAttributes(
		attribute.Int("substituted", ps.Rewrite.Substituted),
		attribute.Int("gates_after", ps.GatesAfter),
	)
	return ntk, ps
}

// lookup returns the cached result for key. Entries that fail to parse or
// whose interface differs from d count as misses.
func (r *Runner) lookup(ctx context.Context, key string, d *bench.Design, logger *log.Logger) (*bench.Design, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	cached, err := bench.Read(bytes.NewReader(data))
	if err != nil || !sameInterface(cached, d) {
		logger.Debug("discarding unusable cache entry", "err", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "result")
	logger.Debug("cache hit", "key", key)
	return cached, true
}

func (r *Runner) store(ctx context.Context, key string, d *bench.Design, ttl time.Duration, logger *log.Logger) {
	var buf bytes.Buffer
	if err := bench.Write(&buf, d); err != nil {
		logger.Warn("cannot cache result", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), ttl); err != nil {
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "result", buf.Len())
}

// Verify proves that a and b compute the same functions. A difference is
// reported as a NOT_EQUIVALENT error carrying the counterexample.
func (r *Runner) Verify(ctx context.Context, a, b *bench.Design) error {
	ctx, span := tracer.Start(ctx, "pipeline.Verify")
	defer span.End()
	if err := r.verify(ctx, a, b); err != nil {
		return fail(span, err)
	}
	return nil
}

func (r *Runner) verify(ctx context.Context, a, b *bench.Design) error {
	start := time.Now()
	err := aig.Equivalent(ctx, a.Network, b.Network)
	observability.Rewrite().OnVerifyComplete(ctx, time.Since(start), err)
	return verifyError(err, a, b)
}

// verifyError maps equivalence checker errors to coded errors naming the
// design's outputs.
func verifyError(err error, a, b *bench.Design) error {
	var ne *cerrors.NotEquivalentError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ne):
		name := fmt.Sprintf("output %d", ne.Output)
		if ne.Output < len(a.Outputs) {
			name = a.Outputs[ne.Output]
		}
		return cerrors.Wrap(cerrors.ErrCodeNotEquivalent, err, "networks differ on %s", name)
	case errors.Is(err, aig.ErrInterfaceMismatch):
		return cerrors.Wrap(cerrors.ErrCodeNotEquivalent, err, "interfaces differ: %s vs %s", Measure(a.Network), Measure(b.Network))
	case errors.Is(err, context.DeadlineExceeded):
		return cerrors.Wrap(cerrors.ErrCodeTimeout, err, "equivalence check timed out")
	}
	return err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func sameInterface(a, b *bench.Design) bool {
	x, y := a.Network, b.Network
	return x.NumPIs() == y.NumPIs() && x.NumPOs() == y.NumPOs() &&
		x.NumROs() == y.NumROs() && x.NumRIs() == y.NumRIs()
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
