package parallel

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/threadcalc/internal/errors"
	"github.com/agbru/threadcalc/internal/logging"
	"github.com/agbru/threadcalc/internal/partition"
	"github.com/agbru/threadcalc/internal/progress"
)

// MaxRange is the largest range size accepted by Reduce.
const MaxRange = math.MaxInt32

// MaxWorkers is the largest worker count accepted by Join and Reduce.
const MaxWorkers = MaxRange

var tracer = otel.Tracer("github.com/agbru/threadcalc/internal/parallel")

// Summand evaluates the term contributed by index i.
type Summand func(i int) float64

// Kernel computes the partial sum of one chunk. It must only read its chunk and
// report progress through report, which may be nil.
type Kernel func(c partition.Chunk, report progress.ProgressCallback) float64

// Result holds the outcome of a reduction.
type Result struct {
	// Sum is the sum of Partials taken in ascending worker order.
	Sum float64
	// Partials holds one partial sum per worker.
	Partials []float64
	// Chunks holds the interval assigned to each worker.
	Chunks []partition.Chunk
	// WorkerDurations holds the wall-clock time spent by each worker.
	WorkerDurations []time.Duration
}

// Option configures a reduction.
type Option func(*options)

type options struct {
	report progress.ProgressCallback
	logger logging.Logger
}

// WithProgress makes workers report their progress through cb.
func WithProgress(cb progress.ProgressCallback) Option {
	return func(o *options) { o.report = cb }
}

// WithLogger sets the logger used for coordinator diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// ValidateRange checks that n is a valid range size.
func ValidateRange(n int) error {
	if n < 1 || n > MaxRange {
		return apperrors.NewValidationError("n", "must be between 1 and %d, got %d", MaxRange, n)
	}
	return nil
}

// ValidateWorkers checks that k is a valid worker count.
func ValidateWorkers(k int) error {
	if k < 1 || k > MaxWorkers {
		return apperrors.NewValidationError("workers", "must be between 1 and %d, got %d", MaxWorkers, k)
	}
	return nil
}

// Join launches exactly workers goroutines running fn and blocks until every
// one of them has returned. The barrier has no timeout; ctx is passed through
// to fn but is not used to abandon running workers. A panic inside fn is
// turned into an apperrors.WorkerError. The first error, if any, is returned.
// When every worker succeeded but ctx was canceled meanwhile, ctx.Err() is
// returned and the workers' output must be discarded.
func Join(ctx context.Context, workers int, fn func(ctx context.Context, worker int) error) error {
	if err := ValidateWorkers(workers); err != nil {
		return err
	}
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = apperrors.WorkerError{Worker: w, Cause: fmt.Errorf("panic: %v", r)}
				}
			}()
			return fn(ctx, w)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Reduce partitions [0, n) into k chunks, evaluates kernel on each chunk in its
// own goroutine and sums the partial results in worker order once all workers
// have finished. Invalid n or k fail before any worker is started.
func Reduce(ctx context.Context, n, k int, kernel Kernel, opts ...Option) (Result, error) {
	if err := ValidateRange(n); err != nil {
		return Result{}, err
	}
	if err := ValidateWorkers(k); err != nil {
		return Result{}, err
	}
	o := options{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, span := tracer.Start(ctx, "parallel.Reduce", trace.WithAttributes(
		attribute.Int("n", n),
		attribute.Int("workers", k),
	))
	defer span.End()

	chunks := partition.Partition(n, k)
	partials := make([]float64, k)
	durations := make([]time.Duration, k)
	o.logger.Debug("partition ready", logging.Int("n", n), logging.Int("workers", k),
		logging.Int("chunk_size", n/k), logging.Int("last_chunk", chunks[k-1].Len()))

	err := Join(ctx, k, func(ctx context.Context, w int) error {
		c := chunks[w]
		_, wspan := tracer.Start(ctx, "parallel.worker", trace.WithAttributes(
			attribute.Int("worker", w),
			attribute.Int("start", c.Start),
			attribute.Int("end", c.End),
		))
		defer wspan.End()

		start := time.Now()
		partials[w] = kernel(c, o.report)
		durations[w] = time.Since(start)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if apperrors.IsContextError(err) {
			o.logger.Warn("reduction canceled after join", logging.Int("workers", k))
		} else {
			o.logger.Error("reduction aborted", err, logging.Int("workers", k))
		}
		return Result{}, err
	}

	var sum float64
	for _, p := range partials {
		sum += p
	}
	o.logger.Debug("join complete", logging.Int("workers", k), logging.Float64("sum", sum))

	return Result{
		Sum:             sum,
		Partials:        partials,
		Chunks:          chunks,
		WorkerDurations: durations,
	}, nil
}

// Pointwise adapts a per-index function into a Kernel. Progress is reported
// every progress.Stride indices and once more when the chunk is complete.
func Pointwise(f Summand) Kernel {
	return func(c partition.Chunk, report progress.ProgressCallback) float64 {
		var sum float64
		Strides(c, report, func(start, end int) {
			for i := start; i < end; i++ {
				sum += f(i)
			}
		})
		return sum
	}
}

// Strides walks c in consecutive sub-ranges of at most progress.Stride
// indices, calling body for each and reporting progress after each one. The
// sub-ranges are visited in ascending order, so accumulating inside body gives
// the same result as a single loop over the chunk.
func Strides(c partition.Chunk, report progress.ProgressCallback, body func(start, end int)) {
	if c.Empty() {
		report.Report(c.Worker, 1.0)
		return
	}
	length := float64(c.Len())
	for s := c.Start; s < c.End; {
		e := c.End
		if e-s > progress.Stride {
			e = s + progress.Stride
		}
		body(s, e)
		s = e
		report.Report(c.Worker, float64(e-c.Start)/length)
	}
}
