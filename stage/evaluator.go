package stage

import (
	"context"
	stderrors "errors"
	"fmt"
	"maps"
	"reflect"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/pipeline"
)

// Mode selects how Reduce stages are evaluated.
type Mode string

const (
	// ModeSequential folds left to right on the calling goroutine.
	ModeSequential Mode = "sequential"
	// ModeParallel splits the sequence into partitions folded concurrently.
	ModeParallel Mode = "parallel"
)

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger. Defaults to the logger registered for the
// evaluator component.
func WithLogger(l *logger.Logger) Option {
	return func(e *Evaluator) { e.log = l }
}

// WithMetrics enables metric recording.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Evaluator) { e.metrics = m }
}

// WithMode sets the evaluation mode.
func WithMode(m Mode) Option {
	return func(e *Evaluator) { e.mode = m }
}

// WithWorkers caps concurrent partitions in parallel mode. Zero means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Evaluator) { e.workers = n }
}

// WithPartitionSize sets the partition size in parallel mode. Zero derives it
// from the element count and the number of workers.
func WithPartitionSize(n int) Option {
	return func(e *Evaluator) { e.partitionSize = n }
}

// Evaluator interprets stage pipelines. It holds no per-evaluation state and
// is safe for concurrent use.
type Evaluator struct {
	log           *logger.Logger
	metrics       *observability.Metrics
	mode          Mode
	workers       int
	partitionSize int
}

// NewEvaluator creates an Evaluator in sequential mode unless configured otherwise.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{mode: ModeSequential}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Get(logger.ComponentEvaluator)
	} else {
		e.log = e.log.WithComponent(logger.ComponentEvaluator)
	}
	return e
}

// Mode returns the evaluation mode.
func (e *Evaluator) Mode() Mode { return e.mode }

// InMode returns a copy of e that evaluates in mode m.
func (e *Evaluator) InMode(m Mode) *Evaluator {
	c := *e
	c.mode = m
	return &c
}

// Source converts a typed slice into an evaluation source.
func Source[T any](items ...T) []any {
	src := make([]any, len(items))
	for i, v := range items {
		src[i] = v
	}
	return src
}

// Evaluate applies p to source. Nothing is computed until the terminal stage
// pulls elements through the intermediate stages. Terminal stages over an
// empty sequence return an empty or absent result, never an error.
func (e *Evaluator) Evaluate(ctx context.Context, source []any, p Pipeline) (Result, error) {
	ec := observability.NewEvaluationContext(uuid.NewString(), p.Name, string(e.mode), len(p.Stages), e.metrics)
	ctx, span := ec.Start(ctx)
	log := e.log.WithFields(logger.Fields(
		logger.FieldEvaluationID, ec.ID,
		logger.FieldPipeline, p.Name,
		logger.FieldMode, string(e.mode),
	))
	log.Debug("evaluation started", logger.Fields(
		logger.FieldStages, len(p.Stages),
		logger.FieldElements, len(source),
	))

	res, err := e.evaluate(ctx, source, p, log, ec)
	err = classify(err)

	var kind, code string
	if appErr, ok := errors.As(err); ok {
		code = string(appErr.Code)
	}
	if err == nil {
		kind = res.Kind.String()
	}
	ec.End(ctx, span, kind, code, err)

	if err != nil {
		log.Warn("evaluation failed", logger.Fields(
			logger.FieldError, err.Error(),
			logger.FieldDuration, ec.Duration().Milliseconds(),
		))
		return Result{}, err
	}
	log.Debug("evaluation finished", logger.Fields(
		logger.FieldStatus, res.Kind.String(),
		logger.FieldDuration, ec.Duration().Milliseconds(),
	))
	return res, nil
}

func (e *Evaluator) evaluate(ctx context.Context, source []any, p Pipeline, log *logger.Logger, ec *observability.EvaluationContext) (Result, error) {
	if e.mode != ModeSequential && e.mode != ModeParallel {
		return Result{}, errors.New(errors.ErrCodeInvalidPipeline, fmt.Sprintf("unknown evaluation mode %q", e.mode))
	}
	if e.workers < 0 || e.partitionSize < 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidPipeline, "workers and partition size must not be negative")
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	intermediate, terminal := p.split()
	counts := make([]int64, len(intermediate))
	seq := pipeline.FromSlice(source)
	for i, s := range intermediate {
		seq = apply(seq, i, s)
		seq = pipeline.Tap(seq, func(_ context.Context, _ any) error {
			counts[i]++
			return nil
		})
	}

	res, err := e.terminal(ctx, seq, len(intermediate), terminal, log)

	for i, n := range counts {
		kind := intermediate[i].Kind.String()
		log.Debug("stage emitted", logger.Fields(
			logger.FieldStage, i,
			logger.FieldStageKind, kind,
			logger.FieldElements, n,
		))
		ec.RecordStage(ctx, fmt.Sprintf("%d:%s", i, kind), n)
	}
	return res, err
}

// apply appends the intermediate stage s at position i to seq.
func apply(seq *pipeline.Pipeline[any], i int, s Stage) *pipeline.Pipeline[any] {
	switch s.Kind {
	case KindFilter:
		return pipeline.TryFilter(seq, func(v any) (bool, error) {
			keep, err := s.Pred(v)
			return keep, atStage(err, i, s.Kind)
		})
	case KindMap:
		return pipeline.Map(seq, func(_ context.Context, v any) (any, error) {
			out, err := s.Fn(v)
			return out, atStage(err, i, s.Kind)
		})
	case KindFlatMap:
		return pipeline.FlatMap(seq, func(_ context.Context, v any) (pipeline.Iterator[any], error) {
			out, err := s.Fn(v)
			if err != nil {
				return nil, atStage(err, i, s.Kind)
			}
			it, err := expand(out)
			return it, atStage(err, i, s.Kind)
		})
	case KindSort:
		return pipeline.TrySorted(seq, func(a, b any) (int, error) {
			c, err := s.Cmp(a, b)
			return c, atStage(err, i, s.Kind)
		})
	}
	return seq
}

func (e *Evaluator) terminal(ctx context.Context, seq *pipeline.Pipeline[any], i int, t Stage, log *logger.Logger) (Result, error) {
	switch t.Kind {
	case KindToList:
		items, err := pipeline.Collect(ctx, seq)
		if err != nil {
			return Result{}, err
		}
		return sequence(items), nil

	case KindCount:
		n, err := pipeline.Count(ctx, seq)
		if err != nil {
			return Result{}, err
		}
		return scalar(n), nil

	case KindReduce:
		op := func(a, b any) (any, error) {
			out, err := t.Op(a, b)
			return out, atStage(err, i, t.Kind)
		}
		v, err := e.reduce(ctx, seq, t.Identity, op, log)
		if err != nil {
			return Result{}, err
		}
		return scalar(v), nil

	case KindJoin:
		strs := pipeline.Map(seq, func(_ context.Context, v any) (string, error) {
			return text(v), nil
		})
		s, err := pipeline.Join(ctx, strs, t.Sep)
		if err != nil {
			return Result{}, err
		}
		return scalar(s), nil

	case KindMin, KindMax:
		cmp := func(a, b any) (int, error) {
			c, err := t.Cmp(a, b)
			return c, atStage(err, i, t.Kind)
		}
		pick := pipeline.TryMax[any]
		if t.Kind == KindMin {
			pick = pipeline.TryMin[any]
		}
		opt, err := pick(ctx, seq, cmp)
		if err != nil {
			return Result{}, err
		}
		if v, ok := opt.Get(); ok {
			return scalar(v), nil
		}
		return absent(), nil

	case KindGroupBy:
		g, err := pipeline.TryGroupBy(ctx, seq, func(v any) (any, error) {
			k, err := t.Fn(v)
			if err != nil {
				return nil, atStage(err, i, t.Kind)
			}
			if k != nil && !reflect.ValueOf(k).Comparable() {
				return nil, atStage(errors.InvalidKey(k), i, t.Kind)
			}
			return k, nil
		})
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultMapping, Groups: g.Values, Keys: g.Keys}, nil

	case KindToSet:
		items, err := pipeline.ToSetFunc(ctx, seq, elementHash, elementEqual)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultSet, Items: items}, nil

	case KindForEach:
		err := pipeline.ForEach(ctx, seq, func(_ context.Context, v any) error {
			return atStage(t.Action(v), i, t.Kind)
		})
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultNone}, nil
	}
	return Result{}, errors.InvalidPipeline(i, "unknown stage kind")
}

func (e *Evaluator) reduce(ctx context.Context, seq *pipeline.Pipeline[any], identity any, op func(a, b any) (any, error), log *logger.Logger) (any, error) {
	if e.mode != ModeParallel {
		return pipeline.Fold(ctx, seq, identity, op)
	}
	items, err := pipeline.Collect(ctx, seq)
	if err != nil {
		return nil, err
	}
	log.Debug("parallel reduce", logger.Fields(
		logger.FieldElements, len(items),
		logger.FieldWorkers, e.workers,
		logger.FieldPartitions, e.partitionSize,
	))
	return pipeline.TryParallelReduce(ctx, items, identity, op, pipeline.ParallelOptions{
		Workers:       e.workers,
		PartitionSize: e.partitionSize,
	})
}

// expand turns a FlatMap result into an iterator over its elements.
func expand(out any) (pipeline.Iterator[any], error) {
	switch v := out.(type) {
	case nil:
		return pipeline.NewSliceIterator[any](nil), nil
	case pipeline.Iterator[any]:
		return v, nil
	case []any:
		return pipeline.NewSliceIterator(v), nil
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.TypeMismatch("slice", out)
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return pipeline.NewSliceIterator(items), nil
}

func text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// elementHash buckets non-comparable values by type alone so that
// elementEqual decides their identity by deep comparison.
func elementHash(v any) uint64 {
	if v != nil && !reflect.ValueOf(v).Comparable() {
		return xxh3.HashString(fmt.Sprintf("%T", v))
	}
	return xxh3.HashString(fmt.Sprintf("%T:%#v", v, v))
}

func elementEqual(a, b any) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if a == nil {
		return true
	}
	if reflect.ValueOf(a).Comparable() && reflect.ValueOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// stageError carries a position-tagged copy of an AppError alongside the
// error the stage function returned. errors.As finds the tagged copy;
// errors.Is still matches the original.
type stageError struct {
	tagged *errors.AppError
	err    error
	msg    string
}

func (e *stageError) Error() string   { return e.msg }
func (e *stageError) Unwrap() []error { return []error{e.tagged, e.err} }

// atStage tags an error raised by a stage function with its position. The
// returned error never shares state with err.
func atStage(err error, i int, kind Kind) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf("stage %d (%s): %v", i, kind, err)
	if appErr, ok := errors.As(err); ok {
		if _, tagged := appErr.Details["stage"]; tagged {
			return err
		}
		c := *appErr
		c.Details = maps.Clone(appErr.Details)
		c.WithDetail("stage", i).WithDetail("kind", kind.String())
		return &stageError{tagged: &c, err: err, msg: msg}
	}
	return fmt.Errorf("stage %d (%s): %w", i, kind, err)
}

// classify maps cancellation and worker panics onto error codes; other
// errors pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}
	if stderrors.Is(err, pipeline.ErrWorkerPanic) {
		return errors.Internal(err)
	}
	return errors.FromContext(err)
}
