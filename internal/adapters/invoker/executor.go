// Package invoker provides the caching implementation of ports.TransformExecutor.
package invoker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/morph/internal/core/ports"
	"go.trai.ch/morph/internal/engine/memo"
	"go.trai.ch/zerr"
)

var _ ports.TransformExecutor = (*Executor)(nil)

// Executor runs transformers once per (file, transformer identity).
//
// Results are looked up in an in-memory memo first, then in the persistent result
// store keyed by the content hash of the input, and only then computed.
type Executor struct {
	memo       *memo.Memo[[]string]
	hasher     ports.Hasher
	store      ports.ResultStore
	verifier   ports.Verifier
	telemetry  ports.Telemetry
	logger     ports.Logger
	metrics    *Metrics
	workspaces string
}

// Option configures an Executor.
type Option func(*options)

type options struct {
	capacity int
	metrics  *Metrics
}

// WithMemoCapacity bounds the number of results kept in memory.
func WithMemoCapacity(capacity int) Option {
	return func(o *options) {
		o.capacity = capacity
	}
}

// WithMetrics reports executor activity to m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// NewExecutor creates an Executor writing transformer outputs below workspaces.
func NewExecutor(
	hasher ports.Hasher,
	store ports.ResultStore,
	verifier ports.Verifier,
	telemetry ports.Telemetry,
	logger ports.Logger,
	workspaces string,
	opts ...Option,
) (*Executor, error) {
	o := options{capacity: memo.DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(prometheus.NewRegistry())
	}

	m, err := memo.New[[]string](o.capacity)
	if err != nil {
		return nil, err
	}

	return &Executor{
		memo:       m,
		hasher:     hasher,
		store:      store,
		verifier:   verifier,
		telemetry:  telemetry,
		logger:     logger,
		metrics:    o.metrics,
		workspaces: workspaces,
	}, nil
}

// Invoke applies transformer to file, reusing any previous result for the same pair.
// Callers joining an in-flight computation share it, including its ctx: the result is
// the one produced under the first caller's context.
func (e *Executor) Invoke(
	ctx context.Context,
	transformer ports.Transformer,
	file string,
	subject domain.Subject,
) ([]string, error) {
	e.metrics.Invocations.Inc()

	key := memoKey(file, transformer.Identity())
	if outputs, ok := e.memo.Get(key); ok {
		e.metrics.CacheHits.WithLabelValues(LayerMemory).Inc()
		return slices.Clone(outputs), nil
	}

	outputs, err := e.memo.GetOrCompute(key, func() ([]string, error) {
		return e.compute(ctx, transformer, file)
	})
	if err != nil {
		e.logger.Warn(fmt.Sprintf("Failed to transform %s of %s with %s",
			file, subject.DisplayName(), transformer.Identity().DisplayName))
		return nil, err
	}
	return slices.Clone(outputs), nil
}

// HasCachedResult reports whether a successful result is available without running transformer.
func (e *Executor) HasCachedResult(file string, transformer ports.Transformer) bool {
	_, ok := e.CachedResult(file, transformer)
	return ok
}

// CachedResult returns a previously successful result without running transformer.
func (e *Executor) CachedResult(file string, transformer ports.Transformer) ([]string, bool) {
	id := transformer.Identity()
	if outputs, ok := e.memo.Get(memoKey(file, id)); ok {
		return slices.Clone(outputs), true
	}

	inputHash, err := e.hasher.ComputeFileHash(file)
	if err != nil {
		return nil, false
	}
	return e.lookup(domain.RecordKey(id, inputHash))
}

// compute resolves a memo miss: the persistent store first, then the transformer itself.
func (e *Executor) compute(ctx context.Context, transformer ports.Transformer, file string) ([]string, error) {
	id := transformer.Identity()
	ctx, vertex := e.telemetry.Record(ctx, id.DisplayName+" "+filepath.Base(file), ports.WithGroup(id.DisplayName))

	outputs, err := e.execute(ctx, vertex, transformer, file)
	if err != nil {
		e.metrics.Failures.Inc()
		err = zerr.Wrap(err, domain.ErrTransformExecutionFailed.Error())
		err = zerr.With(zerr.With(err, "transformer", id.String()), "file", file)
	}
	vertex.Complete(err)
	return outputs, err
}

func (e *Executor) execute(
	ctx context.Context,
	vertex ports.Vertex,
	transformer ports.Transformer,
	file string,
) ([]string, error) {
	id := transformer.Identity()

	inputHash, err := e.hasher.ComputeFileHash(file)
	if err != nil {
		return nil, err
	}

	recordKey := domain.RecordKey(id, inputHash)
	if outputs, ok := e.lookup(recordKey); ok {
		vertex.Cached()
		e.metrics.CacheHits.WithLabelValues(LayerStore).Inc()
		return outputs, nil
	}

	workspace, err := e.prepareWorkspace(memoKey(file, id) + "|" + inputHash)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	outputs, err := transformer.Transform(ctx, file, workspace)
	e.metrics.Duration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	record := domain.ResultRecord{
		Transformer: id.String(),
		InputFile:   file,
		InputHash:   inputHash,
		Outputs:     outputs,
		Timestamp:   time.Now(),
	}
	if err := e.store.Put(recordKey, record); err != nil {
		return nil, err
	}

	return outputs, nil
}

// lookup returns the outputs of the stored record under key if all of them still exist.
func (e *Executor) lookup(key string) ([]string, bool) {
	record, err := e.store.Get(key)
	if err != nil || record == nil {
		return nil, false
	}

	ok, err := e.verifier.VerifyOutputs(e.workspaces, record.Outputs)
	if err != nil || !ok {
		return nil, false
	}
	return slices.Clone(record.Outputs), true
}

// prepareWorkspace returns an empty directory owned by the invocation identified by key.
// Keys include the input content hash: a workspace only ever holds outputs of one
// version of its input.
func (e *Executor) prepareWorkspace(key string) (string, error) {
	workspace := filepath.Join(e.workspaces, fmt.Sprintf("%016x", xxhash.Sum64String(key)))
	if err := os.RemoveAll(workspace); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrWorkspacePrepareFailed.Error()), "workspace", workspace)
	}
	if err := os.MkdirAll(workspace, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrWorkspacePrepareFailed.Error()), "workspace", workspace)
	}
	return workspace, nil
}

// memoKey identifies an invocation by the absolute input path and the transformer identity.
func memoKey(file string, id domain.TransformIdentity) string {
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}
	return file + "|" + id.String()
}
