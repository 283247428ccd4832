// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/morph/internal/core/ports"
)

// Recorder implements the ports.Telemetry interface using the progrock library.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu     sync.Mutex
	groups map[string]*progrock.Recorder
}

// New creates a new Recorder with a default tape.
func New() ports.Telemetry {
	tape := progrock.NewTape()
	return NewRecorder(tape)
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:      w,
		rec:    progrock.NewRecorder(w),
		groups: make(map[string]*progrock.Recorder),
	}
}

// Record starts recording a new vertex.
// The vertex digest is derived from the group and name, so recording the same unit of
// work twice updates a single vertex.
func (r *Recorder) Record(ctx context.Context, name string, opts ...ports.VertexOption) (context.Context, ports.Vertex) {
	var cfg ports.VertexConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	d := digest.FromString(cfg.Group + "/" + name)
	v := r.recorderFor(cfg.Group).Vertex(d, name)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

func (r *Recorder) recorderFor(group string) *progrock.Recorder {
	if group == "" {
		return r.rec
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.groups[group]
	if !ok {
		rec = r.rec.WithGroup(group)
		r.groups[group] = rec
	}
	return rec
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
