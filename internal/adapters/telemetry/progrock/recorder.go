// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/ppac/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
	seq atomic.Uint64
}

// New creates a Recorder that renders progress lines to out.
// A nil out records onto an in-memory tape only.
func New(out io.Writer) *Recorder {
	if out == nil {
		return NewRecorder(progrock.NewTape())
	}
	return NewRecorder(NewConsole(out))
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex. Every call gets its own vertex, even when
// a name repeats within a session.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	id := digest.FromString(fmt.Sprintf("%s#%d", name, r.seq.Add(1)))
	v := r.rec.Vertex(id, name)
	return ctx, &Vertex{vertex: v}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.w.Close()
}
