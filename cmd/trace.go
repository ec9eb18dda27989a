// Copyright © 2026 The ELPS authors

package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/haerfest/nextlisp/lisp"
	"github.com/haerfest/nextlisp/lisp/x/profiler"
	"go.opencensus.io/trace"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Values of the trace configuration key.
const (
	TraceNone       = "none"
	TraceOTel       = "otel"
	TraceOpenCensus = "opencensus"
	TracePprof      = "pprof"
)

// rootSpanName names the span enclosing a traced run.
const rootSpanName = "run"

type tracing struct {
	profiler lisp.Profiler
	finish   func() error
}

// startTrace enables the profiler selected by kind.  Spans are summarized
// on w as they end.
func startTrace(ctx context.Context, kind string, w io.Writer) (*tracing, error) {
	ctx = contextOrBackground(ctx)
	var tr *tracing
	switch kind {
	case "", TraceNone:
		return &tracing{finish: func() error { return nil }}, nil
	case TraceOTel:
		tr = startOTel(ctx, w)
	case TraceOpenCensus:
		tr = startOpenCensus(ctx, w)
	case TracePprof:
		p := profiler.NewPprofAnnotator(ctx)
		tr = &tracing{profiler: p, finish: p.Complete}
	default:
		return nil, fmt.Errorf("unknown trace kind: %q", kind)
	}
	if err := tr.profiler.Enable(); err != nil {
		_ = tr.finish()
		return nil, err
	}
	return tr, nil
}

func startOTel(ctx context.Context, w io.Writer) *tracing {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(&spanWriter{w: w}),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	ctx, root := tp.Tracer(profiler.DefaultTracerName).Start(ctx, rootSpanName)
	p := profiler.NewOpenTelemetryAnnotator(ctx)
	return &tracing{
		profiler: p,
		finish: func() error {
			err := p.Complete()
			root.End()
			if shutdownErr := tp.Shutdown(context.Background()); err == nil {
				err = shutdownErr
			}
			return err
		},
	}
}

func startOpenCensus(ctx context.Context, w io.Writer) *tracing {
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
	exporter := &spanWriter{w: w}
	trace.RegisterExporter(exporter)
	ctx, root := trace.StartSpan(ctx, rootSpanName)
	p := profiler.NewOpenCensusAnnotator(ctx)
	return &tracing{
		profiler: p,
		finish: func() error {
			err := p.Complete()
			root.End()
			trace.UnregisterExporter(exporter)
			return err
		},
	}
}

// spanWriter writes one line for each finished span.  It exports both
// OpenTelemetry and OpenCensus spans.
type spanWriter struct {
	mu sync.Mutex
	w  io.Writer
}

var _ sdktrace.SpanExporter = &spanWriter{}

func (s *spanWriter) writeSpan(name string, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "trace: %s %v\n", name, d)
	return err
}

// ExportSpans implements sdktrace.SpanExporter.
func (s *spanWriter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		if err := s.writeSpan(span.Name(), span.EndTime().Sub(span.StartTime())); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown implements sdktrace.SpanExporter.
func (s *spanWriter) Shutdown(ctx context.Context) error {
	return nil
}

// ExportSpan implements trace.Exporter.
func (s *spanWriter) ExportSpan(sd *trace.SpanData) {
	_ = s.writeSpan(sd.Name, sd.EndTime.Sub(sd.StartTime))
}
