// Copyright © 2026 The ELPS authors

package profiler_test

import (
	"context"
	"sync"
	"testing"

	"github.com/haerfest/nextlisp/lisp/x/profiler"
	"github.com/stretchr/testify/assert"
	"go.opencensus.io/trace"
)

// recordingExporter keeps the names of exported spans.
type recordingExporter struct {
	mu    sync.Mutex
	names []string
	files []string
}

func (e *recordingExporter) ExportSpan(sd *trace.SpanData) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.names = append(e.names, sd.Name)
	for _, a := range sd.Annotations {
		if file, ok := a.Attributes["file"].(string); ok {
			e.files = append(e.files, file)
		}
	}
}

func TestNewOpenCensusAnnotator(t *testing.T) {
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
	exporter := new(recordingExporter)
	trace.RegisterExporter(exporter)
	t.Cleanup(func() { trace.UnregisterExporter(exporter) })

	runTestLisp(t, profiler.NewOpenCensusAnnotator(context.Background()))

	exporter.mu.Lock()
	defer exporter.mu.Unlock()
	assert.Contains(t, exporter.names, "COUNT")
	assert.Contains(t, exporter.names, "ADD-IT")
	assert.Contains(t, exporter.names, "ADD-IT-AGAIN")
	assert.Contains(t, exporter.files, "test.lisp")
}

func TestOpenCensusAnnotatorFilter(t *testing.T) {
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
	exporter := new(recordingExporter)
	trace.RegisterExporter(exporter)
	t.Cleanup(func() { trace.UnregisterExporter(exporter) })

	runTestLisp(t, profiler.NewOpenCensusAnnotator(context.Background(), profiler.WithDocFilter()))

	exporter.mu.Lock()
	defer exporter.mu.Unlock()
	assert.Equal(t, []string{"ADD-IT", "ADD-IT-AGAIN"}, exporter.names)
}
