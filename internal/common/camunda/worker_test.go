package camunda

import (
	"context"
	stderrors "errors"
	"testing"

	"bizpath-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newTracedObservability(t *testing.T) (*observability.Observability, *tracetest.InMemoryExporter) {
	t.Helper()
	spans := tracetest.NewInMemoryExporter()
	obs, err := observability.New(observability.Config{
		ServiceName:  "bizpath-workers-test",
		Registerer:   promclient.NewRegistry(),
		SpanExporter: spans,
	})
	require.NoError(t, err)
	return obs, spans
}

func TestInstrument_FailedJobMarksSpan(t *testing.T) {
	obs, spans := newTracedObservability(t)
	ctx := context.Background()

	var handlerSpan trace.SpanContext
	handler := Instrument("rank-business-paths", func(_ worker.JobClient, job entities.Job) {
		handlerSpan = trace.SpanFromContext(JobContext(job)).SpanContext()
		markFailed(job, stderrors.New("catalog unavailable"))
	}, obs)

	handler(nil, entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 7001, ProcessInstanceKey: 70}})

	require.NoError(t, obs.ForceFlush(ctx))
	recorded := spans.GetSpans()
	require.Len(t, recorded, 1)
	assert.Equal(t, "rank-business-paths", recorded[0].Name)
	assert.Equal(t, codes.Error, recorded[0].Status.Code)
	assert.Equal(t, "catalog unavailable", recorded[0].Status.Description)

	assert.True(t, handlerSpan.IsValid(), "handler context should carry the job span")
	assert.Equal(t, recorded[0].SpanContext.SpanID(), handlerSpan.SpanID())

	require.NoError(t, obs.Shutdown(ctx))
}

func TestInstrument_CompletedJobEndsOk(t *testing.T) {
	obs, spans := newTracedObservability(t)
	ctx := context.Background()

	handler := Instrument("normalize-traits", func(_ worker.JobClient, _ entities.Job) {}, obs)
	job := entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 7002}}
	handler(nil, job)

	require.NoError(t, obs.ForceFlush(ctx))
	recorded := spans.GetSpans()
	require.Len(t, recorded, 1)
	assert.NotEqual(t, codes.Error, recorded[0].Status.Code)

	// the span is released once the job returns
	assert.Equal(t, context.Background(), JobContext(job))

	require.NoError(t, obs.Shutdown(ctx))
}
