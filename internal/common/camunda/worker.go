// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"sync"
	"time"

	"bizpath-workers/internal/common/config"
	"bizpath-workers/internal/common/errors"
	"bizpath-workers/internal/common/logger"
	"bizpath-workers/internal/common/metrics"
	"bizpath-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/attribute"
)

type JobHandler func(client worker.JobClient, job entities.Job)

// Manager opens one Zeebe job worker per enabled task type.
type Manager struct {
	client  zbc.Client
	obs     *observability.Observability
	logger  logger.Logger
	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewManager(client zbc.Client, obs *observability.Observability, log logger.Logger) *Manager {
	return &Manager{
		client:  client,
		obs:     obs,
		logger:  log.WithFields(map[string]interface{}{"component": "worker-manager"}),
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a worker for taskType unless it is disabled or already running.
func (m *Manager) Start(taskType string, wcfg config.WorkerConfig, handler JobHandler) bool {
	if !wcfg.Enabled {
		m.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, running := m.workers[taskType]; running {
		return false
	}

	m.workers[taskType] = m.client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(Instrument(taskType, handler, m.obs))).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Name(taskType).
		Open()

	m.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return true
}

// Running returns the task types with an open worker.
func (m *Manager) Running() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.workers))
	for taskType := range m.workers {
		out = append(out, taskType)
	}
	return out
}

// Stop closes every worker and waits for in-flight jobs.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for taskType, w := range m.workers {
		m.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
		w.Close()
		w.AwaitClose()
		delete(m.workers, taskType)
	}
}

// jobSpans holds the span context of every job in flight, keyed by job key.
var jobSpans sync.Map

type jobSpan struct {
	ctx context.Context
	err error
}

// JobContext returns the context handlers derive from. It carries the span opened by
// Instrument, or is Background outside an instrumented job.
func JobContext(job entities.Job) context.Context {
	if v, ok := jobSpans.Load(job.Key); ok {
		return v.(*jobSpan).ctx
	}
	return context.Background()
}

// markFailed records err as the outcome of the job's span.
func markFailed(job entities.Job, err error) {
	if v, ok := jobSpans.Load(job.Key); ok {
		v.(*jobSpan).err = err
	}
}

// Instrument wraps handler with the active-jobs gauge, duration histogram and a span.
// The span ends with the error passed to Responder.Fail, if any.
func Instrument(taskType string, handler JobHandler, obs *observability.Observability) JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		ctx, span := obs.StartSpan(context.Background(), taskType,
			attribute.Int64("jobKey", job.Key),
			attribute.Int64("processInstanceKey", job.ProcessInstanceKey),
		)
		js := &jobSpan{ctx: ctx}
		jobSpans.Store(job.Key, js)

		defer func() {
			jobSpans.Delete(job.Key)
			status := "completed"
			if js.err != nil {
				status = "failed"
			}
			metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
			obs.RecordJobDuration(ctx, taskType, time.Since(start), status)
			observability.EndSpan(span, js.err)
		}()

		handler(client, job)
	}
}

// Responder completes or fails jobs for one task type and keeps the job counters.
type Responder struct {
	taskType   string
	logger     logger.Logger
	errHandler *errors.ErrorHandler
	obs        *observability.Observability
}

func NewResponder(taskType string, obs *observability.Observability, log logger.Logger) *Responder {
	return &Responder{
		taskType:   taskType,
		logger:     log,
		errHandler: errors.NewErrorHandler(log),
		obs:        obs,
	}
}

func (r *Responder) Complete(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		r.Fail(ctx, client, job, errors.NewInternalError(err))
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"error":  err,
			"jobKey": job.Key,
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
	r.obs.RecordJobProcessed(ctx, r.taskType, "completed")
}

func (r *Responder) Fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := errors.Normalize(err)
	markFailed(job, stdErr)
	metrics.WorkerJobsFailed.WithLabelValues(r.taskType, string(stdErr.Code)).Inc()
	r.obs.RecordJobProcessed(ctx, r.taskType, "failed")
	r.errHandler.HandleJobError(ctx, client, job, stdErr)
}
