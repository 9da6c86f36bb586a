// cmd/worker-manager/workers.go
package main

import (
	"context"
	"fmt"

	"bizpath-workers/internal/catalog"
	"bizpath-workers/internal/common/aws"
	"bizpath-workers/internal/common/camunda"
	"bizpath-workers/internal/common/config"
	"bizpath-workers/internal/common/logger"
	"bizpath-workers/internal/common/observability"
	"bizpath-workers/internal/quiz"
	"bizpath-workers/internal/scoring"
	"bizpath-workers/pkg/registry"

	cfs "bizpath-workers/internal/workers/paths/calculate-fit-score"
	rbp "bizpath-workers/internal/workers/paths/rank-business-paths"
	sbm "bizpath-workers/internal/workers/paths/search-business-models"
	ntr "bizpath-workers/internal/workers/quiz/normalize-traits"
	sqr "bizpath-workers/internal/workers/quiz/submit-quiz-response"
	pnc "bizpath-workers/internal/workers/report/prepare-narrative-context"
	srn "bizpath-workers/internal/workers/report/send-results-notification"

	"github.com/redis/go-redis/v9"
)

type dependencies struct {
	cfg       *config.Config
	catalog   *catalog.Catalog
	scorer    *scoring.Scorer
	quizzes   *quiz.Store
	redis     *redis.Client
	search    *catalog.SearchIndex
	validator *registry.InputValidator
	obs       *observability.Observability
	log       logger.Logger
}

// searcher keeps a nil index from becoming a non-nil interface.
func (d *dependencies) searcher() sbm.Searcher {
	if d.search == nil {
		return nil
	}
	return d.search
}

func registerWorkers(ctx context.Context, m *camunda.Manager, d *dependencies) error {
	start := func(taskType string, handler camunda.JobHandler) {
		m.Start(taskType, config.GetWorkerConfig(d.cfg, taskType), handler)
	}

	// --- Quiz ---
	start(sqr.TaskType, sqr.NewHandler(sqr.LoadConfig(), d.quizzes, d.validator, d.obs, d.log).Handle)
	start(ntr.TaskType, ntr.NewHandler(ntr.LoadConfig(), d.quizzes, d.validator, d.obs, d.log).Handle)

	// --- Paths ---
	start(cfs.TaskType, cfs.NewHandler(cfs.LoadConfig(), d.catalog, d.scorer, d.quizzes, d.validator, d.obs, d.log).Handle)
	start(rbp.TaskType, rbp.NewHandler(rbp.LoadConfig(d.cfg), d.catalog, d.scorer, d.quizzes, d.redis, d.validator, d.obs, d.log).Handle)
	start(sbm.TaskType, sbm.NewHandler(sbm.LoadConfig(), d.catalog, d.scorer, d.quizzes, d.searcher(), d.validator, d.obs, d.log).Handle)

	// --- Report ---
	start(pnc.TaskType, pnc.NewHandler(pnc.LoadConfig(), d.catalog, d.scorer, d.quizzes, d.validator, d.obs, d.log).Handle)

	if config.IsWorkerEnabled(d.cfg, srn.TaskType) {
		handler, err := newNotificationHandler(ctx, d)
		if err != nil {
			return err
		}
		start(srn.TaskType, handler.Handle)
	}

	return nil
}

func newNotificationHandler(ctx context.Context, d *dependencies) (*srn.Handler, error) {
	n := d.cfg.Notifications

	var email srn.EmailSender
	if n.Email.Enabled {
		client, err := aws.NewSESClient(ctx, n.AWS.Region, n.Email.FromEmail)
		if err != nil {
			return nil, fmt.Errorf("ses client: %w", err)
		}
		email = client
	}

	var sms srn.SMSSender
	if n.SMS.Enabled {
		client, err := aws.NewSNSClient(ctx, n.AWS.Region, n.SMS.SenderID)
		if err != nil {
			return nil, fmt.Errorf("sns client: %w", err)
		}
		sms = client
	}

	return srn.NewHandler(srn.LoadConfig(d.cfg), email, sms, d.validator, d.obs, d.log), nil
}
