package scheduler

import (
	"context"
	"fmt"

	"marketplace_backend/internal/credits/repository"
	"marketplace_backend/platform/config"
	"marketplace_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// LedgerEntryWriter persists audit entries.
type LedgerEntryWriter interface {
	Insert(ctx context.Context, e repository.LedgerEntry) error
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	writer LedgerEntryWriter
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, writer LedgerEntryWriter, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		writer: writer,
		log:    log,
	}

	mux.HandleFunc(TaskLedgerRecord, w.handleLedgerRecord)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleLedgerRecord(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLedgerRecordPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	entryID, err := uuid.Parse(payload.EntryID)
	if err != nil {
		return fmt.Errorf("%w: invalid entry id: %v", asynq.SkipRetry, err)
	}

	if err := w.writer.Insert(ctx, repository.LedgerEntry{
		ID:           entryID,
		AccountID:    payload.AccountID,
		EntryType:    payload.EntryType,
		Amount:       payload.Amount,
		BalanceAfter: payload.BalanceAfter,
		Reference:    payload.Reference,
		OccurredAt:   payload.OccurredAt,
	}); err != nil {
		return err
	}

	w.log.Debug("ledger entry recorded", "entryId", payload.EntryID, "accountId", payload.AccountID)
	return nil
}
