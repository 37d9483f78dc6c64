package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"meetapp/internal/domain"
)

// DefaultListKey is the Redis list holding pending jobs.
const DefaultListKey = "meetapp:jobs"

const (
	defaultPopTimeout  = 5 * time.Second
	defaultMaxAttempts = 3
)

// Job is the envelope stored on the Redis list. Payload is the JSON the
// producer enqueued; Attempts counts delivery tries for the retry cap.
type Job struct {
	ID         string          `json:"id"`
	Key        string          `json:"key"`
	Payload    json.RawMessage `json:"payload"`
	Attempts   int             `json:"attempts"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// RedisDispatcher implements domain.Dispatcher on a Redis list.
type RedisDispatcher struct {
	client *redis.Client
	list   string
}

// NewRedisDispatcher creates a dispatcher pushing onto the given list key.
// An empty list key falls back to DefaultListKey.
func NewRedisDispatcher(client *redis.Client, list string) *RedisDispatcher {
	if list == "" {
		list = DefaultListKey
	}
	return &RedisDispatcher{client: client, list: list}
}

// Enqueue marshals the payload into a job envelope and pushes it. It returns
// once Redis accepts the push and never waits for the job to run.
func (d *RedisDispatcher) Enqueue(ctx context.Context, jobKey string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal job payload: %w", err)
	}
	job := Job{
		ID:         uuid.NewString(),
		Key:        jobKey,
		Payload:    raw,
		EnqueuedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job envelope: %w", err)
	}
	if err := d.client.LPush(ctx, d.list, data).Err(); err != nil {
		return fmt.Errorf("push job %s: %w", jobKey, err)
	}
	return nil
}

// Worker pops jobs off the list and dispatches them to handlers by key.
// A failed job is re-enqueued with its attempt counter bumped until the
// retry cap, so delivery is at-least-once and handlers must tolerate
// duplicate runs.
type Worker struct {
	client      *redis.Client
	list        string
	logger      *slog.Logger
	handlers    map[string]domain.JobHandler
	popTimeout  time.Duration
	maxAttempts int
}

// NewWorker creates a worker consuming the given list with the given handlers.
func NewWorker(client *redis.Client, list string, logger *slog.Logger, handlers ...domain.JobHandler) *Worker {
	if list == "" {
		list = DefaultListKey
	}
	byKey := make(map[string]domain.JobHandler, len(handlers))
	for _, h := range handlers {
		byKey[h.Key()] = h
	}
	return &Worker{
		client:      client,
		list:        list,
		logger:      logger,
		handlers:    byKey,
		popTimeout:  defaultPopTimeout,
		maxAttempts: defaultMaxAttempts,
	}
}

// Run consumes jobs until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		res, err := w.client.BRPop(ctx, w.popTimeout, w.list).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.ErrorContext(ctx, "queue pop failed", "err", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
			}
			continue
		}
		// BRPop returns [list, value].
		if len(res) < 2 {
			continue
		}
		w.process(ctx, []byte(res[1]))
	}
}

func (w *Worker) process(ctx context.Context, data []byte) {
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		w.logger.ErrorContext(ctx, "dropping malformed job", "err", err)
		return
	}
	handler, ok := w.handlers[job.Key]
	if !ok {
		w.logger.ErrorContext(ctx, "dropping job with no handler", "job_id", job.ID, "key", job.Key)
		return
	}

	job.Attempts++
	if err := handler.Handle(ctx, job.Payload); err != nil {
		if job.Attempts >= w.maxAttempts {
			w.logger.ErrorContext(ctx, "job failed, retries exhausted",
				"job_id", job.ID, "key", job.Key, "attempts", job.Attempts, "err", err)
			return
		}
		w.logger.WarnContext(ctx, "job failed, re-enqueueing",
			"job_id", job.ID, "key", job.Key, "attempts", job.Attempts, "err", err)
		requeued, merr := json.Marshal(job)
		if merr != nil {
			w.logger.ErrorContext(ctx, "dropping job, re-marshal failed", "job_id", job.ID, "err", merr)
			return
		}
		if perr := w.client.LPush(ctx, w.list, requeued).Err(); perr != nil {
			w.logger.ErrorContext(ctx, "dropping job, re-enqueue failed", "job_id", job.ID, "err", perr)
		}
		return
	}
	w.logger.InfoContext(ctx, "job processed", "job_id", job.ID, "key", job.Key, "attempts", job.Attempts)
}
