package domain

import "context"

// Dispatcher accepts background jobs keyed by type. Enqueue returns once the
// job is accepted into the queue's backing store; it never waits for the job
// to run. Delivery is at-least-once, so handlers must tolerate duplicates.
type Dispatcher interface {
	Enqueue(ctx context.Context, jobKey string, payload any) error
}

// JobHandler executes one kind of background job. Payload is the JSON the
// producer enqueued for the handler's key.
type JobHandler interface {
	Key() string
	Handle(ctx context.Context, payload []byte) error
}
