package worker

import (
	"context"
	"encoding/json"

	"github.com/amirda88/gas-cylinder-tracker/internal/service"

	"github.com/redis/go-redis/v9"
)

const (
	QueueNotify = "jobs:notify"

	jobTypeMovement = "movement_notification"
)

// Job is the generic envelope for all async tasks. Attempts counts prior
// failed deliveries; it is incremented on requeue.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// NotifyMovement pushes a movement-notification job; satisfies
// service.MovementNotifier.
func (d *Dispatcher) NotifyMovement(ctx context.Context, n service.MovementNotification) error {
	return d.enqueue(ctx, QueueNotify, jobTypeMovement, n, 0)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}, attempts int) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data, Attempts: attempts}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}
