package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/shared"
)

// Client enqueues background tasks for the worker process.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

// EnqueueGenerateDerivatives schedules thumbnail and display variant
// generation for a freshly uploaded object.
func (c *Client) EnqueueGenerateDerivatives(ctx context.Context, objectKey string) error {
	payload, err := json.Marshal(shared.GenerateDerivativesPayload{ObjectKey: objectKey})
	if err != nil {
		return fmt.Errorf("marshal derivatives payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeGenerateDerivatives, payload)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", shared.TypeGenerateDerivatives, err)
	}

	log.Debug().
		Str("task_id", info.ID).
		Str("object_key", objectKey).
		Msg("[QUEUE] derivatives task enqueued")
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
