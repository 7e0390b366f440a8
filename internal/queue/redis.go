package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"pcbanai/core/internal/config"
	"pcbanai/core/internal/domain/task"
)

const streamPrefix = "pcbanai:stream:"

// StreamName resolves a task type to its redis stream.
func StreamName(taskType string) string {
	return streamPrefix + taskType
}

// Queue carries scrape tasks between the enqueuer and the worker pool on
// redis streams.
type Queue interface {
	AddTask(ctx context.Context, t task.Task) (string, error) // Returns message ID
	GetTask(ctx context.Context, group, consumer, stream string) (*redis.XMessage, error)
	AckTask(ctx context.Context, stream, group, msgID string) error
	AutoClaim(ctx context.Context, group, consumer, stream string, minIdleTime time.Duration) ([]redis.XMessage, error)
}

type redisQueue struct {
	redisClient *redis.Client
	groupName   string
}

// NewRedisQueue ensures the task streams and consumer group exist before any
// worker starts.
func NewRedisQueue(redisClient *redis.Client, cfg config.RedisConfig) (Queue, error) {
	q := &redisQueue{
		redisClient: redisClient,
		groupName:   cfg.ConsumerGroup,
	}

	ctx := context.Background()
	for _, taskType := range []string{task.TypeListingPage, task.TypePageRetry} {
		if err := q.ensureStream(ctx, StreamName(taskType)); err != nil {
			return nil, fmt.Errorf("failed to prepare stream for %s: %w", taskType, err)
		}
	}

	return q, nil
}

func (q *redisQueue) AddTask(ctx context.Context, t task.Task) (string, error) {
	streamName := StreamName(t.TaskType())

	payload, err := t.TaskValue()
	if err != nil {
		return "", fmt.Errorf("failed to serialize task: %w", err)
	}

	messageID, err := q.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{
			"task_type": t.TaskType(),
			"task_data": string(payload),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to add task to stream %s: %w", streamName, err)
	}

	log.Debugf("Queued %s on %s as %s", t.TaskType(), streamName, messageID)
	return messageID, nil
}

func (q *redisQueue) GetTask(ctx context.Context, group, consumer, stream string) (*redis.XMessage, error) {
	result, err := q.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    1,
		Block:    5 * time.Second,
	}).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // No new messages
		}
		return nil, fmt.Errorf("failed to read from stream %s: %w", stream, err)
	}

	if len(result) == 0 || len(result[0].Messages) == 0 {
		return nil, nil
	}
	return &result[0].Messages[0], nil
}

func (q *redisQueue) AckTask(ctx context.Context, stream, group, msgID string) error {
	return q.redisClient.XAck(ctx, stream, group, msgID).Err()
}

func (q *redisQueue) AutoClaim(
	ctx context.Context,
	group,
	consumer,
	stream string,
	minIdleTime time.Duration,
) ([]redis.XMessage, error) {
	result, _, err := q.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   stream,
		Group:    group,
		Consumer: consumer,
		MinIdle:  minIdleTime,
		Start:    "0-0",
		Count:    1,
	}).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to claim messages from stream %s: %w", stream, err)
	}

	return result, nil
}

// ensureStream creates the stream (via a deleted sentinel entry) and its
// consumer group so XREADGROUP never fails on a fresh redis.
func (q *redisQueue) ensureStream(ctx context.Context, streamName string) error {
	sentinelID, err := q.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{"init": "sentinel"},
	}).Result()
	if err != nil {
		log.Warnf("Failed to create stream %s: %v", streamName, err)
	}

	err = q.redisClient.XGroupCreateMkStream(ctx, streamName, q.groupName, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}

	if sentinelID != "" {
		if err := q.redisClient.XDel(ctx, streamName, sentinelID).Err(); err != nil {
			log.Warnf("Failed to delete sentinel entry from %s: %v", streamName, err)
		}
	}

	log.Debugf("Stream %s ready for group %s", streamName, q.groupName)
	return nil
}
