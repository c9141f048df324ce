package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"pulsefeed/internal/config"

	"github.com/redis/go-redis/v9"
)

// payloadField is the stream entry field carrying the JSON-encoded event.
const payloadField = "payload"

// Consumer reads domain events off a redis stream with a consumer group and
// dispatches them. The transport is at-least-once: failed events stay
// unacknowledged for redelivery, and the engine's idempotence makes
// redelivery safe.
type Consumer struct {
	rdb        *redis.Client
	stream     string
	group      string
	consumer   string
	batchSize  int
	block      time.Duration
	dispatcher *Dispatcher
}

func NewConsumer(rdb *redis.Client, cfg *config.Config, dispatcher *Dispatcher) *Consumer {
	return &Consumer{
		rdb:        rdb,
		stream:     cfg.Redis.Stream,
		group:      cfg.Redis.Group,
		consumer:   cfg.Redis.Consumer,
		batchSize:  cfg.Worker.BatchSize,
		block:      time.Duration(cfg.Worker.BlockSeconds) * time.Second,
		dispatcher: dispatcher,
	}
}

// NewRedis connects to the event stream backend.
func NewRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// Run consumes until ctx is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.ensureGroup(ctx); err != nil {
		return err
	}
	log.Printf("Consuming %s as %s/%s", c.stream, c.group, c.consumer)

	for {
		if ctx.Err() != nil {
			return nil
		}

		streams, err := c.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.consumer,
			Streams:  []string{c.stream, ">"},
			Count:    int64(c.batchSize),
			Block:    c.block,
		}).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("Failed to read event stream: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				c.handleMessage(ctx, msg)
			}
		}
	}
}

func (c *Consumer) ensureGroup(ctx context.Context) error {
	err := c.rdb.XGroupCreateMkStream(ctx, c.stream, c.group, "$").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

// handleMessage acks decoded-and-dispatched events. Undecodable payloads are
// acked too (redelivery cannot fix them); dispatch failures stay pending so
// the transport redelivers.
func (c *Consumer) handleMessage(ctx context.Context, msg redis.XMessage) {
	ev, err := decodeEvent(msg)
	if err != nil {
		log.Printf("Dropping malformed event %s: %v", msg.ID, err)
		c.ack(ctx, msg.ID)
		return
	}

	if err := c.dispatcher.Dispatch(ctx, ev); err != nil {
		log.Printf("Failed to process event %s (%s), leaving for redelivery: %v", msg.ID, ev.Type, err)
		return
	}
	c.ack(ctx, msg.ID)
}

func (c *Consumer) ack(ctx context.Context, id string) {
	if err := c.rdb.XAck(ctx, c.stream, c.group, id).Err(); err != nil {
		log.Printf("Failed to ack event %s: %v", id, err)
	}
}

func decodeEvent(msg redis.XMessage) (*Event, error) {
	raw, ok := msg.Values[payloadField]
	if !ok {
		return nil, fmt.Errorf("missing %s field", payloadField)
	}
	payload, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%s field is not a string", payloadField)
	}

	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return nil, fmt.Errorf("invalid event payload: %w", err)
	}
	if ev.Type == "" {
		return nil, fmt.Errorf("event payload missing type")
	}
	return &ev, nil
}
