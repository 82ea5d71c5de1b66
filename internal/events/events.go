// Package events publishes content-change notifications for
// downstream consumers (search indexers, notification fan-out).
// Publishing is best-effort: a broker failure is logged and never
// fails the originating request.
package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Action names the kind of content change.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ContentEvent describes one change to a learning material.
type ContentEvent struct {
	Action     Action    `json:"action"`
	MaterialID string    `json:"materialId"`
	Title      string    `json:"title,omitempty"`
	Version    int       `json:"version,omitempty"`
	ActorID    string    `json:"actorId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Backend defines the broker-agnostic publish operation.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// Publisher wraps a backend with JSON encoding and a fixed channel.
// A nil Publisher is valid and drops every event.
type Publisher struct {
	backend Backend
	channel string
	logger  *zap.Logger
}

// NewPublisher constructs a Publisher for the provided backend.
func NewPublisher(backend Backend, channel string, logger *zap.Logger) *Publisher {
	return &Publisher{backend: backend, channel: channel, logger: logger}
}

// Publish encodes and sends the event. Errors are logged, not
// returned; content writes must not depend on broker availability.
func (p *Publisher) Publish(ctx context.Context, event ContentEvent) {
	if p == nil || p.backend == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("encode content event", zap.Error(err))
		return
	}

	attrs := map[string]string{"action": string(event.Action)}
	if _, err := p.backend.Publish(ctx, p.channel, data, attrs); err != nil {
		p.logger.Error("publish content event",
			zap.String("material_id", event.MaterialID),
			zap.String("action", string(event.Action)),
			zap.Error(err),
		)
	}
}

// Close closes the underlying backend.
func (p *Publisher) Close() error {
	if p == nil || p.backend == nil {
		return nil
	}
	return p.backend.Close()
}
