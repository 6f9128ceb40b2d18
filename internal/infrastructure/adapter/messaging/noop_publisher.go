package messaging

import (
	"context"

	"github.com/amirhossein-jamali/command-line-bank/internal/domain/entity"
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/port/messaging"
)

// NoopPublisher drops every event; used when messaging is disabled
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that discards events
func NewNoopPublisher() messaging.EventPublisher {
	return NoopPublisher{}
}

func (NoopPublisher) Publish(context.Context, entity.LedgerEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
