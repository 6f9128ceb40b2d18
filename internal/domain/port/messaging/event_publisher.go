package messaging

import (
	"context"

	"github.com/amirhossein-jamali/command-line-bank/internal/domain/entity"
)

// EventPublisher delivers ledger events to interested consumers
type EventPublisher interface {
	// Publish sends a single event
	//
	// Possible errors:
	// - transport errors from the underlying broker connection
	Publish(ctx context.Context, event entity.LedgerEvent) error

	// Close flushes pending messages and releases the connection
	Close() error
}
