package bank

import (
	"context"
	"sync"
	"time"

	"github.com/amirhossein-jamali/command-line-bank/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/port/messaging"
)

const (
	defaultQueueSize      = 100
	defaultPublishTimeout = 5 * time.Second
)

// EventDispatcher delivers ledger events to a publisher, one ordered queue per username
type EventDispatcher struct {
	logger         coreport.Logger
	publisher      messaging.EventPublisher
	queueSize      int
	publishTimeout time.Duration

	// Per-user event queues for strict ordering
	userQueues     sync.Map // map[string]chan entity.LedgerEvent
	queueWaitGroup sync.WaitGroup

	// closeMu guards closed; senders hold the read lock while enqueuing
	closeMu sync.RWMutex
	closed  bool
}

// NewEventDispatcher creates a new event dispatcher
func NewEventDispatcher(logger coreport.Logger, publisher messaging.EventPublisher, queueSize int) *EventDispatcher {
	if publisher == nil {
		panic("Event publisher cannot be nil")
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	return &EventDispatcher{
		logger:         logger,
		publisher:      publisher,
		queueSize:      queueSize,
		publishTimeout: defaultPublishTimeout,
	}
}

// WithPublishTimeout sets the deadline applied to each publish call
func (d *EventDispatcher) WithPublishTimeout(timeout time.Duration) *EventDispatcher {
	if timeout > 0 {
		d.publishTimeout = timeout
	}
	return d
}

// Dispatch adds an event to its user's queue.
// It blocks only while that queue is full; after Shutdown events are dropped.
func (d *EventDispatcher) Dispatch(ctx context.Context, event entity.LedgerEvent) {
	d.closeMu.RLock()
	defer d.closeMu.RUnlock()

	if d.closed {
		d.logger.Warn("Event dispatcher is shut down, dropping event", map[string]any{
			"event_type": string(event.Type),
			"username":   event.Username,
		})
		return
	}

	queue := d.queueFor(event.Username)

	select {
	case queue <- event:
		d.logger.Debug("Event enqueued", map[string]any{
			"event_type":     string(event.Type),
			"username":       event.Username,
			"transaction_id": event.TransactionID,
		})
	case <-ctx.Done():
		d.logger.Warn("Context canceled while enqueueing event", map[string]any{
			"event_type": string(event.Type),
			"username":   event.Username,
			"error":      ctx.Err().Error(),
		})
	}
}

// queueFor returns the user's queue, starting its worker on first use
func (d *EventDispatcher) queueFor(username string) chan entity.LedgerEvent {
	if queue, ok := d.userQueues.Load(username); ok {
		return queue.(chan entity.LedgerEvent)
	}

	queueIface, loaded := d.userQueues.LoadOrStore(username, make(chan entity.LedgerEvent, d.queueSize))
	queue := queueIface.(chan entity.LedgerEvent)

	if !loaded {
		d.logger.Debug("Starting event queue worker for user", map[string]any{
			"username": username,
		})
		d.queueWaitGroup.Add(1)
		go d.processUserEvents(username, queue)
	}
	return queue
}

// processUserEvents publishes a user's events sequentially
func (d *EventDispatcher) processUserEvents(username string, queue chan entity.LedgerEvent) {
	defer d.queueWaitGroup.Done()

	for event := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.publishTimeout)
		err := d.publisher.Publish(ctx, event)
		cancel()

		if err != nil {
			d.logger.Error("Failed to publish event", map[string]any{
				"event_type":     string(event.Type),
				"username":       username,
				"transaction_id": event.TransactionID,
				"error":          err.Error(),
			})
		}
	}

	d.logger.Debug("Event queue worker stopped", map[string]any{
		"username": username,
	})
}

// Shutdown closes every queue and waits until queued events are published
func (d *EventDispatcher) Shutdown() {
	d.closeMu.Lock()
	if d.closed {
		d.closeMu.Unlock()
		return
	}
	d.closed = true
	d.closeMu.Unlock()

	d.logger.Info("Shutting down event dispatcher", nil)

	d.userQueues.Range(func(_, queueIface any) bool {
		close(queueIface.(chan entity.LedgerEvent))
		return true
	})

	d.queueWaitGroup.Wait()
	d.logger.Info("Event dispatcher shut down successfully", nil)
}
