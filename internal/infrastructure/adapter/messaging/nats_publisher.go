package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/amirhossein-jamali/command-line-bank/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/port/messaging"
)

// DefaultSubjectPrefix is prepended to every event type
const DefaultSubjectPrefix = "bank.ledger"

// NatsPublisher publishes ledger events as JSON on NATS subjects
type NatsPublisher struct {
	conn          *nats.Conn
	subjectPrefix string
	logger        coreport.Logger
}

// NewNatsPublisher connects to the NATS server at url
func NewNatsPublisher(url, subjectPrefix string, connectTimeout time.Duration, logger coreport.Logger) (messaging.EventPublisher, error) {
	if subjectPrefix == "" {
		subjectPrefix = DefaultSubjectPrefix
	}

	conn, err := nats.Connect(url,
		nats.Name("command-line-bank"),
		nats.Timeout(connectTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("Disconnected from NATS", map[string]any{"error": err.Error()})
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("Reconnected to NATS", map[string]any{"url": c.ConnectedUrl()})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}

	logger.Info("Connected to NATS", map[string]any{
		"url":            conn.ConnectedUrl(),
		"subject_prefix": subjectPrefix,
	})

	return &NatsPublisher{
		conn:          conn,
		subjectPrefix: subjectPrefix,
		logger:        logger,
	}, nil
}

// Subject returns the subject an event of type eventType is published on
func Subject(prefix string, eventType entity.EventType) string {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return prefix + "." + string(eventType)
}

// Publish implements messaging.EventPublisher
func (p *NatsPublisher) Publish(ctx context.Context, event entity.LedgerEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	subject := Subject(p.subjectPrefix, event.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}

	if _, ok := ctx.Deadline(); ok {
		if err := p.conn.FlushWithContext(ctx); err != nil {
			return fmt.Errorf("flush %s: %w", subject, err)
		}
	}
	return nil
}

// Close drains pending messages and closes the connection
func (p *NatsPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return fmt.Errorf("drain NATS connection: %w", err)
	}
	return nil
}
