package messaging

import (
	"time"

	coreport "github.com/amirhossein-jamali/command-line-bank/internal/domain/port/core"
	"github.com/amirhossein-jamali/command-line-bank/internal/domain/port/messaging"
)

// Options selects and configures the event publisher
type Options struct {
	Enabled        bool
	URL            string
	SubjectPrefix  string
	ConnectTimeout time.Duration
}

// New returns a NATS publisher when messaging is enabled, a no-op one otherwise
func New(opts Options, logger coreport.Logger) (messaging.EventPublisher, error) {
	if !opts.Enabled {
		logger.Debug("Event publishing disabled", nil)
		return NewNoopPublisher(), nil
	}

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return NewNatsPublisher(opts.URL, opts.SubjectPrefix, timeout, logger)
}
