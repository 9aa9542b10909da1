package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/betterscore/scoreboard-service/internal/domain/game"
	"github.com/betterscore/scoreboard-service/internal/logging"
)

// DefaultSubject is used when no subject is configured.
const DefaultSubject = "scoreboard.state"

// ErrNoURL is returned by Connect when no server URL is configured.
var ErrNoURL = errors.New("nats url not configured")

// conn is the subset of *nats.Conn the publisher needs.
type conn interface {
	Publish(subj string, data []byte) error
	Drain() error
	Close()
}

// Publisher mirrors every state change onto a NATS subject.
type Publisher struct {
	nc      conn
	subject string
	logger  *slog.Logger
}

// Connect dials url and returns a publisher for subject.
func Connect(url, subject string, logger *slog.Logger) (*Publisher, error) {
	if url == "" {
		return nil, ErrNoURL
	}
	opts := []nats.Option{
		nats.Name("scoreboard-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logging.Warn(logger, "nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logging.Info(logger, "nats reconnected", "url", nc.ConnectedUrl())
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return newPublisher(nc, subject, logger), nil
}

func newPublisher(nc conn, subject string, logger *slog.Logger) *Publisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Publisher{nc: nc, subject: subject, logger: logger}
}

// Subject returns the subject states are published on.
func (p *Publisher) Subject() string {
	return p.subject
}

// Publish sends state as JSON. Failures are logged and dropped.
func (p *Publisher) Publish(state game.State) {
	if p == nil || p.nc == nil {
		return
	}
	data, err := json.Marshal(state)
	if err != nil {
		logging.Error(p.logger, "failed to encode state for nats", err)
		return
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		logging.Warn(p.logger, "nats publish failed", "subject", p.subject, "error", err)
	}
}

// Close flushes pending messages and closes the connection.
func (p *Publisher) Close() error {
	if p == nil || p.nc == nil {
		return nil
	}
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
		return err
	}
	return nil
}
