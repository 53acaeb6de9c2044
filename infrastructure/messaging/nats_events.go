package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"taskboard/domain/ports"
	"taskboard/pkg/logger"
)

// Subjects for task lifecycle events: tasks.created, tasks.updated,
// tasks.deleted, tasks.shared.
const subjectPrefix = "tasks."

// NATSEventPublisher publishes task lifecycle events to NATS. Consumers are
// external (activity feeds, notification fan-out); the API never depends on a
// publish succeeding.
type NATSEventPublisher struct {
	conn *nats.Conn
}

func NewNATSEventPublisher(url string) (*NATSEventPublisher, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("NATS connected", "url", url)
	return &NATSEventPublisher{conn: conn}, nil
}

func (p *NATSEventPublisher) PublishTaskEvent(ctx context.Context, event *ports.TaskEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal task event: %w", err)
	}

	subject := subjectPrefix + event.Type
	if err := p.conn.Publish(subject, data); err != nil {
		logger.ErrorContext(ctx, "Failed to publish task event",
			"subject", subject,
			"task_id", event.TaskID,
			"error", err,
		)
		return err
	}

	logger.DebugContext(ctx, "Task event published", "subject", subject, "task_id", event.TaskID)
	return nil
}

func (p *NATSEventPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
