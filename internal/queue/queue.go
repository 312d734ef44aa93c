package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pyefi/excess-rewards-keeper/internal/config"
	"github.com/pyefi/excess-rewards-keeper/internal/observability/metrics"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// publisher sends one message to the configured exchange and waits for the broker to accept it.
type publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
	Close() error
}

// QueueManager publishes every excess reward report as an event.
type QueueManager struct {
	publisher publisher
	cfg       *config.QueueConfig
}

func NewQueueManager(cfg *config.QueueConfig) (*QueueManager, error) {
	p, err := dialPublisher(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to queue: %w", err)
	}
	return &QueueManager{publisher: p, cfg: cfg}, nil
}

func (qm *QueueManager) ObserveReport(ctx context.Context, report *types.ExcessRewardReport) error {
	body, err := json.Marshal(NewExcessRewardReportEvent(report))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, qm.cfg.PublishTimeout)
	defer cancel()

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    report.CreatedAt,
		Type:         ExcessRewardReportEventType,
		Body:         body,
	}
	if err := qm.publisher.Publish(ctx, routingKey(report), msg); err != nil {
		metrics.RecordQueuePublishError()
		return fmt.Errorf("failed to publish report of bond %s epoch %d: %w", report.Bond, report.Epoch, err)
	}

	log.Ctx(ctx).Debug().
		Stringer("bond", report.Bond).
		Uint64("epoch", report.Epoch).
		Msg("published excess reward report")
	return nil
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	log.Info().Msg("Shutting down queue manager")
	if err := qm.publisher.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close queue connection")
	}
}

func routingKey(report *types.ExcessRewardReport) string {
	return "report." + report.VoteAccount.String()
}
