package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pyefi/excess-rewards-keeper/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeKind = "topic"

// amqpPublisher publishes on a confirm mode channel of a single connection.
type amqpPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func dialPublisher(cfg *config.QueueConfig) (*amqpPublisher, error) {
	conn, err := amqp.DialConfig(cfg.Url, amqp.Config{
		SASL: []amqp.Authentication{
			&amqp.PlainAuth{Username: cfg.User, Password: cfg.Password},
		},
	})
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, exchangeKind, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}
	if err := ch.Confirm(false); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	return &amqpPublisher{conn: conn, ch: ch, exchange: cfg.Exchange}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	confirmation, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, p.exchange, routingKey, false, false, msg)
	if err != nil {
		return err
	}
	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return errors.New("message was not acknowledged by the broker")
	}
	return nil
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return errors.Join(p.ch.Close(), p.conn.Close())
}
