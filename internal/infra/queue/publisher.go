// Package queue publishes domain lifecycle events (project created,
// like toggled, comment posted) to a topic exchange. Publishing is
// fire-and-forget from the caller's perspective: failures are logged
// and never fail the originating request.
package queue

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/vitrine-app/vitrine-api/internal/config"
)

// Publisher is implemented by the amqp publisher and by test fakes.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any)
}

type amqpPublisher struct {
	conn     *amqp.Connection
	exchange string
	log      *zap.Logger
}

// NewPublisher declares the topic exchange and returns a publisher
// bound to it.
func NewPublisher(conn *amqp.Connection, cfg *config.Config, log *zap.Logger) (Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(cfg.RabbitMQ.Exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, err
	}

	return &amqpPublisher{conn: conn, exchange: cfg.RabbitMQ.Exchange, log: log}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, routingKey string, payload any) {
	body, err := sonic.Marshal(payload)
	if err != nil {
		p.log.Sugar().Warnw("event payload not serializable", "key", routingKey, "err", err)
		return
	}

	ch, err := p.conn.Channel()
	if err != nil {
		p.log.Sugar().Warnw("event channel open failed", "key", routingKey, "err", err)
		return
	}
	defer ch.Close()

	err = ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now().UTC(),
		Body:        body,
	})
	if err != nil {
		p.log.Sugar().Warnw("event publish failed", "key", routingKey, "err", err)
	}
}

// Nop returns a publisher that drops everything. Used in tests and
// when the broker is not configured.
func Nop() Publisher { return nopPublisher{} }

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, any) {}
