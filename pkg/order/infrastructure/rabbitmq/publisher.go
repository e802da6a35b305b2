package rabbitmq

import (
	"context"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"

	"orderservice/pkg/common/domain"
	"orderservice/pkg/order/infrastructure/encoding"
)

const exchangeKind = "topic"

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends order events to a topic exchange, one routing key per
// event type.
type Publisher struct {
	conn     *amqp.Connection
	channel  channel
	exchange string
	encoder  encoding.Encoder
	logger   log.FieldLogger
}

func Dial(url, exchange string, encoder encoding.Encoder, logger log.FieldLogger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "open rabbitmq channel")
	}
	if err := ch.ExchangeDeclare(exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(err, "declare exchange %s", exchange)
	}
	p := NewPublisher(ch, exchange, encoder, logger)
	p.conn = conn
	return p, nil
}

func NewPublisher(ch channel, exchange string, encoder encoding.Encoder, logger log.FieldLogger) *Publisher {
	return &Publisher{channel: ch, exchange: exchange, encoder: encoder, logger: logger}
}

func (p *Publisher) Dispatch(ctx context.Context, event domain.Event) error {
	msg, err := p.encoder.Encode(event)
	if err != nil {
		return err
	}
	err = p.channel.PublishWithContext(ctx, p.exchange, msg.Type, false, false, amqp.Publishing{
		ContentType:  msg.ContentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    msg.OccurredOn,
		Type:         msg.Type,
		Headers:      amqp.Table{"aggregateId": msg.Key},
		Body:         msg.Body,
	})
	if err != nil {
		return errors.Wrapf(err, "publish %s", msg.Type)
	}
	p.logger.WithFields(log.Fields{
		"exchange":  p.exchange,
		"eventType": msg.Type,
		"eventId":   msg.ID,
	}).Debug("event published")
	return nil
}

func (p *Publisher) Close() error {
	err := p.channel.Close()
	if p.conn != nil {
		if connErr := p.conn.Close(); err == nil {
			err = connErr
		}
	}
	return err
}
