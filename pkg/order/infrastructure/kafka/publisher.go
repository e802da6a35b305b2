package kafka

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"orderservice/pkg/common/domain"
	"orderservice/pkg/order/infrastructure/encoding"
)

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes order events to one topic keyed by order id, so events of
// an order stay in one partition and keep their order.
type Publisher struct {
	writer  writer
	encoder encoding.Encoder
	logger  log.FieldLogger
}

// ParseBrokers splits a comma separated broker list.
func ParseBrokers(csv string) []string {
	var brokers []string
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

func NewPublisher(w writer, encoder encoding.Encoder, logger log.FieldLogger) *Publisher {
	return &Publisher{writer: w, encoder: encoder, logger: logger}
}

func (p *Publisher) Dispatch(ctx context.Context, event domain.Event) error {
	msg, err := p.encoder.Encode(event)
	if err != nil {
		return err
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Key),
		Value: msg.Body,
		Time:  msg.OccurredOn,
		Headers: []kafka.Header{
			{Key: "eventId", Value: []byte(msg.ID)},
			{Key: "eventType", Value: []byte(msg.Type)},
			{Key: "contentType", Value: []byte(msg.ContentType)},
		},
	})
	if err != nil {
		return errors.Wrapf(err, "write %s", msg.Type)
	}
	p.logger.WithFields(log.Fields{"eventType": msg.Type, "eventId": msg.ID}).Debug("event published")
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
