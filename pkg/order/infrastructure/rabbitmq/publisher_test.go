package rabbitmq

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderservice/pkg/order/domain/model"
	"orderservice/pkg/order/infrastructure/encoding"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type mockChannel struct {
	published []published
	err       error
	closed    bool
}

func (m *mockChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (m *mockChannel) Close() error {
	m.closed = true
	return nil
}

func newTestPublisher(t *testing.T, ch *mockChannel) *Publisher {
	encoder, err := encoding.NewEncoder(encoding.JSON)
	require.NoError(t, err)
	logger := log.New()
	logger.SetOutput(io.Discard)
	return NewPublisher(ch, "orders", encoder, logger)
}

func TestPublisher_Dispatch(t *testing.T) {
	ch := &mockChannel{}
	publisher := newTestPublisher(t, ch)
	event := model.OrderCreated{OrderID: uuid.New(), CustomerID: uuid.New(), At: time.Now()}

	require.NoError(t, publisher.Dispatch(context.Background(), event))

	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, "orders", got.exchange)
	assert.Equal(t, model.OrderCreatedType, got.key)
	assert.Equal(t, encoding.ContentTypeJSON, got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, event.OrderID.String(), got.msg.Headers["aggregateId"])
	assert.Contains(t, string(got.msg.Body), `"eventType":"order.created"`)
}

func TestPublisher_DispatchError(t *testing.T) {
	brokerErr := errors.New("channel closed")
	publisher := newTestPublisher(t, &mockChannel{err: brokerErr})

	err := publisher.Dispatch(context.Background(), model.OrderCancelled{OrderID: uuid.New()})

	assert.ErrorIs(t, err, brokerErr)
}

func TestPublisher_Close(t *testing.T) {
	ch := &mockChannel{}
	require.NoError(t, newTestPublisher(t, ch).Close())
	assert.True(t, ch.closed)
}
