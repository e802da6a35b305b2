package eventlog_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderservice/pkg/order/domain/model"
	"orderservice/pkg/order/infrastructure/eventlog"
)

func TestDispatcher(t *testing.T) {
	logger, hook := test.NewNullLogger()
	event := model.OrderCreated{OrderID: uuid.New(), CustomerID: uuid.New(), At: time.Now()}

	require.NoError(t, eventlog.NewDispatcher(logger).Dispatch(context.Background(), event))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "domain event", entry.Message)
	assert.Equal(t, model.OrderCreatedType, entry.Data["eventType"])
	assert.Equal(t, event.CustomerID.String(), entry.Data["data.customerId"])
}
