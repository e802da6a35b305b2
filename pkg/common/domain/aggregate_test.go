package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderservice/pkg/common/domain"
)

type testEvent struct {
	id   uuid.UUID
	name string
}

func (e testEvent) Type() string            { return e.name }
func (e testEvent) AggregateID() uuid.UUID  { return e.id }
func (e testEvent) OccurredOn() time.Time   { return time.Time{} }
func (e testEvent) Data() domain.EventData  { return nil }

func TestNewEntity_GeneratesID(t *testing.T) {
	e := domain.NewEntity(uuid.Nil)

	assert.NotEqual(t, uuid.Nil, e.ID())
	assert.False(t, e.CreatedAt().IsZero())
	assert.Equal(t, e.CreatedAt(), e.UpdatedAt())
}

func TestNewEntity_KeepsSuppliedID(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, id, domain.NewEntity(id).ID())
}

func TestEntity_Touch(t *testing.T) {
	created := time.Now().Add(-time.Hour)
	e := domain.RestoreEntity(uuid.New(), created, created)

	e.Touch()

	assert.True(t, e.UpdatedAt().After(created))
	assert.Equal(t, created.UTC(), e.CreatedAt())
}

func TestAggregateRoot_EventBuffer(t *testing.T) {
	root := domain.NewAggregateRoot(uuid.Nil)
	first := testEvent{id: root.ID(), name: "first"}
	second := testEvent{id: root.ID(), name: "second"}

	root.AddEvent(first)
	root.AddEvent(second)

	events := root.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "first", events[0].Type())
	assert.Equal(t, "second", events[1].Type())

	t.Run("Events returns a copy", func(t *testing.T) {
		events[0] = second
		assert.Equal(t, "first", root.Events()[0].Type())
	})

	t.Run("Clear empties the buffer", func(t *testing.T) {
		root.ClearEvents()
		assert.Empty(t, root.Events())
	})

	t.Run("Pull drains the buffer", func(t *testing.T) {
		root.AddEvent(first)
		pulled := root.PullEvents()
		assert.Len(t, pulled, 1)
		assert.Empty(t, root.Events())
	})
}

func TestAggregateRoot_Version(t *testing.T) {
	root := domain.RestoreAggregateRoot(domain.NewEntity(uuid.Nil), 3)
	root.IncrementVersion()
	assert.Equal(t, 4, root.Version())
}

func TestEventData_KeepsOrder(t *testing.T) {
	data := domain.EventData{
		{Key: "orderId", Value: "o-1"},
		{Key: "customerId", Value: "c-1"},
		{Key: "totalAmount", Value: "21.00"},
	}

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	assert.Equal(t, `{"orderId":"o-1","customerId":"c-1","totalAmount":"21.00"}`, string(raw))

	value, ok := data.Get("customerId")
	assert.True(t, ok)
	assert.Equal(t, "c-1", value)
	_, ok = data.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"orderId", "customerId", "totalAmount"}, data.Keys())
	assert.Len(t, data.Map(), 3)
}
