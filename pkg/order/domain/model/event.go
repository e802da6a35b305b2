package model

import (
	"time"

	"github.com/google/uuid"

	"orderservice/pkg/common/domain"
)

const (
	OrderCreatedType   = "order.created"
	OrderConfirmedType = "order.confirmed"
	OrderCancelledType = "order.cancelled"
)

type OrderCreated struct {
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	At         time.Time
}

func (e OrderCreated) Type() string           { return OrderCreatedType }
func (e OrderCreated) AggregateID() uuid.UUID { return e.OrderID }
func (e OrderCreated) OccurredOn() time.Time  { return e.At }

func (e OrderCreated) Data() domain.EventData {
	return domain.EventData{
		{Key: "orderId", Value: e.OrderID.String()},
		{Key: "customerId", Value: e.CustomerID.String()},
		{Key: "occurredOn", Value: e.At},
	}
}

type OrderConfirmed struct {
	OrderID     uuid.UUID
	CustomerID  uuid.UUID
	TotalAmount Money
	At          time.Time
}

func (e OrderConfirmed) Type() string           { return OrderConfirmedType }
func (e OrderConfirmed) AggregateID() uuid.UUID { return e.OrderID }
func (e OrderConfirmed) OccurredOn() time.Time  { return e.At }

func (e OrderConfirmed) Data() domain.EventData {
	return domain.EventData{
		{Key: "orderId", Value: e.OrderID.String()},
		{Key: "customerId", Value: e.CustomerID.String()},
		{Key: "totalAmount", Value: e.TotalAmount.Amount().StringFixed(moneyPrecision)},
		{Key: "currency", Value: e.TotalAmount.Currency()},
		{Key: "occurredOn", Value: e.At},
	}
}

type OrderCancelled struct {
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	At         time.Time
}

func (e OrderCancelled) Type() string           { return OrderCancelledType }
func (e OrderCancelled) AggregateID() uuid.UUID { return e.OrderID }
func (e OrderCancelled) OccurredOn() time.Time  { return e.At }

func (e OrderCancelled) Data() domain.EventData {
	return domain.EventData{
		{Key: "orderId", Value: e.OrderID.String()},
		{Key: "customerId", Value: e.CustomerID.String()},
		{Key: "occurredOn", Value: e.At},
	}
}
