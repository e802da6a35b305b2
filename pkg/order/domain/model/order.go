package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"orderservice/pkg/common/domain"
)

// Order is the aggregate root. Every change to its lines and status goes
// through its methods; a rejected call leaves it untouched.
type Order struct {
	domain.AggregateRoot
	customerID  uuid.UUID
	status      OrderStatus
	totalAmount Money
	items       []*OrderLine
}

func NewOrder(customerID uuid.UUID) *Order {
	return newOrder(uuid.Nil, customerID)
}

// NewOrderWithID is NewOrder for callers that reserve the id up front.
func NewOrderWithID(id, customerID uuid.UUID) *Order {
	return newOrder(id, customerID)
}

func newOrder(id, customerID uuid.UUID) *Order {
	o := &Order{
		AggregateRoot: domain.NewAggregateRoot(id),
		customerID:    customerID,
		status:        Pending,
		totalAmount:   Zero(),
	}
	o.AddEvent(OrderCreated{OrderID: o.ID(), CustomerID: customerID, At: o.CreatedAt()})
	return o
}

// RestoreOrder rebuilds an order loaded from storage. No events are recorded.
func RestoreOrder(
	id, customerID uuid.UUID,
	status OrderStatus,
	items []*OrderLine,
	version int,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if !status.Valid() {
		return nil, errors.Wrapf(ErrUnknownStatus, "%d", int(status))
	}
	o := &Order{
		AggregateRoot: domain.RestoreAggregateRoot(domain.RestoreEntity(id, createdAt, updatedAt), version),
		customerID:    customerID,
		status:        status,
		items:         items,
	}
	total, err := sumLines(items)
	if err != nil {
		return nil, err
	}
	o.totalAmount = total
	return o, nil
}

func (o *Order) CustomerID() uuid.UUID { return o.customerID }
func (o *Order) Status() OrderStatus   { return o.status }
func (o *Order) TotalAmount() Money    { return o.totalAmount }

// Items returns the lines in insertion order. Lines are copies.
func (o *Order) Items() []OrderLine {
	items := make([]OrderLine, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, *item)
	}
	return items
}

func (o *Order) Item(productID uuid.UUID) (OrderLine, bool) {
	if line := o.findLine(productID); line != nil {
		return *line, true
	}
	return OrderLine{}, false
}

// AddItem adds quantity of a product. A product already in the order has its
// quantity increased instead of getting a second line. All lines must share
// one currency.
func (o *Order) AddItem(productID uuid.UUID, unitPrice Money, quantity int) error {
	if _, err := o.status.next(opAddItem); err != nil {
		return err
	}
	if quantity <= 0 {
		return errors.Wrapf(ErrInvalidQuantity, "quantity %d", quantity)
	}
	if len(o.items) > 0 && o.items[0].UnitPrice().Currency() != unitPrice.Currency() {
		return errors.Wrapf(ErrCurrencyMismatch, "order is in %s, item is in %s",
			o.items[0].UnitPrice().Currency(), unitPrice.Currency())
	}

	items := o.items
	if line := o.findLine(productID); line != nil {
		if err := line.UpdateQuantity(line.Quantity() + quantity); err != nil {
			return err
		}
	} else {
		line, err := NewOrderLine(productID, unitPrice, quantity)
		if err != nil {
			return err
		}
		items = append(items, line)
	}

	total, err := sumLines(items)
	if err != nil {
		return err
	}
	o.items = items
	o.totalAmount = total
	o.Touch()
	return nil
}

func (o *Order) Confirm() error {
	status, err := o.status.next(opConfirm)
	if err != nil {
		return err
	}
	if len(o.items) == 0 {
		return ErrEmptyOrder
	}
	o.status = status
	o.Touch()
	o.AddEvent(OrderConfirmed{
		OrderID:     o.ID(),
		CustomerID:  o.customerID,
		TotalAmount: o.totalAmount,
		At:          o.UpdatedAt(),
	})
	return nil
}

func (o *Order) Cancel() error {
	status, err := o.status.next(opCancel)
	if err != nil {
		return err
	}
	o.status = status
	o.Touch()
	o.AddEvent(OrderCancelled{OrderID: o.ID(), CustomerID: o.customerID, At: o.UpdatedAt()})
	return nil
}

// Equals compares identity, not attributes.
func (o *Order) Equals(other *Order) bool {
	if o == nil || other == nil {
		return o == other
	}
	return o.ID() == other.ID()
}

func (o *Order) findLine(productID uuid.UUID) *OrderLine {
	for _, item := range o.items {
		if item.ProductID() == productID {
			return item
		}
	}
	return nil
}

// sumLines totals the lines in the currency of the first one.
func sumLines(items []*OrderLine) (Money, error) {
	if len(items) == 0 {
		return Zero(), nil
	}
	total, err := ZeroOf(items[0].TotalPrice().Currency())
	if err != nil {
		return Money{}, err
	}
	for _, item := range items {
		total, err = total.Add(item.TotalPrice())
		if err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

type OrderRepository interface {
	NextID() (uuid.UUID, error)
	// Store inserts a new order or updates an existing one, failing with
	// ErrOptimisticLock when the stored version moved on.
	Store(ctx context.Context, order *Order) error
	Find(ctx context.Context, id uuid.UUID) (*Order, error)
}
