package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"orderservice/pkg/common/domain"
)

// OrderLine is one product entry of an order. It is owned by its Order and
// changed only through it.
type OrderLine struct {
	domain.Entity
	productID  uuid.UUID
	unitPrice  Money
	quantity   int
	totalPrice Money
}

func NewOrderLine(productID uuid.UUID, unitPrice Money, quantity int) (*OrderLine, error) {
	totalPrice, err := lineTotal(unitPrice, quantity)
	if err != nil {
		return nil, err
	}
	return &OrderLine{
		Entity:     domain.NewEntity(uuid.Nil),
		productID:  productID,
		unitPrice:  unitPrice,
		quantity:   quantity,
		totalPrice: totalPrice,
	}, nil
}

// RestoreOrderLine rebuilds a persisted line; the total is recomputed.
func RestoreOrderLine(id, productID uuid.UUID, unitPrice Money, quantity int, createdAt, updatedAt time.Time) (*OrderLine, error) {
	totalPrice, err := lineTotal(unitPrice, quantity)
	if err != nil {
		return nil, err
	}
	return &OrderLine{
		Entity:     domain.RestoreEntity(id, createdAt, updatedAt),
		productID:  productID,
		unitPrice:  unitPrice,
		quantity:   quantity,
		totalPrice: totalPrice,
	}, nil
}

func (l *OrderLine) ProductID() uuid.UUID { return l.productID }
func (l *OrderLine) UnitPrice() Money     { return l.unitPrice }
func (l *OrderLine) Quantity() int        { return l.quantity }
func (l *OrderLine) TotalPrice() Money    { return l.totalPrice }

func (l *OrderLine) UpdateQuantity(quantity int) error {
	totalPrice, err := lineTotal(l.unitPrice, quantity)
	if err != nil {
		return err
	}
	l.quantity = quantity
	l.totalPrice = totalPrice
	l.Touch()
	return nil
}

// Equals compares identity, not attributes.
func (l *OrderLine) Equals(other *OrderLine) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.ID() == other.ID()
}

func lineTotal(unitPrice Money, quantity int) (Money, error) {
	if quantity <= 0 {
		return Money{}, errors.Wrapf(ErrInvalidQuantity, "quantity %d", quantity)
	}
	return unitPrice.Multiply(quantity)
}
