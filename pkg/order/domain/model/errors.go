package model

import "github.com/pkg/errors"

var (
	ErrInvalidAmount     = errors.New("amount cannot be negative")
	ErrInvalidCurrency   = errors.New("currency cannot be empty")
	ErrCurrencyMismatch  = errors.New("currencies do not match")
	ErrInvalidMultiplier = errors.New("multiplier cannot be negative")

	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInvalidTransition = errors.New("order status does not allow this operation")
	ErrEmptyOrder        = errors.New("cannot confirm an order without items")
	ErrUnknownStatus     = errors.New("unknown order status")

	ErrOrderNotFound  = errors.New("order not found")
	ErrOptimisticLock = errors.New("order has been modified by another transaction")
)
