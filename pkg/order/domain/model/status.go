package model

import "github.com/pkg/errors"

type OrderStatus int

const (
	Pending OrderStatus = iota
	Confirmed
	// Completed is set by fulfillment outside this aggregate and only
	// arrives here through RestoreOrder.
	Completed
	Cancelled
)

var statusNames = map[OrderStatus]string{
	Pending:   "Pending",
	Confirmed: "Confirmed",
	Completed: "Completed",
	Cancelled: "Cancelled",
}

func (s OrderStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s OrderStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// Terminal reports whether no operation can leave s.
func (s OrderStatus) Terminal() bool {
	return s == Completed || s == Cancelled
}

func ParseOrderStatus(name string) (OrderStatus, error) {
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownStatus, "%q", name)
}

type orderOperation int

const (
	opAddItem orderOperation = iota
	opConfirm
	opCancel
)

var operationNames = map[orderOperation]string{
	opAddItem: "add items to",
	opConfirm: "confirm",
	opCancel:  "cancel",
}

// next is the order state machine. Every status is handled explicitly; an
// operation a status does not accept yields ErrInvalidTransition.
func (s OrderStatus) next(op orderOperation) (OrderStatus, error) {
	switch s {
	case Pending:
		switch op {
		case opAddItem:
			return Pending, nil
		case opConfirm:
			return Confirmed, nil
		case opCancel:
			return Cancelled, nil
		}
	case Confirmed:
		if op == opCancel {
			return Cancelled, nil
		}
	case Completed, Cancelled:
	default:
		return s, errors.Wrapf(ErrUnknownStatus, "%d", int(s))
	}
	return s, errors.Wrapf(ErrInvalidTransition, "cannot %s an order with status %s", operationNames[op], s)
}
