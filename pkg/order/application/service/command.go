package service

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"orderservice/pkg/order/domain/model"
)

var ErrInvalidCommand = errors.New("invalid command")

type CreateOrderCommand struct {
	CustomerID string           `json:"customerId" validate:"required,uuid"`
	Items      []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type OrderItemInput struct {
	ProductID string          `json:"productId" validate:"required,uuid"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"gt=0"`
	Currency  string          `json:"currency" validate:"required,len=3"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
}

type commandValidator struct {
	validate *validator.Validate
}

func newCommandValidator() *commandValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return &commandValidator{validate: v}
}

func (v *commandValidator) createOrder(cmd *CreateOrderCommand) error {
	for i := range cmd.Items {
		cmd.Items[i].applyDefaults()
	}
	return v.check(cmd)
}

func (v *commandValidator) orderItem(item *OrderItemInput) error {
	item.applyDefaults()
	return v.check(item)
}

func (v *commandValidator) check(cmd interface{}) error {
	err := v.validate.Struct(cmd)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return errors.Wrap(ErrInvalidCommand, err.Error())
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fe.Namespace()+" failed on '"+fe.Tag()+"'")
	}
	return errors.Wrap(ErrInvalidCommand, strings.Join(messages, "; "))
}

func (i *OrderItemInput) applyDefaults() {
	if strings.TrimSpace(i.Currency) == "" {
		i.Currency = model.DefaultCurrency
	}
}
