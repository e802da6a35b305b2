package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"orderservice/pkg/order/domain/model"
)

type OrderDTO struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  uuid.UUID       `json:"customerId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Items       []OrderItemDTO  `json:"items"`
}

type OrderItemDTO struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"productId"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func newOrderDTO(order *model.Order) OrderDTO {
	items := order.Items()
	dto := OrderDTO{
		ID:          order.ID(),
		CustomerID:  order.CustomerID(),
		TotalAmount: order.TotalAmount().Amount(),
		Currency:    order.TotalAmount().Currency(),
		Status:      order.Status().String(),
		Version:     order.Version(),
		CreatedAt:   order.CreatedAt(),
		UpdatedAt:   order.UpdatedAt(),
		Items:       make([]OrderItemDTO, 0, len(items)),
	}
	for _, item := range items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:         item.ID(),
			ProductID:  item.ProductID(),
			UnitPrice:  item.UnitPrice().Amount(),
			Quantity:   item.Quantity(),
			TotalPrice: item.TotalPrice().Amount(),
		})
	}
	return dto
}
