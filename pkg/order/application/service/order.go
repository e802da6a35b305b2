package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"orderservice/pkg/common/domain"
	"orderservice/pkg/common/result"
	"orderservice/pkg/order/domain/model"
)

// OrderService is the command and query boundary of the order aggregate.
// Business-rule rejections and infrastructure failures both come back as a
// failed Result; callers tell them apart with errors.Is.
type OrderService interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) result.Result[uuid.UUID]
	AddItem(ctx context.Context, orderID uuid.UUID, item OrderItemInput) result.Result[OrderDTO]
	ConfirmOrder(ctx context.Context, orderID uuid.UUID) result.Result[OrderDTO]
	CancelOrder(ctx context.Context, orderID uuid.UUID) result.Result[OrderDTO]
	GetOrder(ctx context.Context, orderID uuid.UUID) result.Result[OrderDTO]
}

func NewOrderService(repo model.OrderRepository, dispatcher domain.EventDispatcher, logger log.FieldLogger) OrderService {
	return &orderService{
		repo:       repo,
		dispatcher: dispatcher,
		validator:  newCommandValidator(),
		logger:     logger,
	}
}

type orderService struct {
	repo       model.OrderRepository
	dispatcher domain.EventDispatcher
	validator  *commandValidator
	logger     log.FieldLogger
}

func (s *orderService) CreateOrder(ctx context.Context, cmd CreateOrderCommand) result.Result[uuid.UUID] {
	if err := s.validator.createOrder(&cmd); err != nil {
		return result.Failure[uuid.UUID](err)
	}
	customerID, err := uuid.Parse(cmd.CustomerID)
	if err != nil {
		return result.Failure[uuid.UUID](errors.Wrap(ErrInvalidCommand, err.Error()))
	}

	orderID, err := s.repo.NextID()
	if err != nil {
		return result.Failure[uuid.UUID](errors.Wrap(err, "reserve order id"))
	}
	order := model.NewOrderWithID(orderID, customerID)
	for _, item := range cmd.Items {
		if err := addItem(order, item); err != nil {
			return result.Failure[uuid.UUID](errors.Wrap(err, "failed to create order"))
		}
	}

	if err := s.save(ctx, order); err != nil {
		return result.Failure[uuid.UUID](err)
	}
	s.logger.WithFields(log.Fields{
		"orderId":    order.ID(),
		"customerId": customerID,
		"total":      order.TotalAmount().String(),
	}).Info("order created")
	return result.Success(order.ID())
}

func (s *orderService) AddItem(ctx context.Context, orderID uuid.UUID, item OrderItemInput) result.Result[OrderDTO] {
	if err := s.validator.orderItem(&item); err != nil {
		return result.Failure[OrderDTO](err)
	}
	return s.executeOnOrder(ctx, orderID, func(o *model.Order) error {
		return addItem(o, item)
	})
}

func (s *orderService) ConfirmOrder(ctx context.Context, orderID uuid.UUID) result.Result[OrderDTO] {
	return s.executeOnOrder(ctx, orderID, func(o *model.Order) error {
		return o.Confirm()
	})
}

func (s *orderService) CancelOrder(ctx context.Context, orderID uuid.UUID) result.Result[OrderDTO] {
	return s.executeOnOrder(ctx, orderID, func(o *model.Order) error {
		return o.Cancel()
	})
}

func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) result.Result[OrderDTO] {
	order, err := s.repo.Find(ctx, orderID)
	if err != nil {
		return result.Failure[OrderDTO](err)
	}
	return result.Success(newOrderDTO(order))
}

func (s *orderService) executeOnOrder(ctx context.Context, orderID uuid.UUID, action func(o *model.Order) error) result.Result[OrderDTO] {
	order, err := s.repo.Find(ctx, orderID)
	if err != nil {
		return result.Failure[OrderDTO](err)
	}
	if err := action(order); err != nil {
		return result.Failure[OrderDTO](err)
	}
	if err := s.save(ctx, order); err != nil {
		return result.Failure[OrderDTO](err)
	}
	return result.Success(newOrderDTO(order))
}

// save stores the order and publishes its pending events. The buffer is
// cleared only after every event went out.
// TODO: write events to an outbox table in the Store transaction so a broker
// outage cannot lose them after the order row is committed.
func (s *orderService) save(ctx context.Context, order *model.Order) error {
	if err := s.repo.Store(ctx, order); err != nil {
		s.logger.WithError(err).WithField("orderId", order.ID()).Error("failed to store order")
		return errors.Wrap(err, "store order")
	}
	for _, event := range order.Events() {
		if err := s.dispatcher.Dispatch(ctx, event); err != nil {
			s.logger.WithError(err).WithFields(log.Fields{
				"orderId": order.ID(),
				"event":   event.Type(),
			}).Error("failed to dispatch event")
			return errors.Wrapf(err, "dispatch %s", event.Type())
		}
	}
	order.ClearEvents()
	return nil
}

func addItem(order *model.Order, item OrderItemInput) error {
	productID, err := uuid.Parse(item.ProductID)
	if err != nil {
		return errors.Wrap(ErrInvalidCommand, err.Error())
	}
	unitPrice, err := model.NewMoney(item.UnitPrice, item.Currency)
	if err != nil {
		return err
	}
	return order.AddItem(productID, unitPrice, item.Quantity)
}
