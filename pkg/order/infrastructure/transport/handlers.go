package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"orderservice/pkg/common/result"
	"orderservice/pkg/order/application/service"
	"orderservice/pkg/order/domain/model"
)

type Handler struct {
	orders service.OrderService
	logger log.FieldLogger
}

type createOrderResponse struct {
	OrderID uuid.UUID `json:"orderId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func Router(orders service.OrderService, metrics *Metrics, logger log.FieldLogger) http.Handler {
	h := &Handler{orders: orders, logger: logger}

	r := mux.NewRouter()
	r.Use(metrics.middleware)
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	s := r.PathPrefix("/api/v1").Subrouter()
	s.HandleFunc("/orders", h.createOrder).Methods(http.MethodPost)
	s.HandleFunc("/orders/{ID}", h.getOrder).Methods(http.MethodGet)
	s.HandleFunc("/orders/{ID}/items", h.addItem).Methods(http.MethodPost)
	s.HandleFunc("/orders/{ID}/confirm", h.confirmOrder).Methods(http.MethodPost)
	s.HandleFunc("/orders/{ID}/cancel", h.cancelOrder).Methods(http.MethodPost)

	return logMiddleware(r, logger)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "Healthy",
		"service":   "orderservice",
		"timestamp": time.Now().UTC(),
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var cmd service.CreateOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.writeError(w, errors.Wrap(service.ErrInvalidCommand, err.Error()))
		return
	}

	res := h.orders.CreateOrder(r.Context(), cmd)
	if res.IsFailure() {
		h.writeError(w, res.Err())
		return
	}
	w.Header().Set("Location", "/api/v1/orders/"+res.Value().String())
	h.writeJSON(w, http.StatusCreated, createOrderResponse{OrderID: res.Value()})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	h.withOrderID(w, r, h.orders.GetOrder)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var item service.OrderItemInput
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.writeError(w, errors.Wrap(service.ErrInvalidCommand, err.Error()))
		return
	}
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}
	h.writeOrder(w, h.orders.AddItem(r.Context(), orderID, item))
}

func (h *Handler) confirmOrder(w http.ResponseWriter, r *http.Request) {
	h.withOrderID(w, r, h.orders.ConfirmOrder)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	h.withOrderID(w, r, h.orders.CancelOrder)
}

type orderAction func(ctx context.Context, orderID uuid.UUID) result.Result[service.OrderDTO]

func (h *Handler) withOrderID(w http.ResponseWriter, r *http.Request, action orderAction) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}
	h.writeOrder(w, action(r.Context(), orderID))
}

func (h *Handler) orderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["ID"])
	if err != nil {
		h.writeError(w, errors.Wrap(service.ErrInvalidCommand, "malformed order id"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeOrder(w http.ResponseWriter, res result.Result[service.OrderDTO]) {
	if res.IsFailure() {
		h.writeError(w, res.Err())
		return
	}
	h.writeJSON(w, http.StatusOK, res.Value())
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).Error("request failed")
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WithField("err", err).Error("write response")
	}
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrOptimisticLock):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCommand),
		errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrInvalidCurrency),
		errors.Is(err, model.ErrCurrencyMismatch),
		errors.Is(err, model.ErrInvalidMultiplier),
		errors.Is(err, model.ErrInvalidQuantity),
		errors.Is(err, model.ErrEmptyOrder):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func logMiddleware(h http.Handler, logger log.FieldLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
