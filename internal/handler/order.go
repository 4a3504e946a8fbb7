package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ivanpodgorny/orderflow/internal/entity"
	inerr "github.com/ivanpodgorny/orderflow/internal/errors"
	"github.com/ivanpodgorny/orderflow/internal/service"
)

// idempotencyKeyHeader передает клиентский ключ идемпотентности создания заказа.
const idempotencyKeyHeader = "Idempotency-Key"

type Order struct {
	coordinator OrderCoordinator
	validator   Validator
}

type OrderCoordinator interface {
	Create(ctx context.Context, req service.CreateRequest, idempotencyKey string) (*entity.Order, error)
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	GetAll(ctx context.Context) ([]entity.Order, error)
	GetAllByCustomer(ctx context.Context, customerID string) ([]entity.Order, error)
}

func NewOrder(c OrderCoordinator, v Validator) *Order {
	return &Order{
		coordinator: c,
		validator:   v,
	}
}

// Create обрабатывает запрос на создание нового заказа. Возвращает ответ
// с кодом 201 и принятым в обработку заказом. При повторном запросе с занятым
// ключом идемпотентности в ответ попадает созданный ранее заказ.
func (h *Order) Create(w http.ResponseWriter, r *http.Request) {
	req := CreateOrderRequest{}
	if err := readJSONBodyAndValidate(r.Context(), &req, r, h.validator); err != nil {
		badRequest(w)

		return
	}

	order, err := h.coordinator.Create(r.Context(), service.CreateRequest{
		CustomerID:  req.CustomerID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Price:       req.Price,
	}, r.Header.Get(idempotencyKeyHeader))
	if err != nil {
		serverError(w)

		return
	}

	responseAsJSON(w, order, http.StatusCreated)
}

// GetByID возвращает заказ по идентификатору. Если заказа нет, возвращает
// ответ с кодом 404.
func (h *Order) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		badRequest(w)

		return
	}

	order, err := h.coordinator.GetByID(r.Context(), id)
	if errors.Is(err, inerr.ErrOrderNotFound) {
		notFound(w)

		return
	}
	if err != nil {
		serverError(w)

		return
	}

	responseAsJSON(w, order, http.StatusOK)
}

// GetAll возвращает список всех заказов.
func (h *Order) GetAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.coordinator.GetAll(r.Context())
	if err != nil {
		serverError(w)

		return
	}

	if orders == nil {
		orders = []entity.Order{}
	}

	responseAsJSON(w, orders, http.StatusOK)
}

// GetAllByCustomer возвращает список заказов покупателя.
func (h *Order) GetAllByCustomer(w http.ResponseWriter, r *http.Request) {
	orders, err := h.coordinator.GetAllByCustomer(r.Context(), chi.URLParam(r, "customerId"))
	if err != nil {
		serverError(w)

		return
	}

	if orders == nil {
		orders = []entity.Order{}
	}

	responseAsJSON(w, orders, http.StatusOK)
}
