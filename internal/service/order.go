package service

import (
	"context"
	"errors"

	"github.com/ivanpodgorny/orderflow/internal/entity"
	inerr "github.com/ivanpodgorny/orderflow/internal/errors"
	"github.com/ivanpodgorny/orderflow/internal/logger"
	"go.uber.org/zap"
)

type Order struct {
	repository OrderRepository
	queue      chan<- entity.ProcessingJob
}

type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	FindByIdempotencyKey(ctx context.Context, key string) (*entity.Order, error)
	FindByID(ctx context.Context, id int64) (*entity.Order, error)
	FindAll(ctx context.Context) ([]entity.Order, error)
	FindAllByCustomerID(ctx context.Context, customerID string) ([]entity.Order, error)
}

type CreateRequest struct {
	CustomerID  string
	ProductName string
	Quantity    int
	Price       float64
}

func NewOrder(r OrderRepository, q chan<- entity.ProcessingJob) *Order {
	return &Order{
		repository: r,
		queue:      q,
	}
}

// Create добавляет новый заказ и ставит задачу на его обработку, не дожидаясь
// ее выполнения. Если передан непустой ключ идемпотентности и заказ с таким
// ключом уже существует, возвращает существующий заказ: новый заказ не
// создается, повторная обработка не запускается, содержимое повторного запроса
// не сверяется с исходным.
func (s *Order) Create(ctx context.Context, req CreateRequest, idempotencyKey string) (*entity.Order, error) {
	if idempotencyKey != "" {
		existing, err := s.repository.FindByIdempotencyKey(ctx, idempotencyKey)
		if err == nil {
			logger.Log.Info(
				"заказ с таким ключом идемпотентности уже существует",
				zap.String("idempotency_key", idempotencyKey),
				zap.Int64("order_id", existing.ID),
			)

			return existing, nil
		}
		if !errors.Is(err, inerr.ErrOrderNotFound) {
			return nil, err
		}
	}

	order := &entity.Order{
		CustomerID:     req.CustomerID,
		ProductName:    req.ProductName,
		Quantity:       req.Quantity,
		Price:          req.Price,
		IdempotencyKey: idempotencyKey,
	}
	err := s.repository.Create(ctx, order)
	if errors.Is(err, inerr.ErrOrderExists) {
		// проигравший гонку за ключ идемпотентности получает заказ победителя
		return s.repository.FindByIdempotencyKey(ctx, idempotencyKey)
	}
	if err != nil {
		return nil, err
	}

	go func() {
		s.queue <- entity.NewProcessingJob(order.ID)
	}()

	return order, nil
}

// GetByID возвращает заказ по идентификатору.
func (s *Order) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	return s.repository.FindByID(ctx, id)
}

// GetAll возвращает список всех заказов.
func (s *Order) GetAll(ctx context.Context) ([]entity.Order, error) {
	return s.repository.FindAll(ctx)
}

// GetAllByCustomer возвращает список заказов покупателя.
func (s *Order) GetAllByCustomer(ctx context.Context, customerID string) ([]entity.Order, error) {
	return s.repository.FindAllByCustomerID(ctx, customerID)
}
