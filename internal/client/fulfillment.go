package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/imroc/req/v3"
	"github.com/ivanpodgorny/orderflow/internal/entity"
)

type Fulfillment struct {
	req *req.Client
}

type reservationRequest struct {
	OrderID     int64   `json:"orderId"`
	CustomerID  string  `json:"customerId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

func NewFulfillment(addr string) *Fulfillment {
	return &Fulfillment{
		req: req.C().
			SetBaseURL(addr).
			SetTimeout(5 * time.Second),
	}
}

// Check отправляет запрос к сервису фулфилмента для резервирования товара
// по заказу. При ответе сервиса с кодом 429 пытается выполнить повторный
// запрос через минуту. Отклоненное резервирование возвращается ошибкой
// с причиной отказа.
func (c *Fulfillment) Check(ctx context.Context, order entity.Order) error {
	respBody := struct {
		Approved bool   `json:"approved"`
		Reason   string `json:"reason"`
	}{}
	resp, err := c.req.R().
		SetContext(ctx).
		SetRetryCount(2).
		SetRetryFixedInterval(60*time.Second).
		SetRetryCondition(func(resp *req.Response, err error) bool {
			return err == nil && resp.StatusCode == http.StatusTooManyRequests
		}).
		SetSuccessResult(&respBody).
		SetBody(&reservationRequest{
			OrderID:     order.ID,
			CustomerID:  order.CustomerID,
			ProductName: order.ProductName,
			Quantity:    order.Quantity,
			Price:       order.Price,
		}).
		Post("/api/reservations")
	if err != nil {
		return err
	}

	if resp.IsErrorState() {
		return fmt.Errorf("server responded with status code %d", resp.StatusCode)
	}

	if !respBody.Approved {
		return fmt.Errorf("reservation declined: %s", respBody.Reason)
	}

	return nil
}
