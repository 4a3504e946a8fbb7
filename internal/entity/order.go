package entity

import "time"

type Order struct {
	ID             int64       `json:"id"`
	CustomerID     string      `json:"customerId"`
	ProductName    string      `json:"productName"`
	Quantity       int         `json:"quantity"`
	Price          float64     `json:"price"`
	Status         OrderStatus `json:"status"`
	IdempotencyKey string      `json:"-"`
	FailureReason  string      `json:"failureReason,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

type ProcessingJob struct {
	OrderID int64
}

type OrderStatus string

const (
	OrderStatusCreated    OrderStatus = "CREATED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusFailed     OrderStatus = "FAILED"
)

// transitions описывает допустимые переходы между статусами заказа.
// Статусы OrderStatusCompleted и OrderStatusFailed терминальные, выхода из них нет.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusCreated:    {OrderStatusProcessing},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusFailed},
}

func NewProcessingJob(id int64) ProcessingJob {
	return ProcessingJob{OrderID: id}
}

// CanTransition сообщает, допустим ли переход заказа из статуса s в статус to.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}

	return false
}

// Terminal сообщает, является ли статус терминальным.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusFailed
}
