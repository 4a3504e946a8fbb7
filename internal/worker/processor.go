package worker

import (
	"context"
	"sync"

	"github.com/ivanpodgorny/orderflow/internal/entity"
	"github.com/ivanpodgorny/orderflow/internal/logger"
	"go.uber.org/zap"
)

// maxFailureReasonLength ограничивает причину сбоя размером колонки failure_reason.
const maxFailureReasonLength = 500

// Processor получает задачи на обработку заказов и проводит каждый заказ
// по жизненному циклу до терминального статуса. Для выполнения обработки
// создается Processor.workersCount воркеров. При вызове NewProcessor добавляет
// в очередь сохраненные незавершенные заказы.
type Processor struct {
	repository   ProcessorRepository
	checker      FulfillmentChecker
	jobs         chan entity.ProcessingJob
	wg           *sync.WaitGroup
	workersCount int
}

type ProcessorRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, reason string) error
	FindUnfinished(ctx context.Context) []entity.Order
}

// FulfillmentChecker проверяет возможность выполнения заказа внешними системами.
// Ненулевая ошибка означает отказ, ее текст сохраняется как причина сбоя.
type FulfillmentChecker interface {
	Check(ctx context.Context, order entity.Order) error
}

func NewProcessor(
	ctx context.Context,
	r ProcessorRepository,
	c FulfillmentChecker,
	j chan entity.ProcessingJob,
	wg *sync.WaitGroup,
	w int,
) *Processor {
	processor := &Processor{
		repository:   r,
		checker:      c,
		jobs:         j,
		wg:           wg,
		workersCount: w,
	}

	for _, o := range processor.repository.FindUnfinished(ctx) {
		go func(order entity.Order) {
			processor.jobs <- entity.NewProcessingJob(order.ID)
		}(o)
	}

	return processor
}

func (p *Processor) Do(ctx context.Context) {
	for i := 0; i < p.workersCount; i++ {
		p.wg.Add(1)

		go p.worker(ctx)
	}
}

func (p *Processor) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case j, ok := <-p.jobs:
			if !ok {
				return
			}

			p.process(ctx, j.OrderID)
		case <-ctx.Done():
			return
		}
	}
}

// process проводит заказ по жизненному циклу: переводит его в статус
// entity.OrderStatusProcessing до начала проверки, затем сохраняет терминальный
// статус по ее результату. Ошибка проверки не поднимается выше, а сохраняется
// в заказе как причина сбоя.
func (p *Processor) process(ctx context.Context, id int64) {
	order, err := p.repository.FindByID(ctx, id)
	if err != nil {
		logger.Log.Error("заказ не найден при обработке", zap.Int64("order_id", id), zap.Error(err))

		return
	}

	if order.Status.Terminal() {
		logger.Log.Info(
			"заказ уже обработан, повторная обработка пропущена",
			zap.Int64("order_id", id),
			zap.String("status", string(order.Status)),
		)

		return
	}

	// заказ в статусе PROCESSING попадает сюда только после перезапуска
	// сервиса, его обработка возобновляется без повторного перевода статуса
	if order.Status.CanTransition(entity.OrderStatusProcessing) {
		if err := p.repository.UpdateStatus(ctx, id, entity.OrderStatusProcessing, ""); err != nil {
			logger.Log.Error("ошибка перевода заказа в обработку", zap.Int64("order_id", id), zap.Error(err))

			return
		}

		order.Status = entity.OrderStatusProcessing
	}

	var (
		status = entity.OrderStatusCompleted
		reason = ""
	)
	if err := p.checker.Check(ctx, *order); err != nil {
		status = entity.OrderStatusFailed
		reason = err.Error()
		if len(reason) > maxFailureReasonLength {
			reason = reason[:maxFailureReasonLength]
		}
	}

	if !order.Status.CanTransition(status) {
		logger.Log.Error(
			"недопустимый переход статуса заказа",
			zap.Int64("order_id", id),
			zap.String("from", string(order.Status)),
			zap.String("to", string(status)),
		)

		return
	}

	if err := p.repository.UpdateStatus(ctx, id, status, reason); err != nil {
		logger.Log.Error("ошибка сохранения результата обработки", zap.Int64("order_id", id), zap.Error(err))

		return
	}

	logger.Log.Info(
		"обработка заказа завершена",
		zap.Int64("order_id", id),
		zap.String("status", string(status)),
	)
}
