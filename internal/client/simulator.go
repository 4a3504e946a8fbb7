package client

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/ivanpodgorny/orderflow/internal/entity"
)

const (
	defaultMinDelay       = time.Second
	defaultMaxDelay       = 3 * time.Second
	defaultFailurePercent = 10
)

// Simulator имитирует проверку заказа внешними системами: выдерживает
// случайную задержку в заданном диапазоне и с заданной вероятностью
// завершает проверку отказом. Используется, если адрес сервиса фулфилмента
// не настроен.
type Simulator struct {
	mu             sync.Mutex
	rnd            *rand.Rand
	minDelay       time.Duration
	maxDelay       time.Duration
	failurePercent int
}

func NewSimulator(rnd *rand.Rand) *Simulator {
	return &Simulator{
		rnd:            rnd,
		minDelay:       defaultMinDelay,
		maxDelay:       defaultMaxDelay,
		failurePercent: defaultFailurePercent,
	}
}

func (s *Simulator) Check(_ context.Context, _ entity.Order) error {
	delay, failed := s.draw()
	time.Sleep(delay)

	if failed {
		return errors.New("simulated processing failure: inventory unavailable")
	}

	return nil
}

// draw выполняет все обращения к источнику случайности под мьютексом,
// rand.Rand не рассчитан на конкурентное использование.
func (s *Simulator) draw() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delay := s.minDelay
	if s.maxDelay > s.minDelay {
		delay += time.Duration(s.rnd.Int63n(int64(s.maxDelay - s.minDelay + 1)))
	}

	return delay, s.rnd.Intn(100) < s.failurePercent
}
