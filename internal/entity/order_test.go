package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{
			name: "переход в обработку",
			from: OrderStatusCreated,
			to:   OrderStatusProcessing,
			want: true,
		},
		{
			name: "успешное завершение обработки",
			from: OrderStatusProcessing,
			to:   OrderStatusCompleted,
			want: true,
		},
		{
			name: "завершение обработки со сбоем",
			from: OrderStatusProcessing,
			to:   OrderStatusFailed,
			want: true,
		},
		{
			name: "завершение без обработки недопустимо",
			from: OrderStatusCreated,
			to:   OrderStatusCompleted,
			want: false,
		},
		{
			name: "сбой без обработки недопустим",
			from: OrderStatusCreated,
			to:   OrderStatusFailed,
			want: false,
		},
		{
			name: "возврат в начальный статус недопустим",
			from: OrderStatusProcessing,
			to:   OrderStatusCreated,
			want: false,
		},
		{
			name: "выход из терминального статуса недопустим",
			from: OrderStatusCompleted,
			to:   OrderStatusProcessing,
			want: false,
		},
		{
			name: "повторная обработка после сбоя недопустима",
			from: OrderStatusFailed,
			to:   OrderStatusProcessing,
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.False(t, OrderStatusCreated.Terminal())
	assert.False(t, OrderStatusProcessing.Terminal())
	assert.True(t, OrderStatusCompleted.Terminal())
	assert.True(t, OrderStatusFailed.Terminal())
}
