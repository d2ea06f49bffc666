package service

import (
	"context"
	"errors"
	"testing"

	"shipping-gateway/internal/features/orders/ports"
	"shipping-gateway/internal/features/shipping/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOrderSource is a mock implementation of OrderSource for testing.
type mockOrderSource struct {
	order *domain.Order
	err   error
}

// GetOrder implements OrderSource.
func (m *mockOrderSource) GetOrder(_ context.Context, _ string) (*domain.Order, error) {
	return m.order, m.err
}

func TestOrderService_GetOrder_Success(t *testing.T) {
	expected := &domain.Order{ID: "1", Items: []domain.OrderItem{{Name: "Toner"}}, ShippingAddress: "a, b, c 123456"}
	svc := NewOrderService(&mockOrderSource{order: expected})

	order, err := svc.GetShippableOrder(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, expected, order)
}

func TestOrderService_GetOrder_Disabled(t *testing.T) {
	svc := NewOrderService(nil)

	_, err := svc.GetOrder(context.Background(), "1")

	assert.ErrorIs(t, err, ErrOrderSourceDisabled)
}

func TestOrderService_GetOrder_NilIsNotFound(t *testing.T) {
	svc := NewOrderService(&mockOrderSource{})

	_, err := svc.GetOrder(context.Background(), "1")

	assert.ErrorIs(t, err, ports.ErrOrderNotFound)
}

func TestOrderService_GetOrder_SourceError(t *testing.T) {
	sourceErr := errors.New("storefront down")
	svc := NewOrderService(&mockOrderSource{err: sourceErr})

	_, err := svc.GetOrder(context.Background(), "1")

	assert.ErrorIs(t, err, sourceErr)
}

func TestOrderService_GetShippableOrder_Rejects(t *testing.T) {
	noItems := NewOrderService(&mockOrderSource{order: &domain.Order{ID: "1", ShippingAddress: "x"}})
	_, err := noItems.GetShippableOrder(context.Background(), "1")
	assert.ErrorIs(t, err, ErrOrderNotShippable)

	noAddress := NewOrderService(&mockOrderSource{order: &domain.Order{ID: "1", Items: []domain.OrderItem{{Name: "Toner"}}}})
	_, err = noAddress.GetShippableOrder(context.Background(), "1")
	assert.ErrorIs(t, err, ErrOrderNotShippable)
}
