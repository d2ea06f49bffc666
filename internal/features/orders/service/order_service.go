package service

import (
	"context"
	"errors"
	"strings"

	"shipping-gateway/internal/features/orders/ports"
	"shipping-gateway/internal/features/shipping/domain"
)

// ErrOrderSourceDisabled is returned when no storefront is configured.
var ErrOrderSourceDisabled = errors.New("order lookup is not configured")

// ErrOrderNotShippable is returned when an order lacks what a shipment needs.
var ErrOrderNotShippable = errors.New("order cannot be shipped")

// OrderService handles the business logic for retrieving storefront orders.
type OrderService struct {
	// source is the interface for fetching order data from the storefront.
	source ports.OrderSource
}

// NewOrderService creates a new instance of OrderService. A nil source disables lookups.
func NewOrderService(source ports.OrderSource) *OrderService {
	return &OrderService{
		source: source,
	}
}

// GetOrder retrieves an order by ID.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if s.source == nil {
		return nil, ErrOrderSourceDisabled
	}

	order, err := s.source.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order == nil {
		return nil, ports.ErrOrderNotFound
	}

	return order, nil
}

// GetShippableOrder retrieves an order and checks it has items and an address.
func (s *OrderService) GetShippableOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if len(order.Items) == 0 {
		return nil, errors.Join(ErrOrderNotShippable, errors.New("order has no items"))
	}
	if strings.TrimSpace(order.ShippingAddress) == "" && order.Address == nil {
		return nil, errors.Join(ErrOrderNotShippable, errors.New("order has no shipping address"))
	}

	return order, nil
}
