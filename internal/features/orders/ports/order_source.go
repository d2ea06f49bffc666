package ports

import (
	"context"
	"errors"

	"shipping-gateway/internal/features/shipping/domain"
)

// ErrOrderNotFound is returned when the storefront has no such order.
var ErrOrderNotFound = errors.New("order not found")

// OrderSource defines the interface for retrieving storefront orders.
// This is a Secondary Port (Driven Port).
type OrderSource interface {
	// GetOrder retrieves an order by its storefront identifier.
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}
