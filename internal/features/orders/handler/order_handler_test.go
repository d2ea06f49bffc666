package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"shipping-gateway/internal/features/orders/ports"
	"shipping-gateway/internal/features/orders/service"
	"shipping-gateway/internal/features/shipping/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderSource is a mock implementation of ports.OrderSource.
type MockOrderSource struct {
	mock.Mock
}

func (m *MockOrderSource) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func setupApp(h *OrderHandler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Get("/admin/orders/:id", h.GetOrder)
	return app
}

func TestOrderHandler_GetOrder_Success(t *testing.T) {
	source := new(MockOrderSource)
	source.On("GetOrder", mock.Anything, "1042").Return(&domain.Order{ID: "1042", CustomerName: "Riya"}, nil)

	app := setupApp(NewOrderHandler(service.NewOrderService(source)))
	resp, err := app.Test(httptest.NewRequest("GET", "/admin/orders/1042", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var order domain.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&order))
	assert.Equal(t, "Riya", order.CustomerName)
	source.AssertExpectations(t)
}

func TestOrderHandler_GetOrder_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", ports.ErrOrderNotFound, fiber.StatusNotFound},
		{"upstream", errors.New("dial tcp: refused"), fiber.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := new(MockOrderSource)
			source.On("GetOrder", mock.Anything, "7").Return(nil, tt.err)

			app := setupApp(NewOrderHandler(service.NewOrderService(source)))
			resp, err := app.Test(httptest.NewRequest("GET", "/admin/orders/7", nil))

			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "test-ray-id", body.RayID)
			assert.NotContains(t, body.Message, "refused")
		})
	}
}

func TestOrderHandler_GetOrder_Disabled(t *testing.T) {
	app := setupApp(NewOrderHandler(service.NewOrderService(nil)))
	resp, err := app.Test(httptest.NewRequest("GET", "/admin/orders/7", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
