package handler

import (
	"errors"
	"net/http"

	"shipping-gateway/internal/core/logger"
	"shipping-gateway/internal/features/orders/ports"
	"shipping-gateway/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests related to storefront orders.
type OrderHandler struct {
	// service is the OrderService instance.
	service *service.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s *service.OrderService) *OrderHandler {
	return &OrderHandler{
		service: s,
	}
}

// GetOrder returns the storefront order as it would be handed to the carrier.
// @Summary Preview a storefront order
// @Description Fetch a storefront order by id, mapped to the shipping order model.
// @Tags orders
// @Produce json
// @Security AdminKey
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /admin/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	if orderID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Order ID is required",
			RayID:   rayID,
		})
	}

	order, err := h.service.GetOrder(c.UserContext(), orderID)
	if err != nil {
		logger.ForRequest(rayID).Error("Failed to fetch order",
			zap.String("order_id", orderID),
			zap.Error(err),
		)

		status := http.StatusBadGateway
		msg := "Storefront request failed"

		if errors.Is(err, ports.ErrOrderNotFound) {
			status = http.StatusNotFound
			msg = "Order not found"
		} else if errors.Is(err, service.ErrOrderSourceDisabled) {
			status = http.StatusServiceUnavailable
			msg = "Order lookup is not configured"
		}

		return c.Status(status).JSON(ErrorResponse{
			Message: msg,
			RayID:   rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(order)
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}
