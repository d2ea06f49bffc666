package handler

import (
	"context"
	"errors"
	"net/http"

	"shipping-gateway/internal/core/logger"
	"shipping-gateway/internal/features/orders/ports"
	orderservice "shipping-gateway/internal/features/orders/service"
	"shipping-gateway/internal/features/shipping/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// StatusFor maps an error to the status and the message shown to callers.
// Carrier diagnostics never appear in the message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ports.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found"
	case errors.Is(err, orderservice.ErrOrderNotShippable):
		return http.StatusUnprocessableEntity, "Order cannot be shipped"
	case errors.Is(err, orderservice.ErrOrderSourceDisabled):
		return http.StatusServiceUnavailable, "Order lookup is not configured"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "Carrier rate limit reached, try again later"
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrAuthentication),
		errors.Is(err, domain.ErrTokenUnavailable),
		errors.Is(err, domain.ErrAuthFailed),
		errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusBadGateway, "Carrier authentication failed"
	case errors.Is(err, domain.ErrUpstreamDocument),
		errors.Is(err, domain.ErrMissingBody):
		return http.StatusBadGateway, "Carrier document unavailable"
	case errors.Is(err, domain.ErrCarrierAPI),
		errors.Is(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway, "Carrier request failed"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Carrier did not respond in time"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

// RespondError logs err with the request's ray id and writes a generic JSON error.
func RespondError(c *fiber.Ctx, msg string, err error, fields ...zap.Field) error {
	rayID := RayID(c)
	status, public := StatusFor(err)

	fields = append(fields,
		zap.Int("status", status),
		zap.Int("upstream_status", domain.HTTPStatus(err)),
		zap.Error(err),
	)
	if status >= http.StatusInternalServerError {
		logger.ForRequest(rayID).Error(msg, fields...)
	} else {
		logger.ForRequest(rayID).Warn(msg, fields...)
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: public,
		RayID:   rayID,
	})
}

// RayID returns the request id set by the requestid middleware.
func RayID(c *fiber.Ctx) string {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return rayID
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Message: msg,
		RayID:   RayID(c),
	})
}
