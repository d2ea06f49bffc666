package handler

import (
	"strconv"
	"strings"

	"shipping-gateway/internal/features/shipping/domain"
	"shipping-gateway/internal/features/shipping/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ShipmentHandler handles HTTP requests for carrier shipments.
type ShipmentHandler struct {
	shipments *service.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(shipments *service.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{
		shipments: shipments,
	}
}

// CreateShipmentRequest carries either a full order or a storefront order id.
type CreateShipmentRequest struct {
	// OrderID is looked up in the storefront when Order is absent.
	OrderID string `json:"order_id"`
	// Order is submitted as is.
	Order *domain.Order `json:"order"`
}

// GenerateAWBRequest is the body of POST /admin/shipments/awb.
type GenerateAWBRequest struct {
	ShipmentID domain.FlexibleID `json:"shipment_id"`
	// CourierID is optional; the carrier picks one when empty.
	CourierID domain.FlexibleID `json:"courier_id"`
}

// CreateShipment godoc
// @Summary Create a carrier shipment
// @Description Submits a local order to the carrier, either inline or by storefront order id
// @Tags shipments
// @Accept json
// @Produce json
// @Security AdminKey
// @Param request body CreateShipmentRequest true "Order or order id"
// @Success 201 {object} domain.ShipmentResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/shipments [post]
func (h *ShipmentHandler) CreateShipment(c *fiber.Ctx) error {
	var req CreateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	var (
		result *domain.ShipmentResult
		err    error
	)
	switch {
	case req.Order != nil:
		result, err = h.shipments.CreateShipment(c.UserContext(), *req.Order)
	case strings.TrimSpace(req.OrderID) != "":
		result, err = h.shipments.CreateShipmentForOrder(c.UserContext(), req.OrderID)
	default:
		return badRequest(c, "order or order_id is required")
	}
	if err != nil {
		return RespondError(c, "Failed to create shipment", err, zap.String("order_id", req.OrderID))
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetOrderDetails godoc
// @Summary Get carrier order details
// @Tags shipments
// @Produce json
// @Security AdminKey
// @Param orderId path string true "Carrier order id"
// @Success 200 {object} object
// @Failure 502 {object} ErrorResponse
// @Router /admin/shipments/{orderId} [get]
func (h *ShipmentHandler) GetOrderDetails(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	raw, err := h.shipments.GetOrderDetails(c.UserContext(), orderID)
	if err != nil {
		return RespondError(c, "Failed to fetch carrier order", err, zap.String("order_id", orderID))
	}
	return c.JSON(raw)
}

// CancelOrder godoc
// @Summary Cancel a carrier order
// @Tags shipments
// @Produce json
// @Security AdminKey
// @Param orderId path string true "Carrier order id"
// @Success 200 {object} object
// @Failure 502 {object} ErrorResponse
// @Router /admin/shipments/{orderId}/cancel [post]
func (h *ShipmentHandler) CancelOrder(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	raw, err := h.shipments.CancelOrder(c.UserContext(), orderID)
	if err != nil {
		return RespondError(c, "Failed to cancel carrier order", err, zap.String("order_id", orderID))
	}
	return c.JSON(raw)
}

// TrackOrder godoc
// @Summary Track a shipment by order id
// @Description Returns the carrier payload and a normalized timeline
// @Tags tracking
// @Produce json
// @Security AdminKey
// @Param orderId path string true "Order id"
// @Success 200 {object} domain.TrackingView
// @Failure 429 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/shipments/{orderId}/tracking [get]
func (h *ShipmentHandler) TrackOrder(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	view, err := h.shipments.TrackOrder(c.UserContext(), orderID)
	if err != nil {
		return RespondError(c, "Failed to track order", err, zap.String("order_id", orderID))
	}
	return c.JSON(view)
}

// TrackByAWB godoc
// @Summary Track a shipment by AWB
// @Tags tracking
// @Produce json
// @Security AdminKey
// @Param code path string true "AWB code"
// @Success 200 {object} domain.TrackingView
// @Failure 502 {object} ErrorResponse
// @Router /admin/tracking/awb/{code} [get]
func (h *ShipmentHandler) TrackByAWB(c *fiber.Ctx) error {
	code := c.Params("code")
	view, err := h.shipments.TrackByAWB(c.UserContext(), code)
	if err != nil {
		return RespondError(c, "Failed to track awb", err, zap.String("awb", code))
	}
	return c.JSON(view)
}

// GenerateAWB godoc
// @Summary Assign an AWB to a shipment
// @Tags shipments
// @Accept json
// @Produce json
// @Security AdminKey
// @Param request body GenerateAWBRequest true "Shipment and optional courier"
// @Success 200 {object} object
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/shipments/awb [post]
func (h *ShipmentHandler) GenerateAWB(c *fiber.Ctx) error {
	var req GenerateAWBRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	raw, err := h.shipments.GenerateAWB(c.UserContext(), req.ShipmentID.String(), req.CourierID.String())
	if err != nil {
		return RespondError(c, "Failed to assign awb", err, zap.String("shipment_id", req.ShipmentID.String()))
	}
	return c.JSON(raw)
}

// CheckServiceability godoc
// @Summary Check courier serviceability
// @Tags shipments
// @Produce json
// @Security AdminKey
// @Param pickup query string true "Pickup pincode"
// @Param delivery query string true "Delivery pincode"
// @Param weight query number true "Weight in kg"
// @Param cod query bool false "Cash on delivery"
// @Success 200 {object} object
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/serviceability [get]
func (h *ShipmentHandler) CheckServiceability(c *fiber.Ctx) error {
	weight, err := strconv.ParseFloat(c.Query("weight"), 64)
	if err != nil {
		return badRequest(c, "weight must be a number")
	}

	cod := false
	if v := c.Query("cod"); v != "" {
		cod, err = strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "cod must be true or false")
		}
	}

	q := domain.ServiceabilityQuery{
		PickupPincode:   strings.TrimSpace(c.Query("pickup")),
		DeliveryPincode: strings.TrimSpace(c.Query("delivery")),
		WeightKg:        weight,
		COD:             cod,
	}

	raw, err := h.shipments.CheckServiceability(c.UserContext(), q)
	if err != nil {
		return RespondError(c, "Failed to check serviceability", err)
	}
	return c.JSON(raw)
}
