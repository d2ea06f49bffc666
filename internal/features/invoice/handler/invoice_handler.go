package handler

import (
	"io"

	"shipping-gateway/internal/features/invoice/service"
	shippinghandler "shipping-gateway/internal/features/shipping/handler"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// InvoiceHandler serves carrier documents.
type InvoiceHandler struct {
	invoices *service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoices *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoices: invoices,
	}
}

// fiberSink adapts a fiber context to ports.Sink.
type fiberSink struct {
	c *fiber.Ctx
}

func (s fiberSink) SetHeader(key, value string) {
	s.c.Set(key, value)
}

func (s fiberSink) Send(body []byte) error {
	return s.c.Status(fiber.StatusOK).Send(body)
}

// SendStream hands body to fasthttp, which closes it once written.
func (s fiberSink) SendStream(body io.ReadCloser) error {
	return s.c.Status(fiber.StatusOK).SendStream(body)
}

// GetInvoice godoc
// @Summary Download a masked invoice
// @Description Fetches the carrier invoice, masks the header block and stamps the tracking barcode
// @Tags documents
// @Produce application/pdf
// @Security AdminKey
// @Param orderId path string true "Carrier order id"
// @Param awb query string false "Tracking code printed as a barcode"
// @Param filename query string false "Download filename"
// @Success 200 {file} file
// @Failure 400 {object} shippinghandler.ErrorResponse
// @Failure 502 {object} shippinghandler.ErrorResponse
// @Router /admin/shipments/{orderId}/invoice [get]
func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	err := h.invoices.StreamInvoice(c.UserContext(), fiberSink{c: c}, orderID, c.Query("awb"), c.Query("filename"))
	if err != nil {
		return shippinghandler.RespondError(c, "Failed to serve invoice", err, zap.String("order_id", orderID))
	}
	return nil
}

// GetLabel godoc
// @Summary Download a shipping label
// @Description Streams the carrier label as is
// @Tags documents
// @Produce application/pdf
// @Security AdminKey
// @Param shipmentId path string true "Shipment id"
// @Param filename query string false "Download filename"
// @Success 200 {file} file
// @Failure 502 {object} shippinghandler.ErrorResponse
// @Router /admin/shipments/label/{shipmentId} [get]
func (h *InvoiceHandler) GetLabel(c *fiber.Ctx) error {
	shipmentID := c.Params("shipmentId")
	err := h.invoices.StreamLabel(c.UserContext(), fiberSink{c: c}, shipmentID, c.Query("filename"))
	if err != nil {
		return shippinghandler.RespondError(c, "Failed to serve label", err, zap.String("shipment_id", shipmentID))
	}
	return nil
}
