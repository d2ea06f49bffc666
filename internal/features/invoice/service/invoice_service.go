package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"shipping-gateway/internal/core/logger"
	"shipping-gateway/internal/features/invoice/ports"
	"shipping-gateway/internal/features/shipping/domain"

	"go.uber.org/zap"
)

// DefaultMaxBytes bounds a buffered invoice when no limit is configured.
const DefaultMaxBytes = 25 << 20

// InvoiceService serves carrier invoices and labels as inline PDFs.
type InvoiceService struct {
	docs        ports.DocumentSource
	transformer ports.Transformer
	maxBytes    int64
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(docs ports.DocumentSource, transformer ports.Transformer, maxBytes int64) *InvoiceService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &InvoiceService{
		docs:        docs,
		transformer: transformer,
		maxBytes:    maxBytes,
	}
}

// StreamInvoice buffers the carrier invoice, masks it, stamps trackingCode
// and sends the result in one write. On error the sink is untouched.
func (s *InvoiceService) StreamInvoice(ctx context.Context, sink ports.Sink, carrierOrderID, trackingCode, filename string) error {
	if strings.TrimSpace(carrierOrderID) == "" {
		return fmt.Errorf("%w: order id is required", domain.ErrInvalidInput)
	}

	body, err := s.docs.OpenInvoice(ctx, carrierOrderID)
	if err != nil {
		return fmt.Errorf("failed to open invoice for order %s: %w", carrierOrderID, err)
	}
	defer body.Close()

	pdf, err := io.ReadAll(io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read invoice for order %s: %w", carrierOrderID, err)
	}
	if int64(len(pdf)) > s.maxBytes {
		return fmt.Errorf("%w: invoice exceeds %d bytes", domain.ErrUpstreamDocument, s.maxBytes)
	}
	if len(pdf) == 0 {
		return fmt.Errorf("invoice for order %s: %w", carrierOrderID, domain.ErrMissingBody)
	}

	out, err := s.transformer.Transform(ctx, pdf, trackingCode)
	if err != nil {
		return fmt.Errorf("failed to render invoice for order %s: %w", carrierOrderID, err)
	}

	setPDFHeaders(sink, SanitizeFilename(filename, "invoice-"+carrierOrderID))
	logger.Get().Debug("Serving invoice",
		zap.String("order_id", carrierOrderID),
		zap.Int("carrier_bytes", len(pdf)),
		zap.Int("bytes", len(out)),
	)
	return sink.Send(out)
}

// StreamLabel pipes the carrier label to the sink without buffering it.
func (s *InvoiceService) StreamLabel(ctx context.Context, sink ports.Sink, shipmentID, filename string) error {
	if strings.TrimSpace(shipmentID) == "" {
		return fmt.Errorf("%w: shipment id is required", domain.ErrInvalidInput)
	}

	body, err := s.docs.OpenLabel(ctx, shipmentID)
	if err != nil {
		return fmt.Errorf("failed to open label for shipment %s: %w", shipmentID, err)
	}

	br := bufio.NewReader(body)
	if _, err := br.Peek(1); err != nil {
		body.Close()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("label for shipment %s: %w", shipmentID, domain.ErrMissingBody)
		}
		return fmt.Errorf("failed to read label for shipment %s: %w", shipmentID, err)
	}

	setPDFHeaders(sink, SanitizeFilename(filename, "label-"+shipmentID))
	return sink.SendStream(&bufferedBody{Reader: br, Closer: body})
}

type bufferedBody struct {
	io.Reader
	io.Closer
}

func setPDFHeaders(sink ports.Sink, filename string) {
	sink.SetHeader("Content-Type", "application/pdf")
	sink.SetHeader("Cache-Control", "no-store")
	sink.SetHeader("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
}

var filenameReplacer = strings.NewReplacer(
	`"`, "",
	"\r", "",
	"\n", "",
	"/", "_",
	`\`, "_",
)

// SanitizeFilename makes name safe for a Content-Disposition header,
// falling back to fallback when nothing usable is left.
func SanitizeFilename(name, fallback string) string {
	clean := strings.TrimSpace(filenameReplacer.Replace(name))
	if clean == "" || strings.Trim(clean, "._") == "" {
		clean = strings.TrimSpace(filenameReplacer.Replace(fallback))
	}
	if !strings.HasSuffix(strings.ToLower(clean), ".pdf") {
		clean += ".pdf"
	}
	return clean
}
