package ports

import (
	"context"
	"io"
)

// DocumentSource opens carrier-issued PDFs. The caller closes the body.
type DocumentSource interface {
	OpenInvoice(ctx context.Context, carrierOrderID string) (io.ReadCloser, error)
	OpenLabel(ctx context.Context, shipmentID string) (io.ReadCloser, error)
}

// Transformer rewrites an invoice before it is served.
type Transformer interface {
	// Transform returns a new document; pdf is never modified.
	Transform(ctx context.Context, pdf []byte, trackingCode string) ([]byte, error)
}

// BarcodeEncoder renders text as a PNG barcode whose aspect ratio matches
// width x height (points).
type BarcodeEncoder interface {
	Encode(text string, width, height float64) ([]byte, error)
}

// Sink is the outgoing HTTP response.
type Sink interface {
	SetHeader(key, value string)
	Send(body []byte) error
	// SendStream takes ownership of body and closes it.
	SendStream(body io.ReadCloser) error
}
