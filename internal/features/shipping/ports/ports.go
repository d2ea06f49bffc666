package ports

import (
	"context"
	"encoding/json"
	"io"

	"shipping-gateway/internal/features/shipping/domain"
)

// CarrierGateway is the logistics provider as seen by the rest of the service.
// This is a Secondary Port (Driven Port).
type CarrierGateway interface {
	// Authenticate makes sure a usable token is cached, logging in when needed.
	Authenticate(ctx context.Context, forceRefresh bool) (domain.AuthToken, error)
	// CreateOrder submits a local order as a carrier ad-hoc order.
	CreateOrder(ctx context.Context, order domain.Order) (*domain.ShipmentResult, error)
	// TrackOrder returns the raw tracking payload for a carrier order id.
	TrackOrder(ctx context.Context, orderID string) (json.RawMessage, error)
	// TrackByAWB returns the raw tracking payload for an airway bill.
	TrackByAWB(ctx context.Context, awb string) (json.RawMessage, error)
	// CheckServiceability returns the carrier's verdict for a lane, unmodified.
	CheckServiceability(ctx context.Context, q domain.ServiceabilityQuery) (json.RawMessage, error)
	// GenerateAWB assigns a courier and AWB to a shipment. An empty courierID lets the carrier choose.
	GenerateAWB(ctx context.Context, shipmentID, courierID string) (json.RawMessage, error)
	GetOrderDetails(ctx context.Context, orderID string) (json.RawMessage, error)
	CancelOrder(ctx context.Context, orderID string) (json.RawMessage, error)
	// OpenInvoice downloads the carrier invoice PDF. The caller closes the body.
	OpenInvoice(ctx context.Context, orderID string) (io.ReadCloser, error)
	// OpenLabel downloads the shipping label PDF. The caller closes the body.
	OpenLabel(ctx context.Context, shipmentID string) (io.ReadCloser, error)
}

// AddressParser turns a free-text or structured address into carrier fields.
type AddressParser interface {
	Parse(order domain.Order) domain.ParsedAddress
}

// TokenStore holds the carrier token between requests.
type TokenStore interface {
	// Load returns the stored token, or ok=false when there is none.
	Load(ctx context.Context) (tok domain.AuthToken, ok bool, err error)
	Save(ctx context.Context, tok domain.AuthToken) error
	Clear(ctx context.Context) error
}
