package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shipping-gateway/internal/core/config"
	"shipping-gateway/internal/core/logger"
	"shipping-gateway/internal/features/orders/ports"
	"shipping-gateway/internal/features/shipping/domain"

	"go.uber.org/zap"
)

// StorefrontAdapter implements the OrderSource interface using the storefront's REST API.
type StorefrontAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the storefront connection details.
	config config.StorefrontConfig
}

// NewStorefrontAdapter creates a new instance of StorefrontAdapter.
func NewStorefrontAdapter(cfg config.StorefrontConfig, client *http.Client) *StorefrontAdapter {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &StorefrontAdapter{
		client: client,
		config: cfg,
	}
}

// Enabled reports whether a storefront URL is configured.
func (a *StorefrontAdapter) Enabled() bool {
	return a.config.URL != ""
}

// GetOrder fetches an order from the storefront and maps it to the domain entity.
func (a *StorefrontAdapter) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	endpoint := fmt.Sprintf("%s/api/orders/%s", strings.TrimRight(a.config.URL, "/"), url.PathEscape(orderID))

	req, err := a.newRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ports.ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("storefront API returned status: %d", resp.StatusCode)
	}

	var envelope storefrontEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	so := envelope.Order
	if so == nil {
		so = &envelope.storefrontOrder
	}
	if so.ID == "" {
		so.ID = domain.FlexibleID(orderID)
	}
	return mapToDomain(*so), nil
}

// HealthCheck verifies that the storefront API is reachable and the key is accepted.
func (a *StorefrontAdapter) HealthCheck(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/api/health", strings.TrimRight(a.config.URL, "/"))

	req, err := a.newRequest(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("health check failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}

	return nil
}

func (a *StorefrontAdapter) newRequest(ctx context.Context, endpoint string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if a.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.config.APIKey)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// mapToDomain converts a raw storefront order into a domain Order entity.
func mapToDomain(so storefrontOrder) *domain.Order {
	order := &domain.Order{
		ID:              so.ID.String(),
		CreatedAt:       time.Time(so.CreatedAt),
		CustomerName:    strings.TrimSpace(so.CustomerName),
		Email:           strings.TrimSpace(so.Email),
		Phone:           strings.TrimSpace(so.Phone),
		ShippingAddress: strings.TrimSpace(so.ShippingAddress),
		PaymentMethod:   so.PaymentMethod,
		ShippingCharges: so.ShippingCharges,
		Discount:        so.Discount,
		Items:           mapItems(so.Items),
	}

	if so.Address != nil {
		order.Address = &domain.Address{
			Line1:   so.Address.Line1,
			Line2:   so.Address.Line2,
			City:    so.Address.City,
			State:   so.Address.State,
			Pincode: so.Address.Pincode,
			Country: so.Address.Country,
		}
	}

	switch {
	case so.Subtotal > 0:
		order.SubTotal = so.Subtotal
	case so.TotalAmount > 0:
		order.SubTotal = max(so.TotalAmount-so.ShippingCharges, 0)
	}

	return order
}

// mapItems converts storefront line items to domain OrderItems.
func mapItems(items []storefrontItem) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		name := item.Name
		if name == "" && item.Product != nil {
			name = item.Product.Name
		}
		sku := item.SKU
		if sku == "" && item.Product != nil {
			sku = item.Product.SKU
		}
		out = append(out, domain.OrderItem{
			Name:      name,
			SKU:       sku,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}
	return out
}

// internal structs for mapping

// storefrontEnvelope accepts both a bare order and {"order": {...}}.
type storefrontEnvelope struct {
	storefrontOrder
	// Order is set when the API wraps the payload.
	Order *storefrontOrder `json:"order"`
}

// storefrontOrder represents the JSON structure of an order from the storefront API.
type storefrontOrder struct {
	// ID is the order id; numeric or string.
	ID domain.FlexibleID `json:"id"`
	// CreatedAt is when the order was placed.
	CreatedAt storefrontTime `json:"createdAt"`
	// CustomerName is the name entered at checkout.
	CustomerName string `json:"customerName"`
	// Email is the customer's email.
	Email string `json:"email"`
	// Phone is the customer's phone as typed.
	Phone string `json:"phone"`
	// ShippingAddress is the single-line address.
	ShippingAddress string `json:"shippingAddress"`
	// Address holds structured fields when the checkout collected them.
	Address *storefrontAddress `json:"address"`
	// Items are the ordered products.
	Items []storefrontItem `json:"items"`
	// PaymentMethod is e.g. "cod" or "razorpay".
	PaymentMethod string `json:"paymentMethod"`
	// Subtotal is the value of the items, when the API reports it.
	Subtotal float64 `json:"subtotal"`
	// TotalAmount is what the customer paid, including shipping.
	TotalAmount float64 `json:"totalAmount"`
	// ShippingCharges is the delivery fee.
	ShippingCharges float64 `json:"shippingCharges"`
	// Discount is the total discount.
	Discount float64 `json:"discount"`
}

// storefrontAddress holds structured address information.
type storefrontAddress struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// storefrontItem represents a product line.
type storefrontItem struct {
	// Name is the product name.
	Name string `json:"name"`
	// SKU is the product SKU.
	SKU string `json:"sku"`
	// Quantity is the number of units ordered.
	Quantity int `json:"quantity"`
	// Price is the unit price.
	Price float64 `json:"price"`
	// Product is the populated product when the API embeds it.
	Product *storefrontProduct `json:"product"`
}

// storefrontProduct is the embedded product reference.
type storefrontProduct struct {
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// storefrontTime accepts the date formats the storefront emits.
type storefrontTime time.Time

var storefrontTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

// UnmarshalJSON parses the storefront's date strings; unknown formats become the zero time.
func (t *storefrontTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		*t = storefrontTime(time.Time{})
		return nil
	}
	for _, layout := range storefrontTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = storefrontTime(parsed)
			return nil
		}
	}
	logger.Get().Warn("Failed to parse date", zap.String("date", s))
	*t = storefrontTime(time.Time{})
	return nil
}
