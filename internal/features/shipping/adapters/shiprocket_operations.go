package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"shipping-gateway/internal/core/logger"
	"shipping-gateway/internal/features/shipping/domain"

	"go.uber.org/zap"
)

// CreateOrder converts order and submits it as an ad-hoc order.
func (a *ShiprocketAdapter) CreateOrder(ctx context.Context, order domain.Order) (*domain.ShipmentResult, error) {
	payload, warnings := a.converter.Convert(order)
	if len(warnings) > 0 {
		logger.Get().Warn("Order needed address or field fallbacks",
			zap.String("order_id", order.ID),
			zap.Strings("warnings", warnings),
		)
	}

	raw, err := a.call(ctx, "create order", http.MethodPost, "/external/orders/create/adhoc", nil, payload)
	if err != nil {
		return nil, err
	}

	var result domain.ShipmentResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("create order: %w: %v", domain.ErrMalformedResponse, err)
	}
	result.Raw = raw
	return &result, nil
}

// TrackOrder returns the raw tracking payload for a carrier order id.
func (a *ShiprocketAdapter) TrackOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("order_id", orderID)
	return a.call(ctx, "track order", http.MethodGet, "/external/courier/track", q, nil)
}

// TrackByAWB returns the raw tracking payload for an airway bill code.
func (a *ShiprocketAdapter) TrackByAWB(ctx context.Context, awb string) (json.RawMessage, error) {
	return a.call(ctx, "track awb", http.MethodGet, "/external/courier/track/awb/"+url.PathEscape(awb), nil, nil)
}

// CheckServiceability asks whether couriers serve the lane; the verdict is returned as sent.
func (a *ShiprocketAdapter) CheckServiceability(ctx context.Context, sq domain.ServiceabilityQuery) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("pickup_postcode", sq.PickupPincode)
	q.Set("delivery_postcode", sq.DeliveryPincode)
	q.Set("weight", strconv.FormatFloat(sq.WeightKg, 'f', -1, 64))
	if sq.COD {
		q.Set("cod", "1")
	} else {
		q.Set("cod", "0")
	}
	return a.call(ctx, "serviceability", http.MethodGet, "/external/courier/serviceability/", q, nil)
}

// GenerateAWB assigns an AWB to a shipment; courierID may be empty.
func (a *ShiprocketAdapter) GenerateAWB(ctx context.Context, shipmentID, courierID string) (json.RawMessage, error) {
	body := map[string]any{"shipment_id": idValue(shipmentID)}
	if courierID != "" {
		body["courier_id"] = idValue(courierID)
	}
	return a.call(ctx, "assign awb", http.MethodPost, "/external/courier/assign/awb", nil, body)
}

// GetOrderDetails returns the carrier's view of an order.
func (a *ShiprocketAdapter) GetOrderDetails(ctx context.Context, orderID string) (json.RawMessage, error) {
	return a.call(ctx, "order details", http.MethodGet, "/external/orders/show/"+url.PathEscape(orderID), nil, nil)
}

// CancelOrder cancels one carrier order.
func (a *ShiprocketAdapter) CancelOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	body := map[string]any{"ids": []any{idValue(orderID)}}
	return a.call(ctx, "cancel order", http.MethodPost, "/external/orders/cancel", nil, body)
}

// idValue sends numeric ids as JSON numbers and anything else as a string.
func idValue(id string) any {
	if _, err := strconv.ParseInt(id, 10, 64); err == nil {
		return json.Number(id)
	}
	return id
}
