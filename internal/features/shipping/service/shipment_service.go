package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"shipping-gateway/internal/core/cache"
	"shipping-gateway/internal/core/logger"
	adapter "shipping-gateway/internal/features/shipping/adapters"
	"shipping-gateway/internal/features/shipping/domain"
	"shipping-gateway/internal/features/shipping/ports"

	"go.uber.org/zap"
)

var pincodeFormat = regexp.MustCompile(`^\d{6}$`)

// OrderLookup fetches a shippable storefront order by id.
type OrderLookup interface {
	GetShippableOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

// ShipmentService exposes carrier operations to the admin API.
type ShipmentService struct {
	gateway     ports.CarrierGateway
	orders      OrderLookup
	cache       cache.Cache
	trackingTTL time.Duration
}

// NewShipmentService creates a ShipmentService. A nil cache or zero TTL
// disables tracking caching.
func NewShipmentService(gateway ports.CarrierGateway, orders OrderLookup, c cache.Cache, trackingTTL time.Duration) *ShipmentService {
	return &ShipmentService{
		gateway:     gateway,
		orders:      orders,
		cache:       c,
		trackingTTL: trackingTTL,
	}
}

// CreateShipment submits order to the carrier.
func (s *ShipmentService) CreateShipment(ctx context.Context, order domain.Order) (*domain.ShipmentResult, error) {
	if strings.TrimSpace(order.ID) == "" {
		return nil, fmt.Errorf("%w: order id is required", domain.ErrInvalidInput)
	}
	if len(order.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", domain.ErrInvalidInput)
	}

	result, err := s.gateway.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create shipment for order %s: %w", order.ID, err)
	}

	logger.Get().Info("Shipment created",
		zap.String("order_id", order.ID),
		zap.String("carrier_order_id", result.CarrierOrderID.String()),
		zap.String("shipment_id", result.ShipmentID.String()),
	)
	return result, nil
}

// CreateShipmentForOrder looks orderID up in the storefront and submits it.
func (s *ShipmentService) CreateShipmentForOrder(ctx context.Context, orderID string) (*domain.ShipmentResult, error) {
	if s.orders == nil {
		return nil, fmt.Errorf("%w: order lookup is not configured, send the full order", domain.ErrInvalidInput)
	}
	order, err := s.orders.GetShippableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.CreateShipment(ctx, *order)
}

// TrackOrder returns the raw tracking payload and its timeline.
func (s *ShipmentService) TrackOrder(ctx context.Context, orderID string) (*domain.TrackingView, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%w: order id is required", domain.ErrInvalidInput)
	}
	return s.track(ctx, "tracking:order:"+orderID, func(ctx context.Context) (json.RawMessage, error) {
		return s.gateway.TrackOrder(ctx, orderID)
	})
}

// TrackByAWB returns the raw tracking payload and its timeline for an AWB.
func (s *ShipmentService) TrackByAWB(ctx context.Context, awb string) (*domain.TrackingView, error) {
	if strings.TrimSpace(awb) == "" {
		return nil, fmt.Errorf("%w: awb is required", domain.ErrInvalidInput)
	}
	return s.track(ctx, "tracking:awb:"+awb, func(ctx context.Context) (json.RawMessage, error) {
		return s.gateway.TrackByAWB(ctx, awb)
	})
}

func (s *ShipmentService) track(ctx context.Context, key string, fetch func(context.Context) (json.RawMessage, error)) (*domain.TrackingView, error) {
	if raw, ok := s.cachedTracking(ctx, key); ok {
		return &domain.TrackingView{Raw: raw, Timeline: adapter.ConvertTrackingToTimeline(raw)}, nil
	}

	raw, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if s.trackingCacheEnabled() {
		if err := s.cache.Set(ctx, key, raw, s.trackingTTL); err != nil {
			logger.Get().Warn("Failed to cache tracking", zap.String("key", key), zap.Error(err))
		}
	}
	return &domain.TrackingView{Raw: raw, Timeline: adapter.ConvertTrackingToTimeline(raw)}, nil
}

func (s *ShipmentService) cachedTracking(ctx context.Context, key string) (json.RawMessage, bool) {
	if !s.trackingCacheEnabled() {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrKeyNotFound) {
			logger.Get().Warn("Tracking cache unavailable", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return json.RawMessage(raw), true
}

func (s *ShipmentService) trackingCacheEnabled() bool {
	return s.cache != nil && s.trackingTTL > 0
}

// CheckServiceability validates the lane and returns the carrier's verdict.
func (s *ShipmentService) CheckServiceability(ctx context.Context, q domain.ServiceabilityQuery) (json.RawMessage, error) {
	if !pincodeFormat.MatchString(q.PickupPincode) || !pincodeFormat.MatchString(q.DeliveryPincode) {
		return nil, fmt.Errorf("%w: pincodes must be 6 digits", domain.ErrInvalidInput)
	}
	if q.WeightKg <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", domain.ErrInvalidInput)
	}
	return s.gateway.CheckServiceability(ctx, q)
}

// GenerateAWB assigns an AWB to a shipment.
func (s *ShipmentService) GenerateAWB(ctx context.Context, shipmentID, courierID string) (json.RawMessage, error) {
	if strings.TrimSpace(shipmentID) == "" {
		return nil, fmt.Errorf("%w: shipment id is required", domain.ErrInvalidInput)
	}
	return s.gateway.GenerateAWB(ctx, shipmentID, courierID)
}

// GetOrderDetails returns the carrier's view of an order.
func (s *ShipmentService) GetOrderDetails(ctx context.Context, orderID string) (json.RawMessage, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%w: order id is required", domain.ErrInvalidInput)
	}
	return s.gateway.GetOrderDetails(ctx, orderID)
}

// CancelOrder cancels a carrier order and drops its cached tracking.
func (s *ShipmentService) CancelOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%w: order id is required", domain.ErrInvalidInput)
	}

	raw, err := s.gateway.CancelOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if s.trackingCacheEnabled() {
		if err := s.cache.Delete(ctx, "tracking:order:"+orderID); err != nil {
			logger.Get().Warn("Failed to drop cached tracking", zap.String("order_id", orderID), zap.Error(err))
		}
	}
	logger.Get().Info("Carrier order cancelled", zap.String("order_id", orderID))
	return raw, nil
}
