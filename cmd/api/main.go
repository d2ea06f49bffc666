package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipping-gateway/internal/core/cache"
	"shipping-gateway/internal/core/config"
	"shipping-gateway/internal/core/httpclient"
	"shipping-gateway/internal/core/logger"
	"shipping-gateway/internal/core/server"
	invoiceadapter "shipping-gateway/internal/features/invoice/adapters"
	invoicehandler "shipping-gateway/internal/features/invoice/handler"
	invoiceservice "shipping-gateway/internal/features/invoice/service"
	orderadapter "shipping-gateway/internal/features/orders/adapters"
	orderhandler "shipping-gateway/internal/features/orders/handler"
	"shipping-gateway/internal/features/orders/ports"
	orderservice "shipping-gateway/internal/features/orders/service"
	shippingadapter "shipping-gateway/internal/features/shipping/adapters"
	shippinghandler "shipping-gateway/internal/features/shipping/handler"
	shippingservice "shipping-gateway/internal/features/shipping/service"

	"go.uber.org/zap"
)

// @title Shipping Gateway API
// @version 1.0
// @description Admin API for Shiprocket shipments, tracking timelines and masked invoices.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey AdminKey
// @in header
// @name Authorization
// @description Bearer <ADMIN_API_KEY>
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Cache: Redis when configured so replicas share the carrier token
	var store cache.Cache
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL, "shipping-gateway:")
		if err != nil {
			l.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		store = redisCache
		l.Info("Using Redis cache")
	} else {
		store = cache.NewMemoryAdapter()
		l.Info("Using in-memory cache")
	}
	defer store.Close()

	httpClient := httpclient.NewClient(cfg.Shiprocket.Timeout, cfg.Proxy)

	// Carrier gateway
	carrier, err := shippingadapter.NewShiprocketAdapter(
		cfg.Shiprocket,
		httpClient,
		shippingadapter.NewCacheTokenStore(store),
		shippingadapter.NewStructuredAddressParser(),
	)
	if err != nil {
		l.Fatal("Failed to init Shiprocket adapter", zap.Error(err))
	}

	// Order source, optional
	var source ports.OrderSource
	storefront := orderadapter.NewStorefrontAdapter(cfg.Storefront, httpclient.NewClient(10*time.Second, cfg.Proxy))
	if storefront.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := storefront.HealthCheck(ctx); err != nil {
			l.Warn("Storefront health check failed", zap.Error(err))
		} else {
			l.Info("Storefront connection verified")
		}
		cancel()
		source = storefront
	} else {
		l.Info("STORE_API_URL not set, order lookup disabled")
	}

	// Services & handlers
	orderSvc := orderservice.NewOrderService(source)
	orderHdl := orderhandler.NewOrderHandler(orderSvc)

	shipmentSvc := shippingservice.NewShipmentService(carrier, orderSvc, store, cfg.Redis.TrackingCacheTTL)
	shipmentHdl := shippinghandler.NewShipmentHandler(shipmentSvc)

	stamper := invoiceadapter.NewPDFStamper(cfg.Invoice, invoiceadapter.NewCode128Encoder())
	invoiceSvc := invoiceservice.NewInvoiceService(carrier, stamper, cfg.Invoice.MaxBytes)
	invoiceHdl := invoicehandler.NewInvoiceHandler(invoiceSvc)

	srv := server.New(cfg, map[string]server.Pinger{"cache": store})

	// Register Routes
	admin := srv.Admin()
	admin.Get("/orders/:id", orderHdl.GetOrder)

	admin.Post("/shipments", shipmentHdl.CreateShipment)
	admin.Post("/shipments/awb", shipmentHdl.GenerateAWB)
	admin.Get("/shipments/label/:shipmentId", invoiceHdl.GetLabel)
	admin.Get("/shipments/:orderId", shipmentHdl.GetOrderDetails)
	admin.Post("/shipments/:orderId/cancel", shipmentHdl.CancelOrder)
	admin.Get("/shipments/:orderId/tracking", shipmentHdl.TrackOrder)
	admin.Get("/shipments/:orderId/invoice", invoiceHdl.GetInvoice)
	admin.Get("/tracking/awb/:code", shipmentHdl.TrackByAWB)
	admin.Get("/serviceability", shipmentHdl.CheckServiceability)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		l.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			l.Error("Graceful shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
