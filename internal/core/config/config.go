package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"shipping-gateway/internal/core/proxy"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// AdminAPIKey guards every /admin route (sent as a Bearer token).
	AdminAPIKey string `mapstructure:"ADMIN_API_KEY" required:"true"`

	// Shiprocket holds the carrier account configuration.
	Shiprocket ShiprocketConfig `mapstructure:",squash"`

	// Invoice holds the invoice rendering parameters.
	Invoice InvoiceConfig `mapstructure:",squash"`

	// Redis holds the optional shared cache configuration.
	Redis RedisConfig `mapstructure:",squash"`

	// Storefront holds the order source configuration.
	Storefront StorefrontConfig `mapstructure:",squash"`

	// Proxy holds the optional outbound proxy for carrier traffic.
	Proxy proxy.Settings `mapstructure:",squash"`
}

// ShiprocketConfig holds the credentials and tuning for the Shiprocket API.
type ShiprocketConfig struct {
	// BaseURL is the API root, without the /external prefix.
	BaseURL string `mapstructure:"SHIPROCKET_BASE_URL" default:"https://apiv2.shiprocket.in/v1"`
	// Email is the API user's login email.
	Email string `mapstructure:"SHIPROCKET_EMAIL"`
	// Password is the API user's password.
	Password string `mapstructure:"SHIPROCKET_PASSWORD"`
	// StaticToken is a pre-issued token; when set, login is skipped.
	StaticToken string `mapstructure:"SHIPROCKET_TOKEN"`
	// Timeout bounds every outbound request.
	Timeout time.Duration `mapstructure:"SHIPROCKET_TIMEOUT" default:"30s"`
	// TokenTTL is how long a freshly issued token is trusted. Shiprocket
	// tokens live 10 days.
	TokenTTL time.Duration `mapstructure:"SHIPROCKET_TOKEN_TTL" default:"216h"`
	// StaticTokenTTL is the synthetic lifetime given to StaticToken.
	StaticTokenTTL time.Duration `mapstructure:"SHIPROCKET_STATIC_TOKEN_TTL" default:"8760h"`
	// PickupLocation is the nickname of the registered pickup address.
	PickupLocation string `mapstructure:"SHIPROCKET_PICKUP_LOCATION" default:"Primary"`
}

// InvoiceConfig holds the geometry of the invoice mask and barcode overlay.
type InvoiceConfig struct {
	// MaskRatio is the fraction of page 1 height masked from the top.
	MaskRatio float64 `mapstructure:"INVOICE_MASK_RATIO" default:"0.58"`
	// BarcodeMaxWidth caps the barcode width in points.
	BarcodeMaxWidth float64 `mapstructure:"INVOICE_BARCODE_MAX_WIDTH" default:"220"`
	// BarcodeAspect is height/width of the barcode image.
	BarcodeAspect float64 `mapstructure:"INVOICE_BARCODE_ASPECT" default:"0.28"`
	// BarcodeMargin is the distance in points from the top and right edges.
	BarcodeMargin float64 `mapstructure:"INVOICE_BARCODE_MARGIN" default:"18"`
	// MaxBytes bounds the buffered carrier invoice.
	MaxBytes int64 `mapstructure:"INVOICE_MAX_BYTES" default:"26214400"`
}

// RedisConfig holds the Redis connection details.
type RedisConfig struct {
	// URL is a redis:// URL. Empty keeps the token and tracking caches in memory.
	URL string `mapstructure:"REDIS_URL"`
	// TrackingCacheTTL is how long tracking responses are reused. Zero disables it.
	TrackingCacheTTL time.Duration `mapstructure:"TRACKING_CACHE_TTL" default:"60s"`
}

// StorefrontConfig points at the storefront's order API.
type StorefrontConfig struct {
	// URL is the storefront API root. Empty disables lookups by order id.
	URL string `mapstructure:"STORE_API_URL"`
	// APIKey is sent as a Bearer token to the storefront.
	APIKey string `mapstructure:"STORE_API_KEY"`
}

// HasCredentials reports whether a login can be attempted.
func (c ShiprocketConfig) HasCredentials() bool {
	return c.Email != "" && c.Password != ""
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if err := validateShiprocket(config.Shiprocket); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateShiprocket makes sure the gateway can obtain a token one way or another.
func validateShiprocket(c ShiprocketConfig) error {
	if c.StaticToken == "" && !c.HasCredentials() {
		return fmt.Errorf("missing required configuration: SHIPROCKET_TOKEN or SHIPROCKET_EMAIL/SHIPROCKET_PASSWORD")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid configuration: SHIPROCKET_TIMEOUT must be positive")
	}
	return nil
}

// processTags iterates over the struct fields, binds env keys and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
