package httpclient

import (
	"net/http"
	"net/url"
	"time"

	"shipping-gateway/internal/core/logger"
	"shipping-gateway/internal/core/proxy"

	"go.uber.org/zap"
)

// LoggingRoundTripper logs outbound requests without headers or query strings,
// so bearer tokens and presigned document URLs never reach the logs.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	target := SafeURL(req.URL)

	logger.Get().Debug("HTTP Request Started",
		zap.String("method", req.Method),
		zap.String("url", target),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		logger.Get().Error("HTTP Request Failed",
			zap.String("method", req.Method),
			zap.String("url", target),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Get().Debug("HTTP Request Completed",
		zap.String("method", req.Method),
		zap.String("url", target),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// SafeURL renders scheme, host and path only.
func SafeURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	safe := url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	return safe.String()
}

// NewClient returns an http.Client with logging middleware and an optional outbound proxy.
func NewClient(timeout time.Duration, proxySettings proxy.Settings) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if u := proxySettings.URL(); u != nil {
		transport.Proxy = http.ProxyURL(u)
		logger.Get().Info("Outbound proxy enabled", zap.String("proxy", proxySettings.HostPort()))
	}

	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: transport,
		},
		Timeout: timeout,
	}
}
