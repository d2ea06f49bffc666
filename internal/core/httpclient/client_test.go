package httpclient

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"shipping-gateway/internal/core/logger"
	"shipping-gateway/internal/core/proxy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoggingRoundTripper verifies that requests are executed and logged.
func TestLoggingRoundTripper(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	require.NoError(t, logger.Init("development", "debug"))

	client := NewClient(1*time.Second, proxy.Settings{})
	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestLoggingRoundTripper_Error verifies that failed requests are surfaced.
func TestLoggingRoundTripper_Error(t *testing.T) {
	require.NoError(t, logger.Init("development", "debug"))

	client := NewClient(1*time.Second, proxy.Settings{})
	_, err := client.Get("http://invalid-url-that-does-not-exist.local")
	require.Error(t, err)
}

// TestSafeURL verifies that query strings and credentials are dropped.
func TestSafeURL(t *testing.T) {
	u, err := url.Parse("https://user:pw@s3.example.com/invoices/1.pdf?X-Amz-Signature=abc")
	require.NoError(t, err)

	assert.Equal(t, "https://s3.example.com/invoices/1.pdf", SafeURL(u))
	assert.Empty(t, SafeURL(nil))
}
