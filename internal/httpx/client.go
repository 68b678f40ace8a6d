// Package httpx provides the shared HTTP transport for API calls and
// transfers.
package httpx

import (
	"crypto/tls"
	nethttp "net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
)

// Transport tuning. Values follow the same connection-reuse settings used
// for API traffic and single-stream transfers.
const (
	maxIdleConns          = 128
	maxIdleConnsPerHost   = 16
	maxConnsPerHost       = 16
	idleConnTimeout       = 90 * time.Second
	tlsHandshakeTimeout   = 30 * time.Second
	expectContinueTimeout = 5 * time.Second
)

// NewTransport creates a tuned *http.Transport.
//
//   - Proxy from environment (HTTP_PROXY, HTTPS_PROXY, NO_PROXY)
//   - Connection pooling for repeated API calls
//   - Compression disabled: transfer payloads are opaque byte streams
//   - HTTP/2 enabled, with DISABLE_HTTP2=true as a runtime escape hatch
func NewTransport() *nethttp.Transport {
	tr := &nethttp.Transport{
		Proxy:                 nethttp.ProxyFromEnvironment,
		MaxIdleConns:          maxIdleConns,
		MaxIdleConnsPerHost:   maxIdleConnsPerHost,
		MaxConnsPerHost:       maxConnsPerHost,
		IdleConnTimeout:       idleConnTimeout,
		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ExpectContinueTimeout: expectContinueTimeout,
		DisableCompression:    true,
		ForceAttemptHTTP2:     true,
	}

	_ = http2.ConfigureTransport(tr)

	if os.Getenv("DISABLE_HTTP2") == "true" {
		tr.ForceAttemptHTTP2 = false
		tr.TLSNextProto = make(map[string]func(string, *tls.Conn) nethttp.RoundTripper)
	}

	return tr
}

// NewClient creates an *http.Client on a tuned transport. No overall
// timeout is set: callers bound each operation with a context.
func NewClient() *nethttp.Client {
	return &nethttp.Client{
		Transport: NewTransport(),
		Timeout:   0,
	}
}
