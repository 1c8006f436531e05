// Package http builds the HTTP client used against the remote forum backend.
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeout bounds each remote call end to end. The original app had no
// timeout anywhere; every transport here gets one.
const DefaultTimeout = 30 * time.Second

// NewClient creates an HTTP client configured for remote API calls.
//
// http.DefaultClient has no timeout, so a custom client is always used. The
// transport is set explicitly for connection stability and resource
// management: short TCP dial timeout, keep-alive reuse, bounded idle pool.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
