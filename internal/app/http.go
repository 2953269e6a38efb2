package app

import (
	"net"
	"net/http"
	"time"
)

// newPageHTTPClient returns an HTTP client for the single page fetch.
// overall bounds the whole request including body read; zero falls back to
// the scraper's historical 15 second limit.
func newPageHTTPClient(overall time.Duration) *http.Client {
	if overall <= 0 {
		overall = 15 * time.Second
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   overall,
	}
}
