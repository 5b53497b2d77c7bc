// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

// Package httpclient is markline's outgoing HTTP client.
// It provides an [http.RoundTripper] with sensible defaults that make
// content fetches look like they come from a regular browser.
package httpclient

import (
	"log/slog"
	"maps"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"time"

	"golang.org/x/net/publicsuffix"
)

const uaString = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.3"

// defaultDialer is our own default net.Dialer with shorter timeout and keepalive.
var defaultDialer = net.Dialer{
	Timeout:   15 * time.Second,
	KeepAlive: 30 * time.Second,
}

// defaultTransport is our http.RoundTripper with some custom settings.
var defaultTransport = &http.Transport{
	DialContext:           defaultDialer.DialContext,
	Proxy:                 http.ProxyFromEnvironment,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          20,
	MaxIdleConnsPerHost:   2,
	IdleConnTimeout:       30 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

// defaultHeaders are the HTTP headers that are sent with every new request.
// They're attached to the transport and can be overridden and/or modified
// while using the associated client.
var defaultHeaders = http.Header{
	"User-Agent":      []string{uaString},
	"Accept":          []string{"text/html,application/xhtml+xml,application/xml;q=0.9,image/jpeg,image/png,*/*;q=0.8"},
	"Accept-Language": []string{"en-US,en;q=0.8"},
	"Cache-Control":   []string{"max-age=0"},
}

// Transport wraps an [http.RoundTripper].
type Transport struct {
	http.RoundTripper
	header http.Header
	logger *slog.Logger
}

// RoundTrip implements [http.RoundTripper].
// It adds the default headers and logs every request at debug level.
func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	// A RoundTripper should not modify the request. Since we only want to add
	// headers, we can work with a shallow copy.
	req := new(http.Request)
	*req = *r
	req.Header = req.Header.Clone()

	// Add the client's default headers that don't exist in the
	// current request.
	for k, values := range t.header {
		if _, ok := r.Header[textproto.CanonicalMIMEHeaderKey(k)]; !ok {
			req.Header[k] = values
		}
	}

	now := time.Now()
	rsp, err := t.RoundTripper.RoundTrip(req)

	attrs := []slog.Attr{
		slog.Group("request",
			slog.String("url", req.URL.String()),
			slog.String("method", req.Method),
		),
	}
	if err != nil {
		attrs = append(attrs, slog.Group("response", slog.Any("err", err)))
	} else {
		attrs = append(attrs, slog.Group("response", slog.Int("status", rsp.StatusCode)))
	}
	attrs = append(attrs, slog.Duration("time", time.Since(now)))
	t.Log().LogAttrs(req.Context(), slog.LevelDebug, "request", attrs...)

	return rsp, err
}

// Log returns the transport's logger.
func (t *Transport) Log() *slog.Logger {
	if t.logger == nil {
		return slog.Default()
	}
	return t.logger
}

// SetLogger sets the transport's logger.
func (t *Transport) SetLogger(l *slog.Logger) {
	t.logger = l
}

// SetHeader receives a function that can manipulate the
// transport's default headers.
func (t *Transport) SetHeader(fn func(h http.Header)) {
	fn(t.header)
}

// New returns a new client with an empty cookie storage and a
// [Transport] instance.
func New(timeout time.Duration) *http.Client {
	cookies, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &http.Client{
		Transport: &Transport{
			RoundTripper: defaultTransport.Clone(),
			header:       maps.Clone(defaultHeaders),
			logger:       slog.Default(),
		},
		Timeout: timeout,
		Jar:     cookies,
	}
}
