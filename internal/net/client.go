// Package net carries correction requests over HTTP.
package net

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBody caps how much of a reply body is read.
const MaxBody = 4 << 20

// Reply is the status and body of one POST. Non-2xx statuses are returned
// as replies, not errors; the caller decides what they mean.
type Reply struct {
	Status int
	Body   []byte
}

// Transport POSTs a JSON body and returns the reply.
type Transport interface {
	PostJSON(ctx context.Context, url string, body []byte, requestID string) (*Reply, error)
}

// shared client (keep-alive, TLS session reuse).
var shared = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        32,
		MaxIdleConnsPerHost: 16,
		DisableCompression:  false,
		TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
	},
}

// Std is the net/http transport.
type Std struct {
	client *http.Client
}

// NewStd wraps c; nil selects the shared client.
func NewStd(c *http.Client) *Std {
	if c == nil {
		c = shared
	}
	return &Std{client: c}
}

// PostJSON implements Transport.
func (s *Std) PostJSON(ctx context.Context, url string, body []byte, requestID string) (*Reply, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBody))
	if err != nil {
		return nil, fmt.Errorf("net: read body: %w", err)
	}
	return &Reply{Status: resp.StatusCode, Body: raw}, nil
}

// New selects a transport by name: "std" (default) or "browser".
func New(kind string, timeout time.Duration) (Transport, error) {
	switch kind {
	case "", KindStd:
		return NewStd(nil), nil
	case KindBrowser:
		return NewBrowser(timeout)
	default:
		return nil, fmt.Errorf("net: unknown transport %q (want %s or %s)", kind, KindStd, KindBrowser)
	}
}

// Transport names accepted by New.
const (
	KindStd     = "std"
	KindBrowser = "browser"
)

const userAgent = "corrector/1.0 (+https://github.com/Alfex4936/corrector)"
