package net

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// Browser sends requests with a Chrome TLS fingerprint. Some deployments
// sit behind proxies that reject Go's default ClientHello.
type Browser struct {
	client tls_client.HttpClient
}

// NewBrowser builds a Chrome-profile client. timeout is a backstop;
// per-request deadlines come from the context.
func NewBrowser(timeout time.Duration) (*Browser, error) {
	return newBrowser(timeout)
}

func newBrowser(timeout time.Duration, extra ...tls_client.HttpClientOption) (*Browser, error) {
	secs := int(timeout / time.Second)
	if secs <= 0 {
		secs = 60
	}
	opts := append([]tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(secs),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithNotFollowRedirects(),
	}, extra...)
	c, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), opts...)
	if err != nil {
		return nil, fmt.Errorf("net: tls client: %w", err)
	}
	return &Browser{client: c}, nil
}

// PostJSON implements Transport.
func (b *Browser) PostJSON(ctx context.Context, url string, body []byte, requestID string) (*Reply, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header = fhttp.Header{
		"content-type": {"application/json"},
		"accept":       {"application/json"},
		"user-agent":   {chromeUA},
		fhttp.HeaderOrderKey: {
			"content-type",
			"accept",
			"user-agent",
			"x-request-id",
		},
	}
	if requestID != "" {
		req.Header.Set("x-request-id", requestID)
	}

	resp, err := b.client.Do(req)
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

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
