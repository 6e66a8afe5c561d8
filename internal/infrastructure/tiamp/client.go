// Package tiamp performs the HTTP calls to the TIAMP directory.
package tiamp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"esbBot/internal/domain"
)

// Client issues plain GETs: no timeout, no retry, default redirect handling.
// One underlying resty client is kept per proxy pair.
type Client struct {
	mu      sync.Mutex
	clients map[domain.Proxies]*resty.Client
}

func NewClient() *Client {
	return &Client{
		clients: make(map[domain.Proxies]*resty.Client),
	}
}

func (c *Client) Get(ctx context.Context, rawURL string, proxies domain.Proxies) (*domain.DirectoryResponse, error) {
	rc, err := c.clientFor(proxies)
	if err != nil {
		return nil, err
	}

	resp, err := rc.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(rawURL)
	if err != nil {
		// url.Error repeats the full URL, query string included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("tiamp: GET %s: %w", redact(rawURL), err)
	}

	return &domain.DirectoryResponse{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}

func (c *Client) clientFor(proxies domain.Proxies) (*resty.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rc, ok := c.clients[proxies]; ok {
		return rc, nil
	}

	proxy, err := proxyFunc(proxies)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = proxy

	rc := resty.NewWithClient(&http.Client{Transport: transport})
	c.clients[proxies] = rc
	return rc, nil
}

// proxyFunc picks the proxy by request scheme. The process environment is
// never consulted: an empty setting means a direct connection.
func proxyFunc(proxies domain.Proxies) (func(*http.Request) (*url.URL, error), error) {
	httpProxy, err := parseProxy(proxies.HTTP)
	if err != nil {
		return nil, fmt.Errorf("tiamp: HTTP_PROXY: %w", err)
	}
	httpsProxy, err := parseProxy(proxies.HTTPS)
	if err != nil {
		return nil, fmt.Errorf("tiamp: HTTPS_PROXY: %w", err)
	}

	return func(r *http.Request) (*url.URL, error) {
		if r.URL != nil && r.URL.Scheme == "https" {
			return httpsProxy, nil
		}
		return httpProxy, nil
	}, nil
}

func parseProxy(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, fmt.Errorf("missing host in %q", raw)
	}
	return u, nil
}

func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}

var _ domain.DirectoryFetcher = (*Client)(nil)
