package tiamp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esbBot/internal/domain"
)

func TestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "42", r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	}))
	defer srv.Close()

	c := NewClient()
	resp, err := c.Get(context.Background(), srv.URL+"/project?id=42", domain.Proxies{})

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"message":"not found"}`, string(resp.Body))
}

func TestClientGet_ThroughHTTPProxy(t *testing.T) {
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.String()))
	}))
	defer proxy.Close()

	c := NewClient()
	resp, err := c.Get(context.Background(), "http://tiamp.invalid/project/1", domain.Proxies{
		HTTP:  proxy.URL,
		HTTPS: "http://unused.invalid:1",
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://tiamp.invalid/project/1", string(resp.Body))
}

func TestClientGet_ErrorHidesSecret(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	target := srv.URL + "/project/1?client_id=bot&client_secret=s3cret"
	srv.Close()

	_, err := NewClient().Get(context.Background(), target, domain.Proxies{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tiamp: GET ")
	assert.NotContains(t, err.Error(), "s3cret")
}

func TestClientGet_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient().Get(ctx, srv.URL, domain.Proxies{})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientFor_CachesPerProxyPair(t *testing.T) {
	c := NewClient()

	a, err := c.clientFor(domain.Proxies{})
	require.NoError(t, err)
	b, err := c.clientFor(domain.Proxies{})
	require.NoError(t, err)
	other, err := c.clientFor(domain.Proxies{HTTP: "proxy:3128"})
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
	assert.Len(t, c.clients, 2)
}

func TestClientFor_InvalidProxy(t *testing.T) {
	_, err := NewClient().clientFor(domain.Proxies{HTTPS: "http://"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTPS_PROXY")
}

func TestProxyFunc_SelectsByScheme(t *testing.T) {
	fn, err := proxyFunc(domain.Proxies{HTTP: "proxy-a:3128", HTTPS: "https://proxy-b:8443"})
	require.NoError(t, err)

	tests := []struct {
		target string
		want   string
	}{
		{target: "http://tiamp/x", want: "http://proxy-a:3128"},
		{target: "https://tiamp/x", want: "https://proxy-b:8443"},
	}
	for _, tt := range tests {
		req, err := http.NewRequest(http.MethodGet, tt.target, nil)
		require.NoError(t, err)

		got, err := fn(req)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, tt.want, got.String())
	}
}

func TestProxyFunc_EmptyMeansDirect(t *testing.T) {
	t.Setenv("HTTP_PROXY", "http://from-env:1")
	t.Setenv("HTTPS_PROXY", "http://from-env:1")

	fn, err := proxyFunc(domain.Proxies{})
	require.NoError(t, err)

	for _, target := range []string{"http://tiamp/x", "https://tiamp/x"} {
		req, err := http.NewRequest(http.MethodGet, target, nil)
		require.NoError(t, err)

		got, err := fn(req)
		require.NoError(t, err)
		assert.Nil(t, got, target)
	}
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "https://h:8091/p/1", redact("https://user:pw@h:8091/p/1?client_secret=x"))

	u := &url.URL{Scheme: "http", Host: "h", Path: "/a b"}
	assert.Equal(t, u.String(), redact(u.String()))
}
