package domain

import "context"

// Proxies holds the proxy URL used for each request scheme. An empty value
// means the request goes out directly.
type Proxies struct {
	HTTP  string
	HTTPS string
}

// DirectoryResponse is the raw answer of the TIAMP directory.
type DirectoryResponse struct {
	StatusCode int
	Body       []byte
}

// DirectoryFetcher performs a single GET against the TIAMP directory.
type DirectoryFetcher interface {
	Get(ctx context.Context, url string, proxies Proxies) (*DirectoryResponse, error)
}
