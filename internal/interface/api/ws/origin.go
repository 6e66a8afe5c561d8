package ws

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// originPolicy decides which browser origins may call the API and open the
// web chat. Requests without an Origin header (curl, scripts) and same-host
// pages are always accepted.
type originPolicy struct {
	allowed []string
}

func newOriginPolicy(allowed []string) originPolicy {
	out := make([]string, 0, len(allowed))
	for _, o := range allowed {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			out = append(out, strings.ToLower(o))
		}
	}
	return originPolicy{allowed: out}
}

func (p originPolicy) allows(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	return slices.Contains(p.allowed, strings.ToLower(origin))
}
