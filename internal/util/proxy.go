package util

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// NewProxyFunc creates a proxy function based on configuration.
// If no proxy URLs are provided, falls back to environment variables.
// Hosts matching noProxy (comma-separated, exact or domain-suffix
// entries, "*" for all) bypass the configured proxies.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	skip := parseNoProxy(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		if bypassProxy(req.URL.Hostname(), skip) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func parseNoProxy(noProxy string) []string {
	var entries []string
	for _, entry := range strings.Split(noProxy, ",") {
		entry = strings.TrimSpace(strings.ToLower(entry))
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

func bypassProxy(host string, skip []string) bool {
	host = strings.ToLower(host)
	for _, entry := range skip {
		if entry == "*" || host == entry {
			return true
		}
		// ".example.com" and "example.com" both match subdomains
		suffix := strings.TrimPrefix(entry, ".")
		if strings.HasSuffix(host, "."+suffix) {
			return true
		}
	}
	return false
}

// NewHTTPClient builds the outbound client every adapter uses: one
// bounded timeout per external call, proxy settings honored. Timeouts
// surface as transport failures at the adapter boundary.
func NewHTTPClient(timeout time.Duration, httpProxy, httpsProxy, noProxy string) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: NewProxyFunc(httpProxy, httpsProxy, noProxy),
		},
	}
}
