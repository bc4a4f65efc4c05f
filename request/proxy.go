package request

import (
	"net/url"
	"strings"
)

// ProxyPolicy decides whether a request goes through a proxy and how the URL is
// rewritten when it does.
type ProxyPolicy interface {
	ShouldUseProxy(proxyURL, targetURL string) bool
	RedirectToProxy(proxyURL, targetURL string) string
}

// DefaultProxy routes absolute non-loopback URLs through the proxy.
type DefaultProxy struct{}

func (DefaultProxy) ShouldUseProxy(proxyURL, targetURL string) bool {
	if proxyURL == "" {
		return false
	}
	u, err := url.Parse(targetURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return false
	}
	return !isLoopback(u.Hostname())
}

// RedirectToProxy passes the target as the scalar_url query parameter of the proxy.
func (DefaultProxy) RedirectToProxy(proxyURL, targetURL string) string {
	u, err := url.Parse(proxyURL)
	if err != nil {
		return proxyURL + "?scalar_url=" + url.QueryEscape(targetURL)
	}
	q := ParseQuery(u.RawQuery)
	q.Set("scalar_url", targetURL)
	u.RawQuery = q.Encode()
	return u.String()
}

func isLoopback(host string) bool {
	host = strings.ToLower(host)
	return host == "localhost" || host == "127.0.0.1" || host == "::1" || strings.HasSuffix(host, ".localhost")
}

// NoProxy never routes through a proxy.
type NoProxy struct{}

func (NoProxy) ShouldUseProxy(string, string) bool { return false }

func (NoProxy) RedirectToProxy(_, targetURL string) string { return targetURL }
