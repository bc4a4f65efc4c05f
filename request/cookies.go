package request

import (
	"net/url"
	"strings"

	"github.com/kolah/synth/model"
)

const (
	CookieHeaderName       = "Cookie"
	CustomCookieHeaderName = "X-Scalar-Cookie"
)

// CookieHeader is the merged cookie header of a request.
type CookieHeader struct {
	Name  string
	Value string
}

type CookieInput struct {
	// ParamCookies come from cookie parameters and security schemes.
	ParamCookies []model.Cookie
	// GlobalCookies are filtered against URL before use.
	GlobalCookies []model.Cookie
	Env           map[string]string
	// OriginalCookieHeader is a cookie header the request already carries.
	OriginalCookieHeader string
	URL                  string
	// UseCustomCookieHeader selects X-Scalar-Cookie over Cookie.
	UseCustomCookieHeader bool
	// DisabledGlobalCookies switches global cookies off by name.
	DisabledGlobalCookies map[string]bool
}

// BuildCookieHeader merges the original header, the global cookies that apply to the
// URL and the parameter cookies, in that order. It returns nil when nothing is left.
func BuildCookieHeader(in CookieInput) *CookieHeader {
	parts := make([]string, 0, 1+len(in.GlobalCookies)+len(in.ParamCookies))
	if original := strings.TrimSpace(in.OriginalCookieHeader); original != "" {
		parts = append(parts, original)
	}
	for _, c := range in.GlobalCookies {
		if !FilterGlobalCookie(c, in.URL, in.DisabledGlobalCookies) {
			continue
		}
		parts = append(parts, ReplaceVariables(c.Name, in.Env)+"="+ReplaceVariables(c.Value, in.Env))
	}
	for _, c := range in.ParamCookies {
		parts = append(parts, c.Name+"="+c.Value)
	}

	value := strings.TrimSpace(strings.Join(parts, "; "))
	if value == "" {
		return nil
	}
	name := CookieHeaderName
	if in.UseCustomCookieHeader {
		name = CustomCookieHeaderName
	}
	return &CookieHeader{Name: name, Value: value}
}

// FilterGlobalCookie reports whether a global cookie applies to rawURL.
func FilterGlobalCookie(c model.Cookie, rawURL string, disabled map[string]bool) bool {
	if c.Disabled || disabled[c.Name] {
		return false
	}
	if c.Name == "" {
		return false
	}

	host, path := hostAndPath(rawURL)
	if c.Domain != "" && !domainMatches(c.Domain, host) {
		return false
	}
	if c.Path != "" && !strings.HasPrefix(path, c.Path) {
		return false
	}
	return true
}

// domainMatches applies cookie domain rules: a leading dot matches the domain itself
// and any subdomain, otherwise only the exact host matches.
func domainMatches(domain, host string) bool {
	if host == "" {
		return false
	}
	domain = strings.ToLower(domain)
	host = strings.ToLower(host)
	if domain == host {
		return true
	}
	if bare, ok := strings.CutPrefix(domain, "."); ok {
		return host == bare || strings.HasSuffix(host, domain)
	}
	return false
}

func hostAndPath(rawURL string) (string, string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ""
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return u.Hostname(), path
}
