package request

import (
	"io"
	"log/slog"
)

// Options configures request assembly.
type Options struct {
	Proxy          ProxyPolicy
	ProxyURL       string
	DefaultHeaders DefaultHeadersFunc
	Context        ExecutionContext
	// Placeholder replaces missing security credentials.
	Placeholder string
	Logger      *slog.Logger
}

// DefaultOptions returns options for a standalone client without a proxy.
func DefaultOptions() *Options {
	return &Options{
		Proxy:          DefaultProxy{},
		DefaultHeaders: StandardDefaultHeaders,
		Context:        StaticContext(false),
		Placeholder:    EmptyTokenPlaceholder,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option modifies Options.
type Option func(*Options)

// WithProxy routes requests through proxyURL when policy agrees.
func WithProxy(proxyURL string, policy ProxyPolicy) Option {
	return func(o *Options) {
		o.ProxyURL = proxyURL
		if policy != nil {
			o.Proxy = policy
		}
	}
}

func WithDefaultHeaders(fn DefaultHeadersFunc) Option {
	return func(o *Options) {
		o.DefaultHeaders = fn
	}
}

func WithExecutionContext(ctx ExecutionContext) Option {
	return func(o *Options) {
		o.Context = ctx
	}
}

// WithPlaceholder sets the value sent for empty security credentials.
func WithPlaceholder(placeholder string) Option {
	return func(o *Options) {
		o.Placeholder = placeholder
	}
}

// WithLogger enables debug logging of assembly decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}
