package request

import (
	"context"
	"errors"
	"strings"

	"github.com/kolah/synth/model"
)

// DefaultExampleKey is used when no example key is given.
const DefaultExampleKey = "default"

// Input is the runtime context a request is assembled from.
type Input struct {
	Operation     *model.Operation
	Server        *model.Server
	ExampleKey    string
	Environment   model.Environment
	Security      []model.Ref[model.SecurityScheme]
	GlobalCookies []model.Cookie
}

// Assembly is a ready-to-send request. It is not modified after Assemble returns.
type Assembly struct {
	Method  string
	URL     string
	Headers *Headers
	Cookie  *CookieHeader
	Body    Body

	ctx    context.Context
	cancel context.CancelFunc
}

// Context is cancelled when Cancel is called. The transport uses it to abort the call.
func (a *Assembly) Context() context.Context {
	return a.ctx
}

func (a *Assembly) Cancel() {
	a.cancel()
}

// Assemble builds the request for in. It never panics: unexpected failures are returned
// as *AssemblyError wrapping ErrAssemblyFailed.
func Assemble(in Input, opts ...Option) (assembly *Assembly, err error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	stage := StageResolveInputs
	defer func() {
		if r := recover(); r != nil {
			assembly, err = nil, failed(stage, r)
		}
	}()

	op := in.Operation
	if op == nil {
		return nil, failed(stage, errors.New("operation is required"))
	}
	exampleKey := in.ExampleKey
	if exampleKey == "" {
		exampleKey = DefaultExampleKey
	}
	env := in.Environment.Flatten()
	method := model.Method(strings.ToUpper(string(op.Method)))

	stage = StageSerializeParameters
	params := SerializeParameters(op.Parameters, env, exampleKey)

	stage = StageApplySecurity
	security := ApplySecurity(in.Security, env, o.Placeholder)

	stage = StageMergeHeaders
	headers := NewHeaders()
	if o.DefaultHeaders != nil {
		for _, h := range o.DefaultHeaders(method, op, exampleKey) {
			if !h.Overridden {
				headers.Set(h.Name, h.Value)
			}
		}
	}
	headers.Merge(params.Headers)
	headers.Merge(security.Headers)

	stage = StageResolveBody
	var body Body
	if method.AllowsBody() {
		body = BuildBody(op.RequestBody, env, exampleKey)
	}
	if IsStructured(body) {
		headers.Delete("Content-Type")
	}

	stage = StageResolveURL
	query := params.Query.clone()
	query.Merge(security.Query)
	target, err := ResolveURL(URLInput{
		Server:        in.Server,
		Path:          op.Path,
		PathVariables: params.PathVariables,
		Env:           env,
		Query:         query,
	})
	if err != nil {
		return nil, &AssemblyError{Stage: stage, Err: err}
	}

	stage = StageProxy
	cookieURL := target
	embedded := o.Context != nil && o.Context.IsEmbeddedClient()
	proxied := o.Proxy != nil && o.Proxy.ShouldUseProxy(o.ProxyURL, target)
	if proxied {
		redirected := o.Proxy.RedirectToProxy(o.ProxyURL, target)
		o.Logger.Debug("routing request through proxy", "target", target, "proxy", redirected)
		target = redirected
	}
	if ua, ok := headers.Get("User-Agent"); ok && embedded {
		headers.Set("X-Scalar-User-Agent", ua)
	}

	stage = StageMergeCookies
	original, _ := headers.Get(CookieHeaderName)
	headers.Delete(CookieHeaderName)
	cookie := BuildCookieHeader(CookieInput{
		ParamCookies:          append(params.Cookies, security.Cookies...),
		GlobalCookies:         in.GlobalCookies,
		Env:                   env,
		OriginalCookieHeader:  original,
		URL:                   cookieURL,
		UseCustomCookieHeader: proxied || embedded,
		DisabledGlobalCookies: op.DisabledGlobalCookies[exampleKey],
	})
	if cookie != nil && cookie.Name == CookieHeaderName {
		o.Logger.Debug("cookie header may be dropped by browser-like transports", "url", target)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Assembly{
		Method:  string(method),
		URL:     target,
		Headers: headers,
		Cookie:  cookie,
		Body:    body,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}
