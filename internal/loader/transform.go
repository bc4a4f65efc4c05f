package loader

import (
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
	"github.com/pb33f/libopenapi/orderedmap"
	"go.yaml.in/yaml/v4"

	"github.com/kolah/synth/model"
)

const (
	extDisabled            = "x-disabled"
	extSelectedContentType = "x-scalar-selected-content-type"
	extDisableParameters   = "x-scalar-disable-parameters"
	extSecretToken         = "x-scalar-secret-token"
	extSecretUsername      = "x-scalar-secret-username"
	extSecretPassword      = "x-scalar-secret-password"

	defaultExampleKey = "default"
)

type transformer struct {
	refs     *refIndex
	basePath string
	warnings []string
}

// Transform converts the loaded OpenAPI model into the document the request engine
// works on.
func Transform(result *Result) (*model.Document, error) {
	doc := result.Document.Model

	t := &transformer{
		refs:     buildRefIndex(result.RawData),
		basePath: result.BasePath,
	}

	out := &model.Document{
		Info:     transformInfo(doc.Info),
		Servers:  transformServers(doc.Servers),
		Security: transformSecurity(doc.Security),
	}

	if doc.Paths != nil && doc.Paths.PathItems != nil {
		for pathStr, pathItem := range doc.Paths.PathItems.FromOldest() {
			out.Operations = append(out.Operations, t.transformPath(pathStr, pathItem)...)
		}
	}

	if doc.Components != nil && doc.Components.SecuritySchemes != nil {
		for name, scheme := range doc.Components.SecuritySchemes.FromOldest() {
			pointer := "#/components/securitySchemes/" + escapePointer(name)
			s, ok := transformSecurityScheme(scheme, t.refs.mappingKeys(pointer, "flows"))
			if !ok {
				t.warnings = append(t.warnings, "skipping security scheme "+name+" of unknown type "+scheme.Type)
				continue
			}
			out.SecuritySchemes = append(out.SecuritySchemes, model.NamedSecurityScheme{
				Name:   name,
				Scheme: model.Indirect(pointer, s),
			})
		}
	}

	result.Warnings = append(result.Warnings, t.warnings...)
	return out, nil
}

func transformInfo(info *base.Info) model.Info {
	if info == nil {
		return model.Info{}
	}
	return model.Info{
		Title:       info.Title,
		Description: info.Description,
		Version:     info.Version,
	}
}

func transformServers(servers []*v3.Server) []model.Server {
	var result []model.Server
	for _, s := range servers {
		server := model.Server{
			URL:         s.URL,
			Description: s.Description,
		}
		if s.Variables != nil {
			for name, v := range s.Variables.FromOldest() {
				server.Variables = append(server.Variables, model.ServerVariable{
					Name:        name,
					Default:     v.Default,
					Enum:        v.Enum,
					Description: v.Description,
				})
			}
		}
		result = append(result, server)
	}
	return result
}

func transformSecurity(reqs []*base.SecurityRequirement) []model.SecurityRequirement {
	if reqs == nil {
		return nil
	}
	result := make([]model.SecurityRequirement, 0, len(reqs))
	for _, req := range reqs {
		var r model.SecurityRequirement
		if req.Requirements != nil {
			for name, scopes := range req.Requirements.FromOldest() {
				r.Schemes = append(r.Schemes, model.SchemeScopes{Name: name, Scopes: scopes})
			}
		}
		result = append(result, r)
	}
	return result
}

func (t *transformer) transformPath(pathStr string, pathItem *v3.PathItem) []*model.Operation {
	var ops []*model.Operation

	// Use a slice for deterministic ordering
	methods := []struct {
		method model.Method
		op     *v3.Operation
	}{
		{model.MethodGet, pathItem.Get},
		{model.MethodPost, pathItem.Post},
		{model.MethodPut, pathItem.Put},
		{model.MethodDelete, pathItem.Delete},
		{model.MethodPatch, pathItem.Patch},
		{model.MethodHead, pathItem.Head},
		{model.MethodOptions, pathItem.Options},
		{model.MethodTrace, pathItem.Trace},
		{model.MethodQuery, pathItem.Query}, // OpenAPI 3.2
	}

	for _, m := range methods {
		if m.op == nil {
			continue
		}
		ops = append(ops, t.transformOperation(m.method, pathStr, pathItem, m.op))
	}
	return ops
}

func (t *transformer) transformOperation(method model.Method, path string, item *v3.PathItem, op *v3.Operation) *model.Operation {
	operation := &model.Operation{
		ID:          op.OperationId,
		Method:      method,
		Path:        path,
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        op.Tags,
		Deprecated:  boolPtr(op.Deprecated),
		Security:    transformSecurity(op.Security),
	}

	for _, p := range mergeParameters(item.Parameters, op.Parameters) {
		operation.Parameters = append(operation.Parameters, t.transformParameter(method, path, p))
	}

	if op.RequestBody != nil {
		operation.RequestBody = t.transformRequestBody(method, path, op.RequestBody)
	}

	servers := op.Servers
	if len(servers) == 0 {
		servers = item.Servers
	}
	operation.Servers = transformServers(servers)

	if node := lookupExtension(op.Extensions, extDisableParameters); node != nil {
		operation.DisabledDefaultHeaders = parseFlagMatrix(mappingValue(node, "default-headers"))
		operation.DisabledGlobalCookies = parseFlagMatrix(mappingValue(node, "global-cookies"))
	}

	return operation
}

// mergeParameters applies operation parameters over path-level ones with the same
// name and location. Repeated declarations within one level are kept.
func mergeParameters(shared, own []*v3.Parameter) []*v3.Parameter {
	if len(shared) == 0 {
		return own
	}
	overridden := func(p *v3.Parameter) bool {
		for _, o := range own {
			if o.Name == p.Name && strings.EqualFold(o.In, p.In) {
				return true
			}
		}
		return false
	}
	var result []*v3.Parameter
	for _, p := range shared {
		if !overridden(p) {
			result = append(result, p)
		}
	}
	return append(result, own...)
}

func (t *transformer) transformParameter(method model.Method, path string, p *v3.Parameter) model.Parameter {
	in := strings.ToLower(p.In)
	param := model.Parameter{
		Name:        p.Name,
		In:          model.Location(in),
		Description: p.Description,
		Required:    boolPtr(p.Required),
		Deprecated:  p.Deprecated,
		Style:       model.Style(p.Style),
		Explode:     p.Explode,
	}

	key := func(exampleKey string) string {
		return paramExampleKey(string(method), path, in, p.Name, exampleKey)
	}

	if p.Content != nil && p.Content.Len() > 0 {
		for contentType, mt := range p.Content.FromOldest() {
			param.Content = append(param.Content, model.MediaType{
				Type:     contentType,
				Examples: t.transformExamples(mt.Examples, mt.Example, key, contentType),
			})
		}
		return param
	}

	param.Examples = t.transformExamples(p.Examples, p.Example, key, "")
	return param
}

func (t *transformer) transformRequestBody(method model.Method, path string, rb *v3.RequestBody) *model.RequestBody {
	body := &model.RequestBody{
		Description: rb.Description,
		Required:    boolPtr(rb.Required),
	}

	if rb.Content != nil {
		for contentType, mt := range rb.Content.FromOldest() {
			key := func(exampleKey string) string {
				return bodyExampleKey(string(method), path, contentType, exampleKey)
			}
			body.Content = append(body.Content, model.MediaType{
				Type:     contentType,
				Examples: t.transformExamples(mt.Examples, mt.Example, key, contentType),
			})
		}
	}

	if node := lookupExtension(rb.Extensions, extSelectedContentType); node != nil && node.Kind == yaml.MappingNode {
		body.SelectedContentType = make(map[string]string)
		for i := 0; i+1 < len(node.Content); i += 2 {
			body.SelectedContentType[node.Content[i].Value] = node.Content[i+1].Value
		}
	}

	return body
}

// transformExamples converts named examples in declaration order. A lone example value
// becomes the default example unless a named one already uses that key.
func (t *transformer) transformExamples(examples *orderedmap.Map[string, *base.Example], single *yaml.Node, key func(string) string, contentType string) model.Examples {
	var result model.Examples
	if examples != nil {
		for name, ex := range examples.FromOldest() {
			if ex == nil {
				continue
			}
			example := model.Example{
				Summary:  ex.Summary,
				Value:    t.exampleValue(ex.Value, contentType),
				Disabled: parseBoolExtension(ex.Extensions, extDisabled),
			}
			ref := model.Direct(example)
			if pointer := t.refs.pointer(key(name)); pointer != "" {
				ref = model.Indirect(pointer, example)
			}
			result = append(result, model.NamedExample{Key: name, Example: ref})
		}
	}
	if single != nil {
		if _, exists := result.Get(defaultExampleKey); !exists {
			result = append(result, model.NamedExample{
				Key:     defaultExampleKey,
				Example: model.Direct(model.Example{Value: t.exampleValue(single, contentType)}),
			})
		}
	}
	return result
}

// exampleValue converts an example node. Form bodies written as {name, value} lists
// become form entries; an entry with a file key is loaded from disk relative to the
// document.
func (t *transformer) exampleValue(node *yaml.Node, contentType string) model.Value {
	value := model.FromNode(node)
	if !isFormMediaType(contentType) || value.Kind() != model.KindList {
		return value
	}
	form, ok := model.AsForm(value)
	if !ok {
		return value
	}

	entries := form.FormEntries()
	for i, item := range value.Items() {
		file, ok := item.Get("file")
		if !ok || file.Kind() != model.KindString {
			continue
		}
		f, err := t.readFile(file.Text())
		if err != nil {
			t.warnings = append(t.warnings, "reading form file "+file.Text()+": "+err.Error())
			continue
		}
		if mt, ok := item.Get("mimeType"); ok && mt.Kind() == model.KindString {
			f.MimeType = mt.Text()
		}
		entries[i].Value = model.FileValue(f)
	}
	return model.Form(entries...)
}

func (t *transformer) readFile(name string) (model.File, error) {
	path := name
	if !filepath.IsAbs(path) && t.basePath != "" {
		path = filepath.Join(t.basePath, path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return model.File{}, err
	}
	return model.File{
		Name:     filepath.Base(name),
		Content:  content,
		MimeType: mime.TypeByExtension(filepath.Ext(name)),
	}, nil
}

func isFormMediaType(contentType string) bool {
	mt, _, _ := strings.Cut(strings.ToLower(contentType), ";")
	mt = strings.TrimSpace(mt)
	return mt == "multipart/form-data" || mt == "application/x-www-form-urlencoded"
}

// transformSecurityScheme converts scheme. OAuth2 flows follow flowOrder, the flow keys
// as declared in the document; flows missing from it keep their position after those.
func transformSecurityScheme(scheme *v3.SecurityScheme, flowOrder []string) (model.SecurityScheme, bool) {
	token := parseStringExtension(scheme.Extensions, extSecretToken)

	switch scheme.Type {
	case "apiKey":
		return model.APIKeyScheme{
			Name:  scheme.Name,
			In:    model.Location(strings.ToLower(scheme.In)),
			Token: token,
		}, true
	case "http":
		return model.HTTPScheme{
			Scheme:       strings.ToLower(scheme.Scheme),
			BearerFormat: scheme.BearerFormat,
			Username:     parseStringExtension(scheme.Extensions, extSecretUsername),
			Password:     parseStringExtension(scheme.Extensions, extSecretPassword),
			Token:        token,
		}, true
	case "oauth2":
		s := model.OAuth2Scheme{}
		if scheme.Flows != nil {
			flows := []struct {
				name string
				flow *v3.OAuthFlow
			}{
				{"implicit", scheme.Flows.Implicit},
				{"password", scheme.Flows.Password},
				{"clientCredentials", scheme.Flows.ClientCredentials},
				{"authorizationCode", scheme.Flows.AuthorizationCode},
			}
			for _, f := range flows {
				if f.flow != nil {
					s.Flows = append(s.Flows, transformOAuthFlow(f.name, f.flow))
				}
			}
			slices.SortStableFunc(s.Flows, func(a, b model.OAuthFlow) int {
				return flowRank(flowOrder, a.Name) - flowRank(flowOrder, b.Name)
			})
		}
		return s, true
	case "openIdConnect":
		return model.OpenIDConnectScheme{URL: scheme.OpenIdConnectUrl, Token: token}, true
	}
	return nil, false
}

func flowRank(order []string, name string) int {
	if i := slices.Index(order, name); i >= 0 {
		return i
	}
	return len(order)
}

func transformOAuthFlow(name string, flow *v3.OAuthFlow) model.OAuthFlow {
	f := model.OAuthFlow{
		Name:             name,
		AuthorizationURL: flow.AuthorizationUrl,
		TokenURL:         flow.TokenUrl,
		Token:            parseStringExtension(flow.Extensions, extSecretToken),
	}

	if flow.Scopes != nil {
		for scope := range flow.Scopes.FromOldest() {
			f.Scopes = append(f.Scopes, scope)
		}
	}

	return f
}

func lookupExtension(extensions *orderedmap.Map[string, *yaml.Node], key string) *yaml.Node {
	if extensions == nil {
		return nil
	}
	for pair := extensions.First(); pair != nil; pair = pair.Next() {
		if pair.Key() == key {
			return pair.Value()
		}
	}
	return nil
}

func parseBoolExtension(extensions *orderedmap.Map[string, *yaml.Node], key string) *bool {
	node := lookupExtension(extensions, key)
	if node == nil || node.Kind != yaml.ScalarNode {
		return nil
	}
	v := node.Value == "true"
	return &v
}

func parseStringExtension(extensions *orderedmap.Map[string, *yaml.Node], key string) string {
	node := lookupExtension(extensions, key)
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

// parseFlagMatrix reads {exampleKey: {name: bool}}.
func parseFlagMatrix(node *yaml.Node) map[string]map[string]bool {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	result := make(map[string]map[string]bool)
	for i := 0; i+1 < len(node.Content); i += 2 {
		flags := node.Content[i+1]
		if flags.Kind != yaml.MappingNode {
			continue
		}
		m := make(map[string]bool)
		for j := 0; j+1 < len(flags.Content); j += 2 {
			m[flags.Content[j].Value] = flags.Content[j+1].Value == "true"
		}
		result[node.Content[i].Value] = m
	}
	return result
}

func escapePointer(token string) string {
	return strings.ReplaceAll(strings.ReplaceAll(token, "~", "~0"), "/", "~1")
}

func boolPtr(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
