package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kolah/synth/internal/check"
	"github.com/kolah/synth/internal/config"
	"github.com/kolah/synth/model"
	"github.com/kolah/synth/request"
)

func BuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [operation]",
		Short: "Build the HTTP request of an operation example",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBuild,
	}

	config.BindBuildFlags(cmd)

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	cfg := s.cfg
	if len(args) == 1 {
		cfg.Operation = args[0]
	}
	if cfg.Operation == "" {
		return fmt.Errorf("operation is required")
	}

	op, ok := s.doc.FindOperation(cfg.Operation)
	if !ok {
		return fmt.Errorf("operation not found: %s", cfg.Operation)
	}

	server, err := selectServer(s.doc.EffectiveServers(op), cfg)
	if err != nil {
		return err
	}

	security, err := selectSecurity(s.doc, op, cfg)
	if err != nil {
		return err
	}

	in := request.Input{
		Operation:     op,
		Server:        server,
		ExampleKey:    cfg.Example,
		Environment:   model.Environment(cfg.Environment),
		Security:      security,
		GlobalCookies: cfg.Cookies,
	}

	assembly, err := request.Assemble(in,
		request.WithProxy(cfg.Proxy, request.DefaultProxy{}),
		request.WithExecutionContext(request.StaticContext(cfg.Embedded)),
		request.WithPlaceholder(cfg.Placeholder),
		request.WithLogger(s.logger),
	)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	defer assembly.Cancel()

	s.logger.Debug("assembled request",
		"operation", op.Selector(),
		"example", cfg.Example,
		"fingerprint", assembly.Fingerprint(),
	)

	if cfg.Check {
		if err := checkRequest(s, in); err != nil {
			return err
		}
	}

	out, err := render(newRequestView(assembly), cfg.Output)
	if err != nil {
		return fmt.Errorf("rendering request: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// checkRequest validates the request as it would reach the target, without proxy or
// embedded client rewrites.
func checkRequest(s *session, in request.Input) error {
	direct, err := request.Assemble(in, request.WithPlaceholder(s.cfg.Placeholder))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	defer direct.Cancel()

	r, err := direct.HTTPRequest()
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	c, err := check.New(s.result.RawData, s.doc, nil)
	if err != nil {
		return fmt.Errorf("creating checker: %w", err)
	}

	err = c.Check(r, in.Operation)
	var verr *check.ValidationError
	if errors.As(err, &verr) {
		for _, d := range check.Details(verr.Errors) {
			s.logger.Error("validation error", "details", d)
		}
	}
	if err != nil {
		return fmt.Errorf("request does not conform: %w", err)
	}
	s.logger.Info("request conforms to document")
	return nil
}

// selectServer picks a server by index, takes a literal URL, or defaults to the first
// declared server. A nil server leaves the path relative.
func selectServer(servers []model.Server, cfg *config.Config) (*model.Server, error) {
	if i, ok := cfg.ServerIndex(); ok {
		if i >= len(servers) {
			return nil, fmt.Errorf("server index %d out of range (%d servers)", i, len(servers))
		}
		return &servers[i], nil
	}
	if cfg.Server != "" {
		return &model.Server{URL: cfg.Server}, nil
	}
	if len(servers) == 0 {
		return nil, nil
	}
	return &servers[0], nil
}

// selectSecurity resolves the configured scheme names, or the first security requirement
// of the operation, and applies credential overrides.
func selectSecurity(doc *model.Document, op *model.Operation, cfg *config.Config) ([]model.Ref[model.SecurityScheme], error) {
	names := cfg.Security
	if len(names) == 0 {
		if reqs := doc.EffectiveSecurity(op); len(reqs) > 0 {
			for _, s := range reqs[0].Schemes {
				names = append(names, s.Name)
			}
		}
	}

	var result []model.Ref[model.SecurityScheme]
	for _, name := range names {
		ref, ok := doc.FindSecurityScheme(name)
		if !ok {
			return nil, fmt.Errorf("security scheme not found: %s", name)
		}
		auth, ok := cfg.Auth[name]
		if !ok {
			result = append(result, ref)
			continue
		}
		scheme := withCredentials(ref.Resolve(), auth)
		if ref.IsReference() {
			result = append(result, model.Indirect(ref.Pointer(), scheme))
		} else {
			result = append(result, model.Direct(scheme))
		}
	}
	return result, nil
}

func withCredentials(scheme model.SecurityScheme, auth config.AuthConfig) model.SecurityScheme {
	switch s := scheme.(type) {
	case model.APIKeyScheme:
		s.Token = override(s.Token, auth.Token)
		return s
	case model.HTTPScheme:
		s.Token = override(s.Token, auth.Token)
		s.Username = override(s.Username, auth.Username)
		s.Password = override(s.Password, auth.Password)
		return s
	case model.OAuth2Scheme:
		flows := make([]model.OAuthFlow, len(s.Flows))
		for i, f := range s.Flows {
			if fc, ok := auth.Flows[f.Name]; ok {
				f.Token = override(f.Token, fc.Token)
			}
			flows[i] = f
		}
		s.Flows = flows
		return s
	case model.OpenIDConnectScheme:
		s.Token = override(s.Token, auth.Token)
		return s
	}
	return scheme
}

func override(current, configured string) string {
	if configured != "" {
		return configured
	}
	return current
}
