package check

import (
	"net/http"

	"github.com/pb33f/libopenapi"
	validator "github.com/pb33f/libopenapi-validator"
	validatorErrors "github.com/pb33f/libopenapi-validator/errors"

	"github.com/kolah/synth/model"
)

// Checker verifies synthesized requests against the OpenAPI document they came from.
type Checker struct {
	validator validator.Validator
	doc       *model.Document
	options   *Options
}

// New creates a checker from raw OpenAPI bytes and the document transformed from them.
func New(spec []byte, doc *model.Document, opts *Options) (*Checker, error) {
	parsed, err := libopenapi.NewDocument(spec)
	if err != nil {
		return nil, err
	}

	v, errs := validator.NewValidator(parsed)
	if len(errs) > 0 {
		return nil, errs[0]
	}

	if opts == nil {
		opts = DefaultOptions()
	}

	return &Checker{
		validator: v,
		doc:       doc,
		options:   opts,
	}, nil
}

// Check validates r, which was built for op. It returns a *ValidationError when the
// request does not conform to the document and a *CredentialError when no security
// requirement of op is satisfied.
func (c *Checker) Check(r *http.Request, op *model.Operation) error {
	if c.options.ValidateRequest {
		valid, errs := c.validator.ValidateHttpRequestSync(r)
		if !valid {
			return &ValidationError{
				Message: "request validation failed",
				Errors:  errs,
			}
		}
	}

	if c.options.ValidateSecurity && op != nil {
		return c.checkSecurity(r, op)
	}
	return nil
}

func (c *Checker) checkSecurity(r *http.Request, op *model.Operation) error {
	reqs := c.doc.EffectiveSecurity(op)
	if len(reqs) == 0 {
		return nil
	}

	var lastErr error

	// Each requirement is an OR alternative
	for _, req := range reqs {
		if len(req.Schemes) == 0 {
			return nil
		}

		// All schemes in one requirement must be present
		allPresent := true
		for _, s := range req.Schemes {
			scheme, ok := c.doc.FindSecurityScheme(s.Name)
			if !ok {
				lastErr = NewCredentialError(s.Name, "security scheme not declared")
				allPresent = false
				break
			}
			if err := credentialPresent(r, s.Name, scheme.Resolve()); err != nil {
				lastErr = err
				allPresent = false
				break
			}
		}

		if allPresent {
			return nil
		}
	}

	return lastErr
}

// Details flattens validator errors for display.
func Details(errs []*validatorErrors.ValidationError) []map[string]any {
	var result []map[string]any
	for _, e := range errs {
		item := map[string]any{
			"message": e.Message,
		}
		if e.Reason != "" {
			item["reason"] = e.Reason
		}
		if e.HowToFix != "" {
			item["howToFix"] = e.HowToFix
		}
		result = append(result, item)
	}
	return result
}
