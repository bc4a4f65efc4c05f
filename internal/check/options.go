package check

// Options configures what a Checker verifies.
type Options struct {
	ValidateRequest  bool
	ValidateSecurity bool
}

// DefaultOptions enables every check.
func DefaultOptions() *Options {
	return &Options{
		ValidateRequest:  true,
		ValidateSecurity: true,
	}
}
