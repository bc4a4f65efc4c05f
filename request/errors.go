package request

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyURL is returned when neither the server nor the path produce a URL.
	ErrEmptyURL = errors.New("request has no URL")
	// ErrAssemblyFailed wraps any unexpected failure while assembling a request.
	ErrAssemblyFailed = errors.New("request assembly failed")
)

// AssemblyError reports the pipeline stage an assembly failed in.
type AssemblyError struct {
	Stage Stage
	Err   error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}

// Stage names a step of the assembly pipeline.
type Stage string

const (
	StageResolveInputs       Stage = "resolve inputs"
	StageSerializeParameters Stage = "serialize parameters"
	StageApplySecurity       Stage = "apply security"
	StageMergeHeaders        Stage = "merge headers"
	StageResolveBody         Stage = "resolve body"
	StageResolveURL          Stage = "resolve url"
	StageProxy               Stage = "proxy routing"
	StageMergeCookies        Stage = "merge cookies"
)

func failed(stage Stage, cause any) *AssemblyError {
	if err, ok := cause.(error); ok {
		return &AssemblyError{Stage: stage, Err: fmt.Errorf("%w: %w", ErrAssemblyFailed, err)}
	}
	return &AssemblyError{Stage: stage, Err: fmt.Errorf("%w: %v", ErrAssemblyFailed, cause)}
}
