package filter

import (
	zlog "github.com/rs/zerolog/log"
)

// Result is the outcome of a filter run. It holds either the sanitized output
// or a non-empty list of field errors, never both.
type Result struct {
	output map[string]any
	errs   []FieldError
}

// OK reports whether every field passed.
func (r Result) OK() bool {
	return len(r.errs) == 0
}

// Output returns the sanitized values keyed by field name. It is nil when the
// run failed.
func (r Result) Output() map[string]any {
	return r.output
}

// Errors returns the field errors in evaluation order.
func (r Result) Errors() []FieldError {
	return r.errs
}

// Err returns a *ValidationError when the run failed, nil otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{Errors: r.errs}
}

// Filterer runs specs against one registry configuration.
type Filterer struct {
	registry *Registry
}

// New creates a filterer. A nil registry selects the built-in functions.
func New(registry *Registry) *Filterer {
	if registry == nil {
		registry = Builtins()
	}
	return &Filterer{registry: registry}
}

// Registry returns the registry the filterer resolves aliases against.
func (f *Filterer) Registry() *Registry {
	return f.registry
}

// Compile resolves every alias of spec. The returned error is a configuration
// error marked with ErrUnknownAlias or ErrInvalidSpec.
func (f *Filterer) Compile(spec Spec) (*Program, error) {
	return compile(spec, f.registry)
}

// MustCompile is like Compile but panics on a configuration error. It is meant
// for specs declared at package level.
func (f *Filterer) MustCompile(spec Spec) *Program {
	p, err := f.Compile(spec)
	if err != nil {
		panic(err)
	}
	return p
}

// Filter validates and transforms input according to spec. A non-nil error
// means the spec itself is broken and no field was evaluated; validation
// failures are reported through the Result.
func (f *Filterer) Filter(spec Spec, input map[string]any) (Result, error) {
	p, err := f.Compile(spec)
	if err != nil {
		return Result{}, err
	}

	res := p.Apply(input)
	if !res.OK() {
		zlog.Debug().Msgf("filter rejected %d of %d fields: %v", len(res.errs), len(spec), res.Err())
	}
	return res, nil
}
