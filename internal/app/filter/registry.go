// Package filter provides the declarative filter engine used to validate
// search criteria and hydrate API payloads.
package filter

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// Func is a single filter step. It receives the current field value plus the
// step arguments declared in the spec and returns the transformed value.
type Func func(value any, args ...any) (any, error)

// argCheck validates the arguments of a step when its spec is compiled.
type argCheck func(args []any) error

// Registry maps aliases to filter functions. A Registry is never mutated after
// construction, so it can be shared between goroutines.
type Registry struct {
	funcs  map[string]Func
	checks map[string]argCheck
}

// NewRegistry creates a registry holding the given aliases.
func NewRegistry(funcs map[string]Func) *Registry {
	r := &Registry{funcs: make(map[string]Func, len(funcs))}
	for alias, fn := range funcs {
		r.set(alias, fn)
	}
	return r
}

// With returns a new registry containing the receiver's aliases overlaid with
// funcs. On a name collision the entry from funcs wins. The receiver keeps its
// own resolution. Argument checks follow their alias unless it is replaced.
func (r *Registry) With(funcs map[string]Func) *Registry {
	out := &Registry{
		funcs:  make(map[string]Func, len(r.funcs)+len(funcs)),
		checks: make(map[string]argCheck, len(r.checks)),
	}
	for alias, fn := range r.funcs {
		out.funcs[alias] = fn
	}
	for alias, check := range r.checks {
		if _, replaced := funcs[alias]; !replaced {
			out.checks[alias] = check
		}
	}
	for alias, fn := range funcs {
		out.set(alias, fn)
	}
	return out
}

// Resolve returns the function registered under alias.
func (r *Registry) Resolve(alias string) (Func, error) {
	fn, ok := r.funcs[alias]
	if !ok {
		return nil, errors.Mark(errors.Newf("%q is not registered", alias), ErrUnknownAlias)
	}
	return fn, nil
}

func (r *Registry) checkArgs(alias string, args []any) error {
	check, ok := r.checks[alias]
	if !ok {
		return nil
	}
	return check(args)
}

// Has reports whether alias is registered.
func (r *Registry) Has(alias string) bool {
	_, ok := r.funcs[alias]
	return ok
}

// Aliases returns all registered aliases, sorted.
func (r *Registry) Aliases() []string {
	aliases := make([]string, 0, len(r.funcs))
	for alias := range r.funcs {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

func (r *Registry) set(alias string, fn Func) {
	if alias == "" {
		panic("filter: empty alias")
	}
	if fn == nil {
		panic("filter: nil func for alias " + alias)
	}
	r.funcs[alias] = fn
}
