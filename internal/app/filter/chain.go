package filter

import (
	"github.com/cockroachdb/errors"
)

// boundStep is a step whose alias has been resolved.
type boundStep struct {
	fn   Func
	args []any
}

// boundSteps is a Step or []Step argument after compilation.
type boundSteps []boundStep

// chain executes the steps of one field in sequence.
type chain struct {
	name       string
	steps      []boundStep
	def        any
	hasDefault bool
	optional   bool
}

// run applies every step to value in order. It stops at the first failing
// step; later steps never see a rejected value.
func (c *chain) run(value any) (any, error) {
	for _, s := range c.steps {
		out, err := s.fn(value, s.args...)
		if err != nil {
			return nil, err
		}
		value = out
	}
	return value, nil
}

// Program is a compiled spec. It is immutable and safe for concurrent use.
type Program struct {
	chains []chain
}

func compile(spec Spec, registry *Registry) (*Program, error) {
	seen := make(map[string]struct{}, len(spec))
	p := &Program{chains: make([]chain, 0, len(spec))}

	for i, fs := range spec {
		if fs.Name == "" {
			return nil, invalidSpec("field %d has an empty name", i)
		}
		if _, dup := seen[fs.Name]; dup {
			return nil, invalidSpec("field %q is declared twice", fs.Name)
		}
		seen[fs.Name] = struct{}{}

		c := chain{
			name:       fs.Name,
			steps:      make([]boundStep, 0, len(fs.Steps)),
			def:        fs.Default,
			hasDefault: fs.HasDefault,
			optional:   fs.Optional,
		}
		for j, s := range fs.Steps {
			b, err := bindStep(s, registry)
			if err != nil {
				return nil, errors.Wrapf(err, "field %q step %d", fs.Name, j)
			}
			c.steps = append(c.steps, b)
		}
		p.chains = append(p.chains, c)
	}

	return p, nil
}

// bindStep resolves the alias of s and, recursively, any steps passed to it as
// arguments. An unknown alias or a bad argument anywhere fails the compile.
func bindStep(s Step, registry *Registry) (boundStep, error) {
	var fn Func
	switch {
	case s.Alias != "" && s.Func != nil:
		return boundStep{}, invalidSpec("step sets both an alias and a func")
	case s.Func != nil:
		fn = s.Func
	case s.Alias != "":
		var err error
		if fn, err = registry.Resolve(s.Alias); err != nil {
			return boundStep{}, err
		}
		if err := registry.checkArgs(s.Alias, s.Args); err != nil {
			return boundStep{}, err
		}
	default:
		return boundStep{}, invalidSpec("step has neither an alias nor a func")
	}

	args := make([]any, len(s.Args))
	for i, a := range s.Args {
		bound, err := bindArg(a, registry)
		if err != nil {
			return boundStep{}, errors.Wrapf(err, "arg %d", i)
		}
		args[i] = bound
	}
	return boundStep{fn: fn, args: args}, nil
}

// bindArg turns Step and []Step arguments into boundSteps. Other arguments
// are returned unchanged.
func bindArg(arg any, registry *Registry) (any, error) {
	var steps []Step
	switch v := arg.(type) {
	case Step:
		steps = []Step{v}
	case []Step:
		steps = v
	default:
		return arg, nil
	}
	out := make(boundSteps, 0, len(steps))
	for k, s := range steps {
		b, err := bindStep(s, registry)
		if err != nil {
			return nil, errors.Wrapf(err, "element step %d", k)
		}
		out = append(out, b)
	}
	return out, nil
}

// Apply evaluates every field of the program against input and collects all
// field errors before returning.
func (p *Program) Apply(input map[string]any) Result {
	output := make(map[string]any, len(p.chains))
	var errs []FieldError

	for i := range p.chains {
		c := &p.chains[i]
		value, present := input[c.name]
		if !present {
			if c.hasDefault {
				output[c.name] = c.def
				continue
			}
			if c.optional {
				continue
			}
			errs = append(errs, FieldError{Field: c.name, Message: "is required"})
			continue
		}

		out, err := c.run(value)
		if err != nil {
			errs = append(errs, FieldError{Field: c.name, Message: err.Error()})
			continue
		}
		output[c.name] = out
	}

	if len(errs) > 0 {
		return Result{errs: errs}
	}
	return Result{output: output}
}

// Fields returns the field names of the program in evaluation order.
func (p *Program) Fields() []string {
	names := make([]string, len(p.chains))
	for i, c := range p.chains {
		names[i] = c.name
	}
	return names
}
