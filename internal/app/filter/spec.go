package filter

// Step is one transformation applied to a field value. Exactly one of Alias
// and Func is set.
type Step struct {
	Alias string
	Func  Func
	Args  []any
}

// Use returns a step resolved by alias at compile time.
func Use(alias string, args ...any) Step {
	return Step{Alias: alias, Args: args}
}

// Call returns a step that invokes fn directly.
func Call(fn Func, args ...any) Step {
	return Step{Func: fn, Args: args}
}

// FieldSpec describes how one input field is validated and transformed.
type FieldSpec struct {
	Name       string
	Steps      []Step
	Default    any
	HasDefault bool
	Optional   bool
}

// Field declares a field with the given steps and no default, which makes the
// field required.
func Field(name string, steps ...Step) FieldSpec {
	return FieldSpec{Name: name, Steps: steps}
}

// WithDefault returns a copy of the field that yields v when the field is
// absent from the input. Steps are not run on the default.
func (f FieldSpec) WithDefault(v any) FieldSpec {
	f.Default = v
	f.HasDefault = true
	return f
}

// AsOptional returns a copy of the field that is left out of the output when
// absent from the input, instead of failing as required.
func (f FieldSpec) AsOptional() FieldSpec {
	f.Optional = true
	return f
}

// Spec is an ordered list of field specs. Fields are evaluated in declaration
// order and input keys not named here are dropped.
type Spec []FieldSpec

// Names returns the declared field names in order.
func (s Spec) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}
