package entity

import (
	"net/url"

	"github.com/spf13/cast"

	"github.com/osa030/marvelgo/internal/app/filter"
)

var criteriaSpecs = map[Kind]filter.Spec{
	KindComic:     comicCriteria,
	KindCharacter: characterCriteria,
	KindSeries:    seriesCriteria,
	KindEvent:     eventCriteria,
	KindStory:     storyCriteria,
	KindCreator:   creatorCriteria,
}

var criteriaPrograms = make(map[Kind]*filter.Program)

// CriteriaSpec returns the criteria spec of a searchable kind.
func CriteriaSpec(kind Kind) (filter.Spec, bool) {
	spec, ok := criteriaSpecs[kind]
	return spec, ok
}

// BuildCriteria validates search criteria for kind and returns the query
// parameters to send. Absent criteria are not sent.
func BuildCriteria(kind Kind, criteria map[string]any) (url.Values, error) {
	switch kind {
	case KindComic:
		return BuildComicCriteria(criteria)
	default:
		return buildCriteria(kind, criteria, nil)
	}
}

// postProcess combines or renames sanitized criteria. It runs only after
// every field passed.
type postProcess func(out map[string]any) []filter.FieldError

func buildCriteria(kind Kind, criteria map[string]any, post postProcess) (url.Values, error) {
	program, ok := criteriaPrograms[kind]
	if !ok {
		return nil, &CriteriaError{Kind: kind, Errors: []filter.FieldError{{Message: "kind is not searchable"}}}
	}

	res := program.Apply(criteria)
	if !res.OK() {
		return nil, &CriteriaError{Kind: kind, Errors: res.Errors()}
	}

	out := res.Output()
	if post != nil {
		if errs := post(out); len(errs) > 0 {
			return nil, &CriteriaError{Kind: kind, Errors: errs}
		}
	}

	query := url.Values{}
	for key, value := range out {
		if value == nil {
			continue
		}
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, &CriteriaError{Kind: kind, Errors: []filter.FieldError{{Field: key, Message: err.Error()}}}
		}
		query.Set(key, s)
	}
	return query, nil
}

// criteria marks every field as optional: a search parameter the caller did
// not give is simply not sent.
func criteria(fields ...filter.FieldSpec) filter.Spec {
	spec := make(filter.Spec, len(fields))
	for i, f := range fields {
		spec[i] = f.AsOptional()
	}
	return spec
}

func oneOf(values ...string) filter.Step {
	return filter.Use("in", values)
}

// idList accepts a list of unsigned ids and joins them with commas.
func idList(name string) filter.FieldSpec {
	return filter.Field(name,
		filter.Use("ofScalars", []filter.Step{filter.Use("uint")}),
		filter.Use("implode", ","),
	)
}

func text(name string) filter.FieldSpec {
	return filter.Field(name, filter.Use("string"))
}

func modifiedSince() filter.FieldSpec {
	return filter.Field("modifiedSince", filter.Use("date", true), filter.Use("formatDate"))
}

func withDescending(values ...string) []string {
	out := make([]string, 0, len(values)*2)
	out = append(out, values...)
	for _, v := range values {
		out = append(out, "-"+v)
	}
	return out
}
