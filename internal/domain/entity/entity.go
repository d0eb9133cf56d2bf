// Package entity provides the read-only records of the Marvel API and the
// filter specs used to hydrate them and to validate search criteria.
package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"

	"github.com/osa030/marvelgo/internal/app/filter"
)

// ISO8601 is the layout used when dates are sent back to the API.
const ISO8601 = "2006-01-02T15:04:05-07:00"

// Kind tags every record type the API returns.
type Kind string

const (
	KindComic         Kind = "comic"
	KindCharacter     Kind = "character"
	KindSeries        Kind = "series"
	KindEvent         Kind = "event"
	KindStory         Kind = "story"
	KindCreator       Kind = "creator"
	KindSummary       Kind = "summary"
	KindImage         Kind = "image"
	KindPrice         Kind = "price"
	KindDate          Kind = "date"
	KindURL           Kind = "url"
	KindTextObject    Kind = "text object"
	KindResourceList  Kind = "resource list"
	KindDataContainer Kind = "data container"
	KindDataWrapper   Kind = "data wrapper"
)

var (
	ErrHydration       = errors.New("hydration failed")
	ErrInvalidCriteria = errors.New("invalid search criteria")
)

// HydrationError reports raw API data that does not match an attribute spec.
type HydrationError struct {
	Kind   Kind
	Errors []filter.FieldError
}

func (e *HydrationError) Error() string {
	return fmt.Sprintf("invalid %s data: %s", e.Kind, joinFieldErrors(e.Errors))
}

// Is makes errors.Is(err, ErrHydration) match.
func (e *HydrationError) Is(target error) bool {
	return target == ErrHydration
}

// CriteriaError reports search criteria rejected by a criteria spec.
type CriteriaError struct {
	Kind   Kind
	Errors []filter.FieldError
}

func (e *CriteriaError) Error() string {
	return fmt.Sprintf("invalid %s criteria: %s", e.Kind, joinFieldErrors(e.Errors))
}

// Is makes errors.Is(err, ErrInvalidCriteria) match.
func (e *CriteriaError) Is(target error) bool {
	return target == ErrInvalidCriteria
}

func joinFieldErrors(errs []filter.FieldError) string {
	msgs := make([]string, len(errs))
	for i, fe := range errs {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// kindDef binds a kind to its aliases, attribute spec and hydration functions.
type kindDef struct {
	kind       Kind
	singular   string
	plural     string
	attributes filter.Spec
	one        filter.Func
	many       filter.Func
}

func define[T any](kind Kind, singular, plural string, attributes filter.Spec) kindDef {
	return kindDef{
		kind:       kind,
		singular:   singular,
		plural:     plural,
		attributes: attributes,
		one: func(value any, _ ...any) (any, error) {
			return hydrate[T](kind, value)
		},
		many: func(value any, _ ...any) (any, error) {
			return hydrateAll[T](kind, value)
		},
	}
}

var kinds = []kindDef{
	define[Summary](KindSummary, "summary", "summaries", summaryAttributes),
	define[Image](KindImage, "image", "images", imageAttributes),
	define[Price](KindPrice, "price", "prices", priceAttributes),
	define[Date](KindDate, "_date", "_dates", dateAttributes),
	define[URL](KindURL, "_url", "_urls", urlAttributes),
	define[TextObject](KindTextObject, "text-object", "text-objects", textObjectAttributes),
	define[ResourceList](KindResourceList, "resource-list", "", resourceListAttributes),
	define[Comic](KindComic, "comic", "comics", comicAttributes),
	define[Character](KindCharacter, "character", "characters", characterAttributes),
	define[Series](KindSeries, "", "series", seriesAttributes),
	define[Event](KindEvent, "event", "events", eventAttributes),
	define[Story](KindStory, "story", "stories", storyAttributes),
	define[Creator](KindCreator, "creator", "creators", creatorAttributes),
	define[DataContainer](KindDataContainer, "data-container", "", dataContainerAttributes),
	define[DataWrapper](KindDataWrapper, "", "", dataWrapperAttributes),
}

var (
	registry *filter.Registry
	filterer *filter.Filterer
	programs = make(map[Kind]*filter.Program)
)

func init() {
	aliases := map[string]filter.Func{
		"boolToString": boolToString,
		"formatDate":   formatDate,
	}
	for _, k := range kinds {
		if k.singular != "" {
			aliases[k.singular] = k.one
		}
		if k.plural != "" {
			aliases[k.plural] = k.many
		}
	}

	registry = filter.Builtins().With(aliases)
	filterer = filter.New(registry)

	for _, k := range kinds {
		programs[k.kind] = filterer.MustCompile(k.attributes)
	}
	for kind, spec := range criteriaSpecs {
		criteriaPrograms[kind] = filterer.MustCompile(spec)
	}
}

// Registry returns the built-in filters merged with the entity aliases.
func Registry() *filter.Registry {
	return registry
}

// Filterer returns a filterer bound to Registry.
func Filterer() *filter.Filterer {
	return filterer
}

// AttributeSpec returns the attribute spec of kind.
func AttributeSpec(kind Kind) (filter.Spec, bool) {
	for _, k := range kinds {
		if k.kind == kind {
			return k.attributes, true
		}
	}
	return nil, false
}

// hydrate builds one record from a raw decoded object. A value that already is
// a T is returned unchanged.
func hydrate[T any](kind Kind, raw any) (T, error) {
	var out T
	if v, ok := raw.(T); ok {
		return v, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return out, &HydrationError{
			Kind:   kind,
			Errors: []filter.FieldError{{Message: fmt.Sprintf("expected an object, got %T", raw)}},
		}
	}

	res := programs[kind].Apply(m)
	if !res.OK() {
		return out, &HydrationError{Kind: kind, Errors: res.Errors()}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &out,
		TagName:     "mapstructure",
		ErrorUnused: true,
		ErrorUnset:  true,
	})
	if err != nil {
		return out, errors.Wrap(err, "failed to create decoder")
	}
	if err := decoder.Decode(res.Output()); err != nil {
		return out, errors.Wrapf(err, "failed to decode %s", kind)
	}
	return out, nil
}

// hydrateAll builds a record for every element of raw. All elements are
// hydrated and every failure is reported, prefixed with its index.
func hydrateAll[T any](kind Kind, raw any) ([]T, error) {
	if v, ok := raw.([]T); ok {
		return v, nil
	}
	list, ok := filter.AsList(raw)
	if !ok {
		return nil, &HydrationError{
			Kind:   kind,
			Errors: []filter.FieldError{{Message: fmt.Sprintf("expected a list, got %T", raw)}},
		}
	}

	out := make([]T, 0, len(list))
	var errs []filter.FieldError
	for i, item := range list {
		v, err := hydrate[T](kind, item)
		if err != nil {
			var he *HydrationError
			if !errors.As(err, &he) {
				return nil, err
			}
			for _, fe := range he.Errors {
				field := fmt.Sprintf("[%d]", i)
				if fe.Field != "" {
					field += "." + fe.Field
				}
				errs = append(errs, filter.FieldError{Field: field, Message: fe.Message})
			}
			continue
		}
		out = append(out, v)
	}
	if len(errs) > 0 {
		return nil, &HydrationError{Kind: kind, Errors: errs}
	}
	return out, nil
}

// boolToString renders a bool the way the API expects it in a query.
func boolToString(value any, _ ...any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, filter.Failf("value %v is not a boolean", value)
	}
	if b {
		return "true", nil
	}
	return "false", nil
}

// formatDate formats a time with the layout given as first argument, ISO8601
// by default. A nil value stays nil.
func formatDate(value any, args ...any) (any, error) {
	if value == nil {
		return nil, nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return nil, filter.Failf("value %v is not a date", value)
	}
	layout := ISO8601
	if len(args) > 0 {
		if s, ok := args[0].(string); ok && s != "" {
			layout = s
		}
	}
	return t.Format(layout), nil
}
