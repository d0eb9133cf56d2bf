package entity

import "github.com/osa030/marvelgo/internal/app/filter"

// DataContainer is one page of search results. Results holds the raw
// objects; they are hydrated by the caller that knows their kind.
type DataContainer struct {
	Offset  int   `mapstructure:"offset" json:"offset"`
	Limit   int   `mapstructure:"limit" json:"limit"`
	Total   int   `mapstructure:"total" json:"total"`
	Count   int   `mapstructure:"count" json:"count"`
	Results []any `mapstructure:"results" json:"results"`
}

var dataContainerAttributes = attributes(
	filter.Field("offset", filter.Use("int", true, 0)),
	filter.Field("limit", filter.Use("int", true, 0)),
	filter.Field("total", filter.Use("int", true, 0)),
	filter.Field("count", filter.Use("int", true, 0)),
	filter.Field("results", filter.Use("array")).WithDefault([]any{}),
)

// DataWrapper is the envelope of every API response.
type DataWrapper struct {
	Code            int           `mapstructure:"code" json:"code"`
	Status          string        `mapstructure:"status" json:"status"`
	Copyright       string        `mapstructure:"copyright" json:"copyright"`
	AttributionText string        `mapstructure:"attributionText" json:"attributionText"`
	AttributionHTML string        `mapstructure:"attributionHTML" json:"attributionHTML"`
	Etag            string        `mapstructure:"etag" json:"etag"`
	Data            DataContainer `mapstructure:"data" json:"data"`
}

var dataWrapperAttributes = attributes(
	filter.Field("code", filter.Use("int", true)),
	filter.Field("status", filter.Use("string", true, 0)),
	filter.Field("copyright", filter.Use("string", true, 0)),
	filter.Field("attributionText", filter.Use("string", true, 0)),
	filter.Field("attributionHTML", filter.Use("string", true, 0)),
	filter.Field("etag", filter.Use("string", true, 0)),
	filter.Field("data", filter.Use("data-container")).WithDefault(DataContainer{}),
)

// Maps returns the results that are objects. Anything else is skipped.
func (c DataContainer) Maps() []map[string]any {
	out := make([]map[string]any, 0, len(c.Results))
	for _, r := range c.Results {
		if m, ok := r.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// DataWrapperFromMap hydrates the envelope of a decoded API response.
func DataWrapperFromMap(raw map[string]any) (DataWrapper, error) {
	return hydrate[DataWrapper](KindDataWrapper, raw)
}
