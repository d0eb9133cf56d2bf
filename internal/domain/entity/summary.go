package entity

import "github.com/osa030/marvelgo/internal/app/filter"

// Summary is a short reference to another resource.
type Summary struct {
	ResourceURI string `mapstructure:"resourceURI" json:"resourceURI"`
	Name        string `mapstructure:"name" json:"name"`
	Type        string `mapstructure:"type" json:"type,omitempty"`
	Role        string `mapstructure:"role" json:"role,omitempty"`
}

var summaryAttributes = attributes(
	filter.Field("resourceURI", filter.Use("string", true, 0)),
	filter.Field("name", filter.Use("string", true, 0)),
	filter.Field("type", filter.Use("string", true, 0)),
	filter.Field("role", filter.Use("string", true, 0)),
)

// ResourceList is a page of summaries embedded in another resource.
type ResourceList struct {
	Available     int       `mapstructure:"available" json:"available"`
	Returned      int       `mapstructure:"returned" json:"returned"`
	CollectionURI string    `mapstructure:"collectionURI" json:"collectionURI"`
	Items         []Summary `mapstructure:"items" json:"items"`
}

var resourceListAttributes = attributes(
	filter.Field("available", filter.Use("int", true)),
	filter.Field("returned", filter.Use("int", true)),
	filter.Field("collectionURI", filter.Use("string", true, 0)),
	filter.Field("items", filter.Use("summaries")).WithDefault([]Summary{}),
)

// Complete reports whether every available item was returned.
func (r ResourceList) Complete() bool {
	return r.Returned >= r.Available
}

// attributes marks every field without a default as optional. Attribute specs
// hydrate partially populated API payloads, so an absent field takes the zero
// value of its record field.
func attributes(fields ...filter.FieldSpec) filter.Spec {
	spec := make(filter.Spec, len(fields))
	for i, f := range fields {
		if !f.HasDefault {
			f = f.WithDefault(nil)
		}
		spec[i] = f
	}
	return spec
}
