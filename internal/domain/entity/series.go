package entity

import (
	"net/url"
	"time"

	"github.com/osa030/marvelgo/internal/app/filter"
)

// SeriesResource is the API resource name of series.
const SeriesResource = "series"

// Series is a sequentially numbered list of comics.
type Series struct {
	ID          int          `mapstructure:"id" json:"id"`
	Title       string       `mapstructure:"title" json:"title"`
	Description string       `mapstructure:"description" json:"description"`
	ResourceURI string       `mapstructure:"resourceURI" json:"resourceURI"`
	URLs        []URL        `mapstructure:"urls" json:"urls"`
	StartYear   int          `mapstructure:"startYear" json:"startYear"`
	EndYear     int          `mapstructure:"endYear" json:"endYear"`
	Rating      string       `mapstructure:"rating" json:"rating"`
	Type        string       `mapstructure:"type" json:"type"`
	Modified    time.Time    `mapstructure:"modified" json:"modified"`
	Thumbnail   Image        `mapstructure:"thumbnail" json:"thumbnail"`
	Comics      ResourceList `mapstructure:"comics" json:"comics"`
	Stories     ResourceList `mapstructure:"stories" json:"stories"`
	Events      ResourceList `mapstructure:"events" json:"events"`
	Characters  ResourceList `mapstructure:"characters" json:"characters"`
	Creators    ResourceList `mapstructure:"creators" json:"creators"`
	Next        Summary      `mapstructure:"next" json:"next"`
	Previous    Summary      `mapstructure:"previous" json:"previous"`
}

var seriesAttributes = attributes(
	filter.Field("id", filter.Use("int", true)),
	filter.Field("title", filter.Use("string", true, 0)),
	filter.Field("description", filter.Use("string", true, 0)),
	filter.Field("resourceURI", filter.Use("string", true, 0)),
	filter.Field("urls", filter.Use("_urls")).WithDefault([]URL{}),
	filter.Field("startYear", filter.Use("int", true)),
	filter.Field("endYear", filter.Use("int", true)),
	filter.Field("rating", filter.Use("string", true, 0)),
	filter.Field("type", filter.Use("string", true, 0)),
	filter.Field("modified", filter.Use("date", true)),
	filter.Field("thumbnail", filter.Use("image")).WithDefault(Image{}),
	filter.Field("comics", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("stories", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("events", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("characters", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("creators", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("next", nullableSummary()...).WithDefault(Summary{}),
	filter.Field("previous", nullableSummary()...).WithDefault(Summary{}),
)

var seriesCriteria = criteria(
	text("title"),
	text("titleStartsWith"),
	filter.Field("startYear", filter.Use("uint")),
	modifiedSince(),
	idList("comics"),
	idList("stories"),
	idList("events"),
	idList("creators"),
	idList("characters"),
	filter.Field("seriesType", oneOf("collection", "one shot", "limited", "ongoing")),
	filter.Field("contains", oneOf(ComicFormats...)),
	filter.Field("orderBy", oneOf(withDescending("title", "modified", "startYear")...)),
)

// nullableSummary hydrates a summary the API may send as null, such as the
// next and previous links of the last and first series or event.
func nullableSummary() []filter.Step {
	return []filter.Step{filter.Call(func(value any, _ ...any) (any, error) {
		if value == nil {
			return Summary{}, nil
		}
		return hydrate[Summary](KindSummary, value)
	})}
}

// SeriesFromMap hydrates a series from one raw API object.
func SeriesFromMap(raw map[string]any) (Series, error) {
	return hydrate[Series](KindSeries, raw)
}

// SeriesFromMaps hydrates series from raw API objects.
func SeriesFromMaps(raw []map[string]any) ([]Series, error) {
	return hydrateAll[Series](KindSeries, raw)
}

// BuildSeriesCriteria validates series search criteria.
func BuildSeriesCriteria(criteria map[string]any) (url.Values, error) {
	return buildCriteria(KindSeries, criteria, nil)
}
