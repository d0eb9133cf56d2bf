package entity

import (
	"net/url"
	"time"

	"github.com/osa030/marvelgo/internal/app/filter"
)

// EventResource is the API resource name of events.
const EventResource = "events"

// Event is a big storyline spanning many comics.
type Event struct {
	ID          int          `mapstructure:"id" json:"id"`
	Title       string       `mapstructure:"title" json:"title"`
	Description string       `mapstructure:"description" json:"description"`
	ResourceURI string       `mapstructure:"resourceURI" json:"resourceURI"`
	URLs        []URL        `mapstructure:"urls" json:"urls"`
	Modified    time.Time    `mapstructure:"modified" json:"modified"`
	Start       time.Time    `mapstructure:"start" json:"start"`
	End         time.Time    `mapstructure:"end" json:"end"`
	Thumbnail   Image        `mapstructure:"thumbnail" json:"thumbnail"`
	Comics      ResourceList `mapstructure:"comics" json:"comics"`
	Stories     ResourceList `mapstructure:"stories" json:"stories"`
	Series      ResourceList `mapstructure:"series" json:"series"`
	Characters  ResourceList `mapstructure:"characters" json:"characters"`
	Creators    ResourceList `mapstructure:"creators" json:"creators"`
	Next        Summary      `mapstructure:"next" json:"next"`
	Previous    Summary      `mapstructure:"previous" json:"previous"`
}

var eventAttributes = attributes(
	filter.Field("id", filter.Use("int", true)),
	filter.Field("title", filter.Use("string", true, 0)),
	filter.Field("description", filter.Use("string", true, 0)),
	filter.Field("resourceURI", filter.Use("string", true, 0)),
	filter.Field("urls", filter.Use("_urls")).WithDefault([]URL{}),
	filter.Field("modified", filter.Use("date", true)),
	filter.Field("start", filter.Use("date", true)),
	filter.Field("end", filter.Use("date", true)),
	filter.Field("thumbnail", filter.Use("image")).WithDefault(Image{}),
	filter.Field("comics", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("stories", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("series", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("characters", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("creators", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("next", nullableSummary()...).WithDefault(Summary{}),
	filter.Field("previous", nullableSummary()...).WithDefault(Summary{}),
)

var eventCriteria = criteria(
	text("name"),
	text("nameStartsWith"),
	modifiedSince(),
	idList("creators"),
	idList("characters"),
	idList("series"),
	idList("comics"),
	idList("stories"),
	filter.Field("orderBy", oneOf(withDescending("name", "startDate", "modified")...)),
)

// EventFromMap hydrates an event from one raw API object.
func EventFromMap(raw map[string]any) (Event, error) {
	return hydrate[Event](KindEvent, raw)
}

// EventsFromMaps hydrates events from raw API objects.
func EventsFromMaps(raw []map[string]any) ([]Event, error) {
	return hydrateAll[Event](KindEvent, raw)
}

// BuildEventCriteria validates event search criteria.
func BuildEventCriteria(criteria map[string]any) (url.Values, error) {
	return buildCriteria(KindEvent, criteria, nil)
}
