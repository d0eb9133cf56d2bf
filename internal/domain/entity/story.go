package entity

import (
	"net/url"
	"time"

	"github.com/osa030/marvelgo/internal/app/filter"
)

// StoryResource is the API resource name of stories.
const StoryResource = "stories"

// Story is an indivisible, reusable part of a comic.
type Story struct {
	ID            int          `mapstructure:"id" json:"id"`
	Title         string       `mapstructure:"title" json:"title"`
	Description   string       `mapstructure:"description" json:"description"`
	ResourceURI   string       `mapstructure:"resourceURI" json:"resourceURI"`
	Type          string       `mapstructure:"type" json:"type"`
	Modified      time.Time    `mapstructure:"modified" json:"modified"`
	Thumbnail     Image        `mapstructure:"thumbnail" json:"thumbnail"`
	Comics        ResourceList `mapstructure:"comics" json:"comics"`
	Series        ResourceList `mapstructure:"series" json:"series"`
	Events        ResourceList `mapstructure:"events" json:"events"`
	Characters    ResourceList `mapstructure:"characters" json:"characters"`
	Creators      ResourceList `mapstructure:"creators" json:"creators"`
	OriginalIssue Summary      `mapstructure:"originalIssue" json:"originalIssue"`
}

var storyAttributes = attributes(
	filter.Field("id", filter.Use("int", true)),
	filter.Field("title", filter.Use("string", true, 0)),
	filter.Field("description", filter.Use("string", true, 0)),
	filter.Field("resourceURI", filter.Use("string", true, 0)),
	filter.Field("type", filter.Use("string", true, 0)),
	filter.Field("modified", filter.Use("date", true)),
	filter.Field("thumbnail", nullableImage()...).WithDefault(Image{}),
	filter.Field("comics", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("series", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("events", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("characters", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("creators", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("originalIssue", nullableSummary()...).WithDefault(Summary{}),
)

var storyCriteria = criteria(
	modifiedSince(),
	idList("comics"),
	idList("series"),
	idList("events"),
	idList("creators"),
	idList("characters"),
	filter.Field("orderBy", oneOf(withDescending("id", "modified")...)),
)

// nullableImage hydrates a thumbnail the API sends as null for most stories.
func nullableImage() []filter.Step {
	return []filter.Step{filter.Call(func(value any, _ ...any) (any, error) {
		if value == nil {
			return Image{}, nil
		}
		return hydrate[Image](KindImage, value)
	})}
}

// StoryFromMap hydrates a story from one raw API object.
func StoryFromMap(raw map[string]any) (Story, error) {
	return hydrate[Story](KindStory, raw)
}

// StoriesFromMaps hydrates stories from raw API objects.
func StoriesFromMaps(raw []map[string]any) ([]Story, error) {
	return hydrateAll[Story](KindStory, raw)
}

// BuildStoryCriteria validates story search criteria.
func BuildStoryCriteria(criteria map[string]any) (url.Values, error) {
	return buildCriteria(KindStory, criteria, nil)
}
