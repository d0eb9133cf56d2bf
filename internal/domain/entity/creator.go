package entity

import (
	"net/url"
	"time"

	"github.com/osa030/marvelgo/internal/app/filter"
)

// CreatorResource is the API resource name of creators.
const CreatorResource = "creators"

// Creator is a person or entity that makes comics.
type Creator struct {
	ID          int          `mapstructure:"id" json:"id"`
	FirstName   string       `mapstructure:"firstName" json:"firstName"`
	MiddleName  string       `mapstructure:"middleName" json:"middleName"`
	LastName    string       `mapstructure:"lastName" json:"lastName"`
	Suffix      string       `mapstructure:"suffix" json:"suffix"`
	FullName    string       `mapstructure:"fullName" json:"fullName"`
	Modified    time.Time    `mapstructure:"modified" json:"modified"`
	ResourceURI string       `mapstructure:"resourceURI" json:"resourceURI"`
	URLs        []URL        `mapstructure:"urls" json:"urls"`
	Thumbnail   Image        `mapstructure:"thumbnail" json:"thumbnail"`
	Series      ResourceList `mapstructure:"series" json:"series"`
	Stories     ResourceList `mapstructure:"stories" json:"stories"`
	Comics      ResourceList `mapstructure:"comics" json:"comics"`
	Events      ResourceList `mapstructure:"events" json:"events"`
}

var creatorAttributes = attributes(
	filter.Field("id", filter.Use("int", true)),
	filter.Field("firstName", filter.Use("string", true, 0)),
	filter.Field("middleName", filter.Use("string", true, 0)),
	filter.Field("lastName", filter.Use("string", true, 0)),
	filter.Field("suffix", filter.Use("string", true, 0)),
	filter.Field("fullName", filter.Use("string", true, 0)),
	filter.Field("modified", filter.Use("date", true)),
	filter.Field("resourceURI", filter.Use("string", true, 0)),
	filter.Field("urls", filter.Use("_urls")).WithDefault([]URL{}),
	filter.Field("thumbnail", filter.Use("image")).WithDefault(Image{}),
	filter.Field("series", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("stories", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("comics", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("events", filter.Use("resource-list")).WithDefault(ResourceList{}),
)

var creatorCriteria = criteria(
	text("firstName"),
	text("middleName"),
	text("lastName"),
	text("suffix"),
	text("nameStartsWith"),
	text("firstNameStartsWith"),
	text("middleNameStartsWith"),
	text("lastNameStartsWith"),
	modifiedSince(),
	idList("comics"),
	idList("series"),
	idList("events"),
	idList("stories"),
	filter.Field("orderBy", oneOf(withDescending("lastName", "firstName", "middleName", "suffix", "modified")...)),
)

// CreatorFromMap hydrates a creator from one raw API object.
func CreatorFromMap(raw map[string]any) (Creator, error) {
	return hydrate[Creator](KindCreator, raw)
}

// CreatorsFromMaps hydrates creators from raw API objects.
func CreatorsFromMaps(raw []map[string]any) ([]Creator, error) {
	return hydrateAll[Creator](KindCreator, raw)
}

// BuildCreatorCriteria validates creator search criteria.
func BuildCreatorCriteria(criteria map[string]any) (url.Values, error) {
	return buildCriteria(KindCreator, criteria, nil)
}
