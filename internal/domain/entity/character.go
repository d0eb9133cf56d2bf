package entity

import (
	"net/url"
	"time"

	"github.com/osa030/marvelgo/internal/app/filter"
)

// CharacterResource is the API resource name of characters.
const CharacterResource = "characters"

// Character is a Marvel character.
type Character struct {
	ID          int          `mapstructure:"id" json:"id"`
	Name        string       `mapstructure:"name" json:"name"`
	Description string       `mapstructure:"description" json:"description"`
	Modified    time.Time    `mapstructure:"modified" json:"modified"`
	ResourceURI string       `mapstructure:"resourceURI" json:"resourceURI"`
	URLs        []URL        `mapstructure:"urls" json:"urls"`
	Thumbnail   Image        `mapstructure:"thumbnail" json:"thumbnail"`
	Comics      ResourceList `mapstructure:"comics" json:"comics"`
	Stories     ResourceList `mapstructure:"stories" json:"stories"`
	Events      ResourceList `mapstructure:"events" json:"events"`
	Series      ResourceList `mapstructure:"series" json:"series"`
}

var characterAttributes = attributes(
	filter.Field("id", filter.Use("int", true)),
	filter.Field("name", filter.Use("string", true, 0)),
	filter.Field("description", filter.Use("string", true, 0)),
	filter.Field("modified", filter.Use("date", true)),
	filter.Field("resourceURI", filter.Use("string", true, 0)),
	filter.Field("urls", filter.Use("_urls")).WithDefault([]URL{}),
	filter.Field("thumbnail", filter.Use("image")).WithDefault(Image{}),
	filter.Field("comics", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("stories", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("events", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("series", filter.Use("resource-list")).WithDefault(ResourceList{}),
)

var characterCriteria = criteria(
	text("name"),
	text("nameStartsWith"),
	modifiedSince(),
	idList("comics"),
	idList("series"),
	idList("events"),
	idList("stories"),
	filter.Field("orderBy", oneOf(withDescending("name", "modified")...)),
)

// CharacterFromMap hydrates a character from one raw API object.
func CharacterFromMap(raw map[string]any) (Character, error) {
	return hydrate[Character](KindCharacter, raw)
}

// CharactersFromMaps hydrates characters from raw API objects.
func CharactersFromMaps(raw []map[string]any) ([]Character, error) {
	return hydrateAll[Character](KindCharacter, raw)
}

// BuildCharacterCriteria validates character search criteria.
func BuildCharacterCriteria(criteria map[string]any) (url.Values, error) {
	return buildCriteria(KindCharacter, criteria, nil)
}
