package entity

import (
	"net/url"
	"time"

	"github.com/osa030/marvelgo/internal/app/filter"
)

// ComicResource is the API resource name of comics.
const ComicResource = "comics"

// Comic is a Marvel comic issue, collection or graphic novel.
type Comic struct {
	ID                 int          `mapstructure:"id" json:"id"`
	DigitalID          int          `mapstructure:"digitalId" json:"digitalId"`
	Title              string       `mapstructure:"title" json:"title"`
	IssueNumber        string       `mapstructure:"issueNumber" json:"issueNumber"`
	VariantDescription string       `mapstructure:"variantDescription" json:"variantDescription"`
	Description        string       `mapstructure:"description" json:"description"`
	Modified           time.Time    `mapstructure:"modified" json:"modified"`
	ISBN               string       `mapstructure:"isbn" json:"isbn"`
	UPC                string       `mapstructure:"upc" json:"upc"`
	DiamondCode        string       `mapstructure:"diamondCode" json:"diamondCode"`
	EAN                string       `mapstructure:"ean" json:"ean"`
	ISSN               string       `mapstructure:"issn" json:"issn"`
	Format             string       `mapstructure:"format" json:"format"`
	PageCount          int          `mapstructure:"pageCount" json:"pageCount"`
	TextObjects        []TextObject `mapstructure:"textObjects" json:"textObjects"`
	ResourceURI        string       `mapstructure:"resourceURI" json:"resourceURI"`
	URLs               []URL        `mapstructure:"urls" json:"urls"`
	Series             Summary      `mapstructure:"series" json:"series"`
	Variants           []Summary    `mapstructure:"variants" json:"variants"`
	Collections        []Summary    `mapstructure:"collections" json:"collections"`
	CollectedIssues    []Summary    `mapstructure:"collectedIssues" json:"collectedIssues"`
	Dates              []Date       `mapstructure:"dates" json:"dates"`
	Prices             []Price      `mapstructure:"prices" json:"prices"`
	Thumbnail          Image        `mapstructure:"thumbnail" json:"thumbnail"`
	Images             []Image      `mapstructure:"images" json:"images"`
	Creators           ResourceList `mapstructure:"creators" json:"creators"`
	Characters         ResourceList `mapstructure:"characters" json:"characters"`
	Stories            ResourceList `mapstructure:"stories" json:"stories"`
	Events             ResourceList `mapstructure:"events" json:"events"`
}

var comicAttributes = attributes(
	filter.Field("id", filter.Use("int", true)),
	filter.Field("digitalId", filter.Use("int", true)),
	filter.Field("title", filter.Use("string", true, 0)),
	filter.Field("issueNumber", filter.Use("strval"), filter.Use("string", true, 0)),
	filter.Field("variantDescription", filter.Use("string", true, 0)),
	filter.Field("description", filter.Use("string", true, 0)),
	filter.Field("modified", filter.Use("date", true)),
	filter.Field("isbn", filter.Use("string", true, 0)),
	filter.Field("upc", filter.Use("string", true, 0)),
	filter.Field("diamondCode", filter.Use("string", true, 0)),
	filter.Field("ean", filter.Use("string", true, 0)),
	filter.Field("issn", filter.Use("string", true, 0)),
	filter.Field("format", filter.Use("string", true, 0)),
	filter.Field("pageCount", filter.Use("int", true)),
	filter.Field("textObjects", filter.Use("text-objects")).WithDefault([]TextObject{}),
	filter.Field("resourceURI", filter.Use("string", true, 0)),
	filter.Field("urls", filter.Use("_urls")).WithDefault([]URL{}),
	filter.Field("series", filter.Use("summary")).WithDefault(Summary{}),
	filter.Field("variants", filter.Use("summaries")).WithDefault([]Summary{}),
	filter.Field("collections", filter.Use("summaries")).WithDefault([]Summary{}),
	filter.Field("collectedIssues", filter.Use("summaries")).WithDefault([]Summary{}),
	filter.Field("dates", filter.Use("_dates")).WithDefault([]Date{}),
	filter.Field("prices", filter.Use("prices")).WithDefault([]Price{}),
	filter.Field("thumbnail", filter.Use("image")).WithDefault(Image{}),
	filter.Field("images", filter.Use("images")).WithDefault([]Image{}),
	filter.Field("creators", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("characters", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("stories", filter.Use("resource-list")).WithDefault(ResourceList{}),
	filter.Field("events", filter.Use("resource-list")).WithDefault(ResourceList{}),
)

// ComicFormats are the publication formats the API filters on.
var ComicFormats = []string{
	"comic",
	"hardcover",
	"trade paperback",
	"magazine",
	"digest",
	"graphic novel",
	"digital comic",
	"infinite comic",
}

var comicCriteria = criteria(
	filter.Field("format", oneOf(ComicFormats...)),
	filter.Field("formatType", oneOf("comic", "collection")),
	filter.Field("noVariants", filter.Use("bool"), filter.Use("boolToString")),
	filter.Field("dateDescriptor", oneOf("lastWeek", "thisWeek", "nextWeek", "thisMonth")),
	filter.Field("fromDate", filter.Use("date", true)),
	filter.Field("toDate", filter.Use("date", true)),
	filter.Field("hasDigitalIssue", filter.Use("bool"), filter.Use("boolToString")),
	modifiedSince(),
	idList("creators"),
	idList("characters"),
	idList("series"),
	idList("events"),
	idList("stories"),
	idList("sharedAppearances"),
	idList("collaborators"),
	filter.Field("orderBy", oneOf(withDescending("focDate", "onsaleDate", "title", "issueNumber", "modified")...)),
	text("title"),
	text("titleStartsWith"),
	filter.Field("startYear", filter.Use("uint")),
	filter.Field("issueNumber", filter.Use("strval"), filter.Use("string")),
	text("diamondCode"),
	filter.Field("digitalId", filter.Use("uint")),
	text("upc"),
	text("isbn"),
	text("ean"),
	text("issn"),
)

// ComicFromMap hydrates a comic from one raw API object.
func ComicFromMap(raw map[string]any) (Comic, error) {
	return hydrate[Comic](KindComic, raw)
}

// ComicsFromMaps hydrates comics from raw API objects.
func ComicsFromMaps(raw []map[string]any) ([]Comic, error) {
	return hydrateAll[Comic](KindComic, raw)
}

// BuildComicCriteria validates comic search criteria. A fromDate and toDate
// pair is sent as a single dateRange parameter.
func BuildComicCriteria(criteria map[string]any) (url.Values, error) {
	return buildCriteria(KindComic, criteria, mergeDateRange)
}

// mergeDateRange treats a date as given when the filter produced a time for
// it; a null date counts as not given.
func mergeDateRange(out map[string]any) []filter.FieldError {
	from, hasFrom := out["fromDate"].(time.Time)
	to, hasTo := out["toDate"].(time.Time)
	delete(out, "fromDate")
	delete(out, "toDate")

	switch {
	case !hasFrom && !hasTo:
		return nil
	case !hasFrom:
		return []filter.FieldError{{Field: "fromDate", Message: "is required when toDate is given"}}
	case !hasTo:
		return []filter.FieldError{{Field: "toDate", Message: "is required when fromDate is given"}}
	case to.Before(from):
		return []filter.FieldError{{Field: "toDate", Message: "is before fromDate"}}
	}

	out["dateRange"] = from.Format(ISO8601) + "," + to.Format(ISO8601)
	return nil
}
