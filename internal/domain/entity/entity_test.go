package entity

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const comicPayload = `{
  "id": 41530,
  "digitalId": 0,
  "title": "Ant-Man: So (Trade Paperback)",
  "issueNumber": 0,
  "variantDescription": "",
  "description": "It's the origin of Scott Lang.",
  "modified": "2013-10-23T11:28:46-0400",
  "isbn": "978-0-7851-6390-7",
  "upc": "",
  "diamondCode": "JUL120730",
  "ean": "9780785 163907 51999",
  "issn": "",
  "format": "Trade Paperback",
  "pageCount": 136,
  "textObjects": [
    {"type": "issue_solicit_text", "language": "en-us", "text": "Scott Lang returns."}
  ],
  "resourceURI": "http://gateway.marvel.com/v1/public/comics/41530",
  "urls": [
    {"type": "detail", "url": "http://marvel.com/comics/collection/41530"}
  ],
  "series": {"resourceURI": "http://gateway.marvel.com/v1/public/series/15276", "name": "Ant-Man: So (2012)"},
  "variants": [],
  "collections": [],
  "collectedIssues": [
    {"resourceURI": "http://gateway.marvel.com/v1/public/comics/1814", "name": "Ant-Man (2003) #1"}
  ],
  "dates": [
    {"type": "onsaleDate", "date": "2012-09-12T00:00:00-0400"},
    {"type": "focDate", "date": "-0001-11-30T00:00:00-0500"}
  ],
  "prices": [
    {"type": "printPrice", "price": 19.99}
  ],
  "thumbnail": {"path": "http://i.annihil.us/u/prod/marvel/i/mg/c/60/5068f8a03a4b6", "extension": "jpg"},
  "images": [
    {"path": "http://i.annihil.us/u/prod/marvel/i/mg/c/60/5068f8a03a4b6", "extension": "jpg"}
  ],
  "creators": {
    "available": 1,
    "returned": 1,
    "collectionURI": "http://gateway.marvel.com/v1/public/comics/41530/creators",
    "items": [
      {"resourceURI": "http://gateway.marvel.com/v1/public/creators/4430", "name": "Jeff Youngquist", "role": "editor"}
    ]
  },
  "characters": {"available": 0, "returned": 0, "collectionURI": "http://gateway.marvel.com/v1/public/comics/41530/characters", "items": []},
  "stories": {
    "available": 2,
    "returned": 1,
    "collectionURI": "http://gateway.marvel.com/v1/public/comics/41530/stories",
    "items": [
      {"resourceURI": "http://gateway.marvel.com/v1/public/stories/94127", "name": "cover", "type": "cover"}
    ]
  },
  "events": {"available": 0, "returned": 0, "collectionURI": "http://gateway.marvel.com/v1/public/comics/41530/events", "items": []}
}`

func decode(t *testing.T, payload string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &m))
	return m
}

func TestComicFromMap(t *testing.T) {
	comic, err := ComicFromMap(decode(t, comicPayload))
	require.NoError(t, err)

	assert.Equal(t, 41530, comic.ID)
	assert.Equal(t, "Ant-Man: So (Trade Paperback)", comic.Title)
	assert.Equal(t, "0", comic.IssueNumber)
	assert.Equal(t, 136, comic.PageCount)
	assert.Equal(t, "Trade Paperback", comic.Format)

	edt := time.FixedZone("", -4*60*60)
	assert.True(t, comic.Modified.Equal(time.Date(2013, 10, 23, 11, 28, 46, 0, edt)))

	require.Len(t, comic.Dates, 2)
	assert.Equal(t, "onsaleDate", comic.Dates[0].Type)
	assert.True(t, comic.Dates[0].Date.Equal(time.Date(2012, 9, 12, 0, 0, 0, 0, edt)))
	assert.True(t, comic.Dates[1].Date.IsZero(), "zero date sentinel")

	require.Len(t, comic.Prices, 1)
	assert.Equal(t, Price{Type: "printPrice", Price: 19.99}, comic.Prices[0])

	assert.Equal(t, "Ant-Man: So (2012)", comic.Series.Name)
	assert.Empty(t, comic.Variants)
	require.Len(t, comic.CollectedIssues, 1)
	assert.Equal(t, "Ant-Man (2003) #1", comic.CollectedIssues[0].Name)

	require.Len(t, comic.TextObjects, 1)
	assert.Equal(t, "en-us", comic.TextObjects[0].Language)

	require.Len(t, comic.Creators.Items, 1)
	assert.Equal(t, "editor", comic.Creators.Items[0].Role)
	assert.True(t, comic.Creators.Complete())
	assert.False(t, comic.Stories.Complete())

	assert.Equal(t,
		"http://i.annihil.us/u/prod/marvel/i/mg/c/60/5068f8a03a4b6/portrait_xlarge.jpg",
		comic.Thumbnail.URL(PortraitXLarge))
}

func TestComicFromMap_Partial(t *testing.T) {
	comic, err := ComicFromMap(map[string]any{"id": 7, "title": "Partial"})
	require.NoError(t, err)

	assert.Equal(t, 7, comic.ID)
	assert.Equal(t, "Partial", comic.Title)
	assert.Empty(t, comic.Description)
	assert.True(t, comic.Modified.IsZero())
	assert.Empty(t, comic.Prices)
	assert.Empty(t, comic.Creators.Items)
	assert.Equal(t, Image{}, comic.Thumbnail)
}

func TestComicFromMap_Errors(t *testing.T) {
	_, err := ComicFromMap(map[string]any{
		"id":     "abc",
		"prices": []any{map[string]any{"type": "printPrice", "price": "free"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHydration))

	var he *HydrationError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, KindComic, he.Kind)

	fields := make([]string, len(he.Errors))
	for i, fe := range he.Errors {
		fields[i] = fe.Field
	}
	assert.ElementsMatch(t, []string{"id", "prices"}, fields)
	assert.Contains(t, err.Error(), "[0].price")
}

func TestComicsFromMaps(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		comics, err := ComicsFromMaps([]map[string]any{
			{"id": 1, "title": "One"},
			{"id": 2, "title": "Two"},
		})
		require.NoError(t, err)
		require.Len(t, comics, 2)
		assert.Equal(t, "Two", comics[1].Title)
	})

	t.Run("every bad element is reported", func(t *testing.T) {
		_, err := ComicsFromMaps([]map[string]any{
			{"id": "x"},
			{"id": 2},
			{"id": 3, "pageCount": "many"},
		})
		require.Error(t, err)

		var he *HydrationError
		require.True(t, errors.As(err, &he))
		require.Len(t, he.Errors, 2)
		assert.Equal(t, "[0].id", he.Errors[0].Field)
		assert.Equal(t, "[2].pageCount", he.Errors[1].Field)
	})

	t.Run("empty", func(t *testing.T) {
		comics, err := ComicsFromMaps(nil)
		require.NoError(t, err)
		assert.Empty(t, comics)
	})
}

func TestCharacterFromMap(t *testing.T) {
	character, err := CharacterFromMap(map[string]any{
		"id":          1009610,
		"name":        "Spider-Man",
		"description": "",
		"modified":    "2013-10-24T14:32:08-0400",
		"thumbnail":   map[string]any{"path": "http://i.annihil.us/u/prod/marvel/i/mg/3/50/526548a343e4b", "extension": "jpg"},
		"comics": map[string]any{
			"available": 3, "returned": 1,
			"collectionURI": "http://gateway.marvel.com/v1/public/characters/1009610/comics",
			"items":         []any{map[string]any{"resourceURI": "http://gateway.marvel.com/v1/public/comics/320", "name": "Amazing Fantasy #15"}},
		},
		"urls": []any{map[string]any{"type": "wiki", "url": "http://marvel.com/universe/Spider-Man"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1009610, character.ID)
	assert.Equal(t, "Spider-Man", character.Name)
	assert.Equal(t, 3, character.Comics.Available)
	require.Len(t, character.URLs, 1)
	assert.Equal(t, "wiki", character.URLs[0].Type)
	assert.Empty(t, character.Series.Items)
}

func TestSeriesFromMap_NullLinks(t *testing.T) {
	series, err := SeriesFromMap(map[string]any{
		"id":        15276,
		"title":     "Ant-Man: So (2012)",
		"startYear": 2012,
		"endYear":   2012,
		"next":      nil,
		"previous":  map[string]any{"resourceURI": "http://gateway.marvel.com/v1/public/series/551", "name": "Ant-Man (2003 - 2004)"},
	})
	require.NoError(t, err)

	assert.Equal(t, Summary{}, series.Next)
	assert.Equal(t, "Ant-Man (2003 - 2004)", series.Previous.Name)
	assert.Equal(t, 2012, series.StartYear)
}

func TestEventFromMap(t *testing.T) {
	event, err := EventFromMap(map[string]any{
		"id":    116,
		"title": "Acts of Vengeance!",
		"start": "1989-12-10 00:00:00",
		"end":   "2008-01-04 00:00:00",
		"next":  map[string]any{"resourceURI": "http://gateway.marvel.com/v1/public/events/240", "name": "Days of Future Present"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Acts of Vengeance!", event.Title)
	assert.Equal(t, 1989, event.Start.Year())
	assert.Equal(t, 2008, event.End.Year())
	assert.Equal(t, "Days of Future Present", event.Next.Name)
	assert.Equal(t, Summary{}, event.Previous)
}

func TestStoryFromMap_NullThumbnail(t *testing.T) {
	story, err := StoryFromMap(map[string]any{
		"id":            7,
		"title":         "Investigating the murder of a teenage girl",
		"type":          "story",
		"thumbnail":     nil,
		"originalIssue": map[string]any{"resourceURI": "http://gateway.marvel.com/v1/public/comics/941", "name": "Ozzy Osbourne (2000) #1"},
	})
	require.NoError(t, err)

	assert.Equal(t, Image{}, story.Thumbnail)
	assert.Empty(t, story.Thumbnail.URL(Detail))
	assert.Equal(t, "Ozzy Osbourne (2000) #1", story.OriginalIssue.Name)
}

func TestCreatorsFromMaps(t *testing.T) {
	creators, err := CreatorsFromMaps([]map[string]any{
		{"id": 30, "firstName": "Stan", "lastName": "Lee", "fullName": "Stan Lee"},
		{"id": 32, "firstName": "Steve", "lastName": "Ditko", "fullName": "Steve Ditko", "suffix": ""},
	})
	require.NoError(t, err)
	require.Len(t, creators, 2)
	assert.Equal(t, "Stan Lee", creators[0].FullName)
	assert.Equal(t, "Ditko", creators[1].LastName)
}

func TestDataWrapperFromMap(t *testing.T) {
	wrapper, err := DataWrapperFromMap(decode(t, `{
		"code": 200,
		"status": "Ok",
		"copyright": "© 2024 MARVEL",
		"attributionText": "Data provided by Marvel. © 2024 MARVEL",
		"etag": "f0fbae65eb2f8f28bdeea0a29be8749a4e67acb3",
		"data": {
			"offset": 0, "limit": 2, "total": 3, "count": 2,
			"results": [{"id": 1}, {"id": 2}]
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, 200, wrapper.Code)
	assert.Equal(t, "Ok", wrapper.Status)
	assert.Equal(t, 3, wrapper.Data.Total)
	assert.Equal(t, 2, wrapper.Data.Count)
	require.Len(t, wrapper.Data.Maps(), 2)

	comics, err := ComicsFromMaps(wrapper.Data.Maps())
	require.NoError(t, err)
	assert.Equal(t, 2, comics[1].ID)
}

func TestHydrate_NotAnObject(t *testing.T) {
	_, err := hydrate[Comic](KindComic, "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHydration))
}

func TestRegistry(t *testing.T) {
	r := Registry()
	for _, alias := range []string{
		"comic", "comics", "character", "characters", "series", "event", "events",
		"story", "stories", "creator", "creators", "summary", "summaries",
		"image", "images", "price", "prices", "_date", "_dates", "_url", "_urls",
		"text-object", "text-objects", "resource-list", "data-container",
		"boolToString", "formatDate", "int", "date", "ofScalars",
	} {
		assert.True(t, r.Has(alias), alias)
	}

	// the built-in date filter is not shadowed by the Date record
	fn, err := r.Resolve("date")
	require.NoError(t, err)
	v, err := fn("2014-04-29T14:18:17-0400")
	require.NoError(t, err)
	assert.IsType(t, time.Time{}, v)

	fn, err = r.Resolve("summary")
	require.NoError(t, err)
	v, err = fn(map[string]any{"name": "Hulk"})
	require.NoError(t, err)
	assert.Equal(t, Summary{Name: "Hulk"}, v)
}

func TestAttributeSpec(t *testing.T) {
	spec, ok := AttributeSpec(KindComic)
	require.True(t, ok)
	assert.Contains(t, spec.Names(), "collectedIssues")

	_, ok = AttributeSpec(Kind("villain"))
	assert.False(t, ok)
}

func TestImageURL(t *testing.T) {
	img := Image{Path: "http://i.annihil.us/u/prod/marvel/i/mg/3/40/4bb4680432f73", Extension: "jpg"}

	tests := []struct {
		variant ImageVariant
		want    string
	}{
		{StandardAmazing, "http://i.annihil.us/u/prod/marvel/i/mg/3/40/4bb4680432f73/standard_amazing.jpg"},
		{LandscapeIncredible, "http://i.annihil.us/u/prod/marvel/i/mg/3/40/4bb4680432f73/landscape_incredible.jpg"},
		{Detail, "http://i.annihil.us/u/prod/marvel/i/mg/3/40/4bb4680432f73/detail.jpg"},
		{FullSize, "http://i.annihil.us/u/prod/marvel/i/mg/3/40/4bb4680432f73.jpg"},
	}
	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			assert.Equal(t, tt.want, img.URL(tt.variant))
		})
	}
}
