package marvel

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/osa030/marvelgo/internal/domain/entity"
)

// FindAllComics searches comics. criteria is validated before any request
// is sent.
func (c *Client) FindAllComics(criteria map[string]any, pageSize int) (*Collection[entity.Comic], error) {
	query, err := entity.BuildComicCriteria(criteria)
	if err != nil {
		return nil, err
	}
	return NewCollection(c, entity.ComicResource, query, pageSize, entity.ComicsFromMaps), nil
}

// FindAllCharacters searches characters.
func (c *Client) FindAllCharacters(criteria map[string]any, pageSize int) (*Collection[entity.Character], error) {
	query, err := entity.BuildCharacterCriteria(criteria)
	if err != nil {
		return nil, err
	}
	return NewCollection(c, entity.CharacterResource, query, pageSize, entity.CharactersFromMaps), nil
}

// FindAllSeries searches series.
func (c *Client) FindAllSeries(criteria map[string]any, pageSize int) (*Collection[entity.Series], error) {
	query, err := entity.BuildSeriesCriteria(criteria)
	if err != nil {
		return nil, err
	}
	return NewCollection(c, entity.SeriesResource, query, pageSize, entity.SeriesFromMaps), nil
}

// FindAllEvents searches events.
func (c *Client) FindAllEvents(criteria map[string]any, pageSize int) (*Collection[entity.Event], error) {
	query, err := entity.BuildEventCriteria(criteria)
	if err != nil {
		return nil, err
	}
	return NewCollection(c, entity.EventResource, query, pageSize, entity.EventsFromMaps), nil
}

// FindAllStories searches stories.
func (c *Client) FindAllStories(criteria map[string]any, pageSize int) (*Collection[entity.Story], error) {
	query, err := entity.BuildStoryCriteria(criteria)
	if err != nil {
		return nil, err
	}
	return NewCollection(c, entity.StoryResource, query, pageSize, entity.StoriesFromMaps), nil
}

// FindAllCreators searches creators.
func (c *Client) FindAllCreators(criteria map[string]any, pageSize int) (*Collection[entity.Creator], error) {
	query, err := entity.BuildCreatorCriteria(criteria)
	if err != nil {
		return nil, err
	}
	return NewCollection(c, entity.CreatorResource, query, pageSize, entity.CreatorsFromMaps), nil
}

// GetComic fetches one comic.
func (c *Client) GetComic(ctx context.Context, id int) (entity.Comic, error) {
	return getOne(ctx, c, entity.ComicResource, id, entity.ComicFromMap)
}

// GetCharacter fetches one character.
func (c *Client) GetCharacter(ctx context.Context, id int) (entity.Character, error) {
	return getOne(ctx, c, entity.CharacterResource, id, entity.CharacterFromMap)
}

// GetSeries fetches one series.
func (c *Client) GetSeries(ctx context.Context, id int) (entity.Series, error) {
	return getOne(ctx, c, entity.SeriesResource, id, entity.SeriesFromMap)
}

// GetEvent fetches one event.
func (c *Client) GetEvent(ctx context.Context, id int) (entity.Event, error) {
	return getOne(ctx, c, entity.EventResource, id, entity.EventFromMap)
}

// GetStory fetches one story.
func (c *Client) GetStory(ctx context.Context, id int) (entity.Story, error) {
	return getOne(ctx, c, entity.StoryResource, id, entity.StoryFromMap)
}

// GetCreator fetches one creator.
func (c *Client) GetCreator(ctx context.Context, id int) (entity.Creator, error) {
	return getOne(ctx, c, entity.CreatorResource, id, entity.CreatorFromMap)
}

func getOne[T any](ctx context.Context, c *Client, resource string, id int, hydrate func(map[string]any) (T, error)) (T, error) {
	var zero T
	raw, err := c.Get(ctx, resource, id)
	if err != nil {
		return zero, err
	}
	v, err := hydrate(raw)
	if err != nil {
		return zero, errors.Wrapf(err, "failed to hydrate %s %d", resource, id)
	}
	return v, nil
}

// Resource describes a searchable API resource without its record type.
type Resource struct {
	Kind entity.Kind
	Name string
	one  func(map[string]any) (any, error)
	many func([]map[string]any) ([]any, error)
}

var resources = []Resource{
	newResource(entity.KindComic, entity.ComicResource, entity.ComicFromMap, entity.ComicsFromMaps),
	newResource(entity.KindCharacter, entity.CharacterResource, entity.CharacterFromMap, entity.CharactersFromMaps),
	newResource(entity.KindSeries, entity.SeriesResource, entity.SeriesFromMap, entity.SeriesFromMaps),
	newResource(entity.KindEvent, entity.EventResource, entity.EventFromMap, entity.EventsFromMaps),
	newResource(entity.KindStory, entity.StoryResource, entity.StoryFromMap, entity.StoriesFromMaps),
	newResource(entity.KindCreator, entity.CreatorResource, entity.CreatorFromMap, entity.CreatorsFromMaps),
}

func newResource[T any](kind entity.Kind, name string, one func(map[string]any) (T, error), many func([]map[string]any) ([]T, error)) Resource {
	return Resource{
		Kind: kind,
		Name: name,
		one: func(raw map[string]any) (any, error) {
			return one(raw)
		},
		many: func(raw []map[string]any) ([]any, error) {
			records, err := many(raw)
			if err != nil {
				return nil, err
			}
			return lo.Map(records, func(r T, _ int) any { return r }), nil
		},
	}
}

// Resources lists the searchable resources.
func Resources() []Resource {
	return append([]Resource(nil), resources...)
}

// LookupResource finds a resource by its kind or its API name, such as
// "comic" or "comics".
func LookupResource(name string) (Resource, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	return lo.Find(resources, func(r Resource) bool {
		return string(r.Kind) == name || r.Name == name
	})
}

// FindAll searches any resource. Records are returned as their concrete
// entity types.
func (c *Client) FindAll(r Resource, criteria map[string]any, pageSize int) (*Collection[any], error) {
	query, err := entity.BuildCriteria(r.Kind, criteria)
	if err != nil {
		return nil, err
	}
	return NewCollection(c, r.Name, query, pageSize, r.many), nil
}

// GetAny fetches one record of any resource.
func (c *Client) GetAny(ctx context.Context, r Resource, id int) (any, error) {
	return getOne(ctx, c, r.Name, id, r.one)
}
