package marvel

import (
	"context"
	"net/url"

	"github.com/cockroachdb/errors"
)

// HydrateFunc builds records from the raw results of one page.
type HydrateFunc[T any] func(raw []map[string]any) ([]T, error)

// Collection iterates over every result of a search, fetching pages lazily.
//
//	for coll.Next(ctx) {
//		use(coll.Value())
//	}
//	if err := coll.Err(); err != nil { ... }
type Collection[T any] struct {
	client   *Client
	resource string
	criteria url.Values
	hydrate  HydrateFunc[T]
	pageSize int

	offset  int
	total   int
	done    bool
	page    []T
	idx     int
	current T
	err     error
}

// NewCollection creates a collection over resource. A page size outside
// 1..MaxPageSize is clamped.
func NewCollection[T any](client *Client, resource string, criteria url.Values, pageSize int, hydrate HydrateFunc[T]) *Collection[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return &Collection[T]{
		client:   client,
		resource: resource,
		criteria: criteria,
		hydrate:  hydrate,
		pageSize: pageSize,
	}
}

// Next advances to the next record, fetching a page when needed. It returns
// false when the results are exhausted or an error occurred.
func (c *Collection[T]) Next(ctx context.Context) bool {
	if c.err != nil {
		return false
	}
	for c.idx >= len(c.page) {
		if c.done {
			return false
		}
		if err := c.fetch(ctx); err != nil {
			c.err = err
			return false
		}
	}
	c.current = c.page[c.idx]
	c.idx++
	return true
}

// Value returns the current record.
func (c *Collection[T]) Value() T {
	return c.current
}

// Err returns the error that stopped the iteration, if any.
func (c *Collection[T]) Err() error {
	return c.err
}

// Total returns the number of matching records reported by the API. It is
// zero until the first page is fetched.
func (c *Collection[T]) Total() int {
	return c.total
}

// All drains the collection.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	var out []T
	for c.Next(ctx) {
		out = append(out, c.Value())
	}
	return out, c.Err()
}

// Take returns at most n records.
func (c *Collection[T]) Take(ctx context.Context, n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	out := make([]T, 0, n)
	for len(out) < n && c.Next(ctx) {
		out = append(out, c.Value())
	}
	return out, c.Err()
}

func (c *Collection[T]) fetch(ctx context.Context) error {
	wrapper, err := c.client.Search(ctx, c.resource, c.criteria, c.offset, c.pageSize)
	if err != nil {
		return err
	}
	c.total = wrapper.Data.Total

	records, err := c.hydrate(wrapper.Data.Maps())
	if err != nil {
		return errors.Wrapf(err, "failed to hydrate %s at offset %d", c.resource, c.offset)
	}
	c.page = records
	c.idx = 0
	c.offset += wrapper.Data.Count
	if wrapper.Data.Count == 0 || c.offset >= c.total {
		c.done = true
	}
	return nil
}
