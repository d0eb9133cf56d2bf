package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/marvelgo/internal/domain/entity"
)

func TestParseCriteria(t *testing.T) {
	got, err := parseCriteria(entity.KindComic, map[string]string{
		"characters": "1011334, 1009610",
		"title":      "Spider-Man, Vol. 1",
		"noVariants": "true",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1011334", "1009610"}, got["characters"])
	assert.Equal(t, "Spider-Man, Vol. 1", got["title"])

	query, err := entity.BuildComicCriteria(got)
	require.NoError(t, err)
	assert.Equal(t, "1011334,1009610", query.Get("characters"))
	assert.Equal(t, "true", query.Get("noVariants"))

	_, err = parseCriteria(entity.KindImage, nil)
	assert.Error(t, err)
}

func TestPrintAliases(t *testing.T) {
	var buf bytes.Buffer
	printAliases(&buf)
	assert.Contains(t, buf.String(), "  comics\n")
	assert.Contains(t, buf.String(), "  ofScalars\n")
}

func TestPrintCriteria(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printCriteria(&buf, "events"))
	assert.Contains(t, buf.String(), "Search criteria for events:")
	assert.Contains(t, buf.String(), "  nameStartsWith\n")

	assert.Error(t, printCriteria(&buf, "villains"))
}
