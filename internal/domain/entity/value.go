package entity

import (
	"time"

	"github.com/osa030/marvelgo/internal/app/filter"
)

// Price is a price of a comic in US dollars.
type Price struct {
	Type  string  `mapstructure:"type" json:"type"`
	Price float64 `mapstructure:"price" json:"price"`
}

var priceAttributes = attributes(
	filter.Field("type", filter.Use("string", true, 0)),
	filter.Field("price", filter.Use("float", true)),
)

// Date is a key date of a comic such as its on-sale date.
type Date struct {
	Type string    `mapstructure:"type" json:"type"`
	Date time.Time `mapstructure:"date" json:"date"`
}

var dateAttributes = attributes(
	filter.Field("type", filter.Use("string", true, 0)),
	filter.Field("date", filter.Use("date", true)),
)

// URL is a public web page for a resource.
type URL struct {
	Type string `mapstructure:"type" json:"type"`
	URL  string `mapstructure:"url" json:"url"`
}

var urlAttributes = attributes(
	filter.Field("type", filter.Use("string", true, 0)),
	filter.Field("url", filter.Use("string", true, 0)),
)

// TextObject is a descriptive text blurb.
type TextObject struct {
	Type     string `mapstructure:"type" json:"type"`
	Language string `mapstructure:"language" json:"language"`
	Text     string `mapstructure:"text" json:"text"`
}

var textObjectAttributes = attributes(
	filter.Field("type", filter.Use("string", true, 0)),
	filter.Field("language", filter.Use("string", true, 0)),
	filter.Field("text", filter.Use("string", true, 0)),
)
