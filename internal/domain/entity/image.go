package entity

import "github.com/osa030/marvelgo/internal/app/filter"

// ImageVariant selects one of the renditions the image service provides.
type ImageVariant string

const (
	PortraitSmall      ImageVariant = "portrait_small"
	PortraitMedium     ImageVariant = "portrait_medium"
	PortraitXLarge     ImageVariant = "portrait_xlarge"
	PortraitFantastic  ImageVariant = "portrait_fantastic"
	PortraitUncanny    ImageVariant = "portrait_uncanny"
	PortraitIncredible ImageVariant = "portrait_incredible"

	StandardSmall     ImageVariant = "standard_small"
	StandardMedium    ImageVariant = "standard_medium"
	StandardLarge     ImageVariant = "standard_large"
	StandardXLarge    ImageVariant = "standard_xlarge"
	StandardFantastic ImageVariant = "standard_fantastic"
	StandardAmazing   ImageVariant = "standard_amazing"

	LandscapeSmall      ImageVariant = "landscape_small"
	LandscapeMedium     ImageVariant = "landscape_medium"
	LandscapeLarge      ImageVariant = "landscape_large"
	LandscapeXLarge     ImageVariant = "landscape_xlarge"
	LandscapeAmazing    ImageVariant = "landscape_amazing"
	LandscapeIncredible ImageVariant = "landscape_incredible"

	Detail   ImageVariant = "detail"
	FullSize ImageVariant = "full size"
)

// Image is a path to an image without its variant and extension.
type Image struct {
	Path      string `mapstructure:"path" json:"path"`
	Extension string `mapstructure:"extension" json:"extension"`
}

var imageAttributes = attributes(
	filter.Field("path", filter.Use("string", true, 0)),
	filter.Field("extension", filter.Use("string", true, 0)),
)

// URL returns the address of the given rendition. FullSize returns the
// original upload. An empty image yields an empty string.
func (i Image) URL(variant ImageVariant) string {
	if i.Path == "" {
		return ""
	}
	if variant == FullSize || variant == "" {
		return i.Path + "." + i.Extension
	}
	return i.Path + "/" + string(variant) + "." + i.Extension
}
