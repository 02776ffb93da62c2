package domain

import (
	"fmt"
	"strings"
)

// MediaType is the medium a unit consumes or produces.
type MediaType string

const (
	MediaText  MediaType = "text"
	MediaAudio MediaType = "audio"
	MediaVideo MediaType = "video"
	MediaImage MediaType = "image"
)

// MediaTypes lists every known medium in display order.
var MediaTypes = []MediaType{MediaText, MediaAudio, MediaVideo, MediaImage}

// ParseMediaType maps a wire tag onto a MediaType.
// Tags are matched case-insensitively; an empty or unknown tag is an error.
func ParseMediaType(tag string) (MediaType, error) {
	if strings.TrimSpace(tag) == "" {
		return "", ErrMissingMediaType
	}

	switch MediaType(strings.ToLower(strings.TrimSpace(tag))) {
	case MediaText:
		return MediaText, nil
	case MediaAudio:
		return MediaAudio, nil
	case MediaVideo:
		return MediaVideo, nil
	case MediaImage:
		return MediaImage, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMediaType, tag)
	}
}

// Valid reports whether m is one of the known media types.
func (m MediaType) Valid() bool {
	switch m {
	case MediaText, MediaAudio, MediaVideo, MediaImage:
		return true
	}
	return false
}

func (m MediaType) String() string {
	return string(m)
}
