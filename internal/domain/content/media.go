package content

import (
	"net/url"
	"path"
	"strings"
)

// MediaType classifies a content item by its attached media
type MediaType string

const (
	// MediaTypeText means the item has no media
	MediaTypeText MediaType = "TEXT"
	// MediaTypeImage means the item's leading media is an image
	MediaTypeImage MediaType = "IMAGE"
	// MediaTypeVideo means the item's leading media is a video
	MediaTypeVideo MediaType = "VIDEO"
)

// IsValid returns true if the media type is valid
func (m MediaType) IsValid() bool {
	switch m {
	case MediaTypeText, MediaTypeImage, MediaTypeVideo:
		return true
	default:
		return false
	}
}

// videoExtensions is the fixed set of extensions treated as video
var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".avi":  {},
	".mkv":  {},
	".webm": {},
	".m4v":  {},
}

// InferMediaType classifies content by its media references. Only the
// first reference decides: a video extension yields VIDEO, anything else
// yields IMAGE, and no media at all yields TEXT.
func InferMediaType(mediaRefs []string) MediaType {
	if len(mediaRefs) == 0 {
		return MediaTypeText
	}
	ext := strings.ToLower(path.Ext(stripQuery(mediaRefs[0])))
	if _, ok := videoExtensions[ext]; ok {
		return MediaTypeVideo
	}
	return MediaTypeImage
}

// stripQuery drops the query and fragment so signed URLs classify by path
func stripQuery(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		return u.Path
	}
	return ref
}
