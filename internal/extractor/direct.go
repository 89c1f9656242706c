package extractor

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/grvbrk/vidshelf/internal/models"
)

var videoExtensions = []string{".mp4", ".webm", ".ogg", ".avi", ".mov"}

// DirectFile handles links straight to a media file. The embed snippet always
// declares video/mp4, whatever the real container is.
type DirectFile struct{}

func (DirectFile) Name() string { return "direct" }

// Match returns the last segment of the URL path as written, percent escapes
// included. A URL that does not parse is matched on its text up to any query
// or fragment.
func (DirectFile) Match(rawURL string) (string, bool) {
	p := rawPath(rawURL)
	if p == "" {
		return "", false
	}
	lower := strings.ToLower(p)
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			return p[strings.LastIndex(p, "/")+1:], true
		}
	}
	return "", false
}

func rawPath(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return u.EscapedPath()
	}
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

func (DirectFile) Extract(_ context.Context, rawURL, name string) models.VideoMetadata {
	return models.VideoMetadata{
		Title:     name,
		Thumbnail: "",
		VideoURL:  rawURL,
		EmbedHTML: fmt.Sprintf(`<video width="100%%" height="400" controls><source src="%s" type="video/mp4">Your browser does not support the video tag.</video>`, html.EscapeString(rawURL)),
	}
}
