package extractor

import (
	"context"
	"fmt"
	"regexp"

	"github.com/grvbrk/vidshelf/internal/models"
)

var youtubeRe = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]+)`)

// YouTube derives everything from the video id. It never touches the network.
type YouTube struct{}

func (YouTube) Name() string { return "youtube" }

func (YouTube) Match(rawURL string) (string, bool) {
	m := youtubeRe.FindStringSubmatch(rawURL)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

func (YouTube) Extract(_ context.Context, _, id string) models.VideoMetadata {
	embed := fmt.Sprintf("https://www.youtube.com/embed/%s", id)
	return models.VideoMetadata{
		Title:     fmt.Sprintf("YouTube Video %s", id),
		Thumbnail: fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id),
		VideoURL:  embed,
		EmbedHTML: fmt.Sprintf(`<iframe width="100%%" height="400" src="%s" frameborder="0" allowfullscreen></iframe>`, embed),
	}
}
