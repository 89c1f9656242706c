package extractor

import (
	"context"
	"fmt"
	"regexp"

	log "github.com/sirupsen/logrus"

	"github.com/grvbrk/vidshelf/internal/models"
)

var vimeoRe = regexp.MustCompile(`vimeo\.com/(\d+)`)

// Enricher looks up optional title and thumbnail data for a video id.
// The returned error is informational; the Enrichment is always usable.
type Enricher interface {
	Enrich(ctx context.Context, id string) (Enrichment, error)
}

// Vimeo builds player fields from the numeric id and asks the Enricher for
// title and thumbnail.
type Vimeo struct {
	enricher Enricher
	logger   *log.Logger
}

func NewVimeo(enricher Enricher, logger *log.Logger) *Vimeo {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Vimeo{enricher: enricher, logger: logger}
}

func (v *Vimeo) Name() string { return "vimeo" }

func (v *Vimeo) Match(rawURL string) (string, bool) {
	m := vimeoRe.FindStringSubmatch(rawURL)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

func (v *Vimeo) Extract(ctx context.Context, _, id string) models.VideoMetadata {
	player := fmt.Sprintf("https://player.vimeo.com/video/%s", id)
	meta := models.VideoMetadata{
		Title:     fmt.Sprintf("Vimeo Video %s", id),
		Thumbnail: "",
		VideoURL:  player,
		EmbedHTML: fmt.Sprintf(`<iframe src="%s" width="100%%" height="400" frameborder="0" allowfullscreen></iframe>`, player),
	}

	e := v.enrich(ctx, id)
	if e.Kind != Enriched {
		return meta
	}
	if e.Title != "" {
		meta.Title = e.Title
	}
	meta.Thumbnail = e.Thumbnail
	return meta
}

func (v *Vimeo) enrich(ctx context.Context, id string) Enrichment {
	if v.enricher == nil {
		return Enrichment{Kind: Fallback}
	}
	e, err := v.enricher.Enrich(ctx, id)
	if err != nil {
		v.logger.WithError(err).WithField("id", id).Warn("vimeo enrichment failed, using fallback metadata")
		return Enrichment{Kind: Fallback}
	}
	return e
}
