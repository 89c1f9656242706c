package extractor

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/grvbrk/vidshelf/internal/models"
)

var ErrUnsupportedURL = errors.New("unsupported video URL")

// Source recognizes one family of video URLs.
type Source interface {
	Name() string
	// Match returns the identifier the source needs to build metadata.
	Match(rawURL string) (string, bool)
	Extract(ctx context.Context, rawURL, id string) models.VideoMetadata
}

// Extractor tries its sources in order; the first match wins.
type Extractor struct {
	sources []Source
	logger  *log.Logger
}

func New(logger *log.Logger, sources ...Source) *Extractor {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Extractor{sources: sources, logger: logger}
}

// NewDefault builds the extractor with the YouTube, Vimeo and direct file
// sources, in that order.
func NewDefault(logger *log.Logger, vimeo Enricher) *Extractor {
	return New(logger, YouTube{}, NewVimeo(vimeo, logger), DirectFile{})
}

func (e *Extractor) Classify(ctx context.Context, rawURL string) (*models.VideoMetadata, error) {
	for _, s := range e.sources {
		id, ok := s.Match(rawURL)
		if !ok {
			continue
		}
		meta := s.Extract(ctx, rawURL, id)
		e.logger.WithFields(log.Fields{
			"source": s.Name(),
			"id":     id,
		}).Debug("classified video url")
		return &meta, nil
	}
	return nil, ErrUnsupportedURL
}
