package extractor

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// EnrichmentCache stores successful enrichments keyed by video id.
type EnrichmentCache interface {
	Get(ctx context.Context, id string) (Enrichment, bool, error)
	Set(ctx context.Context, id string, e Enrichment) error
}

// CachingEnricher consults the cache before the wrapped Enricher. Only
// Enriched results are stored. Cache errors are logged and otherwise ignored.
type CachingEnricher struct {
	base   Enricher
	cache  EnrichmentCache
	logger *log.Logger
}

func NewCachingEnricher(base Enricher, cache EnrichmentCache, logger *log.Logger) *CachingEnricher {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &CachingEnricher{base: base, cache: cache, logger: logger}
}

func (c *CachingEnricher) Enrich(ctx context.Context, id string) (Enrichment, error) {
	if c.cache != nil {
		e, ok, err := c.cache.Get(ctx, id)
		if err != nil {
			c.logger.WithError(err).WithField("id", id).Warn("enrichment cache read failed")
		} else if ok {
			return e, nil
		}
	}

	e, err := c.base.Enrich(ctx, id)
	if err != nil || e.Kind != Enriched || c.cache == nil {
		return e, err
	}

	if err := c.cache.Set(ctx, id, e); err != nil {
		c.logger.WithError(err).WithField("id", id).Warn("enrichment cache write failed")
	}
	return e, nil
}
