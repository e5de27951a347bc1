package cache

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/souqtech-inc/souqtech-engine/pkg/apperrors"
	"github.com/souqtech-inc/souqtech-engine/pkg/models"
	"github.com/souqtech-inc/souqtech-engine/pkg/repositories"
)

// AffiliateCache is a cache-aside layer over stored affiliate products. The
// orchestrator consults it when the live product API fails, and writes fresh
// API results through it after successful lookups.
type AffiliateCache struct {
	repo   repositories.AffiliateRepository
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewAffiliateCache(repo repositories.AffiliateRepository, ttl time.Duration, logger *zap.Logger) *AffiliateCache {
	return &AffiliateCache{
		repo:   repo,
		ttl:    ttl,
		logger: logger.Named("affiliate_cache"),
		now:    time.Now,
	}
}

// Lookup returns the stored product matching the name if the entry is still
// within its TTL. A hit bumps the product's search counter. Stale or missing
// entries return apperrors.ErrNotFound.
func (c *AffiliateCache) Lookup(ctx context.Context, productName string) (*models.AffiliateProduct, error) {
	product, err := c.repo.FindByName(ctx, productName)
	if err != nil {
		return nil, err
	}

	if c.now().Sub(product.LastUpdated) > c.ttl {
		c.logger.Debug("cache entry expired",
			zap.String("asin", product.ASIN),
			zap.Time("last_updated", product.LastUpdated))
		return nil, apperrors.ErrNotFound
	}

	if err := c.repo.IncrementSearchCount(ctx, product.ASIN); err != nil {
		// A failed counter bump should not turn a hit into a miss.
		c.logger.Warn("failed to bump search count", zap.String("asin", product.ASIN), zap.Error(err))
	}
	return product, nil
}

// Store writes API results through to the backing table. Errors are logged
// and swallowed; caching is best effort.
func (c *AffiliateCache) Store(ctx context.Context, products []models.AffiliateProduct) {
	for i := range products {
		if products[i].ASIN == "" {
			continue
		}
		if err := c.repo.Upsert(ctx, &products[i]); err != nil {
			c.logger.Warn("failed to cache affiliate product",
				zap.String("asin", products[i].ASIN), zap.Error(err))
		}
	}
}

// IsMiss reports whether an error from Lookup means "no usable entry" rather
// than a real storage failure.
func IsMiss(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
