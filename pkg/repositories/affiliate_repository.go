package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/souqtech-inc/souqtech-engine/pkg/apperrors"
	"github.com/souqtech-inc/souqtech-engine/pkg/database"
	"github.com/souqtech-inc/souqtech-engine/pkg/models"
)

// AffiliateRepository persists marketplace product details fetched from the
// product API so repeat queries can be served without another upstream call.
type AffiliateRepository interface {
	Upsert(ctx context.Context, product *models.AffiliateProduct) error
	GetByASIN(ctx context.Context, asin string) (*models.AffiliateProduct, error)
	FindByName(ctx context.Context, name string) (*models.AffiliateProduct, error)
	IncrementSearchCount(ctx context.Context, asin string) error
}

type affiliateRepository struct {
	db *database.DB
}

func NewAffiliateRepository(db *database.DB) AffiliateRepository {
	return &affiliateRepository{db: db}
}

var _ AffiliateRepository = (*affiliateRepository)(nil)

const affiliateColumns = `
	asin, product_name, COALESCE(price, ''), COALESCE(image_url, ''),
	detail_page_url, rating, review_count, is_prime, is_fulfilled_by_amazon,
	click_count, search_count, last_updated`

func (r *affiliateRepository) Upsert(ctx context.Context, product *models.AffiliateProduct) error {
	if r.db == nil {
		return nil
	}

	product.LastUpdated = time.Now()

	_, err := r.db.Exec(ctx, `
		INSERT INTO affiliate_products (
			asin, product_name, price, image_url, detail_page_url,
			rating, review_count, is_prime, is_fulfilled_by_amazon,
			click_count, search_count, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, 1, $10)
		ON CONFLICT (asin) DO UPDATE SET
			product_name = EXCLUDED.product_name,
			price = EXCLUDED.price,
			image_url = EXCLUDED.image_url,
			detail_page_url = EXCLUDED.detail_page_url,
			rating = EXCLUDED.rating,
			review_count = EXCLUDED.review_count,
			is_prime = EXCLUDED.is_prime,
			is_fulfilled_by_amazon = EXCLUDED.is_fulfilled_by_amazon,
			search_count = affiliate_products.search_count + 1,
			last_updated = EXCLUDED.last_updated`,
		product.ASIN, product.ProductName,
		nullIfEmpty(product.Price), nullIfEmpty(product.ImageURL),
		product.DetailPageURL, product.Rating, product.ReviewCount,
		product.IsPrime, product.IsFulfilledByAmazon, product.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert affiliate product: %w", err)
	}
	return nil
}

func (r *affiliateRepository) GetByASIN(ctx context.Context, asin string) (*models.AffiliateProduct, error) {
	if r.db == nil {
		return nil, apperrors.ErrNotFound
	}

	row := r.db.QueryRow(ctx, `
		SELECT `+affiliateColumns+`
		FROM affiliate_products
		WHERE asin = $1`, asin)
	return scanAffiliate(row)
}

// FindByName matches on a case-insensitive substring of the stored product
// name, preferring the most recently refreshed row.
func (r *affiliateRepository) FindByName(ctx context.Context, name string) (*models.AffiliateProduct, error) {
	if r.db == nil {
		return nil, apperrors.ErrNotFound
	}

	row := r.db.QueryRow(ctx, `
		SELECT `+affiliateColumns+`
		FROM affiliate_products
		WHERE product_name ILIKE '%' || $1 || '%'
		ORDER BY last_updated DESC
		LIMIT 1`, name)
	return scanAffiliate(row)
}

func (r *affiliateRepository) IncrementSearchCount(ctx context.Context, asin string) error {
	if r.db == nil {
		return nil
	}

	_, err := r.db.Exec(ctx, `
		UPDATE affiliate_products
		SET search_count = search_count + 1
		WHERE asin = $1`, asin)
	if err != nil {
		return fmt.Errorf("failed to increment search count: %w", err)
	}
	return nil
}

func scanAffiliate(row pgx.Row) (*models.AffiliateProduct, error) {
	var p models.AffiliateProduct
	err := row.Scan(
		&p.ASIN, &p.ProductName, &p.Price, &p.ImageURL,
		&p.DetailPageURL, &p.Rating, &p.ReviewCount,
		&p.IsPrime, &p.IsFulfilledByAmazon,
		&p.ClickCount, &p.SearchCount, &p.LastUpdated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan affiliate product: %w", err)
	}
	return &p, nil
}
