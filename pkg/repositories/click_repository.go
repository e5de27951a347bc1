package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/souqtech-inc/souqtech-engine/pkg/database"
	"github.com/souqtech-inc/souqtech-engine/pkg/models"
)

// ClickRepository records outbound shopping-link clicks.
type ClickRepository interface {
	Track(ctx context.Context, event *models.ClickEvent) error
}

type clickRepository struct {
	db *database.DB
}

func NewClickRepository(db *database.DB) ClickRepository {
	return &clickRepository{db: db}
}

var _ ClickRepository = (*clickRepository)(nil)

func (r *clickRepository) Track(ctx context.Context, event *models.ClickEvent) error {
	if r.db == nil {
		return nil
	}

	event.ClickedAt = time.Now()

	_, err := r.db.Exec(ctx, `
		INSERT INTO click_tracking (
			id, asin, product_name, affiliate_url, user_session_id,
			ip_address, user_agent, referrer, language, clicked_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.New(), nullIfEmpty(event.ASIN), nullIfEmpty(event.ProductName),
		event.AffiliateURL, nullIfEmpty(event.UserSessionID),
		nullIfEmpty(event.IPAddress), nullIfEmpty(event.UserAgent),
		nullIfEmpty(event.Referrer), nullIfEmpty(event.Language), event.ClickedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}

	// Click counters on cached affiliate products feed the popularity
	// ordering in analytics; only ASIN-bearing clicks can be attributed.
	if event.ASIN != "" {
		if _, err := r.db.Exec(ctx, `SELECT increment_click_count($1)`, event.ASIN); err != nil {
			return fmt.Errorf("failed to increment click count: %w", err)
		}
	}
	return nil
}
