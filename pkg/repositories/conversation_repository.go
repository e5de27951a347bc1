package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/souqtech-inc/souqtech-engine/pkg/database"
	"github.com/souqtech-inc/souqtech-engine/pkg/models"
)

// ConversationRepository provides data access for conversation records.
// When the store is unconfigured (nil DB), writes are silent no-ops and
// reads return empty defaults - the system runs fully without a database.
type ConversationRepository interface {
	Save(ctx context.Context, conv *models.Conversation) (*models.Conversation, error)
	GetRecent(ctx context.Context, limit int) ([]models.Conversation, error)
	GetStats(ctx context.Context) (models.ConversationStats, error)
	TrackComparison(ctx context.Context, product1, product2 string) error
}

type conversationRepository struct {
	db *database.DB
}

// NewConversationRepository creates a new ConversationRepository. A nil db
// produces the no-op behavior described on the interface.
func NewConversationRepository(db *database.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

var _ ConversationRepository = (*conversationRepository)(nil)

func (r *conversationRepository) Save(ctx context.Context, conv *models.Conversation) (*models.Conversation, error) {
	if r.db == nil {
		return nil, nil
	}

	if conv.ID == uuid.Nil {
		conv.ID = uuid.New()
	}
	conv.CreatedAt = time.Now()

	var pricesJSON []byte
	if conv.Prices != nil {
		var err error
		pricesJSON, err = json.Marshal(conv.Prices)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal prices: %w", err)
		}
	}

	query := `
		INSERT INTO conversations (
			id, query, response, language, image_url, prices,
			user_ip, user_agent, user_session_id, comparison_query, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		conv.ID, conv.Query, conv.Response, conv.Language,
		nullIfEmpty(conv.ImageURL), pricesJSON,
		nullIfEmpty(conv.UserIP), nullIfEmpty(conv.UserAgent),
		nullIfEmpty(conv.UserSessionID), conv.ComparisonQuery, conv.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save conversation: %w", err)
	}

	return conv, nil
}

func (r *conversationRepository) GetRecent(ctx context.Context, limit int) ([]models.Conversation, error) {
	if r.db == nil {
		return []models.Conversation{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, query, response, language,
		       COALESCE(image_url, ''), prices,
		       COALESCE(user_ip, ''), COALESCE(user_agent, ''),
		       COALESCE(user_session_id, ''), comparison_query, created_at
		FROM conversations
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversations: %w", err)
	}
	defer rows.Close()

	conversations := []models.Conversation{}
	for rows.Next() {
		var conv models.Conversation
		var pricesJSON []byte
		if err := rows.Scan(
			&conv.ID, &conv.Query, &conv.Response, &conv.Language,
			&conv.ImageURL, &pricesJSON,
			&conv.UserIP, &conv.UserAgent,
			&conv.UserSessionID, &conv.ComparisonQuery, &conv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		if len(pricesJSON) > 0 {
			if err := json.Unmarshal(pricesJSON, &conv.Prices); err != nil {
				return nil, fmt.Errorf("failed to unmarshal prices: %w", err)
			}
		}
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}

func (r *conversationRepository) GetStats(ctx context.Context) (models.ConversationStats, error) {
	if r.db == nil {
		return models.ConversationStats{}, nil
	}

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE language = 'ar'),
		       COUNT(*) FILTER (WHERE language = 'en')
		FROM conversations`

	var stats models.ConversationStats
	err := r.db.QueryRow(ctx, query).Scan(&stats.Total, &stats.Arabic, &stats.English)
	if err != nil {
		return models.ConversationStats{}, fmt.Errorf("failed to fetch conversation stats: %w", err)
	}
	return stats, nil
}

// TrackComparison upserts a head-to-head pairing, treating (a,b) and (b,a)
// as the same matchup.
func (r *conversationRepository) TrackComparison(ctx context.Context, product1, product2 string) error {
	if r.db == nil {
		return nil
	}

	query := `
		SELECT id, comparison_count FROM product_comparisons
		WHERE (product1_name = $1 AND product2_name = $2)
		   OR (product1_name = $2 AND product2_name = $1)`

	var id uuid.UUID
	var count int
	err := r.db.QueryRow(ctx, query, product1, product2).Scan(&id, &count)
	switch {
	case err == pgx.ErrNoRows:
		_, err = r.db.Exec(ctx, `
			INSERT INTO product_comparisons (id, product1_name, product2_name, comparison_count, last_compared)
			VALUES ($1, $2, $3, 1, now())`,
			uuid.New(), product1, product2)
		if err != nil {
			return fmt.Errorf("failed to create comparison record: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to look up comparison record: %w", err)
	default:
		_, err = r.db.Exec(ctx, `
			UPDATE product_comparisons
			SET comparison_count = comparison_count + 1, last_compared = now()
			WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to update comparison record: %w", err)
		}
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
