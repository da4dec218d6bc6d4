package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hearthplan/diy-backend/internal/generation/domain"
)

const (
	previewKeyPrefix = "gen:preview:"
	previewTTL       = time.Hour
)

// PreviewRepository stores validated candidates in Redis between the
// preview and confirm calls. Keys are scoped by user so one user cannot
// confirm another's preview.
type PreviewRepository struct {
	rdb *redis.Client
}

func NewPreviewRepository(rdb *redis.Client) *PreviewRepository {
	return &PreviewRepository{rdb: rdb}
}

func previewKey(userID, previewID string) string {
	return previewKeyPrefix + userID + ":" + previewID
}

// Put stores a candidate and returns its preview id. The entry expires
// after an hour; unconfirmed previews simply vanish.
func (r *PreviewRepository) Put(ctx context.Context, userID string, candidate *domain.CandidateProject) (string, error) {
	id := uuid.NewString()

	data, err := json.Marshal(candidate)
	if err != nil {
		return "", fmt.Errorf("marshal preview: %w", err)
	}
	if err := r.rdb.Set(ctx, previewKey(userID, id), data, previewTTL).Err(); err != nil {
		return "", fmt.Errorf("store preview: %w", err)
	}
	return id, nil
}

// Get returns the candidate behind a preview id, or ErrPreviewNotFound if
// the id is unknown or the entry expired.
func (r *PreviewRepository) Get(ctx context.Context, userID, previewID string) (*domain.CandidateProject, error) {
	data, err := r.rdb.Get(ctx, previewKey(userID, previewID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrPreviewNotFound
		}
		return nil, fmt.Errorf("fetch preview: %w", err)
	}

	var candidate domain.CandidateProject
	if err := json.Unmarshal(data, &candidate); err != nil {
		return nil, fmt.Errorf("decode preview: %w", err)
	}
	return &candidate, nil
}

// Delete removes a preview after confirmation.
func (r *PreviewRepository) Delete(ctx context.Context, userID, previewID string) error {
	return r.rdb.Del(ctx, previewKey(userID, previewID)).Err()
}
