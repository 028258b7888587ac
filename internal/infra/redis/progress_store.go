package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"study-quiz-service/internal/domain"
)

// ProgressStore keeps each user's quiz progress as one JSON document:
// SET progress:{userID}:{quizID} {json}
// A zero ttl keeps progress indefinitely.
type ProgressStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProgressStore(client *redis.Client, ttl time.Duration) *ProgressStore {
	return &ProgressStore{client: client, ttl: ttl}
}

func (s *ProgressStore) GetProgress(ctx context.Context, userID, quizID string) (*domain.QuizProgress, error) {
	raw, err := s.client.Get(ctx, s.key(userID, quizID)).Bytes()
	if isMiss(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	var progress domain.QuizProgress
	if err := json.Unmarshal(raw, &progress); err != nil {
		return nil, fmt.Errorf("unmarshal progress: %w", err)
	}
	return &progress, nil
}

func (s *ProgressStore) SaveProgress(ctx context.Context, userID string, progress domain.QuizProgress) error {
	raw, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := s.client.Set(ctx, s.key(userID, progress.QuizID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (s *ProgressStore) key(userID, quizID string) string {
	return "progress:" + userID + ":" + quizID
}
