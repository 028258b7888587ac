package memory

import (
	"context"
	"sync"

	"study-quiz-service/internal/domain"
)

// ProgressStore keeps attempt history per user and quiz in process memory.
// Values are copied on the way in and out so callers cannot alias stored state.
type ProgressStore struct {
	mu       sync.RWMutex
	progress map[progressKey]domain.QuizProgress
}

type progressKey struct {
	userID string
	quizID string
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{progress: make(map[progressKey]domain.QuizProgress)}
}

func (s *ProgressStore) GetProgress(_ context.Context, userID, quizID string) (*domain.QuizProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.progress[progressKey{userID: userID, quizID: quizID}]
	if !ok {
		return nil, nil
	}
	out := copyProgress(p)
	return &out, nil
}

func (s *ProgressStore) SaveProgress(_ context.Context, userID string, progress domain.QuizProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[progressKey{userID: userID, quizID: progress.QuizID}] = copyProgress(progress)
	return nil
}

func copyProgress(p domain.QuizProgress) domain.QuizProgress {
	p.Attempts = append([]domain.Attempt(nil), p.Attempts...)
	return p
}
