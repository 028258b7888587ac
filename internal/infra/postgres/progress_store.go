package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"study-quiz-service/internal/domain"
	"study-quiz-service/internal/scoring"
)

// attemptRow is one completed attempt. Progress is never stored directly; it is
// rebuilt from the ordered attempt rows.
type attemptRow struct {
	bun.BaseModel `bun:"table:quiz_attempts"`

	ID            string            `bun:"id,pk"`
	UserID        string            `bun:"user_id,notnull"`
	QuizID        string            `bun:"quiz_id,notnull"`
	AttemptNumber int               `bun:"attempt_number,notnull"`
	Score         int               `bun:"score,notnull"`
	Passed        bool              `bun:"passed,notnull"`
	CompletedAt   time.Time         `bun:"completed_at,notnull"`
	TimeSpentMS   int64             `bun:"time_spent_ms,notnull"`
	Results       *domain.ResultSet `bun:"results,type:jsonb"`
	Questions     []domain.Question `bun:"questions,type:jsonb"`
	Answers       domain.AnswerMap  `bun:"answers,type:jsonb"`
}

// ProgressStore persists attempt history in Postgres through bun.
type ProgressStore struct {
	db *bun.DB
}

func NewProgressStore(db *bun.DB) *ProgressStore {
	return &ProgressStore{db: db}
}

func (s *ProgressStore) GetProgress(ctx context.Context, userID, quizID string) (*domain.QuizProgress, error) {
	var rows []attemptRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Where("quiz_id = ?", quizID).
		Order("attempt_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select attempts: %w", err)
	}

	attempts := make([]domain.Attempt, 0, len(rows))
	for _, row := range rows {
		attempts = append(attempts, row.attempt())
	}
	return scoring.Rebuild(quizID, attempts), nil
}

// SaveProgress stores the newest attempt of progress; earlier attempts are
// already rows. If another writer recorded the same attempt number first,
// ErrAttemptConflict is returned and nothing is written.
func (s *ProgressStore) SaveProgress(ctx context.Context, userID string, progress domain.QuizProgress) error {
	if len(progress.Attempts) == 0 {
		return nil
	}
	row := newAttemptRow(userID, progress.QuizID, progress.Attempts[len(progress.Attempts)-1])
	res, err := s.db.NewInsert().
		Model(&row).
		On("CONFLICT (user_id, quiz_id, attempt_number) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("attempt %d of %s: %w", row.AttemptNumber, progress.QuizID, domain.ErrAttemptConflict)
	}
	return nil
}

func newAttemptRow(userID, quizID string, a domain.Attempt) attemptRow {
	return attemptRow{
		ID:            a.ID,
		UserID:        userID,
		QuizID:        quizID,
		AttemptNumber: a.AttemptNumber,
		Score:         a.Score,
		Passed:        a.Passed,
		CompletedAt:   a.CompletedAt,
		TimeSpentMS:   a.TimeSpent.Milliseconds(),
		Results:       a.Results,
		Questions:     a.Questions,
		Answers:       a.Answers,
	}
}

func (r attemptRow) attempt() domain.Attempt {
	return domain.Attempt{
		ID:            r.ID,
		AttemptNumber: r.AttemptNumber,
		Score:         r.Score,
		Passed:        r.Passed,
		CompletedAt:   r.CompletedAt,
		TimeSpent:     time.Duration(r.TimeSpentMS) * time.Millisecond,
		Results:       r.Results,
		Questions:     r.Questions,
		Answers:       r.Answers,
	}
}
