package scoring

import (
	"time"

	"github.com/google/uuid"
	"study-quiz-service/internal/domain"
)

// Recorder folds completed attempts into quiz progress.
type Recorder struct {
	now func() time.Time
}

func NewRecorder() *Recorder {
	return NewRecorderWithClock(time.Now)
}

// NewRecorderWithClock allows deterministic completion timestamps in tests.
func NewRecorderWithClock(now func() time.Time) *Recorder {
	return &Recorder{now: now}
}

// Record appends a new attempt to prev and returns the updated progress. prev
// may be nil for the first attempt; it is never modified, and the returned
// progress copies every attempt's results, question list and answers, so
// neither side sees later edits to the other. Question content (options,
// steps) is treated as read-only and not copied.
func (r *Recorder) Record(
	prev *domain.QuizProgress,
	quiz domain.Quiz,
	results domain.ResultSet,
	answers domain.AnswerMap,
	asked []domain.Question,
	timeSpent time.Duration,
) domain.QuizProgress {
	var history []domain.Attempt
	bestScore, hasPassed := 0, false
	if prev != nil {
		history = prev.Attempts
		bestScore = prev.BestScore
		hasPassed = prev.HasPassed
	}

	attempt := domain.Attempt{
		ID:            uuid.NewString(),
		AttemptNumber: len(history) + 1,
		Score:         results.Score,
		Passed:        results.Score >= quiz.PassingScore,
		CompletedAt:   r.now(),
		TimeSpent:     timeSpent,
		Results:       cloneResults(results),
		Questions:     append([]domain.Question(nil), asked...),
		Answers:       answers.Clone(),
	}

	attempts := make([]domain.Attempt, 0, len(history)+1)
	for _, a := range history {
		attempts = append(attempts, cloneAttempt(a))
	}
	attempts = append(attempts, attempt)

	if attempt.Score > bestScore || len(history) == 0 {
		bestScore = attempt.Score
	}

	return domain.QuizProgress{
		QuizID:        quiz.ID,
		Attempts:      attempts,
		BestScore:     bestScore,
		HasPassed:     hasPassed || attempt.Passed,
		LastAttemptAt: attempt.CompletedAt,
	}
}

// Rebuild derives progress from a stored attempt history in attempt order.
func Rebuild(quizID string, attempts []domain.Attempt) *domain.QuizProgress {
	if len(attempts) == 0 {
		return nil
	}
	progress := &domain.QuizProgress{
		QuizID:   quizID,
		Attempts: make([]domain.Attempt, 0, len(attempts)),
	}
	for i, a := range attempts {
		if i == 0 || a.Score > progress.BestScore {
			progress.BestScore = a.Score
		}
		progress.HasPassed = progress.HasPassed || a.Passed
		progress.LastAttemptAt = a.CompletedAt
		progress.Attempts = append(progress.Attempts, a)
	}
	return progress
}

func cloneAttempt(a domain.Attempt) domain.Attempt {
	out := a
	if a.Results != nil {
		out.Results = cloneResults(*a.Results)
	}
	out.Questions = append([]domain.Question(nil), a.Questions...)
	out.Answers = a.Answers.Clone()
	return out
}

func cloneResults(results domain.ResultSet) *domain.ResultSet {
	out := results
	out.Results = append([]domain.QuestionResult(nil), results.Results...)
	return &out
}
