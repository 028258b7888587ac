// Package scoring implements quiz attempt scoring: question selection, answer
// evaluation, score aggregation and attempt history bookkeeping. Every function
// is pure apart from the injected random source and clock.
package scoring

import (
	"math/rand"
	"time"

	"study-quiz-service/internal/domain"
)

// RandSource yields uniform integers in [0, n). *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// NewRandSource returns a time-seeded source for production use.
func NewRandSource() RandSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// SelectRandomQuestions returns min(len(pool), count) questions drawn uniformly
// from pool. When the pool fits, it is copied in its original order.
func SelectRandomQuestions(pool []domain.Question, count int, rnd RandSource) []domain.Question {
	if count < 0 {
		count = 0
	}
	out := make([]domain.Question, len(pool))
	copy(out, pool)
	if len(out) <= count {
		return out
	}

	// Fisher-Yates; only the first count slots need to be settled.
	for i := 0; i < count; i++ {
		j := i + rnd.Intn(len(out)-i)
		out[i], out[j] = out[j], out[i]
	}
	return out[:count:count]
}

// QuestionsForAttempt picks the questions a new attempt of quiz will show: a
// random draw when the quiz sets a per-attempt count, otherwise the fixed list,
// or the whole pool in order when the quiz only has a pool.
func QuestionsForAttempt(quiz domain.Quiz, rnd RandSource) []domain.Question {
	if len(quiz.QuestionPool) > 0 && quiz.QuestionsPerAttempt > 0 {
		return SelectRandomQuestions(quiz.QuestionPool, quiz.QuestionsPerAttempt, rnd)
	}
	source := quiz.Questions
	if len(source) == 0 {
		source = quiz.QuestionPool
	}
	out := make([]domain.Question, len(source))
	copy(out, source)
	return out
}
