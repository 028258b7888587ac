package scoring

import (
	"math"
	"strconv"
	"strings"

	"study-quiz-service/internal/domain"
)

// NumericTolerance is the maximum absolute difference (exclusive) for a
// numerical answer to count as correct.
const NumericTolerance = 0.001

// IsCorrect reports whether submitted answers question. An unanswered question
// is never correct.
func IsCorrect(question domain.Question, submitted string, answered bool) bool {
	if !answered {
		return false
	}
	switch question.Type {
	case domain.Numerical:
		return numericMatch(question.CorrectAnswer, submitted)
	default:
		return textMatch(question.CorrectAnswer, submitted)
	}
}

// numericMatch compares within NumericTolerance. Unparseable or non-finite
// values never match.
func numericMatch(key domain.Answer, submitted string) bool {
	want, ok := key.Float()
	if !ok || !isFinite(want) {
		return false
	}
	got, err := strconv.ParseFloat(strings.TrimSpace(submitted), 64)
	if err != nil || !isFinite(got) {
		return false
	}
	return math.Abs(got-want) < NumericTolerance
}

// textMatch is a case-insensitive comparison. Surrounding whitespace is significant.
func textMatch(key domain.Answer, submitted string) bool {
	return strings.ToLower(submitted) == strings.ToLower(key.String())
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
