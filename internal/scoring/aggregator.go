package scoring

import (
	"math"

	"study-quiz-service/internal/domain"
)

// Aggregate scores every question against answers. Unanswered questions count
// as incorrect. A question set worth zero points scores 0.
func Aggregate(questions []domain.Question, answers domain.AnswerMap) domain.ResultSet {
	set := domain.ResultSet{
		TotalQuestions: len(questions),
		Results:        make([]domain.QuestionResult, 0, len(questions)),
	}

	for _, q := range questions {
		submitted, answered := answers[q.ID]
		maxPoints := q.MaxPoints()
		correct := IsCorrect(q, submitted, answered)

		awarded := 0
		if correct {
			awarded = maxPoints
			set.CorrectAnswers++
		}
		set.PointsEarned += awarded
		set.PointsPossible += maxPoints

		set.Results = append(set.Results, domain.QuestionResult{
			QuestionID:    q.ID,
			Submitted:     submitted,
			Answered:      answered,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
			Points:        awarded,
			MaxPoints:     maxPoints,
		})
	}

	set.Score = Percentage(set.PointsEarned, set.PointsPossible)
	return set
}

// Percentage rounds earned/possible to a whole percent, halves rounding up.
func Percentage(earned, possible int) int {
	if possible <= 0 {
		return 0
	}
	pct := float64(earned) / float64(possible) * 100
	return int(math.Floor(pct + 0.5))
}
