package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"study-quiz-service/internal/catalog"
	"study-quiz-service/internal/domain"
	"study-quiz-service/internal/scoring"
)

type gradeReport struct {
	QuizID       string           `json:"quizId"`
	PassingScore int              `json:"passingScore"`
	Passed       bool             `json:"passed"`
	Result       domain.ResultSet `json:"result"`
}

// NewGradeCmd scores an answer sheet offline against a quiz catalog.
func NewGradeCmd() *cobra.Command {
	var quizFile, answersFile, quizID string
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Score a YAML answer sheet against a quiz and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			quizzes, err := catalog.LoadFile(quizFile)
			if err != nil {
				return err
			}
			quiz, err := pickQuiz(quizzes, quizID)
			if err != nil {
				return err
			}
			answers, err := readAnswers(answersFile)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), quiz, answers)
		},
	}
	cmd.Flags().StringVar(&quizFile, "quiz", "", "YAML quiz catalog")
	cmd.Flags().StringVar(&answersFile, "answers", "", "YAML map of question id to answer")
	cmd.Flags().StringVar(&quizID, "id", "", "quiz id when the catalog holds several quizzes")
	_ = cmd.MarkFlagRequired("quiz")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func pickQuiz(quizzes map[string]domain.Quiz, id string) (domain.Quiz, error) {
	if id != "" {
		quiz, ok := quizzes[id]
		if !ok {
			return domain.Quiz{}, fmt.Errorf("%w: %s", domain.ErrQuizNotFound, id)
		}
		return quiz, nil
	}
	if len(quizzes) != 1 {
		return domain.Quiz{}, fmt.Errorf("catalog holds %d quizzes; pass --id", len(quizzes))
	}
	for _, quiz := range quizzes {
		return quiz, nil
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func readAnswers(path string) (domain.AnswerMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	answers := domain.AnswerMap{}
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	return answers, nil
}

// gradedQuestions rebuilds the attempt a sheet was written against. For a quiz
// drawing fewer questions than its pool holds, that is the answered pool
// questions filled up to QuestionsPerAttempt with unanswered ones, so the score
// is out of a full attempt.
func gradedQuestions(quiz domain.Quiz, answers domain.AnswerMap) ([]domain.Question, error) {
	perAttempt := quiz.QuestionsPerAttempt
	if len(quiz.QuestionPool) == 0 || perAttempt <= 0 || perAttempt >= len(quiz.QuestionPool) {
		// no random draw on these paths
		return scoring.QuestionsForAttempt(quiz, nil), nil
	}

	var answered, unanswered []domain.Question
	for _, q := range quiz.QuestionPool {
		if _, ok := answers[q.ID]; ok {
			answered = append(answered, q)
		} else {
			unanswered = append(unanswered, q)
		}
	}
	if len(answered) > perAttempt {
		return nil, fmt.Errorf("answer sheet covers %d pool questions; attempts of %s draw %d", len(answered), quiz.ID, perAttempt)
	}
	return append(answered, unanswered[:perAttempt-len(answered)]...), nil
}

func writeReport(w io.Writer, quiz domain.Quiz, answers domain.AnswerMap) error {
	questions, err := gradedQuestions(quiz, answers)
	if err != nil {
		return err
	}
	result := scoring.Aggregate(questions, answers)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(gradeReport{
		QuizID:       quiz.ID,
		PassingScore: quiz.PassingScore,
		Passed:       result.Score >= quiz.PassingScore,
		Result:       result,
	})
}
