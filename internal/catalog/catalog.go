// Package catalog loads and validates authored quiz content.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"study-quiz-service/internal/domain"
)

// File is the on-disk layout of a quiz catalog.
type File struct {
	Quizzes []domain.Quiz `yaml:"quizzes"`
}

// LoadFile reads and validates a YAML catalog, keyed by quiz ID.
func LoadFile(path string) (map[string]domain.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. A document holding a single quiz (no
// top-level "quizzes" key) is accepted as well.
func Parse(data []byte) (map[string]domain.Quiz, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Quizzes) == 0 {
		var single domain.Quiz
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("parse quiz: %w", err)
		}
		if single.ID != "" {
			file.Quizzes = []domain.Quiz{single}
		}
	}

	out := make(map[string]domain.Quiz, len(file.Quizzes))
	for _, quiz := range file.Quizzes {
		if err := Validate(quiz); err != nil {
			return nil, err
		}
		if _, dup := out[quiz.ID]; dup {
			return nil, fmt.Errorf("quiz %s: duplicate id", quiz.ID)
		}
		out[quiz.ID] = quiz
	}
	return out, nil
}

// Validate checks the authoring rules a quiz must satisfy before it is served.
func Validate(quiz domain.Quiz) error {
	var errs []error
	if quiz.ID == "" {
		return errors.New("quiz: missing id")
	}
	if quiz.PassingScore < 0 || quiz.PassingScore > 100 {
		errs = append(errs, fmt.Errorf("passing score %d outside 0-100", quiz.PassingScore))
	}
	if quiz.QuestionsPerAttempt < 0 {
		errs = append(errs, errors.New("questions per attempt is negative"))
	}
	if len(quiz.Questions) == 0 && len(quiz.QuestionPool) == 0 {
		errs = append(errs, errors.New("no questions"))
	}

	seen := map[string]struct{}{}
	for _, set := range [][]domain.Question{quiz.Questions, quiz.QuestionPool} {
		for _, q := range set {
			if q.ID == "" {
				errs = append(errs, errors.New("question without id"))
				continue
			}
			if _, dup := seen[q.ID]; dup {
				errs = append(errs, fmt.Errorf("question %s: duplicate id", q.ID))
			}
			seen[q.ID] = struct{}{}
			if err := validateQuestion(q); err != nil {
				errs = append(errs, fmt.Errorf("question %s: %w", q.ID, err))
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("quiz %s: %w", quiz.ID, err)
	}
	return nil
}

func validateQuestion(q domain.Question) error {
	switch q.Type {
	case domain.MultipleChoice:
		if len(q.Options) == 0 {
			return errors.New("multiple-choice question without options")
		}
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer.String() {
				return nil
			}
		}
		return fmt.Errorf("correct answer %q is not one of the options", q.CorrectAnswer.String())
	case domain.TrueFalse:
		switch q.CorrectAnswer.String() {
		case "true", "false", "True", "False":
			return nil
		}
		return fmt.Errorf("true-false answer %q", q.CorrectAnswer.String())
	case domain.Numerical:
		if _, ok := q.CorrectAnswer.Float(); !ok {
			return fmt.Errorf("numerical answer %q is not a number", q.CorrectAnswer.String())
		}
	case domain.Text:
		if q.CorrectAnswer.String() == "" {
			return errors.New("text question without answer")
		}
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	return nil
}
