package domain

import (
	"strconv"
	"strings"
	"time"
)

// QuestionType selects how a submitted answer is compared to the key.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	TrueFalse      QuestionType = "true-false"
	Numerical      QuestionType = "numerical"
	Text           QuestionType = "text"
)

// Difficulty is the authored difficulty tier of a question.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Answer is the correct answer of a question: either a text value or a number.
// It encodes as a bare JSON/YAML scalar.
type Answer struct {
	Text   string
	Number *float64
}

func TextAnswer(s string) Answer {
	return Answer{Text: s}
}

func NumberAnswer(f float64) Answer {
	return Answer{Number: &f}
}

// IsNumber reports whether the answer holds the number variant.
func (a Answer) IsNumber() bool {
	return a.Number != nil
}

// Float returns the numeric value of the answer. Text answers are parsed.
func (a Answer) Float() (float64, bool) {
	if a.Number != nil {
		return *a.Number, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(a.Text), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (a Answer) String() string {
	if a.Number != nil {
		return strconv.FormatFloat(*a.Number, 'f', -1, 64)
	}
	return a.Text
}

// Question is an authored quiz question. Questions are never mutated after loading.
type Question struct {
	ID            string       `json:"id" yaml:"id"`
	Type          QuestionType `json:"type" yaml:"type"`
	Prompt        string       `json:"prompt" yaml:"prompt"`
	Options       []string     `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer Answer       `json:"correctAnswer" yaml:"correctAnswer"`
	Explanation   string       `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Steps         []string     `json:"steps,omitempty" yaml:"steps,omitempty"`
	Difficulty    Difficulty   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Category      string       `json:"category,omitempty" yaml:"category,omitempty"`
	Points        int          `json:"points" yaml:"points"` // defaults to 1 if not positive
	TimeLimit     int          `json:"timeLimit,omitempty" yaml:"timeLimit,omitempty"`
}

// MaxPoints is the point value used for scoring.
func (q Question) MaxPoints() int {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}

// Quiz is an authored quiz. When QuestionPool and QuestionsPerAttempt are set,
// each attempt draws its questions from the pool instead of Questions.
type Quiz struct {
	ID                  string     `json:"id" yaml:"id"`
	Title               string     `json:"title" yaml:"title"`
	Description         string     `json:"description,omitempty" yaml:"description,omitempty"`
	Subject             string     `json:"subject,omitempty" yaml:"subject,omitempty"`
	Questions           []Question `json:"questions" yaml:"questions"`
	TimeLimitMinutes    int        `json:"timeLimitMinutes,omitempty" yaml:"timeLimitMinutes,omitempty"`
	PassingScore        int        `json:"passingScore" yaml:"passingScore"`
	QuestionPool        []Question `json:"questionPool,omitempty" yaml:"questionPool,omitempty"`
	QuestionsPerAttempt int        `json:"questionsPerAttempt,omitempty" yaml:"questionsPerAttempt,omitempty"`
}

// Question looks up a question by ID in both the fixed list and the pool.
func (q Quiz) Question(id string) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	for _, question := range q.QuestionPool {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}

// AnswerMap maps question IDs to submitted values. A missing key means unanswered.
type AnswerMap map[string]string

// Clone returns an independent copy.
func (m AnswerMap) Clone() AnswerMap {
	if m == nil {
		return nil
	}
	out := make(AnswerMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// QuestionResult is the scored outcome of a single question.
type QuestionResult struct {
	QuestionID    string `json:"questionId"`
	Submitted     string `json:"submitted"`
	Answered      bool   `json:"answered"`
	CorrectAnswer Answer `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Points        int    `json:"points"`
	MaxPoints     int    `json:"maxPoints"`
}

// ResultSet is the full breakdown of a scoring pass.
type ResultSet struct {
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	CorrectAnswers int              `json:"correctAnswers"`
	PointsEarned   int              `json:"pointsEarned"`
	PointsPossible int              `json:"pointsPossible"`
	Results        []QuestionResult `json:"results"`
}

// Attempt is one completed pass through a quiz.
type Attempt struct {
	ID            string        `json:"id"`
	AttemptNumber int           `json:"attemptNumber"`
	Score         int           `json:"score"`
	Passed        bool          `json:"passed"`
	CompletedAt   time.Time     `json:"completedAt"`
	TimeSpent     time.Duration `json:"timeSpent,omitempty"` // zero when not tracked
	Results       *ResultSet    `json:"results,omitempty"`
	Questions     []Question    `json:"questions,omitempty"`
	Answers       AnswerMap     `json:"answers,omitempty"`
}

// QuizProgress is the attempt history of one quiz.
type QuizProgress struct {
	QuizID        string    `json:"quizId"`
	Attempts      []Attempt `json:"attempts"`
	BestScore     int       `json:"bestScore"`
	HasPassed     bool      `json:"hasPassed"`
	LastAttemptAt time.Time `json:"lastAttemptAt"`
}

// QuestionView is a question as shown to a respondent: no key, no explanation.
type QuestionView struct {
	ID         string       `json:"id"`
	Type       QuestionType `json:"type"`
	Prompt     string       `json:"prompt"`
	Options    []string     `json:"options,omitempty"`
	Difficulty Difficulty   `json:"difficulty,omitempty"`
	Category   string       `json:"category,omitempty"`
	Points     int          `json:"points"`
	TimeLimit  int          `json:"timeLimit,omitempty"`
}

// View strips answer material from a question.
func (q Question) View() QuestionView {
	return QuestionView{
		ID:         q.ID,
		Type:       q.Type,
		Prompt:     q.Prompt,
		Options:    append([]string(nil), q.Options...),
		Difficulty: q.Difficulty,
		Category:   q.Category,
		Points:     q.MaxPoints(),
		TimeLimit:  q.TimeLimit,
	}
}

// AttemptSession describes an in-progress attempt to the client.
type AttemptSession struct {
	SessionID        string         `json:"sessionId"`
	QuizID           string         `json:"quizId"`
	Title            string         `json:"title"`
	Subject          string         `json:"subject,omitempty"`
	PassingScore     int            `json:"passingScore"`
	TimeLimitMinutes int            `json:"timeLimitMinutes,omitempty"`
	Questions        []QuestionView `json:"questions"`
	StartedAt        time.Time      `json:"startedAt"`
}

// AnswerFeedback is returned immediately after an answer is submitted.
type AnswerFeedback struct {
	QuestionID    string   `json:"questionId"`
	Correct       bool     `json:"correct"`
	Awarded       int      `json:"awarded"`
	CorrectAnswer Answer   `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
	Steps         []string `json:"steps,omitempty"`
	Answered      int      `json:"answered"`
	Remaining     int      `json:"remaining"`
}

// AttemptOutcome is the result of finishing an attempt.
type AttemptOutcome struct {
	Attempt  Attempt      `json:"attempt"`
	Progress QuizProgress `json:"progress"`
}
