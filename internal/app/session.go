package app

import (
	"sync"
	"time"

	"study-quiz-service/internal/domain"
	"study-quiz-service/internal/scoring"
)

// Session is an in-memory attempt in progress.
type Session struct {
	id        string
	userID    string
	quiz      domain.Quiz
	questions []domain.Question
	startedAt time.Time
	now       func() time.Time

	mu       sync.Mutex
	answers  domain.AnswerMap
	finished bool
}

type sessionSnapshot struct {
	questions []domain.Question
	answers   domain.AnswerMap
	elapsed   time.Duration
}

// NewSession is exported for infrastructure layers and tests that need to seed sessions.
func NewSession(id, userID string, quiz domain.Quiz, questions []domain.Question) *Session {
	return newSessionWithClock(id, userID, quiz, questions, time.Now)
}

func newSessionWithClock(id, userID string, quiz domain.Quiz, questions []domain.Question, now func() time.Time) *Session {
	return &Session{
		id:        id,
		userID:    userID,
		quiz:      quiz,
		questions: questions,
		startedAt: now(),
		now:       now,
		answers:   make(domain.AnswerMap),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) UserID() string {
	return s.userID
}

func (s *Session) QuizID() string {
	return s.quiz.ID
}

// IsFinished reports whether the attempt has been scored.
func (s *Session) IsFinished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

func (s *Session) view() domain.AttemptSession {
	views := make([]domain.QuestionView, 0, len(s.questions))
	for _, q := range s.questions {
		views = append(views, q.View())
	}
	return domain.AttemptSession{
		SessionID:        s.id,
		QuizID:           s.quiz.ID,
		Title:            s.quiz.Title,
		Subject:          s.quiz.Subject,
		PassingScore:     s.quiz.PassingScore,
		TimeLimitMinutes: s.quiz.TimeLimitMinutes,
		Questions:        views,
		StartedAt:        s.startedAt,
	}
}

func (s *Session) answer(questionID, value string) (domain.AnswerFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return domain.AnswerFeedback{}, domain.ErrSessionFinished
	}
	if s.expiredLocked() {
		return domain.AnswerFeedback{}, domain.ErrTimeExpired
	}

	var question *domain.Question
	for i := range s.questions {
		if s.questions[i].ID == questionID {
			question = &s.questions[i]
			break
		}
	}
	if question == nil {
		return domain.AnswerFeedback{}, domain.ErrQuestionNotFound
	}
	// Feedback reveals the key, so an answer is final.
	if _, done := s.answers[questionID]; done {
		return domain.AnswerFeedback{}, domain.ErrAlreadyAnswered
	}

	s.answers[questionID] = value
	correct := scoring.IsCorrect(*question, value, true)
	awarded := 0
	if correct {
		awarded = question.MaxPoints()
	}
	return domain.AnswerFeedback{
		QuestionID:    questionID,
		Correct:       correct,
		Awarded:       awarded,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
		Steps:         append([]string(nil), question.Steps...),
		Answered:      len(s.answers),
		Remaining:     len(s.questions) - len(s.answers),
	}, nil
}

// finish marks the session finished and returns what is needed to score it.
func (s *Session) finish() (sessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return sessionSnapshot{}, domain.ErrSessionFinished
	}
	s.finished = true

	elapsed := s.now().Sub(s.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return sessionSnapshot{
		questions: s.questions,
		answers:   s.answers.Clone(),
		elapsed:   elapsed,
	}, nil
}

// reopen undoes finish after a failed save so the client can retry.
func (s *Session) reopen() {
	s.mu.Lock()
	s.finished = false
	s.mu.Unlock()
}

func (s *Session) expiredLocked() bool {
	if s.quiz.TimeLimitMinutes <= 0 {
		return false
	}
	limit := time.Duration(s.quiz.TimeLimitMinutes) * time.Minute
	return s.now().Sub(s.startedAt) > limit
}
