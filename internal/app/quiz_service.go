package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"study-quiz-service/internal/domain"
	"study-quiz-service/internal/logger"
	"study-quiz-service/internal/scoring"
)

// SessionRepository abstracts where live attempt sessions are kept (in-memory, Redis, etc).
type SessionRepository interface {
	Save(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// ProgressRepository stores per-user attempt history.
// GetProgress returns nil without error when the user has no attempts.
type ProgressRepository interface {
	GetProgress(ctx context.Context, userID, quizID string) (*domain.QuizProgress, error)
	SaveProgress(ctx context.Context, userID string, progress domain.QuizProgress) error
}

// QuizService contains the quiz attempt use cases.
type QuizService struct {
	sessions SessionRepository
	quizzes  QuizRepository
	progress ProgressRepository
	recorder *scoring.Recorder
	now      func() time.Time
	log      *logger.Logger

	rndMu sync.Mutex
	rnd   scoring.RandSource

	// serializes the read-modify-write of progress on finish
	recordMu sync.Mutex
}

// Option configures a QuizService.
type Option func(*QuizService)

// WithClock replaces time.Now for session timing and attempt timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) { s.now = now }
}

// WithRandSource replaces the source used to draw pooled questions.
func WithRandSource(rnd scoring.RandSource) Option {
	return func(s *QuizService) { s.rnd = rnd }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *QuizService) { s.log = l }
}

func NewQuizService(sessions SessionRepository, quizzes QuizRepository, progress ProgressRepository, opts ...Option) *QuizService {
	s := &QuizService{
		sessions: sessions,
		quizzes:  quizzes,
		progress: progress,
		now:      time.Now,
		log:      logger.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.rnd == nil {
		s.rnd = scoring.NewRandSource()
	}
	s.recorder = scoring.NewRecorderWithClock(s.now)
	return s
}

// StartAttempt opens a new attempt session for userID, drawing its questions.
func (s *QuizService) StartAttempt(ctx context.Context, quizID, userID string) (domain.AttemptSession, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.AttemptSession{}, err
	}

	s.rndMu.Lock()
	questions := scoring.QuestionsForAttempt(quiz, s.rnd)
	s.rndMu.Unlock()

	session := newSessionWithClock(uuid.NewString(), userID, quiz, questions, s.now)
	s.sessions.Save(session)
	s.log.Debug("attempt started", "quizId", quizID, "userId", userID, "sessionId", session.id, "questions", len(questions))
	return session.view(), nil
}

// SubmitAnswer records an answer and returns immediate feedback for it.
// A question can be answered once per attempt.
func (s *QuizService) SubmitAnswer(_ context.Context, sessionID, userID, questionID, value string) (domain.AnswerFeedback, error) {
	session, err := s.ownedSession(sessionID, userID)
	if err != nil {
		return domain.AnswerFeedback{}, err
	}
	return session.answer(questionID, value)
}

// Finish scores the attempt, folds it into the user's progress and closes the session.
func (s *QuizService) Finish(ctx context.Context, sessionID, userID string) (domain.AttemptOutcome, error) {
	session, err := s.ownedSession(sessionID, userID)
	if err != nil {
		return domain.AttemptOutcome{}, err
	}

	snap, err := session.finish()
	if err != nil {
		return domain.AttemptOutcome{}, err
	}
	results := scoring.Aggregate(snap.questions, snap.answers)

	s.recordMu.Lock()
	progress, err := s.record(ctx, userID, session.quiz, results, snap)
	s.recordMu.Unlock()
	if err != nil {
		session.reopen()
		s.log.Error("record attempt failed", "quizId", session.quiz.ID, "userId", userID, "error", err)
		return domain.AttemptOutcome{}, err
	}

	s.sessions.Delete(sessionID)
	attempt := progress.Attempts[len(progress.Attempts)-1]
	s.log.Info("attempt recorded",
		"quizId", session.quiz.ID,
		"userId", userID,
		"attempt", attempt.AttemptNumber,
		"score", attempt.Score,
		"passed", attempt.Passed,
		"timeSpent", attempt.TimeSpent,
	)
	return domain.AttemptOutcome{Attempt: attempt, Progress: progress}, nil
}

func (s *QuizService) record(ctx context.Context, userID string, quiz domain.Quiz, results domain.ResultSet, snap sessionSnapshot) (domain.QuizProgress, error) {
	prev, err := s.progress.GetProgress(ctx, userID, quiz.ID)
	if err != nil {
		return domain.QuizProgress{}, err
	}
	progress := s.recorder.Record(prev, quiz, results, snap.answers, snap.questions, snap.elapsed)
	if err := s.progress.SaveProgress(ctx, userID, progress); err != nil {
		return domain.QuizProgress{}, err
	}
	return progress, nil
}

// Progress returns the attempt history of userID for quizID.
func (s *QuizService) Progress(ctx context.Context, userID, quizID string) (domain.QuizProgress, error) {
	progress, err := s.progress.GetProgress(ctx, userID, quizID)
	if err != nil {
		return domain.QuizProgress{}, err
	}
	if progress == nil {
		return domain.QuizProgress{}, domain.ErrProgressNotFound
	}
	return *progress, nil
}

// Abandon drops an unfinished session without recording an attempt.
func (s *QuizService) Abandon(_ context.Context, sessionID, userID string) {
	if _, err := s.ownedSession(sessionID, userID); err != nil {
		return
	}
	s.sessions.Delete(sessionID)
}

func (s *QuizService) ownedSession(sessionID, userID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if session.userID != userID {
		return nil, domain.ErrSessionForbidden
	}
	return session, nil
}
