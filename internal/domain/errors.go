package domain

import "errors"

var (
	// ErrSessionNotFound is returned when an attempt session does not exist or was already closed.
	ErrSessionNotFound = errors.New("attempt session not found")
	// ErrSessionForbidden is returned when a user acts on another user's session.
	ErrSessionForbidden = errors.New("attempt session belongs to another user")
	// ErrSessionFinished is returned when a finished attempt is modified.
	ErrSessionFinished = errors.New("attempt already finished")
	// ErrTimeExpired is returned when an answer arrives after the quiz time budget.
	ErrTimeExpired = errors.New("quiz time limit exceeded")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a submitted question ID is not part of the attempt.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrAlreadyAnswered is returned when a question whose feedback was already sent is answered again.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrAttemptConflict is returned when another writer stored the same attempt number first.
	ErrAttemptConflict = errors.New("attempt number already recorded")
	// ErrProgressNotFound indicates the user has no recorded attempts for the quiz.
	ErrProgressNotFound = errors.New("quiz progress not found")
)
