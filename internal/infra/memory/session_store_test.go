package memory

import (
	"testing"

	"study-quiz-service/internal/app"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()
	quiz := sampleQuiz()

	session := app.NewSession("s-1", "u1", quiz, quiz.Questions)
	store.Save(session)

	got, ok := store.Get("s-1")
	if !ok || got != session {
		t.Fatalf("expected stored session")
	}
	if got.UserID() != "u1" || got.QuizID() != "quiz-1" {
		t.Fatalf("unexpected session owner/quiz: %s %s", got.UserID(), got.QuizID())
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", store.Len())
	}

	store.Delete("s-1")
	if _, ok := store.Get("s-1"); ok {
		t.Fatalf("expected session removed")
	}
}
