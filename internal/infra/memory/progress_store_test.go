package memory

import (
	"context"
	"testing"
	"time"

	"study-quiz-service/internal/domain"
)

func TestProgressStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewProgressStore()

	got, err := store.GetProgress(ctx, "u1", "quiz-1")
	if err != nil || got != nil {
		t.Fatalf("expected no progress, got %+v err=%v", got, err)
	}

	progress := domain.QuizProgress{
		QuizID:        "quiz-1",
		Attempts:      []domain.Attempt{{AttemptNumber: 1, Score: 80, Passed: true}},
		BestScore:     80,
		HasPassed:     true,
		LastAttemptAt: time.Unix(10, 0),
	}
	if err := store.SaveProgress(ctx, "u1", progress); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = store.GetProgress(ctx, "u1", "quiz-1")
	if err != nil || got == nil {
		t.Fatalf("expected progress, got err=%v", err)
	}
	if got.BestScore != 80 || len(got.Attempts) != 1 {
		t.Fatalf("unexpected progress %+v", got)
	}

	// other users are isolated
	if other, _ := store.GetProgress(ctx, "u2", "quiz-1"); other != nil {
		t.Fatalf("expected no progress for other user")
	}

	// returned copy does not alias stored state
	got.Attempts[0].Score = 0
	again, _ := store.GetProgress(ctx, "u1", "quiz-1")
	if again.Attempts[0].Score != 80 {
		t.Fatalf("stored progress mutated through returned value")
	}
}
