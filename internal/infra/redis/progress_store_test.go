package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"study-quiz-service/internal/domain"
)

func TestProgressStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewProgressStore(newClient(mr), 0)

	got, err := store.GetProgress(ctx, "u1", "quiz-1")
	if err != nil || got != nil {
		t.Fatalf("expected no progress, got %+v err=%v", got, err)
	}

	completed := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)
	progress := domain.QuizProgress{
		QuizID: "quiz-1",
		Attempts: []domain.Attempt{
			{ID: "a1", AttemptNumber: 1, Score: 40, CompletedAt: completed.Add(-time.Hour), TimeSpent: 3 * time.Minute},
			{ID: "a2", AttemptNumber: 2, Score: 85, Passed: true, CompletedAt: completed, Answers: domain.AnswerMap{"q1": "4"}},
		},
		BestScore:     85,
		HasPassed:     true,
		LastAttemptAt: completed,
	}
	if err := store.SaveProgress(ctx, "u1", progress); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("progress:u1:quiz-1") {
		t.Fatalf("expected progress key")
	}

	got, err = store.GetProgress(ctx, "u1", "quiz-1")
	if err != nil || got == nil {
		t.Fatalf("get: %v", err)
	}
	if got.BestScore != 85 || !got.HasPassed || len(got.Attempts) != 2 {
		t.Fatalf("unexpected progress %+v", got)
	}
	if !got.LastAttemptAt.Equal(completed) || got.Attempts[0].TimeSpent != 3*time.Minute {
		t.Fatalf("timestamps not preserved: %+v", got)
	}
	if got.Attempts[1].Answers["q1"] != "4" {
		t.Fatalf("answers snapshot not preserved: %+v", got.Attempts[1])
	}
}

func TestProgressStoreCorruptDocument(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	_ = mr.Set("progress:u1:quiz-1", "{not json")
	store := NewProgressStore(newClient(mr), 0)
	if _, err := store.GetProgress(context.Background(), "u1", "quiz-1"); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}
