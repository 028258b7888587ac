package redis

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"study-quiz-service/internal/app"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), time.Minute)
	quiz := sampleQuiz()

	store.Save(app.NewSession("s-1", "u1", quiz, quiz.Questions))
	if !mr.Exists("quiz:session:s-1") {
		t.Fatalf("expected redis key to be set")
	}
	if v, _ := mr.Get("quiz:session:s-1"); v != "u1" {
		t.Fatalf("expected marker to hold the user id, got %q", v)
	}
	if _, ok := store.Get("s-1"); !ok {
		t.Fatalf("expected live session")
	}

	store.Delete("s-1")
	if mr.Exists("quiz:session:s-1") {
		t.Fatalf("expected redis key to be removed")
	}
	if _, ok := store.Get("s-1"); ok {
		t.Fatalf("expected session removed")
	}
}

func TestSessionStoreDropsExpiredSessions(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), time.Minute)
	quiz := sampleQuiz()
	store.Save(app.NewSession("s-1", "u1", quiz, quiz.Questions))

	mr.FastForward(30 * time.Second)
	if _, ok := store.Get("s-1"); !ok {
		t.Fatalf("expected session alive before ttl")
	}
	// the Get above slid the expiry forward
	mr.FastForward(45 * time.Second)
	if _, ok := store.Get("s-1"); !ok {
		t.Fatalf("expected sliding expiry to keep session alive")
	}

	mr.FastForward(2 * time.Minute)
	if _, ok := store.Get("s-1"); ok {
		t.Fatalf("expected expired session to be dropped")
	}
}
