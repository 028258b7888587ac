package scoring

import (
	"testing"
	"time"

	"study-quiz-service/internal/domain"
)

func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func scoredSet(score int) domain.ResultSet {
	return domain.ResultSet{Score: score, TotalQuestions: 1, Results: []domain.QuestionResult{{QuestionID: "q1"}}}
}

func TestRecordFirstAttempt(t *testing.T) {
	start := time.Date(2024, 11, 22, 9, 0, 0, 0, time.UTC)
	rec := NewRecorderWithClock(fixedClock(start))
	quiz := domain.Quiz{ID: "algebra", PassingScore: 70}

	progress := rec.Record(nil, quiz, scoredSet(100), domain.AnswerMap{"q1": "x"}, nil, 90*time.Second)

	if progress.QuizID != "algebra" || len(progress.Attempts) != 1 {
		t.Fatalf("unexpected progress: %+v", progress)
	}
	a := progress.Attempts[0]
	if a.AttemptNumber != 1 || a.Score != 100 || !a.Passed || a.ID == "" {
		t.Fatalf("unexpected attempt: %+v", a)
	}
	if !a.CompletedAt.Equal(start.Add(time.Minute)) || !progress.LastAttemptAt.Equal(a.CompletedAt) {
		t.Fatalf("expected injected completion time, got %v", a.CompletedAt)
	}
	if a.TimeSpent != 90*time.Second {
		t.Fatalf("expected time spent recorded, got %v", a.TimeSpent)
	}
	if progress.BestScore != 100 || !progress.HasPassed {
		t.Fatalf("expected best 100 and passed, got %+v", progress)
	}
}

func TestRecordRetakeHistory(t *testing.T) {
	rec := NewRecorderWithClock(fixedClock(time.Unix(0, 0)))
	quiz := domain.Quiz{ID: "chem", PassingScore: 70}

	first := rec.Record(nil, quiz, scoredSet(40), nil, nil, 0)
	if first.HasPassed || first.Attempts[0].Passed {
		t.Fatalf("expected failing first attempt, got %+v", first)
	}

	second := rec.Record(&first, quiz, scoredSet(85), nil, nil, 0)
	if second.BestScore != 85 || !second.HasPassed || len(second.Attempts) != 2 {
		t.Fatalf("unexpected progress after retake: %+v", second)
	}
	if second.Attempts[0].AttemptNumber != 1 || second.Attempts[1].AttemptNumber != 2 {
		t.Fatalf("unexpected attempt numbers: %d, %d", second.Attempts[0].AttemptNumber, second.Attempts[1].AttemptNumber)
	}
	if !second.LastAttemptAt.Equal(second.Attempts[1].CompletedAt) {
		t.Fatalf("expected last attempt time to follow newest attempt")
	}

	// prior progress untouched
	if len(first.Attempts) != 1 || first.BestScore != 40 || first.HasPassed {
		t.Fatalf("previous progress mutated: %+v", first)
	}
}

func TestRecordBestScoreMonotonicAndPassSticky(t *testing.T) {
	rec := NewRecorderWithClock(fixedClock(time.Unix(0, 0)))
	quiz := domain.Quiz{ID: "bio", PassingScore: 60}
	scores := []int{30, 75, 20, 60, 10, 95, 0}

	var progress *domain.QuizProgress
	best, passedOnce := -1, false
	for i, score := range scores {
		next := rec.Record(progress, quiz, scoredSet(score), nil, nil, 0)
		if next.BestScore < best {
			t.Fatalf("best score decreased at attempt %d: %d -> %d", i+1, best, next.BestScore)
		}
		if passedOnce && !next.HasPassed {
			t.Fatalf("pass flag reset at attempt %d", i+1)
		}
		if next.Attempts[i].AttemptNumber != i+1 {
			t.Fatalf("expected attempt number %d, got %d", i+1, next.Attempts[i].AttemptNumber)
		}
		best = next.BestScore
		passedOnce = passedOnce || score >= quiz.PassingScore
		progress = &next
	}
	if progress.BestScore != 95 || !progress.HasPassed || len(progress.Attempts) != len(scores) {
		t.Fatalf("unexpected final progress: %+v", progress)
	}
}

func TestRecordPassesAtThreshold(t *testing.T) {
	rec := NewRecorderWithClock(fixedClock(time.Unix(0, 0)))
	progress := rec.Record(nil, domain.Quiz{ID: "q", PassingScore: 70}, scoredSet(70), nil, nil, 0)
	if !progress.Attempts[0].Passed {
		t.Fatalf("expected score equal to passing score to pass")
	}
}

func TestRecordSnapshotsAreIndependent(t *testing.T) {
	rec := NewRecorderWithClock(fixedClock(time.Unix(0, 0)))
	answers := domain.AnswerMap{"q1": "a"}
	asked := []domain.Question{{ID: "q1", Prompt: "original"}}
	results := scoredSet(50)

	progress := rec.Record(nil, domain.Quiz{ID: "q"}, results, answers, asked, 0)

	answers["q1"] = "changed"
	asked[0].Prompt = "changed"
	results.Results[0].QuestionID = "changed"

	a := progress.Attempts[0]
	if a.Answers["q1"] != "a" {
		t.Fatalf("answer snapshot aliases input map")
	}
	if a.Questions[0].Prompt != "original" {
		t.Fatalf("question snapshot aliases input slice")
	}
	if a.Results.Results[0].QuestionID != "q1" {
		t.Fatalf("result snapshot aliases input results")
	}
}

func TestRecordDoesNotShareHistoryWithPrevious(t *testing.T) {
	rec := NewRecorderWithClock(fixedClock(time.Unix(0, 0)))
	quiz := domain.Quiz{ID: "q", PassingScore: 50}

	base := rec.Record(nil, quiz, scoredSet(10), nil, nil, 0)
	base.Attempts = append(make([]domain.Attempt, 0, 4), base.Attempts...)

	a := rec.Record(&base, quiz, scoredSet(20), nil, nil, 0)
	b := rec.Record(&base, quiz, scoredSet(90), nil, nil, 0)

	if a.Attempts[1].Score != 20 || b.Attempts[1].Score != 90 {
		t.Fatalf("branches share backing storage: %d, %d", a.Attempts[1].Score, b.Attempts[1].Score)
	}
	if len(base.Attempts) != 1 {
		t.Fatalf("base progress mutated")
	}
}

func TestRecordCopiesEarlierAttempts(t *testing.T) {
	rec := NewRecorderWithClock(fixedClock(time.Unix(0, 0)))
	quiz := domain.Quiz{ID: "q", PassingScore: 50}
	asked := []domain.Question{{ID: "q1"}}

	base := rec.Record(nil, quiz, scoredSet(10), domain.AnswerMap{"q1": "a"}, asked, 0)
	next := rec.Record(&base, quiz, scoredSet(20), nil, nil, 0)

	base.Attempts[0].Answers["q1"] = "changed"
	base.Attempts[0].Questions[0].ID = "changed"
	base.Attempts[0].Results.Results[0].QuestionID = "changed"
	base.Attempts[0].Results.Score = 99

	first := next.Attempts[0]
	if first.Answers["q1"] != "a" || first.Questions[0].ID != "q1" {
		t.Fatalf("earlier attempt shares answers or questions with previous progress: %+v", first)
	}
	if first.Results.Score != 10 || first.Results.Results[0].QuestionID != "q1" {
		t.Fatalf("earlier attempt shares results with previous progress: %+v", first.Results)
	}
}

func TestRebuild(t *testing.T) {
	if Rebuild("q", nil) != nil {
		t.Fatalf("expected nil progress without attempts")
	}
	t0 := time.Unix(100, 0)
	progress := Rebuild("q", []domain.Attempt{
		{AttemptNumber: 1, Score: 80, Passed: true, CompletedAt: t0},
		{AttemptNumber: 2, Score: 20, Passed: false, CompletedAt: t0.Add(time.Hour)},
	})
	if progress.BestScore != 80 || !progress.HasPassed || !progress.LastAttemptAt.Equal(t0.Add(time.Hour)) {
		t.Fatalf("unexpected rebuilt progress: %+v", progress)
	}
}
