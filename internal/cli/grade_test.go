package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const gradeQuiz = `
quizzes:
  - id: chem
    title: Chemistry
    passingScore: 70
    questions:
      - id: c1
        type: multiple-choice
        options: [H2O, CO2]
        correctAnswer: H2O
        points: 5
      - id: c2
        type: numerical
        correctAnswer: 6.022
        points: 5
      - id: c3
        type: true-false
        correctAnswer: false
        points: 10
`

func TestGradeCommand(t *testing.T) {
	dir := t.TempDir()
	quizPath := writeFile(t, dir, "quiz.yaml", gradeQuiz)
	answersPath := writeFile(t, dir, "answers.yaml", "c1: h2o\nc2: 6.0225\n")

	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"grade", "--quiz", quizPath, "--answers", answersPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("grade: %v", err)
	}

	var report gradeReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out.String())
	}
	if report.Result.Score != 50 || report.Passed || report.Result.CorrectAnswers != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Result.Results[2].Answered {
		t.Fatalf("expected c3 unanswered")
	}
}

func TestGradeCommandNeedsIDForMultipleQuizzes(t *testing.T) {
	dir := t.TempDir()
	quizPath := writeFile(t, dir, "quiz.yaml", gradeQuiz+`
  - id: other
    passingScore: 10
    questions:
      - {id: o1, type: text, correctAnswer: x}
`)
	answersPath := writeFile(t, dir, "answers.yaml", "o1: x\n")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"grade", "--quiz", quizPath, "--answers", answersPath})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error without --id")
	}

	out := &bytes.Buffer{}
	cmd = newRootCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"grade", "--quiz", quizPath, "--answers", answersPath, "--id", "other"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("grade with id: %v", err)
	}
	var report gradeReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Result.Score != 100 || !report.Passed {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestGradePooledQuizScoresAnsweredPoolQuestions(t *testing.T) {
	dir := t.TempDir()
	quizPath := writeFile(t, dir, "quiz.yaml", `
id: pool
passingScore: 50
questionsPerAttempt: 2
questionPool:
  - {id: p1, type: text, correctAnswer: a}
  - {id: p2, type: text, correctAnswer: b}
  - {id: p3, type: text, correctAnswer: c}
`)
	answersPath := writeFile(t, dir, "answers.yaml", "p1: a\np3: x\n")

	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"grade", "--quiz", quizPath, "--answers", answersPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("grade: %v", err)
	}
	var report gradeReport
	_ = json.Unmarshal(out.Bytes(), &report)
	if report.Result.TotalQuestions != 2 || report.Result.Score != 50 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestGradePooledQuizScoresFullAttempt(t *testing.T) {
	dir := t.TempDir()
	quizPath := writeFile(t, dir, "quiz.yaml", `
id: pool
passingScore: 50
questionsPerAttempt: 2
questionPool:
  - {id: p1, type: text, correctAnswer: a}
  - {id: p2, type: text, correctAnswer: b}
  - {id: p3, type: text, correctAnswer: c}
`)

	// one correct answer out of a two-question attempt
	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"grade", "--quiz", quizPath, "--answers", writeFile(t, dir, "one.yaml", "p3: c\n")})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("grade: %v", err)
	}
	var report gradeReport
	_ = json.Unmarshal(out.Bytes(), &report)
	if report.Result.TotalQuestions != 2 || report.Result.Score != 50 {
		t.Fatalf("expected 50 out of a full attempt, got %+v", report.Result)
	}

	cmd = newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"grade", "--quiz", quizPath, "--answers", writeFile(t, dir, "all.yaml", "p1: a\np2: b\np3: c\n")})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for a sheet answering more than one attempt draws")
	}
}

func TestGradePoolOnlyQuiz(t *testing.T) {
	dir := t.TempDir()
	quizPath := writeFile(t, dir, "quiz.yaml", `
id: drill
passingScore: 50
questionPool:
  - {id: p1, type: text, correctAnswer: a}
  - {id: p2, type: text, correctAnswer: b}
`)
	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"grade", "--quiz", quizPath, "--answers", writeFile(t, dir, "answers.yaml", "p1: a\n")})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("grade: %v", err)
	}
	var report gradeReport
	_ = json.Unmarshal(out.Bytes(), &report)
	if report.Result.TotalQuestions != 2 || report.Result.Score != 50 {
		t.Fatalf("expected the whole pool graded, got %+v", report.Result)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
