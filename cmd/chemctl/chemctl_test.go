package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/dataset"
	"github.com/stemsi/chemistry-web/internal/service"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func bank(t *testing.T, id string) []int {
	t.Helper()
	for _, b := range dataset.Banks() {
		if b.ID == id {
			correct := make([]int, len(b.Questions))
			for i, q := range b.Questions {
				correct[i] = q.CorrectIndex
			}
			return correct
		}
	}
	t.Fatalf("bank %s not found", id)
	return nil
}

func TestRunQuizScripted(t *testing.T) {
	quiz := service.NewQuizService(dataset.Banks(), dataset.DefaultBankID, zerolog.Nop())
	correct := bank(t, "quiz5")

	answers := append([]int(nil), correct...)
	answers[2] = -1
	answers = answers[:4]

	review, err := runQuiz(quiz.NewController(), "quiz5", scriptedAsker(answers), io.Discard)
	if err != nil {
		t.Fatalf("runQuiz: %v", err)
	}
	if review.Total != 5 || review.Score != 3 {
		t.Errorf("score = %d/%d, want 3/5", review.Score, review.Total)
	}
	if review.Items[2].Answered || review.Items[4].Answered {
		t.Error("skipped questions recorded as answered")
	}
	if review.Items[2].YourAnswer != service.NotAnswered {
		t.Errorf("skipped item shows %q", review.Items[2].YourAnswer)
	}
}

func TestRunQuizUnknownBankFallsBack(t *testing.T) {
	quiz := service.NewQuizService(dataset.Banks(), dataset.DefaultBankID, zerolog.Nop())
	review, err := runQuiz(quiz.NewController(), "quiz7", scriptedAsker(nil), io.Discard)
	if err != nil {
		t.Fatalf("runQuiz: %v", err)
	}
	if review.BankID != dataset.DefaultBankID || review.Score != 0 {
		t.Errorf("review = %s %d/%d", review.BankID, review.Score, review.Total)
	}
}

func TestParseAnswers(t *testing.T) {
	got, err := parseAnswers("b, a,,D")
	if err != nil {
		t.Fatalf("parseAnswers: %v", err)
	}
	want := []int{1, 0, -1, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("answer %d = %d, want %d", i, got[i], want[i])
		}
	}

	if _, err := parseAnswers("A,E"); err == nil {
		t.Error("letter outside A-D accepted")
	}
}

func TestQuizCommandPrintsReview(t *testing.T) {
	out, err := execute(t, "quiz", "--size", "5", "--answers", "A,A,A,A,A")
	if err != nil {
		t.Fatalf("quiz: %v", err)
	}
	if !strings.Contains(out, "Score: ") || !strings.Contains(out, "/5 (") {
		t.Errorf("output missing score:\n%s", out)
	}
}

func TestElementCommand(t *testing.T) {
	out, err := execute(t, "element", "Fe")
	if err != nil {
		t.Fatalf("element: %v", err)
	}
	for _, want := range []string{"Iron (Fe)", "Atomic number", "26", "Transition metal"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "element", "--category", "noble-gas")
	if err != nil {
		t.Fatalf("element --category: %v", err)
	}
	if !strings.Contains(out, "Neon") || strings.Contains(out, "Iron") {
		t.Errorf("noble gas listing wrong:\n%s", out)
	}

	if _, err := execute(t, "element", "zzz"); err == nil {
		t.Error("search without matches succeeded")
	}
}

func TestBalanceCommand(t *testing.T) {
	out, err := execute(t, "balance", "H2 + O2", "H2O")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !strings.Contains(out, "2H₂ + O₂ → 2H₂O") {
		t.Errorf("output:\n%s", out)
	}
	if !strings.Contains(out, "H2O [H=2 O=1]") {
		t.Errorf("atom counts missing:\n%s", out)
	}

	out, err = execute(t, "balance", "NaCl", "Na + Cl2")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !strings.Contains(out, "NaCl → Na + Cl2") || !strings.Contains(out, service.SimplifiedNotice) {
		t.Errorf("fallback output:\n%s", out)
	}

	if _, err := execute(t, "balance", "  ", "H2O"); err == nil {
		t.Error("empty side accepted")
	}
	if _, err := execute(t, "balance", "H2"); err == nil {
		t.Error("missing products accepted")
	}
}

func TestLibraryCommand(t *testing.T) {
	out, err := execute(t, "library", "--file", "../../data/library.json", "--free", "free", "--category", "videos")
	if err != nil {
		t.Fatalf("library: %v", err)
	}
	if !strings.Contains(out, "Crash Course Chemistry") || !strings.Contains(out, "[FREE]") {
		t.Errorf("output:\n%s", out)
	}
	if !strings.Contains(out, "2 resources") {
		t.Errorf("count missing:\n%s", out)
	}

	out, err = execute(t, "library", "--file", "../../data/library.json", "--q", "no-such-resource")
	if err != nil {
		t.Fatalf("library: %v", err)
	}
	if !strings.Contains(out, service.LibraryNoResults) {
		t.Errorf("empty result output:\n%s", out)
	}

	if _, err := execute(t, "library", "--file", "../../data/library.json", "--free", "maybe"); err == nil {
		t.Error("invalid free filter accepted")
	}
}

func TestFactsCommand(t *testing.T) {
	out, err := execute(t, "facts")
	if err != nil {
		t.Fatalf("facts: %v", err)
	}
	if got := strings.Count(out, "\n"); got != len(dataset.Facts) {
		t.Errorf("printed %d lines, want %d", got, len(dataset.Facts))
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil || out != "chemctl dev\n" {
		t.Errorf("version = %q, %v", out, err)
	}
}
