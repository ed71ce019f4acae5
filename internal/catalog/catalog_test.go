package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/dojoterm-dev/dojoterm/internal/api"
)

type fakeLoader struct {
	problems []api.Problem
	err      error
}

func (f *fakeLoader) Problems(context.Context) ([]api.Problem, error) {
	return f.problems, f.err
}

func sampleProblems() []api.Problem {
	return []api.Problem{
		{ID: 3, Title: "Reverse String", Difficulty: "Easy", Language: "Python"},
		{ID: 1, Title: "Two Sum", Difficulty: "Easy", Language: "Python"},
		{ID: 7, Title: "LRU Cache", Difficulty: "Hard", Language: "Java"},
	}
}

func TestStoreLoadPreservesServerOrder(t *testing.T) {
	store := NewStore([]string{"python", "java"})
	if err := store.Load(context.Background(), &fakeLoader{problems: sampleProblems()}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := store.Problems()
	if len(got) != 3 {
		t.Fatalf("expected 3 problems, got %d", len(got))
	}
	wantIDs := []int{3, 1, 7}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("problems[%d].ID: got %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestStoreLoadFailureKeepsPriorState(t *testing.T) {
	store := NewStore(nil)
	if err := store.Load(context.Background(), &fakeLoader{problems: sampleProblems()}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := store.Select(1); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	loadErr := errors.New("boom")
	if err := store.Load(context.Background(), &fakeLoader{err: loadErr}); !errors.Is(err, loadErr) {
		t.Fatalf("expected wrapped load error, got %v", err)
	}

	if store.Len() != 3 {
		t.Errorf("prior sequence should be kept on failure, got len %d", store.Len())
	}
	if current, ok := store.Current(); !ok || current.ID != 1 {
		t.Errorf("prior selection should be kept on failure, got %v ok=%v", current, ok)
	}
}

func TestStoreSelectUnknownID(t *testing.T) {
	store := NewStore(nil)
	if err := store.Load(context.Background(), &fakeLoader{problems: sampleProblems()}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := store.Select(99); !errors.Is(err, ErrUnknownProblem) {
		t.Fatalf("expected ErrUnknownProblem, got %v", err)
	}
	if _, ok := store.Current(); ok {
		t.Error("failed select must not change the selection")
	}
}

func TestStoreSelectReplacesCurrent(t *testing.T) {
	store := NewStore(nil)
	if err := store.Load(context.Background(), &fakeLoader{problems: sampleProblems()}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := store.Select(3); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if _, err := store.Select(7); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	current, ok := store.Current()
	if !ok || current.ID != 7 {
		t.Errorf("expected current problem 7, got %v ok=%v", current, ok)
	}
}

func TestStoreLoadClearsSelection(t *testing.T) {
	store := NewStore(nil)
	loader := &fakeLoader{problems: sampleProblems()}
	if err := store.Load(context.Background(), loader); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := store.Select(1); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if err := store.Load(context.Background(), loader); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if _, ok := store.Current(); ok {
		t.Error("reload must clear the selection")
	}
}

func TestClearSelectionDropsCurrent(t *testing.T) {
	store := NewStore(nil)
	if err := store.Load(context.Background(), &fakeLoader{problems: sampleProblems()}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := store.Select(1); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	store.ClearSelection()

	if _, ok := store.Current(); ok {
		t.Error("ClearSelection must drop the current pointer")
	}
	if store.Len() != 3 {
		t.Errorf("ClearSelection must not touch the sequence, got len %d", store.Len())
	}
}

func TestLanguageIndexCaseInsensitive(t *testing.T) {
	store := NewStore([]string{"python", "java"})

	if idx := store.LanguageIndex("Python"); idx != 0 {
		t.Errorf("LanguageIndex(Python): got %d, want 0", idx)
	}
	if idx := store.LanguageIndex("JAVA"); idx != 1 {
		t.Errorf("LanguageIndex(JAVA): got %d, want 1", idx)
	}
	if idx := store.LanguageIndex("cobol"); idx != 0 {
		t.Errorf("LanguageIndex(cobol): got %d, want fallback 0", idx)
	}
}

func TestParseDifficulty(t *testing.T) {
	cases := []struct {
		in   string
		want Difficulty
		ok   bool
	}{
		{"Easy", Easy, true},
		{"medium", Medium, true},
		{" HARD ", Hard, true},
		{"extreme", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDifficulty(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseDifficulty(%q): got %q, %v", tc.in, got, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseDifficulty(%q): expected error", tc.in)
		}
	}
}
