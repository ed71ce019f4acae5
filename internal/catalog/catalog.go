// Package catalog holds the fetched problem list and the current selection.
// State is in-memory only and replaced wholesale on each load.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dojoterm-dev/dojoterm/internal/api"
)

// ErrUnknownProblem is returned when a selection targets an id that is
// not present in the currently loaded sequence.
var ErrUnknownProblem = errors.New("unknown problem id")

// Difficulty is the closed difficulty enumeration.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Difficulties lists the enumeration in display order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty maps a label onto the closed enumeration,
// case-insensitively. Unknown labels are rejected.
func ParseDifficulty(label string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", label)
	}
}

// Loader fetches the problem collection.
type Loader interface {
	Problems(ctx context.Context) ([]api.Problem, error)
}

// Store owns the loaded problem sequence and the current selection.
type Store struct {
	problems []api.Problem
	current  int // index into problems, -1 when nothing is selected

	// languages is the fixed option set for the language control.
	languages []string
}

// NewStore creates an empty Store with the given language option set.
func NewStore(languages []string) *Store {
	return &Store{
		current:   -1,
		languages: languages,
	}
}

// Load fetches the catalog and replaces the sequence wholesale, preserving
// server order and clearing any selection. On failure the prior state is
// left unchanged and the error is returned for the caller to log.
func (s *Store) Load(ctx context.Context, loader Loader) error {
	problems, err := loader.Problems(ctx)
	if err != nil {
		return fmt.Errorf("loading problems: %w", err)
	}

	s.problems = problems
	s.ClearSelection()
	return nil
}

// Problems returns the loaded sequence in server order.
func (s *Store) Problems() []api.Problem {
	return s.problems
}

// Len returns the number of loaded problems.
func (s *Store) Len() int {
	return len(s.problems)
}

// Select marks the problem with the given id as current and returns it.
// Selecting an id that is not in the loaded sequence fails with
// ErrUnknownProblem and leaves the selection unchanged.
func (s *Store) Select(id int) (api.Problem, error) {
	for i, p := range s.problems {
		if p.ID == id {
			s.current = i
			return p, nil
		}
	}
	return api.Problem{}, fmt.Errorf("%w: %d", ErrUnknownProblem, id)
}

// Current returns the selected problem, if any.
func (s *Store) Current() (api.Problem, bool) {
	if s.current < 0 || s.current >= len(s.problems) {
		return api.Problem{}, false
	}
	return s.problems[s.current], true
}

// ClearSelection drops the current pointer without touching the sequence.
func (s *Store) ClearSelection() {
	s.current = -1
}

// Languages returns the fixed language option set.
func (s *Store) Languages() []string {
	return s.languages
}

// LanguageIndex matches a problem's declared language against the option
// set, case-insensitively. When no option matches, index 0 is returned so
// the control always has a valid value.
func (s *Store) LanguageIndex(label string) int {
	for i, lang := range s.languages {
		if strings.EqualFold(lang, label) {
			return i
		}
	}
	return 0
}
