// Package prompt provides step confirmation for the migration runner.
// Confirmers are plain values passed through Options; there is no
// process-wide interactive/test toggle.
package prompt

import (
	"context"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// Confirmer answers a yes/no question before a migration step applies.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// Interactive asks the operator on the terminal.
type Interactive struct{}

func (Interactive) Confirm(ctx context.Context, question string) (bool, error) {
	result, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		Show(question)
	if err != nil {
		return false, errors.Errorf("reading confirmation: %w", err)
	}
	return result, nil
}

// Auto answers every question the same way. Auto(true) backs --yes,
// Auto(false) backs dry runs that still exercise the confirm path.
type Auto bool

func (a Auto) Confirm(ctx context.Context, question string) (bool, error) {
	return bool(a), nil
}

// Scripted replays a fixed list of answers, for tests. Running out of
// answers is an error rather than an implicit no.
type Scripted struct {
	Answers []bool
	next    int
}

func (s *Scripted) Confirm(ctx context.Context, question string) (bool, error) {
	if s.next >= len(s.Answers) {
		return false, errors.Errorf("no scripted answer left for question %d", s.next+1)
	}
	answer := s.Answers[s.next]
	s.next++
	return answer, nil
}
