package adapters

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"cookbook-cleanup/internal/ports"
)

// ConfirmPromptAdapter asks the operator before destructive actions. Without
// a terminal on stdin it declines unless AssumeYes is set.
type ConfirmPromptAdapter struct {
	AssumeYes   bool
	Input       *os.File
	Output      io.Writer
	Interactive func(fd int) bool
}

func NewConfirmPromptAdapter(assumeYes bool) ConfirmPromptAdapter {
	return ConfirmPromptAdapter{
		AssumeYes:   assumeYes,
		Input:       os.Stdin,
		Output:      os.Stderr,
		Interactive: term.IsTerminal,
	}
}

func (a ConfirmPromptAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if a.AssumeYes {
		return true, nil
	}
	input := a.Input
	if input == nil {
		input = os.Stdin
	}
	interactive := a.Interactive
	if interactive == nil {
		interactive = term.IsTerminal
	}
	if !interactive(int(input.Fd())) {
		log.Ctx(ctx).Warn().Msg("stdin is not a terminal; pass --yes to confirm deletions")
		return false, nil
	}
	output := a.Output
	if output == nil {
		output = os.Stderr
	}
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithInput(input).WithOutput(output)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("confirmation prompt failed").
			WithCause(err)
	}
	return confirmed, nil
}

var _ ports.ConfirmPort = ConfirmPromptAdapter{}
