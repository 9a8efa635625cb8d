package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// TextPrompt asks for a line of text. Masked hides the answer while typing.
type TextPrompt struct {
	Label   string
	Default string
	Help    string
	Masked  bool
}

// ChoicePrompt asks the user to pick one of Choices. Selected is the index
// highlighted initially, or -1.
type ChoicePrompt struct {
	Label    string
	Choices  []string
	Selected int
	Help     string
	PageSize int
}

// Level tags a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// PromptDriver performs the terminal interaction. Swap it out in tests or to
// target a different prompt library.
type PromptDriver interface {
	Text(ctx context.Context, p TextPrompt) (string, error)
	Confirm(ctx context.Context, label string, def bool) (bool, error)
	Choose(ctx context.Context, p ChoicePrompt) (int, error)
	Notify(ctx context.Context, level Level, msg string) error
}

type surveyDriver struct {
	out    io.Writer
	errOut io.Writer
}

func newSurveyDriver() PromptDriver {
	return &surveyDriver{out: os.Stdout, errOut: os.Stderr}
}

func (d *surveyDriver) Text(ctx context.Context, p TextPrompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var prompt survey.Prompt
	if p.Masked {
		// survey does not prefill masked input.
		prompt = &survey.Password{Message: p.Label, Help: p.Help}
	} else {
		prompt = &survey.Input{Message: p.Label, Help: p.Help, Default: p.Default}
	}

	var answer string
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", surveyErr(err)
	}
	return answer, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, label string, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var answer bool
	if err := survey.AskOne(&survey.Confirm{Message: label, Default: def}, &answer); err != nil {
		return false, surveyErr(err)
	}
	return answer, nil
}

func (d *surveyDriver) Choose(ctx context.Context, p ChoicePrompt) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	if len(p.Choices) == 0 {
		return -1, errors.New("tui: nothing to choose from")
	}

	prompt := &survey.Select{Message: p.Label, Options: p.Choices, Help: p.Help}
	if p.PageSize > 0 {
		prompt.PageSize = p.PageSize
	}
	if p.Selected >= 0 && p.Selected < len(p.Choices) {
		prompt.Default = p.Selected
	}

	var index int
	if err := survey.AskOne(prompt, &index); err != nil {
		return -1, surveyErr(err)
	}
	return index, nil
}

func (d *surveyDriver) Notify(ctx context.Context, level Level, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w := d.out
	if level == LevelError {
		w = d.errOut
	}
	_, err := fmt.Fprintln(w, msg)
	return err
}

func surveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
