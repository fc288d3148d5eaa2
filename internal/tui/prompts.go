package tui

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	stackerrors "stacktrain.dev/stacktrain/internal/errors"
	"stacktrain.dev/stacktrain/internal/train"
)

// checkInteractiveAllowed returns an error when no operator can answer a prompt
func checkInteractiveAllowed() error {
	if !Interactive() {
		return stackerrors.ErrInteractiveDisabled
	}
	return nil
}

// TerminalPrompter asks questions on the controlling terminal.
type TerminalPrompter struct{}

var _ train.Prompter = TerminalPrompter{}

// Confirm prompts the user for yes/no confirmation
func (TerminalPrompter) Confirm(prompt string, defaultValue bool) (bool, error) {
	return PromptConfirm(prompt, defaultValue)
}

// PromptConfirm prompts the user for yes/no confirmation
func PromptConfirm(prompt string, defaultValue bool) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	answer := defaultValue
	err := survey.AskOne(&survey.Confirm{Message: prompt, Default: defaultValue}, &answer)
	if errors.Is(err, terminal.InterruptErr) {
		return false, errors.New("canceled")
	}
	if err != nil {
		return false, err
	}
	return answer, nil
}
