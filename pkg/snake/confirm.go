package snake

import (
	"errors"

	"github.com/manifoldco/promptui"

	"tableflip.dev/daybook/pkg/editor"
)

var _ editor.Confirmer = (*Prompter)(nil)

// Confirm asks a yes/no question. Declining or interrupting answers no.
func (p *Prompter) Confirm(title, message string) (bool, error) {
	_, err := p.prompt(promptui.Prompt{
		Label:     title + ": " + message,
		IsConfirm: true,
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort), errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		return false, nil
	default:
		return false, err
	}
}

// Password reads a masked secret.
func (p *Prompter) Password(label string) (string, error) {
	return p.prompt(promptui.Prompt{
		Label:     label,
		Mask:      '•',
		Templates: answerTemplates,
	})
}

// Text reads a line, offering def.
func (p *Prompter) Text(label, def string) (string, error) {
	result, err := p.prompt(promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
		Templates: answerTemplates,
	})
	if err != nil {
		return "", err
	}
	if result == "" {
		return def, nil
	}
	return result, nil
}
