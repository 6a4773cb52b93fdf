package snake

import (
	"errors"

	"github.com/manifoldco/promptui"
	"github.com/spf13/pflag"
)

// required flags are marked with this annotation by the commands.
const requiredAnnotation = "daybook_required"

// MarkRequired makes PromptFlags reject an empty answer for the flag.
func MarkRequired(fs *pflag.FlagSet, name string) {
	_ = fs.SetAnnotation(name, requiredAnnotation, []string{"true"})
}

func (p *Prompter) promptString(f *pflag.Flag) (string, error) {
	_, required := f.Annotations[requiredAnnotation]
	result, err := p.prompt(promptui.Prompt{
		Label:     label(f),
		Default:   f.DefValue,
		AllowEdit: true,
		Templates: answerTemplates,
		Validate: func(input string) error {
			if required && input == "" && f.DefValue == "" {
				return errors.New("required")
			}
			return nil
		},
	})
	if err != nil {
		return "", err
	}
	if result == "" {
		result = f.DefValue
	}
	return result, nil
}
