package snake

import (
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/pflag"
)

var answerTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

func (p *Prompter) promptBool(f *pflag.Flag) (string, error) {
	def := "n"
	if v, err := ParseBool(f.DefValue); err == nil && v {
		def = "y"
	}
	result, err := p.prompt(promptui.Prompt{
		Label:     label(f) + " (y/n)",
		Default:   def,
		Templates: answerTemplates,
		Validate: func(input string) error {
			if input == "" {
				return nil
			}
			_, err := ParseBool(input)
			return err
		},
	})
	if err != nil {
		return "", err
	}
	if result == "" {
		result = def
	}
	v, _ := ParseBool(result)
	return strconv.FormatBool(v), nil
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}
