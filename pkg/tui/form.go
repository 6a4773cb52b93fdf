package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/daybook/pkg/tui/theme"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldToggle
	fieldSelect
)

type option struct {
	value string
	label string
}

// field is one row of a form: a text input, an on/off toggle or a choice.
type field struct {
	label   string
	kind    fieldKind
	input   textinput.Model
	on      bool
	options []option
	index   int
}

func newTextField(label, value, placeholder string) *field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.SetValue(value)
	return &field{label: label, kind: fieldText, input: ti}
}

func newSecretField(label string) *field {
	f := newTextField(label, "", "")
	f.input.EchoMode = textinput.EchoPassword
	return f
}

func newToggleField(label string, on bool) *field {
	return &field{label: label, kind: fieldToggle, on: on}
}

func newSelectField(label string, options []option, value string) *field {
	f := &field{label: label, kind: fieldSelect, options: options}
	for i, o := range options {
		if o.value == value {
			f.index = i
		}
	}
	return f
}

func (f *field) value() string {
	switch f.kind {
	case fieldSelect:
		if len(f.options) == 0 {
			return ""
		}
		return f.options[f.index].value
	case fieldToggle:
		if f.on {
			return "yes"
		}
		return "no"
	default:
		return f.input.Value()
	}
}

func (f *field) display() string {
	switch f.kind {
	case fieldSelect:
		if len(f.options) == 0 {
			return "(none)"
		}
		return "‹ " + f.options[f.index].label + " ›"
	case fieldToggle:
		if f.on {
			return "[x]"
		}
		return "[ ]"
	default:
		return f.input.View()
	}
}

// form is a vertical list of fields with one focused row and an inline
// error line.
type form struct {
	title  string
	fields []*field
	focus  int
	err    string
	info   string
}

func newForm(title string, fields ...*field) *form {
	return &form{title: title, fields: fields}
}

func (f *form) field(label string) *field {
	for _, fl := range f.fields {
		if fl.label == label {
			return fl
		}
	}
	return nil
}

func (f *form) value(label string) string {
	if fl := f.field(label); fl != nil {
		return fl.value()
	}
	return ""
}

func (f *form) setValue(label, value string) {
	if fl := f.field(label); fl != nil && fl.kind == fieldText {
		fl.input.SetValue(value)
	}
}

// focusCurrent blurs every text input except the focused one.
func (f *form) focusCurrent() tea.Cmd {
	var cmd tea.Cmd
	for i, fl := range f.fields {
		if fl.kind != fieldText {
			continue
		}
		if i == f.focus {
			cmd = fl.input.Focus()
		} else {
			fl.input.Blur()
		}
	}
	return cmd
}

func (f *form) move(delta int) tea.Cmd {
	n := len(f.fields)
	if n == 0 {
		return nil
	}
	f.focus = (f.focus + delta + n) % n
	return f.focusCurrent()
}

// update routes a key to the focused field. Navigation keys move focus.
func (f *form) update(msg tea.KeyPressMsg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	cur := f.fields[f.focus]
	switch msg.String() {
	case "tab", "down":
		return f.move(1)
	case "shift+tab", "up":
		return f.move(-1)
	}

	switch cur.kind {
	case fieldToggle:
		switch msg.String() {
		case "space", "left", "right":
			cur.on = !cur.on
		}
		return nil
	case fieldSelect:
		if len(cur.options) == 0 {
			return nil
		}
		switch msg.String() {
		case "space", "right":
			cur.index = (cur.index + 1) % len(cur.options)
		case "left":
			cur.index = (cur.index - 1 + len(cur.options)) % len(cur.options)
		}
		return nil
	}

	var cmd tea.Cmd
	cur.input, cmd = cur.input.Update(msg)
	return cmd
}

func (f *form) view(th theme.Theme, help string) string {
	width := 0
	for _, fl := range f.fields {
		if len(fl.label) > width {
			width = len(fl.label)
		}
	}
	lines := []string{th.Modal.Title.Render(f.title), ""}
	for i, fl := range f.fields {
		marker := "  "
		if i == f.focus {
			marker = "› "
		}
		label := th.Modal.Label.Render(fl.label + strings.Repeat(" ", width-len(fl.label)))
		lines = append(lines, marker+label+"  "+fl.display())
	}
	if f.err != "" {
		lines = append(lines, "", th.Footer.Alert.Render(f.err))
	}
	if f.info != "" {
		lines = append(lines, "", th.Modal.Body.Render(f.info))
	}
	if help != "" {
		lines = append(lines, "", th.Footer.Help.Render(help))
	}
	return th.Modal.Frame.Render(strings.Join(lines, "\n"))
}
