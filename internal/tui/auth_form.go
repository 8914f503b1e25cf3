package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldEmail = iota
	fieldPassword
	fieldName
)

// authForm is the sign-in form; in sign-up mode it also asks for a name.
type authForm struct {
	inputs     []textinput.Model
	focus      int
	signUp     bool
	submitting bool
	errMsg     string
	fieldErrs  map[string]string
}

func newAuthForm() authForm {
	email := textinput.New()
	email.Placeholder = "you@university.edu"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	name := textinput.New()
	name.Placeholder = "full name"
	name.CharLimit = 100
	name.Width = 40

	return authForm{inputs: []textinput.Model{email, password, name}}
}

func (f authForm) fieldCount() int {
	if f.signUp {
		return 3
	}
	return 2
}

func (f *authForm) toggleMode() {
	f.signUp = !f.signUp
	f.errMsg = ""
	f.fieldErrs = nil
	if f.focus >= f.fieldCount() {
		f.setFocus(0)
	}
}

func (f *authForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *authForm) focusNext() {
	f.setFocus((f.focus + 1) % f.fieldCount())
}

func (f *authForm) focusPrev() {
	f.setFocus((f.focus - 1 + f.fieldCount()) % f.fieldCount())
}

func (f authForm) values() (email, password, name string) {
	return strings.TrimSpace(f.inputs[fieldEmail].Value()),
		f.inputs[fieldPassword].Value(),
		strings.TrimSpace(f.inputs[fieldName].Value())
}

// failed keeps the typed values and clears only the password.
func (f *authForm) failed(message string, fields map[string]string) {
	f.submitting = false
	f.errMsg = message
	f.fieldErrs = fields
	f.inputs[fieldPassword].SetValue("")
}

func (f authForm) update(msg tea.Msg) (authForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f authForm) View() string {
	var b strings.Builder
	title := "Sign in"
	if f.signUp {
		title = "Create account"
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	labels := []string{"Email   ", "Password", "Name    "}
	names := []string{"email", "password", "name"}
	for i := 0; i < f.fieldCount(); i++ {
		b.WriteString(labels[i] + " [" + f.inputs[i].View() + "]\n")
		if msg, ok := f.fieldErrs[names[i]]; ok {
			b.WriteString("         " + errorStyle.Render(msg) + "\n")
		}
	}

	if f.submitting {
		b.WriteString("\nSigning in...\n")
	}
	if f.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(f.errMsg) + "\n")
	}

	mode := "ctrl+n create account"
	if f.signUp {
		mode = "ctrl+n back to sign in"
	}
	b.WriteString("\n" + helpStyle.Render("tab next field  enter submit  "+mode+"  esc back"))
	return b.String()
}
