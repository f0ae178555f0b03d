package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/openticket/openticket/internal/client/client"
	"github.com/openticket/openticket/internal/client/services"
)

type fieldSpec struct {
	label       string
	placeholder string
	secret      bool
	limit       int
}

// form is a vertical stack of text inputs. enter advances to the next field
// and submits on the last one.
type form struct {
	title  string
	hint   string
	labels []string
	inputs []textinput.Model
	focus  int
	err    string
	notice string
	busy   bool

	// tabMoves lets tab/shift+tab move between fields. Panel forms leave
	// tab to the panel stack.
	tabMoves bool
}

func newForm(title string, tabMoves bool, specs ...fieldSpec) *form {
	f := &form{title: title, tabMoves: tabMoves}
	for i, s := range specs {
		in := textinput.New()
		in.Prompt = "> "
		in.Placeholder = s.placeholder
		if s.limit > 0 {
			in.CharLimit = s.limit
		}
		if s.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		if i == 0 {
			in.Focus()
		}
		f.labels = append(f.labels, s.label)
		f.inputs = append(f.inputs, in)
	}
	return f
}

func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

func (f *form) move(dir int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + dir + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// Update feeds msg to the form. It reports true when the user submitted.
// While a submission is in flight all input is ignored.
func (f *form) Update(msg tea.Msg) (bool, tea.Cmd) {
	if f.busy {
		return false, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			if f.focus == len(f.inputs)-1 {
				f.busy = true
				f.err = ""
				return true, nil
			}
			f.move(1)
			return false, nil
		case "down":
			f.move(1)
			return false, nil
		case "up":
			f.move(-1)
			return false, nil
		case "tab", "shift+tab":
			if f.tabMoves {
				if msg.String() == "tab" {
					f.move(1)
				} else {
					f.move(-1)
				}
				return false, nil
			}
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return false, cmd
}

func (f *form) fail(err error) {
	f.busy = false
	f.err = errorText(err)
}

func (f *form) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n")
	if f.notice != "" {
		b.WriteString(noticeStyle.Render(f.notice))
		b.WriteString("\n")
	}
	for i, in := range f.inputs {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(f.labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if f.busy {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("working…"))
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(f.err))
		b.WriteString("\n")
	}
	if f.hint != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(f.hint))
	}
	return b.String()
}

// errorText turns an error from the services into a line for the user.
func errorText(err error) string {
	var formErr *services.FormError
	if errors.As(err, &formErr) {
		msgs := make([]string, 0, len(formErr.Fields))
		for _, f := range formErr.Fields {
			msgs = append(msgs, services.FieldMessage(f))
		}
		return strings.Join(msgs, "; ")
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	if errors.Is(err, client.ErrUnavailable) {
		return "server unavailable, try again later"
	}
	return err.Error()
}
