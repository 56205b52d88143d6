package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/idilsaglam/ohmyblood/internal/entry"
	"github.com/idilsaglam/ohmyblood/internal/store"
)

// field order; hand is a toggle, not a text input
const (
	fSys = iota
	fDia
	fHR
	fHand
	fDate
	fNote
	fieldCount
)

var fieldLabels = [fieldCount]string{"Systolic", "Diastolic", "Heart Rate", "Hand", "Date", "Note"}

type formView struct {
	inputs   [fieldCount]textinput.Model
	leftHand bool
	focus    int
	loc      *time.Location
	err      string
}

func newFormView(now time.Time, loc *time.Location) formView {
	f := formView{leftHand: true, loc: loc}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = fieldLabels[i]
		ti.CharLimit = 4
		f.inputs[i] = ti
	}
	f.inputs[fDate].CharLimit = len(entry.DateLayout)
	f.inputs[fDate].SetValue(now.In(loc).Format(entry.DateLayout))
	f.inputs[fNote].CharLimit = 200
	f.inputs[fNote].Placeholder = "optional"
	return f
}

func (f *formView) focusCmd() tea.Cmd {
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.focus {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

func (f *formView) move(delta int) tea.Cmd {
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.focusCmd()
}

// draft turns the widget state into an entry.Form.
func (f *formView) draft() (entry.Form, error) {
	ts, err := entry.ParseDate(f.inputs[fDate].Value(), f.loc)
	if err != nil {
		return entry.Form{}, err
	}
	return entry.Form{
		Systolic:  f.inputs[fSys].Value(),
		Diastolic: f.inputs[fDia].Value(),
		HeartRate: f.inputs[fHR].Value(),
		LeftHand:  f.leftHand,
		Timestamp: ts,
		Note:      f.inputs[fNote].Value(),
	}, nil
}

func (a *app) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := &a.form
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			a.screen = listScreen
			return a, nil
		case "tab", "down":
			return a, f.move(1)
		case "shift+tab", "up":
			return a, f.move(-1)
		case "left", "right", " ":
			if f.focus == fHand {
				f.leftHand = !f.leftHand
				return a, nil
			}
		case "enter":
			return a, a.saveForm()
		}
	}
	if f.focus == fHand {
		return a, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if f.focus <= fHR {
		v := f.inputs[f.focus].Value()
		if clean := entry.DigitsOnly(v); clean != v {
			f.inputs[f.focus].SetValue(clean)
		}
	}
	return a, cmd
}

// saveForm submits the draft. Any failure, including a store error, keeps
// the form open with the message shown.
func (a *app) saveForm() tea.Cmd {
	f := &a.form
	d, err := f.draft()
	if err != nil {
		f.err = err.Error()
		return nil
	}
	if !d.CanSave() {
		f.err = "systolic, diastolic and heart rate are required"
		return nil
	}
	r, err := entry.Submit(a.opt.Store, d, a.opt.Clock)
	if err != nil {
		var se *store.Error
		if errors.As(err, &se) {
			a.opt.Logger.Error("save reading", "err", err)
		}
		f.err = err.Error()
		return nil
	}
	a.screen = listScreen
	a.setStatus("saved "+r.Timestamp.In(f.loc).Format(entry.DateLayout), false)
	return nil
}

func (f formView) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add Blood Pressure") + "\n\n")
	for i := 0; i < fieldCount; i++ {
		label := fieldLabels[i]
		if i == f.focus {
			label = accentStyle.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		b.WriteString(label + "\n")
		if i == fHand {
			active := 1
			if f.leftHand {
				active = 0
			}
			b.WriteString(tabs([]string{"Left", "Right"}, active) + "\n\n")
			continue
		}
		b.WriteString(f.inputs[i].View() + "\n\n")
	}
	if f.err != "" {
		b.WriteString(errorStyle.Render("✖ "+f.err) + "\n")
	}
	save := "enter save"
	if !f.canSave() {
		save = "enter save (fill sys/dia/hr first)"
	}
	b.WriteString(helpStyle.Render("tab next · shift+tab prev · ←/→ hand · " + save + " · esc cancel"))
	return b.String()
}

func (f formView) canSave() bool {
	return entry.Form{
		Systolic:  f.inputs[fSys].Value(),
		Diastolic: f.inputs[fDia].Value(),
		HeartRate: f.inputs[fHR].Value(),
	}.CanSave()
}
