// Package wizard is the reference terminal widget layer over an engine.
// It renders one section at a time with a tab header, writes every edit
// straight through to the engine, and leaves validation, navigation
// gating, and submission entirely to it. Hosts embed Model in their own
// bubbletea program or hand the terminal over with Run.
package wizard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/formflow-dev/formflow/pkg/engine"
	"github.com/formflow-dev/formflow/pkg/schema"
)

// SubmitMsg is emitted after a submission attempt succeeds. Values is
// the snapshot the engine handed to the submit callback.
type SubmitMsg struct {
	Values schema.Values
}

// CancelMsg is emitted when the user cancels the form.
type CancelMsg struct{}

const (
	buttonSubmit = 0
	buttonCancel = 1
)

// Model drives one form engine. Values, errors, touched marks, and the
// active section all live in the engine; the model only tracks focus
// and terminal size. Update returns the concrete type so hosts that
// embed the model keep it without asserting.
type Model struct {
	eng *engine.Engine

	width  int
	height int

	// focusedField indexes the active section's field list.
	// -1 means the button row is focused.
	focusedField int

	// focusedButton is buttonSubmit or buttonCancel, meaningful only
	// while focusedField is -1.
	focusedButton int

	done bool
}

// New builds a wizard over the given engine. Focus starts on the first
// field of the active section, or on the submit button when the section
// has none.
func New(eng *engine.Engine) Model {
	m := Model{eng: eng}
	m.focusedField = firstFocus(m.activeFields())
	return m
}

// SetSize fixes the terminal dimensions, for hosts that size the wizard
// themselves instead of forwarding WindowSizeMsg.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Engine returns the engine the wizard renders.
func (m Model) Engine() *engine.Engine { return m.eng }

// Done reports whether the wizard has finished, by submission or by
// cancellation. The engine's submit state tells the two apart.
func (m Model) Done() bool { return m.done }

func (m Model) Init() tea.Cmd { return nil }

// Update handles one message and returns the advanced model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case SubmitMsg, CancelMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.cancel()
	case tea.KeyCtrlS:
		return m.submit()
	case tea.KeyTab, tea.KeyDown:
		return m.focusNext(), nil
	case tea.KeyShiftTab, tea.KeyUp:
		return m.focusPrev(), nil
	case tea.KeyPgDown:
		return m.nextSection(), nil
	case tea.KeyPgUp:
		return m.previousSection(), nil
	case tea.KeyEnter:
		return m.enter()
	case tea.KeyLeft:
		return m.left(), nil
	case tea.KeyRight:
		return m.right(), nil
	case tea.KeySpace:
		return m.space(), nil
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		return m.backspace(), nil
	case tea.KeyRunes:
		return m.insert(string(msg.Runes)), nil
	}
	return m, nil
}

// activeSection returns the engine's active section.
func (m Model) activeSection() schema.Section {
	sec, _ := m.eng.Schema().Section(m.eng.ActiveSectionID())
	return sec
}

func (m Model) activeFields() []schema.Field {
	return m.activeSection().Fields
}

// focusedFieldDef returns the field under the cursor, if any.
func (m Model) focusedFieldDef() (schema.Field, bool) {
	fields := m.activeFields()
	if m.focusedField < 0 || m.focusedField >= len(fields) {
		return schema.Field{}, false
	}
	return fields[m.focusedField], true
}

func firstFocus(fields []schema.Field) int {
	if len(fields) == 0 {
		return -1
	}
	return 0
}

// blurFocused tells the engine the focused field lost focus. That is
// the validate-on-blur hook, so it runs on every focus move.
func (m Model) blurFocused() {
	if f, ok := m.focusedFieldDef(); ok {
		m.eng.Blur(f.Name)
	}
}

// focusNext cycles focus forward: fields in order, then the submit
// button, then cancel, then back to the first field.
func (m Model) focusNext() Model {
	fields := m.activeFields()
	if len(fields) == 0 {
		m.focusedButton = (m.focusedButton + 1) % 2
		return m
	}
	switch {
	case m.focusedField >= 0 && m.focusedField < len(fields)-1:
		m.blurFocused()
		m.focusedField++
	case m.focusedField == len(fields)-1:
		m.blurFocused()
		m.focusedField = -1
		m.focusedButton = buttonSubmit
	case m.focusedButton == buttonSubmit:
		m.focusedButton = buttonCancel
	default:
		m.focusedField = 0
		m.focusedButton = buttonSubmit
	}
	return m
}

// focusPrev cycles focus backward, wrapping from the first field to the
// cancel button.
func (m Model) focusPrev() Model {
	fields := m.activeFields()
	if len(fields) == 0 {
		m.focusedButton = (m.focusedButton + 1) % 2
		return m
	}
	switch {
	case m.focusedField > 0:
		m.blurFocused()
		m.focusedField--
	case m.focusedField == 0:
		m.blurFocused()
		m.focusedField = -1
		m.focusedButton = buttonCancel
	case m.focusedButton == buttonCancel:
		m.focusedButton = buttonSubmit
	default:
		m.focusedField = len(fields) - 1
	}
	return m
}

// nextSection asks the engine to advance. The engine validates the
// active section first when gating is on; a refused move leaves the
// stored errors for the view to show.
func (m Model) nextSection() Model {
	before := m.eng.ActiveSectionID()
	m.blurFocused()
	m.eng.Next()
	if m.eng.ActiveSectionID() != before {
		m.focusedField = firstFocus(m.activeFields())
		m.focusedButton = buttonSubmit
	}
	return m
}

func (m Model) previousSection() Model {
	before := m.eng.ActiveSectionID()
	m.eng.Previous()
	if m.eng.ActiveSectionID() != before {
		m.focusedField = firstFocus(m.activeFields())
		m.focusedButton = buttonSubmit
	}
	return m
}

// enter advances field focus, or activates the focused button.
func (m Model) enter() (Model, tea.Cmd) {
	if m.focusedField >= 0 {
		return m.focusNext(), nil
	}
	if m.focusedButton == buttonCancel {
		return m.cancel()
	}
	return m.submit()
}

// submit runs one submission attempt. On failure the engine has stored
// the errors and the view shows them; no message is emitted. On success
// the emitted SubmitMsg carries the submitted values, captured before
// the engine applies any reset-on-submit policy.
func (m Model) submit() (Model, tea.Cmd) {
	values := m.eng.Values()
	if err := m.eng.Submit(context.Background()); err != nil {
		return m, nil
	}
	return m, func() tea.Msg { return SubmitMsg{Values: values} }
}

func (m Model) cancel() (Model, tea.Cmd) {
	m.eng.Cancel()
	return m, func() tea.Msg { return CancelMsg{} }
}

// left cycles a choice field backward, or moves button focus.
func (m Model) left() Model {
	if m.focusedField < 0 {
		m.focusedButton = buttonSubmit
		return m
	}
	if f, ok := m.focusedFieldDef(); ok {
		m.cycleOption(f, -1)
	}
	return m
}

// right cycles a choice field forward, or moves button focus.
func (m Model) right() Model {
	if m.focusedField < 0 {
		m.focusedButton = buttonCancel
		return m
	}
	if f, ok := m.focusedFieldDef(); ok {
		m.cycleOption(f, +1)
	}
	return m
}

// cycleOption steps a select or radio field through its options,
// wrapping at both ends. A value matching no option snaps to the first
// option on +1 and the last on -1.
func (m Model) cycleOption(f schema.Field, step int) {
	if f.Disabled || len(f.Options) == 0 {
		return
	}
	if f.Type != schema.TypeSelect && f.Type != schema.TypeRadio {
		return
	}
	cur, _ := m.eng.Value(f.Name).(string)
	idx := -1
	for i, opt := range f.Options {
		if opt.Value == cur {
			idx = i
			break
		}
	}
	if idx < 0 && step < 0 {
		idx = len(f.Options)
	}
	next := (idx + step + len(f.Options)) % len(f.Options)
	m.eng.SetValue(f.Name, f.Options[next].Value)
}

// space toggles checkbox and boolean fields and types a space into
// text fields.
func (m Model) space() Model {
	f, ok := m.focusedFieldDef()
	if !ok || f.Disabled {
		return m
	}
	switch f.Type {
	case schema.TypeCheckbox, schema.TypeBoolean:
		on, _ := m.eng.Value(f.Name).(bool)
		m.eng.SetValue(f.Name, !on)
	default:
		return m.insert(" ")
	}
	return m
}

// insert types into the focused field. Choice and toggle fields ignore
// runes; array fields grow on "+".
func (m Model) insert(s string) Model {
	f, ok := m.focusedFieldDef()
	if !ok || f.Disabled {
		return m
	}
	switch f.Type {
	case schema.TypeSelect, schema.TypeRadio, schema.TypeCheckbox, schema.TypeBoolean:
		return m
	case schema.TypeArray:
		if s == "+" && m.eng.CanAddItem(f.Name) {
			m.eng.AppendItem(f.Name, "")
		}
		return m
	}
	cur, _ := m.eng.Value(f.Name).(string)
	m.eng.SetValue(f.Name, cur+s)
	return m
}

// backspace deletes from the focused field: the trailing byte of a text
// value, or the last item of an array field.
func (m Model) backspace() Model {
	f, ok := m.focusedFieldDef()
	if !ok || f.Disabled {
		return m
	}
	switch f.Type {
	case schema.TypeSelect, schema.TypeRadio, schema.TypeCheckbox, schema.TypeBoolean:
		return m
	case schema.TypeArray:
		if m.eng.CanRemoveItem(f.Name) {
			items, _ := m.eng.Value(f.Name).([]any)
			m.eng.RemoveItemAt(f.Name, len(items)-1)
		}
		return m
	}
	cur, _ := m.eng.Value(f.Name).(string)
	if len(cur) > 0 {
		m.eng.SetValue(f.Name, cur[:len(cur)-1])
	}
	return m
}

// runModel adapts Model to tea.Model. Bubbletea needs the interface
// return; hosts embedding Model keep the concrete one.
type runModel struct{ Model }

func (r runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := r.Model.Update(msg)
	return runModel{m}, cmd
}

// Run drives the wizard in the calling terminal until the form is
// submitted or cancelled and returns the final model. The engine's
// submit state tells the outcome.
func Run(eng *engine.Engine) (Model, error) {
	p := tea.NewProgram(runModel{New(eng)}, tea.WithAltScreen())
	out, err := p.Run()
	if err != nil {
		return Model{}, err
	}
	return out.(runModel).Model, nil
}
