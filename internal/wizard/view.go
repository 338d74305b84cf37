package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/formflow-dev/formflow/pkg/engine"
	"github.com/formflow-dev/formflow/pkg/schema"
)

// View renders the tab header, the active section's fields, the button
// row, the submit status, and the key help.
func (m Model) View() string {
	if m.done {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = 80
	}

	sec := m.activeSection()
	secState, _ := m.eng.SectionState(sec.ID)

	var b strings.Builder
	b.WriteString(m.renderHeader(width))
	b.WriteString("\n\n")

	title := sec.Label
	if title == "" {
		title = sec.ID
	}
	b.WriteString("  " + sectionTitleStyle.Render(title) + "\n")
	if sec.Description != "" {
		b.WriteString("  " + descStyle.Render(sec.Description) + "\n")
	}
	if secState.Error != "" {
		b.WriteString("  " + fieldErrStyle.Render(secState.Error) + "\n")
	}
	b.WriteString("\n")

	for i, f := range sec.Fields {
		for _, line := range m.renderField(i, f) {
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n" + m.renderButtons() + "\n")
	if status := m.renderStatus(); status != "" {
		b.WriteString("\n  " + status + "\n")
	}
	b.WriteString("\n" + m.renderFooter(width))

	out := appStyle.Render(b.String())
	if m.height > 0 {
		out = clipHeight(out, m.height)
	}
	return out
}

// renderHeader draws the app name on the left and the section tabs on
// the right, each tab carrying its completion badge.
func (m Model) renderHeader(width int) string {
	secs := m.eng.Schema().Sections()
	tabs := make([]string, 0, len(secs))
	for i, sec := range secs {
		st, _ := m.eng.SectionState(sec.ID)
		title := sec.Label
		if title == "" {
			title = sec.ID
		}
		label := fmt.Sprintf("%d:%s %s", i+1, title, sectionBadge(st))
		if st.Active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	left := headerAppStyle.Render("formflow")
	right := tabSepStyle.Render(" ") + strings.Join(tabs, tabSepStyle.Render("│"))
	right = ansi.Truncate(right, max(1, width), "")
	leftW := ansi.StringWidth(left)
	rightW := ansi.StringWidth(right)
	gap := 1
	if leftW+rightW+1 < width {
		gap = width - leftW - rightW
	}
	return renderBar(headerBarStyle, max(1, width), left+strings.Repeat(" ", gap)+right)
}

// sectionBadge condenses a section's progress into a checkmark once the
// section is complete and clean, and a percentage otherwise.
func sectionBadge(st engine.SectionState) string {
	if st.Valid && st.Completion >= 100 {
		return "✓"
	}
	return fmt.Sprintf("%.0f%%", st.Completion)
}

// renderField draws one field line plus, when present, its error or
// help line.
func (m Model) renderField(i int, f schema.Field) []string {
	st, _ := m.eng.FieldState(f.Name)
	focused := i == m.focusedField

	cursor := "  "
	if focused {
		cursor = cursorStyle.Render("> ")
	}

	title := f.Label
	if title == "" {
		title = f.Name
	}
	label := labelStyle.Render(title)
	if st.Disabled {
		label = disabledStyle.Render(title)
	}

	lines := []string{cursor + label + " " + m.renderValue(f, st, focused)}
	switch {
	case st.Error != "":
		lines = append(lines, "    "+fieldErrStyle.Render(st.Error))
	case focused && f.HelpText != "":
		lines = append(lines, "    "+helpTextStyle.Render(f.HelpText))
	}
	return lines
}

// renderValue draws a field's current value in its type's shape.
func (m Model) renderValue(f schema.Field, st engine.FieldState, focused bool) string {
	switch f.Type {
	case schema.TypeCheckbox, schema.TypeBoolean:
		if on, _ := st.Value.(bool); on {
			return "[x]"
		}
		return "[ ]"
	case schema.TypeSelect:
		return "‹ " + optionLabel(f, st.Value) + " ›"
	case schema.TypeRadio:
		return renderRadio(f, st.Value)
	case schema.TypeArray:
		return renderArray(st.Value)
	}

	s := stringValue(st.Value)
	if f.Type == schema.TypePassword {
		s = strings.Repeat("•", len([]rune(s)))
	}
	if s == "" && f.Placeholder != "" && !focused {
		return placeholderStyle.Render(f.Placeholder)
	}
	if focused && !st.Disabled {
		return s + cursorStyle.Render("█")
	}
	return s
}

// optionLabel resolves the stored value to its option label.
func optionLabel(f schema.Field, v any) string {
	cur := stringValue(v)
	for _, opt := range f.Options {
		if opt.Value == cur {
			if opt.Label != "" {
				return opt.Label
			}
			return opt.Value
		}
	}
	if cur == "" {
		return "(none)"
	}
	return cur
}

func renderRadio(f schema.Field, v any) string {
	cur := stringValue(v)
	parts := make([]string, 0, len(f.Options))
	for _, opt := range f.Options {
		mark := "( )"
		if opt.Value == cur {
			mark = "(•)"
		}
		title := opt.Label
		if title == "" {
			title = opt.Value
		}
		parts = append(parts, mark+" "+title)
	}
	return strings.Join(parts, "  ")
}

func renderArray(v any) string {
	items, _ := v.([]any)
	if len(items) == 0 {
		return "(no items)"
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = stringValue(it)
	}
	return strings.Join(parts, ", ")
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func (m Model) renderButtons() string {
	submit := blurredButtonStyle.Render("[ Submit ]")
	cancel := blurredButtonStyle.Render("[ Cancel ]")
	if m.focusedField < 0 {
		if m.focusedButton == buttonSubmit {
			submit = focusedButtonStyle.Render("[ Submit ]")
		} else {
			cancel = focusedButtonStyle.Render("[ Cancel ]")
		}
	}
	return "  " + submit + "  " + cancel
}

// renderStatus surfaces the submission outcome: the general error after
// a failed attempt, a success note, or the open error count.
func (m Model) renderStatus() string {
	switch {
	case m.eng.GeneralError() != "":
		return statusErrStyle.Render(m.eng.GeneralError())
	case m.eng.SubmitState() == engine.SubmitSucceeded:
		return statusOKStyle.Render("Submitted.")
	case !m.eng.IsValid():
		return statusErrStyle.Render(fmt.Sprintf("%d validation error(s)", len(m.eng.Errors())))
	}
	return ""
}

func (m Model) renderFooter(width int) string {
	bindings := []struct{ key, desc string }{
		{"tab", "field"},
		{"pgup/pgdn", "section"},
		{"enter", "next"},
		{"ctrl+s", "submit"},
		{"esc", "cancel"},
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, footerKeyStyle.Render(b.key)+footerBarStyle.Render(" ")+footerDescStyle.Render(b.desc))
	}
	return renderBar(footerBarStyle, max(1, width), strings.Join(parts, footerBarStyle.Render("  ")))
}

// renderBar squeezes a line onto one full-width styled row.
func renderBar(style lipgloss.Style, width int, line string) string {
	line = ansi.Truncate(strings.ReplaceAll(line, "\n", " "), width, "")
	lineW := ansi.StringWidth(line)
	if lineW < width {
		line += strings.Repeat(" ", width-lineW)
	}
	return style.Width(width).MaxWidth(width).Render(line)
}

func clipHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
