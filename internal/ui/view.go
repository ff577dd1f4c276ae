package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"mkbranch/internal/branch"
	"mkbranch/internal/ui/styles"
)

var fieldLabels = map[branch.Field]string{
	branch.FieldUsername:    "Username",
	branch.FieldType:        "Type",
	branch.FieldJira:        "Issue",
	branch.FieldDescription: "Description",
}

func (d *dialog) View() tea.View {
	if d.done {
		return tea.NewView("")
	}

	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Create branch"))
	b.WriteString("\n\n")

	b.WriteString(d.renderTextField(branch.FieldUsername))
	b.WriteString("\n")
	b.WriteString(d.renderTypeField())
	b.WriteString("\n")
	b.WriteString(d.renderTextField(branch.FieldJira))
	b.WriteString("\n")
	b.WriteString(d.renderTextField(branch.FieldDescription))
	b.WriteString("\n\n")

	b.WriteString(d.renderPreview())
	b.WriteString("\n\n")

	if d.busy {
		b.WriteString(d.spin.View() + " creating branch...")
	} else {
		b.WriteString(d.renderButtons())
	}
	b.WriteString("\n\n")
	b.WriteString(styles.MutedStyle.Render("tab next field • enter create • ctrl+y copy • esc cancel"))

	return tea.NewView(styles.DialogBorder.Render(b.String()))
}

func (d *dialog) renderLabel(fld branch.Field) string {
	label := fieldLabels[fld]
	style := styles.LabelStyle
	if d.focusedField() == fld || (fld == branch.FieldType && d.focus == focusType) {
		style = styles.AccentStyle
	}
	return style.Render(padRight(label, 12))
}

func (d *dialog) renderTextField(fld branch.Field) string {
	ti := d.inputs[fld]

	// Color the content by validity. Background is never touched.
	color := styles.Field
	if !d.form.Field(fld).Valid {
		color = styles.Error
	}
	st := ti.Styles()
	st.Focused.Text = st.Focused.Text.Foreground(color)
	st.Blurred.Text = st.Blurred.Text.Foreground(color)
	ti.SetStyles(st)
	d.inputs[fld] = ti

	row := d.renderLabel(fld) + ti.View()
	if fld == branch.FieldUsername && d.readonly {
		row += styles.MutedStyle.Render("  (locked)")
	}
	return row
}

func (d *dialog) renderTypeField() string {
	var parts []string
	current := d.types.Current()
	for _, tag := range d.opts.Rules.Types() {
		switch {
		case tag == current:
			parts = append(parts, styles.AccentStyle.Render(tag))
		case d.types.filter != "" && !d.types.matches(tag):
			parts = append(parts, styles.MutedStyle.Render(tag))
		default:
			parts = append(parts, styles.FieldStyle.Render(tag))
		}
	}
	row := d.renderLabel(branch.FieldType) + strings.Join(parts, "  ")
	if d.types.filter != "" {
		row += styles.MutedStyle.Render("  /" + d.types.filter)
	}
	return row
}

func (d *dialog) renderPreview() string {
	preview := d.form.Preview()
	label := styles.LabelStyle.Render(padRight("Preview", 12))
	if preview == "" {
		return label + styles.MutedStyle.Render("(empty)")
	}
	style := styles.MutedStyle
	if d.form.Ready() {
		style = styles.SuccessStyle
	}
	row := label + style.Render(preview)
	if d.copied {
		row += styles.MutedStyle.Render("  (copied)")
	}
	return row
}

func (d *dialog) renderButtons() string {
	ready := d.form.Ready()

	create := styles.MutedStyle
	cancel := styles.LabelStyle
	if ready {
		create = styles.AccentStyle
	} else {
		cancel = styles.AccentStyle
	}
	copyStyle := styles.MutedStyle
	if ready {
		copyStyle = styles.LabelStyle
	}

	return create.Render("[ Create ]") + "  " +
		copyStyle.Render("[ Copy ]") + "  " +
		cancel.Render("[ Cancel ]")
}

func padRight(s string, width int) string {
	if lipgloss.Width(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}
