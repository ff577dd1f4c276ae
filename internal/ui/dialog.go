package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/colorprofile"

	"mkbranch/internal/branch"
	"mkbranch/internal/config"
	"mkbranch/internal/form"
	"mkbranch/internal/log"
	"mkbranch/internal/runner"
	"mkbranch/internal/ui/styles"
)

// Outcome describes how the dialog finished.
type Outcome int

const (
	// OutcomeCancelled means the user closed the dialog without
	// creating a branch.
	OutcomeCancelled Outcome = iota

	// OutcomeCreated means the branch creation command ran and
	// succeeded.
	OutcomeCreated

	// OutcomeFailed means the branch creation command ran and failed.
	OutcomeFailed

	// OutcomeTimedOut means the dialog closed after the configured
	// inactivity period.
	OutcomeTimedOut
)

// Result is what the dialog produced.
type Result struct {
	Outcome    Outcome
	BranchName string
	Command    runner.Result // set for OutcomeCreated and OutcomeFailed
}

// Options configures the dialog.
type Options struct {
	Config *config.Config
	Rules  *branch.Rules
	Runner *runner.Runner

	// Pre-filled field values, already normalized by the caller.
	Username    string
	Type        string
	Jira        string
	Description string
}

// focusable elements, in tab order.
const (
	focusUsername = iota
	focusType
	focusJira
	focusDescription
	focusCount
)

type taskDoneMsg struct {
	result runner.Result
}

type tickMsg time.Time

type dialog struct {
	ctx  context.Context
	opts Options
	form *form.Form

	inputs   map[branch.Field]textinput.Model
	types    *typeSelect
	focus    int
	readonly bool // username field locked

	spin spinner.Model
	busy bool
	task *runner.Task

	timeout time.Duration
	lastKey time.Time

	copied bool
	done   bool
	result Result
	width  int
}

func newDialog(ctx context.Context, opts Options) *dialog {
	f := form.New(opts.Rules)

	widths := fieldWidths(opts.Config)
	inputs := make(map[branch.Field]textinput.Model)
	for _, fld := range []branch.Field{branch.FieldUsername, branch.FieldJira, branch.FieldDescription} {
		ti := textinput.New()
		ti.CharLimit = 64
		ti.SetWidth(widths[fld])
		st := ti.Styles()
		st.Cursor.Shape = tea.CursorBar
		st.Cursor.Blink = true
		ti.SetStyles(st)
		inputs[fld] = ti
	}

	d := &dialog{
		ctx:     ctx,
		opts:    opts,
		form:    f,
		inputs:  inputs,
		types:   newTypeSelect(opts.Rules.Types()),
		spin:    newSpinner(),
		timeout: opts.Config.Timeout(),
		lastKey: time.Now(),
	}
	d.readonly = opts.Config.UsernameReadonly && opts.Username != ""

	d.setField(branch.FieldUsername, opts.Username)
	d.setField(branch.FieldJira, opts.Jira)
	d.setField(branch.FieldDescription, opts.Description)

	typ := opts.Type
	if typ == "" {
		typ = opts.Rules.DefaultType()
	}
	d.types.Select(typ)
	d.form.OnFieldChanged(branch.FieldType, d.types.Current(), len(d.types.Current()))

	d.applyCursorStart(opts.Config.CursorStart)
	return d
}

func newSpinner() spinner.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return sp
}

// setField writes a pre-filled value through the form so that the
// stored state is normalized and validated.
func (d *dialog) setField(fld branch.Field, value string) {
	st := d.form.OnFieldChanged(fld, value, len(value))
	ti := d.inputs[fld]
	ti.SetValue(st.Text)
	ti.SetCursor(st.Cursor)
	d.inputs[fld] = ti
}

// applyCursorStart moves the initial focus (and cursor, for the issue
// id field) according to the cursor_start setting.
func (d *dialog) applyCursorStart(start string) {
	switch start {
	case config.CursorUsername:
		d.focus = focusUsername
	case config.CursorType:
		d.focus = focusType
	case config.CursorJiraStart:
		d.focus = focusJira
		ti := d.inputs[branch.FieldJira]
		ti.SetCursor(0)
		d.inputs[branch.FieldJira] = ti
	case config.CursorJiraAfterDash:
		d.focus = focusJira
		ti := d.inputs[branch.FieldJira]
		if i := strings.IndexByte(ti.Value(), '-'); i >= 0 {
			ti.SetCursor(i + 1)
		}
		d.inputs[branch.FieldJira] = ti
	default:
		d.focus = focusDescription
		// An issue id that doesn't validate yet (empty, or just the
		// configured prefix) needs attention first.
		if !d.form.Field(branch.FieldJira).Valid {
			d.focus = focusJira
		}
	}
	if d.focus == focusUsername && d.readonly {
		d.focus = focusType
	}
	d.applyFocus()
}

func (d *dialog) applyFocus() {
	for fld, ti := range d.inputs {
		if d.focusedField() == fld {
			ti.Focus()
		} else {
			ti.Blur()
		}
		d.inputs[fld] = ti
	}
}

// focusedField returns the text input field under focus, or "" when
// the type selector is focused.
func (d *dialog) focusedField() branch.Field {
	switch d.focus {
	case focusUsername:
		return branch.FieldUsername
	case focusJira:
		return branch.FieldJira
	case focusDescription:
		return branch.FieldDescription
	}
	return ""
}

func (d *dialog) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if d.timeout > 0 {
		cmds = append(cmds, tick())
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (d *dialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		return d, nil

	case tickMsg:
		if d.busy {
			return d, tick()
		}
		if d.timeout > 0 && time.Since(d.lastKey) >= d.timeout {
			d.done = true
			d.result = Result{Outcome: OutcomeTimedOut}
			return d, tea.Quit
		}
		return d, tick()

	case taskDoneMsg:
		d.busy = false
		d.done = true
		outcome := OutcomeCreated
		if !msg.result.OK() {
			outcome = OutcomeFailed
		}
		d.result = Result{
			Outcome:    outcome,
			BranchName: d.form.BranchName(),
			Command:    msg.result,
		}
		return d, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		d.spin, cmd = d.spin.Update(msg)
		return d, cmd

	case tea.KeyPressMsg:
		if d.busy {
			// No cancellation path: the command runs to completion.
			return d, nil
		}
		d.lastKey = time.Now()
		return d.handleKey(msg)
	}

	return d, nil
}

func (d *dialog) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		d.done = true
		d.result = Result{Outcome: OutcomeCancelled}
		return d, tea.Quit

	case "tab":
		d.moveFocus(1)
		return d, nil

	case "shift+tab":
		d.moveFocus(-1)
		return d, nil

	case "enter":
		if d.form.DefaultAction() == form.ActionSubmit {
			return d.submit()
		}
		d.done = true
		d.result = Result{Outcome: OutcomeCancelled}
		return d, tea.Quit

	case "ctrl+y":
		d.copyToClipboard()
		return d, nil
	}

	if d.focus == focusType {
		if d.types.Handle(msg) {
			cur := d.types.Current()
			d.form.OnFieldChanged(branch.FieldType, cur, len(cur))
		}
		return d, nil
	}

	fld := d.focusedField()
	if fld == branch.FieldUsername && d.readonly {
		return d, nil
	}

	ti := d.inputs[fld]
	ti, cmd := ti.Update(msg)
	st := d.form.OnFieldChanged(fld, ti.Value(), ti.Position())
	ti.SetValue(st.Text)
	ti.SetCursor(st.Cursor)
	d.inputs[fld] = ti
	return d, cmd
}

func (d *dialog) moveFocus(delta int) {
	for {
		d.focus = (d.focus + delta + focusCount) % focusCount
		if d.focus == focusUsername && d.readonly {
			continue
		}
		break
	}
	d.applyFocus()
}

func (d *dialog) submit() (tea.Model, tea.Cmd) {
	if !d.form.Ready() || d.busy {
		return d, nil
	}
	d.busy = true
	d.task = d.opts.Runner.Start(d.ctx, d.form.BranchName(), d.opts.Config.CommandTemplate)
	task := d.task
	wait := func() tea.Msg {
		return taskDoneMsg{result: task.Wait()}
	}
	return d, tea.Batch(d.spin.Tick, wait)
}

// copyToClipboard copies the finished branch name. Only available once
// every field validates.
func (d *dialog) copyToClipboard() {
	if !d.form.Ready() {
		return
	}
	if err := clipboard.WriteAll(d.form.BranchName()); err != nil {
		log.FromContext(d.ctx).Warnf("failed to copy to clipboard: %v", err)
		return
	}
	d.copied = true
}

// Run opens the branch dialog and blocks until it closes.
// The TUI renders to stderr so stdout stays clean for the resulting
// branch name.
func Run(ctx context.Context, opts Options) (Result, error) {
	styles.Init(opts.Config.Theme)

	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(newDialog(ctx, opts),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
		tea.WithContext(ctx),
	)
	finalModel, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("failed to run dialog: %w", err)
	}
	return finalModel.(*dialog).result, nil
}

func fieldWidths(cfg *config.Config) map[branch.Field]int {
	widths := map[branch.Field]int{
		branch.FieldUsername:    16,
		branch.FieldJira:        16,
		branch.FieldDescription: 32,
	}
	if cfg.FieldWidths.Username > 0 {
		widths[branch.FieldUsername] = cfg.FieldWidths.Username
	}
	if cfg.FieldWidths.Jira > 0 {
		widths[branch.FieldJira] = cfg.FieldWidths.Jira
	}
	if cfg.FieldWidths.Description > 0 {
		widths[branch.FieldDescription] = cfg.FieldWidths.Description
	}
	return widths
}
