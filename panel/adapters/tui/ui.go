package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsandbrook/home-maintenance/panel/config"
	"github.com/jsandbrook/home-maintenance/panel/core"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

var (
	dueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

// addState walks the fields of a new task one input at a time.
type addState struct {
	title    string
	interval string
	unit     string
	last     string
	tag      string
	labels   string
	index    int
}

// editState walks the editable fields of an open session. The title is
// fixed once a task exists.
type editState struct {
	interval string
	unit     string
	last     string
	tag      string
	labels   string
	index    int
}

type Model struct {
	store   *core.Store
	session *core.Session
	cfg     config.Config
	timeout time.Duration

	rows       []core.Row
	sortMode   core.SortMode
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	confirmDel bool
	pendingDel *core.Row
	add        *addState
	edit       *editState
}

func Run(store *core.Store, cfg config.Config, timeout time.Duration) error {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		store:   store,
		session: core.NewSession(store),
		cfg:     cfg,
		timeout: timeout,
		input:   ti,
		mode:    modeList,
		status:  "Press 'a' to add, space to complete, 'e' to edit, 'd' to delete.",
	}
	m.refreshRows()

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.edit != nil {
			return m.updateEditMode(msg.String(), msg)
		}
		if m.add != nil {
			return m.updateAddMode(msg.String(), msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m *Model) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

func (m *Model) refreshRows() {
	rows, err := core.Project(m.store.Snapshot(), time.Now(), m.sortMode)
	if err != nil {
		m.status = fmt.Sprintf("projection failed: %v", err)
		return
	}
	m.rows = rows
	m.cursor = clampCursor(m.cursor, len(m.rows))
}

func (m *Model) reload() {
	ctx, cancel := m.ctx()
	defer cancel()
	if err := m.store.Reload(ctx); err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
		return
	}
	m.refreshRows()
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(m.rows) > 0 {
			m.cursor = clampCursor(m.cursor+1, len(m.rows))
		}
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.rows))
		}
	case m.cfg.Keys.Reload:
		m.reload()
		if !strings.HasPrefix(m.status, "reload failed") {
			m.status = "Reloaded"
		}
	case m.cfg.Keys.SortDue:
		m.sortMode = core.SortByNextDue
		m.refreshRows()
		m.status = "Sorted by next due"
	case m.cfg.Keys.SortName:
		m.sortMode = core.SortByTitle
		m.refreshRows()
		m.status = "Sorted by title"
	case m.cfg.Keys.SortSpan:
		m.sortMode = core.SortByInterval
		m.refreshRows()
		m.status = "Sorted by interval length"
	case m.cfg.Keys.Add:
		m.add = &addState{interval: "1", unit: string(core.IntervalDays)}
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Placeholder = m.add.currentLabel()
		m.input.Focus()
		m.status = "New task: tab to move, enter to advance, esc to cancel"
	case m.cfg.Keys.Complete:
		if len(m.rows) == 0 {
			return m, nil
		}
		row := m.rows[m.cursor]
		ctx, cancel := m.ctx()
		err := m.store.Complete(ctx, row.Task.ID)
		cancel()
		if err != nil {
			m.status = fmt.Sprintf("complete failed: %v", err)
			return m, nil
		}
		m.refreshRows()
		m.status = fmt.Sprintf("Completed %q", row.Task.Title)
	case m.cfg.Keys.Delete:
		if len(m.rows) == 0 {
			return m, nil
		}
		row := m.rows[m.cursor]
		m.confirmDel = true
		m.pendingDel = &row
		m.status = fmt.Sprintf("Delete %q? y/n", row.Task.Title)
	case m.cfg.Keys.Detail:
		if len(m.rows) == 0 {
			m.status = "No tasks"
			return m, nil
		}
		m.status = detailLine(m.rows[m.cursor])
	case m.cfg.Keys.Edit:
		if len(m.rows) == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		return m.startEdit(m.rows[m.cursor])
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		ctx, cancel := m.ctx()
		_ = m.store.Remove(ctx, m.pendingDel.Task.ID, false)
		cancel()
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		ctx, cancel := m.ctx()
		err := m.store.Remove(ctx, m.pendingDel.Task.ID, true)
		cancel()
		if err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
		} else {
			m.refreshRows()
			m.status = "Deleted task"
		}
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

// ---- add mode

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.add = nil
		m.mode = modeList
		m.input.Blur()
		m.status = "Add cancelled"
		return m, nil
	case "tab", "down":
		m.add.setCurrentValue(m.input.Value())
		m.add.index = wrapIndex(m.add.index+1, len(addFields()))
		m.syncAddInput()
		return m, nil
	case "shift+tab", "up":
		m.add.setCurrentValue(m.input.Value())
		m.add.index = wrapIndex(m.add.index-1, len(addFields()))
		m.syncAddInput()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.add.setCurrentValue(m.input.Value())
		if m.add.index < len(addFields())-1 {
			m.add.index++
			m.syncAddInput()
			return m, nil
		}
		return m.saveAdd()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) syncAddInput() {
	m.input.SetValue(m.add.currentValue())
	m.input.Placeholder = m.add.currentLabel()
	m.status = fmt.Sprintf("New task: %s (field %d of %d)", m.add.currentLabel(), m.add.index+1, len(addFields()))
}

func (m Model) saveAdd() (tea.Model, tea.Cmd) {
	draft, err := m.add.toDraft()
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	ctx, cancel := m.ctx()
	err = m.store.Create(ctx, draft)
	cancel()
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}

	m.add = nil
	m.mode = modeList
	m.input.Blur()
	m.refreshRows()
	m.status = fmt.Sprintf("Added %q", draft.Title)
	return m, nil
}

func addFields() []string {
	return []string{
		"title",
		"repeat every (number)",
		"unit (days/weeks/months)",
		"last performed (YYYY-MM-DD, blank = today)",
		"tag id (optional)",
		"labels (comma separated, optional)",
	}
}

func (as addState) currentLabel() string { return addFields()[as.index] }

func (as addState) currentValue() string {
	switch as.index {
	case 0:
		return as.title
	case 1:
		return as.interval
	case 2:
		return as.unit
	case 3:
		return as.last
	case 4:
		return as.tag
	case 5:
		return as.labels
	default:
		return ""
	}
}

func (as *addState) setCurrentValue(v string) {
	switch as.index {
	case 0:
		as.title = v
	case 1:
		as.interval = v
	case 2:
		as.unit = v
	case 3:
		as.last = v
	case 4:
		as.tag = v
	case 5:
		as.labels = v
	}
}

func (as addState) toDraft() (core.TaskDraft, error) {
	value, err := parseInterval(as.interval)
	if err != nil {
		return core.TaskDraft{}, fmt.Errorf("interval invalid: %v", err)
	}
	last, err := parseDate(as.last)
	if err != nil {
		return core.TaskDraft{}, fmt.Errorf("last performed invalid: %v", err)
	}

	draft := core.TaskDraft{
		Title:         strings.TrimSpace(as.title),
		IntervalValue: value,
		IntervalType:  core.IntervalType(strings.ToLower(strings.TrimSpace(as.unit))),
		LastPerformed: last,
		Labels:        splitLabels(as.labels),
	}
	if tag := strings.TrimSpace(as.tag); tag != "" {
		draft.TagID = &tag
	}
	return draft, nil
}

// ---- edit mode

func (m Model) startEdit(row core.Row) (tea.Model, tea.Cmd) {
	ctx, cancel := m.ctx()
	err := m.session.Open(ctx, row.Task.ID)
	cancel()
	if err != nil {
		m.status = fmt.Sprintf("edit failed: %v", err)
		return m, nil
	}

	wc := m.session.Working()
	m.edit = &editState{
		interval: strconv.Itoa(wc.IntervalValue),
		unit:     string(wc.IntervalType),
		last:     wc.LastPerformed.Format("2006-01-02"),
		tag:      wc.TagID,
		labels:   strings.Join(wc.Labels, ", "),
	}
	m.mode = modeEdit
	m.input.SetValue(m.edit.currentValue())
	m.input.Placeholder = m.edit.currentLabel()
	m.input.Focus()
	m.status = fmt.Sprintf("Editing %q: tab to move, enter to save/next, esc to cancel", wc.Title)
	return m, nil
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.session.Cancel()
		m.edit = nil
		m.mode = modeList
		m.input.Blur()
		m.status = "Edit cancelled"
		return m, nil
	case "tab", "down":
		m.edit.setCurrentValue(m.input.Value())
		m.edit.index = wrapIndex(m.edit.index+1, len(editFields()))
		m.syncEditInput()
		return m, nil
	case "shift+tab", "up":
		m.edit.setCurrentValue(m.input.Value())
		m.edit.index = wrapIndex(m.edit.index-1, len(editFields()))
		m.syncEditInput()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.edit.setCurrentValue(m.input.Value())
		if m.edit.index < len(editFields())-1 {
			m.edit.index++
			m.syncEditInput()
			return m, nil
		}
		return m.saveEdit()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) syncEditInput() {
	m.input.SetValue(m.edit.currentValue())
	m.input.Placeholder = m.edit.currentLabel()
	m.status = fmt.Sprintf("Editing %s (field %d of %d)", m.edit.currentLabel(), m.edit.index+1, len(editFields()))
}

func (m Model) saveEdit() (tea.Model, tea.Cmd) {
	wc := m.session.Working()

	value, err := parseInterval(m.edit.interval)
	if err != nil {
		m.status = fmt.Sprintf("interval invalid: %v", err)
		return m, nil
	}
	last, err := parseDate(m.edit.last)
	if err != nil {
		m.status = fmt.Sprintf("last performed invalid: %v", err)
		return m, nil
	}
	if last.IsZero() {
		last = wc.LastPerformed
	}

	wc.IntervalValue = value
	wc.IntervalType = core.IntervalType(strings.ToLower(strings.TrimSpace(m.edit.unit)))
	wc.LastPerformed = last
	wc.TagID = strings.TrimSpace(m.edit.tag)
	wc.Labels = splitLabels(m.edit.labels)
	m.session.SetWorking(wc)

	ctx, cancel := m.ctx()
	err = m.session.Save(ctx)
	cancel()
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}

	m.edit = nil
	m.mode = modeList
	m.input.Blur()
	m.refreshRows()
	m.status = "Saved"
	return m, nil
}

func editFields() []string {
	return []string{
		"repeat every (number)",
		"unit (days/weeks/months)",
		"last performed (YYYY-MM-DD)",
		"tag id (blank to clear)",
		"labels (comma separated, blank to clear)",
	}
}

func (es editState) currentLabel() string { return editFields()[es.index] }

func (es editState) currentValue() string {
	switch es.index {
	case 0:
		return es.interval
	case 1:
		return es.unit
	case 2:
		return es.last
	case 3:
		return es.tag
	case 4:
		return es.labels
	default:
		return ""
	}
}

func (es *editState) setCurrentValue(v string) {
	switch es.index {
	case 0:
		es.interval = v
	case 1:
		es.unit = v
	case 2:
		es.last = v
	case 3:
		es.tag = v
	case 4:
		es.labels = v
	}
}

// ---- rendering

func (m Model) View() string {
	var b strings.Builder

	title := m.store.Snapshot().Config.Title
	if title == "" {
		title = "Home Maintenance"
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString("No tasks yet. Press 'a' to add one.")
	} else {
		b.WriteString(m.renderRows())
	}

	b.WriteString("\n---\n")

	switch {
	case m.add != nil:
		b.WriteString("New task (tab to move, enter to advance, esc to cancel)\n\n")
		b.WriteString(renderFieldBox(addFields(), []string{
			m.add.title, m.add.interval, m.add.unit, m.add.last, m.add.tag, m.add.labels,
		}, m.add.index))
		b.WriteString("\n" + m.input.View())
	case m.edit != nil:
		b.WriteString(fmt.Sprintf("Edit %q (tab to move, enter to save/next, esc to cancel)\n\n", m.session.Working().Title))
		b.WriteString(renderFieldBox(editFields(), []string{
			m.edit.interval, m.edit.unit, m.edit.last, m.edit.tag, m.edit.labels,
		}, m.edit.index))
		b.WriteString("\n" + m.input.View())
	default:
		b.WriteString(m.renderDetailPanel())
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderRows() string {
	var b strings.Builder
	for i, row := range m.rows {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		marker := "  "
		if row.Due {
			marker = "! "
		}

		line := fmt.Sprintf("%s %s%-30s every %-9s due %s",
			cursor, marker, truncate(row.Task.Title, 30), row.IntervalLabel,
			row.NextDue.Format("2006-01-02"))
		if row.TagName != "" {
			line += "  [" + row.TagName + "]"
		}
		if row.Due {
			line = dueStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDetailPanel() string {
	if len(m.rows) == 0 {
		return "No task selected"
	}
	row := m.rows[clampCursor(m.cursor, len(m.rows))]
	var b strings.Builder
	b.WriteString("Details\n")
	b.WriteString(fmt.Sprintf("Title          : %s\n", row.Task.Title))
	b.WriteString(fmt.Sprintf("Repeats every  : %s\n", row.IntervalLabel))
	b.WriteString(fmt.Sprintf("Last performed : %s\n", row.Task.LastPerformed.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Next due       : %s\n", row.NextDue.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Due now        : %t\n", row.Due))
	b.WriteString(fmt.Sprintf("Tag            : %s\n", emptyPlaceholder(row.TagName)))
	b.WriteString(fmt.Sprintf("Labels         : %s\n", emptyPlaceholder(strings.Join(row.Labels, ", "))))
	b.WriteString(fmt.Sprintf("Icon           : %s\n", emptyPlaceholder(row.Task.Icon)))
	return b.String()
}

func renderFieldBox(fields, values []string, index int) string {
	var b strings.Builder
	for i, name := range fields {
		prefix := " "
		if i == index {
			prefix = ">"
		}
		val := values[i]
		if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-42s : %s\n", prefix, name, val))
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s complete • %s edit • %s delete • %s detail • %s reload • %s/%s/%s sort • %s quit",
		k.Up, k.Down, k.Add, k.Complete, k.Edit, k.Delete, k.Detail, k.Reload,
		k.SortDue, k.SortName, k.SortSpan, k.Quit)
}

func detailLine(row core.Row) string {
	info := fmt.Sprintf("%s • every %s • due %s", row.Task.Title, row.IntervalLabel, row.NextDue.Format("2006-01-02"))
	if row.Due {
		info += " • DUE"
	}
	if row.TagName != "" {
		info += " • tag:" + row.TagName
	}
	if len(row.Labels) > 0 {
		info += " • labels:" + strings.Join(row.Labels, ",")
	}
	return info
}

// ---- helpers

func parseInterval(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("must be at least 1")
	}
	return n, nil
}

func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", v, time.Local)
}

func splitLabels(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func emptyPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(none)"
	}
	return v
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
