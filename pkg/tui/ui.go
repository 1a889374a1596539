// Package tui is the terminal diary list: a month calendar next to the
// entries of the selected day, with visibility toggles and deletes.
package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/tui/theme"
)

type mode int

const (
	modeNormal mode = iota
	modeConfirmDelete
	modeJump
	modeHelp
)

const (
	focusCalendar = iota
	focusEntries
)

type entryItem struct{ e *entry.Entry }

func (it entryItem) Title() string {
	date, weather, _, title := it.e.Row()
	if weather != "" {
		return fmt.Sprintf("%s %s %s", date, weather, title)
	}
	return fmt.Sprintf("%s %s", date, title)
}

func (it entryItem) Description() string {
	_, _, visibility, _ := it.e.Row()
	return visibility
}

func (it entryItem) FilterValue() string { return it.e.Title() }

// messages
type refreshedMsg struct{ err error }
type mutatedMsg struct {
	status string
	err    error
}

// Model is the bubbletea model of the list page.
type Model struct {
	board    *app.Board
	ctx      context.Context
	settings entry.FieldSettings
	fileURL  func(string) string
	now      func() time.Time

	mode  mode
	focus int

	cursor     time.Time
	entList    list.Model
	input      textinput.Model
	detail     viewport.Model
	status     string
	showDetail bool
	expired    bool

	termWidth  int
	termHeight int

	theme theme.Theme
}

// Option configures a Model.
type Option func(*Model)

// WithSettings sets the fields shown in the detail pane.
func WithSettings(fs entry.FieldSettings) Option {
	return func(m *Model) { m.settings = fs }
}

// WithFileURL resolves attachment links in the detail pane.
func WithFileURL(fn func(string) string) Option {
	return func(m *Model) { m.fileURL = fn }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// New creates the list page over board.
func New(ctx context.Context, board *app.Board, opts ...Option) Model {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)

	l := list.New([]list.Item{}, d, 60, 20)
	l.Title = "Entries"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.CharLimit = 32
	ti.Prompt = ""

	vp := viewport.New(
		viewport.WithWidth(80),
		viewport.WithHeight(10),
	)

	m := Model{
		board:    board,
		ctx:      ctx,
		settings: entry.DefaultFieldSettings(),
		now:      time.Now,
		focus:    focusCalendar,
		entList:  l,
		input:    ti,
		detail:   vp,
		theme:    theme.Default(),
		status:   "tab switch pane, arrows move, enter pick day, p publish, d delete, ? help",
	}
	for _, o := range opts {
		o(&m)
	}
	m.cursor = m.now()
	if month := board.Month(); !month.Contains(entry.DayKey(m.cursor)) {
		m.cursor = month.First()
	}
	m.updateFocusHeaders()
	return m
}

// Init loads the entries.
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m *Model) refresh() tea.Cmd {
	board, ctx := m.board, m.ctx
	return func() tea.Msg {
		return refreshedMsg{err: board.Refresh(ctx)}
	}
}

func (m *Model) mutate(status string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return mutatedMsg{status: status, err: fn(ctx)}
	}
}

func (m *Model) syncItems() tea.Cmd {
	visible := m.board.Visible()
	items := make([]list.Item, 0, len(visible))
	for _, e := range visible {
		items = append(items, entryItem{e: e})
	}
	title := "Entries"
	if sel := m.board.Selected(); sel != "" {
		title = "Entries on " + sel
	}
	m.entList.Title = title
	m.updateFocusHeaders()
	cmd := m.entList.SetItems(items)
	m.syncDetail()
	return cmd
}

// syncDetail renders the highlighted entry into the detail viewport.
func (m *Model) syncDetail() {
	e := m.currentEntry()
	if e == nil {
		m.detail.SetContent("")
		return
	}
	var buf bytes.Buffer
	pp := &printers.PrettyPrint{Out: &buf, Fields: m.settings, FileURL: m.fileURL, Now: m.now, Width: m.detailWidth()}
	pp.Entry(e)
	m.detail.SetContent(strings.TrimRight(buf.String(), "\n"))
	m.detail.SetYOffset(0)
}

func (m *Model) currentEntry() *entry.Entry {
	if len(m.entList.Items()) == 0 {
		return nil
	}
	it, ok := m.entList.SelectedItem().(entryItem)
	if !ok {
		return nil
	}
	return it.e
}

// moveCursor shifts the calendar cursor by days, following it into other
// months.
func (m *Model) moveCursor(days int) {
	m.cursor = m.cursor.AddDate(0, 0, days)
	if !m.board.Month().Contains(entry.DayKey(m.cursor)) {
		m.board.ShowMonth(m.cursor)
	}
}

func (m *Model) moveMonth(offset int) {
	month := m.board.MoveMonth(offset)
	day := m.cursor.Day()
	if n := calendar.DaysIn(month.First()); day > n {
		day = n
	}
	first := month.First()
	m.cursor = time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, first.Location())
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case refreshedMsg:
		if errors.Is(msg.err, app.ErrSessionExpired) {
			m.expired = true
			m.status = "session expired, run `diary login` and start again"
		}
		cmds = append(cmds, m.syncItems())
	case mutatedMsg:
		if msg.err == nil {
			m.status = msg.status
		} else if errors.Is(msg.err, app.ErrSessionExpired) {
			m.expired = true
			m.status = "session expired, run `diary login` and start again"
		}
		cmds = append(cmds, m.syncItems())
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			m.mode = modeNormal
			return m, nil
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeJump:
			return m.updateJump(msg)
		}
		return m.updateNormal(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateNormal(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.mode = modeHelp
		return m, nil
	case "tab":
		if m.focus == focusCalendar {
			m.focus = focusEntries
		} else {
			m.focus = focusCalendar
		}
		m.updateFocusHeaders()
		return m, nil
	case "r":
		m.status = "refreshing"
		return m, m.refresh()
	case "x":
		m.board.DismissError()
		return m, nil
	case "[":
		m.moveMonth(-1)
		return m, nil
	case "]":
		m.moveMonth(1)
		return m, nil
	case "t":
		m.cursor = m.now()
		m.board.ShowMonth(m.cursor)
		return m, nil
	case "g":
		m.mode = modeJump
		m.input.Reset()
		m.input.Placeholder = "YYYY-MM"
		m.status = "jump to month (enter to go, esc to cancel)"
		return m, m.input.Focus()
	case "c":
		m.board.ClearSelection()
		m.status = "showing every entry"
		return m, m.syncItems()
	}

	if m.focus == focusCalendar {
		switch msg.String() {
		case "left", "h":
			m.moveCursor(-1)
		case "right", "l":
			m.moveCursor(1)
		case "up", "k":
			m.moveCursor(-7)
		case "down", "j":
			m.moveCursor(7)
		case "enter", "space", " ":
			if sel := m.board.SelectDate(entry.DayKey(m.cursor)); sel == "" {
				m.status = "showing every entry"
			} else {
				m.status = "showing " + sel
			}
			cmds = append(cmds, m.syncItems())
		}
		return m, tea.Batch(cmds...)
	}

	switch msg.String() {
	case "enter":
		m.showDetail = !m.showDetail
		m.syncDetail()
		return m, nil
	case "pgdown", "pgup":
		if m.showDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
	case "p":
		if e := m.currentEntry(); e != nil {
			id, public := e.ID, e.IsPublic
			status := "published"
			if public {
				status = "made private"
			}
			return m, m.mutate(status, func(ctx context.Context) error {
				return m.board.ToggleVisibility(ctx, id)
			})
		}
		return m, nil
	case "d":
		if e := m.currentEntry(); e != nil {
			if err := m.board.RequestDelete(e.ID); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.mode = modeConfirmDelete
			m.input.Reset()
			m.input.Placeholder = "yes"
			m.status = fmt.Sprintf("delete %s %q? type yes to confirm, esc to cancel", e.DateKey(), e.Title())
			return m, m.input.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.entList, cmd = m.entList.Update(msg)
	m.syncDetail()
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		answer := strings.ToLower(strings.TrimSpace(m.input.Value()))
		m.mode = modeNormal
		m.input.Reset()
		m.input.Blur()
		if answer != "yes" && answer != "y" {
			m.board.CancelDelete()
			m.status = "delete cancelled"
			return m, nil
		}
		return m, m.mutate("deleted", m.board.ConfirmDelete)
	case "esc":
		m.mode = modeNormal
		m.input.Reset()
		m.input.Blur()
		m.board.CancelDelete()
		m.status = "delete cancelled"
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateJump(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		m.mode = modeNormal
		m.input.Reset()
		m.input.Blur()
		t, err := time.ParseInLocation("2006-01", value, time.Local)
		if err != nil {
			m.status = fmt.Sprintf("not a month: %q", value)
			return m, nil
		}
		m.cursor = t
		m.board.ShowMonth(t)
		m.status = calendar.MonthOf(t).String()
		return m, nil
	case "esc":
		m.mode = modeNormal
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the calendar beside the entry list with the banner, the
// optional detail pane and the status line.
func (m Model) View() string {
	opts := calendar.DefaultOptions()
	opts.Cursor = entry.DayKey(m.cursor)
	cal := calendar.Render(m.board.Month(), m.board.Counts(), m.board.Selected(), m.now(), opts)

	calBox := m.theme.Pane.Frame(m.focus == focusCalendar).Render(cal)
	listBox := m.theme.Pane.Frame(m.focus == focusEntries).Render(m.entList.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, calBox, " ", listBox)

	if banner := m.board.Err(); banner != "" {
		body = m.theme.Banner.Render("! "+banner+"  (x to dismiss)") + "\n" + body
	}
	if m.board.Loading() {
		body += "\n" + m.theme.Footer.Loading.Render("loading…")
	}

	if m.showDetail && m.focus == focusEntries {
		if m.currentEntry() != nil {
			body += "\n" + m.detail.View()
		}
	}

	switch m.mode {
	case modeConfirmDelete:
		body += "\n\n" + m.theme.Footer.Prompt.Render("Delete?") + " " + m.input.View()
	case modeJump:
		body += "\n\n" + m.theme.Footer.Prompt.Render("Month:") + " " + m.input.View()
	case modeHelp:
		body += "\n\n" + m.theme.Footer.Help.Render(helpText)
	}

	return body + "\n\n" + m.theme.Footer.Status.Render(m.status)
}

const helpText = `calendar: arrows or hjkl move, enter pick or clear a day, [ ] month, t today, g jump
entries:  arrows move, enter details, pgup pgdown scroll details, p publish or hide, d delete
anywhere: tab switch pane, c clear filter, r refresh, x dismiss error, q quit`

// Expired reports whether the session ran out while the page was open.
func (m Model) Expired() bool { return m.expired }

// Run starts the page full screen and blocks until it quits.
func Run(ctx context.Context, board *app.Board, opts ...Option) error {
	p := tea.NewProgram(New(ctx, board, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.Expired() {
		return app.ErrSessionExpired
	}
	return nil
}

func (m *Model) detailWidth() int {
	if m.termWidth > 10 {
		return m.termWidth - 2
	}
	return 80
}

// applySizes recalculates the list size from the terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	// The calendar is 7 cells of 4 plus gaps and the pane border.
	const calendarWidth = 7*4 + 6 + 4
	width := m.termWidth - calendarWidth - 5
	if width < 20 {
		width = 20
	}
	height := m.termHeight - 6
	if height < 5 {
		height = 5
	}
	m.entList.SetSize(width, height)
	m.detail.SetWidth(m.detailWidth())
	m.detail.SetHeight(max(m.termHeight/3, 5))
	m.syncDetail()
}

// updateFocusHeaders marks the focused pane in the list title.
func (m *Model) updateFocusHeaders() {
	const on = "» "
	title := strings.TrimPrefix(m.entList.Title, on)
	if m.focus == focusEntries {
		title = on + title
	}
	m.entList.Title = title
}
