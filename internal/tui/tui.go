package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/ohmyblood/internal/clock"
	"github.com/idilsaglam/ohmyblood/internal/history"
	"github.com/idilsaglam/ohmyblood/internal/model"
	"github.com/idilsaglam/ohmyblood/internal/store"
)

// Options wires the TUI to the rest of the app.
type Options struct {
	Store    *store.Store
	Clock    clock.Clock
	Location *time.Location
	Logger   *log.Logger
	ChartDir string
	OpenFile func(path string) error
}

type screen int

const (
	listScreen screen = iota
	formScreen
	statsScreen
)

// readingItem adapts a display row to bubbles/list.Item.
type readingItem struct {
	row history.Row
	pos int // position in the newest-first list, as history.Delete expects
}

func (i readingItem) FilterValue() string {
	return i.row.When + " " + i.row.Values + " " + i.row.Class.String() + " " + i.row.Note
}

// Two-line delegate: date, values and label on top, hand and note below.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 2 }
func (d itemDelegate) Spacing() int                              { return 1 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(readingItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	top := fmt.Sprintf("%s  %s  %s",
		mutedStyle.Render(it.row.When),
		valuesStyle.Render(it.row.Values),
		classStyle(it.row.Class).Render(it.row.Class.String()))
	bottom := it.row.Hand
	if it.row.Note != "" {
		bottom += "   " + it.row.Note
	}
	fmt.Fprintln(w, prefix+top)
	fmt.Fprint(w, "  "+mutedStyle.Render(bottom))
}

type storeChangedMsg struct{ ev store.Event }

type app struct {
	opt     Options
	screen  screen
	list    list.Model
	shown   []model.Reading // newest first, mirrors the list
	form    formView
	stats   statsView
	status  string
	failed  bool
	changes chan store.Event
	width   int
	height  int
}

var (
	addKey   = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	delKey   = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	statsKey = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "statistics"))
)

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opt Options) error {
	a, err := newApp(opt)
	if err != nil {
		return err
	}
	cancel := opt.Store.Subscribe(a.onChange)
	defer cancel()

	_, err = tea.NewProgram(a, tea.WithAltScreen()).Run()
	return err
}

func newApp(opt Options) (*app, error) {
	if opt.Clock == nil {
		opt.Clock = clock.System{}
	}
	if opt.Location == nil {
		opt.Location = time.Local
	}
	if opt.Logger == nil {
		opt.Logger = log.New(io.Discard)
	}

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = "Oh My Blood!"
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("reading", "readings")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addKey, delKey, statsKey} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addKey, delKey, statsKey} }

	a := &app{
		opt:     opt,
		list:    l,
		stats:   newStatsView(),
		changes: make(chan store.Event, 16),
		width:   80,
		height:  24,
	}
	if _, err := a.reload(); err != nil {
		return nil, err
	}
	return a, nil
}

// onChange runs inside the store's commit path; it only queues the event
// so the Bubble Tea loop can re-query on its own turn.
func (a *app) onChange(ev store.Event) {
	select {
	case a.changes <- ev:
	default:
		// a refresh is already pending; it will see this commit too
	}
}

func waitForChange(ch <-chan store.Event) tea.Cmd {
	return func() tea.Msg { return storeChangedMsg{ev: <-ch} }
}

// reload re-queries the store; the returned command re-applies an active
// list filter.
func (a *app) reload() (tea.Cmd, error) {
	rs, err := history.Load(a.opt.Store)
	if err != nil {
		return nil, err
	}
	a.shown = rs
	items := make([]list.Item, len(rs))
	for i, row := range history.Rows(rs, a.opt.Location) {
		items[i] = readingItem{row: row, pos: i}
	}
	cmd := a.list.SetItems(items)
	a.stats.refresh(rs, a.opt.Clock.Now(), a.opt.Location)
	return cmd, nil
}

func (a *app) setStatus(msg string, failed bool) {
	a.status, a.failed = msg, failed
}

func (a *app) Init() tea.Cmd { return waitForChange(a.changes) }

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.list.SetSize(msg.Width-4, msg.Height-4)
		return a, nil
	case storeChangedMsg:
		cmd, err := a.reload()
		if err != nil {
			a.setStatus("reload: "+err.Error(), true)
		}
		a.opt.Logger.Debug("store changed", "op", msg.ev.Op, "ids", len(msg.ev.IDs))
		return a, tea.Batch(cmd, waitForChange(a.changes))
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	switch a.screen {
	case formScreen:
		return a.updateForm(msg)
	case statsScreen:
		return a.updateStats(msg)
	}
	return a.updateList(msg)
}

func (a *app) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && !a.list.SettingFilter() {
		switch km.String() {
		case "q", "esc":
			if a.list.FilterState() == list.FilterApplied {
				break
			}
			return a, tea.Quit
		case "a":
			a.screen = formScreen
			a.form = newFormView(a.opt.Clock.Now(), a.opt.Location)
			a.setStatus("", false)
			return a, a.form.focusCmd()
		case "s":
			a.screen = statsScreen
			a.stats.refresh(a.shown, a.opt.Clock.Now(), a.opt.Location)
			return a, nil
		case "d":
			it, ok := a.list.SelectedItem().(readingItem)
			if !ok {
				return a, nil
			}
			if err := history.Delete(a.opt.Store, a.shown, []int{it.pos}, a.opt.Logger); err != nil {
				a.setStatus("delete failed: "+err.Error(), true)
				return a, nil
			}
			a.setStatus("deleted "+it.row.When, false)
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

func (a *app) View() string {
	var body string
	switch a.screen {
	case formScreen:
		body = a.form.view()
	case statsScreen:
		body = a.stats.view(a.width)
	default:
		body = a.list.View()
	}
	if a.status != "" {
		st := okStyle
		if a.failed {
			st = errorStyle
		}
		body += "\n" + st.Render(a.status)
	}
	return frameStyle.Render(body)
}
