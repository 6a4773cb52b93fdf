// Package tui hosts the Bubble Tea program for the daybook calendar.
package tui

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/daybook/pkg/auth"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/dateutil"
	"tableflip.dev/daybook/pkg/editor"
	"tableflip.dev/daybook/pkg/logging"
	"tableflip.dev/daybook/pkg/state"
	"tableflip.dev/daybook/pkg/tui/theme"
	"tableflip.dev/daybook/pkg/view"
)

type screen int

const (
	screenLoading screen = iota
	screenAuth
	screenCalendar
	screenEventForm
	screenCalendars
	screenCalendarForm
	screenConfirm
)

type (
	// changedMsg reports that the store or the auth gate moved.
	changedMsg  struct{}
	loadedMsg   struct{ err error }
	resolvedMsg struct{ err error }
)

// Options configure a Model.
type Options struct {
	Store *state.Store
	Gate  *auth.Gate
	Theme theme.Theme
	Now   func() time.Time
	// Watch reloads the store when another process writes the data files.
	Watch bool
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	store    *state.Store
	gate     *auth.Gate
	theme    theme.Theme
	now      func() time.Time
	watch    bool
	pager    *view.Pager
	handlers view.Handlers

	changes     chan struct{}
	unsubscribe []func()
	// watchOnce keeps sign-out and sign-in cycles on a single file watch.
	watchOnce sync.Once

	screen screen
	st     calendar.State
	loaded bool

	// selected indexes the events of the selected day.
	selected int
	// calIndex indexes the calendar list.
	calIndex int

	authForm *form
	signUp   bool

	eventForm *form
	eventEdit *editor.EventForm

	calForm   *form
	calEdit   *editor.CalendarForm
	calReturn screen

	confirm *confirmation

	status string
	alert  string
	width  int
	height int
}

// New creates the UI model. The store and gate must be non-nil.
func New(opts Options) *Model {
	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		ctx:     ctx,
		cancel:  cancel,
		store:   opts.Store,
		gate:    opts.Gate,
		theme:   opts.Theme,
		now:     clock,
		watch:   opts.Watch,
		changes: make(chan struct{}, 1),
		screen:  screenLoading,
	}
	m.st = m.store.State()
	m.pager = view.NewPager(m.st.SelectedDate, m.st.ViewMode, func(d time.Time) {
		m.store.SetSelectedDate(d)
	})
	m.handlers = view.Handlers{
		OnEventPress:      m.openEditEvent,
		OnDatePress:       m.openNewEventOn,
		OnDateNumberPress: m.drillDown,
		OnTimeSlotPress:   m.openNewEventAt,
	}
	m.unsubscribe = append(m.unsubscribe,
		m.store.Subscribe(func(calendar.State) { m.notify() }),
		m.gate.Subscribe(func(auth.Status) { m.notify() }),
	)
	return m
}

// notify never blocks: one pending signal is enough since handlers read the
// latest state.
func (m *Model) notify() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.changes
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case <-ch:
			return changedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// Close releases subscriptions and stops the file watch.
func (m *Model) Close() {
	for _, fn := range m.unsubscribe {
		fn()
	}
	m.unsubscribe = nil
	m.cancel()
}

// Init resolves the stored session.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.resolveSession(), m.waitForChange())
}

func (m *Model) resolveSession() tea.Cmd {
	return func() tea.Msg {
		return resolvedMsg{err: m.gate.Resolve(m.ctx)}
	}
}

func (m *Model) loadData() tea.Cmd {
	return func() tea.Msg {
		if err := m.store.LoadData(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		if m.watch {
			m.watchOnce.Do(func() {
				if err := m.store.Watch(m.ctx); err != nil {
					logging.Error("tui: watch", err)
				}
			})
		}
		return loadedMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case resolvedMsg:
		if msg.err != nil {
			logging.Error("tui: resolve session", msg.err)
		}
		m.applyAuthStatus(&cmds)
	case loadedMsg:
		if msg.err != nil {
			m.setAlert(msg.err)
		}
		m.loaded = true
		m.syncState()
	case changedMsg:
		m.applyAuthStatus(&cmds)
		m.syncState()
		cmds = append(cmds, m.waitForChange())
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.Close()
			return m, tea.Quit
		}
		m.handleKeyPress(msg, &cmds)
	}
	return m, tea.Batch(cmds...)
}

// applyAuthStatus switches between the auth and calendar screens.
func (m *Model) applyAuthStatus(cmds *[]tea.Cmd) {
	switch m.gate.Status() {
	case auth.Loading:
		m.screen = screenLoading
	case auth.SignedOut:
		if m.screen != screenAuth {
			m.screen = screenAuth
			m.loaded = false
			*cmds = append(*cmds, m.openAuth(m.signUp))
		}
	case auth.SignedIn:
		if m.screen == screenLoading || m.screen == screenAuth {
			m.authForm = nil
			m.screen = screenCalendar
			*cmds = append(*cmds, m.loadData())
		}
	}
}

// syncState copies the latest store snapshot and realigns the pager.
func (m *Model) syncState() {
	m.st = m.store.State()
	m.pager.Sync(m.st.SelectedDate, m.st.ViewMode)
	if n := len(m.dayEvents()); m.selected >= n {
		m.selected = max(n-1, 0)
	}
	if n := len(m.st.Calendars); m.calIndex >= n {
		m.calIndex = max(n-1, 0)
	}
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch m.screen {
	case screenAuth:
		m.handleAuthKey(msg, cmds)
	case screenCalendar:
		m.handleCalendarKey(msg, cmds)
	case screenEventForm:
		m.handleEventFormKey(msg, cmds)
	case screenCalendars:
		m.handleCalendarsKey(msg, cmds)
	case screenCalendarForm:
		m.handleCalendarFormKey(msg, cmds)
	case screenConfirm:
		m.handleConfirmKey(msg)
	}
}

func (m *Model) handleCalendarKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	m.alert = ""
	switch msg.String() {
	case "q":
		m.Close()
		*cmds = append(*cmds, tea.Quit)
	case "h", "left":
		m.step(dateutil.Prev)
	case "l", "right":
		m.step(dateutil.Next)
	case "t":
		m.goTo(m.now())
		m.setStatus("Today")
	case "[":
		m.goTo(m.st.SelectedDate.AddDate(0, 0, -1))
	case "]":
		m.goTo(m.st.SelectedDate.AddDate(0, 0, 1))
	case "d":
		m.setViewMode(calendar.ViewDay)
	case "w":
		m.setViewMode(calendar.ViewWeek)
	case "m":
		m.setViewMode(calendar.ViewMonth)
	case "j", "down":
		if n := len(m.dayEvents()); n > 0 {
			m.selected = (m.selected + 1) % n
		}
	case "k", "up":
		if n := len(m.dayEvents()); n > 0 {
			m.selected = (m.selected - 1 + n) % n
		}
	case "a":
		if m.st.ViewMode == calendar.ViewMonth {
			m.handlers.DatePress(m.st.SelectedDate)
		} else {
			m.handlers.TimeSlotPress(m.st.SelectedDate, m.slotHour())
		}
		*cmds = append(*cmds, m.focusForm())
	case "enter", "e":
		if ev, ok := m.selectedEvent(); ok {
			m.handlers.EventPress(ev)
			*cmds = append(*cmds, m.focusForm())
		} else if msg.String() == "enter" {
			m.handlers.DateNumberPress(m.st.SelectedDate)
		}
	case "x":
		if ev, ok := m.selectedEvent(); ok {
			f := editor.NewEventForm(m.st, editor.EventFormOptions{Event: &ev})
			m.askDeleteEvent(f, screenCalendar)
		}
	case "c":
		m.screen = screenCalendars
	case "n":
		*cmds = append(*cmds, m.openCalendarForm(nil, screenCalendar))
	case "ctrl+o":
		m.signOut(cmds)
	}
}

func (m *Model) step(dir dateutil.Direction) {
	err := m.pager.Step(dir)
	if errors.Is(err, view.ErrNavigationInProgress) {
		return
	}
	m.selected = 0
	m.syncState()
}

func (m *Model) goTo(date time.Time) {
	m.store.SetSelectedDate(date)
	m.selected = 0
	m.syncState()
}

func (m *Model) setViewMode(mode calendar.ViewMode) {
	m.store.SetViewMode(mode)
	m.syncState()
}

// slotHour is the hour a new timed event starts at: the next hour today,
// nine otherwise.
func (m *Model) slotHour() int {
	now := m.now()
	if dateutil.SameDay(now, m.st.SelectedDate) && now.Hour() < 23 {
		return now.Hour() + 1
	}
	return 9
}

// dayEvents lists the visible events of the selected day in time order.
func (m *Model) dayEvents() []calendar.Event {
	return dateutil.SortEventsByTime(dateutil.EventsForDate(view.VisibleEvents(m.st), m.st.SelectedDate))
}

func (m *Model) selectedEvent() (calendar.Event, bool) {
	events := m.dayEvents()
	if m.selected < 0 || m.selected >= len(events) {
		return calendar.Event{}, false
	}
	return events[m.selected], true
}

func (m *Model) drillDown(date time.Time) {
	m.store.SetSelectedDate(date)
	m.store.SetViewMode(calendar.ViewDay)
	m.syncState()
}

func (m *Model) signOut(cmds *[]tea.Cmd) {
	if err := m.gate.SignOut(m.ctx); err != nil {
		m.setAlert(err)
		return
	}
	m.applyAuthStatus(cmds)
}

func (m *Model) setStatus(s string) {
	m.status = s
}

// setAlert shows err on the alert line using its user-facing message.
func (m *Model) setAlert(err error) {
	if err == nil {
		m.alert = ""
		return
	}
	m.alert = userMessage(err)
}

func userMessage(err error) string {
	var verr *editor.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var serr *editor.SaveError
	if errors.As(err, &serr) {
		return serr.Message
	}
	var ferr *auth.FormError
	if errors.As(err, &ferr) {
		return ferr.Message
	}
	return err.Error()
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
