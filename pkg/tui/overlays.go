package tui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/daybook/pkg/auth"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/editor"
)

const (
	labelEmail    = "Email"
	labelPassword = "Password"
	labelConfirm  = "Confirm"

	labelTitle       = "Title"
	labelCalendar    = "Calendar"
	labelAllDay      = "All day"
	labelStartDate   = "Start date"
	labelStartTime   = "Start time"
	labelEndDate     = "End date"
	labelEndTime     = "End time"
	labelLocation    = "Location"
	labelDescription = "Description"
	labelReminder    = "Reminder"

	labelName  = "Name"
	labelColor = "Color"
)

var reminderChoices = []int{5, 15, 30, 60}

// confirmation is a pending yes/no question. run executes on yes.
type confirmation struct {
	title   string
	message string
	run     func() error
	back    screen
}

// focusForm focuses the first field of whichever form is open.
func (m *Model) focusForm() tea.Cmd {
	switch m.screen {
	case screenEventForm:
		return m.eventForm.focusCurrent()
	case screenCalendarForm:
		return m.calForm.focusCurrent()
	case screenAuth:
		return m.authForm.focusCurrent()
	}
	return nil
}

// Auth

func (m *Model) openAuth(signUp bool) tea.Cmd {
	m.signUp = signUp
	fields := []*field{newTextField(labelEmail, "", "you@example.com"), newSecretField(labelPassword)}
	title := "Sign In"
	if signUp {
		fields = append(fields, newSecretField(labelConfirm))
		title = "Create Account"
	}
	m.authForm = newForm(title, fields...)
	return m.authForm.focusCurrent()
}

func (m *Model) handleAuthKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	f := m.authForm
	if f == nil {
		*cmds = append(*cmds, m.openAuth(m.signUp))
		return
	}
	switch msg.String() {
	case "esc":
		m.Close()
		*cmds = append(*cmds, tea.Quit)
	case "ctrl+n":
		email := f.value(labelEmail)
		*cmds = append(*cmds, m.openAuth(!m.signUp))
		m.authForm.setValue(labelEmail, email)
	case "enter":
		m.submitAuth(cmds)
	default:
		*cmds = append(*cmds, f.update(msg))
	}
}

func (m *Model) submitAuth(cmds *[]tea.Cmd) {
	f := m.authForm
	f.err, f.info = "", ""
	email := f.value(labelEmail)
	password := f.value(labelPassword)
	if err := auth.ValidateCredentials(email, password, f.value(labelConfirm), m.signUp); err != nil {
		f.err = userMessage(err)
		return
	}
	if m.signUp {
		if _, err := m.gate.SignUp(m.ctx, email, password); err != nil {
			f.err = authMessage(err)
			return
		}
		*cmds = append(*cmds, m.openAuth(false))
		m.authForm.setValue(labelEmail, auth.NormalizeEmail(email))
		m.authForm.info = auth.MsgAccountCreated
		return
	}
	if err := m.gate.SignIn(m.ctx, email, password); err != nil {
		f.err = authMessage(err)
		return
	}
	m.applyAuthStatus(cmds)
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrUserExists):
		return err.Error()
	default:
		return auth.MsgUnexpected
	}
}

// Events

func (m *Model) openNewEventOn(date time.Time) {
	m.openEventForm(editor.NewEventForm(m.st, editor.EventFormOptions{InitialDate: date, Now: m.now()}))
}

func (m *Model) openNewEventAt(date time.Time, hour int) {
	m.openEventForm(editor.NewEventForm(m.st, editor.EventFormOptions{InitialDate: date, InitialHour: &hour, Now: m.now()}))
}

func (m *Model) openEditEvent(ev calendar.Event) {
	m.openEventForm(editor.NewEventForm(m.st, editor.EventFormOptions{Event: &ev, Now: m.now()}))
}

func (m *Model) openEventForm(ef *editor.EventForm) {
	calendars := make([]option, 0, len(m.st.Calendars))
	for _, c := range m.st.Calendars {
		calendars = append(calendars, option{value: c.ID, label: m.theme.Swatch(c.Color).Render("●") + " " + c.Name})
	}
	reminders := []option{{value: "", label: "None"}}
	for _, r := range reminderChoices {
		reminders = append(reminders, option{value: strconv.Itoa(r), label: strconv.Itoa(r) + " min before"})
	}
	reminder := ""
	if ef.Reminder != nil {
		reminder = strconv.Itoa(*ef.Reminder)
		if !containsOption(reminders, reminder) {
			reminders = append(reminders, option{value: reminder, label: reminder + " min before"})
		}
	}

	m.eventEdit = ef
	m.eventForm = newForm(ef.Heading(),
		newTextField(labelTitle, ef.Title, "Event title"),
		newSelectField(labelCalendar, calendars, ef.CalendarID),
		newToggleField(labelAllDay, ef.IsAllDay),
		newTextField(labelStartDate, ef.StartDate, "YYYY-MM-DD"),
		newTextField(labelStartTime, ef.StartTime, "HH:MM"),
		newTextField(labelEndDate, ef.EndDate, "YYYY-MM-DD"),
		newTextField(labelEndTime, ef.EndTime, "HH:MM"),
		newTextField(labelLocation, ef.Location, "Add location"),
		newTextField(labelDescription, ef.Description, "Add description"),
		newSelectField(labelReminder, reminders, reminder),
	)
	m.screen = screenEventForm
}

func containsOption(options []option, value string) bool {
	for _, o := range options {
		if o.value == value {
			return true
		}
	}
	return false
}

func (m *Model) handleEventFormKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeEventForm()
	case "enter", "ctrl+s":
		m.saveEvent()
	case "ctrl+d":
		if m.eventEdit.IsEdit() {
			m.askDeleteEvent(m.eventEdit, screenEventForm)
		}
	default:
		*cmds = append(*cmds, m.eventForm.update(msg))
	}
}

// collectEvent copies the form fields into the editor form.
func (m *Model) collectEvent() {
	f, ef := m.eventForm, m.eventEdit
	ef.Title = f.value(labelTitle)
	ef.CalendarID = f.value(labelCalendar)
	ef.SetAllDay(f.field(labelAllDay).on)
	ef.StartDate = strings.TrimSpace(f.value(labelStartDate))
	ef.StartTime = strings.TrimSpace(f.value(labelStartTime))
	ef.EndDate = strings.TrimSpace(f.value(labelEndDate))
	ef.EndTime = strings.TrimSpace(f.value(labelEndTime))
	ef.Location = f.value(labelLocation)
	ef.Description = f.value(labelDescription)
	ef.Reminder = nil
	if r, err := strconv.Atoi(f.value(labelReminder)); err == nil {
		ef.Reminder = &r
	}
}

func (m *Model) saveEvent() {
	m.collectEvent()
	ev, err := m.eventEdit.Save(m.ctx, m.st, m.store)
	if err != nil {
		m.eventForm.err = userMessage(err)
		return
	}
	m.closeEventForm()
	m.syncState()
	m.setStatus("Saved " + ev.Title)
}

func (m *Model) closeEventForm() {
	m.eventForm, m.eventEdit = nil, nil
	m.screen = screenCalendar
}

func (m *Model) askDeleteEvent(ef *editor.EventForm, back screen) {
	m.confirm = &confirmation{
		title:   "Delete Event",
		message: "Are you sure you want to delete this event?",
		back:    back,
		run: func() error {
			if err := ef.Delete(m.ctx, m.store, editor.Always); err != nil {
				return err
			}
			m.eventForm, m.eventEdit = nil, nil
			m.setStatus("Event deleted")
			return nil
		},
	}
	m.screen = screenConfirm
}

// Calendars

func (m *Model) handleCalendarsKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	m.alert = ""
	n := len(m.st.Calendars)
	switch msg.String() {
	case "esc", "q", "c":
		m.screen = screenCalendar
	case "j", "down":
		if n > 0 {
			m.calIndex = (m.calIndex + 1) % n
		}
	case "k", "up":
		if n > 0 {
			m.calIndex = (m.calIndex - 1 + n) % n
		}
	case "space":
		if c, ok := m.currentCalendar(); ok {
			if err := m.store.ToggleCalendarVisibility(m.ctx, c.ID); err != nil {
				m.setAlert(err)
			}
			m.syncState()
		}
	case "enter", "e":
		if c, ok := m.currentCalendar(); ok {
			*cmds = append(*cmds, m.openCalendarForm(&c, screenCalendars))
		}
	case "n":
		*cmds = append(*cmds, m.openCalendarForm(nil, screenCalendars))
	case "x":
		if c, ok := m.currentCalendar(); ok {
			m.askDeleteCalendar(editor.NewCalendarForm(&c), screenCalendars)
		}
	}
}

func (m *Model) currentCalendar() (calendar.Calendar, bool) {
	if m.calIndex < 0 || m.calIndex >= len(m.st.Calendars) {
		return calendar.Calendar{}, false
	}
	return m.st.Calendars[m.calIndex], true
}

func (m *Model) openCalendarForm(c *calendar.Calendar, back screen) tea.Cmd {
	cf := editor.NewCalendarForm(c)
	colors := make([]option, 0, len(calendar.Palette)+1)
	if !containsColor(cf.Color) {
		colors = append(colors, option{value: cf.Color, label: m.colorLabel(cf.Color)})
	}
	for _, hex := range calendar.Palette {
		colors = append(colors, option{value: hex, label: m.colorLabel(hex)})
	}
	m.calEdit = cf
	m.calForm = newForm(cf.Heading(),
		newTextField(labelName, cf.Name, "Enter calendar name"),
		newSelectField(labelColor, colors, cf.Color),
	)
	if cf.IsDefault() {
		m.calForm.info = "This is your default calendar and cannot be deleted."
	}
	m.calReturn = back
	m.screen = screenCalendarForm
	return m.calForm.focusCurrent()
}

func containsColor(hex string) bool {
	for _, c := range calendar.Palette {
		if strings.EqualFold(c, hex) {
			return true
		}
	}
	return false
}

func (m *Model) colorLabel(hex string) string {
	return m.theme.Swatch(hex).Render("●") + " " + hex
}

func (m *Model) handleCalendarFormKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeCalendarForm()
	case "enter", "ctrl+s":
		m.saveCalendar()
	case "ctrl+d":
		if m.calEdit.IsEdit() {
			m.askDeleteCalendar(m.calEdit, screenCalendarForm)
		}
	default:
		*cmds = append(*cmds, m.calForm.update(msg))
	}
}

func (m *Model) saveCalendar() {
	m.calEdit.Name = m.calForm.value(labelName)
	m.calEdit.Color = m.calForm.value(labelColor)
	c, err := m.calEdit.Save(m.ctx, m.store)
	if err != nil {
		m.calForm.err = userMessage(err)
		return
	}
	m.closeCalendarForm()
	m.syncState()
	m.setStatus("Saved " + c.Name)
}

func (m *Model) closeCalendarForm() {
	m.calForm, m.calEdit = nil, nil
	m.screen = m.calReturn
}

// askDeleteCalendar refuses the default calendar without asking.
func (m *Model) askDeleteCalendar(cf *editor.CalendarForm, back screen) {
	if cf.IsDefault() {
		m.alert = editor.MsgCalendarDeleteDefault
		if m.calForm != nil {
			m.calForm.err = editor.MsgCalendarDeleteDefault
		}
		return
	}
	m.confirm = &confirmation{
		title:   "Delete Calendar",
		message: "Are you sure you want to delete this calendar? All events in this calendar will also be deleted.",
		back:    back,
		run: func() error {
			if err := cf.Delete(m.ctx, m.store, editor.Always); err != nil {
				return err
			}
			m.calForm, m.calEdit = nil, nil
			m.setStatus("Calendar deleted")
			return nil
		},
	}
	m.screen = screenConfirm
}

// Confirm

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg) {
	c := m.confirm
	if c == nil {
		m.screen = screenCalendar
		return
	}
	switch msg.String() {
	case "y", "enter":
		m.confirm = nil
		if err := c.run(); err != nil {
			m.setAlert(err)
			m.screen = c.back
			return
		}
		m.syncState()
		switch c.back {
		case screenEventForm:
			m.screen = screenCalendar
		case screenCalendarForm:
			m.screen = m.calReturn
		default:
			m.screen = c.back
		}
	case "n", "esc":
		m.confirm = nil
		m.screen = c.back
		m.setStatus("Cancelled")
	}
}
