package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/dateutil"
	"tableflip.dev/daybook/pkg/view"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	monthCellRows = 4
)

const (
	helpCalendar  = "h/l prev/next · t today · d/w/m view · j/k select · a add · enter edit · x delete · c calendars · q quit"
	helpCalendars = "j/k move · space show/hide · e edit · n new · x delete · esc back"
	helpEventForm = "tab next · ←/→ choose · space toggle · enter save · ctrl+d delete · esc cancel"
	helpCalForm   = "tab next · ←/→ color · enter save · ctrl+d delete · esc cancel"
	helpAuth      = "tab next · enter submit · ctrl+n switch sign in/sign up · esc quit"
)

func (m *Model) View() string {
	switch m.screen {
	case screenLoading:
		return m.theme.Footer.Status.Render("Loading…")
	case screenAuth:
		if m.authForm == nil {
			return ""
		}
		return m.authForm.view(m.theme, helpAuth)
	case screenEventForm:
		return m.eventForm.view(m.theme, helpEventForm)
	case screenCalendarForm:
		return m.calForm.view(m.theme, helpCalForm)
	case screenCalendars:
		return m.joinWithFooter(m.renderCalendars(), helpCalendars)
	case screenConfirm:
		return m.renderConfirm()
	}
	return m.joinWithFooter(m.renderCalendar(), helpCalendar)
}

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m *Model) joinWithFooter(body, help string) string {
	w, _ := m.size()
	lines := []string{body, ""}
	if m.alert != "" {
		lines = append(lines, m.theme.Footer.Alert.Render(clip(m.alert, w)))
	} else if m.status != "" {
		lines = append(lines, m.theme.Footer.Status.Render(clip(m.status, w)))
	}
	lines = append(lines, m.theme.Footer.Help.Render(clip(help, w)))
	return strings.Join(lines, "\n")
}

func (m *Model) renderCalendar() string {
	in := view.Input{State: m.st, Now: m.now()}
	header := m.renderHeader()
	var grid string
	switch m.st.ViewMode {
	case calendar.ViewDay:
		grid = m.renderDay(view.Day(in))
	case calendar.ViewWeek:
		grid = m.renderWeek(view.Week(in))
	default:
		grid = m.renderMonth(view.Month(in))
	}
	return strings.Join([]string{header, "", grid, "", m.renderAgenda()}, "\n")
}

func (m *Model) renderHeader() string {
	title := m.theme.Header.Title.Render(view.Header(m.st.SelectedDate, m.st.ViewMode))
	modes := make([]string, 0, 3)
	for _, mode := range calendar.AllViewModes() {
		label := string(mode)
		if mode == m.st.ViewMode {
			label = "[" + label + "]"
		}
		modes = append(modes, label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", m.theme.Header.Mode.Render(strings.Join(modes, " ")))
}

// columnWidth splits the terminal width between seven day columns.
func (m *Model) columnWidth() int {
	w, _ := m.size()
	cw := (w - 6) / 7
	if cw < 6 {
		cw = 6
	}
	return cw
}

func (m *Model) renderMonth(cells []view.MonthCell) string {
	cw := m.columnWidth()
	heads := make([]string, 0, 7)
	for _, d := range view.Weekdays {
		heads = append(heads, m.theme.Grid.Weekday.Render(pad(clip(d, cw), cw)))
	}
	rows := []string{strings.Join(heads, " ")}

	for week := 0; week+7 <= len(cells); week += 7 {
		cols := make([]string, 0, 7)
		for _, cell := range cells[week : week+7] {
			cols = append(cols, m.renderMonthCell(cell, cw))
		}
		rows = append(rows, joinColumns(cols))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderMonthCell(cell view.MonthCell, cw int) string {
	style := m.theme.Grid.Day
	switch {
	case dateutil.SameDay(cell.Date, m.st.SelectedDate):
		style = m.theme.Grid.Selected
	case cell.IsToday:
		style = m.theme.Grid.Today
	case !cell.InMonth:
		style = m.theme.Grid.OutMonth
	}
	lines := make([]string, 0, monthCellRows)
	lines = append(lines, style.Render(pad(fmt.Sprintf("%2d", cell.Date.Day()), cw)))
	for _, it := range cell.Events {
		lines = append(lines, m.theme.Event(it.Color).Render(pad(clip(it.Event.Title, cw), cw)))
	}
	if cell.More > 0 {
		lines = append(lines, m.theme.Grid.More.Render(pad(clip(fmt.Sprintf("+%d more", cell.More), cw), cw)))
	}
	for len(lines) < monthCellRows {
		lines = append(lines, strings.Repeat(" ", cw))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderWeek(cols []view.DayColumn) string {
	cw := m.columnWidth()
	_, h := m.size()
	maxRows := h - 10
	if maxRows < 3 {
		maxRows = 3
	}

	rendered := make([]string, 0, len(cols))
	for _, col := range cols {
		style := m.theme.Grid.Weekday
		switch {
		case dateutil.SameDay(col.Date, m.st.SelectedDate):
			style = m.theme.Grid.Selected
		case col.IsToday:
			style = m.theme.Grid.Today
		}
		lines := []string{style.Render(pad(clip(col.Date.Format("Mon 2"), cw), cw))}
		for _, it := range col.AllDay {
			lines = append(lines, m.theme.Event(it.Color).Render(pad(clip(it.Event.Title, cw), cw)))
		}
		for _, it := range col.Timed {
			label := dateutil.FormatTime(it.Event.Start()) + " " + it.Event.Title
			lines = append(lines, m.theme.Event(it.Color).Render(pad(clip(label, cw), cw)))
		}
		if len(lines) > maxRows {
			more := len(lines) - maxRows + 1
			lines = append(lines[:maxRows-1], m.theme.Grid.More.Render(pad(clip(fmt.Sprintf("+%d more", more), cw), cw)))
		}
		rendered = append(rendered, strings.Join(lines, "\n"))
	}
	return joinColumns(rendered)
}

func (m *Model) renderDay(col view.DayColumn) string {
	w, h := m.size()
	width := w - 9
	if width < 10 {
		width = 10
	}
	var lines []string
	for _, it := range col.AllDay {
		lines = append(lines, fmt.Sprintf("%6s │ ", "all")+m.theme.Event(it.Color).Render(clip(it.Event.Title, width)))
	}

	first, last := m.dayWindow(col, h-10-len(lines))
	for _, slot := range view.Slots(col.Date)[first:last] {
		label := m.theme.Grid.HourLabel.Render(fmt.Sprintf("%6s", slot.Label)) + " │ "
		items := col.ItemsInHour(slot.Hour)
		if len(items) == 0 {
			lines = append(lines, label)
			continue
		}
		chips := make([]string, 0, len(items))
		for _, it := range items {
			text := dateutil.FormatTime(it.Event.Start()) + "–" + dateutil.FormatTime(it.Event.End()) + " " + it.Event.Title
			chips = append(chips, text)
		}
		lines = append(lines, label+m.theme.Event(items[0].Color).Render(clip(strings.Join(chips, " · "), width)))
	}
	return strings.Join(lines, "\n")
}

// dayWindow picks the hours shown in the day view: starting at 8 or the
// first event, whichever is earlier, and as many as fit.
func (m *Model) dayWindow(col view.DayColumn, rows int) (int, int) {
	if m.height <= 0 || rows >= view.HoursPerDay {
		return 0, view.HoursPerDay
	}
	if rows < 4 {
		rows = 4
	}
	first := 8
	for _, it := range col.Timed {
		if hr := it.Event.Start().Hour(); dateutil.SameDay(it.Event.Start(), col.Date) && hr < first {
			first = hr
		}
	}
	last := first + rows
	if last > view.HoursPerDay {
		last = view.HoursPerDay
		first = max(last-rows, 0)
	}
	return first, last
}

// renderAgenda lists the selected day's events with the cursor.
func (m *Model) renderAgenda() string {
	w, _ := m.size()
	events := m.dayEvents()
	title := m.theme.Header.Title.Render(dateutil.FormatDisplayDate(m.st.SelectedDate))
	if len(events) == 0 {
		return title + "\n" + m.theme.Grid.More.Render("No events")
	}
	lines := []string{title}
	for i, ev := range events {
		marker := "  "
		if i == m.selected {
			marker = "› "
		}
		when := "all day"
		if !ev.IsAllDay {
			when = dateutil.FormatTime(ev.Start()) + "–" + dateutil.FormatTime(ev.End())
		}
		color := view.CalendarColor(m.st.Calendars, ev.CalendarID)
		line := marker + m.theme.Swatch(color).Render("●") + " " + clip(fmt.Sprintf("%-11s %s", when, ev.Title), w-4)
		if i == m.selected {
			line = m.theme.Grid.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderCalendars() string {
	w, _ := m.size()
	lines := []string{m.theme.Header.Title.Render("Calendars"), ""}
	if len(m.st.Calendars) == 0 {
		lines = append(lines, m.theme.Grid.More.Render("No calendars"))
	}
	for i, c := range m.st.Calendars {
		marker := "  "
		if i == m.calIndex {
			marker = "› "
		}
		check := "[ ]"
		if c.IsVisible {
			check = "[x]"
		}
		name := c.Name
		if c.IsDefault {
			name += " (default)"
		}
		line := marker + check + " " + m.theme.Swatch(c.Color).Render("●") + " " + clip(name, w-10)
		if i == m.calIndex {
			line = m.theme.Grid.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderConfirm() string {
	if m.confirm == nil {
		return ""
	}
	body := strings.Join([]string{
		m.theme.Modal.Title.Render(m.confirm.title),
		"",
		m.theme.Modal.Body.Render(m.confirm.message),
		"",
		m.theme.Footer.Help.Render("y delete · n cancel"),
	}, "\n")
	return m.theme.Modal.Frame.Render(body)
}

func joinColumns(cols []string) string {
	parts := make([]string, 0, len(cols)*2)
	for i, c := range cols {
		if i > 0 {
			parts = append(parts, " ")
		}
		parts = append(parts, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
