package editor

// EventPatch overrides form fields with values typed outside the form, such
// as command-line flags. Dates are YYYY-MM-DD and times HH:MM; empty strings
// keep the form's value.
type EventPatch struct {
	Title       string
	Description string
	Location    string
	// Calendar is a reference resolved by Apply's resolver.
	Calendar string
	Date     string
	Start    string
	EndDate  string
	End      string
	AllDay   *bool
	// Reminder is minutes before start; negative clears it.
	Reminder *int
}

// Apply writes the set fields onto f. A new Date moves the end date with it
// unless EndDate is also set.
func (p EventPatch) Apply(f *EventForm, resolve func(ref string) (string, error)) error {
	if p.Title != "" {
		f.Title = p.Title
	}
	if p.Description != "" {
		f.Description = p.Description
	}
	if p.Location != "" {
		f.Location = p.Location
	}
	if p.Calendar != "" {
		id := p.Calendar
		if resolve != nil {
			var err error
			if id, err = resolve(p.Calendar); err != nil {
				return err
			}
		}
		f.CalendarID = id
	}
	if p.Date != "" {
		f.StartDate = p.Date
		if p.EndDate == "" {
			f.EndDate = p.Date
		}
	}
	if p.EndDate != "" {
		f.EndDate = p.EndDate
	}
	if p.Start != "" {
		f.StartTime = p.Start
	}
	if p.End != "" {
		f.EndTime = p.End
	}
	if p.AllDay != nil {
		f.SetAllDay(*p.AllDay)
	}
	if p.Reminder != nil {
		if *p.Reminder < 0 {
			f.Reminder = nil
		} else {
			r := *p.Reminder
			f.Reminder = &r
		}
	}
	return nil
}
