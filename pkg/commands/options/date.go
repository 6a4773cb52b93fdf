package options

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// DateOptions picks the day a command works on.
type DateOptions struct {
	DateString string
}

func AddDateArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVar(&o.DateString, "date", "",
		`Specify a date, example: --date="2024-5-15" or --date="5/15". Defaults to today.`)
}

// GetDate returns the chosen day, or the zero time when unset.
func (o *DateOptions) GetDate(now time.Time) (time.Time, error) {
	return ParseDay(o.DateString, now)
}

// RangeOptions bound a listing by day.
type RangeOptions struct {
	From string
	To   string
}

func AddRangeArgs(cmd *cobra.Command, o *RangeOptions) {
	cmd.Flags().StringVar(&o.From, "from", "",
		"First day to include. Open when unset.")
	cmd.Flags().StringVar(&o.To, "to", "",
		"Last day to include. Open when unset.")
}

// Bounds returns the start of From and the end of To.
func (o *RangeOptions) Bounds(now time.Time) (from, to time.Time, err error) {
	if from, err = ParseDay(o.From, now); err != nil {
		return
	}
	if to, err = ParseDay(o.To, now); err != nil || to.IsZero() {
		return
	}
	to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return
}

// ParseDay reads "2024-5-15" or "5/15" in the local zone. A short date
// without a year that already passed means next year.
func ParseDay(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(layoutISO, s, time.Local)
	if err == nil {
		return t, nil
	}
	t, err = time.ParseInLocation(layoutISOShort, s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	t = t.AddDate(now.Year(), 0, 0)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if t.Before(today) {
		t = t.AddDate(1, 0, 0)
	}
	return t, nil
}
