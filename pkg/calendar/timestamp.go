package calendar

import (
	"encoding/json"
	"fmt"
	"time"
)

// ParseTime parses the stored timestamp format.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}

// Timestamp is a time.Time stored as an ISO-8601 string.
type Timestamp struct {
	time.Time
}

// MarshalJSON writes the timestamp as an RFC3339 string in UTC.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", FormatTime(t.Time))), nil
}

// UnmarshalJSON rehydrates a stored string into local time.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTime renders v in the stored representation.
func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}
