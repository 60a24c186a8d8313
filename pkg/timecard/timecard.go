package timecard

import (
	"bytes"
	"encoding/json"
	"time"
)

// Timecard is the content of a repository's timecard file.
// A nil Card marks the timecard as malformed: the "card" field was absent
// or was not a list. A non-nil empty Card is a valid timecard with no days.
type Timecard struct {
	ReportFormat string     `json:"reportFormat,omitempty"`
	HourlyRate   float64    `json:"hourlyRate,omitempty"`
	Name         string     `json:"name,omitempty"`
	Tagline      string     `json:"tagline,omitempty"`
	PrimaryColor string     `json:"primaryColor,omitempty"`
	Card         []DayEntry `json:"card"`
}

type DayEntry struct {
	Date     string      `json:"date"`
	Disabled string      `json:"disabled,omitempty"`
	Times    []TimeRange `json:"times"`
}

// TimeRange is a single worked interval. End is empty while the range is still open.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
	By    string `json:"by,omitempty"`
}

// Malformed reports whether the timecard has no usable card list.
func (t Timecard) Malformed() bool {
	return t.Card == nil
}

// UnmarshalJSON decodes a timecard without failing on a card of the wrong shape.
// A missing, null or non-list "card" leaves Card nil so callers can tell a
// malformed timecard apart from an empty one.
func (t *Timecard) UnmarshalJSON(data []byte) error {
	var raw struct {
		ReportFormat string          `json:"reportFormat"`
		HourlyRate   float64         `json:"hourlyRate"`
		Name         string          `json:"name"`
		Tagline      string          `json:"tagline"`
		PrimaryColor string          `json:"primaryColor"`
		Card         json.RawMessage `json:"card"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		// not an object at all; keep the zero value, which is malformed
		*t = Timecard{}
		return nil
	}

	*t = Timecard{
		ReportFormat: raw.ReportFormat,
		HourlyRate:   raw.HourlyRate,
		Name:         raw.Name,
		Tagline:      raw.Tagline,
		PrimaryColor: raw.PrimaryColor,
	}

	card := bytes.TrimSpace(raw.Card)
	if len(card) == 0 || card[0] != '[' {
		return nil
	}
	days := make([]DayEntry, 0)
	if err := json.Unmarshal(card, &days); err != nil {
		return nil
	}
	t.Card = days
	return nil
}

// IsOpen reports whether the range has not been closed yet.
func (r TimeRange) IsOpen() bool {
	return r.End == ""
}

// Duration returns the length of a closed range. The second value is false for
// open ranges, unparseable clock values, and ranges that do not end after they start.
func (r TimeRange) Duration() (time.Duration, bool) {
	if r.IsOpen() {
		return 0, false
	}
	start, ok := ParseClock(r.Start)
	if !ok {
		return 0, false
	}
	end, ok := ParseClock(r.End)
	if !ok {
		return 0, false
	}
	if end <= start {
		return 0, false
	}
	return end - start, true
}

var clockLayouts = []string{"15:04:05", "15:04"}

// ParseClock parses a clock-of-day string such as "1:00:00" or "13:30" into an offset from midnight.
func ParseClock(s string) (time.Duration, bool) {
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second, true
	}
	return 0, false
}

// NewTemplate returns the empty timecard committed to a repository on import.
func NewTemplate(name, tagline string) Timecard {
	return Timecard{
		ReportFormat: "default",
		Name:         name,
		Tagline:      tagline,
		PrimaryColor: "#d45500",
		Card:         []DayEntry{},
	}
}
