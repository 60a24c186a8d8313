package commit

import (
	"encoding/json"
	"time"
)

type Committer struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	URL      string `json:"url"`
	Type     string `json:"type"`
}

// Commit is a single change on a branch. When is kept as received so a
// corrupt timestamp on one commit does not stop the others from being read.
type Commit struct {
	Committer Committer `json:"committer"`
	Message   string    `json:"message"`
	Sha       string    `json:"sha"`
	When      string    `json:"when"`
}

// UnmarshalJSON accepts a when of any JSON type. Anything but a string is
// kept as its raw text and fails to parse in Time.
func (c *Commit) UnmarshalJSON(data []byte) error {
	type plain Commit
	var raw struct {
		plain
		When json.RawMessage `json:"when"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Commit(raw.plain)
	c.When = ""
	if len(raw.When) == 0 || string(raw.When) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw.When, &c.When); err != nil {
		c.When = string(raw.When)
	}
	return nil
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
}

// Timestamps without a zone are local time.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Time parses When as an ISO 8601 timestamp.
func (c Commit) Time() (time.Time, bool) {
	if c.When == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, c.When); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, c.When, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatWhen renders t the way commit timestamps are exchanged.
func FormatWhen(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
