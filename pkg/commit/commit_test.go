package commit

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit_Time(t *testing.T) {
	tests := []struct {
		name   string
		when   string
		want   time.Time
		wantOk bool
	}{
		{"utc", "2016-03-26T10:45:00Z", time.Date(2016, time.March, 26, 10, 45, 0, 0, time.UTC), true},
		{"with offset", "2016-03-26T12:45:00+02:00", time.Date(2016, time.March, 26, 10, 45, 0, 0, time.UTC), true},
		{"fractional seconds", "2016-03-26T10:45:00.5Z", time.Date(2016, time.March, 26, 10, 45, 0, 500000000, time.UTC), true},
		{"milliseconds", "2016-03-26T10:45:00.000Z", time.Date(2016, time.March, 26, 10, 45, 0, 0, time.UTC), true},
		{"basic offset", "2016-03-26T11:45:00+0100", time.Date(2016, time.March, 26, 10, 45, 0, 0, time.UTC), true},
		{"space separator", "2016-03-26 10:45:00Z", time.Date(2016, time.March, 26, 10, 45, 0, 0, time.UTC), true},
		{"space separator with offset", "2016-03-26 12:45:00+02:00", time.Date(2016, time.March, 26, 10, 45, 0, 0, time.UTC), true},
		{"no zone is local", "2016-03-26T10:45:00", time.Date(2016, time.March, 26, 10, 45, 0, 0, time.Local), true},
		{"no zone with space is local", "2016-03-26 10:45:00", time.Date(2016, time.March, 26, 10, 45, 0, 0, time.Local), true},
		{"invalid", "i'm invalid", time.Time{}, false},
		{"date only", "2016-03-26", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Commit{When: tt.when}.Time()
			assert.Equal(t, tt.wantOk, ok)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestCommit_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		wantWhen string
	}{
		{"string", `{"sha": "abc", "when": "2016-03-26T10:45:00Z"}`, "2016-03-26T10:45:00Z"},
		{"number", `{"sha": "abc", "when": 1458989100000}`, "1458989100000"},
		{"object", `{"sha": "abc", "when": {"at": 1}}`, `{"at": 1}`},
		{"null", `{"sha": "abc", "when": null}`, ""},
		{"missing", `{"sha": "abc"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Commit
			require.NoError(t, json.Unmarshal([]byte(tt.json), &c))
			assert.Equal(t, "abc", c.Sha)
			assert.Equal(t, tt.wantWhen, c.When)
		})
	}
}

func TestCommit_UnmarshalJSON_KeepsOtherFields(t *testing.T) {
	// given
	data := `[
	  {"committer": {"username": "1egoman", "type": "user"}, "message": "first", "sha": "a", "when": 42},
	  {"committer": {"username": "1egoman"}, "message": "second", "sha": "b", "when": "2016-03-26T10:50:00Z"}
	]`

	// when
	var commits []Commit
	err := json.Unmarshal([]byte(data), &commits)

	// then
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, Committer{Username: "1egoman", Type: "user"}, commits[0].Committer)
	assert.Equal(t, "first", commits[0].Message)
	_, ok := commits[0].Time()
	assert.False(t, ok)
	_, ok = commits[1].Time()
	assert.True(t, ok)
}

func TestCommit_UnmarshalJSON_NotAnObject(t *testing.T) {
	var c Commit
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &c))
}

func TestFormatWhen(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	assert.Equal(t, "2016-03-26T10:45:00Z", FormatWhen(time.Date(2016, time.March, 26, 12, 45, 0, 0, loc)))
}
