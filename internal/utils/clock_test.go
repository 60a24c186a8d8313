package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemClock_Now(t *testing.T) {
	now := SystemClock{}.Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Minute)
}

func TestMockClock(t *testing.T) {
	start := time.Date(2016, 3, 26, 10, 45, 0, 0, time.UTC)
	clock := &MockClock{FixedNow: start}

	assert.Equal(t, start, clock.Now())

	clock.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), clock.Now())

	clock.SetNow(start)
	assert.Equal(t, start, clock.Now())
}
