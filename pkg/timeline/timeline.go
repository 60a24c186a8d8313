package timeline

import (
	"github.com/klokku/repocard/pkg/commit"
)

const (
	// ReferenceLength is the raw length given to the first commit of a timeline.
	ReferenceLength = 100
	compressionBase = 8
	// BreakThreshold is the length above which a marker is drawn as a break.
	BreakThreshold = compressionBase * 5
)

// Marker is a commit decorated with its position on the timeline.
type Marker struct {
	Commit commit.Commit
	// TimeLength is the raw gap to the previous commit in milliseconds and never changes.
	TimeLength float64
	// Length is the compressed, relative length of the marker.
	Length float64
	// BreakInside marks a gap too large to draw proportionally.
	BreakInside bool
}

// Normalize turns commits into timeline markers, in the same order.
// Gaps that touch a commit with an unparseable timestamp get a raw length of 0.
func Normalize(commits []commit.Commit) []Marker {
	markers := make([]Marker, 0, len(commits))
	for i, c := range commits {
		length := float64(ReferenceLength)
		if i > 0 {
			length = gapMillis(commits[i-1], c)
		}
		markers = append(markers, Marker{
			Commit:     c,
			TimeLength: length,
			Length:     length,
		})
	}
	compress(markers)
	return markers
}

// compress applies compressionBase-1 passes. Pass k divides every length by
// compressionBase-k; the break flag is taken from the length before that division.
func compress(markers []Marker) {
	for pass := 1; pass < compressionBase; pass++ {
		divisor := float64(compressionBase - pass)
		for i := range markers {
			markers[i].BreakInside = markers[i].Length > BreakThreshold
			markers[i].Length = markers[i].Length / divisor
		}
	}
}

func gapMillis(prev, cur commit.Commit) float64 {
	prevTime, ok := prev.Time()
	if !ok {
		return 0
	}
	curTime, ok := cur.Time()
	if !ok {
		return 0
	}
	gap := prevTime.Sub(curTime).Milliseconds()
	if gap < 0 {
		gap = -gap
	}
	return float64(gap)
}
