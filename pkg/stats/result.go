package stats

// Status tells whether a statistic could be computed and, if not, why.
type Status int

const (
	StatusOK Status = iota
	// StatusInvalid means the inputs did not contain enough usable data.
	StatusInvalid
	// StatusMalformed means the timecard has no usable card list.
	StatusMalformed
	// StatusUnavailable means a derived per-contributor value could not be produced.
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalid:
		return "invalid"
	case StatusMalformed:
		return "malformed"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Result carries a computed value together with its Status. Value is the zero
// value of T unless Status is StatusOK.
type Result[T any] struct {
	Value  T
	Status Status
}

func (r Result[T]) Ok() bool {
	return r.Status == StatusOK
}

func ok[T any](value T) Result[T] {
	return Result[T]{Value: value, Status: StatusOK}
}

func failed[T any](status Status) Result[T] {
	return Result[T]{Status: status}
}
