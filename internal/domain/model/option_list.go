package model

import "fmt"

// LoadState is the lifecycle of one option list.
type LoadState int

const (
	// LoadIdle means no request has been issued yet.
	LoadIdle LoadState = iota
	// LoadLoading means a request is in flight.
	LoadLoading
	// LoadLoaded means the last request succeeded.
	LoadLoaded
	// LoadFailed means the last request failed; Items keeps what was loaded before.
	LoadFailed
)

// String returns the lowercase name used in JSON and templates.
func (s LoadState) String() string {
	switch s {
	case LoadIdle:
		return "idle"
	case LoadLoading:
		return "loading"
	case LoadLoaded:
		return "loaded"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s LoadState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *LoadState) UnmarshalText(text []byte) error {
	for _, state := range []LoadState{LoadIdle, LoadLoading, LoadLoaded, LoadFailed} {
		if state.String() == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown load state %q", text)
}

// OptionList is a fetched list of select options together with its load state.
type OptionList[T any] struct {
	State LoadState `json:"state"`
	Items []T       `json:"items"`
	Error string    `json:"error,omitempty"`
}

// Loading marks the list as in flight without dropping current items.
func (l *OptionList[T]) Loading() {
	l.State = LoadLoading
	l.Error = ""
}

// Loaded replaces the items.
func (l *OptionList[T]) Loaded(items []T) {
	l.State = LoadLoaded
	l.Items = items
	l.Error = ""
}

// Failed records err and keeps the previous items.
func (l *OptionList[T]) Failed(err error) {
	l.State = LoadFailed
	if err != nil {
		l.Error = err.Error()
	}
}

// Clone returns a copy whose Items slice does not alias the receiver's.
func (l OptionList[T]) Clone() OptionList[T] {
	out := l
	out.Items = append(make([]T, 0, len(l.Items)), l.Items...)
	return out
}
