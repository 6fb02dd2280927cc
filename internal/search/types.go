package search

import (
	"fmt"
	"time"

	"github.com/desertthunder/songrec/internal/shared"
)

// State is the pipeline's position in its lifecycle.
type State int

const (
	Idle       State = iota // no query or list hidden
	Debouncing              // timer running, nothing issued yet
	Waiting                 // request in flight
	Showing                 // results rendered
	Empty                   // "no results" rendered
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Debouncing:
		return "debouncing"
	case Waiting:
		return "waiting"
	case Showing:
		return "showing"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Kind tells a [Renderer] what to draw.
type Kind int

const (
	Found     Kind = iota // Items holds the new result list
	NoResults             // the search succeeded with nothing to show
	Failed                // the search failed; Items holds the previously rendered list
	Cleared               // the query was emptied; drop the list
	Hidden                // the list was dismissed or a result was selected
)

func (k Kind) String() string {
	switch k {
	case Found:
		return "found"
	case NoResults:
		return "no_results"
	case Failed:
		return "failed"
	case Cleared:
		return "cleared"
	case Hidden:
		return "hidden"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is one render instruction.
type Result[T Item] struct {
	Kind  Kind
	Query string // query the result belongs to
	Seq   uint64 // tag of the request (or invalidation) that produced it
	Items []T
	Err   error
}

// Snapshot is a point-in-time copy of a pipeline's observable state.
type Snapshot[T Item] struct {
	State    State
	Query    string
	Selected *T
	Visible  bool
	Items    []T
}

// TimeoutError reports a search that did not finish within the pipeline timeout.
type TimeoutError struct {
	Query string
	After time.Duration
	Err   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("search %q timed out after %v", e.Query, e.After)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// Is reports a match against [shared.ErrTimeout].
func (e *TimeoutError) Is(target error) bool { return target == shared.ErrTimeout }

// ChannelRenderer delivers results over a channel, keeping only the newest undelivered one.
//
// Every [Result] describes the whole list, so a consumer that falls behind only needs the latest.
type ChannelRenderer[T Item] struct {
	ch chan Result[T]
}

// NewChannelRenderer creates a [ChannelRenderer].
func NewChannelRenderer[T Item]() *ChannelRenderer[T] {
	return &ChannelRenderer[T]{ch: make(chan Result[T], 1)}
}

// Render replaces any undelivered result with r. It never blocks.
func (c *ChannelRenderer[T]) Render(r Result[T]) {
	for {
		select {
		case c.ch <- r:
			return
		default:
		}
		select {
		case <-c.ch:
		default:
		}
	}
}

// Results is the channel consumers read from.
func (c *ChannelRenderer[T]) Results() <-chan Result[T] {
	return c.ch
}
