package search

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultDelay is how long input must pause before a search is issued.
	DefaultDelay = 300 * time.Millisecond
	// DefaultTimeout bounds a single search request.
	DefaultTimeout = 5 * time.Second
)

// Item is anything the pipeline can render and select.
type Item interface {
	DisplayName() string
}

// Searcher runs one query against a backend.
type Searcher[T Item] interface {
	Search(ctx context.Context, query string) ([]T, error)
}

// SearcherFunc adapts a function to [Searcher].
type SearcherFunc[T Item] func(ctx context.Context, query string) ([]T, error)

func (f SearcherFunc[T]) Search(ctx context.Context, query string) ([]T, error) {
	return f(ctx, query)
}

// Renderer receives every change to the visible result list.
//
// Render is called with the pipeline's lock held so results arrive in issue order.
// Implementations must return quickly and must not call back into the [Pipeline].
type Renderer[T Item] interface {
	Render(Result[T])
}

// RendererFunc adapts a function to [Renderer].
type RendererFunc[T Item] func(Result[T])

func (f RendererFunc[T]) Render(r Result[T]) { f(r) }

// Options configures a [Pipeline]. Zero values select the defaults.
type Options[T Item] struct {
	Delay    time.Duration // Debounce delay (default 300ms)
	Timeout  time.Duration // Per-request timeout (default 5s)
	Logger   *log.Logger   // Diagnostic channel for failures and dropped responses
	OnSelect func(T)       // Called after Select, outside the lock
}

// Pipeline turns raw input events into at most one search per pause in typing and
// guarantees only the most recently issued search is ever rendered.
type Pipeline[T Item] struct {
	mu       sync.Mutex
	searcher Searcher[T]
	renderer Renderer[T]
	logger   *log.Logger
	delay    time.Duration
	timeout  time.Duration
	onSelect func(T)

	base     context.Context
	stop     context.CancelFunc
	inflight sync.WaitGroup

	query    string
	selected *T
	items    []T
	shown    State // Idle, Showing or Empty: what the rendered list currently displays

	timer    *time.Timer
	timerGen uint64
	pending  bool

	seq     uint64 // latest issued (or invalidated) request tag
	waiting bool
	cancel  context.CancelFunc

	closed bool
}

// New creates a [Pipeline] that searches with s and renders with r.
func New[T Item](s Searcher[T], r Renderer[T], opts Options[T]) *Pipeline[T] {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	base, stop := context.WithCancel(context.Background())

	return &Pipeline[T]{
		searcher: s,
		renderer: r,
		logger:   opts.Logger,
		delay:    opts.Delay,
		timeout:  opts.Timeout,
		onSelect: opts.OnSelect,
		base:     base,
		stop:     stop,
		shown:    Idle,
	}
}

// Input records the full current text of the search box.
//
// Empty text clears the results immediately. Anything else (re)starts the debounce timer.
// Input never performs I/O itself.
func (p *Pipeline[T]) Input(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	p.query = text
	if p.selected != nil && (*p.selected).DisplayName() != text {
		p.selected = nil
	}

	p.stopTimer()

	if text == "" {
		p.invalidate()
		p.items = nil
		p.shown = Idle
		p.renderer.Render(Result[T]{Kind: Cleared, Seq: p.seq})
		return
	}

	p.timerGen++
	gen := p.timerGen
	p.pending = true
	p.timer = time.AfterFunc(p.delay, func() { p.elapsed(gen, text) })
}

// Select makes item the current selection, writes its display name into the query and hides the list.
//
// Selecting the same item again leaves the pipeline in the same state.
func (p *Pipeline[T]) Select(item T) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}

	p.stopTimer()
	p.invalidate()

	selected := item
	p.selected = &selected
	p.query = item.DisplayName()
	p.hide()
	onSelect := p.onSelect
	p.mu.Unlock()

	if onSelect != nil {
		onSelect(item)
	}
}

// Dismiss hides the result list without touching the query or the selection.
func (p *Pipeline[T]) Dismiss() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	p.stopTimer()
	p.invalidate()
	p.hide()
}

// Close stops the timer, cancels any in-flight search and waits for it to return.
func (p *Pipeline[T]) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.stopTimer()
	p.invalidate()
	p.stop()
	p.mu.Unlock()

	p.inflight.Wait()
}

// elapsed issues the search for the query captured when the timer was armed.
func (p *Pipeline[T]) elapsed(gen uint64, query string) {
	p.mu.Lock()
	if p.closed || gen != p.timerGen {
		p.mu.Unlock()
		return
	}

	p.pending = false
	p.timer = nil

	if p.cancel != nil {
		p.cancel()
	}

	p.seq++
	seq := p.seq
	ctx, cancel := context.WithTimeout(p.base, p.timeout)
	p.cancel = cancel
	p.waiting = true
	p.inflight.Add(1)
	p.mu.Unlock()

	defer p.inflight.Done()

	p.logger.Debug("search issued", "query", query, "seq", seq)
	items, err := p.searcher.Search(ctx, query)
	p.settle(seq, query, items, err)
	cancel()
}

// settle applies a finished search if its tag is still the latest one issued.
func (p *Pipeline[T]) settle(seq uint64, query string, items []T, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || seq != p.seq {
		p.logger.Debug("dropping stale search response", "query", query, "seq", seq, "latest", p.seq)
		return
	}

	p.waiting = false
	p.cancel = nil

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = &TimeoutError{Query: query, After: p.timeout, Err: err}
		}
		p.logger.Warn("search failed", "query", query, "seq", seq, "err", err)
		p.renderer.Render(Result[T]{Kind: Failed, Query: query, Seq: seq, Items: p.items, Err: err})
		return
	}

	if len(items) == 0 {
		p.items = nil
		p.shown = Empty
		p.renderer.Render(Result[T]{Kind: NoResults, Query: query, Seq: seq})
		return
	}

	p.items = items
	p.shown = Showing
	p.renderer.Render(Result[T]{Kind: Found, Query: query, Seq: seq, Items: items})
}

// stopTimer cancels a pending debounce timer. A callback that already fired is
// ignored through the timer generation check in elapsed.
func (p *Pipeline[T]) stopTimer() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.timerGen++
	p.pending = false
}

// invalidate marks any in-flight search as stale.
func (p *Pipeline[T]) invalidate() {
	p.seq++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.waiting = false
}

// hide hides the rendered list, emitting a [Hidden] result only when something was visible.
func (p *Pipeline[T]) hide() {
	if p.shown == Idle {
		return
	}
	p.shown = Idle
	p.renderer.Render(Result[T]{Kind: Hidden, Query: p.query, Seq: p.seq})
}

// State reports the current state of the pipeline.
func (p *Pipeline[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state()
}

func (p *Pipeline[T]) state() State {
	switch {
	case p.pending:
		return Debouncing
	case p.waiting:
		return Waiting
	default:
		return p.shown
	}
}

// Snapshot returns a copy of the observable pipeline state.
func (p *Pipeline[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := Snapshot[T]{
		State:   p.state(),
		Query:   p.query,
		Visible: p.shown != Idle,
		Items:   append([]T(nil), p.items...),
	}
	if p.selected != nil {
		sel := *p.selected
		snap.Selected = &sel
	}
	return snap
}

// Query returns the current query text.
func (p *Pipeline[T]) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// Selected returns the current selection, if any.
func (p *Pipeline[T]) Selected() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.selected == nil {
		var zero T
		return zero, false
	}
	return *p.selected, true
}
