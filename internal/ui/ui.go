package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/songrec/internal/models"
	"github.com/desertthunder/songrec/internal/search"
	"github.com/desertthunder/songrec/internal/shared"
	"github.com/desertthunder/songrec/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	RecommendView
)

// Options configures a [Model]. Zero values select the defaults.
type Options struct {
	Delay   time.Duration      // Debounce delay for the search box
	Timeout time.Duration      // Per-search timeout
	Logger  *log.Logger        // Must not write to the terminal the TUI owns
	Open    func(string) error // Opens a URL (default [shared.OpenBrowser])
	Copy    func(string) error // Writes to the clipboard (default [clipboard.WriteAll])
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	view   ViewState
	engine *tasks.Engine
	logger *log.Logger
	open   func(string) error
	copy   func(string) error

	pipeline *search.Pipeline[models.Song]
	results  *search.ChannelRenderer[models.Song]

	width      int
	height     int
	input      textinput.Model
	searchList list.Model
	recList    list.Model
	spinner    spinner.Model
	help       help.Model
	keys       keyMap

	listVisible bool
	searchErr   error
	resultCount int

	run      *recommendRun
	seed     string
	progress tasks.ProgressUpdate
	recErr   error
	status   statusMsg
}

// NewModel creates a new TUI model. Search results come from searcher through a debounced
// pipeline; recommendations go through engine.
func NewModel(ctx context.Context, searcher search.Searcher[models.Song], engine *tasks.Engine, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewDiscardLogger()
	}
	if opts.Open == nil {
		opts.Open = shared.OpenBrowser
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	ti := textinput.New()
	ti.Placeholder = "Search for a song..."
	ti.Prompt = "♪ "
	ti.CharLimit = 120
	ti.Width = 40
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.cursor

	results := search.NewChannelRenderer[models.Song]()

	return &Model{
		ctx:    ctx,
		view:   SearchView,
		engine: engine,
		logger: opts.Logger,
		open:   opts.Open,
		copy:   opts.Copy,
		pipeline: search.New[models.Song](searcher, results, search.Options[models.Song]{
			Delay:   opts.Delay,
			Timeout: opts.Timeout,
			Logger:  shared.WithLogger(opts.Logger, "component", "search"),
		}),
		results:    results,
		input:      ti,
		searchList: newSongList("", true),
		recList:    newSongList("", false),
		spinner:    s,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Close stops the search pipeline and waits for any in-flight search.
func (m *Model) Close() {
	m.pipeline.Close()
}

// Init starts the cursor blink, the spinner and the search result listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForResult())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-6, 10)
		m.searchList.SetSize(msg.Width-4, max(msg.Height-10, 3))
		m.recList.SetSize(msg.Width-4, max(msg.Height-8, 4))
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case RecommendView:
			return m.handleRecommendKeys(msg)
		}

	case searchResultMsg:
		m.applyResult(search.Result[models.Song](msg))
		return m, m.waitForResult()

	case recommendProgressMsg:
		if msg.run != m.run {
			return m, nil
		}
		m.progress = msg.update
		return m, m.waitForRecommend(msg.run)

	case recommendDoneMsg:
		if msg.run != m.run {
			return m, nil
		}
		m.run = nil
		m.recErr = msg.err
		if msg.err != nil {
			m.logger.Warn("recommendation failed", "seed", msg.run.seed, "err", msg.err)
			return m, nil
		}
		cmd := m.recList.SetItems(songItems(msg.songs))
		m.recList.Select(0)
		return m, cmd

	case statusMsg:
		m.status = msg
		if msg.err != nil {
			m.logger.Warn(msg.text, "err", msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.view == SearchView {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case SearchView:
		return m.renderSearch()
	case RecommendView:
		return m.renderRecommendations()
	default:
		return ""
	}
}

// applyResult mirrors one pipeline render onto the result list.
func (m *Model) applyResult(r search.Result[models.Song]) {
	switch r.Kind {
	case search.Found:
		m.searchErr = nil
		m.resultCount = len(r.Items)
		m.searchList.SetItems(songItems(r.Items))
		m.searchList.Select(0)
		m.listVisible = true
	case search.NoResults:
		m.searchErr = nil
		m.resultCount = 0
		m.searchList.SetItems(nil)
		m.listVisible = true
	case search.Failed:
		m.searchErr = r.Err
	case search.Cleared:
		m.searchErr = nil
		m.resultCount = 0
		m.searchList.SetItems(nil)
		m.listVisible = false
	case search.Hidden:
		m.listVisible = false
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.exit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.dismiss):
		m.pipeline.Dismiss()
		return m, nil
	case key.Matches(msg, m.keys.up):
		if m.listVisible {
			m.searchList.CursorUp()
		}
		return m, nil
	case key.Matches(msg, m.keys.down):
		if m.listVisible {
			m.searchList.CursorDown()
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		return m, m.choose()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.pipeline.Input(after)
	}
	return m, cmd
}

// choose selects the highlighted result (or takes the typed text as is) and fetches
// recommendations for it.
func (m *Model) choose() tea.Cmd {
	query := m.input.Value()
	seed := strings.TrimSpace(query)

	var record tea.Cmd
	if song, ok := selectedSong(m.searchList); ok && m.listVisible {
		m.pipeline.Select(song)
		// SetValue does not go through Input: the pipeline already holds the selected name.
		m.input.SetValue(song.DisplayName())
		m.input.CursorEnd()
		seed = song.DisplayName()
		m.listVisible = false
		record = m.recordSelection(query, m.resultCount, seed)
	} else {
		m.pipeline.Dismiss()
		m.listVisible = false
	}

	if seed == "" {
		return nil
	}
	return tea.Batch(record, m.startRecommend(seed), m.spinner.Tick)
}

func (m *Model) handleRecommendKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = SearchView
		m.run = nil
		m.status = statusMsg{}
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.spotify):
		return m, m.openLink(shared.Spotify)
	case key.Matches(msg, m.keys.youtube):
		return m, m.openLink(shared.YouTubeMusic)
	case key.Matches(msg, m.keys.copy):
		return m, m.copyLink()
	}

	var cmd tea.Cmd
	m.recList, cmd = m.recList.Update(msg)
	return m, cmd
}

func (m *Model) waitForResult() tea.Cmd {
	return func() tea.Msg {
		select {
		case r := <-m.results.Results():
			return searchResultMsg(r)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) startRecommend(seed string) tea.Cmd {
	run := &recommendRun{
		seed:     seed,
		progress: make(chan tasks.ProgressUpdate, 8),
		done:     make(chan recommendDoneMsg, 1),
	}
	m.run = run
	m.seed = seed
	m.recErr = nil
	m.progress = tasks.ProgressUpdate{}
	m.status = statusMsg{}
	m.recList.SetItems(nil)
	m.recList.Title = fmt.Sprintf("Songs like %s", seed)
	m.recList.SetShowTitle(true)
	m.view = RecommendView
	m.input.Blur()

	go func() {
		res, err := m.engine.Recommend(m.ctx, run.progress, seed)
		done := recommendDoneMsg{run: run, err: err}
		if res != nil {
			done.songs = res.Songs
		}
		run.done <- done
	}()

	return m.waitForRecommend(run)
}

func (m *Model) waitForRecommend(run *recommendRun) tea.Cmd {
	return func() tea.Msg {
		select {
		case update := <-run.progress:
			return recommendProgressMsg{run: run, update: update}
		case done := <-run.done:
			return done
		}
	}
}

func (m *Model) recordSelection(query string, count int, selected string) tea.Cmd {
	return func() tea.Msg {
		m.engine.RecordSearch(query, count, selected)
		return nil
	}
}

func (m *Model) openLink(svc shared.StreamingService) tea.Cmd {
	song, ok := selectedSong(m.recList)
	if !ok {
		return nil
	}
	url := shared.SearchURL(svc, song.Name, song.Artist)
	open := m.open

	return func() tea.Msg {
		if err := open(url); err != nil {
			return statusMsg{text: "failed to open browser", err: err}
		}
		return statusMsg{text: fmt.Sprintf("Opened %s in %s", song.Name, svc)}
	}
}

func (m *Model) copyLink() tea.Cmd {
	song, ok := selectedSong(m.recList)
	if !ok {
		return nil
	}
	url := shared.SpotifySearchURL(song.Name, song.Artist)
	copyFn := m.copy

	return func() tea.Msg {
		if err := copyFn(url); err != nil {
			return statusMsg{text: "failed to copy link", err: err}
		}
		return statusMsg{text: "Copied link to clipboard"}
	}
}

func (m *Model) renderSearch() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("songrec"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch state := m.pipeline.State(); {
	case state == search.Debouncing || state == search.Waiting:
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), styles.help.Render("Searching..."))
	case m.searchErr != nil:
		b.WriteString(styles.warn.Render("⚠ search failed, showing previous results"))
		b.WriteString("\n")
	default:
		b.WriteString("\n")
	}

	if m.listVisible {
		if len(m.searchList.Items()) == 0 {
			b.WriteString(styles.help.Render("No songs found"))
		} else {
			b.WriteString(m.searchList.View())
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.searchHelp()))
	return b.String()
}

func (m *Model) renderRecommendations() string {
	var b strings.Builder

	switch {
	case m.run != nil:
		message := m.progress.Message
		if message == "" {
			message = fmt.Sprintf("Finding songs like %s...", m.seed)
		}
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), message)
	case m.recErr != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("Could not get recommendations for %s: %v", m.seed, m.recErr)))
		b.WriteString("\n")
	case len(m.recList.Items()) == 0:
		b.WriteString(styles.help.Render(fmt.Sprintf("No recommendations for %s", m.seed)))
		b.WriteString("\n")
	default:
		b.WriteString(m.recList.View())
		b.WriteString("\n")
	}

	switch {
	case m.status.err != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("%s: %v", m.status.text, m.status.err)))
		b.WriteString("\n")
	case m.status.text != "":
		b.WriteString(styles.ok.Render("✓ " + m.status.text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.recommendHelp()))
	return b.String()
}
