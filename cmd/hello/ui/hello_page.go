package ui

import (
	"context"
	"strings"
	"sync"

	"hellonerd/internal/api"
	"hellonerd/internal/config"
	"hellonerd/internal/display"
	"hellonerd/internal/logging"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Fetcher loads the hello payload. *api.Client satisfies it.
type Fetcher interface {
	Hello(ctx context.Context) (*api.Payload, error)
}

// PageOptions configures a HelloPageModel.
type PageOptions struct {
	Heading string
	Label   string
	// Reloads, when set, delivers config changes. Heading, label and theme
	// follow them; the request is never repeated.
	Reloads <-chan *config.Config
}

type helloSettledMsg struct {
	payload *api.Payload
	err     error
}

type configReloadedMsg struct {
	cfg *config.Config
	ok  bool
}

// HelloPageModel is the hello page: a heading and the display state of a
// single request made when the page is mounted.
type HelloPageModel struct {
	ctx     context.Context
	cancel  context.CancelFunc
	fetcher Fetcher
	once    *sync.Once

	state   display.State
	spinner spinner.Model
	styles  Styles
	heading string
	label   string
	reloads <-chan *config.Config

	width    int
	quitting bool
}

// NewHelloPageModel creates a page bound to ctx. Quitting the page
// cancels the request if it is still in flight.
func NewHelloPageModel(ctx context.Context, fetcher Fetcher, styles Styles, opts PageOptions) HelloPageModel {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	label := opts.Label
	if label == "" {
		label = config.DefaultConfig().UI.Label
	}

	return HelloPageModel{
		ctx:     ctx,
		cancel:  cancel,
		fetcher: fetcher,
		once:    &sync.Once{},
		state:   display.NewState(),
		spinner: sp,
		styles:  styles,
		heading: opts.Heading,
		label:   label,
		reloads: opts.Reloads,
		width:   80,
	}
}

// State returns the current display state.
func (m HelloPageModel) State() display.State { return m.state }

// Heading returns the heading currently shown.
func (m HelloPageModel) Heading() string { return m.heading }

// Label returns the text shown before the display state.
func (m HelloPageModel) Label() string { return m.label }

// Settle runs the page's request synchronously and applies the result.
// Print mode uses it in place of a program loop; it issues nothing if the
// request was already handed out.
func (m HelloPageModel) Settle() HelloPageModel {
	cmd := m.fetch()
	if cmd == nil {
		return m
	}
	if msg, ok := cmd().(helloSettledMsg); ok {
		m.settle(msg)
	}
	return m
}

// Init starts the spinner, the request and the reload listener.
func (m HelloPageModel) Init() tea.Cmd {
	logging.UI("hello page mounted")
	return tea.Batch(m.spinner.Tick, m.fetch(), m.waitForReload())
}

// fetch returns the request command the first time it is called for this
// page and nil afterwards.
func (m HelloPageModel) fetch() tea.Cmd {
	var cmd tea.Cmd
	m.once.Do(func() {
		ctx, fetcher := m.ctx, m.fetcher
		cmd = func() tea.Msg {
			payload, err := fetcher.Hello(ctx)
			return helloSettledMsg{payload: payload, err: err}
		}
	})
	return cmd
}

func (m HelloPageModel) waitForReload() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	ch := m.reloads
	return func() tea.Msg {
		cfg, ok := <-ch
		return configReloadedMsg{cfg: cfg, ok: ok}
	}
}

// Update handles messages.
func (m HelloPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case helloSettledMsg:
		m.settle(msg)
		return m, nil

	case spinner.TickMsg:
		if m.state.Settled() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case configReloadedMsg:
		if !msg.ok {
			m.reloads = nil
			return m, nil
		}
		m.applyConfig(msg.cfg)
		return m, m.waitForReload()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *HelloPageModel) settle(msg helloSettledMsg) {
	log := logging.Get(logging.CategoryUI)
	var changed bool
	switch {
	case msg.err != nil:
		changed = m.state.Fail(api.Description(msg.err))
	case msg.payload == nil:
		changed = m.state.Show("")
	default:
		changed = m.state.Show(msg.payload.Message)
	}
	if !changed {
		log.Warn("ignoring second settlement, state already %s", m.state.Phase())
		return
	}
	log.Info("display state -> %s", m.state.Phase())
}

func (m *HelloPageModel) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.heading = cfg.UI.Heading
	if cfg.UI.Label != "" {
		m.label = cfg.UI.Label
	}
	m.styles = NewStyles(ThemeByName(cfg.UI.Theme))
	m.spinner.Style = m.styles.Spinner
	logging.UI("appearance reloaded (heading=%q theme=%s)", cfg.UI.Heading, cfg.UI.Theme)
}

// View renders the page.
func (m HelloPageModel) View() string {
	var sb strings.Builder

	if m.heading != "" {
		sb.WriteString(m.styles.Heading.Render(m.heading))
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Label.Render(m.label))
	sb.WriteString(" ")
	switch m.state.Phase() {
	case display.PhaseLoading:
		sb.WriteString(m.styles.Message.Render(m.state.Text()))
		sb.WriteString(" ")
		sb.WriteString(m.spinner.View())
	case display.PhaseErrorDisplayed:
		sb.WriteString(m.styles.Error.Render(m.state.Text()))
	default:
		sb.WriteString(m.styles.Message.Render(m.state.Text()))
	}

	if !m.quitting {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Footer.Render("q to quit"))
	}

	return m.styles.Body.Width(m.width).Render(sb.String()) + "\n"
}
