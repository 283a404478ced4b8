package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"wheelpage/internal/config"
	"wheelpage/internal/domain"
	"wheelpage/internal/eventbus"
	"wheelpage/internal/pager"
	"wheelpage/internal/ui/views"
)

// Delta field names filled in from terminal wheel buttons
const (
	FieldVertical   = "deltaY"
	FieldHorizontal = "deltaX"
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	deck   *domain.Deck
	ctrl   *pager.Controller
	sched  pager.Scheduler
	logger log.FieldLogger

	// UI-specific state
	width         int
	height        int
	keys          keyMap
	help          help.Model
	progress      progress.Model
	gotoInput     textinput.Model
	prompting     bool
	statusMessage string
	statusIsError bool
	inPagerMode   bool   // tracks if we're currently in pager mode
	rebuilding    bool   // swallows callbacks while a controller is replaced
	configSeq     uint64 // sequence of the last ConfigChangedEvent

	renderer  *views.Renderer
	textPager TextPager

	// Program reference for terminal management
	program atomic.Pointer[tea.Program]
}

// ModelOption customizes NewModel
type ModelOption func(*Model)

// WithScheduler replaces the program-backed timer scheduler
func WithScheduler(s pager.Scheduler) ModelOption {
	return func(m *Model) { m.sched = s }
}

// WithLogger sets the logger used by the model and its controller
func WithLogger(l log.FieldLogger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// WithTextPager replaces the ov pager
func WithTextPager(p TextPager) ModelOption {
	return func(m *Model) { m.textPager = p }
}

// NewModel creates a new UI model. bus may be nil.
func NewModel(cfg *config.Config, deck *domain.Deck, bus eventbus.EventBus, opts ...ModelOption) (*Model, error) {
	ti := textinput.New()
	ti.Prompt = "Go to page: "
	ti.Placeholder = fmt.Sprintf("1-%d", deck.Len())
	ti.CharLimit = 6

	m := &Model{
		bus:       bus,
		config:    cfg,
		deck:      deck,
		logger:    log.StandardLogger(),
		keys:      newKeyMap(),
		help:      help.New(),
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		gotoInput: ti,
		renderer:  views.NewRenderer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sched == nil {
		m.sched = pager.NewQueueScheduler(m.post)
	}

	ctrl, err := m.newController()
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	return m, nil
}

// SetProgram sets the program reference used for timers and the pager
func (m *Model) SetProgram(p *tea.Program) {
	m.program.Store(p)
	if m.textPager == nil {
		m.textPager = NewOvPager(p)
	}
}

// Controller returns the active page controller
func (m *Model) Controller() *pager.Controller {
	return m.ctrl
}

// post hands an expired timer to the update loop. Runs on timer goroutines.
func (m *Model) post(run func()) {
	if p := m.program.Load(); p != nil {
		p.Send(timerFiredMsg{run: run})
	}
}

// newController builds a controller from the current config with the
// model's callbacks attached
func (m *Model) newController() (*pager.Controller, error) {
	opts, err := m.config.PagerOptions(m.deck.Len())
	if err != nil {
		return nil, err
	}
	opts.Logger = m.logger
	opts.OnScrollStart = func(pct float64, page int) {
		m.publish(eventbus.ScrollStartedEvent{Percentage: pct, Page: page})
	}
	opts.OnScroll = func(pct float64, page int) {
		m.publish(eventbus.ScrolledEvent{Percentage: pct, Page: page})
	}
	opts.OnScrollStop = func(pct float64, page int) {
		m.publish(eventbus.ScrollStoppedEvent{Percentage: pct, Page: page})
	}
	opts.OnPageChange = func(previous, current int) {
		title := ""
		if p := m.deck.Page(current); p != nil {
			title = p.Title
		}
		m.publish(eventbus.PageChangedEvent{Previous: previous, Current: current, Title: title})
	}
	return pager.New(opts, m.sched)
}

func (m *Model) publish(e eventbus.DomainEvent) {
	if m.bus == nil || m.rebuilding {
		return
	}
	m.bus.Publish(e)
}

// rebuildController swaps in a controller built from the updated config,
// keeping page and enabled state
func (m *Model) rebuildController() error {
	next, err := m.newController()
	if err != nil {
		return err
	}

	m.rebuilding = true
	defer func() { m.rebuilding = false }()

	if m.deck.Len() > 0 {
		if err := next.Reposition(m.ctrl.Page()); err != nil {
			next.Close()
			return err
		}
	}
	if !m.ctrl.Enabled() {
		next.Disable()
	}
	m.ctrl.Close()
	m.ctrl = next
	return nil
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		m.handleWheel(msg)
		return m, nil

	case timerFiredMsg:
		msg.run()
		return m, nil

	case tea.KeyMsg:
		if m.prompting {
			return m, m.handlePromptKey(msg)
		}
		return m, m.handleKey(msg)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			m.logger.WithError(msg.err).Warn("help pager failed")
		}
		return m, nil

	case pageViewerMsg:
		if msg.err != nil {
			m.logger.WithError(msg.err).WithField("page", msg.page).Warn("page viewer failed")
			m.publish(eventbus.ErrorEvent{Message: "page viewer failed", Err: msg.err})
			return m, m.setStatus("Could not open pager", true)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		m.statusIsError = false
		return m, nil
	}

	return m, nil
}

// wheelEvent normalizes a terminal wheel button into a pager event
func (m *Model) wheelEvent(msg tea.MouseMsg) (pager.WheelEvent, bool) {
	if msg.Action != tea.MouseActionPress {
		return nil, false
	}

	step := m.config.UISettings.WheelStep
	if m.config.UISettings.InvertWheel {
		step = -step
	}

	switch msg.Button {
	case tea.MouseButtonWheelDown:
		return pager.WheelEvent{FieldVertical: step}, true
	case tea.MouseButtonWheelUp:
		return pager.WheelEvent{FieldVertical: -step}, true
	case tea.MouseButtonWheelRight:
		return pager.WheelEvent{FieldHorizontal: step}, true
	case tea.MouseButtonWheelLeft:
		return pager.WheelEvent{FieldHorizontal: -step}, true
	default:
		return nil, false
	}
}

func (m *Model) handleWheel(msg tea.MouseMsg) {
	ev, ok := m.wheelEvent(msg)
	if !ok {
		return
	}
	res := m.ctrl.HandleScroll(ev)
	if res != pager.Handled {
		m.logger.WithField("result", res).Trace("wheel event not reduced")
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Close()
		return tea.Quit

	case key.Matches(msg, m.keys.Jump):
		m.prompting = true
		m.gotoInput.Reset()
		return m.gotoInput.Focus()

	case key.Matches(msg, m.keys.Toggle):
		if m.ctrl.Enabled() {
			m.ctrl.Disable()
		} else {
			m.ctrl.Enable()
		}
		enabled := m.ctrl.Enabled()
		m.publish(eventbus.PagerToggledEvent{Enabled: enabled})
		if enabled {
			return m.setStatus("Wheel input enabled", false)
		}
		return m.setStatus("Wheel input disabled", false)

	case key.Matches(msg, m.keys.Momentum):
		return m.toggleSetting("momentum", &m.config.Pager.Momentum)

	case key.Matches(msg, m.keys.StopAtPage):
		return m.toggleSetting("stop at page", &m.config.Pager.StopAtPage)

	case key.Matches(msg, m.keys.EaseBack):
		return m.toggleSetting("ease back", &m.config.Pager.EaseBack)

	case key.Matches(msg, m.keys.Open):
		return m.openPage()

	case key.Matches(msg, m.keys.Help):
		return m.openHelp()
	}
	return nil
}

// toggleSetting flips a pager setting, rebuilds the controller and asks for
// the change to be persisted
func (m *Model) toggleSetting(name string, setting *bool) tea.Cmd {
	*setting = !*setting
	if err := m.rebuildController(); err != nil {
		*setting = !*setting
		m.logger.WithError(err).Error("failed to apply setting")
		return m.setStatus(fmt.Sprintf("Could not change %s: %v", name, err), true)
	}

	m.configSeq++
	m.publish(eventbus.ConfigChangedEvent{
		Seq:        m.configSeq,
		StopAtPage: m.config.Pager.StopAtPage,
		Momentum:   m.config.Pager.Momentum,
		EaseBack:   m.config.Pager.EaseBack,
	})

	state := "off"
	if *setting {
		state = "on"
	}
	return m.setStatus(fmt.Sprintf("%s %s", strings.ToUpper(name[:1])+name[1:], state), false)
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.gotoInput.Value())
		m.closePrompt()
		if value == "" {
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return m.setStatus(fmt.Sprintf("Not a page number: %q", value), true)
		}
		if err := m.ctrl.Reposition(n - 1); err != nil {
			return m.setStatus(fmt.Sprintf("No page %d (1-%d)", n, m.deck.Len()), true)
		}
		return nil
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.gotoInput.Blur()
}

func (m *Model) setStatus(message string, isError bool) tea.Cmd {
	m.statusMessage = message
	m.statusIsError = isError
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// openPage returns a command that shows the current page in the pager
func (m *Model) openPage() tea.Cmd {
	page := m.deck.Page(m.ctrl.Page())
	if page == nil || m.textPager == nil {
		return nil
	}
	index := m.ctrl.Page()
	title := fmt.Sprintf("%d/%d %s", index+1, m.deck.Len(), page.Title)
	body := page.Body
	return m.runPager(func() tea.Msg {
		return pageViewerMsg{page: index, err: m.textPager.Show(title, body)}
	})
}

// openHelp returns a command that shows help in the pager
func (m *Model) openHelp() tea.Cmd {
	if m.textPager == nil {
		return nil
	}
	content := renderHelpContent(m.keys, m.config)
	return m.runPager(func() tea.Msg {
		return helpPagerMsg{err: m.textPager.Show("wheelpage help", content)}
	})
}

// runPager wraps a blocking pager call with pause/resume messages
func (m *Model) runPager(show func() tea.Msg) tea.Cmd {
	return func() tea.Msg {
		p := m.program.Load()
		if p != nil {
			p.Send(pauseRenderingMsg{})
		}
		msg := show()
		if p != nil {
			p.Send(resumeRenderingMsg{})
		}
		return msg
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	prompt := ""
	if m.prompting {
		prompt = m.gotoInput.View()
	}

	return m.renderer.Render(views.ViewState{
		Width:  m.width,
		Height: m.height,
		Deck:   m.deck,
		Scroll: m.scrollState(),
		Flags: []views.Flag{
			{Name: "wheel", On: m.ctrl.Enabled()},
			{Name: "momentum", On: m.config.Pager.Momentum},
			{Name: "stop", On: m.config.Pager.StopAtPage},
			{Name: "ease", On: m.config.Pager.EaseBack},
		},
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		Prompt:        prompt,
		Progress:      m.progressView(),
		HelpView:      m.help.View(m.keys),
	})
}

func (m *Model) scrollState() domain.ScrollState {
	return domain.ScrollState{
		Page:       m.ctrl.Page(),
		Percentage: m.ctrl.Percentage(),
		Scrolling:  m.ctrl.IsScrolling(),
		Easing:     m.ctrl.Easing(),
		Enabled:    m.ctrl.Enabled(),
	}
}

func (m *Model) progressView() string {
	if !m.config.UISettings.ShowProgress {
		return ""
	}
	return m.progress.ViewAs(math.Min(1, math.Abs(m.ctrl.Percentage())))
}
