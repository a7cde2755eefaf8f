package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/agroscan/internal/api"
	"github.com/verte-zerg/agroscan/internal/element"
	"github.com/verte-zerg/agroscan/internal/i18n"
	"github.com/verte-zerg/agroscan/internal/model"
	"github.com/verte-zerg/agroscan/internal/router"
	"github.com/verte-zerg/agroscan/internal/session"
	"github.com/verte-zerg/agroscan/internal/store"
	"github.com/verte-zerg/agroscan/internal/theme"
	"github.com/verte-zerg/agroscan/internal/upload"
)

// Transient banner display durations, matching the original timings.
const (
	loginRedirectDelay  = 1500 * time.Millisecond
	signupSwitchDelay   = 2 * time.Second
	mismatchBannerDelay = 2500 * time.Millisecond
	failureBannerDelay  = 3 * time.Second
	contactBannerDelay  = 4 * time.Second
)

type bannerKind int

const (
	bannerInfo bannerKind = iota
	bannerSuccess
	bannerError
)

type banner struct {
	kind    bannerKind
	text    string
	seq     int
	visible bool
}

type authTab int

const (
	tabLogin authTab = iota
	tabSignup
)

// Messages produced by asynchronous commands. Every message that mutates
// shared state carries the generation it was issued under, so a stale
// response arriving after the state moved on is dropped.
type (
	sessionCheckedMsg struct {
		gen     int
		session model.Session
	}
	authResultMsg struct {
		gen     int
		signup  bool
		email   string
		outcome session.Outcome
	}
	logoutResultMsg struct {
		gen     int
		outcome session.Outcome
	}
	analysisDoneMsg struct {
		gen    int
		result model.AnalysisResult
		qr     string
		err    error
	}
	dashboardLoadedMsg struct {
		gen     int
		authed  bool
		entries []model.ScanEntry
		err     error
	}
	hideAuthBannerMsg    struct{ seq int }
	hideContactBannerMsg struct{ seq int }
	hideAlertMsg         struct{ seq int }
	loginNavigateMsg     struct{ seq int }
	signupToLoginMsg     struct{ seq int }
	elementConfigMsg     struct{ cfg element.SiteConfig }
)

// Model is the client shell. It owns all mutable state; rendering is a pure
// projection of it.
type Model struct {
	client   *api.Client
	sessions *session.Manager
	pipeline *upload.Pipeline
	store    *store.Store
	tr       *i18n.Translator
	router   *router.Router
	hook     *element.Hook

	prefs  model.Preferences
	themed theme.Theme
	styles theme.Styles
	site   element.SiteConfig

	homeCards      []theme.Card
	dashboardCards []theme.Card

	width  int
	height int

	sess model.Session

	authTab      authTab
	loginInputs  []textinput.Model
	signupInputs []textinput.Model
	contactInput []textinput.Model
	pathInput    textinput.Model
	focusIdx     int
	typing       bool

	langMenuOpen    bool
	accountMenuOpen bool

	authBanner    banner
	contactBanner banner
	alert         banner

	analyzing bool
	result    *model.AnalysisResult
	qrArt     string

	dashboardEntries []model.ScanEntry
	dashboardSummary model.DashboardSummary
	dashboardErr     string

	authGen      int
	uploadGen    int
	dashboardGen int

	elementCh chan element.SiteConfig
}

// Deps bundles what the shell needs.
type Deps struct {
	Client   *api.Client
	Store    *store.Store
	Prefs    model.Preferences
	Fragment string
}

// NewModel constructs the shell model.
func NewModel(deps Deps) (*Model, error) {
	tr, err := i18n.New(deps.Prefs.Language)
	if err != nil {
		return nil, err
	}
	m := &Model{
		client:   deps.Client,
		sessions: session.NewManager(deps.Client),
		pipeline: upload.NewPipeline(deps.Client),
		store:    deps.Store,
		tr:       tr,
		router:   router.New(deps.Fragment),
		prefs:    deps.Prefs,
		homeCards: []theme.Card{
			{Gradient: theme.GradientGreen},
			{Gradient: theme.GradientOrange},
			{Gradient: theme.GradientGreenOrange},
		},
		dashboardCards: []theme.Card{
			{Gradient: theme.GradientRedOrange},
		},
		elementCh: make(chan element.SiteConfig, 8),
	}
	m.hook = element.NewHook(func(cfg element.SiteConfig) {
		select {
		case m.elementCh <- cfg:
		default:
		}
	})
	m.site = m.hook.Current()
	m.applyTheme()
	m.initInputs()
	start := m.router.Active()
	m.typing = start == model.PageLogin || start == model.PageContact
	m.syncFocus()
	return m, nil
}

// Hook exposes the theming hook so a host watcher can feed it.
func (m *Model) Hook() *element.Hook {
	return m.hook
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.checkAuthCmd(), m.listenElementCmd()}
	if m.router.Active() == model.PageDashboard {
		cmds = append(cmds, m.loadDashboardCmd())
	}
	return tea.Batch(cmds...)
}

func (m *Model) applyTheme() {
	m.themed = theme.Select(m.prefs.DarkMode)
	m.styles = theme.NewStyles(m.themed)
	theme.ApplyDark(m.homeCards, m.prefs.DarkMode)
	theme.ApplyDark(m.dashboardCards, m.prefs.DarkMode)
}

func (m *Model) initInputs() {
	newInput := func(prompt string, secret bool) textinput.Model {
		input := textinput.New()
		input.Prompt = prompt
		input.CharLimit = 0
		input.Cursor.SetMode(cursor.CursorBlink)
		if secret {
			input.EchoMode = textinput.EchoPassword
			input.EchoCharacter = '•'
		}
		return input
	}
	m.loginInputs = []textinput.Model{
		newInput("Email: ", false),
		newInput("Password: ", true),
	}
	m.signupInputs = []textinput.Model{
		newInput("Email: ", false),
		newInput("Password: ", true),
		newInput("Confirm: ", true),
	}
	m.contactInput = []textinput.Model{
		newInput("Name: ", false),
		newInput("Email: ", false),
		newInput("Message: ", false),
	}
	m.pathInput = newInput("Image path: ", false)
	m.pathInput.Placeholder = "leaf.png"
}

// activeInputs returns the input set for the current page, or nil.
func (m *Model) activeInputs() []textinput.Model {
	switch m.router.Active() {
	case model.PageLogin:
		if m.authTab == tabSignup {
			return m.signupInputs
		}
		return m.loginInputs
	case model.PageContact:
		return m.contactInput
	case model.PageAnalyze:
		return []textinput.Model{m.pathInput}
	default:
		return nil
	}
}

func (m *Model) storeInputs(inputs []textinput.Model) {
	switch m.router.Active() {
	case model.PageLogin:
		if m.authTab == tabSignup {
			m.signupInputs = inputs
		} else {
			m.loginInputs = inputs
		}
	case model.PageContact:
		m.contactInput = inputs
	case model.PageAnalyze:
		m.pathInput = inputs[0]
	}
}

// syncFocus focuses the tracked field and blurs the rest. Form pages start
// in typing mode.
func (m *Model) syncFocus() tea.Cmd {
	inputs := m.activeInputs()
	if len(inputs) == 0 {
		m.typing = false
		return nil
	}
	if m.focusIdx >= len(inputs) {
		m.focusIdx = 0
	}
	var cmd tea.Cmd
	for i := range inputs {
		if m.typing && i == m.focusIdx {
			cmd = inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
	m.storeInputs(inputs)
	return cmd
}

// navigate activates a page, resetting per-page focus. The dashboard page
// triggers a history refresh.
func (m *Model) navigate(page model.Page) tea.Cmd {
	refresh := m.router.ActivatePage(page)
	m.focusIdx = 0
	m.typing = page == model.PageLogin || page == model.PageContact
	m.langMenuOpen = false
	m.accountMenuOpen = false
	cmd := m.syncFocus()
	if refresh {
		return tea.Batch(cmd, m.loadDashboardCmd())
	}
	return cmd
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case elementConfigMsg:
		m.site = msg.cfg
		return m, m.listenElementCmd()
	case sessionCheckedMsg:
		if msg.gen == m.authGen {
			m.sess = msg.session
		}
		return m, nil
	case authResultMsg:
		return m.handleAuthResult(msg)
	case logoutResultMsg:
		return m.handleLogoutResult(msg)
	case analysisDoneMsg:
		return m.handleAnalysisDone(msg)
	case dashboardLoadedMsg:
		if msg.gen != m.dashboardGen {
			return m, nil
		}
		if !msg.authed {
			// The dashboard is only available to signed-in users.
			return m, m.navigate(model.PageLogin)
		}
		if msg.err != nil {
			m.dashboardErr = msg.err.Error()
			return m, nil
		}
		m.dashboardErr = ""
		m.dashboardEntries = msg.entries
		m.dashboardSummary = summarize(msg.entries)
		return m, nil
	case hideAuthBannerMsg:
		if msg.seq == m.authBanner.seq {
			m.authBanner.visible = false
		}
		return m, nil
	case hideContactBannerMsg:
		if msg.seq == m.contactBanner.seq {
			m.contactBanner.visible = false
			for i := range m.contactInput {
				m.contactInput[i].SetValue("")
			}
		}
		return m, nil
	case hideAlertMsg:
		if msg.seq == m.alert.seq {
			m.alert.visible = false
		}
		return m, nil
	case loginNavigateMsg:
		if msg.seq != m.authBanner.seq {
			return m, nil
		}
		m.authBanner.visible = false
		for i := range m.loginInputs {
			m.loginInputs[i].SetValue("")
		}
		return m, m.navigate(model.PageDashboard)
	case signupToLoginMsg:
		if msg.seq != m.authBanner.seq {
			return m, nil
		}
		m.authBanner.visible = false
		for i := range m.signupInputs {
			m.signupInputs[i].SetValue("")
		}
		m.authTab = tabLogin
		m.focusIdx = 0
		return m, m.syncFocus()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.langMenuOpen {
		return m.handleLangMenuKey(msg)
	}
	if m.accountMenuOpen {
		return m.handleAccountMenuKey(msg)
	}

	switch msg.String() {
	case "ctrl+t":
		return m, m.toggleDarkMode()
	case "ctrl+g":
		m.langMenuOpen = true
		return m, nil
	case "ctrl+o":
		if m.sess.Authenticated {
			m.accountMenuOpen = !m.accountMenuOpen
			return m, nil
		}
		return m, m.navigate(model.PageLogin)
	}

	if m.typing {
		return m.handleTypingKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "h":
		return m, m.moveTab(-1)
	case "right", "l":
		return m, m.moveTab(1)
	case "1", "2", "3", "4", "5", "6", "7":
		idx := int(msg.String()[0] - '1')
		return m, m.navigate(model.Page(idx))
	case "i", "/":
		if len(m.activeInputs()) > 0 {
			m.typing = true
			return m, m.syncFocus()
		}
		return m, nil
	case "s":
		if m.router.Active() == model.PageAnalyze {
			return m, m.submitAnalysis()
		}
		return m, nil
	case "r":
		if m.router.Active() == model.PageAnalyze {
			m.pipeline.Reset()
			m.result = nil
			m.qrArt = ""
			m.pathInput.SetValue("")
			return m, nil
		}
		return m, nil
	case "tab":
		if m.router.Active() == model.PageLogin {
			m.switchAuthTab()
			return m, m.syncFocus()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleLangMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1":
		return m, m.setLanguage(i18n.LangEN)
	case "2":
		return m, m.setLanguage(i18n.LangAZ)
	case "esc", "ctrl+g":
		m.langMenuOpen = false
		return m, nil
	}
	return m, nil
}

func (m *Model) handleAccountMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.accountMenuOpen = false
		return m, m.logoutCmd()
	case "esc", "ctrl+o":
		m.accountMenuOpen = false
		return m, nil
	}
	return m, nil
}

func (m *Model) handleTypingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.typing = false
		return m, m.syncFocus()
	case tea.KeyTab:
		inputs := m.activeInputs()
		if m.router.Active() == model.PageLogin && m.focusIdx == len(inputs)-1 {
			// Tab past the last field flips between the login and
			// signup forms.
			m.switchAuthTab()
			return m, m.syncFocus()
		}
		m.focusIdx = (m.focusIdx + 1) % len(inputs)
		return m, m.syncFocus()
	case tea.KeyShiftTab:
		inputs := m.activeInputs()
		m.focusIdx = (m.focusIdx - 1 + len(inputs)) % len(inputs)
		return m, m.syncFocus()
	case tea.KeyEnter:
		return m.handleFormSubmit()
	}
	inputs := m.activeInputs()
	if len(inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	inputs[m.focusIdx], cmd = inputs[m.focusIdx].Update(msg)
	m.storeInputs(inputs)
	return m, cmd
}

func (m *Model) handleFormSubmit() (tea.Model, tea.Cmd) {
	switch m.router.Active() {
	case model.PageLogin:
		if m.authTab == tabSignup {
			return m, m.signupCmd()
		}
		return m, m.loginCmd()
	case model.PageContact:
		return m, m.submitContact()
	case model.PageAnalyze:
		m.typing = false
		cmd := m.syncFocus()
		return m, tea.Batch(cmd, m.stageFromPathInput())
	}
	return m, nil
}

func (m *Model) moveTab(delta int) tea.Cmd {
	pages := model.Pages()
	next := (m.router.IndicatorIndex() + delta + len(pages)) % len(pages)
	return m.navigate(pages[next])
}

func (m *Model) switchAuthTab() {
	if m.authTab == tabLogin {
		m.authTab = tabSignup
	} else {
		m.authTab = tabLogin
	}
	m.focusIdx = 0
	m.typing = true
}

func (m *Model) toggleDarkMode() tea.Cmd {
	m.prefs.DarkMode = !m.prefs.DarkMode
	m.applyTheme()
	dark := m.prefs.DarkMode
	st := m.store
	return func() tea.Msg {
		if st != nil {
			if err := st.SetDarkMode(context.Background(), dark); err != nil {
				logErrf("failed to persist dark mode: %v\n", err)
			}
		}
		return nil
	}
}

func (m *Model) setLanguage(lang string) tea.Cmd {
	m.prefs.Language = lang
	m.tr.SetLanguage(lang)
	m.langMenuOpen = false
	st := m.store
	return func() tea.Msg {
		if st != nil {
			if err := st.SetLanguage(context.Background(), lang); err != nil {
				logErrf("failed to persist language: %v\n", err)
			}
		}
		return nil
	}
}

func (m *Model) showAuthBanner(kind bannerKind, text string) {
	m.authBanner.seq++
	m.authBanner = banner{kind: kind, text: text, seq: m.authBanner.seq, visible: true}
}

func (m *Model) showAlert(text string) {
	m.alert.seq++
	m.alert = banner{kind: bannerError, text: text, seq: m.alert.seq, visible: true}
}

func hideAfter(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}
