package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/agroscan/internal/model"
	"github.com/verte-zerg/agroscan/internal/session"
	"github.com/verte-zerg/agroscan/internal/upload"
)

func (m *Model) listenElementCmd() tea.Cmd {
	ch := m.elementCh
	return func() tea.Msg {
		return elementConfigMsg{cfg: <-ch}
	}
}

func (m *Model) checkAuthCmd() tea.Cmd {
	m.authGen++
	gen := m.authGen
	sessions := m.sessions
	return func() tea.Msg {
		return sessionCheckedMsg{gen: gen, session: sessions.Refresh(context.Background())}
	}
}

func (m *Model) loginCmd() tea.Cmd {
	email := strings.TrimSpace(m.loginInputs[0].Value())
	password := m.loginInputs[1].Value()
	m.showAuthBanner(bannerInfo, m.tr.Translate("common.loading"))
	m.authGen++
	gen := m.authGen
	sessions := m.sessions
	return func() tea.Msg {
		outcome := sessions.Login(context.Background(), email, password)
		return authResultMsg{gen: gen, email: email, outcome: outcome}
	}
}

func (m *Model) signupCmd() tea.Cmd {
	email := strings.TrimSpace(m.signupInputs[0].Value())
	password := m.signupInputs[1].Value()
	confirm := m.signupInputs[2].Value()
	if password != confirm {
		// Validation failure: no network call, inline message only.
		m.showAuthBanner(bannerError, "✗ "+m.tr.Translate("auth.mismatch"))
		return hideAfter(mismatchBannerDelay, hideAuthBannerMsg{seq: m.authBanner.seq})
	}
	m.showAuthBanner(bannerInfo, m.tr.Translate("common.loading"))
	m.authGen++
	gen := m.authGen
	sessions := m.sessions
	return func() tea.Msg {
		outcome := sessions.Signup(context.Background(), email, password, confirm)
		return authResultMsg{gen: gen, signup: true, email: email, outcome: outcome}
	}
}

func (m *Model) logoutCmd() tea.Cmd {
	m.authGen++
	gen := m.authGen
	sessions := m.sessions
	return func() tea.Msg {
		return logoutResultMsg{gen: gen, outcome: sessions.Logout(context.Background())}
	}
}

func (m *Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.authGen {
		return m, nil
	}
	switch msg.outcome.Code {
	case session.OK:
		if msg.signup {
			m.showAuthBanner(bannerSuccess, "✓ "+msg.outcome.Message+" "+m.tr.Translate("auth.pleaseLogIn"))
			return m, hideAfter(signupSwitchDelay, signupToLoginMsg{seq: m.authBanner.seq})
		}
		m.sess = m.sessions.Current()
		m.showAuthBanner(bannerSuccess, "✓ "+msg.outcome.Message)
		return m, hideAfter(loginRedirectDelay, loginNavigateMsg{seq: m.authBanner.seq})
	default:
		m.showAuthBanner(bannerError, "✗ "+msg.outcome.Message)
		return m, hideAfter(failureBannerDelay, hideAuthBannerMsg{seq: m.authBanner.seq})
	}
}

func (m *Model) handleLogoutResult(msg logoutResultMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.authGen {
		return m, nil
	}
	if msg.outcome.Code != session.OK {
		m.showAlert(msg.outcome.Message)
		return m, hideAfter(failureBannerDelay, hideAlertMsg{seq: m.alert.seq})
	}
	m.sess = m.sessions.Current()
	m.dashboardEntries = nil
	m.dashboardSummary = model.DashboardSummary{}
	return m, m.navigate(model.PageHome)
}

func (m *Model) stageFromPathInput() tea.Cmd {
	path := strings.TrimSpace(m.pathInput.Value())
	if path == "" {
		return nil
	}
	if err := m.pipeline.StageFile(path); err != nil {
		if err == upload.ErrNotImage {
			m.showAlert(m.tr.Translate("analyze.notImage"))
		} else {
			m.showAlert(err.Error())
		}
		return hideAfter(failureBannerDelay, hideAlertMsg{seq: m.alert.seq})
	}
	m.result = nil
	m.qrArt = ""
	return nil
}

func (m *Model) submitAnalysis() tea.Cmd {
	if m.analyzing {
		return nil
	}
	if m.pipeline.Staged() == nil {
		m.showAlert(m.tr.Translate("analyze.selectFirst"))
		return hideAfter(failureBannerDelay, hideAlertMsg{seq: m.alert.seq})
	}
	m.analyzing = true
	m.uploadGen++
	gen := m.uploadGen
	pipeline := m.pipeline
	pageURL := m.client.BaseURL() + "/" + m.router.Fragment()
	return func() tea.Msg {
		result, err := pipeline.Submit(context.Background())
		if err != nil {
			return analysisDoneMsg{gen: gen, err: err}
		}
		qr, qrErr := upload.EncodeQR(upload.NewQRPayload(result, time.Now(), pageURL))
		if qrErr != nil {
			logErrf("failed to render qr: %v\n", qrErr)
		}
		return analysisDoneMsg{gen: gen, result: result, qr: qr}
	}
}

func (m *Model) handleAnalysisDone(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.uploadGen {
		return m, nil
	}
	m.analyzing = false
	if msg.err != nil {
		m.showAlert(msg.err.Error())
		return m, hideAfter(failureBannerDelay, hideAlertMsg{seq: m.alert.seq})
	}
	result := msg.result
	m.result = &result
	m.qrArt = msg.qr
	return m, m.recordScanCmd(result)
}

func (m *Model) recordScanCmd(result model.AnalysisResult) tea.Cmd {
	st := m.store
	if st == nil {
		return nil
	}
	staged := m.pipeline.Staged()
	path := ""
	if staged != nil {
		path = staged.Path
	}
	record := model.ScanRecord{
		Path:       path,
		Prediction: result.Prediction,
		Confidence: result.Confidence,
		CreatedAt:  time.Now(),
	}
	return func() tea.Msg {
		if _, err := st.InsertScan(context.Background(), record); err != nil {
			logErrf("failed to record scan: %v\n", err)
		}
		return nil
	}
}

func (m *Model) loadDashboardCmd() tea.Cmd {
	m.dashboardGen++
	gen := m.dashboardGen
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		status := client.CheckAuth(ctx)
		if !status.Authenticated {
			return dashboardLoadedMsg{gen: gen, authed: false}
		}
		list, err := client.MyImages(ctx)
		if err != nil {
			return dashboardLoadedMsg{gen: gen, authed: true, err: err}
		}
		entries := make([]model.ScanEntry, 0, len(list.Images))
		for _, img := range list.Images {
			entry := model.ScanEntry{
				ImageURL:   img.ImageURL,
				Prediction: img.Prediction,
			}
			if parsed, perr := time.Parse(time.RFC3339, img.CreatedAt); perr == nil {
				entry.CreatedAt = parsed
			}
			entries = append(entries, entry)
		}
		return dashboardLoadedMsg{gen: gen, authed: true, entries: entries}
	}
}

func (m *Model) submitContact() tea.Cmd {
	for _, input := range m.contactInput {
		if strings.TrimSpace(input.Value()) == "" {
			m.contactBanner.seq++
			m.contactBanner = banner{kind: bannerError, text: m.tr.Translate("contact.nameRequired"), seq: m.contactBanner.seq, visible: true}
			return hideAfter(failureBannerDelay, hideContactBannerMsg{seq: m.contactBanner.seq})
		}
	}
	m.contactBanner.seq++
	m.contactBanner = banner{kind: bannerSuccess, text: "✓ " + m.tr.Translate("contact.messageSent"), seq: m.contactBanner.seq, visible: true}
	m.typing = false
	cmd := m.syncFocus()
	return tea.Batch(cmd, hideAfter(contactBannerDelay, hideContactBannerMsg{seq: m.contactBanner.seq}))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
