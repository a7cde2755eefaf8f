package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/agroscan/internal/i18n"
	"github.com/verte-zerg/agroscan/internal/model"
	"github.com/verte-zerg/agroscan/internal/theme"
	"github.com/verte-zerg/agroscan/internal/upload"
)

const maxContentWidth = 96

func (m *Model) contentWidth() int {
	width := m.width
	if width == 0 {
		width = 80
	}
	if width > maxContentWidth {
		width = maxContentWidth
	}
	if width < 20 {
		width = 20
	}
	return width
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.contentWidth()
	sections := []string{m.renderHeader(width)}

	if m.langMenuOpen {
		sections = append(sections, m.renderLangMenu())
	}
	if m.accountMenuOpen {
		sections = append(sections, m.renderAccountMenu())
	}

	switch m.router.Active() {
	case model.PageHome:
		sections = append(sections, m.viewHome(width))
	case model.PageFeatures:
		sections = append(sections, m.viewFeatures(width))
	case model.PageAnalyze:
		sections = append(sections, m.viewAnalyze(width))
	case model.PageDashboard:
		sections = append(sections, m.viewDashboard(width))
	case model.PageGallery:
		sections = append(sections, m.viewGallery(width))
	case model.PageContact:
		sections = append(sections, m.viewContact(width))
	case model.PageLogin:
		sections = append(sections, m.viewLogin(width))
	}

	if m.alert.visible {
		sections = append(sections, m.styles.Banner.Render(m.bannerText(m.alert)))
	}
	sections = append(sections, m.renderFooter(width))
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderHeader(width int) string {
	left := m.styles.Emphasis.Render(m.site.SiteTitle)
	if m.site.Tagline != "" {
		left += "  " + m.styles.Muted.Render(m.site.Tagline)
	}

	account := m.tr.Translate("common.signIn")
	if m.sess.Authenticated {
		account = m.sess.Email
	}
	right := strings.Join([]string{
		m.styles.Muted.Render(strings.ToUpper(m.tr.Language())),
		m.styles.Body.Render(theme.Indicator(m.prefs.DarkMode)),
		m.styles.Info.Render(account),
	}, "  ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	title := left + strings.Repeat(" ", gap) + right

	return title + "\n" + m.renderNav()
}

// renderNav draws the page indicator strip, one dot per page.
func (m *Model) renderNav() string {
	active := m.router.IndicatorIndex()
	parts := make([]string, 0, len(model.Pages()))
	for i, page := range model.Pages() {
		label := m.tr.Translate("nav." + page.String())
		if i == active {
			parts = append(parts, m.styles.ActiveDot.Render("● "+label))
		} else {
			parts = append(parts, m.styles.Dot.Render("○ "+label))
		}
	}
	return strings.Join(parts, "  ")
}

// heading renders a page title, emphasizing the trailing words per policy.
func (m *Model) heading(text string, policy i18n.SplitPolicy) string {
	plain, emphasized := i18n.SplitEmphasis(text, policy)
	switch {
	case plain == "":
		return m.styles.Emphasis.Render(emphasized)
	case emphasized == "":
		return m.styles.Title.Render(plain)
	}
	return m.styles.Title.Render(plain) + " " + m.styles.Emphasis.Render(emphasized)
}

func (m *Model) bannerText(b banner) string {
	switch b.kind {
	case bannerSuccess:
		return m.styles.Success.Render(b.text)
	case bannerError:
		return m.styles.Error.Render(b.text)
	default:
		return m.styles.Info.Render(b.text)
	}
}

// card renders content inside a bordered box. Cards carrying a dark-mode
// gradient override get the primary accent border.
func (m *Model) card(c theme.Card, width int, content string) string {
	st := m.styles.Card.Width(width)
	if c.Override != "" {
		st = st.BorderForeground(m.themed.Primary)
	}
	return st.Render(content)
}

func (m *Model) viewHome(width int) string {
	var b strings.Builder
	b.WriteString(m.heading(m.site.Tagline, i18n.HeroSplit))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Body.Render(wrapText(m.site.HeroDescription, width)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Success.Render("[ " + m.site.CTAButton + " ]"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Title.Render(m.tr.Translate("homeFeatures.title")))
	b.WriteString("\n")

	features := []struct{ title, body string }{
		{"homeFeatures.aiTitle", "homeFeatures.aiBody"},
		{"homeFeatures.monitorTitle", "homeFeatures.monitorBody"},
		{"homeFeatures.insightTitle", "homeFeatures.insightBody"},
	}
	cardWidth := width - 4
	for i, f := range features {
		content := m.styles.Emphasis.Render(m.tr.Translate(f.title)) + "\n" +
			m.styles.Body.Render(wrapText(m.tr.Translate(f.body), cardWidth))
		b.WriteString(m.card(m.homeCards[i], cardWidth, content))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewFeatures(width int) string {
	var b strings.Builder
	b.WriteString(m.heading(m.tr.Translate("features.title"), i18n.TitleSplit))
	b.WriteString("\n\n")
	features := []struct{ title, body string }{
		{"features.detectTitle", "features.detectBody"},
		{"features.historyTitle", "features.historyBody"},
		{"features.shareTitle", "features.shareBody"},
	}
	for _, f := range features {
		b.WriteString(m.styles.Emphasis.Render("▸ " + m.tr.Translate(f.title)))
		b.WriteString("\n")
		b.WriteString(m.styles.Body.Render(wrapText(m.tr.Translate(f.body), width-2)))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) viewAnalyze(width int) string {
	var b strings.Builder
	b.WriteString(m.heading(m.tr.Translate("analyze.title"), i18n.TitleSplit))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Input.Render(m.pathInput.View()))
	b.WriteString("\n")

	staged := m.pipeline.Staged()
	if staged == nil {
		b.WriteString(m.styles.Muted.Render(m.tr.Translate("analyze.dropHint")))
		return b.String()
	}
	b.WriteString(m.styles.Body.Render(staged.Name) + "  " + m.styles.Muted.Render(staged.MediaType))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(previewSummary(staged.PreviewDataURL)))
	b.WriteString("\n")

	switch {
	case m.analyzing:
		b.WriteString("\n" + m.styles.Info.Render(m.tr.Translate("analyze.analyzing")))
	case m.result != nil:
		b.WriteString("\n" + m.renderResult(width))
	}
	return b.String()
}

func (m *Model) renderResult(width int) string {
	result := m.result
	healthy := upload.IsHealthy(result.Prediction)

	var b strings.Builder
	b.WriteString(m.styles.Success.Render("✓ " + m.tr.Translate("analyze.analysisComplete")))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Title.Render(result.Prediction))
	b.WriteString("  ")
	b.WriteString(m.styles.Info.Render(fmt.Sprintf("%.0f%% %s", result.Confidence, m.tr.Translate("common.confidence"))))
	b.WriteString("\n")

	status := m.tr.Translate("analyze.needsAttention")
	risk := m.tr.Translate("analyze.riskHigh")
	advice := m.tr.Translate("analyze.diseasedAdvice")
	verdictStyle := m.styles.Warning
	if healthy {
		status = m.tr.Translate("analyze.excellent")
		risk = m.tr.Translate("analyze.riskLow")
		advice = m.tr.Translate("analyze.healthyAdvice")
		verdictStyle = m.styles.Success
	}
	b.WriteString(m.styles.Muted.Render(m.tr.Translate("analyze.healthStatus")+": ") + verdictStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(m.tr.Translate("analyze.diseaseRisk")+": ") + verdictStyle.Render(risk))
	b.WriteString("\n")
	b.WriteString(m.styles.Body.Render(wrapText(advice, width)))
	if m.qrArt != "" {
		b.WriteString("\n\n")
		b.WriteString(m.qrArt)
	}
	return b.String()
}

func (m *Model) viewDashboard(width int) string {
	var b strings.Builder
	b.WriteString(m.heading(m.tr.Translate("dashboard.title"), i18n.TitleSplit))
	b.WriteString("\n\n")

	if m.dashboardErr != "" {
		b.WriteString(m.styles.Error.Render(m.dashboardErr))
		return b.String()
	}

	summary := m.dashboardSummary
	stats := []struct {
		key   string
		value string
	}{
		{"dashboard.totalScans", fmt.Sprintf("%d", summary.TotalScans)},
		{"dashboard.healthy", fmt.Sprintf("%d", summary.HealthyCount)},
		{"dashboard.issues", fmt.Sprintf("%d", summary.IssueCount)},
		{"dashboard.avgHealth", fmt.Sprintf("%d%%", summary.AvgHealthPct)},
	}
	cells := make([]string, 0, len(stats))
	for _, s := range stats {
		cells = append(cells, m.styles.Card.Render(
			m.styles.Emphasis.Render(s.value)+"\n"+m.styles.Muted.Render(m.tr.Translate(s.key))))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	b.WriteString("\n")

	entries := dashboardCards(m.dashboardEntries)
	if len(entries) == 0 {
		b.WriteString(m.styles.Muted.Render(m.tr.Translate("dashboard.empty")))
		return b.String()
	}
	cardWidth := width - 4
	for _, entry := range entries {
		verdictStyle := m.styles.Warning
		if upload.IsHealthy(entry.Prediction) {
			verdictStyle = m.styles.Success
		}
		content := verdictStyle.Render(entry.Prediction) + "\n" +
			m.styles.Muted.Render(m.tr.Translate("dashboard.scannedOn")+" "+entry.CreatedAt.Format("Jan 2, 2006")) + "\n" +
			m.styles.Muted.Render(entry.ImageURL)
		b.WriteString(m.card(m.dashboardCards[0], cardWidth, content))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) viewGallery(width int) string {
	var b strings.Builder
	b.WriteString(m.heading(m.tr.Translate("gallery.title"), i18n.TitleSplit))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render(wrapText(m.tr.Translate("gallery.subtitle"), width)))
	b.WriteString("\n\n")
	for _, key := range []string{"gallery.wheat", "gallery.tomato", "gallery.corn", "gallery.orchard"} {
		b.WriteString(m.styles.Body.Render("▪ " + m.tr.Translate(key)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) viewContact(width int) string {
	var b strings.Builder
	b.WriteString(m.heading(m.tr.Translate("contact.title"), i18n.ContactTitleSplit))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render(m.site.ContactEmail + "  ·  " + m.site.ContactPhone))
	b.WriteString("\n\n")
	for i := range m.contactInput {
		b.WriteString(m.styles.Input.Render(m.contactInput[i].View()))
		b.WriteString("\n")
	}
	if m.contactBanner.visible {
		b.WriteString("\n" + m.bannerText(m.contactBanner))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) viewLogin(width int) string {
	loginTab := m.styles.Tab.Render(m.tr.Translate("auth.loginTab"))
	signupTab := m.styles.Tab.Render(m.tr.Translate("auth.signupTab"))
	if m.authTab == tabSignup {
		signupTab = m.styles.ActiveTab.Render(m.tr.Translate("auth.signupTab"))
	} else {
		loginTab = m.styles.ActiveTab.Render(m.tr.Translate("auth.loginTab"))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, loginTab, " ", signupTab))
	b.WriteString("\n\n")
	inputs := m.loginInputs
	if m.authTab == tabSignup {
		inputs = m.signupInputs
	}
	for i := range inputs {
		b.WriteString(m.styles.Input.Render(inputs[i].View()))
		b.WriteString("\n")
	}
	if m.authBanner.visible {
		b.WriteString("\n" + m.bannerText(m.authBanner))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderFooter(width int) string {
	help := "q quit · ←/→ pages · 1-7 jump · i edit · ctrl+t theme · ctrl+g lang · ctrl+o account"
	if m.router.Active() == model.PageAnalyze {
		help = "s analyze · r reset · " + help
	}
	line := m.styles.Muted.Render(help)
	fragment := m.styles.Muted.Render(m.router.Fragment())
	gap := width - lipgloss.Width(line) - lipgloss.Width(fragment)
	if gap < 1 {
		return line + " " + fragment
	}
	return line + strings.Repeat(" ", gap) + fragment
}

func (m *Model) renderLangMenu() string {
	lines := []string{
		m.styles.Title.Render("Language"),
		m.styles.Body.Render("1 English"),
		m.styles.Body.Render("2 Azərbaycanca"),
		m.styles.Muted.Render("esc close"),
	}
	return m.styles.Card.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderAccountMenu() string {
	lines := []string{
		m.styles.Info.Render(m.sess.Email),
		m.styles.Body.Render("enter " + m.tr.Translate("common.signOut")),
		m.styles.Muted.Render("esc close"),
	}
	return m.styles.Card.Render(strings.Join(lines, "\n"))
}

// previewSummary shortens a data URL for display.
func previewSummary(dataURL string) string {
	if dataURL == "" {
		return ""
	}
	if idx := strings.Index(dataURL, ","); idx > 0 && idx < len(dataURL)-1 {
		return dataURL[:idx+1] + "… (" + fmt.Sprintf("%d", len(dataURL)-idx-1) + " chars)"
	}
	return dataURL
}
