// Package main provides the CLI entrypoint for agroscan.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/agroscan/internal/api"
	"github.com/verte-zerg/agroscan/internal/config"
	"github.com/verte-zerg/agroscan/internal/element"
	"github.com/verte-zerg/agroscan/internal/i18n"
	"github.com/verte-zerg/agroscan/internal/model"
	"github.com/verte-zerg/agroscan/internal/store"
	"github.com/verte-zerg/agroscan/internal/tui"
	"github.com/verte-zerg/agroscan/internal/upload"
)

const (
	defaultServerURL  = "http://localhost:5000"
	defaultTimeoutMs  = 10000
	fallbackTextWidth = 80
)

var (
	clientServer    string
	clientTimeoutMs int
	clientLang      string
	clientDark      bool
	clientPage      string

	analyzeServer    string
	analyzeTimeoutMs int
	analyzeLang      string

	historyLast int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "agroscan",
		Short:         "Terminal client for the Agrovision crop analysis service",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runClientCmd,
	}

	rootCmd.Flags().StringVar(&clientServer, "server", defaultServerURL, "backend server URL")
	rootCmd.Flags().IntVar(&clientTimeoutMs, "timeout-ms", defaultTimeoutMs, "request timeout in milliseconds")
	rootCmd.Flags().StringVar(&clientLang, "lang", i18n.DefaultLanguage, "interface language (en, az)")
	rootCmd.Flags().BoolVar(&clientDark, "dark", false, "start in dark mode")
	rootCmd.Flags().StringVar(&clientPage, "page", "", "page to open (home, features, analyze, dashboard, gallery, contact, login)")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runClientCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "server", &clientServer, fileCfg.Server.URL)
	applyIntConfig(cmd, "timeout-ms", &clientTimeoutMs, fileCfg.Server.TimeoutMs)
	applyStringConfig(cmd, "lang", &clientLang, fileCfg.UI.Lang)
	applyBoolConfig(cmd, "dark", &clientDark, fileCfg.UI.DarkMode)
	applyStringConfig(cmd, "page", &clientPage, fileCfg.UI.Page)

	if err := validateClientConfig(); err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	prefs, err := st.LoadPreferences(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	// Stored preferences apply only when neither flag nor config file
	// picked a value.
	if !cmd.Flags().Changed("lang") && fileCfg.UI.Lang == nil {
		clientLang = prefs.Language
	}
	if !cmd.Flags().Changed("dark") && fileCfg.UI.DarkMode == nil {
		clientDark = prefs.DarkMode
	}

	client, err := api.NewClient(clientServer, time.Duration(clientTimeoutMs)*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to build API client: %w", err)
	}

	m, err := tui.NewModel(tui.Deps{
		Client:   client,
		Store:    st,
		Prefs:    model.Preferences{Language: clientLang, DarkMode: clientDark},
		Fragment: clientPage,
	})
	if err != nil {
		return fmt.Errorf("failed to build client shell: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	overridesPath := config.DefaultElementOverridesPath()
	if err := element.Watch(ctx, m.Hook(), overridesPath, func(werr error) {
		logErrf("failed to apply theme overrides: %v\n", werr)
	}); err != nil {
		logErrf("theme overrides not watched: %v\n", err)
	}

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Analyze a single image and print the verdict",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyzeCmd,
	}
	cmd.Flags().StringVar(&analyzeServer, "server", defaultServerURL, "backend server URL")
	cmd.Flags().IntVar(&analyzeTimeoutMs, "timeout-ms", defaultTimeoutMs, "request timeout in milliseconds")
	cmd.Flags().StringVar(&analyzeLang, "lang", i18n.DefaultLanguage, "output language (en, az)")
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "server", &analyzeServer, fileCfg.Server.URL)
	applyIntConfig(cmd, "timeout-ms", &analyzeTimeoutMs, fileCfg.Server.TimeoutMs)
	applyStringConfig(cmd, "lang", &analyzeLang, fileCfg.UI.Lang)

	tr, err := i18n.New(analyzeLang)
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}

	client, err := api.NewClient(analyzeServer, time.Duration(analyzeTimeoutMs)*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to build API client: %w", err)
	}

	ctx := context.Background()
	pipeline := upload.NewPipeline(client)
	if err := pipeline.StageFile(args[0]); err != nil {
		return fmt.Errorf("failed to stage image: %w", err)
	}
	result, err := pipeline.Submit(ctx)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	recordScan(ctx, args[0], result)

	out := cmd.OutOrStdout()
	width := terminalWidth()
	healthy := upload.IsHealthy(result.Prediction)
	status := tr.Translate("analyze.needsAttention")
	risk := tr.Translate("analyze.riskHigh")
	advice := tr.Translate("analyze.diseasedAdvice")
	if healthy {
		status = tr.Translate("analyze.excellent")
		risk = tr.Translate("analyze.riskLow")
		advice = tr.Translate("analyze.healthyAdvice")
	}
	fmt.Fprintf(out, "%s  %.0f%% %s\n", result.Prediction, result.Confidence, tr.Translate("common.confidence"))
	fmt.Fprintf(out, "%s: %s\n", tr.Translate("analyze.healthStatus"), status)
	fmt.Fprintf(out, "%s: %s\n", tr.Translate("analyze.diseaseRisk"), risk)
	fmt.Fprintln(out, wrapToWidth(advice, width))

	qr, err := upload.EncodeQR(upload.NewQRPayload(result, time.Now(), analyzeServer+"/#analyze"))
	if err != nil {
		logErrf("failed to render qr: %v\n", err)
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, qr)
	return nil
}

// recordScan appends the result to the local history. History is advisory, a
// failure here does not fail the command.
func recordScan(ctx context.Context, path string, result model.AnalysisResult) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open db: %v\n", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	record := model.ScanRecord{
		Path:       path,
		Prediction: result.Prediction,
		Confidence: result.Confidence,
		CreatedAt:  time.Now(),
	}
	if _, err := st.InsertScan(ctx, record); err != nil {
		logErrf("failed to record scan: %v\n", err)
	}
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show locally recorded scans",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 20, "limit to last N scans")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	records, err := st.ListScans(context.Background(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list scans: %w", err)
	}
	if len(records) == 0 {
		logErrln("No scans recorded yet. Run: agroscan analyze <image>")
		return nil
	}
	out := cmd.OutOrStdout()
	for _, rec := range records {
		if _, err := fmt.Fprintf(out, "%s  %-28s %5.1f%%  %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04"), rec.Prediction, rec.Confidence, rec.Path); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func validateClientConfig() error {
	if clientLang != i18n.LangEN && clientLang != i18n.LangAZ {
		return fmt.Errorf("--lang must be one of: en, az")
	}
	if clientTimeoutMs <= 0 {
		return fmt.Errorf("--timeout-ms must be > 0")
	}
	if clientPage != "" {
		if _, ok := model.ParsePage(clientPage); !ok {
			return fmt.Errorf("--page must name a known page")
		}
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# agroscan configuration
# Uncomment a value to enable it. CLI flags override config values.

[server]
# url = %q          # Backend server URL
# timeout-ms = %d   # Request timeout in milliseconds

[ui]
# lang = "en"       # Interface language (en, az)
# dark-mode = false # Start in dark mode
# page = "home"     # Page to open on start
`,
		defaultServerURL,
		defaultTimeoutMs,
	)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTextWidth
	}
	return width
}

func wrapToWidth(text string, width int) string {
	words := strings.Fields(text)
	var lines []string
	var line string
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
