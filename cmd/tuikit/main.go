// Package main provides the CLI entrypoint for tuikit.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuikit/internal/config"
	"github.com/verte-zerg/tuikit/internal/generator"
	"github.com/verte-zerg/tuikit/internal/historyui"
	"github.com/verte-zerg/tuikit/internal/logger"
	"github.com/verte-zerg/tuikit/internal/model"
	"github.com/verte-zerg/tuikit/internal/report"
	"github.com/verte-zerg/tuikit/internal/store"
	"github.com/verte-zerg/tuikit/internal/translate"
	"github.com/verte-zerg/tuikit/internal/translateui"
	"github.com/verte-zerg/tuikit/internal/tui"
)

const (
	defaultCount       = 1
	defaultHistoryKind = "all"
)

var (
	genLength  int
	genUpper   bool
	genLower   bool
	genNumbers bool
	genSymbols bool
	genAuto    bool
	genPrint   bool
	genCount   int

	translateLang string
	translateText string

	historyKind   string
	historyLast   int
	historyBrowse bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuikit",
		Short:         "Random string generator and text translator",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGenCmd,
	}
	addGenFlags(rootCmd)

	rootCmd.AddCommand(newGenCmd())
	rootCmd.AddCommand(newTranslateCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate random strings",
		Args:  cobra.NoArgs,
		RunE:  runGenCmd,
	}
	addGenFlags(cmd)
	return cmd
}

func addGenFlags(cmd *cobra.Command) {
	defaults := model.DefaultClasses()
	cmd.Flags().IntVar(&genLength, "length", tui.DefaultLength, fmt.Sprintf("string length (%d-%d)", tui.MinLength, tui.MaxLength))
	cmd.Flags().BoolVar(&genUpper, "upper", defaults.Uppercase, "include uppercase letters")
	cmd.Flags().BoolVar(&genLower, "lower", defaults.Lowercase, "include lowercase letters")
	cmd.Flags().BoolVar(&genNumbers, "numbers", defaults.Numbers, "include numbers")
	cmd.Flags().BoolVar(&genSymbols, "symbols", defaults.Symbols, "include symbols")
	cmd.Flags().BoolVar(&genAuto, "auto", false, "auto-generate every 2 seconds")
	cmd.Flags().BoolVar(&genPrint, "print", false, "print strings instead of starting the TUI")
	cmd.Flags().IntVar(&genCount, "count", defaultCount, "number of strings to print")
}

func runGenCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveGenConfig(cmd, fileCfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if genPrint || !term.IsTerminal(int(os.Stdout.Fd())) {
		if genCount <= 0 {
			return fmt.Errorf("--count must be > 0")
		}
		return printStrings(cmd.OutOrStdout(), generator.New(), cfg, genCount)
	}

	log, closeLog := openLogger(fileCfg)
	defer closeLog()

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	m := tui.NewModel(cfg, generator.New(), tui.WithRecorder(st), tui.WithLogger(log))
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func resolveGenConfig(cmd *cobra.Command, fileCfg config.FileConfig) model.GeneratorConfig {
	applyIntConfig(cmd, "length", &genLength, fileCfg.Generator.Length)
	applyBoolConfig(cmd, "upper", &genUpper, fileCfg.Generator.Upper)
	applyBoolConfig(cmd, "lower", &genLower, fileCfg.Generator.Lower)
	applyBoolConfig(cmd, "numbers", &genNumbers, fileCfg.Generator.Numbers)
	applyBoolConfig(cmd, "symbols", &genSymbols, fileCfg.Generator.Symbols)
	applyBoolConfig(cmd, "auto", &genAuto, fileCfg.Generator.Auto)

	return model.GeneratorConfig{
		Length: genLength,
		Classes: model.Classes{
			Uppercase: genUpper,
			Lowercase: genLower,
			Numbers:   genNumbers,
			Symbols:   genSymbols,
		},
		Auto: genAuto,
	}
}

func printStrings(w io.Writer, gen *generator.Generator, cfg model.GeneratorConfig, count int) error {
	for i := 0; i < count; i++ {
		if _, err := fmt.Fprintln(w, gen.Generate(cfg.Classes, cfg.Length)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newTranslateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate text",
		Args:  cobra.NoArgs,
		RunE:  runTranslateCmd,
	}
	cmd.Flags().StringVar(&translateLang, "lang", translate.DefaultLang, "target language code")
	cmd.Flags().StringVar(&translateText, "text", "", "translate this text and print the result")
	return cmd
}

func runTranslateCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	creds, err := config.LoadCredentials(config.DefaultEnvPath(), ".env")
	if err != nil {
		return err
	}
	cfg := resolveTranslatorConfig(cmd, fileCfg, creds)
	if err := config.Validate(cfg); err != nil {
		if cfg.APIKey == "" {
			return credentialsError(err)
		}
		return err
	}

	log, closeLog := openLogger(fileCfg)
	defer closeLog()

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	client := translate.New(cfg, translate.WithLogger(log))

	if translateText != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return translateOnce(ctx, cmd.OutOrStdout(), client, st, log, translateText, cfg.Lang)
	}

	m := translateui.NewModel(client, cfg.Lang, translateui.WithRecorder(st), translateui.WithLogger(log))
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run translator TUI: %w", err)
	}
	return nil
}

func resolveTranslatorConfig(cmd *cobra.Command, fileCfg config.FileConfig, creds config.Credentials) model.TranslatorConfig {
	applyStringConfig(cmd, "lang", &translateLang, fileCfg.Translator.Lang)

	endpoint := translate.DefaultEndpoint
	if fileCfg.Translator.Endpoint != nil {
		endpoint = *fileCfg.Translator.Endpoint
	}
	if creds.Endpoint != "" {
		endpoint = creds.Endpoint
	}
	timeout := translate.DefaultTimeout
	if fileCfg.Translator.Timeout != nil {
		timeout = fileCfg.Translator.Timeout.Duration
	}

	return model.TranslatorConfig{
		Lang:     translateLang,
		Endpoint: endpoint,
		Host:     creds.Host,
		APIKey:   creds.APIKey,
		Timeout:  timeout,
	}
}

func translateOnce(ctx context.Context, w io.Writer, tr translateui.Translator, rec translateui.Recorder, log zerolog.Logger, text, lang string) error {
	res, err := tr.Translate(ctx, text, lang)
	if errors.Is(err, translate.ErrEmptyText) || errors.Is(err, translate.ErrUnsupportedLanguage) {
		return err
	}
	entry := model.TranslationRecord{
		ID:        res.RequestID,
		CreatedAt: time.Now(),
		Text:      text,
		Lang:      lang,
		Result:    res.Translated,
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if rerr := rec.InsertTranslation(ctx, entry); rerr != nil {
		log.Error().Err(rerr).Msg("failed to save translation")
	}
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, res.Translated); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func credentialsError(err error) error {
	lines := []string{
		err.Error(),
		fmt.Sprintf("Set TUIKIT_RAPIDAPI_KEY in the environment or in %s", config.DefaultEnvPath()),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List supported target languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	return writeLanguages(cmd.OutOrStdout())
}

func writeLanguages(w io.Writer) error {
	for _, lang := range translate.Languages() {
		line := fmt.Sprintf("%-3s %s", lang.Code, lang.Label())
		if lang.Code == translate.DefaultLang {
			line += " [default]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored strings and translations",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyKind, "kind", defaultHistoryKind, "records to show: gen, translate or all")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N records per kind")
	cmd.Flags().BoolVar(&historyBrowse, "browse", false, "browse records in a TUI")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg := model.HistoryConfig{
		Kind: strings.ToLower(strings.TrimSpace(historyKind)),
		Last: historyLast,
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if historyBrowse {
		fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log, closeLog := openLogger(fileCfg)
		defer closeLog()

		m := historyui.NewModel(st, cfg, historyui.WithLogger(log))
		program := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run history TUI: %w", err)
		}
		return nil
	}

	rep, err := report.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return err
	}
	if err := report.Render(cmd.OutOrStdout(), rep, cfg); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
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
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...) // #nosec G204
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the config file unless it already exists.
func writeConfigTemplate(path string) error {
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
	return nil
}

func openLogger(fileCfg config.FileConfig) (zerolog.Logger, func()) {
	cfg := logger.Config{Path: config.DefaultLogPath()}
	if fileCfg.Log.Level != nil {
		cfg.Level = *fileCfg.Log.Level
	}
	if fileCfg.Log.File != nil {
		cfg.Path = *fileCfg.Log.File
	}
	log, closer, err := logger.New(cfg)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
	}
	return log, func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}
}

func openStore() (*store.Store, func(), error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}, nil
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

func defaultConfigTemplate() string {
	defaults := model.DefaultClasses()
	return fmt.Sprintf(`# tuikit configuration
# Uncomment a value to enable it. CLI flags override config values.
# The API key is read from TUIKIT_RAPIDAPI_KEY or from %s.

[generator]
# length = %d             # String length (%d-%d)
# upper = %t            # Include uppercase letters
# lower = %t            # Include lowercase letters
# numbers = %t          # Include numbers
# symbols = %t         # Include symbols
# auto = false           # Auto-generate every 2 seconds

[translator]
# lang = %q              # Target language code
# endpoint = %q
# timeout = %q          # Request timeout

[log]
# level = %q           # trace, debug, info, warn, error or disabled
# file = %q
`,
		config.DefaultEnvPath(),
		tui.DefaultLength,
		tui.MinLength,
		tui.MaxLength,
		defaults.Uppercase,
		defaults.Lowercase,
		defaults.Numbers,
		defaults.Symbols,
		translate.DefaultLang,
		translate.DefaultEndpoint,
		translate.DefaultTimeout.String(),
		logger.DefaultLevel,
		config.DefaultLogPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
