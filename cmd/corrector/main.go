// Command corrector checks text against a correction service.
//
// Usage:
//
//	corrector "helo wrld"             # one-shot, prints the result
//	echo "helo wrld" | corrector      # reads stdin when it is not a terminal
//	corrector                         # interactive TUI
//	corrector --format json "helo"    # raw response
//	corrector config                  # create/open the config file
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Alfex4936/corrector/corrector"
	"github.com/Alfex4936/corrector/internal/config"
	"github.com/Alfex4936/corrector/internal/logx"
	"github.com/Alfex4936/corrector/internal/net"
	"github.com/Alfex4936/corrector/internal/tui"
	"github.com/Alfex4936/corrector/internal/util"
)

var (
	flagConfig    string
	flagURL       string
	flagTimeout   time.Duration
	flagTransport string
	flagLogLevel  string
	flagFormat    string
)

// exitCode is set by commands that fail in an expected way.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var code exitCode
		if errors.As(err, &code) {
			os.Exit(int(code))
		}
		logErrln("corrector:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := config.Defaults()
	rootCmd := &cobra.Command{
		Use:           "corrector [text...]",
		Short:         "Spelling and grammar suggestions from a correction service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCheckCmd,
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultConfigPath(), "config file (TOML, or YAML by extension)")
	rootCmd.Flags().StringVar(&flagURL, "url", defaults.BaseURL, "correction service base URL")
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", defaults.Timeout, "per-request timeout")
	rootCmd.Flags().StringVar(&flagTransport, "transport", defaults.Transport, "transport: std | browser")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", defaults.LogLevel, "diagnostics level on stderr: debug | info | warn | error")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "one-shot output: text | html | json")

	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	switch flagFormat {
	case "text", "html", "json":
	default:
		return fmt.Errorf("--format must be text, html or json")
	}

	log, err := logx.New(os.Stderr, settings.LogLevel)
	if err != nil {
		return err
	}
	tr, err := net.New(settings.Transport, settings.Timeout)
	if err != nil {
		return err
	}

	interactive := len(args) == 0 && term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		return runTUI(tr, settings, log)
	}

	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	client := corrector.New(tr, nil,
		corrector.WithBaseURL(settings.BaseURL),
		corrector.WithTimeout(settings.Timeout),
		corrector.WithLogger(log),
	)
	return runOnce(cmd.Context(), cmd.OutOrStdout(), client, text)
}

// runOnce prints one result. Failures print the short user message on
// stderr; details go to the logger.
func runOnce(ctx context.Context, w io.Writer, client *corrector.Client, text string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := client.Check(ctx, text)
	if err != nil {
		logErrln(corrector.UserMessage(err))
		var ve *corrector.ValidationError
		if errors.As(err, &ve) {
			return exitCode(2)
		}
		return exitCode(1)
	}

	switch flagFormat {
	case "json":
		err = util.WriteJSON(w, res.Response)
	case "html":
		_, err = io.WriteString(w, res.Display.HTML()+"\n")
	default:
		_, err = io.WriteString(w, res.Display.Text())
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runTUI(tr net.Transport, settings config.Settings, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := tui.NewOutput()
	defer out.Close()
	client := corrector.New(tr, out,
		corrector.WithBaseURL(settings.BaseURL),
		corrector.WithTimeout(settings.Timeout),
		corrector.WithLogger(log),
	)

	program := tea.NewProgram(tui.NewModel(ctx, client, out), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveSettings applies defaults, config file and environment, then the
// flags the user actually set.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringFlag(cmd, "url", &settings.BaseURL, flagURL)
	applyStringFlag(cmd, "transport", &settings.Transport, flagTransport)
	applyStringFlag(cmd, "log-level", &settings.LogLevel, flagLogLevel)
	if cmd.Flags().Changed("timeout") {
		settings.Timeout = flagTimeout
	}
	if err := settings.Validate(); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path := flagConfig
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	}
	parts := strings.Fields(editor)
	c := exec.Command(parts[0], append(parts[1:], path)...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
