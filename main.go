package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gitmsg/gitmsg/internal/adapters/fzf"
	"github.com/gitmsg/gitmsg/internal/adapters/git"
	"github.com/gitmsg/gitmsg/internal/adapters/llm"
	"github.com/gitmsg/gitmsg/internal/app"
	"github.com/gitmsg/gitmsg/internal/config"
	"github.com/gitmsg/gitmsg/internal/domain"
	"github.com/gitmsg/gitmsg/internal/erruser"
	"github.com/gitmsg/gitmsg/internal/log"
	"github.com/gitmsg/gitmsg/internal/observability"
	"github.com/gitmsg/gitmsg/internal/output"
	"github.com/gitmsg/gitmsg/internal/ports"
	"github.com/gitmsg/gitmsg/internal/selector"
	"github.com/gitmsg/gitmsg/internal/ui"
)

// Set by goreleaser.
var version = "dev"

var (
	flagOllama    bool
	flagBackend   string
	flagModel     string
	flagMaxChars  int
	flagDebug     bool
	flagAnalytics bool
	flagVim       bool
	flagNum       bool
	flagCopy      bool
)

// debugDetails mirrors the resolved debug setting so the error reporter can
// print causes without re-loading config.
var debugDetails bool

var rootCmd = &cobra.Command{
	Use:   "gitmsg",
	Short: "Generate git commit messages with a local LLM",
	Long: `gitmsg sends the current git diff (staged changes, or unstaged when
nothing is staged) to a local inference service, parses three candidate
commit messages out of the reply, lets you pick one and commits with it.

Jan AI is the default backend; pass --ollama to use Ollama instead. Pick
"Regenerate messages" in the chooser for a fresh set of candidates.`,
	Args:                       cobra.NoArgs,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "help", "completion", "__complete", "config", "setup":
			return nil
		}
		if err := git.NewExecutor().CheckTool(cmd.Context()); err != nil {
			return erruser.New("Not a git repository or git is not installed.", err)
		}
		return nil
	},
	RunE: runRoot,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagOllama, "ollama", false, "use the Ollama backend instead of Jan AI")
	pf.StringVar(&flagBackend, "backend", "", "backend to query: jan, ollama or mock")
	pf.StringVar(&flagModel, "model", "", "model name for the chosen backend")
	pf.IntVar(&flagMaxChars, "max-chars", 75, "suggested maximum characters per commit message")
	pf.BoolVar(&flagDebug, "debug", false, "verbose diagnostics on stderr")

	f := rootCmd.Flags()
	f.BoolVar(&flagAnalytics, "analytics", false, "display performance analytics")
	f.BoolVar(&flagVim, "vim", false, "vim-style navigation in the chooser")
	f.BoolVar(&flagNum, "num", false, "number selection for commit messages")
	f.BoolVar(&flagCopy, "copy", false, "copy the chosen message to the clipboard instead of committing")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("gitmsg {{.Version}}\n")

	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSetupCmd())
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = output.WithPrinter(ctx, os.Stdout)
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		return reportError(err)
	}
	return 0
}

// reportError maps an error to one human-readable stderr line and exit code
// 1. Every fatal error also lands in the local error log.
func reportError(err error) int {
	observability.Record(err)

	var ue *erruser.Err
	if errors.As(err, &ue) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", ue.Msg)
		if debugDetails && ue.Err != nil {
			fmt.Fprintf(os.Stderr, "Details: %v\n", ue.Err)
		}
		return 1
	}

	var se *ports.ServiceError
	if errors.As(err, &se) {
		fmt.Fprintf(os.Stderr, "Error querying %s: %v\n", se.Backend, se.Err)
		return 1
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(overridesFromFlags(cmd))
	if err != nil {
		return err
	}
	ctx := withDiagnostics(cmd.Context(), cfg.Debug)

	// Piped stdout means nobody can drive a chooser; print the candidates
	// the way suggest does.
	if !terminal(os.Stdout.Fd()) {
		return suggest(ctx, cfg, false)
	}

	model, err := llm.NewFromConfig(cfg.Backend, cfg.JanURL, cfg.OllamaURL, cfg.ActiveModel())
	if err != nil {
		return err
	}

	a := app.NewApp(model, git.NewExecutor(), cfg.DiffLimit, cfg.MaxChars, cfg.Redact, cfg.Timeout)
	runner := app.NewRunner(a, selector.New(chooserFor(cfg.Chooser)), app.SystemClock{})

	_, err = runner.Run(ctx, app.RunOptions{
		Backend:   inferenceName(cfg.Backend),
		Model:     cfg.ActiveModel(),
		Analytics: cfg.Analytics,
		Copy:      flagCopy,
		Spinner:   terminal(os.Stderr.Fd()),
		Vim:       cfg.Vim,
		Num:       cfg.Num,
	})
	return err
}

func newSuggestCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Print candidate commit messages without choosing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(overridesFromFlags(cmd))
			if err != nil {
				return err
			}
			return suggest(withDiagnostics(cmd.Context(), cfg.Debug), cfg, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the candidates as a JSON array")
	return cmd
}

func newConfigCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:       "config [path]",
		Short:     "Show the config file location and active settings",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"path"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return fmt.Errorf("determine config path: %w", err)
			}
			out := output.FromContext(cmd.Context())

			if reset {
				if err := config.DeleteConfig(path); err != nil {
					return fmt.Errorf("reset config: %w", err)
				}
				out.Printf("Removed %s\n", path)
				return nil
			}

			if len(args) == 1 {
				if args[0] != "path" {
					return fmt.Errorf("unknown argument: %s", args[0])
				}
				out.Println(path)
				return nil
			}

			cfg, err := config.Load(nil)
			if err != nil {
				return err
			}

			out.Printf("Config path: %s\n", path)
			out.Printf("Backend:     %s\n", cfg.Backend)
			out.Printf("Model:       %s\n", cfg.ActiveModel())
			out.Printf("Ollama URL:  %s\n", cfg.OllamaURL)
			out.Printf("Jan URL:     %s\n", cfg.JanURL)
			out.Printf("Max chars:   %d\n", cfg.MaxChars)
			out.Printf("Diff limit:  %d\n", cfg.DiffLimit)
			out.Printf("Timeout:     %s\n", cfg.Timeout)
			out.Printf("Chooser:     %s\n", cfg.Chooser)
			out.Printf("Analytics:   %t\n", cfg.Analytics)
			out.Printf("Vim keys:    %t\n", cfg.Vim)
			out.Printf("Num keys:    %t\n", cfg.Num)
			out.Printf("Redact:      %t\n", cfg.Redact)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "delete the config file, returning to defaults")
	return cmd
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactively edit and save the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(nil)
			if err != nil {
				// A broken config file must not lock the user out of the
				// form that fixes it.
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
				cfg = config.Default()
			}

			updated, confirmed, err := ui.RunSetup(cfg)
			if err != nil {
				return fmt.Errorf("setup: %w", err)
			}
			if !confirmed {
				fmt.Fprintln(os.Stderr, "Setup cancelled.")
				return nil
			}

			path, err := config.DefaultConfigPath()
			if err != nil {
				return fmt.Errorf("determine config path: %w", err)
			}
			if err := config.SaveToFile(path, updated); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			output.FromContext(cmd.Context()).Printf("Saved config to %s\n", path)
			return nil
		},
	}
}

// suggest generates one candidate set and prints it without selection.
func suggest(ctx context.Context, cfg *config.Config, jsonOut bool) error {
	model, err := llm.NewFromConfig(cfg.Backend, cfg.JanURL, cfg.OllamaURL, cfg.ActiveModel())
	if err != nil {
		return err
	}
	a := app.NewApp(model, git.NewExecutor(), cfg.DiffLimit, cfg.MaxChars, cfg.Redact, cfg.Timeout)
	out := output.FromContext(ctx)

	diff, err := a.Diff.Acquire(ctx)
	if err != nil {
		return err
	}
	if diff.Empty() {
		out.Println("No changes to commit.")
		return nil
	}

	var spin *spinner.Spinner
	if terminal(os.Stderr.Fd()) {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = " Generating commit messages..."
		spin.Start()
	}
	candidates, err := a.Generate.Generate(ctx, diff)
	if spin != nil {
		spin.Stop()
	}
	if errors.Is(err, domain.ErrNoCandidates) {
		return erruser.New("Could not generate commit messages.", err)
	}
	if err != nil {
		return err
	}

	if jsonOut {
		b, err := json.MarshalIndent(candidates, "", "  ")
		if err != nil {
			return fmt.Errorf("encode candidates: %w", err)
		}
		out.Println(string(b))
		return nil
	}
	for i, msg := range candidates {
		out.Printf("%d. %s\n", i+1, msg)
	}
	return nil
}

// overridesFromFlags converts explicitly set flags into config overrides.
// Only changed flags participate, so an unset flag never clobbers file or
// environment settings.
func overridesFromFlags(cmd *cobra.Command) *config.Overrides {
	o := &config.Overrides{}
	f := cmd.Flags()

	if f.Changed("ollama") && flagOllama {
		backend := config.BackendOllama
		o.Backend = &backend
	}
	if f.Changed("backend") {
		o.Backend = &flagBackend
	}
	if f.Changed("model") {
		o.Model = &flagModel
	}
	if f.Changed("max-chars") {
		o.MaxChars = &flagMaxChars
	}
	if f.Changed("debug") {
		o.Debug = &flagDebug
	}
	if f.Changed("analytics") {
		o.Analytics = &flagAnalytics
	}
	if f.Changed("vim") {
		o.Vim = &flagVim
	}
	if f.Changed("num") {
		o.Num = &flagNum
	}
	return o
}

// chooserFor returns the configured chooser. Auto mode prefers fzf and falls
// back to the built-in picker when it is not installed.
func chooserFor(mode string) ports.Chooser {
	switch mode {
	case config.ChooserFzf:
		return fzf.NewChooser()
	case config.ChooserBuiltin:
		return ui.NewPicker()
	default:
		if fzf.Available() {
			return fzf.NewChooser()
		}
		return ui.NewPicker()
	}
}

// inferenceName is the display name used in the analytics block. Jan reports
// as "Jan AI"; error messages keep the short backend name.
func inferenceName(backend string) string {
	if backend == config.BackendJan {
		return "Jan AI"
	}
	return config.BackendDisplay(backend)
}

// withDiagnostics attaches the stderr logger once the debug setting is known.
func withDiagnostics(ctx context.Context, debug bool) context.Context {
	debugDetails = debug
	return log.WithLogger(ctx, log.New(os.Stderr, debug))
}

func terminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
