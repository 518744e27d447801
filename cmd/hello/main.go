package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hellonerd/cmd/hello/ui"
	"hellonerd/internal/api"
	"hellonerd/internal/config"
	"hellonerd/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string
	baseURL    string
	timeout    time.Duration

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hello",
	Short: "hellonerd - show what the backend has to say",
	Long: `hello mounts a single page that asks the backend's /api/hello endpoint
for a message, once, and shows it under a heading.

Run without arguments to open the interactive page. Use "hello print" to
render the settled page to stdout instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive page owns the terminal; it logs to files only.
		if cmd == cmd.Root() {
			return nil
		}

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hellonerd version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hellonerd %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging on stderr (non-interactive commands)")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.hello/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout, 0 for none (overrides config)")

	rootCmd.AddCommand(printCmd, configCmd, versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// resolveWorkspace returns the workspace flag or the current directory.
func resolveWorkspace() (string, error) {
	if workspace != "" {
		return workspace, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace: %w", err)
	}
	return cwd, nil
}

func resolveConfigPath(ws string) string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath(ws)
}

// loadSettings loads config, applies flag overrides, validates it and
// starts file logging for the workspace.
func loadSettings(cmd *cobra.Command) (*config.Config, string, error) {
	ws, err := resolveWorkspace()
	if err != nil {
		return nil, "", err
	}
	path := resolveConfigPath(ws)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	applyFlagOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	if err := logging.Initialize(ws, cfg.LoggingOptions()); err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: %v\n", err)
	}
	logging.Boot("config %s, endpoint %s%s", path, cfg.Endpoint.BaseURL, cfg.Endpoint.Path)
	return cfg, path, nil
}

// applyFlagOverrides applies flags on top of file and env settings. An
// explicit --timeout 0 clears a configured timeout.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if baseURL != "" {
		cfg.Endpoint.BaseURL = baseURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Endpoint.Timeout = ""
		if timeout > 0 {
			cfg.Endpoint.Timeout = timeout.String()
		}
	}
}

func newClient(cfg *config.Config) (*api.Client, error) {
	return api.NewClient(cfg.Endpoint.BaseURL,
		api.WithPath(cfg.Endpoint.Path),
		api.WithTimeout(cfg.GetTimeout()),
		api.WithUserAgent("hellonerd/"+version),
	)
}

// runInteractive mounts the hello page in the terminal.
func runInteractive(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, path, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := ui.PageOptions{Heading: cfg.UI.Heading, Label: cfg.UI.Label}
	if _, err := os.Stat(path); err != nil {
		logging.Boot("no config file at %s, reload disabled", path)
	} else if watcher, err := config.NewWatcher(path); err != nil {
		logging.Get(logging.CategoryBoot).Warn("config reload disabled: %v", err)
	} else if err := watcher.Start(ctx); err != nil {
		logging.Get(logging.CategoryBoot).Warn("config reload disabled: %v", err)
		watcher.Stop()
	} else {
		defer watcher.Stop()
		opts.Reloads = watcher.Changes()
	}

	page := ui.NewHelloPageModel(ctx, client, ui.NewStyles(ui.ThemeByName(cfg.UI.Theme)), opts)
	p := tea.NewProgram(page, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("hello page: %w", err)
	}
	return nil
}
