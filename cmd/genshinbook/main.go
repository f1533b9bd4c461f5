package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"genshinbook/internal/api"
	"genshinbook/internal/config"
	"genshinbook/internal/eventbus"
	"genshinbook/internal/logging"
	"genshinbook/internal/navigator"
	"genshinbook/internal/ui"
)

// rootOptions holds the persistent flags
type rootOptions struct {
	configFile string
	envFile    string
	baseURL    string
	logFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "genshinbook",
		Short: "Browse the Genshin API taxonomy in the terminal",
		Long: `genshinbook walks a REST API that lists its categories under the root
"types" field and exposes every child at {base}/{path...}.

Run without arguments to start the interactive browser.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowser(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Config file (default: ./"+config.FileName+", then the user config dir)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Environment file loaded before the config")
	flags.StringVar(&opts.baseURL, "base-url", "", "API root URL (overrides api.base_url)")
	flags.StringVar(&opts.logFile, "log-file", "", "Log file (overrides log.file)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (overrides log.level)")

	rootCmd.AddCommand(newGetCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration: .env, then file and environment,
// then flags
func loadConfig(opts *rootOptions, bus eventbus.EventBus) (*config.Config, error) {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return nil, err
	}

	configSvc := config.NewConfigServiceWithBus(bus)
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = configSvc.LoadFromPath(opts.configFile)
	} else {
		cfg, err = configSvc.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.baseURL != "" {
		cfg.API.BaseURL = strings.TrimRight(opts.baseURL, "/")
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runBrowser starts the interactive browser
func runBrowser(cmd *cobra.Command, opts *rootOptions) error {
	bus := eventbus.New()
	defer bus.Close()

	cfg, err := loadConfig(opts, bus)
	if err != nil {
		return err
	}

	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	bus.Subscribe(eventbus.EventNavigationFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.NavigationFailedEvent); ok {
			log.WithFields(log.Fields{"op": event.Op, "url": event.URL}).Warn("navigation failed, state unchanged")
		}
	})
	bus.Subscribe(eventbus.EventNavigationCompleted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.NavigationCompletedEvent); ok {
			log.WithFields(log.Fields{"op": event.Op, "path": event.Path, "kind": event.Kind}).Info("navigated")
		}
	})

	nav := navigator.New(api.NewClient(cfg.HTTP), cfg.API.BaseURL, bus)
	uiModel := ui.NewModel(nav, cfg)
	defer uiModel.Shutdown()

	ctx, stop := commandContext(cmd)
	defer stop()

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Forward request announcements so the status line can show the URL
	bus.Subscribe(eventbus.EventNavigationStarted, func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	})

	log.WithField("base_url", cfg.API.BaseURL).Info("starting browser")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	log.Info("browser exited normally")
	return nil
}

// commandContext returns the command's context cancelled on SIGINT/SIGTERM
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
