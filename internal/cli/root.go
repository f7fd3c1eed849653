package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ytget/intune-dash/internal/config"
	"github.com/ytget/intune-dash/internal/runner"
	"github.com/ytget/intune-dash/internal/sample"
)

const AppName = "intune-dash"

// env carries what PersistentPreRunE prepared for the subcommands
type env struct {
	configPath string
	logLevel   string
	noColor    bool

	settings *config.Settings
}

// NewRootCmd builds the command tree
func NewRootCmd(version string) *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         "Simulated Intune deployment and policy automation dashboard",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := e.newRunner()
			if err != nil {
				return err
			}
			return runGUI(cmd.Context(), e.settings, svc, e.newGenerator(), version)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&e.configPath, "config", "c", "",
		fmt.Sprintf("use this configuration file (default: $%s or $XDG_CONFIG_HOME/%s/%s)",
			config.ConfigPathEnv, config.DashDir, config.ConfigYamlFileName))
	rootCmd.PersistentFlags().StringVar(&e.logLevel, "log-level", "",
		"log level: debug, info, warn or error (overrides the config file)")
	rootCmd.PersistentFlags().BoolVar(&e.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newTUICmd(e),
		newRunCmd(e),
		newDevicesCmd(e),
	)

	return rootCmd
}

// load reads the configuration and configures logging
func (e *env) load(cmd *cobra.Command) error {
	cfg, err := config.ParseConfig(e.configPath)
	if err != nil {
		return err
	}

	if e.logLevel != "" {
		cfg.LogLevel = e.logLevel
	}
	if err := setupLogging(cmd.ErrOrStderr(), cfg.LogLevel, e.noColor); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	e.settings = config.NewSettings(cfg)
	log.Debug("configuration loaded", "path", e.configPath, "language", cfg.Language, "step_interval", cfg.Runner.StepInterval)
	return nil
}

// newRunner creates a task runner from the current settings
func (e *env) newRunner() (*runner.Service, error) {
	policy, err := runner.ParseOverlapPolicy(e.settings.GetOverlapPolicy())
	if err != nil {
		return nil, err
	}
	return runner.NewService(
		runner.WithStepInterval(e.settings.GetStepInterval()),
		runner.WithMaxParallel(e.settings.GetMaxParallel()),
		runner.WithOverlapPolicy(policy),
	), nil
}

// newGenerator creates the sample data generator from the current settings
func (e *env) newGenerator() *sample.Generator {
	return sample.New(e.settings.GetSeed(), e.settings.GetFleet())
}

// Execute runs the command tree and exits non-zero on failure
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd(version).ExecuteContext(ctx); err != nil {
		log.Error("command failed", "err", err)
		stop()
		os.Exit(1)
	}
}
