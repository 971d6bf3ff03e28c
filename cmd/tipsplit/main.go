package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/tipsplit/internal/config"
	"github.com/mmynk/tipsplit/internal/form"
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/repl"
	"github.com/mmynk/tipsplit/internal/service"
	"github.com/mmynk/tipsplit/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "tipsplit",
		Short: "Split a bill and its tip evenly between people",
		Long: `tipsplit opens an interactive calculator. Type the bill, the number of
people, and either pick a preset tip or type your own percentage; the tip and
total per person update after every command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, configPath)
			if err != nil {
				return err
			}

			presets := resolvePresets(cmd.Context(), cfg)
			shell := repl.New(form.New(presets), cmd.InOrStdin(), cmd.OutOrStdout())
			return shell.Run(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().String("preset-url", "", "preset server to load tip presets from")

	root.AddCommand(
		newCalcCmd(&configPath),
		newServeCmd(&configPath),
		newPresetsCmd(&configPath),
		newHashPasswordCmd(),
	)
	return root
}

// loadConfig reads the configuration and sets up logging from it.
func loadConfig(cmd *cobra.Command, configPath string) (*config.Configuration, error) {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := logging.Setup(cfg.Logging.Level); err != nil {
		return nil, err
	}
	slog.Debug("Configuration loaded", "config", configPath, "preset_server", cfg.Presets.ServerURL)
	return cfg, nil
}

// resolvePresets loads presets from the preset server when one is
// configured, falling back to the configured percents.
func resolvePresets(ctx context.Context, cfg *config.Configuration) []models.Preset {
	if cfg.Presets.ServerURL != "" {
		client := service.NewPresetServiceClient(http.DefaultClient, cfg.Presets.ServerURL)
		presets, err := service.FetchPresets(ctx, client, cfg.Presets.FetchTimeout)
		if err == nil {
			slog.Info("Presets loaded from server", "url", cfg.Presets.ServerURL, "count", len(presets))
			return presets
		}
		slog.Warn("Preset server unavailable, using configured presets",
			"url", cfg.Presets.ServerURL,
			"error", err,
		)
	}
	return models.NewPresets(cfg.Presets.Percents)
}
