package main

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/tipsplit/internal/auth"
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/service"
)

// operatorPasswordEnv lets scripts pass the operator password without a flag.
const operatorPasswordEnv = "TIPSPLIT_OPERATOR_PASSWORD"

func newPresetsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Inspect or replace the presets on a preset server",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print the presets clients will use",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			for i, p := range resolvePresets(cmd.Context(), cfg) {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", i+1, p.Label, strconv.FormatFloat(p.Percent, 'f', -1, 64))
			}
			return nil
		},
	}

	var email string
	set := &cobra.Command{
		Use:     "set <percent>...",
		Short:   "Replace the presets on the preset server",
		Example: "  tipsplit presets set 10 15 20 25 --preset-url http://localhost:8080 --email ops@example.com",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			if cfg.Presets.ServerURL == "" {
				return fmt.Errorf("no preset server configured, use --preset-url")
			}

			percents, err := parsePercents(args)
			if err != nil {
				return err
			}
			if err := models.ValidatePresets(models.NewPresets(percents)); err != nil {
				return err
			}

			password := os.Getenv(operatorPasswordEnv)
			if password == "" {
				if password, err = readLine(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			client := service.NewPresetServiceClient(http.DefaultClient, cfg.Presets.ServerURL)
			login, err := client.Login(cmd.Context(), connect.NewRequest(&service.LoginRequest{
				Email:    email,
				Password: password,
			}))
			if err != nil {
				return fmt.Errorf("failed to log in: %w", err)
			}

			wire := make([]service.Preset, len(percents))
			for i, p := range percents {
				wire[i] = service.Preset{Percent: p}
			}
			req := connect.NewRequest(&service.ReplacePresetsRequest{Presets: wire})
			req.Header().Set("Authorization", "Bearer "+login.Msg.Token)

			resp, err := client.ReplacePresets(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to replace presets: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %d presets\n", len(resp.Msg.Presets))
			return nil
		},
	}
	set.Flags().StringVar(&email, "email", "", "operator email")
	_ = set.MarkFlagRequired("email")

	cmd.AddCommand(list, set)
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash for auth.operator_password_hash",
		Long:  "Hashes the password given as argument, or the first line of stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				var err error
				if password, err = readLine(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func parsePercents(args []string) ([]float64, error) {
	percents := make([]float64, len(args))
	for i, arg := range args {
		p, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid percent %q: %w", arg, err)
		}
		percents[i] = p
	}
	return percents, nil
}

func readLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return "", fmt.Errorf("no password given")
	}
	return strings.TrimRight(scanner.Text(), "\r"), nil
}
