// Package cmd provides the CLI commands for PirizGPT.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/pirizgpt/cli/internal/api"
	"github.com/pirizgpt/cli/internal/config"
	"github.com/pirizgpt/cli/internal/debug"
	"github.com/pirizgpt/cli/internal/pubsub"
	"github.com/pirizgpt/cli/internal/session"
	"github.com/pirizgpt/cli/internal/speech"
	"github.com/pirizgpt/cli/internal/tui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pirizgpt",
		Short: "Terminal chat client for a PirizGPT backend",
		Long: `PirizGPT is a terminal chat client. It streams replies token by
token, keeps conversations in named sessions on the backend, and can
read replies aloud through the system speech engine.

All durable state lives server-side; point it at your backend with
--server or a pirizgpt.json config file.`,
		RunE: runTUI,
	}

	cmd.Flags().Bool("debug", false, "Enable debug logging to the data directory")
	cmd.Flags().String("server", "", "Backend URL (overrides config)")
	cmd.Flags().Bool("no-stream", false, "Disable streaming; wait for whole replies")
	cmd.Flags().Bool("speak", false, "Read replies aloud")
	cmd.Flags().String("voice", "", "Voice for speech synthesis (overrides config)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Enable debug logging if requested.
	debugMode, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return fmt.Errorf("getting debug flag: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.NewConfig()
	}
	applyFlagOverrides(cmd, cfg)

	if debugMode || cfg.Options.Debug {
		logPath := filepath.Join(xdg.DataHome, "pirizgpt", "debug.log")
		if debugErr := debug.Enable(logPath); debugErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to enable debug logging: %v\n", debugErr)
		} else {
			defer debug.Disable()
			fmt.Fprintf(os.Stderr, "Debug: %s\n", logPath)
		}
	}

	client := api.NewClient(cfg.Server.URL)
	hub := pubsub.NewHub()
	defer hub.Shutdown()

	sessionSvc := session.NewService(client, hub.Session)
	speaker := speech.NewSpeaker(cfg.Speech.Voice, cfg.Speech.Enabled)
	defer speaker.Stop()
	listener := speech.NewListener()

	return tui.Run(cfg, client, hub, sessionSvc, speaker, listener)
}

// applyFlagOverrides layers command-line flags over the loaded config.
// Flags win; an unset flag leaves the config value alone.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		cfg.Server.URL = server
	}
	if noStream, _ := cmd.Flags().GetBool("no-stream"); noStream {
		stream := false
		cfg.Chat.Stream = &stream
	}
	if speak, _ := cmd.Flags().GetBool("speak"); speak {
		cfg.Speech.Enabled = true
	}
	if voice, _ := cmd.Flags().GetString("voice"); voice != "" {
		cfg.Speech.Voice = voice
	}
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
