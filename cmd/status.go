package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pirizgpt/cli/internal/api"
	"github.com/pirizgpt/cli/internal/config"
	"github.com/pirizgpt/cli/internal/speech"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show backend, config, and speech engine status",
		Long: `Display the current PirizGPT status including:
  - Backend URL and reachability
  - Known sessions
  - Speech engine availability
  - Config file location`,
		RunE: runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.NewConfig()
	}
	applyFlagOverrides(cmd.Root(), cfg)

	fmt.Println("PirizGPT Status")
	fmt.Println(strings.Repeat("─", 40))
	fmt.Println()

	// Backend reachability.
	client := api.NewClient(cfg.Server.URL)
	fmt.Printf("Backend: %s\n", client.BaseURL())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sessions, err := client.ListSessions(ctx, 0)
	if err != nil {
		fmt.Printf("  Reachable: no (%v)\n", err)
	} else {
		fmt.Println("  Reachable: yes")
		fmt.Printf("  Sessions: %d\n", len(sessions))
	}
	fmt.Println()

	// Streaming mode.
	mode := "streaming"
	if !cfg.Streaming() {
		mode = "whole replies"
	}
	fmt.Printf("Reply Mode: %s\n", mode)
	fmt.Println()

	// Speech engines.
	fmt.Println("Speech:")
	speaker := speech.NewSpeaker(cfg.Speech.Voice, cfg.Speech.Enabled)
	if speaker.Available() {
		fmt.Printf("  Synthesis: available (enabled: %v)\n", cfg.Speech.Enabled)
	} else {
		fmt.Println("  Synthesis: no engine found (install say, espeak-ng, or espeak)")
	}

	listener := speech.NewListener()
	if listener.Available() {
		fmt.Println("  Recognition: available")
	} else {
		fmt.Println("  Recognition: no recognizer found (install hear or nerd-dictation)")
	}
	fmt.Println()

	fmt.Printf("Config File: %s\n", config.GlobalConfigPath())
	fmt.Printf("Data Dir: %s\n", cfg.DataDir())

	return nil
}
