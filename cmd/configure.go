package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pirizgpt/cli/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the global config",
	}

	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the global config file location",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(config.GlobalConfigPath())
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one config field in the global config",
		Long: `Set a single field in the global config file without touching the
rest of it.

Examples:
  pirizgpt config set server.url http://localhost:5000
  pirizgpt config set speech.voice Samantha
  pirizgpt config set speech.enabled true
  pirizgpt config set chat.stream false`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	}
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	// Booleans and numbers are written as their JSON types.
	var value any = raw
	if b, err := strconv.ParseBool(raw); err == nil {
		value = b
	} else if n, err := strconv.Atoi(raw); err == nil {
		value = n
	}

	if err := config.SetConfigField(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	fmt.Printf("Set %s in %s\n", key, config.GlobalConfigPath())
	return nil
}
