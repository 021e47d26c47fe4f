package cli

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/extframework/extlaunch/internal/config"
	"github.com/extframework/extlaunch/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored in config.yaml under the configuration
directory. Command-line flags override these values for a single run.

Keys: ` + strings.Join(config.Keys, ", "),
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every setting and its current value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, key := range config.Keys {
			value := config.Get(key)
			if value == "" {
				value = "-"
			}
			fmt.Fprintf(w, "%s\t%s\n", key, value)
		}
		fmt.Fprintf(w, "\nfile\t%s\n", config.FilePath())
		return w.Flush()
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(config.Keys, args[0]) {
			return &UsageError{Msg: (&config.UnknownKeyError{Key: args[0]}).Error()}
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if key == config.KeyLogLevel {
			if _, err := logging.ParseLevel(value); err != nil {
				return &UsageError{Msg: err.Error()}
			}
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
