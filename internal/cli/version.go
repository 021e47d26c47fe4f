package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/extframework/extlaunch/internal/branding"
)

var (
	versionShort bool
	versionJSON  bool
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:  buildVersion,
		Commit:   buildCommit,
		Date:     buildDate,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		info := currentBuild()
		switch {
		case versionShort:
			fmt.Fprintln(out, info.Version)
		case versionJSON:
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
		default:
			fmt.Fprintf(out, "%s %s (commit %s, built %s, %s %s)\n",
				branding.CLIName(), info.Version, info.Commit, info.Date, info.Go, info.Platform)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print the version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build information as JSON")
	rootCmd.AddCommand(versionCmd)
}
