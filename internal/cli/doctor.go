package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/extframework/extlaunch/internal/negotiate"
	"github.com/extframework/extlaunch/internal/profile"
	"github.com/extframework/extlaunch/internal/resolve"
)

var (
	checkMetadata string
	checkProfile  string
)

func init() {
	doctorCmd.Flags().StringVar(&checkMetadata, "check-metadata", "", "Validate an artifact metadata file at the given path")
	doctorCmd.Flags().StringVar(&checkProfile, "check-profile", "", "Validate a launch profile at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the installation",
	Long: `Check the installation directories and the packaged dependency list, and
optionally validate a metadata file or a launch profile.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		failed += runInstallCheck(out)
		failed += runPackagedCheck(out)
		if checkMetadata != "" {
			failed += runMetadataCheck(out, checkMetadata)
		}
		if checkProfile != "" {
			failed += runProfileCheck(out, checkProfile)
		}
		if failed > 0 {
			return fmt.Errorf("%d check(s) failed", failed)
		}
		return nil
	},
}

func runInstallCheck(w io.Writer) int {
	fmt.Fprintln(w, "Installation check:")
	dirs, err := installDirs()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	for _, d := range []struct{ name, path string }{
		{"root", dirs.Root},
		{"extensions", dirs.Extensions},
		{"partitions", dirs.Partitions},
		{"archives", dirs.Archives},
	} {
		info, err := os.Stat(d.path)
		switch {
		case os.IsNotExist(err):
			fmt.Fprintf(w, "  [MISS] %s: %s (created on first launch)\n", d.name, d.path)
		case err != nil:
			fmt.Fprintf(w, "  [FAIL] %s: %v\n", d.name, err)
			return 1
		case !info.IsDir():
			fmt.Fprintf(w, "  [FAIL] %s: %s is not a directory\n", d.name, d.path)
			return 1
		default:
			fmt.Fprintf(w, "  [ OK ] %s: %s\n", d.name, d.path)
		}
	}
	return 0
}

func runPackagedCheck(w io.Writer) int {
	fmt.Fprintln(w, "Packaged check:")
	set, err := packagedSet(negotiate.Default())
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %d packaged dependencies\n", set.Len())
	return 0
}

func runMetadataCheck(w io.Writer, path string) int {
	fmt.Fprintf(w, "Metadata validation: %s\n", path)
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	issues, err := resolve.Validate(data)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	if len(issues) == 0 {
		fmt.Fprintln(w, "  [ OK ] Valid metadata")
		return 0
	}

	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(issues))
	for _, issue := range issues {
		fmt.Fprintf(w, "    - %s\n", issue)
	}
	return 1
}

func runProfileCheck(w io.Writer, path string) int {
	fmt.Fprintf(w, "Profile validation: %s\n", path)
	p, err := profile.Load(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] main class %q with %d extension(s)\n", p.MainClass, len(p.Extensions))
	return 0
}
