package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/extframework/extlaunch/internal/branding"
	"github.com/extframework/extlaunch/internal/config"
	"github.com/extframework/extlaunch/internal/home"
	"github.com/extframework/extlaunch/internal/logging"
	"github.com/extframework/extlaunch/internal/negotiate"
	"github.com/extframework/extlaunch/internal/packaged"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagLogLevel     string
	flagHome         string
	flagExtensionDir string
	flagManifest     string

	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` resolves extensions from their repositories, removes the
dependencies the host already packages, and runs the application with every
extension composed into one loader.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()

		level := flagLogLevel
		if level == "" {
			level = config.Get(config.KeyLogLevel)
		}
		l, err := logging.New(os.Stderr, level)
		if err != nil {
			return &UsageError{Msg: err.Error()}
		}
		logger = l
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagHome, "home", "", "Installation root (default ~/"+branding.HomeDir()+")")
	pf.StringVar(&flagExtensionDir, "extension-dir", "", "Directory extensions are cached in")
	pf.StringVar(&flagManifest, "manifest", "", "Packaged dependency list replacing the built-in one")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// UsageError reports invalid command-line input.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// setting returns the flag value when set, otherwise the config value.
func setting(flag, key string) string {
	if flag != "" {
		return flag
	}
	return config.Get(key)
}

// installDirs resolves the installation directories from flags, config and
// environment.
func installDirs() (home.Dirs, error) {
	dirs, err := home.Resolve(setting(flagHome, config.KeyHome))
	if err != nil {
		return home.Dirs{}, err
	}
	if ext := setting(flagExtensionDir, config.KeyExtensionDir); ext != "" {
		dirs = dirs.WithExtensions(ext)
	}
	return dirs, nil
}

// packagedSet loads the configured packaged list, or the built-in one.
func packagedSet(reg *negotiate.Registry) (*packaged.Set, error) {
	if path := setting(flagManifest, config.KeyManifest); path != "" {
		set, err := packaged.Load(path, reg)
		if err != nil {
			return nil, fmt.Errorf("loading packaged list: %w", err)
		}
		return set, nil
	}
	return packaged.Embedded(reg)
}
