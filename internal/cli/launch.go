package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/extframework/extlaunch/internal/apptarget"
	"github.com/extframework/extlaunch/internal/descriptor"
	"github.com/extframework/extlaunch/internal/invoke"
	"github.com/extframework/extlaunch/internal/launch"
	"github.com/extframework/extlaunch/internal/negotiate"
	"github.com/extframework/extlaunch/internal/profile"
	"github.com/extframework/extlaunch/internal/repository"
)

var (
	launchWorkingDir   string
	launchVersion      string
	launchExtensions   []string
	launchRepositories []string
	launchMainClass    string
	launchClasspath    string
	launchProfile      string
	launchPlatform     []string
)

var launchCmd = &cobra.Command{
	Use:   "launch [flags] -- [args...]",
	Short: "Launch an application with extensions",
	Long: `Resolve each extension from its repository, drop the dependencies the host
already packages, cache and open the remaining archives, and run the main code
unit with every extension composed ahead of the application.

Extensions and repositories pair up in order:

  ` + "extlaunch launch -e dev.ext:tweaks:1.0 -r local@./repo --classpath app --main-class com.example.Main -- --verbose" + `

Arguments after -- are passed to the main code unit.`,
	RunE: runLaunch,
}

func init() {
	f := launchCmd.Flags()
	f.StringVarP(&launchWorkingDir, "working-dir", "w", "", "Working directory of the application")
	f.StringVar(&launchVersion, "version", "", "Framework release, as extframework-<version>")
	f.StringArrayVarP(&launchExtensions, "extension", "e", nil, "Extension descriptor group:artifact:version (repeatable)")
	f.StringArrayVarP(&launchRepositories, "repository", "r", nil, "Repository type@location for the extension at the same position (repeatable)")
	f.StringVar(&launchMainClass, "main-class", "", "Code unit to run, e.g. com.example.Main")
	f.StringVar(&launchClasspath, "classpath", "", "Application entries separated by the path list separator")
	f.StringVar(&launchProfile, "profile", "", "TOML launch profile supplying defaults")
	f.StringArrayVar(&launchPlatform, "platform", nil, "Entry served as the parent loader (repeatable)")
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	passthrough := args
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		if dash > 0 {
			return &UsageError{Msg: fmt.Sprintf("unexpected arguments before --: %v", args[:dash])}
		}
		passthrough = args[dash:]
	} else if len(args) > 0 {
		return &UsageError{Msg: "application arguments must follow --"}
	}

	req, err := buildRequest(cmd, passthrough)
	if err != nil {
		return err
	}

	l, err := newLauncher()
	if err != nil {
		return err
	}
	return l.Launch(cmd.Context(), req)
}

func newLauncher() (*launch.Launcher, error) {
	reg := negotiate.Default()
	set, err := packagedSet(reg)
	if err != nil {
		return nil, err
	}
	dirs, err := installDirs()
	if err != nil {
		return nil, err
	}
	return &launch.Launcher{
		Registry: reg,
		Packaged: set,
		Dirs:     dirs,
		Logger:   logger,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}, nil
}

// buildRequest merges the profile, if any, with the flags. Flags win.
func buildRequest(cmd *cobra.Command, passthrough []string) (launch.Request, error) {
	var req launch.Request
	var descs, repos []string

	if launchProfile != "" {
		p, err := profile.Load(launchProfile)
		if err != nil {
			return launch.Request{}, err
		}
		req.MainClass = p.MainClass
		req.Classpath = p.Classpath
		req.Args = p.Args
		req.Version = p.Version
		req.WorkingDir = p.WorkingDir
		for _, e := range p.Extensions {
			descs = append(descs, e.Descriptor)
			repos = append(repos, e.Repository)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("main-class") {
		req.MainClass = launchMainClass
	}
	if flags.Changed("classpath") {
		req.Classpath = apptarget.SplitClasspath(launchClasspath)
	}
	if flags.Changed("version") {
		req.Version = launchVersion
	}
	if flags.Changed("working-dir") {
		req.WorkingDir = launchWorkingDir
	}
	if flags.Changed("extension") || flags.Changed("repository") {
		descs, repos = launchExtensions, launchRepositories
	}
	if len(passthrough) > 0 {
		req.Args = passthrough
	}
	req.Platform = launchPlatform

	if req.MainClass == "" {
		return launch.Request{}, &UsageError{Msg: "--main-class is required (or main_class in the profile)"}
	}
	if req.Version != "" {
		if _, err := launch.ParseVersion(req.Version); err != nil {
			return launch.Request{}, &UsageError{Msg: err.Error()}
		}
	}

	exts, err := pairExtensions(descs, repos)
	if err != nil {
		return launch.Request{}, err
	}
	req.Extensions = exts
	return req, nil
}

// pairExtensions matches each extension descriptor with the repository at the
// same position.
func pairExtensions(descs, repos []string) ([]launch.Extension, error) {
	if len(descs) != len(repos) {
		return nil, &UsageError{Msg: fmt.Sprintf(
			"got %d extensions and %d repositories: each --extension needs a --repository", len(descs), len(repos))}
	}

	exts := make([]launch.Extension, len(descs))
	for i := range descs {
		d, err := descriptor.Parse(descriptor.KindExtension, descs[i])
		if err != nil {
			return nil, &UsageError{Msg: err.Error()}
		}
		repo, err := repository.Parse(repos[i])
		if err != nil {
			return nil, &UsageError{Msg: err.Error()}
		}
		exts[i] = launch.Extension{Descriptor: d, Repository: repo}
	}
	return exts, nil
}

// ExitCode maps an error returned by Execute to a process exit code: the
// status of a failed code unit, 2 for usage errors, 1 otherwise.
func ExitCode(err error) int {
	var exit *invoke.ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}
