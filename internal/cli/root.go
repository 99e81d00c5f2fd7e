package cli

import (
	"fmt"
	"path/filepath"

	"github.com/agentkit-dev/agentkit/internal/branding"
	"github.com/agentkit-dev/agentkit/internal/config"
	"github.com/agentkit-dev/agentkit/internal/logging"
	"github.com/agentkit-dev/agentkit/internal/manifest"
	"github.com/agentkit-dev/agentkit/internal/materialize"
	"github.com/agentkit-dev/agentkit/internal/scaffold"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// BuildInfo carries the values injected via ldflags at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app is the state shared by every command in one invocation.
type app struct {
	build    BuildInfo
	settings *viper.Viper
	logger   *zap.Logger
}

// NewRootCommand builds the full command tree.
func NewRootCommand(build BuildInfo) *cobra.Command {
	a := &app{build: build, logger: zap.NewNop()}

	var dryRun bool

	rootCmd := &cobra.Command{
		Use:   branding.CLIName() + " [target-directory]",
		Short: branding.Description(),
		Long: branding.DisplayName() + ` copies a ready-made set of editor and AI-assistant configuration
(VS Code settings and extension recommendations, Cursor rules, and an example
agent workflow script) into a project directory.

The target directory defaults to the current directory and is created if it
does not exist. Files that already exist at the same paths are overwritten.

Examples:
  ` + branding.CLIName() + `
  ` + branding.CLIName() + ` ./my-project
  ` + branding.CLIName() + ` --template ~/team-template ./my-project
  ` + branding.CLIName() + ` --dry-run`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", build.Version, build.Commit, build.Date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			if dryRun {
				return a.runPlan(cmd, target)
			}
			return a.runMaterialize(cmd, target)
		},
	}

	rootCmd.PersistentFlags().String("template", "", "Template directory to copy instead of the bundled one")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the files that would be written without writing them")

	rootCmd.AddCommand(newListCommand(a))
	rootCmd.AddCommand(newDoctorCommand(a))
	rootCmd.AddCommand(newVersionCommand(a))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

// Execute runs the command tree and prints any error once on stderr.
func Execute(build BuildInfo) error {
	rootCmd := NewRootCommand(build)
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// setup loads settings, binds the global flags over them and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	v, err := config.Load()
	if err != nil {
		return err
	}

	bindings := map[string]string{
		config.KeyTemplateDir: "template",
		config.KeyVerbose:     "verbose",
	}
	for key, flagName := range bindings {
		if err := bindFlag(v, key, cmd.Flags().Lookup(flagName)); err != nil {
			return err
		}
	}

	a.settings = v
	a.logger = logging.New(cmd.ErrOrStderr(), v.GetBool(config.KeyVerbose))
	return nil
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) error {
	if flag == nil {
		return nil
	}
	if err := v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("binding --%s: %w", flag.Name, err)
	}
	return nil
}

// source resolves the template tree from settings.
func (a *app) source() (*scaffold.Source, error) {
	return scaffold.Resolve(a.settings.GetString(config.KeyTemplateDir))
}

func (a *app) runMaterialize(cmd *cobra.Command, target string) error {
	src, err := a.source()
	if err != nil {
		return err
	}
	if src.Bundled {
		a.warnIfIncompatible()
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolving target directory %s: %w", target, err)
	}

	a.logger.Debug("copying template",
		zap.String("template", src.Root),
		zap.String("destination", absTarget),
	)

	if err := materialize.New(a.logger).Materialize(src.FS, absTarget); err != nil {
		return fmt.Errorf("copying template into %s: %w", absTarget, err)
	}

	printSuccess(cmd.OutOrStdout(), "Project configuration copied to "+absTarget)
	return nil
}

func (a *app) runPlan(cmd *cobra.Command, target string) error {
	src, err := a.source()
	if err != nil {
		return err
	}

	files, err := materialize.Plan(src.FS)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Would write %d file(s):\n", len(files))
	for _, f := range files {
		fmt.Fprintf(out, "  %s\n", filepath.Join(target, filepath.FromSlash(f)))
	}
	return nil
}

// warnIfIncompatible logs a warning when the bundled manifest asks for a newer
// CLI than the running one. That only happens with mismatched release builds.
func (a *app) warnIfIncompatible() {
	m, err := scaffold.Manifest()
	if err != nil {
		a.logger.Warn("bundled template manifest unreadable", zap.Error(err))
		return
	}
	if err := manifest.CheckCompatibility(m, a.build.Version); err != nil {
		a.logger.Warn("template compatibility", zap.Error(err))
	}
}
