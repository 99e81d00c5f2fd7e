package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/agentkit-dev/agentkit/internal/branding"
	"github.com/agentkit-dev/agentkit/internal/manifest"
	"github.com/agentkit-dev/agentkit/internal/scaffold"
	"github.com/agentkit-dev/agentkit/internal/verify"
	"github.com/spf13/cobra"
)

func newDoctorCommand(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "doctor [target-directory]",
		Short: "Check a project against the template",
		Long: `Run diagnostic checks: validate the bundled template manifest, confirm the CLI
is new enough for it, and compare the target directory with the template.

Missing files, edited files and JSON settings that no longer parse are
reported. Files the template does not contain are ignored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			return a.runDoctor(cmd.OutOrStdout(), target, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when the project differs from the template")
	return cmd
}

func (a *app) runDoctor(w io.Writer, target string, strict bool) error {
	src, err := a.source()
	if err != nil {
		return err
	}

	if src.Bundled {
		if err := a.checkManifest(w); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolving target directory %s: %w", target, err)
	}

	report, err := verify.Check(src.FS, absTarget)
	if err != nil {
		return err
	}
	report.Write(w)

	if report.Clean() {
		return nil
	}

	problems := len(report.Findings) - report.Count(verify.StatusOK)
	fmt.Fprintf(w, "\n%d problem(s); run '%s %s' to restore the template files.\n",
		problems, branding.CLIName(), target)
	if strict {
		return fmt.Errorf("%s differs from the template in %d place(s)", absTarget, problems)
	}
	return nil
}

func (a *app) checkManifest(w io.Writer) error {
	fmt.Fprintln(w, "Template manifest:")

	result, err := scaffold.ValidateManifest()
	if err != nil {
		return fmt.Errorf("validating bundled manifest: %w", err)
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "  [FAIL] %s\n", issue)
		}
		return nil
	}

	m, err := scaffold.Manifest()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return nil
	}
	fmt.Fprintf(w, "  [ OK ] %s %s matches the manifest schema\n", m.Name, m.Version)

	if err := manifest.CheckCompatibility(m, a.build.Version); err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return nil
	}
	if m.MinCLIVersion != "" {
		fmt.Fprintf(w, "  [ OK ] CLI %s satisfies >= %s\n", a.build.Version, m.MinCLIVersion)
	}
	return nil
}
