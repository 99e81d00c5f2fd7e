package cli

import (
	"encoding/json"
	"fmt"

	"github.com/agentkit-dev/agentkit/internal/branding"
	"github.com/agentkit-dev/agentkit/internal/scaffold"
	"github.com/spf13/cobra"
)

func newVersionCommand(a *app) *cobra.Command {
	var (
		versionShort bool
		versionJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if versionShort {
				fmt.Fprintln(out, a.build.Version)
				return nil
			}

			templateVersion := "unknown"
			if m, err := scaffold.Manifest(); err == nil {
				templateVersion = m.Version
			}

			if versionJSON {
				info := map[string]string{
					"version":          a.build.Version,
					"commit":           a.build.Commit,
					"date":             a.build.Date,
					"template_version": templateVersion,
				}
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n",
				branding.CLIName(), a.build.Version, a.build.Commit, a.build.Date)
			fmt.Fprintf(out, "bundled template version %s\n", templateVersion)
			return nil
		},
	}

	cmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	cmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	return cmd
}
