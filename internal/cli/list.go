package cli

import (
	"fmt"

	"github.com/agentkit-dev/agentkit/internal/materialize"
	"github.com/agentkit-dev/agentkit/internal/scaffold"
	"github.com/spf13/cobra"
)

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the files the template contains",
		Long:  `List every file the template would write, relative to the target directory.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.source()
			if err != nil {
				return err
			}

			files, err := materialize.Plan(src.FS)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if src.Bundled {
				m, err := scaffold.Manifest()
				if err != nil {
					return err
				}
				printHeader(out, fmt.Sprintf("Template %s %s", m.Name, m.Version))
				fmt.Fprintf(out, "  %s\n", m.Description)
			} else {
				printHeader(out, "Template "+src.Root)
			}

			fmt.Fprintf(out, "\nFiles (%d):\n", len(files))
			for _, f := range files {
				fmt.Fprintf(out, "  %s\n", f)
			}
			return nil
		},
	}
}
