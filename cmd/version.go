package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tcnksm/go-latest"

	"github.com/oakwood-commons/menusheet/pkg/settings"
)

const releasesURL = "https://github.com/oakwood-commons/menusheet/releases"

// latestSource is where --check looks for the newest release.
var latestSource latest.Source = &latest.GithubTag{
	Owner:      "oakwood-commons",
	Repository: "menusheet",
}

func newVersionCommand() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the menusheet version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, settings.VersionInformation.String())
			if !check {
				return nil
			}

			current := settings.VersionInformation.BuildVersion
			res, err := latest.Check(latestSource, current)
			if err != nil {
				return fmt.Errorf("check latest version: %w", err)
			}
			if res.Outdated {
				fmt.Fprintf(out, "A new version is available: %s (you have %s)\n", res.Current, current)
				fmt.Fprintf(out, "Download it from %s\n", releasesURL)
			} else {
				fmt.Fprintf(out, "You are using the latest version: %s\n", current)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")
	return cmd
}
