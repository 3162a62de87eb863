package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/menusheet/internal/cel"
)

func newFilterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "filter [expression]",
		Short: "List filter variables and functions, or check an expression",
		Long: `Filter expressions are CEL and must evaluate to bool. Each menu item is
bound to these variables:

  modifier      string        "Cmd+Shift", empty without a shortcut
  key           string        "N", "F5", "⌫", empty without a shortcut
  shortcut      string        "Cmd+Shift+N"
  has_shortcut  bool
  path          list(string)  labels from the top-level menu down
  depth         int           size(path)
  label         string        the last path segment

With an argument the expression is compiled and reported as valid or not.`,
		Example: "\n  menusheet filter\n  menusheet filter 'has_shortcut && path[0] == \"File\"'\n",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				if _, err := cel.Compile(args[0]); err != nil {
					return fmt.Errorf("invalid expression: %w", err)
				}
				fmt.Fprintln(out, "ok")
				return nil
			}
			fmt.Fprintln(out, "Functions:")
			fmt.Fprintln(out, "  "+strings.Join(cel.Functions(), ", "))
			return nil
		},
	}
}
