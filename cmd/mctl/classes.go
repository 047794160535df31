package main

import (
	"github.com/spf13/cobra"

	"github.com/metercore/mcore/pkg/class"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List the reflected class registry",
	Long: `The classes command prints every class registered in the process-wide
registry, with its parent and its own property names.

Example:
  mctl classes`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, d := range class.All() {
			if d.Parent != nil {
				printInfo("%s (%s)\n", d.Name, d.Parent.Name)
			} else {
				printInfo("%s\n", d.Name)
			}
			if verbose {
				for _, name := range d.PropertyNames() {
					printInfo("  %s\n", name)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(classesCmd)
}
