package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metercore/mcore/pkg/codec/mdl"
)

var mdlStrict bool

func init() {
	cmd := newMdlCmd()
	cmd.Flags().BoolVar(&mdlStrict, "strict", false, "Format unsigned values with the 'u' suffix")
	rootCmd.AddCommand(cmd)
}

func newMdlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mdl <constant>",
		Short: "Parse an MDL constant and print its canonical form",
		Long: `The mdl command parses a constant in MDL notation and reprints it in
canonical form, confirming the round trip.

Example:
  mctl mdl '{1:"a",2:"b"}'
  mctl mdl 'x"01 02 03"'
  mctl mdl '3.5' --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMdl(args)
		},
	}
}

func runMdl(args []string) error {
	value, err := mdl.Parse(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse constant: %w", err)
	}
	printVerbose("kind: %s\n", value.Kind())
	printInfo("%s\n", value.ToMDLConstant(mdlStrict))
	return nil
}
