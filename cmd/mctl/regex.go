package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metercore/mcore/pkg/rx"
)

var (
	regexIgnoreCase bool
	regexReplace    string
)

func init() {
	cmd := newRegexCmd()
	cmd.Flags().BoolVarP(&regexIgnoreCase, "ignore-case", "i", false, "Case-insensitive matching")
	cmd.Flags().StringVar(&regexReplace, "replace", "", "Expand a replace template against the match")
	rootCmd.AddCommand(cmd)
}

func newRegexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regex <pattern> <input>",
		Short: "Match a POSIX-style pattern against input text",
		Long: `The regex command compiles a pattern and matches it against the input,
printing the whole match and every capture group with its offsets.

Example:
  mctl regex '^[\t ]*(.*)[\t ]*\((.*)\)' 'example.com!david(David)'
  mctl regex 'st[0-9]+' 'Read ST17 and MT2' --ignore-case
  mctl regex '(\<[a-z]+\>) (\<[a-z]+\>)' 'hello world' --replace '\2 \1'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegex(args)
		},
	}
}

func runRegex(args []string) error {
	re, err := rx.Compile(args[0], regexIgnoreCase)
	if err != nil {
		return fmt.Errorf("failed to compile pattern: %w", err)
	}
	if !re.MatchString(args[1]) {
		printInfo("no match\n")
		return nil
	}
	printInfo("match: %q at %d\n", re.Item(0), re.GetItemStart(0))
	for i := 1; i <= re.GetCount(); i++ {
		printInfo("  group %d: %q at %d length %d\n",
			i, re.Item(i), re.GetItemStart(i), re.GetItemLength(i))
	}
	if regexReplace != "" {
		printInfo("replace: %s\n", re.GetReplaceString(regexReplace))
	}
	return nil
}
