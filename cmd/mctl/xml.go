package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metercore/mcore/pkg/variant"
	"github.com/metercore/mcore/pkg/xmldom"
)

var (
	xmlRaw      bool
	xmlPath     string
	xmlShowText bool
)

func init() {
	cmd := newXmlCmd()
	cmd.Flags().BoolVar(&xmlRaw, "raw", false, "Format without indentation")
	cmd.Flags().StringVar(&xmlPath, "path", "", "Print only the element at this path")
	cmd.Flags().BoolVar(&xmlShowText, "text", false, "Print the selected element's text instead of markup")
	rootCmd.AddCommand(cmd)
}

func newXmlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xml <file-or-markup>",
		Short: "Parse an XML document and reprint it",
		Long: `The xml command loads a document from a file or from in-place markup
(the argument is treated as markup when it starts with '<' and ends with
'>') and reprints it, optionally navigating to a path first.

Example:
  mctl xml tables.xml
  mctl xml '<tables><table name="ST1"/></tables>' --raw
  mctl xml tables.xml --path /tables/table --text`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runXml(args)
		},
	}
}

func runXml(args []string) error {
	doc := xmldom.New()
	if err := doc.Read(variant.NewString(args[0])); err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	if xmlRaw {
		doc.SetFormatMask(xmldom.FormatRaw)
	}

	if xmlPath != "" {
		node := doc.Node.FirstElementByPath(xmlPath)
		if node == nil {
			return fmt.Errorf("no element at path %q", xmlPath)
		}
		if xmlShowText {
			printInfo("%s\n", node.Text())
			return nil
		}
		printInfo("%s (%s)\n", node.Path(), node.Name())
		for _, a := range node.Attributes() {
			printInfo("  @%s = %s\n", a.Name, a.Value)
		}
		for _, c := range node.Children() {
			if c.NodeType() == xmldom.NodeElement {
				printInfo("  <%s>\n", c.Name())
			}
		}
		return nil
	}

	text, err := doc.AsString()
	if err != nil {
		return err
	}
	printInfo("%s", text)
	return nil
}
