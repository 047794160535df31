package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/metercore/mcore/pkg/codec"
)

var (
	bcdSize       int
	numericFormat string
)

func init() {
	cmd := newCodecCmd()
	rootCmd.AddCommand(cmd)
}

func newCodecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codec",
		Short: "Run the wire codecs (BCD, RAD40, hex, Base64, numeric)",
		Long: `The codec command converts values through the metering wire codecs.

Example:
  mctl codec bcd encode 1234
  mctl codec bcd decode "12 34"
  mctl codec rad40 encode "KV2C"
  mctl codec base64 encode "01 02 03"
  mctl codec numeric decode "1.2.3.4"`,
	}
	cmd.AddCommand(newBcdCmd(), newRad40Cmd(), newBase64Cmd(), newNumericCmd())
	return cmd
}

func newBcdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bcd <encode|decode> <value>",
		Short: "Packed binary-coded decimal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "encode":
				value, err := strconv.ParseUint(args[1], 10, 64)
				if err != nil {
					return fmt.Errorf("failed to parse number: %w", err)
				}
				data, err := codec.EncodeBCD(value, bcdSize)
				if err != nil {
					return err
				}
				printInfo("%s\n", codec.EncodeHex(data, true))
			case "decode":
				data, err := codec.DecodeHex(args[1])
				if err != nil {
					return err
				}
				value, err := codec.DecodeBCD(data)
				if err != nil {
					return err
				}
				printInfo("%d\n", value)
			default:
				return fmt.Errorf("unknown direction %q (want encode or decode)", args[0])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&bcdSize, "size", 0, "Encoded size in bytes (0 = minimal)")
	return cmd
}

func newRad40Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rad40 <encode|decode> <value>",
		Short: "RAD40 packed character strings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "encode":
				data, err := codec.EncodeRAD40(args[1])
				if err != nil {
					return err
				}
				printInfo("%s\n", codec.EncodeHex(data, true))
			case "decode":
				data, err := codec.DecodeHex(args[1])
				if err != nil {
					return err
				}
				str, err := codec.DecodeRAD40(data)
				if err != nil {
					return err
				}
				printInfo("%s\n", str)
			default:
				return fmt.Errorf("unknown direction %q (want encode or decode)", args[0])
			}
			return nil
		},
	}
}

func newBase64Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "base64 <encode|decode> <value>",
		Short: "Base64 over hex byte strings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "encode":
				data, err := codec.DecodeHex(args[1])
				if err != nil {
					return err
				}
				printInfo("%s\n", codec.EncodeBase64(data))
			case "decode":
				data, err := codec.DecodeBase64(args[1])
				if err != nil {
					return err
				}
				printInfo("%s\n", codec.EncodeHex(data, true))
			default:
				return fmt.Errorf("unknown direction %q (want encode or decode)", args[0])
			}
			return nil
		},
	}
}

func newNumericCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "numeric <encode|decode> <value>",
		Short: "Numeric byte strings (dotted decimal)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "encode":
				data, err := codec.DecodeHex(args[1])
				if err != nil {
					return err
				}
				printInfo("%s\n", codec.EncodeNumeric(data, numericFormat))
			case "decode":
				data, err := codec.DecodeNumeric(args[1])
				if err != nil {
					return err
				}
				printInfo("%s\n", codec.EncodeHex(data, true))
			default:
				return fmt.Errorf("unknown direction %q (want encode or decode)", args[0])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&numericFormat, "format", "b.", "Cyclic format template")
	return cmd
}
