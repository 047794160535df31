package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metercore/mcore/pkg/aeseax"
	"github.com/metercore/mcore/pkg/codec"
)

var (
	eaxKeyHex  string
	eaxNonce   string
	eaxBadCode bool
)

func init() {
	cmd := newEaxCmd()
	cmd.PersistentFlags().StringVar(&eaxKeyHex, "key", "", "128-bit key as hex (required)")
	cmd.PersistentFlags().StringVar(&eaxNonce, "nonce", "", "Clear-text nonce participating in the MAC")
	cmd.PersistentFlags().
		BoolVar(&eaxBadCode, "badcode", false, "Reproduce the erroneous early C12.22 draft for interoperability testing")
	rootCmd.AddCommand(cmd)
}

func newEaxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eax",
		Short: "AES-EAX authenticated encryption",
		Long: `The eax command encrypts, decrypts, and authenticates message payloads
with AES-EAX as used by C12.22 message security. Ciphertext is the
payload bytes followed by the 4-byte MAC.

Example:
  mctl eax auth --key 000102030405060708090A0B0C0D0E0F --nonce abcdef
  mctl eax encrypt --key 000102030405060708090A0B0C0D0E0F --nonce abcdef "68 65 6C 6C 6F"
  mctl eax decrypt --key 000102030405060708090A0B0C0D0E0F --nonce abcdef <ciphertext-hex>`,
	}
	cmd.AddCommand(newEaxEncryptCmd(), newEaxDecryptCmd(), newEaxAuthCmd())
	return cmd
}

func eaxCipher() (*aeseax.Cipher, error) {
	key, err := codec.DecodeHex(eaxKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse key: %w", err)
	}
	if eaxBadCode {
		return aeseax.NewBadCode(key)
	}
	return aeseax.New(key)
}

func newEaxEncryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <plaintext-hex>",
		Short: "Encrypt and authenticate a payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := eaxCipher()
			if err != nil {
				return err
			}
			plaintext, err := codec.DecodeHex(args[0])
			if err != nil {
				return err
			}
			sealed := c.Encrypt([]byte(eaxNonce), plaintext)
			printInfo("%s\n", codec.EncodeHex(sealed, true))
			return nil
		},
	}
}

func newEaxDecryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <ciphertext-hex>",
		Short: "Verify and decrypt a payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := eaxCipher()
			if err != nil {
				return err
			}
			data, err := codec.DecodeHex(args[0])
			if err != nil {
				return err
			}
			plaintext, err := c.Decrypt([]byte(eaxNonce), data)
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}
			printInfo("%s\n", codec.EncodeHex(plaintext, true))
			return nil
		},
	}
}

func newEaxAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Compute the MAC over the nonce alone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := eaxCipher()
			if err != nil {
				return err
			}
			printInfo("%08X\n", c.Authenticate([]byte(eaxNonce)))
			return nil
		},
	}
}
