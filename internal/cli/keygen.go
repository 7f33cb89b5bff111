package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kochabx/jwekit/core/util/id"
	"github.com/kochabx/jwekit/core/util/qrcode"
)

func newKeygenCommand(o *Options) *cobra.Command {
	var (
		qrFile     string
		qrSize     int
		qrTerminal bool
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a session key pair",
		Long: `Generate a P-256 session key pair.

The public key is printed in wire form (182 hex characters) and the private
key as the 64 hex character scalar. A time ordered key id is suggested for
the session. --qr writes the public key as a PNG QR code for pairing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBridge(o, bridgeFlags{})
			if err != nil {
				return err
			}

			pair := b.CreateKeyPair()
			kid := id.KeyID()

			if qrFile != "" {
				if err := qrcode.WriteFile(pair.Public, qrSize, qrFile); err != nil {
					return err
				}
				printVerbose(cmd, o, "public key QR code written to %s", qrFile)
			}

			if err := NewPrinter(o.Output, cmd.OutOrStdout()).PrintKeyPair(kid, pair); err != nil {
				return err
			}

			if qrTerminal {
				art, err := qrcode.Terminal(pair.Public)
				if err != nil {
					return err
				}
				// keep stdout machine readable for json and yaml
				w := cmd.OutOrStdout()
				if OutputFormat(o.Output) != OutputFormatText {
					w = cmd.ErrOrStderr()
				}
				fmt.Fprint(w, art)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&qrFile, "qr", "", "write the public key as a PNG QR code to this file")
	cmd.Flags().IntVar(&qrSize, "qr-size", qrcode.DefaultSize, "QR code PNG size in pixels")
	cmd.Flags().BoolVar(&qrTerminal, "qr-terminal", false, "render the public key QR code in the terminal")
	return cmd
}

func printVerbose(cmd *cobra.Command, o *Options, format string, args ...any) {
	if o.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "[VERBOSE] "+format+"\n", args...)
	}
}
