// Package cli implements the jwekit command line.
package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kochabx/jwekit/log"
)

// Options are the persistent flags shared by every command.
type Options struct {
	ConfigFile string
	Output     string
	Verbose    bool
}

// NewRootCommand builds a fresh command tree. Each call owns its flags, so
// tests can run commands side by side.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&Options{})
}

func newRootCommand(o *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwekit",
		Short: "jwekit - ECDH-ES session encryption for compact JWE",
		Long: `jwekit seals and opens compact JWE tokens between two parties that
share an ECDH P-256 session.

Tokens use alg A256GCMKW with the raw ECDH secret as the key-wrapping key,
and enc A256GCM for the payload. Public keys travel as 182 hex characters
(a fixed SubjectPublicKeyInfo prefix followed by the uncompressed point).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(outputFormats, OutputFormat(o.Output)) {
				return fmt.Errorf("unknown output format %q, want one of text, json, yaml", o.Output)
			}
			// CLI failures are reported by the printer; library warnings
			// only show up with -v
			if o.Verbose {
				log.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				log.SetGlobalLevel(zerolog.ErrorLevel)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.ConfigFile, "config", "",
		"config file (default searches ./jwekit.yaml, ./configs, /etc/jwekit)")
	flags.StringVarP(&o.Output, "output", "o", string(OutputFormatText),
		"output format (text, json, yaml)")
	flags.BoolVarP(&o.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(
		newKeygenCommand(o),
		newEncryptCommand(o),
		newDecryptCommand(o),
		newServeCommand(o),
		newVersionCommand(o),
	)
	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	o := &Options{Output: string(OutputFormatText)}
	cmd := newRootCommand(o)
	if err := cmd.Execute(); err != nil {
		_ = NewPrinter(o.Output, os.Stderr).PrintError(err)
		return 1
	}
	return 0
}
