package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kochabx/jwekit/bridge"
	"github.com/kochabx/jwekit/internal/conf"
)

// EnvPrivateKey is read when --private-key is not given, which keeps the key
// out of the process list.
const EnvPrivateKey = "JWEKIT_PRIVATE_KEY"

type keyFlags struct {
	keyID         string
	privateKey    string
	peerPublicKey string
}

func (k *keyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&k.keyID, "kid", "", "session key id")
	cmd.Flags().StringVar(&k.privateKey, "private-key", "",
		"own private key in hex (default $"+EnvPrivateKey+")")
	cmd.Flags().StringVar(&k.peerPublicKey, "peer-public-key", "", "peer public key in wire hex")
	_ = cmd.MarkFlagRequired("peer-public-key")
}

func (k *keyFlags) private() string {
	if k.privateKey != "" {
		return k.privateKey
	}
	return os.Getenv(EnvPrivateKey)
}

// bridgeFlags override the bridge section of the config file when set
type bridgeFlags struct {
	allowMissingKID  *bool
	verifySignatures *bool
}

// newBridge builds a bridge from the bridge section of --config, if any
func newBridge(o *Options, flags bridgeFlags) (*bridge.Bridge, error) {
	section := conf.Bridge{}
	if o.ConfigFile != "" {
		cfg, _, err := conf.Load(o.ConfigFile)
		if err != nil {
			return nil, err
		}
		section = cfg.Bridge
	}

	if flags.allowMissingKID != nil {
		section.AllowMissingKID = *flags.allowMissingKID
	}
	if flags.verifySignatures != nil {
		section.VerifySignatures = *flags.verifySignatures
	}

	opts, err := section.Options()
	if err != nil {
		return nil, err
	}
	return bridge.New(opts...), nil
}

// input returns value when the flag was set, otherwise stdin without the
// trailing line break
func input(cmd *cobra.Command, flag, value string) (string, error) {
	if cmd.Flags().Changed(flag) {
		return value, nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	s := strings.TrimSuffix(string(b), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

func newEncryptCommand(o *Options) *cobra.Command {
	var (
		keys keyFlags
		data string
	)

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a payload into a compact JWE",
		Long: `Encrypt a payload for the peer.

The payload comes from --data or, when absent, from stdin. An empty --kid
leaves the kid header out of the token.`,
		Example: `  jwekit encrypt --kid k1 --private-key $PVT --peer-public-key $PUB --data ping
  echo '{"a":1}' | jwekit encrypt --kid k1 --peer-public-key $PUB`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plaintext, err := input(cmd, "data", data)
			if err != nil {
				return err
			}

			b, err := newBridge(o, bridgeFlags{})
			if err != nil {
				return err
			}

			token, err := b.Encrypt(keys.keyID, keys.private(), keys.peerPublicKey, plaintext)
			if err != nil {
				return err
			}
			return NewPrinter(o.Output, cmd.OutOrStdout()).PrintToken(keys.keyID, token)
		},
	}

	keys.register(cmd)
	cmd.Flags().StringVar(&data, "data", "", "payload to encrypt (default stdin)")
	return cmd
}

func newDecryptCommand(o *Options) *cobra.Command {
	var (
		keys             keyFlags
		token            string
		serverPublicKey  string
		allowMissingKID  bool
		verifySignatures bool
	)

	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a compact JWE",
		Long: `Decrypt a token sealed by the peer.

The token comes from --token or, when absent, from stdin. The kid header is
checked against --kid before any key is used.`,
		Example: `  jwekit encrypt --kid k1 --peer-public-key $B_PUB --data ping | \
    JWEKIT_PRIVATE_KEY=$B_PVT jwekit decrypt --kid k1 --peer-public-key $A_PUB`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := input(cmd, "token", token)
			if err != nil {
				return err
			}

			var flags bridgeFlags
			if cmd.Flags().Changed("allow-missing-kid") {
				flags.allowMissingKID = &allowMissingKID
			}
			if cmd.Flags().Changed("verify-signatures") {
				flags.verifySignatures = &verifySignatures
			}
			b, err := newBridge(o, flags)
			if err != nil {
				return err
			}

			var opts []bridge.DecryptOption
			if serverPublicKey != "" {
				opts = append(opts, bridge.WithServerPublicKey(serverPublicKey))
			}

			data, err := b.Decrypt(keys.keyID, keys.private(), keys.peerPublicKey, strings.TrimSpace(t), opts...)
			if err != nil {
				return err
			}
			return NewPrinter(o.Output, cmd.OutOrStdout()).PrintData(data)
		},
	}

	keys.register(cmd)
	cmd.Flags().StringVar(&token, "token", "", "compact JWE (default stdin)")
	cmd.Flags().StringVar(&serverPublicKey, "server-public-key", "",
		"public key of the trusted issuer for signed inner tokens")
	cmd.Flags().BoolVar(&allowMissingKID, "allow-missing-kid", false, "accept tokens without a kid header")
	cmd.Flags().BoolVar(&verifySignatures, "verify-signatures", false, "verify ES256 signatures of JWT payloads")
	return cmd
}
