package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kochabx/jwekit/bridge"
	"github.com/kochabx/jwekit/errors"
)

// OutputFormat selects how results are written
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

var outputFormats = []OutputFormat{OutputFormatText, OutputFormatJSON, OutputFormatYAML}

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

type keygenResult struct {
	KeyID          string `json:"kid" yaml:"kid"`
	bridge.KeyPair `yaml:",inline"`
}

type tokenResult struct {
	KeyID string `json:"kid,omitempty" yaml:"kid,omitempty"`
	Token string `json:"token" yaml:"token"`
}

type dataResult struct {
	Data string `json:"data" yaml:"data"`
}

type errorResult struct {
	Code    int    `json:"code" yaml:"code"`
	Reason  string `json:"reason" yaml:"reason"`
	Message string `json:"error" yaml:"error"`
}

// PrintKeyPair prints a session key pair with its suggested key id
func (p *Printer) PrintKeyPair(keyID string, pair bridge.KeyPair) error {
	return p.print(keygenResult{KeyID: keyID, KeyPair: pair}, func() {
		fmt.Fprintf(p.writer, "kid: %s\n", keyID)
		fmt.Fprintf(p.writer, "pub: %s\n", pair.Public)
		fmt.Fprintf(p.writer, "pvt: %s\n", pair.Private)
	})
}

// PrintToken prints a compact JWE. Text output is the bare token so it can
// be piped into decrypt.
func (p *Printer) PrintToken(keyID, token string) error {
	return p.print(tokenResult{KeyID: keyID, Token: token}, func() {
		fmt.Fprintln(p.writer, token)
	})
}

// PrintData prints a decrypted payload
func (p *Printer) PrintData(data string) error {
	return p.print(dataResult{Data: data}, func() {
		fmt.Fprintln(p.writer, data)
	})
}

// PrintVersion prints build information
func (p *Printer) PrintVersion(info versionInfo) error {
	return p.print(info, func() {
		fmt.Fprintf(p.writer, "jwekit version %s\n", info.Version)
		fmt.Fprintf(p.writer, "Git commit: %s\n", info.Commit)
		fmt.Fprintf(p.writer, "Build date: %s\n", info.BuildDate)
		fmt.Fprintf(p.writer, "Go version: %s\n", info.GoVersion)
		fmt.Fprintf(p.writer, "OS/Arch: %s\n", info.Platform)
	})
}

// PrintError prints err with its code and reason when it carries them
func (p *Printer) PrintError(err error) error {
	e := errors.FromError(err)
	result := errorResult{Code: e.Code, Reason: e.Reason, Message: e.Message}
	if p.format != OutputFormatJSON && p.format != OutputFormatYAML {
		if e.Reason != errors.UnknownReason {
			_, werr := fmt.Fprintf(p.writer, "Error: %s (%s)\n", e.Message, e.Reason)
			return werr
		}
		_, werr := fmt.Fprintf(p.writer, "Error: %s\n", e.Message)
		return werr
	}
	return p.print(result, nil)
}

func (p *Printer) print(v any, text func()) error {
	switch p.format {
	case OutputFormatJSON:
		enc := json.NewEncoder(p.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(p.writer)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case OutputFormatText:
		text()
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}
