package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhcgn/eml-inspect/config"
	"github.com/dhcgn/eml-inspect/decoder"
	"github.com/dhcgn/eml-inspect/dump"
	"github.com/dhcgn/eml-inspect/eml"
	"github.com/dhcgn/eml-inspect/engine"
	"github.com/dhcgn/eml-inspect/model"
	"github.com/dhcgn/eml-inspect/report"
	"github.com/dhcgn/eml-inspect/scan"
	"github.com/dhcgn/eml-inspect/selector"
	"github.com/dhcgn/eml-inspect/source"
)

const longHelp = `eml-inspect analyzes MIME files for malware triage.

The MIME file can be provided as an argument, via stdin, or inside a
(password protected) zip file; the first entry of a .zip input is
extracted with the password "infected" before parsing. A .mbox input
takes the archive's first message.

Without options the tool lists the parts of the message:

  eml-inspect sample.vir
  1: M         multipart/alternative
  2:       610 text/plain
  3: M         multipart/related
  4:      1684 text/html
  5:    133896 application/octet-stream

The index is assigned by the tool, not taken from the message. A part
with an M marker is a multipart container and cannot be selected.

A part is selected with --select, by index or by MIME type, and rendered
as hex/ascii (default), hex (--hexdump) or raw bytes (--dump). The --cut
expression carves a byte range out of the selected part: two terms
separated by a colon, each a position (10, 0x10), a needle (['MZ'],
[d0cf11e0]) or empty; a trailing l on the right term turns the number
into a length. ['MZ']:0x100l selects the first 256 bytes of an embedded
PE file.

With --yara every part is scanned with the given rules. Decoders listed
with --decoders bruteforce an encoding family over each part before
scanning, so an XORed payload is still found:

  eml-inspect -y contains_pe_file.yara -D xor1 example-xor.eml
  3:    114704 application/octet-stream contains_pe_file.yara Contains_PE_File (XOR 1 byte key 0x14)
`

func main() {
	rootCmd := &cobra.Command{
		Use:           "eml-inspect [flags] [mimefile]",
		Short:         "Inspect, extract and pattern-scan the parts of a MIME message",
		Long:          longHelp,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd, args)
			if err != nil {
				return err
			}

			logger := setupLogger(cfg)
			slog.SetDefault(logger)

			return run(cfg, logger)
		},
	}

	config.RegisterFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	// The pattern engine is an optional capability; its absence is a
	// configuration error reported before any input is read.
	var rules engine.Rules
	if cfg.YaraRules != "" {
		var err error
		rules, err = engine.Compile(cfg.YaraRules)
		if err != nil {
			return fmt.Errorf("yara rules: %w", err)
		}
	}

	data, err := source.Read(cfg.InputPath, cfg.SkipHeader)
	if err != nil {
		return err
	}

	parts, err := eml.Parse(data)
	if err != nil {
		return err
	}

	switch {
	case cfg.Select != "":
		return selectPart(cfg, parts)
	case rules != nil:
		registry := decoder.Load(cfg.Decoders, cfg.Verbose, logger)
		pipeline := scan.New(rules, registry.Descriptors(), scan.Options{
			DecoderOptions: cfg.DecoderOptions,
			MatchStrings:   cfg.YaraStrings,
			Verbose:        cfg.Verbose,
		}, logger)
		return pipeline.Run(parts, func(h model.ScanHit) {
			report.Hit(os.Stdout, h)
		})
	default:
		report.Listing(os.Stdout, parts)
		return nil
	}
}

func selectPart(cfg config.Config, parts []model.Part) error {
	part, ok := selector.New(cfg.Select).Find(parts)
	if !ok {
		// A selection miss is not an error.
		return nil
	}
	if part.Container {
		fmt.Println("Warning: you selected a multipart part")
		return nil
	}

	data := cfg.CutExpr.Apply(part.Payload)
	switch {
	case cfg.Dump:
		return dump.WriteChunked(os.Stdout, data)
	case cfg.HexDump:
		return dump.WriteChunked(os.Stdout, []byte(dump.HexDump(data)))
	default:
		return dump.WriteChunked(os.Stdout, []byte(dump.HexAsciiDump(data)))
	}
}

func setupLogger(cfg config.Config) *slog.Logger {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)

	switch cfg.LogLevel {
	case "debug":
		level.Set(slog.LevelDebug)
	case "info":
		level.Set(slog.LevelInfo)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	}

	// Diagnostics go to stderr so piped part dumps stay clean.
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
