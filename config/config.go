package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhcgn/eml-inspect/cut"
)

// Config captures all command-line options required for one run.
type Config struct {
	InputPath      string
	Select         string
	Dump           bool
	HexDump        bool
	ASCIIDump      bool
	Cut            string
	CutExpr        cut.Expression
	SkipHeader     bool
	YaraRules      string
	YaraStrings    bool
	Decoders       string
	DecoderOptions string
	Verbose        bool
	LogLevel       string
}

// RegisterFlags attaches all CLI flags to the provided command.
func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("select", "s", "", "Select a part by index or MIME type for dumping")
	flags.BoolP("dump", "d", false, "Dump the raw bytes of the selected part")
	flags.BoolP("hexdump", "x", false, "Hex dump of the selected part")
	flags.BoolP("asciidump", "a", false, "Hex/ascii dump of the selected part (default)")
	flags.StringP("cut", "c", "", "Cut expression applied to the selected part, e.g. ['MZ']:0x100l")
	flags.BoolP("header", "H", false, "Skip the first line of the input")
	flags.StringP("yara", "y", "", "YARA rule file, directory or @file list; scans every part (excludes --select)")
	flags.Bool("yarastrings", false, "Print YARA string match details")
	flags.StringP("decoders", "D", "", "Decoders to load, comma-separated, @file supported")
	flags.String("decoderoptions", "", "Options string passed to every decoder")
	flags.BoolP("verbose", "v", false, "Verbose output with decoder and plugin errors")
	flags.String("log-level", "info", "Logging level: debug, info, warn, error")
}

// LoadConfig converts the parsed Cobra flags into a Config struct with
// validation.
func LoadConfig(cmd *cobra.Command, args []string) (Config, error) {
	flags := cmd.Flags()

	sel, err := flags.GetString("select")
	if err != nil {
		return Config{}, err
	}
	dumpRaw, err := flags.GetBool("dump")
	if err != nil {
		return Config{}, err
	}
	hexDump, err := flags.GetBool("hexdump")
	if err != nil {
		return Config{}, err
	}
	asciiDump, err := flags.GetBool("asciidump")
	if err != nil {
		return Config{}, err
	}
	cutArg, err := flags.GetString("cut")
	if err != nil {
		return Config{}, err
	}
	skipHeader, err := flags.GetBool("header")
	if err != nil {
		return Config{}, err
	}
	yaraRules, err := flags.GetString("yara")
	if err != nil {
		return Config{}, err
	}
	yaraStrings, err := flags.GetBool("yarastrings")
	if err != nil {
		return Config{}, err
	}
	decoders, err := flags.GetString("decoders")
	if err != nil {
		return Config{}, err
	}
	decoderOptions, err := flags.GetString("decoderoptions")
	if err != nil {
		return Config{}, err
	}
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return Config{}, err
	}
	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return Config{}, err
	}

	logLevel = strings.ToLower(logLevel)
	if logLevel == "warning" {
		logLevel = "warn"
	}

	cfg := Config{
		Select:         sel,
		Dump:           dumpRaw,
		HexDump:        hexDump,
		ASCIIDump:      asciiDump,
		Cut:            cutArg,
		SkipHeader:     skipHeader,
		YaraRules:      yaraRules,
		YaraStrings:    yaraStrings,
		Decoders:       decoders,
		DecoderOptions: decoderOptions,
		Verbose:        verbose,
		LogLevel:       logLevel,
	}
	if len(args) > 0 {
		cfg.InputPath = args[0]
	}

	// An invalid cut expression aborts here, before any input is read.
	cfg.CutExpr, err = cut.Parse(cfg.Cut)
	if err != nil {
		return Config{}, fmt.Errorf("--cut: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validateConfig(cfg Config) error {
	if cfg.YaraRules != "" && cfg.Select != "" {
		return fmt.Errorf("--yara scans every part and cannot be combined with --select")
	}

	modes := 0
	for _, on := range []bool{cfg.Dump, cfg.HexDump, cfg.ASCIIDump} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return fmt.Errorf("--dump, --hexdump and --asciidump are mutually exclusive")
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid --log-level: %s", cfg.LogLevel)
	}

	return nil
}
