package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/kolide/kit/version"
	"github.com/peterbourgon/ff/v3"
	"github.com/pkg/errors"
)

const (
	envPrefix     = "MOSS"
	defaultFormat = "json"
)

// errVersion stops option parsing once -version has printed.
var errVersion = errors.New("version requested")

// options is the set of configurable options that may be set when running
// this program. tokens holds everything after the "--" separator.
type options struct {
	declsPath      string
	format         string
	logLevel       string
	debug          bool
	configFilePath string
	tokens         []string
}

// parseOptions parses the options that may be configured via command-line
// flags, environment variables or a config file, and returns a typed
// struct of options for further application use
func parseOptions(args []string, output io.Writer) (*options, error) {
	flagset := flag.NewFlagSet("mossargs", flag.ContinueOnError)
	flagset.SetOutput(output)
	flagset.Usage = commandUsage(flagset, output, "mossargs [options] -- <arguments>")

	var (
		flDecls          = flagset.String("decls", "", "Declaration file describing the flags to parse (.yaml, .json, .ini or .plist)")
		flFormat         = flagset.String("format", defaultFormat, "Output format (options: json, yaml)")
		flLogLevel       = flagset.String("log_level", "info", "Log level (options: error, warn, info, debug, or SEVERE through FINEST)")
		flDebug          = flagset.Bool("debug", false, "Whether or not debug logging is enabled (default: false)")
		flVersion        = flagset.Bool("version", false, "Print version and exit")
		flConfigFilePath = flagset.String("config", "", "config file to parse options from (optional)")
	)

	ffOpts := []ff.Option{
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithEnvVarPrefix(envPrefix),
	}

	if err := ff.Parse(flagset, args, ffOpts...); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, flag.ErrHelp
		}
		return nil, errors.Wrap(err, "parsing options")
	}

	// handle -version
	if *flVersion {
		version.PrintFull()
		return nil, errVersion
	}

	if *flDecls == "" {
		flagset.Usage()
		return nil, errors.New("a declaration file is required (-decls)")
	}

	format := strings.ToLower(*flFormat)
	switch format {
	case "json", "yaml":
	default:
		return nil, fmt.Errorf("unknown output format %s", *flFormat)
	}

	return &options{
		declsPath:      *flDecls,
		format:         format,
		logLevel:       *flLogLevel,
		debug:          *flDebug,
		configFilePath: *flConfigFilePath,
		tokens:         flagset.Args(),
	}, nil
}

func commandUsage(fs *flag.FlagSet, output io.Writer, short string) func() {
	return func() {
		fmt.Fprintf(output, "  Usage:\n")
		fmt.Fprintf(output, "    %s\n", short)
		fmt.Fprintf(output, "\n")
		fmt.Fprintf(output, "  Flags:\n")
		w := tabwriter.NewWriter(output, 0, 2, 2, ' ', 0)
		fs.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(w, "    -%s %s\t%s\n", f.Name, f.DefValue, f.Usage)
		})
		w.Flush()
		fmt.Fprintf(output, "\n")
		fmt.Fprintf(output, "  All options can be set as environment variables using the following convention:\n")
		fmt.Fprintf(output, "      %s_OPTION=value mossargs\n", envPrefix)
		fmt.Fprintf(output, "\n")
	}
}
