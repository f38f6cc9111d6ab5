// Command mossargs parses an argument list against a declaration file and
// prints the typed result. It is handy for checking how a program built on
// parsecommands will see its command line:
//
//	mossargs -decls flags.yaml -- -v -n hello__world build
package main

import (
	"flag"
	"io"
	"os"

	"github.com/digitalcave/moss/log"
	"github.com/digitalcave/moss/pkg/declfile"
	"github.com/digitalcave/moss/pkg/parsecommands"
	"github.com/go-kit/kit/log/level"
	"github.com/kolide/kit/logutil"
	"github.com/pkg/errors"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if errors.Is(err, flag.ErrHelp) || errors.Is(err, errVersion) {
		return 0
	}
	if err != nil {
		// only used until options are parsed
		logger := logutil.NewCLILogger(true)
		level.Info(logger).Log("msg", "error parsing options", "err", err)
		return 1
	}

	logger := log.NewLogger(stderr)
	logger.SetLevel(opts.logLevel)
	if opts.debug {
		logger.AllowDebug()
	}

	set, err := declfile.Load(opts.declsPath)
	if err != nil {
		logger.Error("msg", "loading declarations", "err", err)
		return 1
	}
	logger.Debug("msg", "loaded declarations", "path", opts.declsPath, "count", len(set.Declarations))

	exitCode := 0
	results := parsecommands.ParseOrExit(opts.tokens, set.Help, set.Declarations,
		parsecommands.WithLogger(logger),
		parsecommands.WithOutput(stdout, stderr),
		parsecommands.WithExitFunc(func(code int) { exitCode = code }),
	)
	if results == nil {
		return exitCode
	}

	if err := render(stdout, results, opts.format); err != nil {
		logger.Error("msg", "rendering results", "err", err)
		return 1
	}

	return 0
}
