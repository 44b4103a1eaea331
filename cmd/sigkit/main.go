package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/Sunkar2710/sigkit/internal/cli"
	"github.com/Sunkar2710/sigkit/internal/errors"
	"github.com/Sunkar2710/sigkit/internal/server"
	"github.com/Sunkar2710/sigkit/internal/signature"
	"github.com/Sunkar2710/sigkit/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit code
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("sigkit", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		modeFlag     = flags.String("mode", cli.ModeParse, "Processing mode: parse or split")
		engineFlag   = flags.String("engine", signature.ScannerEngine, "Signature engine: scanner or grammar")
		delimsFlag   = flags.String("delims", " ", "Delimiter characters for split mode (every character counts)")
		formatFlag   = flags.String("format", cli.FormatText, "Output format: text, json or yaml")
		configFlag   = flags.String("config", "", "YAML configuration file")
		envFlag      = flags.String("env", "", "Environment file (defaults to .env when present)")
		serveFlag    = flags.Bool("serve", false, "Start the HTTP API instead of processing inputs")
		addrFlag     = flags.String("addr", server.DefaultConfig().Addr, "Listen address for -serve")
		failFastFlag = flags.Bool("fail-fast", false, "Stop at the first line that fails")
		verboseFlag  = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag    = flags.Bool("quiet", false, "Only show errors")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: sigkit [options] [inputs...]\n\n")
		fmt.Fprintf(stderr, "Method signature parser and delimiter splitter.\n")
		fmt.Fprintf(stderr, "Reads inputs line by line; '-' or no inputs reads standard input.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  echo 'private void log(String value)' | sigkit\n")
		fmt.Fprintf(stderr, "  sigkit -format json signatures.txt\n")
		fmt.Fprintf(stderr, "  sigkit -mode split -delims ',;' data.txt\n")
		fmt.Fprintf(stderr, "  sigkit -serve -addr :8080\n")
	}

	if err := flags.Parse(args); err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg := cli.DefaultConfig()
	if *configFlag != "" {
		if err := cli.LoadConfigFile(cfg, *configFlag); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	if err := cli.LoadEnv(cfg, *envFlag); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// explicitly set flags win over file and environment
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *modeFlag
		case "engine":
			cfg.Engine = *engineFlag
		case "delims":
			cfg.Delimiters = []string{*delimsFlag}
		case "format":
			cfg.Format = *formatFlag
		case "serve":
			cfg.Serve = *serveFlag
		case "addr":
			cfg.Server.Addr = *addrFlag
		case "fail-fast":
			cfg.FailFast = *failFastFlag
		case "verbose":
			cfg.Verbose = *verboseFlag
		case "quiet":
			cfg.Quiet = *quietFlag
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printSuggestions(stderr, err)
		return 1
	}

	var diagnostics *utils.DiagnosticSystem
	if cfg.Quiet {
		diagnostics = utils.NewQuietDiagnostics()
	} else if cfg.Verbose {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticWarn)
	}
	if stderr != os.Stderr {
		diagnostics.WithWriters(stderr, stderr)
	}

	if cfg.Serve {
		return serve(ctx, cfg, diagnostics)
	}

	runner, err := cli.NewRunner(cfg, stdout, diagnostics)
	if err != nil {
		diagnostics.Error("%v", err)
		return 1
	}
	runner.WithStdin(stdin)

	inputs := flags.Args()
	if len(inputs) == 0 {
		inputs = []string{cli.StdinInput}
	}
	diagnostics.Section(fmt.Sprintf("sigkit %s (engine %s, format %s)", cfg.Mode, cfg.Engine, cfg.Format))
	diagnostics.Subsection("Inputs")
	diagnostics.Indent()
	for _, input := range inputs {
		diagnostics.List("%s", input)
	}
	diagnostics.Unindent()

	summary, err := runner.Run(ctx, inputs)
	if cfg.Verbose {
		diagnostics.Summary("Run complete", summary.Stats())
	}
	if err != nil {
		var multi *errors.MultipleErrors
		if stderrors.As(err, &multi) {
			diagnostics.Warn("%s", failureBreakdown(summary, multi))
		} else if !cli.IsReported(err) {
			diagnostics.Error("%v", err)
		}
		return 1
	}
	diagnostics.Success("Processed %d lines from %d inputs", summary.LinesProcessed, summary.InputsRead)
	return 0
}

// failureBreakdown summarizes collected failures per error code
func failureBreakdown(summary *cli.Summary, failures *errors.MultipleErrors) string {
	var parts []string
	if summary.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d of %d lines failed", summary.Failed, summary.LinesProcessed))
	}
	if summary.InputsFailed > 0 {
		parts = append(parts, fmt.Sprintf("%d inputs could not be read", summary.InputsFailed))
	}

	var counts []string
	for _, code := range []errors.ErrorCode{
		errors.FieldMissingErrorCode,
		errors.SyntaxErrorCode,
		errors.FileSystemErrorCode,
		errors.UnknownErrorCode,
	} {
		if failures.HasCode(code) {
			counts = append(counts, fmt.Sprintf("%s: %d", code, len(failures.GetByCode(code))))
		}
	}

	return fmt.Sprintf("%s (%s)", strings.Join(parts, ", "), strings.Join(counts, ", "))
}

func serve(ctx context.Context, cfg *cli.Config, diagnostics *utils.DiagnosticSystem) int {
	engine, err := signature.NewEngine(cfg.Engine)
	if err != nil {
		diagnostics.Error("%v", err)
		return 1
	}

	srv := server.NewServer(cfg.Server, engine, diagnostics)
	diagnostics.Info("Serving on %s (engine %s)", cfg.Server.Addr, cfg.Engine)
	if err := srv.Start(ctx); err != nil {
		diagnostics.Error("%v", err)
		return 1
	}
	return 0
}

func printSuggestions(w io.Writer, err error) {
	var coded errors.CodedError
	if !stderrors.As(err, &coded) {
		return
	}
	for _, s := range coded.Suggestions() {
		fmt.Fprintf(w, "  hint: %s\n", s)
	}
}
