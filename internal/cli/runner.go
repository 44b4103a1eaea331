package cli

import (
	"bufio"
	"context"
	stderrors "errors"
	"io"
	"os"
	"strings"

	"github.com/Sunkar2710/sigkit/internal/errors"
	"github.com/Sunkar2710/sigkit/internal/signature"
	"github.com/Sunkar2710/sigkit/internal/splitter"
	"github.com/Sunkar2710/sigkit/internal/utils"
)

// StdinInput names standard input in the input list
const StdinInput = "-"

const maxLineSize = 1024 * 1024

// Summary counts what a run processed
type Summary struct {
	InputsRead     int
	InputsFailed   int
	LinesProcessed int
	Succeeded      int
	Failed         int
}

// Stats returns the summary in the shape DiagnosticSystem.Summary expects
func (s *Summary) Stats() map[string]interface{} {
	return map[string]interface{}{
		"Inputs read":     s.InputsRead,
		"Inputs failed":   s.InputsFailed,
		"Lines processed": s.LinesProcessed,
		"Lines succeeded": s.Succeeded,
		"Lines failed":    s.Failed,
	}
}

// Runner processes input files line by line in parse or split mode
type Runner struct {
	cfg         *Config
	engine      signature.Engine
	delimiters  splitter.DelimiterSet
	encoder     RecordEncoder
	stdin       io.Reader
	diagnostics *utils.DiagnosticSystem
	reporter    *DiagnosticReporter
}

// NewRunner validates cfg and builds the engine, delimiter set and encoder
func NewRunner(cfg *Config, out io.Writer, diagnostics *utils.DiagnosticSystem) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine, err := signature.NewEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}

	encoder, err := NewRecordEncoder(cfg.Format, out)
	if err != nil {
		return nil, errors.NewConfigurationError("format", cfg.Format).WithCause(err)
	}

	runner := &Runner{
		cfg:         cfg,
		engine:      engine,
		delimiters:  splitter.NewDelimiterSet(cfg.Delimiters...),
		encoder:     encoder,
		stdin:       os.Stdin,
		diagnostics: diagnostics,
	}
	if cfg.Verbose {
		runner.reporter = NewDiagnosticReporter(diagnostics.ErrorOutput(), diagnostics.UsesColors())
	}
	return runner, nil
}

// WithStdin replaces the reader used for the "-" input
func (r *Runner) WithStdin(in io.Reader) *Runner {
	r.stdin = in
	return r
}

// Run processes every input in order. Without inputs it reads stdin.
// Line failures are collected into an *errors.MultipleErrors; with FailFast the first one is returned alone.
func (r *Runner) Run(ctx context.Context, inputs []string) (*Summary, error) {
	if len(inputs) == 0 {
		inputs = []string{StdinInput}
	}

	summary := &Summary{}
	failures := errors.NewMultipleErrors()

	r.diagnostics.Verbose("Mode: %s, engine: %s, format: %s", r.cfg.Mode, r.cfg.Engine, r.cfg.Format)
	if r.cfg.Mode == ModeSplit {
		r.diagnostics.Debug("Delimiter runes: %q", r.delimiters.String())
	}

	runErr := r.processAll(ctx, inputs, summary, failures)
	if err := r.encoder.Close(); err != nil && runErr == nil {
		runErr = errors.WrapWithOperation("flush", "output", err)
	}
	if runErr != nil {
		return summary, runErr
	}

	return summary, failures.ErrOrNil()
}

func (r *Runner) processAll(ctx context.Context, inputs []string, summary *Summary, failures *errors.MultipleErrors) error {
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := r.processInput(ctx, input, summary, failures)
		if err == nil {
			continue
		}

		// only unreadable inputs are survivable; line failures here come from fail-fast
		var coded errors.CodedError
		if !stderrors.As(err, &coded) || coded.ErrorCode() != errors.FileSystemErrorCode {
			return err
		}
		summary.InputsFailed++
		r.diagnostics.Error("%v", err)
		if r.cfg.FailFast {
			return err
		}
		failures.Add(coded)
	}
	return nil
}

func (r *Runner) processInput(ctx context.Context, input string, summary *Summary, failures *errors.MultipleErrors) error {
	reader, name, closeFn, err := r.open(input)
	if err != nil {
		return err
	}
	defer closeFn()

	summary.InputsRead++
	r.diagnostics.Verbose("Reading %s", name)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Text()
		if r.skip(line) {
			continue
		}

		summary.LinesProcessed++
		record, err := r.processLine(name, lineNo, line)
		if err != nil {
			summary.Failed++
			coded := locate(err, name, lineNo)
			r.report(coded, line)
			if r.cfg.FailFast {
				return coded
			}
			failures.Add(coded)
			continue
		}

		summary.Succeeded++
		if err := r.encoder.Encode(record); err != nil {
			return errors.WrapWithOperation("write", "record", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.WrapFileSystemError("read", name, err)
	}
	return nil
}

func (r *Runner) open(input string) (io.Reader, string, func(), error) {
	if input == StdinInput {
		return r.stdin, StdinInput, func() {}, nil
	}

	f, err := os.Open(input)
	if err != nil {
		return nil, input, nil, errors.WrapFileSystemError("open", input, err)
	}
	return f, input, func() { f.Close() }, nil
}

// report prints a line failure, in full when verbose
func (r *Runner) report(err errors.CodedError, line string) {
	if r.reporter != nil {
		r.reporter.ReportError(err, line)
		return
	}
	r.diagnostics.Error("%v", err)
}

// skip drops empty lines in split mode, and blank and comment lines in parse mode.
// Whitespace is data when splitting on other delimiters.
func (r *Runner) skip(line string) bool {
	if r.cfg.Mode == ModeSplit {
		return line == ""
	}
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//")
}

func (r *Runner) processLine(name string, lineNo int, line string) (*Record, error) {
	record := &Record{Source: name, Line: lineNo}

	if r.cfg.Mode == ModeSplit {
		record.Tokens = r.delimiters.Split(line)
		return record, nil
	}

	sig, err := r.engine.Parse(line)
	if err != nil {
		return nil, err
	}
	record.Signature = sig
	return record, nil
}

// IsReported reports whether Run already printed err through its diagnostics
func IsReported(err error) bool {
	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		return true
	}
	if stderrors.Is(err, signature.ErrFieldMissing) || stderrors.Is(err, signature.ErrSyntax) {
		return true
	}
	var coded errors.CodedError
	return stderrors.As(err, &coded) && coded.ErrorCode() == errors.FileSystemErrorCode
}

// locate stamps file and line onto a parse error, keeping its column
func locate(err error, name string, lineNo int) errors.CodedError {
	var coded errors.CodedError
	if !stderrors.As(err, &coded) {
		return errors.Wrap(errors.UnknownErrorCode, "failed to process line", err).
			WithLocation(errors.SourceLocation{File: name, Line: lineNo})
	}

	loc := coded.Location()
	loc.File, loc.Line = name, lineNo
	if located, ok := coded.(interface {
		WithLocation(errors.SourceLocation) *errors.BaseError
	}); ok {
		located.WithLocation(loc)
	}
	return coded
}
