package extractor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aqlanhadi/stmtcsv/extractor/assembler"
	"github.com/aqlanhadi/stmtcsv/extractor/common"
	"github.com/aqlanhadi/stmtcsv/extractor/output"
	"github.com/aqlanhadi/stmtcsv/logger"
)

// Options are the per-run settings shared by the CLI and the API.
type Options struct {
	Format   string
	Year     string
	Reverse  bool
	Legacy   bool
	Layout   string // overrides the format's own layout when set
	Encoding string
	Output   string
}

// Result describes one converted file.
type Result struct {
	Input     string
	Output    string
	Statement common.Statement
}

// ResolveFormat loads the format descriptor named in opts and applies the
// layout override.
func ResolveFormat(opts Options) (common.Format, error) {
	format, err := common.LoadFormat(opts.Format, opts.Legacy)
	if err != nil {
		return common.Format{}, err
	}
	if opts.Layout != "" {
		layout, err := common.ParseLayout(opts.Layout)
		if err != nil {
			return common.Format{}, err
		}
		format.Layout = layout
	}
	return format, nil
}

// ProcessReader decodes and assembles one statement export.
func ProcessReader(ctx context.Context, reader io.Reader, source string, opts Options) (common.Statement, common.Format, error) {
	format, err := ResolveFormat(opts)
	if err != nil {
		return common.Statement{}, common.Format{}, err
	}

	rows, err := common.ExtractRowsFromReader(reader, opts.Encoding)
	if err != nil {
		return common.Statement{}, format, err
	}
	return processRows(ctx, rows, source, format, opts)
}

// ProcessFile reads path and assembles it.
func ProcessFile(ctx context.Context, path string, opts Options) (common.Statement, common.Format, error) {
	format, err := ResolveFormat(opts)
	if err != nil {
		return common.Statement{}, common.Format{}, err
	}

	rows, err := common.ExtractRowsFromFile(path, opts.Encoding)
	if err != nil {
		return common.Statement{}, format, err
	}
	return processRows(ctx, rows, filepath.Base(path), format, opts)
}

func processRows(ctx context.Context, rows *[]string, source string, format common.Format, opts Options) (common.Statement, common.Format, error) {
	log := logger.FromContext(ctx)
	log.Info().Str("source", source).Str("format", format.Name).Int("lines", len(*rows)).Msg("scanning")

	txs, err := assembler.Assemble(rows, format, opts.Year, log)
	if err != nil {
		return common.Statement{}, format, fmt.Errorf("%s: %w", source, err)
	}

	statement := Summarize(source, format.Name, txs)
	log.Info().
		Str("source", source).
		Int("transactions", len(txs)).
		Str("total_debit", statement.TotalDebit.StringFixed(2)).
		Str("total_credit", statement.TotalCredit.StringFixed(2)).
		Str("nett", statement.Nett.StringFixed(2)).
		Msg("assembled")
	if statement.Unparsed > 0 {
		log.Warn().Str("source", source).Int("unparsed", statement.Unparsed).Msg("amounts left out of totals")
	}
	return statement, format, nil
}

// Convert turns one text export into a CSV file. Nothing is written unless
// the whole input assembles and renders.
func Convert(ctx context.Context, path string, opts Options) (Result, error) {
	statement, format, err := ProcessFile(ctx, path, opts)
	if err != nil {
		return Result{}, err
	}

	content, err := output.Render(statement.Transactions, format.Layout, opts.Reverse)
	if err != nil {
		return Result{}, err
	}

	target := opts.Output
	if target == "" {
		target = DefaultOutputPath(path)
	}
	if err := output.WriteFile(target, content); err != nil {
		return Result{}, err
	}

	log := logger.FromContext(ctx)
	log.Info().Str("output", target).Msg("written")
	return Result{Input: path, Output: target, Statement: statement}, nil
}

// ExecuteAgainstPath converts a single file, or every *.txt file directly
// inside a directory. For a directory, Output names the directory the CSV
// files go to; empty keeps them next to their inputs. The first failure
// stops the run.
func ExecuteAgainstPath(ctx context.Context, path string, opts Options) ([]Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	if !info.IsDir() {
		result, err := Convert(ctx, path, opts)
		if err != nil {
			return nil, err
		}
		return []Result{result}, nil
	}

	if opts.Output == output.Stdout {
		return nil, fmt.Errorf("%w: %s", common.ErrStdoutDirectory, path)
	}

	log := logger.FromContext(ctx)
	log.Info().Str("dir", path).Msg("scanning directory")

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	results := []Result{}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		input := filepath.Join(path, e.Name())

		fileOpts := opts
		fileOpts.Output = ""
		if opts.Output != "" {
			fileOpts.Output = filepath.Join(opts.Output, filepath.Base(DefaultOutputPath(input)))
		}

		result, err := Convert(ctx, input, fileOpts)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// DefaultOutputPath derives the CSV path for an input: statement.txt becomes
// statement.new.csv and anything else gets .new.csv appended.
func DefaultOutputPath(input string) string {
	if ext := filepath.Ext(input); strings.EqualFold(ext, ".txt") {
		input = strings.TrimSuffix(input, ext)
	}
	return input + ".new.csv"
}
