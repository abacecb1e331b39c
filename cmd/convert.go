package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aqlanhadi/stmtcsv/extractor"
	"github.com/aqlanhadi/stmtcsv/logger"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Converts statement text export(s) to CSV",
	Long: `Converts a statement text export, or every .txt file in a directory,
to CSV using the selected statement format. Without --output the CSV is
written next to the input (statement.txt becomes statement.new.csv).`,
	Args:    cobra.NoArgs,
	PreRunE: bindFlags,
	RunE:    runConvert,
}

var (
	doneColor  = color.New(color.FgGreen)
	totalColor = color.New(color.FgCyan)
	warnColor  = color.New(color.FgYellow, color.Bold)
)

func addConvertFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("file", "f", "", "statement text file, or a directory of .txt files")
	f.StringP("output", "o", "", `output CSV path ("-" for stdout; a directory when --file is one)`)
	f.StringP("format", "t", "generic", "statement format (generic, bank, or any configured format)")
	f.StringP("year", "y", strconv.Itoa(time.Now().Year()), "reference year for day-month dates")
	f.BoolP("reverse", "r", false, "write transactions in reverse order")
	f.BoolP("legacy", "l", false, "use the format's legacy layout")
	f.BoolP("debug", "d", false, "log how every line is classified")
	f.String("layout", "", "override the output layout (six_column or four_column)")
	f.String("encoding", "utf-8", "input text encoding, e.g. windows-1252")
}

func optionsFromConfig() extractor.Options {
	return extractor.Options{
		Format:   viper.GetString("format"),
		Year:     viper.GetString("year"),
		Reverse:  viper.GetBool("reverse"),
		Legacy:   viper.GetBool("legacy"),
		Layout:   viper.GetString("layout"),
		Encoding: viper.GetString("encoding"),
		Output:   viper.GetString("output"),
	}
}

func runConvert(cmd *cobra.Command, _ []string) error {
	target := viper.GetString("file")
	if target == "" {
		return errors.New("no input given, use --file or pass a file name")
	}

	log := newLogger(zerolog.WarnLevel)
	ctx := logger.WithContext(cmd.Context(), log)

	results, err := extractor.ExecuteAgainstPath(ctx, target, optionsFromConfig())
	for _, r := range results {
		printResult(os.Stderr, r)
	}
	return err
}

// printResult reports one converted file. The CLI passes stderr so that
// "--output -" leaves stdout to the CSV.
func printResult(w io.Writer, r extractor.Result) {
	s := r.Statement
	doneColor.Fprintf(w, "Converted %s to %s: ", filepath.Base(r.Input), r.Output)
	totalColor.Fprintf(w, "%d transactions, debits %s, credits %s, nett %s",
		len(s.Transactions), s.TotalDebit.StringFixed(2), s.TotalCredit.StringFixed(2), s.Nett.StringFixed(2))
	if s.ClosingBalance != nil {
		totalColor.Fprintf(w, ", closing %s", *s.ClosingBalance)
	}
	fmt.Fprintln(w)
	if s.Unparsed > 0 {
		warnColor.Fprintf(w, "Warning: %d amounts could not be read and were left out of the totals\n", s.Unparsed)
	}
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addConvertFlags(convertCmd)
}
