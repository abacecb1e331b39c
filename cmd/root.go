package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/aqlanhadi/stmtcsv/extractor/common"
	"github.com/aqlanhadi/stmtcsv/logger"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "stmtcsv [filename]",
		Short: "Convert bank statement text exports to CSV",
		Long: `stmtcsv turns the text of a bank statement (as extracted from its PDF)
into a CSV of transactions, one row per transaction.

Running it with a single file argument is the same as "stmtcsv convert -f <file>".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE:       bindFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				viper.Set("file", args[0])
				return runConvert(cmd, nil)
			}
			return cmd.Help()
		},
	}
)

var errColor = color.New(color.FgRed)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.stmtcsv.yaml or ~/.stmtcsv.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	addConvertFlags(rootCmd)
}

// bindFlags points the conversion keys at the running command's flags. Root
// and convert share the keys, so binding happens per invocation.
func bindFlags(cmd *cobra.Command, _ []string) error {
	return viper.BindPFlags(cmd.Flags())
}

// newLogger builds the logger for the current invocation. floor raises the
// minimum verbosity, e.g. for the server.
func newLogger(floor zerolog.Level) zerolog.Logger {
	level := logger.Level(verbose, viper.GetBool("debug"))
	if level > floor {
		level = floor
	}
	return logger.New(level)
}

// initConfig loads the embedded formats and then merges a user config file
// over them, so user files only need to name what they change or add.
func initConfig() {
	if err := common.ReadDefaultConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading embedded configuration: %v\n", err)
		os.Exit(1)
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in current directory and home directory
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".stmtcsv")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("STMTCSV")
	viper.AutomaticEnv()

	if err := viper.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}
