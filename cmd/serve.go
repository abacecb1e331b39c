package cmd

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/aqlanhadi/stmtcsv/api"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Starts the HTTP API server that accepts statement text exports on
POST /convert and returns CSV, or the statement summary as JSON with
summary=true.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger(zerolog.InfoLevel)

		cfg := api.DefaultConfig()
		if servePort != "" {
			cfg.Port = ":" + servePort
		}
		// formats and years from a config file become request defaults
		if v := viper.GetString("format"); v != "" {
			cfg.Defaults.Format = v
		}
		if v := viper.GetString("year"); v != "" {
			cfg.Defaults.Year = v
		}
		cfg.Defaults.Encoding = viper.GetString("encoding")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := api.New(cfg, log)
		if err := server.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "8080", "Port to run the API server on")
}
