package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/fieldservice-availability/internal/config"
	"github.com/BruksfildServices01/fieldservice-availability/internal/infra/salesforce"
	"github.com/BruksfildServices01/fieldservice-availability/internal/infra/tokenstore"
	"github.com/BruksfildServices01/fieldservice-availability/internal/logger"
	"github.com/BruksfildServices01/fieldservice-availability/internal/timezone"
)

// app is what every subcommand runs against, built once in PersistentPreRunE.
type app struct {
	cfg        *config.Config
	log        *zap.Logger
	session    *salesforce.Session
	closeStore func() error
}

var (
	current *app
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "crmctl",
	Short:         "crmctl talks to the Salesforce field service API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		level := "warn"
		if verbose {
			level = "debug"
		}
		zl, err := logger.New("development", level)
		if err != nil {
			return err
		}

		store, closeStore, err := tokenstore.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		current = &app{
			cfg: cfg,
			log: zl,
			session: salesforce.NewSession(salesforce.Options{
				Config:   cfg.Salesforce,
				Store:    store,
				Location: timezone.Location(cfg.Timezone),
				Logger:   zl.Named("salesforce"),
			}),
			closeStore: closeStore,
		}
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run executes the selected command and then releases the app, also when
// the command failed (cobra skips post-run hooks on error).
func run(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cerr := closeApp(); err == nil {
		err = cerr
	}
	return err
}

// closeApp releases what PersistentPreRunE opened.
func closeApp() error {
	if current == nil {
		return nil
	}
	app := current
	current = nil

	_ = app.log.Sync()
	return app.closeStore()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log CRM requests")

	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(availabilityCmd)
	rootCmd.AddCommand(appointmentCmd)
}
