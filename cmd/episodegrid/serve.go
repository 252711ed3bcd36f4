package episodegrid

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soundprediction/episodegrid/pkg/server"
	"github.com/soundprediction/episodegrid/pkg/view"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the episodegrid HTTP server",
	Long: `Start the HTTP server. It serves the interactive page at / and a JSON API
under /api/v1.

The server starts listening immediately and shows a loading state until the
dataset has been fetched. A failed fetch is reported on the page and by
/ready; it is not retried.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server-specific flags
	serveCmd.Flags().String("host", "localhost", "Server host")
	serveCmd.Flags().Int("port", 8080, "Server port")
	serveCmd.Flags().String("mode", "release", "Server mode (debug, release, test)")

	// Telemetry flags
	serveCmd.Flags().String("telemetry-parquet-path", "", "Directory for parquet error telemetry")
	serveCmd.Flags().String("telemetry-db-path", "", "SQLite file for error telemetry")

	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.mode", serveCmd.Flags().Lookup("mode"))
	viper.BindPFlag("telemetry.parquet_path", serveCmd.Flags().Lookup("telemetry-parquet-path"))
	viper.BindPFlag("telemetry.db_path", serveCmd.Flags().Lookup("telemetry-db-path"))
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	controller := view.NewController(rt.logger)
	srv := server.New(rt.cfg, controller, rt.logger)
	srv.Setup()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Start()
	})

	// Load the dataset in the background; the page shows the loading state
	// until it resolves. A load failure leaves the server up.
	g.Go(func() error {
		client, err := rt.open(gctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			controller.Fail(err)
			return nil
		}
		controller.Attach(client)
		rt.logger.Info("Dataset ready", "stats", client.Stats())
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		rt.logger.Info("Server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
