package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcel/internal/adapters/out/postgres"
	"parcel/internal/jobs"
	"parcel/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// app is the state shared by every subcommand once the root command has loaded the
// configuration.
type app struct {
	viper  *viper.Viper
	cfg    Config
	logger *zap.Logger
}

// NewRootCommand builds the parcel CLI. Flags take precedence over environment
// variables, which take precedence over an optional .env file in the working directory.
func NewRootCommand() *cobra.Command {
	a := &app{viper: viper.New()}

	root := &cobra.Command{
		Use:           "parcel",
		Short:         "Peer-to-peer parcel delivery marketplace",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = a.viper.BindPFlag("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		newServeCommand(a),
		newMigrateCommand(a),
		newUserCommand(a),
	)
	return root
}

func (a *app) load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	SetDefaults(a.viper)
	a.viper.AutomaticEnv()

	cfg, err := LoadConfig(a.viper)
	if err != nil {
		return err
	}

	l, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = l
	return nil
}

func newServeCommand(a *app) *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the outbox relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	serve.Flags().String("port", "", "HTTP port")
	_ = a.viper.BindPFlag("HTTP_PORT", serve.Flags().Lookup("port"))
	return serve
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	db, err := OpenDatabase(a.cfg)
	if err != nil {
		return err
	}
	a.logger.Info("database connected")

	storage, err := NewDocumentStorage(ctx, a.cfg)
	if err != nil {
		return err
	}

	publisher, err := NewEventPublisher(a.cfg)
	if err != nil {
		return err
	}

	root := NewCompositionRoot(a.cfg, db, storage, a.logger)

	var manager *jobs.JobManager
	if publisher != nil {
		defer publisher.Close()
		manager = root.CreateJobManager(publisher)
	} else {
		a.logger.Warn("KAFKA_HOST is empty, outbox relay disabled")
		manager = root.CreateJobManager(nil)
	}
	if err = manager.StartAll(); err != nil {
		return err
	}
	defer manager.StopAll()

	e := root.CreateHTTPServer().Echo()
	e.Server.ReadHeaderTimeout = 5 * time.Second

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(":" + a.cfg.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	a.logger.Info("http server started", zap.String("port", a.cfg.HTTPPort))

	select {
	case <-ctx.Done():
		a.logger.Info("received shutdown signal")
	case err = <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	a.logger.Info("server stopped gracefully")
	return nil
}

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := OpenDatabase(a.cfg)
			if err != nil {
				return err
			}
			if err = postgres.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			a.logger.Info("database migrated")
			return nil
		},
	}
}
