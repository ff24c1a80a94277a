package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"depot/cmd"
	httpin "depot/internal/adapters/in/http"
	"depot/internal/adapters/out/kafka"
	"depot/internal/adapters/out/postgres/migrations"
	"depot/internal/core/ports"
	"depot/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "depot",
		Usage: "school-supply depot: delivery orders, stock and schools",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Value:   ".env",
				Usage:   "dotenv file read before the environment; ignored when missing",
				EnvVars: []string{"ENV_FILE"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API and the scheduled jobs",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "migrate", Usage: "apply pending migrations before serving"},
		},
		Action: func(c *cli.Context) error {
			configs, zapLogger, err := setup(c)
			if err != nil {
				return err
			}
			defer func() { _ = zapLogger.Sync() }()

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if c.Bool("migrate") {
				if err := migrations.Up(ctx, configs.DSN()); err != nil {
					return err
				}
			}
			return serve(ctx, configs, zapLogger)
		},
	}
}

func migrateCommand() *cli.Command {
	withDSN := func(fn func(ctx context.Context, dsn string, l *zap.Logger) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			configs, zapLogger, err := setup(c)
			if err != nil {
				return err
			}
			defer func() { _ = zapLogger.Sync() }()
			return fn(c.Context, configs.DSN(), zapLogger)
		}
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "manage the database schema",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply every pending migration",
				Action: withDSN(func(ctx context.Context, dsn string, _ *zap.Logger) error {
					return migrations.Up(ctx, dsn)
				}),
			},
			{
				Name:  "down",
				Usage: "roll back the latest migration",
				Action: withDSN(func(ctx context.Context, dsn string, _ *zap.Logger) error {
					return migrations.Down(ctx, dsn)
				}),
			},
			{
				Name:  "version",
				Usage: "print the current schema version",
				Action: withDSN(func(ctx context.Context, dsn string, l *zap.Logger) error {
					version, err := migrations.Version(ctx, dsn)
					if err != nil {
						return err
					}
					l.Info("Schema version", zap.Int64("version", version))
					return nil
				}),
			},
		},
	}
}

func setup(c *cli.Context) (cmd.Config, *zap.Logger, error) {
	configs, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return cmd.Config{}, nil, err
	}
	zapLogger, err := logger.New(configs.AppEnv)
	if err != nil {
		return cmd.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	migrations.SetLogger(zapLogger)
	return configs, zapLogger, nil
}

func serve(ctx context.Context, configs cmd.Config, zapLogger *zap.Logger) error {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	var publisher ports.EventPublisher
	if len(configs.KafkaBrokers) > 0 {
		producer, err := kafka.NewSyncProducer(configs.KafkaBrokers)
		if err != nil {
			return err
		}
		orderEvents := kafka.NewOrderEventPublisher(producer, configs.KafkaOrderChangedTopic, zapLogger)
		defer func() {
			if err := orderEvents.Close(); err != nil {
				zapLogger.Warn("Closing kafka producer failed", zap.Error(err))
			}
		}()
		publisher = orderEvents
	} else {
		zapLogger.Info("KAFKA_BROKERS is empty, order events are not published")
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, publisher, zapLogger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, configs.HTTPPort, zapLogger)
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, zapLogger *zap.Logger) error {
	e, err := httpin.NewRouter(ctx, httpin.NewServer(app.CreateHTTPHandlers()), logger.Component(zapLogger, "http"))
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		zapLogger.Info("HTTP server listening", zap.String("port", port))
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	zapLogger.Info("Shutting down HTTP server")
	return e.Shutdown(shutdownCtx)
}
