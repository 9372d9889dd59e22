package app

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"quotation-management-api/internal/controller"
	"quotation-management-api/internal/notify"
	"quotation-management-api/internal/repo"
	"quotation-management-api/internal/service"
	"quotation-management-api/pkg/config"
	"quotation-management-api/pkg/http_server"
	"quotation-management-api/pkg/logger"
	"quotation-management-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/labstack/echo"
)

func runMigrations(postgresDB *postgres.Postgres, cfg *config.Config) error {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: cfg.DB.Database})
	if err != nil {
		return err
	}

	migrations, err := migrate.NewWithDatabaseInstance(cfg.DB.MigrationsUrl, cfg.DB.Database, driver)
	if err != nil {
		return err
	}

	if err := migrations.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func Run() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("quotation-management-api", "info", "json")
		bootLog.Fatal().Err(err).Msg("loading config")
	}

	log := logger.New("quotation-management-api", cfg.App.LogLevel, cfg.App.LogFormat)

	log.Info().Msg("connecting database")
	postgresDB, err := postgres.NewDB(cfg.DB.Conn)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting database")
	}
	defer postgresDB.Close()

	log.Info().Msg("running migrations")
	if err := runMigrations(postgresDB, cfg); err != nil {
		log.Fatal().Err(err).Msg("running migrations")
	}

	repositories := repo.NewRepositories(postgresDB)
	publisher := notify.NewLogPublisher(log)
	services := service.NewServices(repositories, publisher, cfg.Quoting)
	handler := echo.New()

	log.Info().Msg("setup routes")
	controller.SetupRoutesHandlers(handler, services)

	log.Info().Str("address", cfg.App.Address).Msg("starting server")
	httpServer := http_server.New(handler, cfg.App.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info().Str("signal", s.String()).Msg("got signal")
	case err = <-httpServer.Notify():
		log.Error().Err(err).Msg("server notify")
	}

	log.Info().Msg("shutting down")
	if err = httpServer.Shutdown(); err != nil {
		log.Error().Err(err).Msg("shutdown")
	} else {
		log.Info().Msg("successful shutdown")
	}
}
