package app

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gig-marketplace-api/internal/config"
	"gig-marketplace-api/internal/controller"
	"gig-marketplace-api/internal/events"
	"gig-marketplace-api/internal/repo"
	"gig-marketplace-api/internal/service"
	"gig-marketplace-api/pkg/http_server"
	"gig-marketplace-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/labstack/echo"
)

func runMigrations(postgresDB *postgres.Postgres, databaseName string) {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		log.Fatal(err)
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", databaseName, driver)
	if err != nil {
		log.Fatal(err)
	}

	if err := migrations.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("no change made by migration scripts")
		} else {
			log.Fatal(err)
		}
	}
}

func newRepositories(cfg *config.Config) (*repo.Repositories, func()) {
	if cfg.PostgresConn == "" {
		log.Println("No database configured, using in-memory store...")

		return repo.NewMemoryRepositories(), func() {}
	}

	log.Println("Connecting database...")
	postgresDB, err := postgres.NewDB(cfg.PostgresConn)
	if err != nil {
		log.Fatal("Error occurred while connecting to db: ", err)
	}

	log.Println("Running migrations...")
	runMigrations(postgresDB, os.Getenv("POSTGRES_DATABASE"))

	return repo.NewRepositories(postgresDB), func() { postgresDB.Close() }
}

func newPublisher(cfg *config.Config) events.Publisher {
	if cfg.AmqpUrl == "" {
		return events.NopPublisher{}
	}

	log.Println("Connecting message broker...")
	publisher, err := events.NewAMQPPublisher(cfg.AmqpUrl)
	if err != nil {
		log.Println("Broker unavailable, events disabled: ", err)

		return events.NopPublisher{}
	}

	return publisher
}

func Run() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("Skipping .env: ", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	repositories, closeRepositories := newRepositories(cfg)
	defer closeRepositories()

	publisher := newPublisher(cfg)
	defer publisher.Close()

	services := service.NewServices(repositories, publisher)
	handler := echo.New()

	log.Println("Setup routes...")
	controller.SetupRoutesHandlers(handler, services)

	log.Println("Starting server...")
	httpServer := http_server.New(handler, cfg.ServerAddress)

	log.Println("Ready to process requests...")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Println("Got signal: " + s.String())
	case err = <-httpServer.Notify():
		log.Fatal("Notify error: ", err)
	}

	log.Println("Shutting down...")
	err = httpServer.Shutdown()
	if err != nil {
		log.Fatal("Shutdown error: ", err)
	} else {
		log.Println("Successful shutdown")
	}
}
