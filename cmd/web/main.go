// Package main is the entry point for the Local Library catalog server.
// It wires together configuration, the catalog store, and the HTTP router.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/form/v4"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.

	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/data/memstore"
	"github.com/aoideee/locallibrary/internal/data/mongostore"
	"github.com/aoideee/locallibrary/internal/data/pgstore"
)

// appVersion is the current version of the server, shown in logs and the healthcheck.
const appVersion = "1.0.0"

// Supported values for the db-driver setting.
const (
	driverMongo    = "mongo"
	driverPostgres = "postgres"
	driverMemory   = "memory"
)

// serverConfig holds all the values that can be tweaked at startup via flags,
// environment variables or the optional config file.
type serverConfig struct {
	port        int    // TCP port the HTTP server listens on (default 4000)
	environment string // Runtime environment: development, staging, or production
	db          struct {
		driver       string        // mongo, postgres or memory
		dsn          string        // PostgreSQL Data Source Name
		maxOpenConns int           // PostgreSQL pool size
		maxIdleConns int           // PostgreSQL idle connections kept
		maxIdleTime  time.Duration // PostgreSQL idle connection lifetime
	}
	mongo struct {
		uri      string // MongoDB connection string
		database string // Database holding the catalog collections
	}
	limiter struct {
		enabled bool
		rps     float64
		burst   int
	}
}

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config        serverConfig
	logger        *slog.Logger
	models        data.Models
	templateCache map[string]*template.Template
	formDecoder   *form.Decoder
}

func main() {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	err := newRootCommand(logger).Execute()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// openModels connects to the configured backend. The returned close function
// releases the connection and must be called once the models are no longer used.
func openModels(ctx context.Context, settings serverConfig) (data.Models, func() error, error) {
	switch settings.db.driver {
	case driverPostgres:
		db, err := openDB(settings)
		if err != nil {
			return data.Models{}, nil, err
		}
		return pgstore.NewModels(db), db.Close, nil

	case driverMongo:
		client, err := mongostore.Open(ctx, settings.mongo.uri)
		if err != nil {
			return data.Models{}, nil, err
		}
		closeFn := func() error { return client.Disconnect(context.Background()) }

		// Idempotent. The unique genre-name index must exist before serving.
		db := client.Database(settings.mongo.database)
		err = mongostore.EnsureIndexes(ctx, db)
		if err != nil {
			closeFn()
			return data.Models{}, nil, err
		}
		return mongostore.NewModels(db), closeFn, nil

	case driverMemory:
		return memstore.NewModels(), func() error { return nil }, nil

	default:
		return data.Models{}, nil, fmt.Errorf("unknown db driver %q", settings.db.driver)
	}
}

// openDB opens a PostgreSQL connection pool using the DSN stored in settings,
// then pings the database with a 5-second timeout to confirm it is reachable.
func openDB(settings serverConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", settings.db.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(settings.db.maxOpenConns)
	db.SetMaxIdleConns(settings.db.maxIdleConns)
	db.SetConnMaxIdleTime(settings.db.maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
