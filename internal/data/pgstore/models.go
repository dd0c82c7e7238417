// Package pgstore implements the catalog stores on PostgreSQL. Documents map
// one-to-one onto rows; a book's genre references live in a uuid[] column.
package pgstore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"

	"github.com/lib/pq"

	"github.com/aoideee/locallibrary/internal/data"
)

//go:embed schema.sql
var schema string

// uniqueViolation is the SQLSTATE Postgres reports for a unique constraint breach.
const uniqueViolation = "23505"

// NewModels constructs stores wired up to the given database connection pool.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels(db *sql.DB) data.Models {
	return data.Models{
		Authors:       AuthorModel{DB: db},
		Books:         BookModel{DB: db},
		Genres:        GenreModel{DB: db},
		BookInstances: BookInstanceModel{DB: db},
	}
}

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// checkAffected maps a zero-row UPDATE/DELETE onto ErrRecordNotFound.
func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return data.ErrRecordNotFound
	}
	return nil
}

func count(ctx context.Context, db *sql.DB, query string, args ...any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	var n int
	err := db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}
