// internal/data/pgstore/genres.go
package pgstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aoideee/locallibrary/internal/data"
)

// GenreModel wraps a *sql.DB connection pool for the genres table.
type GenreModel struct {
	DB *sql.DB
}

func (m GenreModel) Insert(ctx context.Context, genre *data.Genre) error {
	if genre.ID == "" {
		genre.ID = data.NewID()
	}

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	_, err := m.DB.ExecContext(ctx, `INSERT INTO genres (id, name) VALUES ($1, $2)`, genre.ID, genre.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return data.ErrDuplicateGenre
		}
		return err
	}
	return nil
}

func (m GenreModel) Get(ctx context.Context, id string) (*data.Genre, error) {
	if !data.ValidID(id) {
		return nil, data.ErrRecordNotFound
	}
	return m.getOne(ctx, `SELECT id, name FROM genres WHERE id = $1`, id)
}

func (m GenreModel) GetByName(ctx context.Context, name string) (*data.Genre, error) {
	return m.getOne(ctx, `SELECT id, name FROM genres WHERE name = $1`, name)
}

func (m GenreModel) getOne(ctx context.Context, query string, arg any) (*data.Genre, error) {
	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	var genre data.Genre
	err := m.DB.QueryRowContext(ctx, query, arg).Scan(&genre.ID, &genre.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, data.ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &genre, nil
}

func (m GenreModel) GetAll(ctx context.Context) ([]*data.Genre, error) {
	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, `SELECT id, name FROM genres ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGenres(rows)
}

func (m GenreModel) Update(ctx context.Context, genre *data.Genre) error {
	if !data.ValidID(genre.ID) {
		return data.ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, `UPDATE genres SET name = $1 WHERE id = $2`, genre.Name, genre.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return data.ErrDuplicateGenre
		}
		return err
	}
	return checkAffected(result)
}

func (m GenreModel) Delete(ctx context.Context, id string) error {
	if !data.ValidID(id) {
		return data.ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

func (m GenreModel) Count(ctx context.Context) (int, error) {
	return count(ctx, m.DB, `SELECT count(*) FROM genres`)
}

func scanGenres(rows *sql.Rows) ([]*data.Genre, error) {
	genres := []*data.Genre{}
	for rows.Next() {
		var genre data.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, err
		}
		genres = append(genres, &genre)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return genres, nil
}
