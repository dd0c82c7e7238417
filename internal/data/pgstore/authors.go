// internal/data/pgstore/authors.go
package pgstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aoideee/locallibrary/internal/data"
)

// AuthorModel wraps a *sql.DB connection pool for the authors table.
type AuthorModel struct {
	DB *sql.DB
}

func (m AuthorModel) Insert(ctx context.Context, author *data.Author) error {
	query := `
		INSERT INTO authors (id, first_name, family_name, date_of_birth, date_of_death)
		VALUES ($1, $2, $3, $4, $5)`

	if author.ID == "" {
		author.ID = data.NewID()
	}

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	args := []any{author.ID, author.FirstName, author.FamilyName, author.DateOfBirth, author.DateOfDeath}
	_, err := m.DB.ExecContext(ctx, query, args...)
	return err
}

func (m AuthorModel) Get(ctx context.Context, id string) (*data.Author, error) {
	if !data.ValidID(id) {
		return nil, data.ErrRecordNotFound
	}

	query := `
		SELECT id, first_name, family_name, date_of_birth, date_of_death
		FROM authors
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	var author data.Author
	err := m.DB.QueryRowContext(ctx, query, id).Scan(
		&author.ID,
		&author.FirstName,
		&author.FamilyName,
		&author.DateOfBirth,
		&author.DateOfDeath,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, data.ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &author, nil
}

func (m AuthorModel) GetAll(ctx context.Context) ([]*data.Author, error) {
	query := `
		SELECT id, first_name, family_name, date_of_birth, date_of_death
		FROM authors
		ORDER BY family_name ASC, id ASC`

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := []*data.Author{}
	for rows.Next() {
		var author data.Author
		err := rows.Scan(&author.ID, &author.FirstName, &author.FamilyName, &author.DateOfBirth, &author.DateOfDeath)
		if err != nil {
			return nil, err
		}
		authors = append(authors, &author)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return authors, nil
}

func (m AuthorModel) Update(ctx context.Context, author *data.Author) error {
	if !data.ValidID(author.ID) {
		return data.ErrRecordNotFound
	}

	query := `
		UPDATE authors
		SET first_name = $1, family_name = $2, date_of_birth = $3, date_of_death = $4
		WHERE id = $5`

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	args := []any{author.FirstName, author.FamilyName, author.DateOfBirth, author.DateOfDeath, author.ID}
	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

func (m AuthorModel) Delete(ctx context.Context, id string) error {
	if !data.ValidID(id) {
		return data.ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

func (m AuthorModel) Count(ctx context.Context) (int, error) {
	return count(ctx, m.DB, `SELECT count(*) FROM authors`)
}
