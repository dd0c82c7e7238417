// internal/data/pgstore/books.go
// Books are read joined with their author; genres come from a second query
// over the genre_ids array.
package pgstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/aoideee/locallibrary/internal/data"
)

// BookModel wraps a *sql.DB connection pool for the books table.
type BookModel struct {
	DB *sql.DB
}

// bookColumns selects a book joined with its author so both can be scanned by scanBook.
const bookColumns = `
	b.id, b.title, b.author_id, b.summary, b.isbn, b.genre_ids,
	a.id, a.first_name, a.family_name, a.date_of_birth, a.date_of_death`

func (m BookModel) Insert(ctx context.Context, book *data.Book) error {
	query := `
		INSERT INTO books (id, title, author_id, summary, isbn, genre_ids)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if book.ID == "" {
		book.ID = data.NewID()
	}

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	args := []any{book.ID, book.Title, book.AuthorID, book.Summary, book.ISBN, pq.Array(genreIDs(book))}
	_, err := m.DB.ExecContext(ctx, query, args...)
	return err
}

func (m BookModel) Get(ctx context.Context, id string) (*data.Book, error) {
	if !data.ValidID(id) {
		return nil, data.ErrRecordNotFound
	}

	query := `
		SELECT` + bookColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE b.id = $1`

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	book, err := scanBook(m.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, data.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	rows, err := m.DB.QueryContext(ctx, `SELECT id, name FROM genres WHERE id = ANY($1) ORDER BY name ASC`, pq.Array(book.GenreIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	book.Genres, err = scanGenres(rows)
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (m BookModel) GetAll(ctx context.Context) ([]*data.Book, error) {
	return m.list(ctx, `TRUE`)
}

func (m BookModel) GetByAuthor(ctx context.Context, authorID string) ([]*data.Book, error) {
	if !data.ValidID(authorID) {
		return []*data.Book{}, nil
	}
	return m.list(ctx, `b.author_id = $1`, authorID)
}

func (m BookModel) GetByGenre(ctx context.Context, genreID string) ([]*data.Book, error) {
	if !data.ValidID(genreID) {
		return []*data.Book{}, nil
	}
	return m.list(ctx, `$1 = ANY(b.genre_ids)`, genreID)
}

// list returns the books matching where, sorted by title with authors populated.
func (m BookModel) list(ctx context.Context, where string, args ...any) ([]*data.Book, error) {
	query := `
		SELECT` + bookColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE ` + where + `
		ORDER BY b.title ASC, b.id ASC`

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*data.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

func (m BookModel) Update(ctx context.Context, book *data.Book) error {
	if !data.ValidID(book.ID) {
		return data.ErrRecordNotFound
	}

	query := `
		UPDATE books
		SET title = $1, author_id = $2, summary = $3, isbn = $4, genre_ids = $5
		WHERE id = $6`

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	args := []any{book.Title, book.AuthorID, book.Summary, book.ISBN, pq.Array(genreIDs(book)), book.ID}
	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

func (m BookModel) Delete(ctx context.Context, id string) error {
	if !data.ValidID(id) {
		return data.ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

func (m BookModel) Count(ctx context.Context) (int, error) {
	return count(ctx, m.DB, `SELECT count(*) FROM books`)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*data.Book, error) {
	var (
		book   data.Book
		author data.Author
	)
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.AuthorID,
		&book.Summary,
		&book.ISBN,
		pq.Array(&book.GenreIDs),
		&author.ID,
		&author.FirstName,
		&author.FamilyName,
		&author.DateOfBirth,
		&author.DateOfDeath,
	)
	if err != nil {
		return nil, err
	}
	book.Author = &author
	return &book, nil
}

// genreIDs never hands a nil slice to the NOT NULL array column.
func genreIDs(book *data.Book) []string {
	if book.GenreIDs == nil {
		return []string{}
	}
	return book.GenreIDs
}
