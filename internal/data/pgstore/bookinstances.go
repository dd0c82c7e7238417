// internal/data/pgstore/bookinstances.go
package pgstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/aoideee/locallibrary/internal/data"
)

// BookInstanceModel wraps a *sql.DB connection pool for the book_instances table.
type BookInstanceModel struct {
	DB *sql.DB
}

const instanceColumns = `
	bi.id, bi.book_id, bi.imprint, bi.status, bi.due_back,
	b.id, b.title, b.author_id, b.summary, b.isbn, b.genre_ids`

func (m BookInstanceModel) Insert(ctx context.Context, instance *data.BookInstance) error {
	query := `
		INSERT INTO book_instances (id, book_id, imprint, status, due_back)
		VALUES ($1, $2, $3, $4, $5)`

	if instance.ID == "" {
		instance.ID = data.NewID()
	}

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	args := []any{instance.ID, instance.BookID, instance.Imprint, string(instance.Status), instance.DueBack}
	_, err := m.DB.ExecContext(ctx, query, args...)
	return err
}

func (m BookInstanceModel) Get(ctx context.Context, id string) (*data.BookInstance, error) {
	if !data.ValidID(id) {
		return nil, data.ErrRecordNotFound
	}

	query := `
		SELECT` + instanceColumns + `
		FROM book_instances bi
		JOIN books b ON b.id = bi.book_id
		WHERE bi.id = $1`

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	instance, err := scanInstance(m.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, data.ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return instance, nil
}

func (m BookInstanceModel) GetAll(ctx context.Context) ([]*data.BookInstance, error) {
	query := `
		SELECT` + instanceColumns + `
		FROM book_instances bi
		JOIN books b ON b.id = bi.book_id
		ORDER BY b.title ASC, bi.id ASC`

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instances := []*data.BookInstance{}
	for rows.Next() {
		instance, err := scanInstance(rows)
		if err != nil {
			return nil, err
		}
		instances = append(instances, instance)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return instances, nil
}

func (m BookInstanceModel) GetByBook(ctx context.Context, bookID string) ([]*data.BookInstance, error) {
	instances := []*data.BookInstance{}
	if !data.ValidID(bookID) {
		return instances, nil
	}

	query := `
		SELECT id, book_id, imprint, status, due_back
		FROM book_instances
		WHERE book_id = $1
		ORDER BY imprint ASC, id ASC`

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			instance data.BookInstance
			status   string
		)
		err := rows.Scan(&instance.ID, &instance.BookID, &instance.Imprint, &status, &instance.DueBack)
		if err != nil {
			return nil, err
		}
		instance.Status = data.Status(status)
		instances = append(instances, &instance)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return instances, nil
}

func (m BookInstanceModel) Update(ctx context.Context, instance *data.BookInstance) error {
	if !data.ValidID(instance.ID) {
		return data.ErrRecordNotFound
	}

	query := `
		UPDATE book_instances
		SET book_id = $1, imprint = $2, status = $3, due_back = $4
		WHERE id = $5`

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	args := []any{instance.BookID, instance.Imprint, string(instance.Status), instance.DueBack, instance.ID}
	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

func (m BookInstanceModel) Delete(ctx context.Context, id string) error {
	if !data.ValidID(id) {
		return data.ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, `DELETE FROM book_instances WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

func (m BookInstanceModel) Count(ctx context.Context) (int, error) {
	return count(ctx, m.DB, `SELECT count(*) FROM book_instances`)
}

func (m BookInstanceModel) CountByStatus(ctx context.Context, status data.Status) (int, error) {
	return count(ctx, m.DB, `SELECT count(*) FROM book_instances WHERE status = $1`, string(status))
}

func scanInstance(row rowScanner) (*data.BookInstance, error) {
	var (
		instance data.BookInstance
		book     data.Book
		status   string
	)
	err := row.Scan(
		&instance.ID,
		&instance.BookID,
		&instance.Imprint,
		&status,
		&instance.DueBack,
		&book.ID,
		&book.Title,
		&book.AuthorID,
		&book.Summary,
		&book.ISBN,
		pq.Array(&book.GenreIDs),
	)
	if err != nil {
		return nil, err
	}
	instance.Status = data.Status(status)
	instance.Book = &book
	return &instance, nil
}
