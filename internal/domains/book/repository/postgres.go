package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartlib-backend/internal/domains/book/model"
)

const bookColumns = `
	id, title, author, isbn, description, genre, publication_year,
	total_copies, available_copies, cover_url, created_at, updated_at`

// postgresRepository implements RepositoryInterface
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanBook(row pgx.Row, b *model.Book) error {
	return row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.ISBN,
		&b.Description,
		&b.Genre,
		&b.PublicationYear,
		&b.TotalCopies,
		&b.AvailableCopies,
		&b.CoverURL,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			title, author, isbn, description, genre, publication_year,
			total_copies, available_copies, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		book.Title,
		book.Author,
		book.ISBN,
		book.Description,
		book.Genre,
		book.PublicationYear,
		book.TotalCopies,
		book.AvailableCopies,
		book.CreatedAt,
	).Scan(&book.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.ErrISBNTaken
		}
		return fmt.Errorf("failed to insert book: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `SELECT` + bookColumns + ` FROM books WHERE id = $1`

	var b model.Book
	if err := scanBook(r.pool.QueryRow(ctx, query, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return &b, nil
}

func (r *postgresRepository) List(ctx context.Context, offset, limit int) ([]model.Book, error) {
	query := `SELECT` + bookColumns + ` FROM books ORDER BY id OFFSET $1 LIMIT $2`

	rows, err := r.pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

func (r *postgresRepository) Search(ctx context.Context, query, genre string) ([]model.Book, error) {
	sql := `SELECT` + bookColumns + `
		FROM books
		WHERE (title ILIKE $1 OR author ILIKE $1 OR description ILIKE $1)`
	args := []interface{}{"%" + query + "%"}

	if genre != "" {
		sql += ` AND genre = $2`
		args = append(args, genre)
	}
	sql += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

func (r *postgresRepository) Update(ctx context.Context, book *model.Book, prevTotal, prevAvailable int) error {
	// Compare-and-swap on the copy counters: a lending operation committing
	// between the caller's read and this write makes the predicate miss, so
	// the ledger's decrement is never silently overwritten
	query := `
		UPDATE books SET
			title = $2,
			author = $3,
			isbn = $4,
			description = $5,
			genre = $6,
			publication_year = $7,
			total_copies = $8,
			available_copies = $9,
			updated_at = NOW()
		WHERE id = $1 AND total_copies = $10 AND available_copies = $11
	`

	tag, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.ISBN,
		book.Description,
		book.Genre,
		book.PublicationYear,
		book.TotalCopies,
		book.AvailableCopies,
		prevTotal,
		prevAvailable,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrISBNTaken
		}
		return fmt.Errorf("failed to update book: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, book.ID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check book existence: %w", err)
		}
		if exists {
			return model.ErrConcurrentUpdate
		}
		return model.ErrBookNotFound
	}

	return nil
}

func (r *postgresRepository) UpdateCoverURL(ctx context.Context, id int64, coverURL string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE books SET cover_url = $2, updated_at = NOW() WHERE id = $1`,
		id, coverURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update cover url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func collectBooks(rows pgx.Rows) ([]model.Book, error) {
	books := make([]model.Book, 0)
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}
