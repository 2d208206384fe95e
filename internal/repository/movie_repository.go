package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/campus-cinema/internal/model"
)

// MovieRepo provides methods to work with movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

const movieCols = `id, title, genre, duration_min, rating, created_at, updated_at`

func scanMovie(row interface{ Scan(...any) error }, m *model.Movie) error {
	var rating sql.NullString
	if err := row.Scan(&m.ID, &m.Title, &m.Genre, &m.DurationMin, &rating, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return err
	}
	if rating.Valid {
		v := rating.String
		m.Rating = &v
	}
	return nil
}

// Create inserts a movie and populates its generated ID and timestamps.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (title, genre, duration_min, rating) VALUES (?, ?, ?, ?)`
	var rating any
	if m.Rating != nil {
		rating = *m.Rating
	}
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Genre, m.DurationMin, rating)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	const sel = `SELECT ` + movieCols + ` FROM movies WHERE id = ?`
	return scanMovie(r.db.QueryRowContext(ctx, sel, m.ID), m)
}

// GetByID retrieves a movie by primary key.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT ` + movieCols + ` FROM movies WHERE id = ?`
	var m model.Movie
	if err := scanMovie(r.db.QueryRowContext(ctx, q, id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Update rewrites a movie's attributes. Returns ErrMovieNotFound when the
// row does not exist.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies
	           SET title = ?, genre = ?, duration_min = ?, rating = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	var rating any
	if m.Rating != nil {
		rating = *m.Rating
	}
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Genre, m.DurationMin, rating, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "absent" from "no change": re-read the row.
		if _, err := r.GetByID(ctx, m.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a movie. Returns ErrMovieNotFound when nothing was deleted.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// List returns all movies ordered by title.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	return r.listWhere(ctx, ``)
}

// ListByGenre returns movies matching the given genre, ordered by title.
func (r *MovieRepo) ListByGenre(ctx context.Context, genre string) ([]model.Movie, error) {
	return r.listWhere(ctx, `WHERE genre = ?`, genre)
}

func (r *MovieRepo) listWhere(ctx context.Context, where string, args ...any) ([]model.Movie, error) {
	q := `SELECT ` + movieCols + ` FROM movies ` + where + ` ORDER BY title`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Movie
	for rows.Next() {
		var m model.Movie
		if err := scanMovie(rows, &m); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
