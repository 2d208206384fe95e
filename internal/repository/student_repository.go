package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/campus-cinema/internal/model"
)

// StudentRepo provides methods to work with student accounts.
type StudentRepo struct {
	db *sql.DB
}

// NewStudentRepo constructs a StudentRepo with the given DB handle.
func NewStudentRepo(db *sql.DB) *StudentRepo {
	return &StudentRepo{db: db}
}

const studentCols = `id, student_no, full_name, email, password_hash, role, created_at, updated_at`

func scanStudent(row interface{ Scan(...any) error }, s *model.Student) error {
	return row.Scan(&s.ID, &s.StudentNo, &s.FullName, &s.Email, &s.PasswordHash, &s.Role, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a student record. On success the generated ID and DB
// default timestamps are populated. A uniqueness violation on email or
// student number is reported as ErrDuplicate.
func (r *StudentRepo) Create(ctx context.Context, s *model.Student) error {
	const q = `INSERT INTO students (student_no, full_name, email, password_hash, role)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.StudentNo, s.FullName, s.Email, s.PasswordHash, s.Role)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT ` + studentCols + ` FROM students WHERE id = ?`
	return scanStudent(r.db.QueryRowContext(ctx, sel, s.ID), s)
}

// GetByID retrieves a student by primary key.
func (r *StudentRepo) GetByID(ctx context.Context, id uint64) (*model.Student, error) {
	const q = `SELECT ` + studentCols + ` FROM students WHERE id = ?`
	var s model.Student
	if err := scanStudent(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByEmail retrieves a student by email for login.
func (r *StudentRepo) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	const q = `SELECT ` + studentCols + ` FROM students WHERE email = ?`
	var s model.Student
	if err := scanStudent(r.db.QueryRowContext(ctx, q, email), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns all students ordered by id (admin view and cache warm-up).
func (r *StudentRepo) List(ctx context.Context) ([]model.Student, error) {
	const q = `SELECT ` + studentCols + ` FROM students ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Student
	for rows.Next() {
		var s model.Student
		if err := scanStudent(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// isDuplicateKey detects MySQL error 1062 without importing the driver's
// error type into every call site.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Error 1062")
}
