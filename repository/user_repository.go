package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"tecnoAcademiaAdmin/models"
)

// ErrDuplicateID is returned by Create when the requested identifier is taken.
var ErrDuplicateID = errors.New("user id already exists")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts u. A zero ID is assigned as one past the current maximum
// (1 for an empty table) in the same statement; a non-zero ID is kept as given.
func (r *UserRepository) Create(ctx context.Context, u models.User) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var (
		res sql.Result
		err error
	)
	if u.ID == 0 {
		res, err = r.db.ExecContext(ctx, `INSERT INTO users (id, name, email, role)
			SELECT COALESCE(MAX(id), 0) + 1, ?, ?, ? FROM users`, u.Name, u.Email, string(u.Role))
	} else {
		res, err = r.db.ExecContext(ctx, `INSERT INTO users (id, name, email, role) VALUES (?,?,?,?)`,
			u.ID, u.Name, u.Email, string(u.Role))
	}
	if err != nil {
		if isPrimaryKeyViolation(err) {
			return nil, ErrDuplicateID
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	u.ID = id
	return &u, nil
}

// GetByID returns nil, nil when no user has the given id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	var role string
	err := r.db.QueryRowContext(ctx, `SELECT id, name, email, role FROM users WHERE id = ?`, id).Scan(&u.ID, &u.Name, &u.Email, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Role = models.Role(role)
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, role FROM users ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.User
	for rows.Next() {
		var u models.User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &role); err != nil {
			return nil, err
		}
		u.Role = models.Role(role)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites name, email and role of the user with u.ID.
// It reports whether such a user existed.
func (r *UserRepository) Update(ctx context.Context, u models.User) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE users SET name = ?, email = ?, role = ? WHERE id = ?`,
		u.Name, u.Email, string(u.Role), u.ID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// Delete removes the user and reports whether it existed.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func isPrimaryKeyViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
