package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/periferia/periferia-social/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, email, username, alias, first_name, last_name, birth_date, password_hash, created_at, updated_at`

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A fresh UUID is assigned when the ID is empty.
// Users are only created through seeding; there is no registration endpoint.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := `INSERT INTO users (id, email, username, alias, first_name, last_name, birth_date, password_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Username, user.Alias,
		user.FirstName, user.LastName, user.BirthDate, user.PasswordHash,
	)
	return err
}

// FindByIdentifier retrieves a user whose email, username or alias equals
// the given identifier. Each of the three columns is unique, so at most one
// row can match.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE email = ? OR username = ? OR alias = ?
		LIMIT 1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, identifier, identifier, identifier))
}

// FindByID retrieves a user by their ID. Returns ErrUserNotFound when the
// row is gone; callers decide whether that is a 404 or something worse.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// Count returns the number of user rows. Used to decide whether to seed.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *UserRepository) scanOne(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.Alias,
		&user.FirstName, &user.LastName, &user.BirthDate,
		&user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
