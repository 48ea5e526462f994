// internal/repository/postgres/user_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"bookstore-service/internal/domain/user"
	xerrors "bookstore-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new local account. A unique-violation on email maps to
// ErrDuplicateEntry so handlers can answer "email already exists".
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (name, email, phone, password, provider, role, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		u.Name, u.Email, u.Phone, u.PasswordHash, u.Provider, u.Role, u.Status,
	).Scan(&u.ID, &u.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return xerrors.ErrDuplicateEntry
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// FindByEmail retrieves a user by email, including the credential hash.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, name, email, phone, password, provider, role, status, created_at
		FROM users
		WHERE email = $1
	`

	var u user.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash,
		&u.Provider, &u.Role, &u.Status, &u.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return &u, nil
}

// FindByID retrieves a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	query := `
		SELECT id, name, email, phone, password, provider, role, status, created_at
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash,
		&u.Provider, &u.Role, &u.Status, &u.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &u, nil
}

// GetProfile retrieves a user joined with their optional address.
func (r *UserRepository) GetProfile(ctx context.Context, userID int64) (*user.Profile, error) {
	query := `
		SELECT u.id, u.name, u.email, u.phone,
		       a.address, a.city, a.state, a.pincode, a.country
		FROM users u
		LEFT JOIN user_addresses a ON a.user_id = u.id
		WHERE u.id = $1
	`

	var p user.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.Name, &p.Email, &p.Phone,
		&p.Address, &p.City, &p.State, &p.Pincode, &p.Country,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

// UpsertAddress saves the user's single shipping address.
func (r *UserRepository) UpsertAddress(ctx context.Context, userID int64, addr *user.SaveAddressRequest) error {
	query := `
		INSERT INTO user_addresses (user_id, address, city, state, pincode, country)
		VALUES ($1, $2, $3, $4, $5, 'India')
		ON CONFLICT (user_id) DO UPDATE SET
			address = EXCLUDED.address,
			city    = EXCLUDED.city,
			state   = EXCLUDED.state,
			pincode = EXCLUDED.pincode,
			country = EXCLUDED.country
	`

	_, err := r.db.Exec(ctx, query, userID, addr.Address, addr.City, addr.State, addr.Pincode)
	if err != nil {
		return fmt.Errorf("failed to save address: %w", err)
	}

	return nil
}
