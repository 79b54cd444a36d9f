package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository implements Repository using PostgreSQL. Identifiers are
// server-assigned; duplicate emails are rejected by a unique constraint in
// addition to the service-level pre-check.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return r.findOne(ctx,
		`SELECT id, username, email, password, registration_date FROM users WHERE email = $1`,
		email)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*Account, error) {
	return r.findOne(ctx,
		`SELECT id, username, email, password, registration_date FROM users WHERE id = $1`,
		id)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg any) (*Account, error) {
	var a Account
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.RegisteredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("accounts: find user: %w", err)
	}
	return &a, nil
}

// Exists checks the email only; usernames are not unique in this store.
func (r *PGRepository) Exists(ctx context.Context, _, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("accounts: check email: %w", err)
	}
	return exists, nil
}

func (r *PGRepository) Insert(ctx context.Context, account *Account) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password, registration_date)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		account.Username, account.Email, account.PasswordHash, account.RegisteredAt).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("accounts: insert user: %w", err)
	}
	return id, nil
}

func (r *PGRepository) UpdateCredentials(ctx context.Context, id int64, username, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET username = $2, password = $3 WHERE id = $1`,
		id, username, passwordHash)
	if err != nil {
		return fmt.Errorf("accounts: update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("accounts: delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepository) ListAll(ctx context.Context) ([]Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username, email, password, registration_date FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("accounts: list users: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.RegisteredAt); err != nil {
			return nil, fmt.Errorf("accounts: scan user: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("accounts: list users: %w", err)
	}
	return accounts, nil
}

var _ Repository = (*PGRepository)(nil)
