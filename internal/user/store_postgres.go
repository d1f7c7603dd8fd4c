// Copyright (c) 2026 Savora. All rights reserved.

// PostgreSQL implementation of the account repository.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, unique violations) are mapped to
// domain-friendly [apperr.AppError] values by the dberr translator so no
// pgx detail leaks past this file.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/savora-app/savora/internal/platform/dberr"
	"github.com/savora-app/savora/internal/platform/postgres"
)

const accountResource = "User"

const accountColumns = `id, name, gender, avatar_url, email, password_hash, role, created_at, updated_at`

// PostgresRepository implements [Repository] on a pgx connection pool.
type PostgresRepository struct {
	pool postgres.Pool
}

// NewPostgresRepository creates the PostgreSQL account repository.
func NewPostgresRepository(pool postgres.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanAccount(row pgx.Row) (*User, error) {
	account := &User{}
	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Gender,
		&account.AvatarURL,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Create persists a new account row.
func (repository *PostgresRepository) Create(ctx context.Context, account *User) error {
	const query = `
		INSERT INTO users (id, name, gender, avatar_url, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		account.ID,
		account.Name,
		account.Gender,
		account.AvatarURL,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("user_repo_create_failed: %w", err), accountResource)
	}

	return nil
}

// FindByID fetches an account by primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*User, error) {
	const query = `SELECT ` + accountColumns + ` FROM users WHERE id = $1`

	account, err := scanAccount(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, accountResource)
	}

	return account, nil
}

// FindByEmail fetches an account by its normalized email.
func (repository *PostgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `SELECT ` + accountColumns + ` FROM users WHERE email = $1`

	account, err := scanAccount(repository.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, accountResource)
	}

	return account, nil
}

// Exists reports whether an account row exists for id.
func (repository *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(fmt.Errorf("user_repo_exists_failed: %w", err), accountResource)
	}

	return exists, nil
}

// List returns accounts matching the options, keyword-filtered on the
// display name and ordered by creation time.
func (repository *PostgresRepository) List(ctx context.Context, opts ListOptions) ([]*User, error) {
	direction := "DESC"
	if opts.SortAsc {
		direction = "ASC"
	}

	query := `
		SELECT ` + accountColumns + `
		FROM users
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY created_at ` + direction

	rows, err := repository.pool.Query(ctx, query, opts.Keyword)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("user_repo_list_failed: %w", err), accountResource)
	}
	defer rows.Close()

	accounts := []*User{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, dberr.Wrap(err, accountResource)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, accountResource)
	}

	return accounts, nil
}

// UpdateProfile applies the non-nil changes in a single statement. COALESCE
// keeps absent fields at their stored values.
func (repository *PostgresRepository) UpdateProfile(ctx context.Context, id string, changes ProfileChanges) (*User, error) {
	const query = `
		UPDATE users
		SET name       = COALESCE($2, name),
		    gender     = COALESCE($3, gender),
		    avatar_url = COALESCE($4, avatar_url),
		    updated_at = $5
		WHERE id = $1
		RETURNING ` + accountColumns

	row := repository.pool.QueryRow(ctx, query, id, changes.Name, changes.Gender, changes.AvatarURL, time.Now())

	account, err := scanAccount(row)
	if err != nil {
		return nil, dberr.Wrap(err, accountResource)
	}

	return account, nil
}

// UpdatePassword replaces the stored password hash.
func (repository *PostgresRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $2, updated_at = $3
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, id, passwordHash, time.Now())
	if err != nil {
		return dberr.Wrap(fmt.Errorf("user_repo_update_password_failed: %w", err), accountResource)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, accountResource)
	}

	return nil
}

// Delete removes the account row and returns it as it was. RETURNING makes
// the removal and the response payload a single operation.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) (*User, error) {
	const query = `DELETE FROM users WHERE id = $1 RETURNING ` + accountColumns

	account, err := scanAccount(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, accountResource)
	}

	return account, nil
}

// DeleteAll removes every account row.
func (repository *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := repository.pool.Exec(ctx, `DELETE FROM users`); err != nil {
		return dberr.Wrap(fmt.Errorf("user_repo_delete_all_failed: %w", err), accountResource)
	}
	return nil
}
