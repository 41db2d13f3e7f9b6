// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

/*
Package account (Postgres) implements the storage layer for user meta-data.

It provides PostgreSQL implementations for managing user profiles, the admin
account listing, and auditing active sessions.

# Schema Table Mapping
  - users.account: Master identity and profile data.
  - users.session: Active device sessions and security metadata.
*/
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/platform/sec"
	"github.com/minhngo/travia/internal/users/auth"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for profile management.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// PostgresSessionRepository implements [SessionRepository] using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new Postgres implementation for session auditing.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// # AccountRepository Methods

/*
FindByID retrieves a user record from the users.account table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *auth.User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	const query = `
		SELECT id, username, email, passwordhash, displayname, avatarurl, bio, role, isverified, createdat, updatedat
		FROM users.account
		WHERE id = $1 AND deletedat IS NULL`

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.AvatarURL,
		&user.Bio,
		&user.Role,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
Update modifies the mutable profile metadata of a user.

Description: Syncs the DisplayName, AvatarURL, and Bio fields while refreshing
the updatedat timestamp.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: Update execution failures
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	const query = `
		UPDATE users.account
		SET displayname = $2, avatarurl = $3, bio = $4, updatedat = $5
		WHERE id = $1 AND deletedat IS NULL`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.DisplayName,
		user.AvatarURL,
		user.Bio,
		user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}

	return nil
}

/*
ListActive returns a page of non-deleted accounts, newest first.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*auth.User: Page of accounts
  - int: Total active account count
  - error: Retrieval failures
*/
func (repository *PostgresAccountRepository) ListActive(context context.Context, limit, offset int) ([]*auth.User, int, error) {
	const query = `
		SELECT id, username, email, displayname, avatarurl, bio, role, isverified, createdat, updatedat,
		       COUNT(*) OVER() AS total
		FROM users.account
		WHERE deletedat IS NULL
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	return repository.listUsers(context, query, limit, offset)
}

/*
ListByRole returns a page of non-deleted accounts holding the given role.

Parameters:
  - context: context.Context
  - role: sec.UserRole
  - limit: int
  - offset: int

Returns:
  - []*auth.User: Page of accounts
  - int: Total matching account count
  - error: Retrieval failures
*/
func (repository *PostgresAccountRepository) ListByRole(context context.Context, role sec.UserRole, limit, offset int) ([]*auth.User, int, error) {
	const query = `
		SELECT id, username, email, displayname, avatarurl, bio, role, isverified, createdat, updatedat,
		       COUNT(*) OVER() AS total
		FROM users.account
		WHERE deletedat IS NULL AND role = $3
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	return repository.listUsers(context, query, limit, offset, role)
}

// listUsers shares the scan loop between the admin listing queries. The query
// must select the listing columns plus a trailing COUNT(*) OVER() total.
func (repository *PostgresAccountRepository) listUsers(context context.Context, query string, limit, offset int, extraArgs ...any) ([]*auth.User, int, error) {
	args := append([]any{limit, offset}, extraArgs...)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var users []*auth.User
	var total int
	for rows.Next() {
		user := &auth.User{}
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.DisplayName,
			&user.AvatarURL,
			&user.Bio,
			&user.Role,
			&user.IsVerified,
			&user.CreatedAt,
			&user.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	return users, total, nil
}

/*
SoftDelete flags an account as logically deleted.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresAccountRepository) SoftDelete(context context.Context, id string) error {
	const query = `UPDATE users.account SET deletedat = $2 WHERE id = $1 AND deletedat IS NULL`

	_, err := repository.pool.Exec(context, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_account_repo_soft_delete_failed: %w", err)
	}
	return nil
}

/*
Restore clears the deletion flag on a soft-deleted account.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound if no deleted account matches, or execution failures
*/
func (repository *PostgresAccountRepository) Restore(context context.Context, id string) error {
	const query = `UPDATE users.account SET deletedat = NULL, updatedat = $2 WHERE id = $1 AND deletedat IS NOT NULL`

	result, err := repository.pool.Exec(context, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_account_repo_restore_failed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Deleted account")
	}
	return nil
}

// # SessionRepository Methods

/*
FindActiveByUserID lists all valid, non-expired sessions for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []SessionInfo: List of active devices, newest first
  - error: Retrieval failures
*/
func (repository *PostgresSessionRepository) FindActiveByUserID(context context.Context, userID string) ([]SessionInfo, error) {
	const query = `
		SELECT id, useragent, ipaddress, createdat, expiresat
		FROM users.session
		WHERE userid = $1 AND isrevoked = FALSE AND expiresat > NOW()
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_session_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var info SessionInfo
		err := rows.Scan(&info.ID, &info.DeviceName, &info.IPAddress, &info.CreatedAt, &info.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("postgres_session_repo_scan_failed: %w", err)
		}
		sessions = append(sessions, info)
	}

	return sessions, nil
}

/*
Revoke marks a specific session as revoked, enforcing ownership.

Parameters:
  - context: context.Context
  - userID: string
  - sessionID: string

Returns:
  - error: apperr.NotFound if the session does not belong to the user
*/
func (repository *PostgresSessionRepository) Revoke(context context.Context, userID, sessionID string) error {
	const query = `UPDATE users.session SET isrevoked = TRUE WHERE id = $1 AND userid = $2 AND isrevoked = FALSE`

	result, err := repository.pool.Exec(context, query, sessionID, userID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_revoke_failed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Session")
	}
	return nil
}

/*
RevokeOthers revokes all active sessions except the current one.

Parameters:
  - context: context.Context
  - userID: string
  - currentSessionID: string

Returns:
  - error: Revocation failures
*/
func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, userID, currentSessionID string) error {
	const query = `UPDATE users.session SET isrevoked = TRUE WHERE userid = $1 AND id != $2 AND isrevoked = FALSE`

	_, err := repository.pool.Exec(context, query, userID, currentSessionID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_revoke_others_failed: %w", err)
	}
	return nil
}

/*
RevokeAll terminates every active session for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Revocation failures
*/
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	const query = `UPDATE users.session SET isrevoked = TRUE WHERE userid = $1 AND isrevoked = FALSE`

	_, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_revoke_all_failed: %w", err)
	}
	return nil
}
