package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/stackleaf/todo/internal/todo/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, email, password_hash, refresh_token, refresh_expires_at, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u         domain.User
		refresh   sql.NullString
		refreshAt sql.NullTime
	)
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&refresh,
		&refreshAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	if refresh.Valid {
		u.RefreshToken = &refresh.String
	}
	if refreshAt.Valid {
		t := refreshAt.Time
		u.RefreshExpiresAt = &t
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? OR email = ?`,
		identifier, identifier)
	return scanUser(row)
}

func (r *usersRepo) GetUserByRefreshToken(ctx context.Context, fingerprint string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE refresh_token = ?`, fingerprint)
	return scanUser(row)
}

func (r *usersRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *usersRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, now, now)
	return mapConflict(err)
}

func (r *usersRepo) UpdateRefreshToken(
	ctx context.Context,
	userID, fingerprint string,
	expiresAt time.Time,
) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET refresh_token = ?, refresh_expires_at = ?, updated_at = ? WHERE id = ?`,
		fingerprint, expiresAt.UTC(), time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *usersRepo) ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET refresh_token = NULL, refresh_expires_at = NULL, updated_at = ?
		 WHERE refresh_expires_at IS NOT NULL AND refresh_expires_at < ?`,
		now.UTC(), now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
