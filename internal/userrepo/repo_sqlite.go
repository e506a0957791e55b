// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/thewallet/wallet-bot/internal/domain"
	"github.com/thewallet/wallet-bot/pkg/dbpkg"
	"github.com/thewallet/wallet-bot/pkg/errorspkg"
)

// RepoSQLite facilitates user repository layer logic.
type RepoSQLite struct {
	db dbpkg.SQLInterface
}

// NewRepoSQLite returns user RepoSQLite.
func NewRepoSQLite(db dbpkg.SQLInterface) *RepoSQLite {
	return &RepoSQLite{
		db: db,
	}
}

const ensureQuery = `
INSERT OR IGNORE INTO
    users (tg_id, username)
VALUES
    (?, ?)
`

// Ensure inserts a user row for the given Telegram account id if absent
// and returns the stored user. The username is not updated on repeat calls.
func (r *RepoSQLite) Ensure(ctx context.Context, telegramID int64, username string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, ensureQuery, telegramID, username); err != nil {
		l.Error().Err(err).Send()
		return domain.User{}, errorspkg.ErrInternal
	}

	return r.Get(ctx, telegramID)
}

const getQuery = `
SELECT
	id, tg_id, username, created_at
FROM users
WHERE tg_id = ?
`

// Get returns the user with the given Telegram account id.
func (r *RepoSQLite) Get(ctx context.Context, telegramID int64) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, telegramID)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.TelegramID,
		&u.Username,
		&u.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}
