// Package walletrepo manages repository layer of wallets.
package walletrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/thewallet/wallet-bot/internal/domain"
	"github.com/thewallet/wallet-bot/pkg/dbpkg"
	"github.com/thewallet/wallet-bot/pkg/errorspkg"
)

// RepoSQLite facilitates wallet repository layer logic.
type RepoSQLite struct {
	db dbpkg.SQLInterface
}

// NewRepoSQLite returns wallet RepoSQLite.
func NewRepoSQLite(db dbpkg.SQLInterface) *RepoSQLite {
	return &RepoSQLite{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    wallets (user_id, name, currency, created_at)
VALUES
    (?, ?, ?, ?)
RETURNING id, user_id, name, currency, balance, created_at
`

// Create creates the wallet with a zero balance and then returns it.
func (r *RepoSQLite) Create(ctx context.Context, userID int64, name, currency string) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, userID, name, currency, time.Now().UTC())

	var w domain.Wallet

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Name,
		&w.Currency,
		&w.Balance,
		&w.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if sqliteErr, ok := err.(sqlite3.Error); ok {
			switch sqliteErr.ExtendedCode {
			case sqlite3.ErrConstraintUnique:
				return w, domain.ErrWalletAlreadyExists
			case sqlite3.ErrConstraintForeignKey:
				return w, domain.ErrOwnerNotFound
			}
		}

		return w, errorspkg.ErrInternal
	}

	return w, nil
}

const getByNameQuery = `
SELECT
	id, user_id, name, currency, balance, created_at
FROM wallets
WHERE user_id = ? AND name = ?
`

// GetByName returns the wallet with the given name scoped to the owner.
func (r *RepoSQLite) GetByName(ctx context.Context, userID int64, name string) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByNameQuery, userID, name)

	var w domain.Wallet

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Name,
		&w.Currency,
		&w.Balance,
		&w.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return w, domain.ErrWalletNotFound
		}

		return w, errorspkg.ErrInternal
	}

	return w, nil
}

const getQuery = `
SELECT
	id, user_id, name, currency, balance, created_at
FROM wallets
WHERE id = ?
`

// Get returns the wallet with the given id.
func (r *RepoSQLite) Get(ctx context.Context, id int64) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var w domain.Wallet

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Name,
		&w.Currency,
		&w.Balance,
		&w.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return w, domain.ErrWalletNotFound
		}

		return w, errorspkg.ErrInternal
	}

	return w, nil
}

const listQuery = `
SELECT
	id, user_id, name, currency, balance, created_at
FROM wallets
WHERE user_id = ?
ORDER BY id
`

// List returns all wallets owned by the given user in insertion order.
func (r *RepoSQLite) List(ctx context.Context, userID int64) ([]domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, userID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Wallet{}

	for rows.Next() {
		var w domain.Wallet
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Currency, &w.Balance, &w.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, w)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const setBalanceQuery = `
UPDATE wallets
SET balance = ?
WHERE id = ?
RETURNING id, user_id, name, currency, balance, created_at
`

// SetBalance stores the new balance and returns the changed wallet.
// It is meant to be called inside the transfer transaction only.
func (r *RepoSQLite) SetBalance(ctx context.Context, balance string, id int64) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, setBalanceQuery, balance, id)

	var w domain.Wallet

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Name,
		&w.Currency,
		&w.Balance,
		&w.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return w, domain.ErrWalletNotFound
		}

		return w, errorspkg.ErrInternal
	}

	return w, nil
}
