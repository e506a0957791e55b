// Package transactionrepo manages repository layer of the transaction log.
package transactionrepo

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/thewallet/wallet-bot/internal/domain"
	"github.com/thewallet/wallet-bot/pkg/dbpkg"
	"github.com/thewallet/wallet-bot/pkg/errorspkg"
)

// RepoSQLite facilitates transaction repository layer logic.
type RepoSQLite struct {
	db dbpkg.SQLInterface
}

// NewRepoSQLite returns transaction RepoSQLite.
func NewRepoSQLite(db dbpkg.SQLInterface) *RepoSQLite {
	return &RepoSQLite{db: db}
}

const createQuery = `
INSERT INTO
    transactions (user_id, wallet_id, amount, currency, category, description, source, raw_text)
VALUES
    (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, user_id, wallet_id, created_at, amount, currency, category, description, source, raw_text
`

// Create creates the transaction record and then returns it.
func (r *RepoSQLite) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.UserID,
		arg.WalletID,
		arg.Amount,
		arg.Currency,
		arg.Category,
		arg.Description,
		arg.Source,
		arg.RawText,
	)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.WalletID,
		&t.CreatedAt,
		&t.Amount,
		&t.Currency,
		&t.Category,
		&t.Description,
		&t.Source,
		&t.RawText,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listByWalletQuery = `
SELECT
	id, user_id, wallet_id, created_at, amount, currency, category, description, source, raw_text
FROM transactions
WHERE wallet_id = ?
ORDER BY id
`

// ListByWallet returns all transaction records for the given wallet.
func (r *RepoSQLite) ListByWallet(ctx context.Context, walletID int64) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByWalletQuery, walletID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.WalletID,
			&t.CreatedAt,
			&t.Amount,
			&t.Currency,
			&t.Category,
			&t.Description,
			&t.Source,
			&t.RawText,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
