// Package transferrepo manages repository layer of transfers.
package transferrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/thewallet/wallet-bot/internal/domain"
	"github.com/thewallet/wallet-bot/internal/transactionrepo"
	"github.com/thewallet/wallet-bot/internal/walletrepo"
	"github.com/thewallet/wallet-bot/pkg/errorspkg"
)

// Category and source recorded for the transaction log rows of a transfer.
const (
	transferCategory = "transfer"
	transferSource   = "transfer"
)

// RepoSQLite facilitates transfer repository layer logic.
type RepoSQLite struct {
	conn *sql.DB
}

// NewRepoSQLite returns transfer RepoSQLite with a connection to start transactions.
func NewRepoSQLite(conn *sql.DB) *RepoSQLite {
	return &RepoSQLite{
		conn: conn,
	}
}

// Transfer moves money between two wallets of one user.
//
// It debits the source wallet, credits the destination wallet with the
// converted amount and records both legs in the transaction log within a
// single database transaction. The balance check is repeated inside the
// transaction so that concurrent transfers cannot overdraw the source.
func (r *RepoSQLite) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	result := domain.TransferTxResult{
		Amount:          arg.Amount,
		ConvertedAmount: arg.ConvertedAmount,
		Rate:            arg.Rate,
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	walletRepo := walletrepo.NewRepoSQLite(tx)
	transactionRepo := transactionrepo.NewRepoSQLite(tx)

	fromWallet, err := walletRepo.Get(ctx, arg.FromWalletID)
	if err != nil {
		return result, err
	}

	toWallet, err := walletRepo.Get(ctx, arg.ToWalletID)
	if err != nil {
		return result, err
	}

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Error().Err(err).Send()
		return result, domain.ErrInvalidAmount
	}

	converted, err := decimal.NewFromString(arg.ConvertedAmount)
	if err != nil {
		l.Error().Err(err).Send()
		return result, domain.ErrInvalidAmount
	}

	fromBalance, err := decimal.NewFromString(fromWallet.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	toBalance, err := decimal.NewFromString(toWallet.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	if fromBalance.LessThan(amount) {
		return result, domain.ErrInsufficientFunds
	}

	result.FromWallet, err = walletRepo.SetBalance(ctx, fromBalance.Sub(amount).String(), arg.FromWalletID)
	if err != nil {
		return result, err
	}

	result.ToWallet, err = walletRepo.SetBalance(ctx, toBalance.Add(converted).String(), arg.ToWalletID)
	if err != nil {
		return result, err
	}

	result.FromTransaction, err = transactionRepo.Create(ctx, domain.CreateTransactionParams{
		UserID:      arg.UserID,
		WalletID:    arg.FromWalletID,
		Amount:      amount.Neg().String(),
		Currency:    fromWallet.Currency,
		Category:    transferCategory,
		Description: arg.Description,
		Source:      transferSource,
	})
	if err != nil {
		return result, err
	}

	result.ToTransaction, err = transactionRepo.Create(ctx, domain.CreateTransactionParams{
		UserID:      arg.UserID,
		WalletID:    arg.ToWalletID,
		Amount:      converted.String(),
		Currency:    toWallet.Currency,
		Category:    transferCategory,
		Description: arg.Description,
		Source:      transferSource,
	})
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}
