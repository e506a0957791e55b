// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/thewallet/wallet-bot/internal/domain"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// WalletService provides wallet lookups needed by transfer service layer.
type WalletService interface {
	GetByName(ctx context.Context, userID int64, name string) (domain.Wallet, error)
}

// RateProvider returns the multiplicative conversion rate between two
// currency codes.
type RateProvider interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo    Repo
	wallets WalletService
	rates   RateProvider
}

// New returns transfer service struct to manage transfer business logic.
func New(tr Repo, ws WalletService, rp RateProvider) *Service {
	return &Service{
		repo:    tr,
		wallets: ws,
		rates:   rp,
	}
}

// Transfer moves the given amount from one named wallet of the user to
// another, converting it at the current exchange rate.
func (s *Service) Transfer(ctx context.Context, userID int64, fromName, toName, amount string) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return result, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return result, domain.ErrNonPositiveAmount
	}

	if fromName == toName {
		return result, domain.ErrSameWallet
	}

	fromWallet, err := s.wallets.GetByName(ctx, userID, fromName)
	if err != nil {
		return result, err
	}

	toWallet, err := s.wallets.GetByName(ctx, userID, toName)
	if err != nil {
		return result, err
	}

	fromBalance, err := decimal.NewFromString(fromWallet.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return result, domain.ErrInvalidAmount
	}

	// Equality is allowed: a wallet may be emptied completely.
	if fromBalance.LessThan(amountDecimal) {
		return result, domain.ErrInsufficientFunds
	}

	rate, err := s.rates.Rate(ctx, fromWallet.Currency, toWallet.Currency)
	if err != nil {
		l.Error().Err(err).Send()
		return result, err
	}

	converted := amountDecimal.Mul(rate)

	arg := domain.CreateTransferParams{
		UserID:          userID,
		FromWalletID:    fromWallet.ID,
		ToWalletID:      toWallet.ID,
		Amount:          amountDecimal.String(),
		ConvertedAmount: converted.String(),
		Rate:            rate.String(),
		Description:     fmt.Sprintf("%s -> %s", fromName, toName),
	}

	result, err = s.repo.Transfer(ctx, arg)
	if err != nil {
		return result, err
	}

	return result, nil
}
