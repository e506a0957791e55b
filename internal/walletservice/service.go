// Package walletservice manages business logic layer of wallets.
package walletservice

import (
	"context"
	"strings"

	"github.com/thewallet/wallet-bot/internal/domain"
)

// Repo provides data access layer interface needed by wallet service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package walletservice
type Repo interface {
	Create(ctx context.Context, userID int64, name, currency string) (domain.Wallet, error)
	GetByName(ctx context.Context, userID int64, name string) (domain.Wallet, error)
	List(ctx context.Context, userID int64) ([]domain.Wallet, error)
}

// Service facilitates wallet service layer logic.
type Service struct {
	repo Repo
}

// New returns wallet service struct to manage wallet business logic.
func New(wr Repo) *Service {
	return &Service{repo: wr}
}

// Create creates and returns a wallet with a zero balance for the given
// owner. The currency code is normalized to uppercase.
func (s *Service) Create(ctx context.Context, userID int64, name, currency string) (domain.Wallet, error) {
	wallet, err := s.repo.Create(ctx, userID, name, strings.ToUpper(currency))
	if err != nil {
		return wallet, err
	}

	return wallet, nil
}

// GetByName returns the wallet with the given name scoped to the owner.
func (s *Service) GetByName(ctx context.Context, userID int64, name string) (domain.Wallet, error) {
	wallet, err := s.repo.GetByName(ctx, userID, name)
	if err != nil {
		return wallet, err
	}

	return wallet, nil
}

// List returns all wallets owned by the given user.
func (s *Service) List(ctx context.Context, userID int64) ([]domain.Wallet, error) {
	wallets, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return wallets, nil
}
