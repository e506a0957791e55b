// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/thewallet/wallet-bot/internal/domain"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Ensure(ctx context.Context, telegramID int64, username string) (domain.User, error)
	Get(ctx context.Context, telegramID int64) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New returns user service struct to manage user business logic.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

// Ensure registers the Telegram account on first contact and returns the
// stored user. Repeat calls for the same account are no-ops.
func (s *Service) Ensure(ctx context.Context, telegramID int64, username string) (domain.User, error) {
	user, err := s.repo.Ensure(ctx, telegramID, username)
	if err != nil {
		return user, err
	}

	return user, nil
}

// Get returns the user with the given Telegram account id.
func (s *Service) Get(ctx context.Context, telegramID int64) (domain.User, error) {
	user, err := s.repo.Get(ctx, telegramID)
	if err != nil {
		return user, err
	}

	return user, nil
}
