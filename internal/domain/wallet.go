package domain

import (
	"errors"
	"time"
)

var (
	// ErrWalletNotFound indicates that the wallet is not found.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrWalletAlreadyExists indicates that the owner already has a wallet with the given name.
	ErrWalletAlreadyExists = errors.New("wallet name already exists")
	// ErrOwnerNotFound indicates that the owner for the wallet is not found.
	ErrOwnerNotFound = errors.New("owner not found")
)

// Wallet holds a named user balance in a specific currency.
type Wallet struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}
