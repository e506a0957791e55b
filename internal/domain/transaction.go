package domain

import "time"

// Transaction holds a single balance change for a wallet.
type Transaction struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	WalletID    int64     `json:"wallet_id"`
	CreatedAt   time.Time `json:"created_at"`
	Amount      string    `json:"amount"` // can be negative or positive
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	RawText     string    `json:"raw_text"`
}

// CreateTransactionParams is the input data to record a balance change.
type CreateTransactionParams struct {
	UserID      int64  `json:"user_id"`
	WalletID    int64  `json:"wallet_id"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Source      string `json:"source"`
	RawText     string `json:"raw_text"`
}
