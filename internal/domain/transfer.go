package domain

import "errors"

var (
	// ErrInvalidAmount indicates that the amount does not parse as a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNonPositiveAmount indicates a zero or negative amount.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrSameWallet indicates a transfer from a wallet to itself.
	ErrSameWallet = errors.New("cannot transfer to the same wallet")
	// ErrInsufficientFunds indicates that the source wallet balance is below the requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrRateUnavailable indicates that the exchange rate lookup failed in fail-closed mode.
	ErrRateUnavailable = errors.New("exchange rate unavailable")
)

// CreateTransferParams is the input data for the transfer transaction.
//
// Amount is denominated in the source wallet currency and ConvertedAmount
// in the destination wallet currency: ConvertedAmount = Amount * Rate.
type CreateTransferParams struct {
	UserID          int64  `json:"user_id"`
	FromWalletID    int64  `json:"from_wallet_id"`
	ToWalletID      int64  `json:"to_wallet_id"`
	Amount          string `json:"amount"` // must be positive
	ConvertedAmount string `json:"converted_amount"`
	Rate            string `json:"rate"`
	Description     string `json:"description"`
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	FromWallet      Wallet      `json:"from_wallet"`
	ToWallet        Wallet      `json:"to_wallet"`
	FromTransaction Transaction `json:"from_transaction"`
	ToTransaction   Transaction `json:"to_transaction"`
	Amount          string      `json:"amount"`
	ConvertedAmount string      `json:"converted_amount"`
	Rate            string      `json:"rate"`
}
