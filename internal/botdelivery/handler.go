// Package botdelivery manages the Telegram delivery layer: command parsing,
// reply rendering and the long-polling update loop.
package botdelivery

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/thewallet/wallet-bot/internal/domain"
	"github.com/thewallet/wallet-bot/pkg/tokenpkg"
)

// UserService provides user registration needed by the bot.
//
//go:generate mockgen -source handler.go -destination handler_mock.go -package botdelivery
type UserService interface {
	Ensure(ctx context.Context, telegramID int64, username string) (domain.User, error)
}

// WalletService provides wallet operations needed by the bot.
type WalletService interface {
	Create(ctx context.Context, userID int64, name, currency string) (domain.Wallet, error)
	List(ctx context.Context, userID int64) ([]domain.Wallet, error)
}

// TransferService provides transfer operations needed by the bot.
type TransferService interface {
	Transfer(ctx context.Context, userID int64, fromName, toName, amount string) (domain.TransferTxResult, error)
}

// Reply texts for all bot commands.
const (
	welcomeText = "Welcome to The Wallet!\n" +
		"Keep any number of wallets in different currencies and transfer between them."
	webAppButtonText      = "Open The Wallet"
	addWalletUsageText    = "Usage: /addwallet <name> <currency>\nExample: /addwallet Card USD"
	transferUsageText     = "Usage: /transfer <from> <to> <amount>\nExample: /transfer Card Cash 100"
	noWalletsText         = "You have no wallets yet.\nCreate one: /addwallet <name> <currency>"
	walletExistsText      = "You already have a wallet with that name."
	walletNotFoundText    = "One of the wallets was not found."
	insufficientFundsText = "Insufficient funds."
	sameWalletText        = "Choose two different wallets."
	invalidAmountText     = "The amount must be a positive number."
	rateUnavailableText   = "The exchange rate is unavailable right now. Please try again later."
	internalErrorText     = "Something went wrong. Please try again later."
)

// Handler maps Telegram commands onto the service layer and renders replies.
type Handler struct {
	users         UserService
	wallets       WalletService
	transfers     TransferService
	tokenMaker    tokenpkg.Maker
	webAppURL     string
	tokenDuration time.Duration
}

// NewHandler returns bot handler.
func NewHandler(
	us UserService,
	ws WalletService,
	ts TransferService,
	tokenMaker tokenpkg.Maker,
	webAppURL string,
	tokenDuration time.Duration,
) *Handler {
	return &Handler{
		users:         us,
		wallets:       ws,
		transfers:     ts,
		tokenMaker:    tokenMaker,
		webAppURL:     webAppURL,
		tokenDuration: tokenDuration,
	}
}

// HandleUpdate dispatches a single Telegram update and returns the reply to
// send, or nil when the update needs no reply.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) tgbotapi.Chattable {
	msg := update.Message
	if msg == nil || msg.From == nil || !msg.IsCommand() {
		return nil
	}

	switch msg.Command() {
	case "start":
		return h.start(ctx, msg)
	case "addwallet":
		return h.addWallet(ctx, msg)
	case "wallets":
		return h.listWallets(ctx, msg)
	case "transfer":
		return h.transfer(ctx, msg)
	}

	return nil
}

func (h *Handler) start(ctx context.Context, msg *tgbotapi.Message) tgbotapi.Chattable {
	l := zerolog.Ctx(ctx)

	if _, err := h.users.Ensure(ctx, msg.From.ID, msg.From.UserName); err != nil {
		return tgbotapi.NewMessage(msg.Chat.ID, internalErrorText)
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, welcomeText)

	token, _, err := h.tokenMaker.CreateToken(msg.From.ID, h.tokenDuration)
	if err != nil {
		// The web app button is optional; the bot itself still works.
		l.Error().Err(err).Msg("cannot create web app token")
		return reply
	}

	webApp := tgbotapi.WebAppInfo{URL: fmt.Sprintf("%s?token=%s", h.webAppURL, token)}
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.KeyboardButton{Text: webAppButtonText, WebApp: &webApp},
		),
	)
	keyboard.ResizeKeyboard = true
	reply.ReplyMarkup = keyboard

	return reply
}

func (h *Handler) addWallet(ctx context.Context, msg *tgbotapi.Message) tgbotapi.Chattable {
	args := strings.Fields(msg.CommandArguments())
	if len(args) < 2 {
		return tgbotapi.NewMessage(msg.Chat.ID, addWalletUsageText)
	}

	user, err := h.users.Ensure(ctx, msg.From.ID, msg.From.UserName)
	if err != nil {
		return tgbotapi.NewMessage(msg.Chat.ID, internalErrorText)
	}

	wallet, err := h.wallets.Create(ctx, user.ID, args[0], args[1])
	if err != nil {
		if err == domain.ErrWalletAlreadyExists {
			return tgbotapi.NewMessage(msg.Chat.ID, walletExistsText)
		}

		return tgbotapi.NewMessage(msg.Chat.ID, internalErrorText)
	}

	text := fmt.Sprintf("Wallet %q (%s) created.", wallet.Name, wallet.Currency)

	return tgbotapi.NewMessage(msg.Chat.ID, text)
}

func (h *Handler) listWallets(ctx context.Context, msg *tgbotapi.Message) tgbotapi.Chattable {
	user, err := h.users.Ensure(ctx, msg.From.ID, msg.From.UserName)
	if err != nil {
		return tgbotapi.NewMessage(msg.Chat.ID, internalErrorText)
	}

	wallets, err := h.wallets.List(ctx, user.ID)
	if err != nil {
		return tgbotapi.NewMessage(msg.Chat.ID, internalErrorText)
	}

	if len(wallets) == 0 {
		return tgbotapi.NewMessage(msg.Chat.ID, noWalletsText)
	}

	lines := make([]string, 0, len(wallets)+1)
	lines = append(lines, "Your wallets:")

	for _, w := range wallets {
		lines = append(lines, fmt.Sprintf("%s: %s %s", w.Name, displayAmount(w.Balance), w.Currency))
	}

	return tgbotapi.NewMessage(msg.Chat.ID, strings.Join(lines, "\n"))
}

func (h *Handler) transfer(ctx context.Context, msg *tgbotapi.Message) tgbotapi.Chattable {
	args := strings.Fields(msg.CommandArguments())
	if len(args) < 3 {
		return tgbotapi.NewMessage(msg.Chat.ID, transferUsageText)
	}

	user, err := h.users.Ensure(ctx, msg.From.ID, msg.From.UserName)
	if err != nil {
		return tgbotapi.NewMessage(msg.Chat.ID, internalErrorText)
	}

	result, err := h.transfers.Transfer(ctx, user.ID, args[0], args[1], args[2])
	if err != nil {
		switch err {
		case domain.ErrWalletNotFound:
			return tgbotapi.NewMessage(msg.Chat.ID, walletNotFoundText)
		case domain.ErrInsufficientFunds:
			return tgbotapi.NewMessage(msg.Chat.ID, insufficientFundsText)
		case domain.ErrSameWallet:
			return tgbotapi.NewMessage(msg.Chat.ID, sameWalletText)
		case domain.ErrInvalidAmount, domain.ErrNonPositiveAmount:
			return tgbotapi.NewMessage(msg.Chat.ID, invalidAmountText)
		case domain.ErrRateUnavailable:
			return tgbotapi.NewMessage(msg.Chat.ID, rateUnavailableText)
		}

		return tgbotapi.NewMessage(msg.Chat.ID, internalErrorText)
	}

	text := fmt.Sprintf(
		"Transfer complete!\n%s %s → %s %s\nRate: %s",
		result.Amount,
		result.FromWallet.Currency,
		displayAmount(result.ConvertedAmount),
		result.ToWallet.Currency,
		displayAmount(result.Rate),
	)

	return tgbotapi.NewMessage(msg.Chat.ID, text)
}

// displayAmount rounds a decimal string to 2 places for display. Values that
// do not parse are shown as stored.
func displayAmount(amount string) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}

	return d.Round(2).String()
}
