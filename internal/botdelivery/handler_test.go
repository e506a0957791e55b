package botdelivery

import (
	"context"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/thewallet/wallet-bot/internal/domain"
	"github.com/thewallet/wallet-bot/pkg/randompkg"
	"github.com/thewallet/wallet-bot/pkg/tokenpkg"
)

const (
	testChatID     int64 = 100
	testTelegramID int64 = 200
	testWebAppURL        = "https://wallet.example.com/app"
)

var testUser = domain.User{ID: 1, TelegramID: testTelegramID, Username: "tester"}

func newTestHandler(t *testing.T, ctrl *gomock.Controller) (*Handler, *MockUserService, *MockWalletService, *MockTransferService) {
	t.Helper()

	users := NewMockUserService(ctrl)
	wallets := NewMockWalletService(ctrl)
	transfers := NewMockTransferService(ctrl)

	maker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	h := NewHandler(users, wallets, transfers, maker, testWebAppURL, time.Minute)

	return h, users, wallets, transfers
}

func commandUpdate(text string) tgbotapi.Update {
	entities := []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])}}

	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text:     text,
			Entities: entities,
			Chat:     &tgbotapi.Chat{ID: testChatID},
			From:     &tgbotapi.User{ID: testTelegramID, UserName: testUser.Username},
		},
	}
}

func requireMessageText(t *testing.T, reply tgbotapi.Chattable, want string) tgbotapi.MessageConfig {
	t.Helper()

	msg, ok := reply.(tgbotapi.MessageConfig)
	require.True(t, ok)
	require.Equal(t, testChatID, msg.ChatID)
	require.Equal(t, want, msg.Text)

	return msg
}

func TestHandleUpdateIgnoresNonCommands(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, _, _ := newTestHandler(t, ctrl)

	require.Nil(t, h.HandleUpdate(context.Background(), tgbotapi.Update{}))

	update := commandUpdate("/transfer a b 1")
	update.Message.Entities = nil
	require.Nil(t, h.HandleUpdate(context.Background(), update))

	require.Nil(t, h.HandleUpdate(context.Background(), commandUpdate("/unknown")))
}

func TestStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, users, _, _ := newTestHandler(t, ctrl)

	users.EXPECT().
		Ensure(gomock.Any(), testTelegramID, testUser.Username).
		Return(testUser, nil)

	reply := h.HandleUpdate(context.Background(), commandUpdate("/start"))
	msg := requireMessageText(t, reply, welcomeText)

	keyboard, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, keyboard.Keyboard, 1)
	require.Len(t, keyboard.Keyboard[0], 1)

	button := keyboard.Keyboard[0][0]
	require.Equal(t, webAppButtonText, button.Text)
	require.NotNil(t, button.WebApp)
	require.True(t, strings.HasPrefix(button.WebApp.URL, testWebAppURL+"?token="))
}

func TestAddWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, users, wallets, _ := newTestHandler(t, ctrl)

	users.EXPECT().
		Ensure(gomock.Any(), testTelegramID, testUser.Username).
		Return(testUser, nil)
	wallets.EXPECT().
		Create(gomock.Any(), testUser.ID, "Card", "usd").
		Return(domain.Wallet{ID: 1, UserID: testUser.ID, Name: "Card", Currency: "USD", Balance: "0"}, nil)

	reply := h.HandleUpdate(context.Background(), commandUpdate("/addwallet Card usd"))
	requireMessageText(t, reply, `Wallet "Card" (USD) created.`)
}

func TestAddWalletUsage(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, _, _ := newTestHandler(t, ctrl)

	reply := h.HandleUpdate(context.Background(), commandUpdate("/addwallet Card"))
	requireMessageText(t, reply, addWalletUsageText)
}

func TestAddWalletDuplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, users, wallets, _ := newTestHandler(t, ctrl)

	users.EXPECT().
		Ensure(gomock.Any(), testTelegramID, testUser.Username).
		Return(testUser, nil)
	wallets.EXPECT().
		Create(gomock.Any(), testUser.ID, "Card", "USD").
		Return(domain.Wallet{}, domain.ErrWalletAlreadyExists)

	reply := h.HandleUpdate(context.Background(), commandUpdate("/addwallet Card USD"))
	requireMessageText(t, reply, walletExistsText)
}

func TestListWallets(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, users, wallets, _ := newTestHandler(t, ctrl)

	users.EXPECT().
		Ensure(gomock.Any(), testTelegramID, testUser.Username).
		Return(testUser, nil)
	wallets.EXPECT().
		List(gomock.Any(), testUser.ID).
		Return([]domain.Wallet{
			{ID: 1, UserID: testUser.ID, Name: "Card", Currency: "USD", Balance: "100.5"},
			{ID: 2, UserID: testUser.ID, Name: "Cash", Currency: "EUR", Balance: "0"},
		}, nil)

	reply := h.HandleUpdate(context.Background(), commandUpdate("/wallets"))
	requireMessageText(t, reply, "Your wallets:\nCard: 100.5 USD\nCash: 0 EUR")
}

func TestListWalletsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, users, wallets, _ := newTestHandler(t, ctrl)

	users.EXPECT().
		Ensure(gomock.Any(), testTelegramID, testUser.Username).
		Return(testUser, nil)
	wallets.EXPECT().
		List(gomock.Any(), testUser.ID).
		Return(nil, nil)

	reply := h.HandleUpdate(context.Background(), commandUpdate("/wallets"))
	requireMessageText(t, reply, noWalletsText)
}

func TestTransfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, users, _, transfers := newTestHandler(t, ctrl)

	users.EXPECT().
		Ensure(gomock.Any(), testTelegramID, testUser.Username).
		Return(testUser, nil)
	transfers.EXPECT().
		Transfer(gomock.Any(), testUser.ID, "Card", "Cash", "100").
		Return(domain.TransferTxResult{
			FromWallet:      domain.Wallet{Currency: "USD"},
			ToWallet:        domain.Wallet{Currency: "EUR"},
			Amount:          "100",
			ConvertedAmount: "92",
			Rate:            "0.92",
		}, nil)

	reply := h.HandleUpdate(context.Background(), commandUpdate("/transfer Card Cash 100"))
	requireMessageText(t, reply, "Transfer complete!\n100 USD → 92 EUR\nRate: 0.92")
}

func TestTransferUsage(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, _, _ := newTestHandler(t, ctrl)

	reply := h.HandleUpdate(context.Background(), commandUpdate("/transfer Card Cash"))
	requireMessageText(t, reply, transferUsageText)
}

func TestTransferErrors(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		wantText string
	}{
		{name: "WalletNotFound", err: domain.ErrWalletNotFound, wantText: walletNotFoundText},
		{name: "InsufficientFunds", err: domain.ErrInsufficientFunds, wantText: insufficientFundsText},
		{name: "SameWallet", err: domain.ErrSameWallet, wantText: sameWalletText},
		{name: "InvalidAmount", err: domain.ErrInvalidAmount, wantText: invalidAmountText},
		{name: "NonPositiveAmount", err: domain.ErrNonPositiveAmount, wantText: invalidAmountText},
		{name: "RateUnavailable", err: domain.ErrRateUnavailable, wantText: rateUnavailableText},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h, users, _, transfers := newTestHandler(t, ctrl)

			users.EXPECT().
				Ensure(gomock.Any(), testTelegramID, testUser.Username).
				Return(testUser, nil)
			transfers.EXPECT().
				Transfer(gomock.Any(), testUser.ID, "Card", "Cash", "100").
				Return(domain.TransferTxResult{}, tc.err)

			reply := h.HandleUpdate(context.Background(), commandUpdate("/transfer Card Cash 100"))
			requireMessageText(t, reply, tc.wantText)
		})
	}
}
