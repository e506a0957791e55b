package userservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/thewallet/wallet-bot/internal/domain"
	"github.com/thewallet/wallet-bot/pkg/errorspkg"
	"github.com/thewallet/wallet-bot/pkg/randompkg"
)

func TestEnsure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	svc := New(repo)

	user := domain.User{
		ID:         1,
		TelegramID: randompkg.TelegramID(),
		Username:   randompkg.Username(),
		CreatedAt:  time.Now(),
	}

	repo.EXPECT().
		Ensure(gomock.Any(), user.TelegramID, user.Username).
		Return(user, nil)

	got, err := svc.Ensure(context.Background(), user.TelegramID, user.Username)
	require.NoError(t, err)
	require.Equal(t, user, got)
}

func TestEnsureError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	svc := New(repo)

	repo.EXPECT().
		Ensure(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.User{}, errorspkg.ErrInternal)

	_, err := svc.Ensure(context.Background(), randompkg.TelegramID(), randompkg.Username())
	require.ErrorIs(t, err, errorspkg.ErrInternal)
}

func TestGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	svc := New(repo)

	user := domain.User{
		ID:         1,
		TelegramID: randompkg.TelegramID(),
		Username:   randompkg.Username(),
	}

	repo.EXPECT().
		Get(gomock.Any(), user.TelegramID).
		Return(user, nil)

	got, err := svc.Get(context.Background(), user.TelegramID)
	require.NoError(t, err)
	require.Equal(t, user, got)
}

func TestGetNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	svc := New(repo)

	repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(domain.User{}, domain.ErrUserNotFound)

	_, err := svc.Get(context.Background(), randompkg.TelegramID())
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
