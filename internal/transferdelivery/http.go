// Package transferdelivery manages HTTP delivery layer of transfers.
package transferdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/thewallet/wallet-bot/internal/domain"
	"github.com/thewallet/wallet-bot/internal/middleware"
	"github.com/thewallet/wallet-bot/pkg/errorspkg"
	"github.com/thewallet/wallet-bot/pkg/tokenpkg"
	"github.com/thewallet/wallet-bot/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, userID int64, fromName, toName, amount string) (domain.TransferTxResult, error)
}

// UserService resolves the authenticated Telegram account to a stored user.
type UserService interface {
	Get(ctx context.Context, telegramID int64) (domain.User, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
	users   UserService
}

// NewHandler returns transfer handler.
func NewHandler(ts Service, us UserService) *Handler {
	return &Handler{
		service: ts,
		users:   us,
	}
}

type request struct {
	FromName string `json:"from_name" binding:"required"`
	ToName   string `json:"to_name" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
}

type data struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to transfer money between two named wallets.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	user, err := h.users.Get(ctx, authPayload.TelegramID)
	if err != nil {
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
		return
	}

	result, err := h.service.Transfer(ctx, user.ID, req.FromName, req.ToName, req.Amount)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrWalletNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))

			return
		case
			domain.ErrInvalidAmount,
			domain.ErrNonPositiveAmount,
			domain.ErrSameWallet,
			domain.ErrInsufficientFunds:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		case domain.ErrRateUnavailable:
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{result},
	}

	gctx.JSON(http.StatusOK, res)
}
