// Package walletdelivery manages HTTP delivery layer of wallets.
package walletdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/thewallet/wallet-bot/internal/domain"
	"github.com/thewallet/wallet-bot/internal/middleware"
	"github.com/thewallet/wallet-bot/pkg/errorspkg"
	"github.com/thewallet/wallet-bot/pkg/tokenpkg"
	"github.com/thewallet/wallet-bot/pkg/web"
)

// Service provides service layer interface needed by wallet delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package walletdelivery
type Service interface {
	Create(ctx context.Context, userID int64, name, currency string) (domain.Wallet, error)
	List(ctx context.Context, userID int64) ([]domain.Wallet, error)
}

// UserService resolves the authenticated Telegram account to a stored user.
type UserService interface {
	Get(ctx context.Context, telegramID int64) (domain.User, error)
}

// Handler facilitates wallet delivery layer logic.
type Handler struct {
	service Service
	users   UserService
}

// NewHandler returns wallet handler.
func NewHandler(ws Service, us UserService) *Handler {
	return &Handler{
		service: ws,
		users:   us,
	}
}

func (h *Handler) authorizedUser(gctx *gin.Context) (domain.User, error) {
	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)
	return h.users.Get(gctx.Request.Context(), authPayload.TelegramID)
}

type data struct {
	Wallet domain.Wallet `json:"wallet"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency" binding:"required,currency"`
}

// Create handles http request to create a wallet.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	user, err := h.authorizedUser(gctx)
	if err != nil {
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
		return
	}

	createdWallet, err := h.service.Create(ctx, user.ID, req.Name, req.Currency)
	if err != nil {
		switch err {
		case domain.ErrOwnerNotFound:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrWalletAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{createdWallet},
	}

	gctx.JSON(http.StatusOK, res)
}

type dataWallets struct {
	Wallets []domain.Wallet `json:"wallets"`
}
type responseWallets struct {
	Data dataWallets `json:"data,omitempty"`
}

// List handles http request to list the caller's wallets.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	user, err := h.authorizedUser(gctx)
	if err != nil {
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
		return
	}

	wallets, err := h.service.List(ctx, user.ID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	res := responseWallets{
		Data: dataWallets{wallets},
	}

	gctx.JSON(http.StatusOK, res)
}
