package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/thewallet/wallet-bot/pkg/randompkg"
	"github.com/thewallet/wallet-bot/pkg/tokenpkg"
)

func TestAuthMiddleware(t *testing.T) {
	testCases := []struct {
		name      string
		setupAuth func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker)
		wantCode  int
	}{
		{
			name: "OK",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				AddAuthorization(t, request, tokenMaker, AuthTypeBearer, randompkg.TelegramID(), time.Minute)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "NoAuthorization",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "InvalidAuthorizationFormat",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				AddAuthorization(t, request, tokenMaker, "", randompkg.TelegramID(), time.Minute)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "UnsupportedAuthorizationType",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				AddAuthorization(t, request, tokenMaker, "unsupported", randompkg.TelegramID(), time.Minute)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "ExpiredToken",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				AddAuthorization(t, request, tokenMaker, AuthTypeBearer, randompkg.TelegramID(), -time.Minute)
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)

			tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
			require.NoError(t, err)

			router := gin.New()
			router.GET(
				"/auth",
				AuthMiddleware(tokenMaker),
				func(ctx *gin.Context) {
					ctx.JSON(http.StatusOK, gin.H{})
				},
			)

			request, err := http.NewRequest(http.MethodGet, "/auth", nil)
			require.NoError(t, err)

			tc.setupAuth(t, request, tokenMaker)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)
			require.Equal(t, tc.wantCode, recorder.Code)
		})
	}
}
