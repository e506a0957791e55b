// Package httpserver manages server creation and api routing for the
// companion web application.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/thewallet/wallet-bot/internal/exchangerate"
	"github.com/thewallet/wallet-bot/internal/middleware"
	"github.com/thewallet/wallet-bot/internal/transferdelivery"
	"github.com/thewallet/wallet-bot/internal/transferrepo"
	"github.com/thewallet/wallet-bot/internal/transferservice"
	"github.com/thewallet/wallet-bot/internal/userrepo"
	"github.com/thewallet/wallet-bot/internal/userservice"
	"github.com/thewallet/wallet-bot/internal/walletdelivery"
	"github.com/thewallet/wallet-bot/internal/walletrepo"
	"github.com/thewallet/wallet-bot/internal/walletservice"
	"github.com/thewallet/wallet-bot/pkg/configpkg"
	"github.com/thewallet/wallet-bot/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoSQLite(conn)
	walletRepo := walletrepo.NewRepoSQLite(conn)
	transferRepo := transferrepo.NewRepoSQLite(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	rateClient := exchangerate.NewClient(config.ExchangeHost, config.ExchangeTimeout, config.ExchangeFailOpen)

	userService := userservice.New(userRepo)
	walletService := walletservice.New(walletRepo)
	transferService := transferservice.New(transferRepo, walletService, rateClient)

	walletHandler := walletdelivery.NewHandler(walletService, userService)
	transferHandler := transferdelivery.NewHandler(transferService, userService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/health", func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/wallets", walletHandler.Create)
	authRoutes.GET("/wallets", walletHandler.List)

	authRoutes.POST("/transfers", transferHandler.Create)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("currency", walletdelivery.ValidCurrency)
		if err != nil {
			return nil, errors.New("cannot register currency validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
