// Package main runs The Wallet bot: the Telegram long-polling loop and the
// HTTP API backing the companion web application.
package main

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/thewallet/wallet-bot/cmd/httpserver"
	"github.com/thewallet/wallet-bot/internal/botdelivery"
	"github.com/thewallet/wallet-bot/internal/exchangerate"
	"github.com/thewallet/wallet-bot/internal/middleware"
	"github.com/thewallet/wallet-bot/internal/schema"
	"github.com/thewallet/wallet-bot/internal/transferrepo"
	"github.com/thewallet/wallet-bot/internal/transferservice"
	"github.com/thewallet/wallet-bot/internal/userrepo"
	"github.com/thewallet/wallet-bot/internal/userservice"
	"github.com/thewallet/wallet-bot/internal/walletrepo"
	"github.com/thewallet/wallet-bot/internal/walletservice"
	"github.com/thewallet/wallet-bot/pkg/configpkg"
	"github.com/thewallet/wallet-bot/pkg/dbpkg"
	"github.com/thewallet/wallet-bot/pkg/tokenpkg"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	if err := schema.Init(context.Background(), db); err != nil {
		logger.Fatal().Err(err).Msg("cannot create database schema")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	go func() {
		logger.Info().Msg("WEB APP API SERVER HAS STARTED")

		if err := server.Engine.Run(config.ServerAddress); err != nil {
			logger.Fatal().Err(err).Msg("cannot start server")
		}
	}()

	api, err := tgbotapi.NewBotAPI(config.BotToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to telegram")
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create token maker")
	}

	rateClient := exchangerate.NewClient(config.ExchangeHost, config.ExchangeTimeout, config.ExchangeFailOpen)

	userService := userservice.New(userrepo.NewRepoSQLite(db))
	walletService := walletservice.New(walletrepo.NewRepoSQLite(db))
	transferService := transferservice.New(transferrepo.NewRepoSQLite(db), walletService, rateClient)

	handler := botdelivery.NewHandler(
		userService,
		walletService,
		transferService,
		tokenMaker,
		config.WebAppURL,
		config.AccessTokenDuration,
	)

	bot := botdelivery.NewBot(api, handler, logger)

	logger.Info().Msg("THE WALLET BOT HAS STARTED")

	if err := bot.Run(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("bot stopped")
	}
}
