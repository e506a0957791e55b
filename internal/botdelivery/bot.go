package botdelivery

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const updateTimeoutSeconds = 60

// Bot runs the long-polling loop and sends the handler's replies.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	logger  zerolog.Logger
}

// NewBot returns a bot consuming updates from the given Telegram API client.
func NewBot(api *tgbotapi.BotAPI, handler *Handler, logger zerolog.Logger) *Bot {
	return &Bot{
		api:     api,
		handler: handler,
		logger:  logger,
	}
}

// Run polls for updates until the context is canceled. Each update is
// handled in its own goroutine so that a slow external call stalls only the
// request performing it.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = updateTimeoutSeconds

	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			go b.handle(update)
		}
	}
}

func (b *Bot) handle(update tgbotapi.Update) {
	logger := b.logger.With().Int("update_id", update.UpdateID).Logger()
	ctx := logger.WithContext(context.Background())

	reply := b.handler.HandleUpdate(ctx, update)
	if reply == nil {
		return
	}

	if _, err := b.api.Send(reply); err != nil {
		logger.Error().Err(err).Msg("cannot send reply")
	}
}
