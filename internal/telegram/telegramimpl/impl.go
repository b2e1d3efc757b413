package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-dashboard/internal/telegram"
	"github.com/orgball2608/insta-dashboard/pkg/config"
	"github.com/orgball2608/insta-dashboard/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot   *tgbotapi.BotAPI
	Logger  logger.Logger
	Channel string
}

var _ telegram.Client = (*TelegramImpl)(nil)

// New returns a Noop client when TELEGRAM_TOKEN or TELEGRAM_CHANNEL is unset.
func New(opts Opts) (telegram.Client, error) {
	log := opts.Logger.WithComponent("telegram")
	cfg := opts.Config.Telegram

	if cfg.Token == "" || cfg.Channel == "" {
		log.Info("Telegram notifications disabled")
		return telegram.Noop{}, nil
	}

	tgBot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		log.Error("Error creating bot", "error", err)
		return nil, err
	}

	return NewWithBot(tgBot, cfg.Channel, log), nil
}

func NewWithBot(bot *tgbotapi.BotAPI, channel string, log logger.Logger) *TelegramImpl {
	return &TelegramImpl{
		TgBot:   bot,
		Logger:  log,
		Channel: channel,
	}
}
