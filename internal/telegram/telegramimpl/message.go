package telegramimpl

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-dashboard/internal/domain"
	"github.com/orgball2608/insta-dashboard/pkg/formatter"
)

const maxCaptionPreview = 200

// NotifyPublished posts a short announcement of p to the configured channel.
func (tg *TelegramImpl) NotifyPublished(ctx context.Context, p domain.Publication) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	channelName := "@" + strings.TrimPrefix(tg.Channel, "@")
	msg := tgbotapi.NewMessageToChannel(channelName, publishedText(p))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	if _, err := tg.TgBot.Send(msg); err != nil {
		tg.Logger.Error("Error sending message to channel",
			"channel", channelName,
			"media_id", p.MediaID,
			"error", err)
		return fmt.Errorf("failed to send message to channel: %w", err)
	}

	tg.Logger.Info("Message sent to channel",
		"channel", channelName,
		"media_id", p.MediaID)
	return nil
}

func publishedText(p domain.Publication) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", formatter.EscapeMarkdownV2(fmt.Sprintf("New %s published on Instagram", p.MediaKind)))
	fmt.Fprintf(&b, "Media ID: `%s`\n", formatter.EscapeCode(p.MediaID))

	caption := formatter.Truncate(strings.TrimSpace(p.Caption), maxCaptionPreview)
	if caption != "" {
		fmt.Fprintf(&b, "\n%s", formatter.EscapeMarkdownV2(caption))
	}
	return b.String()
}
