package handlers

import (
	"cli-roulette/internal/telegram"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"
)

// GetReplyHandler forwards text messages from the game chat to the prompter.
func GetReplyHandler(prompter *telegram.Prompter) ext.Handler {
	return handlers.NewMessage(message.Text, func(b *gotgbot.Bot, ctx *ext.Context) error {
		handleReply(prompter, ctx.EffectiveChat.Id, ctx.EffectiveMessage.Text)
		return nil
	})
}

func handleReply(prompter *telegram.Prompter, chatID int64, text string) bool {
	if chatID != prompter.ChatID() {
		return false
	}
	prompter.Deliver(text)
	return true
}
