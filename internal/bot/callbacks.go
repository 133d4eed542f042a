package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"story_bot/internal/model"
)

// Callback actions carried in inline-keyboard data as "<action>:<storyId>".
const (
	cbFavorite      = "fav"
	cbUnfavorite    = "unfav"
	cbDeleteConfirm = "delete_confirm"
	cbDelete        = "delete"
	cbNoop          = "noop"
)

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := cb.Data
	chatID := cb.Message.Chat.ID

	ack := tgbotapi.NewCallback(cb.ID, "")
	if _, err := b.api.Send(ack); err != nil {
		b.log.Error("send callback ack", "error", err)
	}

	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return
	}
	action, storyID := parts[0], parts[1]

	b.log.Info("callback",
		"action", action,
		"story_id", storyID,
		"chat_id", chatID,
		"user_id", cb.From.ID,
		"username", cb.From.UserName,
	)

	switch action {
	case cbFavorite:
		b.handleFavorite(ctx, chatID, storyID)
	case cbUnfavorite:
		b.handleUnfavorite(ctx, chatID, storyID)
	case cbDeleteConfirm:
		b.handleDeleteConfirm(ctx, chatID, storyID)
	case cbDelete:
		b.handleDelete(ctx, chatID, storyID)
	case cbNoop:
	}
}

// storyKeyboard builds the action buttons under a story detail message.
// The favorite button reflects the current membership, the destructive
// actions only show up for the owner.
func storyKeyboard(story model.Story, sess *model.Session) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	if sess.IsFavorite(story.StoryID) {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Unfavorite", cbUnfavorite+":"+story.StoryID))
	} else {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Favorite", cbFavorite+":"+story.StoryID))
	}
	if sess.Owns(story.StoryID) {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Delete", cbDeleteConfirm+":"+story.StoryID))
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(row...))
}
