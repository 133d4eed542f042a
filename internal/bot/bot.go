// Package bot is the Telegram front end: it translates chat commands and
// inline-keyboard callbacks into engine operations and renders the story
// collections back as text messages.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"story_bot/internal/config"
	"story_bot/internal/engine"
	"story_bot/internal/feed"
	"story_bot/internal/model"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot handles user commands and renders collection changes.
type Bot struct {
	api     telegramAPI
	engine  *engine.Engine
	fetcher *feed.Fetcher
	cfg     *config.Config
	log     *slog.Logger

	// sessions holds the signed-in session per chat; restored marks chats
	// whose persisted credentials have already been tried. Both are only
	// touched from the update loop.
	sessions map[int64]*model.Session
	restored map[int64]bool

	// rendered fingerprints the last list sent per chat and view, so the
	// change notifications from a settled operation do not repeat the
	// same message.
	renderMu sync.Mutex
	rendered map[string]string
}

// New creates a Bot with the given Telegram token, engine, and config.
func New(cfg *config.Config, eng *engine.Engine, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	b := &Bot{
		api:      api,
		engine:   eng,
		fetcher:  feed.New(http.DefaultClient),
		cfg:      cfg,
		log:      log,
		sessions: make(map[int64]*model.Session),
		restored: make(map[int64]bool),
		rendered: make(map[string]string),
	}
	eng.SetNotifier(b)
	return b, nil
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.CallbackQuery != nil {
				b.handleCallback(ctx, update.CallbackQuery)
				continue
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if !b.cfg.IsUserAllowed(update.Message.From.ID) {
				b.reply(update.Message.Chat.ID, "Access denied.")
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

// CollectionChanged implements engine.Notifier. It re-renders the changed
// collection when it is the chat's currently selected view and its
// contents differ from the last render, so the optimistic patch shows up
// instantly and the settling refresh stays silent.
func (b *Bot) CollectionChanged(chatID int64, view model.View, stories []model.Story) {
	if chatID == 0 {
		// background feed refresh, nothing to redraw proactively
		return
	}

	current, err := b.engine.CurrentView(context.Background(), chatID)
	if err != nil {
		b.log.Warn("read current view", "chat_id", chatID, "error", err)
		return
	}
	if view != current {
		return
	}

	fingerprint := listFingerprint(stories)
	key := fmt.Sprintf("%d:%s", chatID, view)

	b.renderMu.Lock()
	same := b.rendered[key] == fingerprint
	b.rendered[key] = fingerprint
	b.renderMu.Unlock()
	if same {
		return
	}

	b.reply(chatID, FormatStoryList(view, stories, b.sessions[chatID]))
}

func listFingerprint(stories []model.Story) string {
	var sb strings.Builder
	for _, s := range stories {
		sb.WriteString(s.StoryID)
		sb.WriteByte('|')
		sb.WriteString(s.Title)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SendMessage sends a text message to the given chat.
func (b *Bot) SendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.SendMessage(chatID, text)
}

// session returns the chat's session, restoring it from persisted
// credentials on first contact after a restart.
func (b *Bot) session(ctx context.Context, chatID int64) *model.Session {
	if sess, ok := b.sessions[chatID]; ok {
		return sess
	}
	if b.restored[chatID] {
		return nil
	}
	b.restored[chatID] = true

	sess, err := b.engine.Restore(ctx, chatID)
	if err != nil {
		b.log.Warn("restore session", "chat_id", chatID, "error", err)
		return nil
	}
	if sess != nil {
		b.sessions[chatID] = sess
	}
	return sess
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cmd := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())
	chatID := msg.Chat.ID

	b.log.Debug("command", "cmd", cmd, "args", args, "chat_id", chatID)

	switch cmd {
	case "start":
		b.handleStart(ctx, chatID)
	case "help":
		b.handleHelp(chatID)
	case "login":
		b.handleLogin(ctx, chatID, args)
	case "signup":
		b.handleSignup(ctx, chatID, args)
	case "logout":
		b.handleLogout(ctx, chatID)
	case "all":
		b.handleAll(ctx, chatID)
	case "favorites":
		b.handleFavorites(ctx, chatID)
	case "mystories":
		b.handleMyStories(ctx, chatID)
	case "story":
		b.handleStory(ctx, chatID, args)
	case "submit":
		b.handleSubmit(ctx, chatID, args)
	case "edit":
		b.handleEdit(ctx, chatID, args)
	case "delete":
		b.handleDeleteConfirm(ctx, chatID, args)
	case "fav":
		b.handleFavorite(ctx, chatID, args)
	case "unfav":
		b.handleUnfavorite(ctx, chatID, args)
	case "search":
		b.handleSearch(ctx, chatID, args)
	case "import":
		b.handleImport(ctx, chatID, args)
	default:
		b.reply(chatID, "Unknown command. Use /help for the command reference.")
	}
}
