package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"story_bot/internal/api"
	"story_bot/internal/engine"
	"story_bot/internal/feed"
	"story_bot/internal/model"
)

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	b.reply(chatID, `Welcome to Story Bot!

Browse the shared story feed, submit your own links, and keep favorites.

Quick start:
1. /all — show the story feed
2. /signup <username> <password> <name> — create an account
3. /submit <title> | <author> | <url> — share a story

Use /help for the full command reference.`)
	b.showCurrent(ctx, chatID)
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, `Account:
/login <username> <password> — sign in
/signup <username> <password> <name> — create an account
/logout — sign out and forget stored credentials

Browsing:
/all — show the global story feed
/favorites — show your favorites
/mystories — show stories you submitted
/story <id> — show one story with actions
/search <text> — search the feed by title, author, or submitter

Stories:
/submit <title> | <author> | <url> — share a new story
/edit <id> <title> | <author> | <url> — update your story
/delete <id> — delete your story
/fav <id> — add a story to favorites
/unfav <id> — remove a story from favorites
/import <rss-url> [n] — submit the first n items of an RSS feed (default 3)`)
}

// showCurrent renders whichever view the chat last selected, the same way
// a page reload would.
func (b *Bot) showCurrent(ctx context.Context, chatID int64) {
	sess := b.session(ctx, chatID)

	view, err := b.engine.CurrentView(ctx, chatID)
	if err != nil {
		b.log.Warn("read current view", "chat_id", chatID, "error", err)
		view = model.ViewAll
	}
	if view != model.ViewAll && sess == nil {
		view = model.ViewAll
	}

	switch view {
	case model.ViewFavorites:
		if err := b.engine.RefreshUserData(ctx, sess); err != nil {
			b.reply(chatID, errorReply(err))
			return
		}
		b.renderList(chatID, view, sess.Favorites.Stories())
	case model.ViewMine:
		if err := b.engine.RefreshUserData(ctx, sess); err != nil {
			b.reply(chatID, errorReply(err))
			return
		}
		b.renderList(chatID, view, sess.OwnStories.Stories())
	default:
		stories, err := b.engine.FetchGlobalFeed(ctx)
		if err != nil {
			b.reply(chatID, errorReply(err))
			return
		}
		b.renderList(chatID, model.ViewAll, stories)
	}
}

// renderList sends a view's contents and records the fingerprint so the
// engine's follow-up change notifications do not repeat the message.
func (b *Bot) renderList(chatID int64, view model.View, stories []model.Story) {
	b.renderMu.Lock()
	b.rendered[fmt.Sprintf("%d:%s", chatID, view)] = listFingerprint(stories)
	b.renderMu.Unlock()

	b.reply(chatID, FormatStoryList(view, stories, b.sessions[chatID]))
}

func (b *Bot) handleLogin(ctx context.Context, chatID int64, args string) {
	username, password, err := ParseCredentials(args)
	if err != nil {
		b.reply(chatID, "Usage: /login <username> <password>")
		return
	}

	sess, err := b.engine.Login(ctx, chatID, username, password)
	if err != nil {
		b.reply(chatID, errorReply(err))
		return
	}
	b.sessions[chatID] = sess
	b.restored[chatID] = true

	b.reply(chatID, fmt.Sprintf("Signed in as %s.", sess.Username))
	b.showCurrent(ctx, chatID)
}

func (b *Bot) handleSignup(ctx context.Context, chatID int64, args string) {
	username, password, name, err := ParseSignup(args)
	if err != nil {
		b.reply(chatID, "Usage: /signup <username> <password> <name>")
		return
	}

	sess, err := b.engine.Signup(ctx, chatID, username, password, name)
	if err != nil {
		if errors.Is(err, api.ErrValidation) {
			b.reply(chatID, fmt.Sprintf("Username %q is already taken.", username))
			return
		}
		b.reply(chatID, errorReply(err))
		return
	}
	b.sessions[chatID] = sess
	b.restored[chatID] = true

	b.reply(chatID, fmt.Sprintf("Welcome, %s! You are signed in as %s.", sess.Name, sess.Username))
	b.showCurrent(ctx, chatID)
}

func (b *Bot) handleLogout(ctx context.Context, chatID int64) {
	sess := b.session(ctx, chatID)
	if sess == nil {
		b.reply(chatID, "You are not signed in.")
		return
	}

	if err := b.engine.Logout(ctx, sess); err != nil {
		b.reply(chatID, errorReply(err))
		return
	}
	delete(b.sessions, chatID)

	b.reply(chatID, "Signed out. Your stored credentials were forgotten.")
}

func (b *Bot) handleAll(ctx context.Context, chatID int64) {
	stories, err := b.engine.FetchGlobalFeed(ctx)
	if err != nil {
		b.reply(chatID, errorReply(err))
		return
	}
	if err := b.engine.Select(ctx, chatID, model.ViewAll); err != nil {
		b.log.Warn("select view", "chat_id", chatID, "error", err)
	}
	b.renderList(chatID, model.ViewAll, stories)
}

func (b *Bot) handleFavorites(ctx context.Context, chatID int64) {
	sess := b.session(ctx, chatID)
	if sess == nil {
		b.reply(chatID, "Sign in to see your favorites. Use /login or /signup.")
		return
	}

	if err := b.engine.RefreshUserData(ctx, sess); err != nil {
		b.reply(chatID, errorReply(err))
		return
	}
	if err := b.engine.Select(ctx, chatID, model.ViewFavorites); err != nil {
		b.log.Warn("select view", "chat_id", chatID, "error", err)
	}
	b.renderList(chatID, model.ViewFavorites, sess.Favorites.Stories())
}

func (b *Bot) handleMyStories(ctx context.Context, chatID int64) {
	sess := b.session(ctx, chatID)
	if sess == nil {
		b.reply(chatID, "Sign in to see your stories. Use /login or /signup.")
		return
	}

	if err := b.engine.RefreshUserData(ctx, sess); err != nil {
		b.reply(chatID, errorReply(err))
		return
	}
	if err := b.engine.Select(ctx, chatID, model.ViewMine); err != nil {
		b.log.Warn("select view", "chat_id", chatID, "error", err)
	}
	b.renderList(chatID, model.ViewMine, sess.OwnStories.Stories())
}

func (b *Bot) handleStory(ctx context.Context, chatID int64, args string) {
	storyID, err := ParseStoryID(args)
	if err != nil {
		b.reply(chatID, "Usage: /story <id>")
		return
	}

	story, err := b.engine.Story(ctx, storyID)
	if err != nil {
		b.reply(chatID, errorReply(err))
		return
	}

	sess := b.session(ctx, chatID)
	msg := tgbotapi.NewMessage(chatID, FormatStoryDetail(story, sess))
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = storyKeyboard(story, sess)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send story detail", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) handleSubmit(ctx context.Context, chatID int64, args string) {
	draft, err := ParseStoryDraft(args)
	if err != nil {
		b.reply(chatID, "Usage: /submit <title> | <author> | <url>")
		return
	}

	sess := b.session(ctx, chatID)
	story, err := b.engine.AddStory(ctx, sess, draft)
	if err != nil {
		b.reply(chatID, errorReply(err))
		return
	}

	b.reply(chatID, fmt.Sprintf("Story submitted!\n%s", FormatStoryDetail(*story, sess)))
}

func (b *Bot) handleEdit(ctx context.Context, chatID int64, args string) {
	storyID, draft, err := ParseEditArgs(args)
	if err != nil {
		b.reply(chatID, "Usage: /edit <id> <title> | <author> | <url>")
		return
	}

	sess := b.session(ctx, chatID)
	if _, err := b.engine.UpdateStory(ctx, sess, storyID, draft); err != nil {
		b.reply(chatID, errorReply(err))
		return
	}
	if err := b.engine.RefreshUserData(ctx, sess); err != nil {
		b.log.Warn("refresh after edit", "chat_id", chatID, "error", err)
	}

	b.reply(chatID, fmt.Sprintf("Story %s updated.", storyID))
	b.showCurrent(ctx, chatID)
}

func (b *Bot) handleDeleteConfirm(ctx context.Context, chatID int64, args string) {
	storyID, err := ParseStoryID(args)
	if err != nil {
		b.reply(chatID, "Usage: /delete <id>")
		return
	}

	story, ok := b.engine.FeedStory(storyID)
	title := storyID
	if ok {
		title = story.Title
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Delete %q? This cannot be undone.", title))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Yes, delete", "delete:"+storyID),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", "noop:-"),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send delete confirmation", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) handleDelete(ctx context.Context, chatID int64, storyID string) {
	sess := b.session(ctx, chatID)
	if err := b.engine.DeleteStory(ctx, sess, storyID); err != nil {
		b.reply(chatID, errorReply(err))
		return
	}
	b.reply(chatID, fmt.Sprintf("Story %s deleted.", storyID))
}

func (b *Bot) handleFavorite(ctx context.Context, chatID int64, args string) {
	storyID, err := ParseStoryID(args)
	if err != nil {
		b.reply(chatID, "Usage: /fav <id>")
		return
	}

	sess := b.session(ctx, chatID)
	if err := b.engine.Favorite(ctx, sess, storyID); err != nil {
		b.reply(chatID, errorReply(err))
		return
	}
	b.reply(chatID, fmt.Sprintf("Added %s to favorites.", storyID))
}

func (b *Bot) handleUnfavorite(ctx context.Context, chatID int64, args string) {
	storyID, err := ParseStoryID(args)
	if err != nil {
		b.reply(chatID, "Usage: /unfav <id>")
		return
	}

	sess := b.session(ctx, chatID)
	if err := b.engine.Unfavorite(ctx, sess, storyID); err != nil {
		b.reply(chatID, errorReply(err))
		return
	}
	b.reply(chatID, fmt.Sprintf("Removed %s from favorites.", storyID))
}

func (b *Bot) handleSearch(ctx context.Context, chatID int64, args string) {
	query := strings.TrimSpace(args)
	if query == "" {
		b.reply(chatID, "Usage: /search <text>")
		return
	}

	var matched []model.Story
	needle := strings.ToLower(query)
	for _, s := range b.engine.FeedStories() {
		haystack := strings.ToLower(s.Title + " " + s.Author + " " + s.Username)
		if strings.Contains(haystack, needle) {
			matched = append(matched, s)
		}
	}

	b.reply(chatID, FormatSearchResults(query, matched, b.session(ctx, chatID)))
}

func (b *Bot) handleImport(ctx context.Context, chatID int64, args string) {
	feedURL, limit, err := ParseImportArgs(args)
	if err != nil {
		b.reply(chatID, "Usage: /import <rss-url> [n]")
		return
	}

	sess := b.session(ctx, chatID)
	if sess == nil {
		b.reply(chatID, errorReply(engine.ErrAuthRequired))
		return
	}

	parsed, err := b.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Failed to fetch feed: %v", err))
		return
	}

	drafts := feed.Drafts(parsed, limit)
	if len(drafts) == 0 {
		b.reply(chatID, "The feed has no usable items.")
		return
	}

	var submitted int
	for _, draft := range drafts {
		if _, err := b.engine.AddStory(ctx, sess, draft); err != nil {
			b.log.Warn("import story", "chat_id", chatID, "url", draft.URL, "error", err)
			continue
		}
		submitted++
	}

	b.reply(chatID, fmt.Sprintf("Imported %d of %d stories from %q.", submitted, len(drafts), parsed.Title))
}

// errorReply maps an engine or remote failure to a user-facing message.
func errorReply(err error) string {
	switch {
	case errors.Is(err, engine.ErrAuthRequired):
		return "You need to sign in first. Use /login or /signup."
	case errors.Is(err, api.ErrAuth):
		return "Wrong username or password."
	case errors.Is(err, api.ErrForbidden):
		return "That story belongs to someone else."
	case errors.Is(err, api.ErrNotFound):
		return "That story no longer exists."
	case errors.Is(err, api.ErrValidation):
		return fmt.Sprintf("The server rejected that request: %v", err)
	default:
		return "The story service is unreachable right now. Try again in a moment."
	}
}
