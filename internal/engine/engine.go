// Package engine keeps the local story collections consistent with the
// remote service and with what the user last chose to view. Mutations on
// the signed-in user's collections are applied optimistically, confirmed
// remotely, and rolled back on failure.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"story_bot/internal/model"
	"story_bot/internal/state"
)

// ErrAuthRequired means the operation needs a signed-in session and none
// was supplied.
var ErrAuthRequired = errors.New("sign in required")

// Remote is the interface to the story service consumed by the engine.
type Remote interface {
	Login(ctx context.Context, username, password string) (string, *model.User, error)
	Signup(ctx context.Context, username, password, name string) (string, *model.User, error)
	GetUser(ctx context.Context, token, username string) (*model.User, error)
	ListStories(ctx context.Context) ([]model.Story, error)
	GetStory(ctx context.Context, storyID string) (*model.Story, error)
	CreateStory(ctx context.Context, token string, draft model.StoryDraft) (*model.Story, error)
	UpdateStory(ctx context.Context, token, storyID string, draft model.StoryDraft) (*model.Story, error)
	DeleteStory(ctx context.Context, token, storyID string) error
	AddFavorite(ctx context.Context, token, username, storyID string) error
	RemoveFavorite(ctx context.Context, token, username, storyID string) error
}

// Notifier receives the identity and contents of a collection after the
// engine has changed it. The rendering layer implements it to re-draw.
// ChatID 0 marks changes with no originating chat (background refresh).
type Notifier interface {
	CollectionChanged(chatID int64, view model.View, stories []model.Story)
}

// Engine is the synchronization engine. One instance serves all chats;
// the global feed is shared, sessions are per chat.
type Engine struct {
	remote Remote
	state  state.Store
	log    *slog.Logger

	notifier Notifier

	feedMu sync.Mutex
	feed   *model.Collection

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// New creates an Engine on top of the given remote client and state store.
func New(remote Remote, st state.Store, log *slog.Logger) *Engine {
	return &Engine{
		remote: remote,
		state:  st,
		log:    log,
		feed:   model.NewCollection(),
		locks:  make(map[string]*sync.Mutex),
	}
}

// SetNotifier registers the rendering layer. May be nil.
func (e *Engine) SetNotifier(n Notifier) {
	e.notifier = n
}

// FetchGlobalFeed fetches the full story feed and replaces the cached
// global collection wholesale, returning its contents in server order.
func (e *Engine) FetchGlobalFeed(ctx context.Context) ([]model.Story, error) {
	stories, err := e.remote.ListStories(ctx)
	if err != nil {
		return nil, err
	}

	e.feedMu.Lock()
	e.feed = model.NewCollection(stories...)
	out := e.feed.Stories()
	e.feedMu.Unlock()

	e.notify(0, model.ViewAll, out)
	return out, nil
}

// FeedStories returns the cached global feed in order.
func (e *Engine) FeedStories() []model.Story {
	e.feedMu.Lock()
	defer e.feedMu.Unlock()
	return e.feed.Stories()
}

// FeedStory looks a story up in the cached global feed.
func (e *Engine) FeedStory(storyID string) (model.Story, bool) {
	e.feedMu.Lock()
	defer e.feedMu.Unlock()
	return e.feed.Get(storyID)
}

// Select persists the chat's chosen view. Pure local state, no remote call.
func (e *Engine) Select(ctx context.Context, chatID int64, view model.View) error {
	if err := e.state.Set(ctx, chatID, state.KeyCurrentPage, string(view)); err != nil {
		return fmt.Errorf("persist view selection: %w", err)
	}
	return nil
}

// CurrentView reads the chat's persisted view selection, defaulting to
// the global feed when absent.
func (e *Engine) CurrentView(ctx context.Context, chatID int64) (model.View, error) {
	value, ok, err := e.state.Get(ctx, chatID, state.KeyCurrentPage)
	if err != nil {
		return model.ViewAll, fmt.Errorf("read view selection: %w", err)
	}
	if !ok {
		return model.ViewAll, nil
	}
	return model.ParseView(value), nil
}

// storyLock serializes operations on a single story, so a double intent
// (e.g. a double-tapped favorite button) cannot interleave with an
// in-flight remote confirmation.
func (e *Engine) storyLock(storyID string) *sync.Mutex {
	e.locksMu.Lock()
	defer e.locksMu.Unlock()
	mu, ok := e.locks[storyID]
	if !ok {
		mu = &sync.Mutex{}
		e.locks[storyID] = mu
	}
	return mu
}

func (e *Engine) notify(chatID int64, view model.View, stories []model.Story) {
	if e.notifier != nil {
		e.notifier.CollectionChanged(chatID, view, stories)
	}
}

func (e *Engine) notifySession(sess *model.Session) {
	e.notify(sess.ChatID, model.ViewMine, sess.OwnStories.Stories())
	e.notify(sess.ChatID, model.ViewFavorites, sess.Favorites.Stories())
}
