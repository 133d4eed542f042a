package engine

import (
	"context"

	"story_bot/internal/model"
)

// Story fetches the freshest copy of a story from the remote service,
// bypassing the cached feed. Used before editing, so the form starts
// from current data rather than a possibly stale snapshot.
func (e *Engine) Story(ctx context.Context, storyID string) (model.Story, error) {
	s, err := e.remote.GetStory(ctx, storyID)
	if err != nil {
		return model.Story{}, err
	}
	return *s, nil
}

// RefreshUserData re-fetches the signed-in user's record and replaces the
// ownStories and favorites collections wholesale with the server's
// current membership lists. Idempotent; safe to call redundantly.
func (e *Engine) RefreshUserData(ctx context.Context, sess *model.Session) error {
	if sess == nil {
		return ErrAuthRequired
	}

	user, err := e.remote.GetUser(ctx, sess.Token, sess.Username)
	if err != nil {
		return err
	}

	sess.Name = user.Name
	sess.OwnStories = model.NewCollection(user.Stories...)
	sess.Favorites = model.NewCollection(user.Favorites...)

	e.notifySession(sess)
	return nil
}

// reconcile is the drift-repair refresh run after a favorite transition
// settles. The optimistic patch already matches the confirmed remote
// outcome, so a failure here is logged, not surfaced.
func (e *Engine) reconcile(ctx context.Context, sess *model.Session) {
	if err := e.RefreshUserData(ctx, sess); err != nil {
		e.log.Warn("reconcile user data", "chat_id", sess.ChatID, "username", sess.Username, "error", err)
	}
}

// Favorite adds the story to the session's favorites: optimistic insert,
// remote confirmation, rollback on failure, then a reconciling refresh.
// Favoriting an existing favorite is a no-op.
func (e *Engine) Favorite(ctx context.Context, sess *model.Session, storyID string) error {
	if sess == nil {
		return ErrAuthRequired
	}

	mu := e.storyLock(storyID)
	mu.Lock()
	defer mu.Unlock()

	if sess.Favorites.Contains(storyID) {
		return nil
	}

	story, ok := e.FeedStory(storyID)
	if !ok {
		fresh, err := e.remote.GetStory(ctx, storyID)
		if err != nil {
			return err
		}
		story = *fresh
	}

	sess.Favorites.Add(story)
	e.notify(sess.ChatID, model.ViewFavorites, sess.Favorites.Stories())

	if err := e.remote.AddFavorite(ctx, sess.Token, sess.Username, storyID); err != nil {
		sess.Favorites.Remove(storyID)
		e.notify(sess.ChatID, model.ViewFavorites, sess.Favorites.Stories())
		e.reconcile(ctx, sess)
		return err
	}

	e.reconcile(ctx, sess)
	return nil
}

// Unfavorite removes the story from the session's favorites with the same
// optimistic-then-confirm contract as Favorite. Unfavoriting a
// non-favorite is a no-op.
func (e *Engine) Unfavorite(ctx context.Context, sess *model.Session, storyID string) error {
	if sess == nil {
		return ErrAuthRequired
	}

	mu := e.storyLock(storyID)
	mu.Lock()
	defer mu.Unlock()

	story, ok := sess.Favorites.Get(storyID)
	if !ok {
		return nil
	}

	sess.Favorites.Remove(storyID)
	e.notify(sess.ChatID, model.ViewFavorites, sess.Favorites.Stories())

	if err := e.remote.RemoveFavorite(ctx, sess.Token, sess.Username, storyID); err != nil {
		// re-insert; the reconcile restores the server's ordering
		sess.Favorites.Add(story)
		e.notify(sess.ChatID, model.ViewFavorites, sess.Favorites.Stories())
		e.reconcile(ctx, sess)
		return err
	}

	e.reconcile(ctx, sess)
	return nil
}

// AddStory submits a new story. The server-assigned record is appended to
// the global feed and to the session's ownStories.
func (e *Engine) AddStory(ctx context.Context, sess *model.Session, draft model.StoryDraft) (*model.Story, error) {
	if sess == nil {
		return nil, ErrAuthRequired
	}

	story, err := e.remote.CreateStory(ctx, sess.Token, draft)
	if err != nil {
		return nil, err
	}

	e.feedMu.Lock()
	e.feed.Add(*story)
	feed := e.feed.Stories()
	e.feedMu.Unlock()

	sess.OwnStories.Add(*story)

	e.log.Info("story added", "chat_id", sess.ChatID, "story_id", story.StoryID)
	e.notify(sess.ChatID, model.ViewAll, feed)
	e.notify(sess.ChatID, model.ViewMine, sess.OwnStories.Stories())
	return story, nil
}

// UpdateStory replaces a story's fields. Ownership is enforced remotely;
// a rejection leaves local state untouched. On success the returned
// record replaces the story in every collection that holds it.
func (e *Engine) UpdateStory(ctx context.Context, sess *model.Session, storyID string, draft model.StoryDraft) (*model.Story, error) {
	if sess == nil {
		return nil, ErrAuthRequired
	}

	mu := e.storyLock(storyID)
	mu.Lock()
	defer mu.Unlock()

	updated, err := e.remote.UpdateStory(ctx, sess.Token, storyID, draft)
	if err != nil {
		return nil, err
	}

	e.feedMu.Lock()
	e.feed.Replace(*updated)
	feed := e.feed.Stories()
	e.feedMu.Unlock()

	sess.OwnStories.Replace(*updated)
	sess.Favorites.Replace(*updated)

	e.log.Info("story updated", "chat_id", sess.ChatID, "story_id", storyID)
	e.notify(sess.ChatID, model.ViewAll, feed)
	e.notifySession(sess)
	return updated, nil
}

// DeleteStory removes a story everywhere it appears. The remote delete is
// confirmed first; local collections are only touched on success, so a
// failed delete cannot leave local and remote state diverged.
func (e *Engine) DeleteStory(ctx context.Context, sess *model.Session, storyID string) error {
	if sess == nil {
		return ErrAuthRequired
	}

	mu := e.storyLock(storyID)
	mu.Lock()
	defer mu.Unlock()

	if err := e.remote.DeleteStory(ctx, sess.Token, storyID); err != nil {
		return err
	}

	e.feedMu.Lock()
	e.feed.Remove(storyID)
	feed := e.feed.Stories()
	e.feedMu.Unlock()

	sess.OwnStories.Remove(storyID)
	sess.Favorites.Remove(storyID)

	e.log.Info("story deleted", "chat_id", sess.ChatID, "story_id", storyID)
	e.notify(sess.ChatID, model.ViewAll, feed)
	e.notifySession(sess)
	return nil
}
