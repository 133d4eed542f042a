package engine

import (
	"context"
	"errors"
	"fmt"

	"story_bot/internal/api"
	"story_bot/internal/model"
	"story_bot/internal/state"
)

// Login authenticates against the remote service, persists the credential
// pair, and returns the populated session. Bad credentials surface as
// api.ErrAuth with no local state changed.
func (e *Engine) Login(ctx context.Context, chatID int64, username, password string) (*model.Session, error) {
	token, user, err := e.remote.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	sess := newSession(chatID, token, user)
	if err := e.persistCredentials(ctx, sess); err != nil {
		return nil, err
	}

	e.log.Info("logged in", "chat_id", chatID, "username", sess.Username)
	e.notifySession(sess)
	return sess, nil
}

// Signup registers a new account; same contract as Login. A taken
// username surfaces as api.ErrValidation.
func (e *Engine) Signup(ctx context.Context, chatID int64, username, password, name string) (*model.Session, error) {
	token, user, err := e.remote.Signup(ctx, username, password, name)
	if err != nil {
		return nil, err
	}

	sess := newSession(chatID, token, user)
	if err := e.persistCredentials(ctx, sess); err != nil {
		return nil, err
	}

	e.log.Info("signed up", "chat_id", chatID, "username", sess.Username)
	e.notifySession(sess)
	return sess, nil
}

// Logout removes all persisted state for the chat, including the view
// selection. No remote call; the session value must be discarded by the
// caller.
func (e *Engine) Logout(ctx context.Context, sess *model.Session) error {
	if sess == nil {
		return ErrAuthRequired
	}
	if err := e.state.Clear(ctx, sess.ChatID); err != nil {
		return fmt.Errorf("clear persisted state: %w", err)
	}
	e.log.Info("logged out", "chat_id", sess.ChatID, "username", sess.Username)
	return nil
}

// Restore rebuilds a session from persisted credentials. Absent
// credentials return (nil, nil): not signed in, not an error. Credentials
// the server no longer accepts are cleared and also read as absent.
// Transient failures propagate without clearing, so a network blip does
// not sign the user out.
func (e *Engine) Restore(ctx context.Context, chatID int64) (*model.Session, error) {
	token, okToken, err := e.state.Get(ctx, chatID, state.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	username, okUser, err := e.state.Get(ctx, chatID, state.KeyUsername)
	if err != nil {
		return nil, fmt.Errorf("read username: %w", err)
	}
	if !okToken || !okUser {
		return nil, nil
	}

	user, err := e.remote.GetUser(ctx, token, username)
	if err != nil {
		if errors.Is(err, api.ErrAuth) || errors.Is(err, api.ErrForbidden) {
			e.log.Info("stored credentials rejected", "chat_id", chatID, "username", username)
			if clearErr := e.clearCredentials(ctx, chatID); clearErr != nil {
				e.log.Warn("clear stale credentials", "chat_id", chatID, "error", clearErr)
			}
			return nil, nil
		}
		return nil, err
	}

	sess := newSession(chatID, token, user)
	e.log.Info("session restored", "chat_id", chatID, "username", sess.Username)
	return sess, nil
}

func newSession(chatID int64, token string, user *model.User) *model.Session {
	return &model.Session{
		ChatID:     chatID,
		Username:   user.Username,
		Name:       user.Name,
		Token:      token,
		OwnStories: model.NewCollection(user.Stories...),
		Favorites:  model.NewCollection(user.Favorites...),
	}
}

func (e *Engine) persistCredentials(ctx context.Context, sess *model.Session) error {
	if sess == nil {
		return nil
	}
	if err := e.state.Set(ctx, sess.ChatID, state.KeyToken, sess.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if err := e.state.Set(ctx, sess.ChatID, state.KeyUsername, sess.Username); err != nil {
		return fmt.Errorf("persist username: %w", err)
	}
	return nil
}

func (e *Engine) clearCredentials(ctx context.Context, chatID int64) error {
	if err := e.state.Delete(ctx, chatID, state.KeyToken); err != nil {
		return err
	}
	return e.state.Delete(ctx, chatID, state.KeyUsername)
}
