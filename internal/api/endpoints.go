package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"story_bot/internal/model"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type authRequest struct {
	User credentials `json:"user"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type userResponse struct {
	User *model.User `json:"user"`
}

type storyResponse struct {
	Story *model.Story `json:"story"`
}

type storiesResponse struct {
	Stories []model.Story `json:"stories"`
}

type storyRequest struct {
	Token string           `json:"token"`
	Story model.StoryDraft `json:"story"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

// Login authenticates and returns the bearer token plus the user record.
func (c *Client) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	var resp authResponse
	req := authRequest{User: credentials{Username: username, Password: password}}
	if err := c.call(ctx, http.MethodPost, "/login", nil, req, &resp); err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	return resp.Token, resp.User, nil
}

// Signup registers a new account and returns its token and user record.
func (c *Client) Signup(ctx context.Context, username, password, name string) (string, *model.User, error) {
	var resp authResponse
	req := authRequest{User: credentials{Username: username, Password: password, Name: name}}
	if err := c.call(ctx, http.MethodPost, "/signup", nil, req, &resp); err != nil {
		return "", nil, fmt.Errorf("signup: %w", err)
	}
	return resp.Token, resp.User, nil
}

// GetUser fetches the account record, including owned and favorited stories.
func (c *Client) GetUser(ctx context.Context, token, username string) (*model.User, error) {
	var resp userResponse
	path := "/users/" + url.PathEscape(username)
	if err := c.call(ctx, http.MethodGet, path, tokenQuery(token), nil, &resp); err != nil {
		return nil, fmt.Errorf("get user %s: %w", username, err)
	}
	return resp.User, nil
}

// ListStories fetches the full global feed in server order.
func (c *Client) ListStories(ctx context.Context) ([]model.Story, error) {
	var resp storiesResponse
	if err := c.call(ctx, http.MethodGet, "/stories", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	return resp.Stories, nil
}

// GetStory fetches a single story by ID.
func (c *Client) GetStory(ctx context.Context, storyID string) (*model.Story, error) {
	var resp storyResponse
	path := "/stories/" + url.PathEscape(storyID)
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get story %s: %w", storyID, err)
	}
	return resp.Story, nil
}

// CreateStory submits a new story and returns the server's record for it,
// with the assigned StoryID.
func (c *Client) CreateStory(ctx context.Context, token string, draft model.StoryDraft) (*model.Story, error) {
	var resp storyResponse
	req := storyRequest{Token: token, Story: draft}
	if err := c.call(ctx, http.MethodPost, "/stories", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}
	return resp.Story, nil
}

// UpdateStory replaces a story's fields and returns the updated record.
// The server rejects callers that do not own the story.
func (c *Client) UpdateStory(ctx context.Context, token, storyID string, draft model.StoryDraft) (*model.Story, error) {
	var resp storyResponse
	path := "/stories/" + url.PathEscape(storyID)
	req := storyRequest{Token: token, Story: draft}
	if err := c.call(ctx, http.MethodPatch, path, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("update story %s: %w", storyID, err)
	}
	return resp.Story, nil
}

// DeleteStory removes a story. The server rejects callers that do not own it.
func (c *Client) DeleteStory(ctx context.Context, token, storyID string) error {
	path := "/stories/" + url.PathEscape(storyID)
	if err := c.call(ctx, http.MethodDelete, path, nil, tokenRequest{Token: token}, nil); err != nil {
		return fmt.Errorf("delete story %s: %w", storyID, err)
	}
	return nil
}

// AddFavorite marks a story as a favorite of the given user.
func (c *Client) AddFavorite(ctx context.Context, token, username, storyID string) error {
	path := "/users/" + url.PathEscape(username) + "/favorites/" + url.PathEscape(storyID)
	if err := c.call(ctx, http.MethodPost, path, nil, tokenRequest{Token: token}, nil); err != nil {
		return fmt.Errorf("add favorite %s: %w", storyID, err)
	}
	return nil
}

// RemoveFavorite removes a story from the given user's favorites.
func (c *Client) RemoveFavorite(ctx context.Context, token, username, storyID string) error {
	path := "/users/" + url.PathEscape(username) + "/favorites/" + url.PathEscape(storyID)
	if err := c.call(ctx, http.MethodDelete, path, nil, tokenRequest{Token: token}, nil); err != nil {
		return fmt.Errorf("remove favorite %s: %w", storyID, err)
	}
	return nil
}
