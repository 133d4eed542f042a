// Package model defines the domain types used across the application.
package model

import (
	"net/url"
	"time"
)

// Story is a single submitted link record. Identity is the server-assigned
// StoryID; all other fields are a snapshot and may go stale.
type Story struct {
	StoryID   string    `json:"storyId"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Hostname returns the host part of the story URL, or the raw URL if it
// cannot be parsed.
func (s Story) Hostname() string {
	u, err := url.Parse(s.URL)
	if err != nil || u.Host == "" {
		return s.URL
	}
	return u.Hostname()
}

// StoryDraft holds the user-provided fields of a story before the server
// has assigned it an identity.
type StoryDraft struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// User is the remote representation of an account, including its owned
// and favorited stories.
type User struct {
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Stories   []Story   `json:"stories"`
	Favorites []Story   `json:"favorites"`
}

// Session is an authenticated principal together with their owned and
// favorited collections. A nil *Session means nobody is signed in.
type Session struct {
	ChatID     int64
	Username   string
	Name       string
	Token      string
	OwnStories *Collection
	Favorites  *Collection
}

// Owns reports whether the signed-in user submitted the given story.
func (s *Session) Owns(storyID string) bool {
	return s != nil && s.OwnStories.Contains(storyID)
}

// IsFavorite reports whether the given story is in the user's favorites.
func (s *Session) IsFavorite(storyID string) bool {
	return s != nil && s.Favorites.Contains(storyID)
}
