package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseView(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want View
	}{
		{name: "main", in: "main", want: ViewAll},
		{name: "favorites", in: "favorites", want: ViewFavorites},
		{name: "my stories", in: "myStories", want: ViewMine},
		{name: "empty defaults to all", in: "", want: ViewAll},
		{name: "unknown defaults to all", in: "bogus", want: ViewAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseView(tt.in); got != tt.want {
				t.Errorf("ParseView(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHostname(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "plain host", url: "https://news.example.com/post/1", want: "news.example.com"},
		{name: "host with port", url: "http://localhost:8080/x", want: "localhost"},
		{name: "unparseable falls back to raw", url: "not a url", want: "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Story{URL: tt.url}
			if diff := cmp.Diff(tt.want, s.Hostname()); diff != "" {
				t.Errorf("Hostname mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSessionMembership(t *testing.T) {
	sess := &Session{
		Username:   "alice",
		OwnStories: NewCollection(story("s1", "Mine")),
		Favorites:  NewCollection(story("s2", "Starred")),
	}

	if !sess.Owns("s1") || sess.Owns("s2") {
		t.Error("Owns must reflect ownStories membership only")
	}
	if !sess.IsFavorite("s2") || sess.IsFavorite("s1") {
		t.Error("IsFavorite must reflect favorites membership only")
	}

	var none *Session
	if none.Owns("s1") || none.IsFavorite("s1") {
		t.Error("nil session owns and favorites nothing")
	}
}
