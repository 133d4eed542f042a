package bot

import (
	"strings"
	"testing"

	"story_bot/internal/model"
)

func testSession() *model.Session {
	return &model.Session{
		ChatID:   100,
		Username: "alice",
		OwnStories: model.NewCollection(
			model.Story{StoryID: "s2", Title: "Mine", URL: "https://b.example.com/x", Username: "alice"},
		),
		Favorites: model.NewCollection(
			model.Story{StoryID: "s1", Title: "Liked", URL: "https://a.example.com/y", Username: "bob"},
		),
	}
}

func TestFormatStoryList(t *testing.T) {
	stories := []model.Story{
		{StoryID: "s1", Title: "Liked", Author: "B", URL: "https://a.example.com/y", Username: "bob"},
		{StoryID: "s2", Title: "Mine", Author: "A", URL: "https://b.example.com/x", Username: "alice"},
	}

	got := FormatStoryList(model.ViewAll, stories, testSession())

	if !strings.Contains(got, "★ [s1] Liked (a.example.com)") {
		t.Errorf("favorite not starred:\n%s", got)
	}
	if !strings.Contains(got, "☆ (mine) [s2] Mine (b.example.com)") {
		t.Errorf("own story not marked:\n%s", got)
	}
	if !strings.Contains(got, "by B, posted by bob") {
		t.Errorf("missing byline:\n%s", got)
	}
}

func TestFormatStoryListSignedOut(t *testing.T) {
	stories := []model.Story{
		{StoryID: "s1", Title: "Liked", Author: "B", URL: "https://a.example.com/y", Username: "bob"},
	}

	got := FormatStoryList(model.ViewAll, stories, nil)
	if !strings.Contains(got, "☆ [s1] Liked") {
		t.Errorf("signed-out list should use empty marks:\n%s", got)
	}
}

func TestFormatStoryListEmpty(t *testing.T) {
	tests := []struct {
		view model.View
		want string
	}{
		{model.ViewAll, "No stories available. Try submitting one!"},
		{model.ViewFavorites, "You haven't added any favorites yet."},
		{model.ViewMine, "You haven't submitted any stories yet. Try /submit!"},
	}

	for _, tt := range tests {
		if got := FormatStoryList(tt.view, nil, nil); got != tt.want {
			t.Errorf("FormatStoryList(%s, empty) = %q, want %q", tt.view, got, tt.want)
		}
	}
}

func TestFormatStoryDetail(t *testing.T) {
	sess := testSession()

	own := FormatStoryDetail(model.Story{StoryID: "s2", Title: "Mine", Author: "A", URL: "https://b.example.com/x", Username: "alice"}, sess)
	if !strings.Contains(own, "This is your story.") {
		t.Errorf("owner hint missing:\n%s", own)
	}

	other := FormatStoryDetail(model.Story{StoryID: "s1", Title: "Liked", Author: "B", URL: "https://a.example.com/y", Username: "bob"}, sess)
	if strings.Contains(other, "This is your story.") {
		t.Errorf("owner hint on foreign story:\n%s", other)
	}
	if !strings.Contains(other, "URL: https://a.example.com/y") {
		t.Errorf("missing URL line:\n%s", other)
	}
}
