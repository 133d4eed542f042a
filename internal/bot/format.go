package bot

import (
	"fmt"
	"strings"

	"story_bot/internal/model"
)

func viewHeading(view model.View) string {
	switch view {
	case model.ViewFavorites:
		return "Favorites"
	case model.ViewMine:
		return "My Stories"
	default:
		return "Stories"
	}
}

func emptyListMessage(view model.View) string {
	switch view {
	case model.ViewFavorites:
		return "You haven't added any favorites yet."
	case model.ViewMine:
		return "You haven't submitted any stories yet. Try /submit!"
	default:
		return "No stories available. Try submitting one!"
	}
}

// FormatStoryList formats a collection for display. Favorites of the
// signed-in user are starred, own stories are marked.
func FormatStoryList(view model.View, stories []model.Story, sess *model.Session) string {
	if len(stories) == 0 {
		return emptyListMessage(view)
	}

	var b strings.Builder
	b.WriteString(viewHeading(view))
	b.WriteString(":\n")
	for _, s := range stories {
		fmt.Fprintf(&b, "\n%s %s[%s] %s (%s)\n", favoriteMark(s, sess), ownMark(s, sess), s.StoryID, s.Title, s.Hostname())
		fmt.Fprintf(&b, "   by %s, posted by %s\n", s.Author, s.Username)
	}
	return b.String()
}

// FormatStoryDetail formats a single story for the /story view.
func FormatStoryDetail(s model.Story, sess *model.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s[%s] %s\n", favoriteMark(s, sess), ownMark(s, sess), s.StoryID, s.Title)
	fmt.Fprintf(&b, "URL: %s\n", s.URL)
	fmt.Fprintf(&b, "Author: %s\n", s.Author)
	fmt.Fprintf(&b, "Posted by: %s\n", s.Username)
	if !s.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Posted at: %s\n", s.CreatedAt.Format("2006-01-02 15:04 UTC"))
	}
	if sess.Owns(s.StoryID) {
		b.WriteString("\nThis is your story. /edit " + s.StoryID + " <title> | <author> | <url> to change it.")
	}
	return b.String()
}

// FormatSearchResults formats the stories matching a /search query.
func FormatSearchResults(query string, stories []model.Story, sess *model.Session) string {
	if len(stories) == 0 {
		return fmt.Sprintf("No stories match %q.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stories matching %q:\n", query)
	for _, s := range stories {
		fmt.Fprintf(&b, "\n%s %s[%s] %s (%s)\n", favoriteMark(s, sess), ownMark(s, sess), s.StoryID, s.Title, s.Hostname())
		fmt.Fprintf(&b, "   by %s, posted by %s\n", s.Author, s.Username)
	}
	return b.String()
}

func favoriteMark(s model.Story, sess *model.Session) string {
	if sess.IsFavorite(s.StoryID) {
		return "★"
	}
	return "☆"
}

func ownMark(s model.Story, sess *model.Session) string {
	if sess.Owns(s.StoryID) {
		return "(mine) "
	}
	return ""
}
