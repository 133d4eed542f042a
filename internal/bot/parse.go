package bot

import (
	"fmt"
	"strconv"
	"strings"

	"story_bot/internal/model"
)

const (
	defaultImportLimit = 3
	maxImportLimit     = 10
)

// ParseCredentials extracts a username and password from command arguments.
func ParseCredentials(args string) (string, string, error) {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("usage: <username> <password>")
	}
	return parts[0], parts[1], nil
}

// ParseSignup extracts a username, password, and display name. The name
// may contain spaces.
func ParseSignup(args string) (string, string, string, error) {
	parts := strings.Fields(args)
	if len(parts) < 3 {
		return "", "", "", fmt.Errorf("usage: <username> <password> <name>")
	}
	return parts[0], parts[1], strings.Join(parts[2:], " "), nil
}

// ParseStoryID extracts a story ID from a command argument string.
func ParseStoryID(args string) (string, error) {
	s := strings.TrimSpace(args)
	if s == "" {
		return "", fmt.Errorf("story ID is required")
	}
	return strings.Fields(s)[0], nil
}

// ParseStoryDraft parses "<title> | <author> | <url>" into a draft.
func ParseStoryDraft(args string) (model.StoryDraft, error) {
	parts := strings.Split(args, "|")
	if len(parts) != 3 {
		return model.StoryDraft{}, fmt.Errorf("usage: <title> | <author> | <url>")
	}
	draft := model.StoryDraft{
		Title:  strings.TrimSpace(parts[0]),
		Author: strings.TrimSpace(parts[1]),
		URL:    strings.TrimSpace(parts[2]),
	}
	if draft.Title == "" || draft.Author == "" || draft.URL == "" {
		return model.StoryDraft{}, fmt.Errorf("title, author, and url are all required")
	}
	return draft, nil
}

// ParseEditArgs parses "<id> <title> | <author> | <url>".
func ParseEditArgs(args string) (string, model.StoryDraft, error) {
	parts := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(parts) < 2 {
		return "", model.StoryDraft{}, fmt.Errorf("usage: <id> <title> | <author> | <url>")
	}
	draft, err := ParseStoryDraft(parts[1])
	if err != nil {
		return "", model.StoryDraft{}, err
	}
	return parts[0], draft, nil
}

// ParseImportArgs parses "<rss-url> [n]" with the item count clamped to
// a small maximum.
func ParseImportArgs(args string) (string, int, error) {
	parts := strings.Fields(args)
	if len(parts) < 1 || len(parts) > 2 {
		return "", 0, fmt.Errorf("usage: <rss-url> [n]")
	}
	if !strings.HasPrefix(parts[0], "http://") && !strings.HasPrefix(parts[0], "https://") {
		return "", 0, fmt.Errorf("invalid feed URL %q", parts[0])
	}

	limit := defaultImportLimit
	if len(parts) == 2 {
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 1 {
			return "", 0, fmt.Errorf("invalid item count %q", parts[1])
		}
		if n > maxImportLimit {
			n = maxImportLimit
		}
		limit = n
	}
	return parts[0], limit, nil
}
