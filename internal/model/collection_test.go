package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func story(id, title string) Story {
	return Story{StoryID: id, Title: title, Author: "a", URL: "https://example.com/" + id, Username: "alice"}
}

func titles(stories []Story) []string {
	var out []string
	for _, s := range stories {
		out = append(out, s.Title)
	}
	return out
}

func TestCollectionAdd(t *testing.T) {
	tests := []struct {
		name       string
		add        []Story
		wantTitles []string
	}{
		{
			name:       "insertion order kept",
			add:        []Story{story("s1", "First"), story("s2", "Second"), story("s3", "Third")},
			wantTitles: []string{"First", "Second", "Third"},
		},
		{
			name:       "duplicate id refreshes snapshot in place",
			add:        []Story{story("s1", "Old"), story("s2", "Second"), story("s1", "New")},
			wantTitles: []string{"New", "Second"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollection(tt.add...)
			if diff := cmp.Diff(tt.wantTitles, titles(c.Stories())); diff != "" {
				t.Errorf("stories mismatch (-want +got):\n%s", diff)
			}
			if c.Len() != len(tt.wantTitles) {
				t.Errorf("Len() = %d, want %d", c.Len(), len(tt.wantTitles))
			}
		})
	}
}

func TestCollectionMembershipByID(t *testing.T) {
	c := NewCollection(story("s1", "First"))

	// membership is by id, not by field equality
	stale := story("s1", "Renamed Since Fetch")
	if !c.Contains(stale.StoryID) {
		t.Error("expected membership by id despite stale fields")
	}
	if c.Contains("s2") {
		t.Error("unexpected membership for unknown id")
	}
}

func TestCollectionRemove(t *testing.T) {
	c := NewCollection(story("s1", "First"), story("s2", "Second"), story("s3", "Third"))

	if !c.Remove("s2") {
		t.Fatal("Remove(s2) = false, want true")
	}
	if c.Remove("s2") {
		t.Fatal("second Remove(s2) = true, want false")
	}

	want := []string{"First", "Third"}
	if diff := cmp.Diff(want, titles(c.Stories())); diff != "" {
		t.Errorf("stories mismatch (-want +got):\n%s", diff)
	}

	// index must stay consistent after the shift
	if got, ok := c.Get("s3"); !ok || got.Title != "Third" {
		t.Errorf("Get(s3) = %+v, %v after removal", got, ok)
	}
}

func TestCollectionReplace(t *testing.T) {
	c := NewCollection(story("s1", "First"), story("s2", "Second"))

	updated := story("s1", "Updated")
	if !c.Replace(updated) {
		t.Fatal("Replace = false, want true")
	}
	want := []string{"Updated", "Second"}
	if diff := cmp.Diff(want, titles(c.Stories())); diff != "" {
		t.Errorf("stories mismatch (-want +got):\n%s", diff)
	}

	if c.Replace(story("s9", "Ghost")) {
		t.Error("Replace of non-member = true, want false")
	}
	if c.Contains("s9") {
		t.Error("Replace of non-member must not insert")
	}
}

func TestNilCollection(t *testing.T) {
	var c *Collection
	if c.Contains("s1") || c.Len() != 0 || c.Stories() != nil {
		t.Error("nil collection must behave as empty")
	}
}
