package model

// Collection is an ordered set of stories, deduplicated by StoryID.
// Membership is decided by identity, never by field equality, since
// story fields are snapshots that can go stale independently.
type Collection struct {
	stories []Story
	index   map[string]int
}

// NewCollection builds a collection from the given stories, preserving
// order and dropping later duplicates of the same StoryID.
func NewCollection(stories ...Story) *Collection {
	c := &Collection{index: make(map[string]int, len(stories))}
	for _, s := range stories {
		c.Add(s)
	}
	return c
}

// Len returns the number of stories in the collection.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.stories)
}

// Contains reports whether a story with the given ID is a member.
func (c *Collection) Contains(storyID string) bool {
	if c == nil {
		return false
	}
	_, ok := c.index[storyID]
	return ok
}

// Get returns the member story with the given ID.
func (c *Collection) Get(storyID string) (Story, bool) {
	if c == nil {
		return Story{}, false
	}
	i, ok := c.index[storyID]
	if !ok {
		return Story{}, false
	}
	return c.stories[i], true
}

// Add appends the story. If a story with the same ID is already a member,
// its snapshot is refreshed in place and its position kept.
func (c *Collection) Add(s Story) {
	if i, ok := c.index[s.StoryID]; ok {
		c.stories[i] = s
		return
	}
	c.index[s.StoryID] = len(c.stories)
	c.stories = append(c.stories, s)
}

// Remove deletes the story with the given ID, preserving the order of the
// remaining stories. It reports whether a member was removed.
func (c *Collection) Remove(storyID string) bool {
	if c == nil {
		return false
	}
	i, ok := c.index[storyID]
	if !ok {
		return false
	}
	c.stories = append(c.stories[:i], c.stories[i+1:]...)
	delete(c.index, storyID)
	for j := i; j < len(c.stories); j++ {
		c.index[c.stories[j].StoryID] = j
	}
	return true
}

// Replace swaps the member with the same StoryID for the given snapshot,
// keeping its position. It reports whether the story was a member.
func (c *Collection) Replace(s Story) bool {
	if c == nil {
		return false
	}
	i, ok := c.index[s.StoryID]
	if !ok {
		return false
	}
	c.stories[i] = s
	return true
}

// Stories returns the members in order. The returned slice is a copy.
func (c *Collection) Stories() []Story {
	if c == nil || len(c.stories) == 0 {
		return nil
	}
	out := make([]Story, len(c.stories))
	copy(out, c.stories)
	return out
}
