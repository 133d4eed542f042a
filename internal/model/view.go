package model

// View names which collection is the current display target.
type View string

// Supported views. The string values are also the persisted form.
const (
	ViewAll       View = "main"
	ViewFavorites View = "favorites"
	ViewMine      View = "myStories"
)

// ParseView maps a persisted string to a View. Unknown or empty values
// fall back to ViewAll, so a missing or drifted stored value is never
// an error.
func ParseView(s string) View {
	switch View(s) {
	case ViewFavorites:
		return ViewFavorites
	case ViewMine:
		return ViewMine
	default:
		return ViewAll
	}
}
