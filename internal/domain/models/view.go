package models

import "fmt"

// View names a predicate-based subset of the owner's items.
type View string

const (
	ViewAll     View = "all"
	ViewStarred View = "starred"
	ViewShared  View = "shared"
	ViewTrash   View = "trash"
	ViewRecent  View = "recent"
)

// ParseView validates a view name from a query parameter. An empty string
// defaults to the "all" view.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewAll, ViewStarred, ViewShared, ViewTrash, ViewRecent:
		return View(s), nil
	case "":
		return ViewAll, nil
	default:
		return "", fmt.Errorf("unknown view %q", s)
	}
}
