package wm

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// layoutMarker matches the split/stack/tab openers and the closing bracket
// of a workspace representation such as "H[firefox V[foot foot]]".
var layoutMarker = regexp.MustCompile(`[HVST]\[|\]`)

// ParseRepresentation returns the application ids of a representation
// string in layout order.
func ParseRepresentation(representation string) []string {
	return strings.Fields(layoutMarker.ReplaceAllString(representation, " "))
}

// RepresentationEntries turns a representation into app_id menu entries.
func RepresentationEntries(representation string) []Entry {
	return lo.Map(ParseRepresentation(representation), func(id string, _ int) Entry {
		return Entry{Label: id, Field: FieldAppID}
	})
}

// FocusedWorkspace returns the workspace that has focus.
func FocusedWorkspace(workspaces []Workspace) (Workspace, error) {
	ws, ok := lo.Find(workspaces, func(w Workspace) bool {
		return w.Focused
	})
	if !ok {
		return Workspace{}, errors.WithStack(ErrNoFocusedWorkspace)
	}
	return ws, nil
}
