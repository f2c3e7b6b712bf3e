package wm

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

type WindowManager interface {
	// Tree returns the root of the scene graph
	Tree(ctx context.Context) (*Node, error)
	// Workspaces returns the workspace list
	Workspaces(ctx context.Context) ([]Workspace, error)
	// Command runs action against the windows matching entry
	Command(ctx context.Context, entry Entry, action string) error
	// Name returns the WM name for logging/display
	Name() string
}

// Field is the criterion a menu entry selects windows by.
type Field string

const (
	FieldAppID Field = "app_id"
	FieldTitle Field = "title"
)

// Entry is one line of the menu.
type Entry struct {
	Label string
	Field Field
}

// Criteria renders the entry as a sway criteria block, e.g. [app_id="^foot$"].
// Sway matches criteria values as unanchored regexes, so the label is
// quoted and anchored to select exactly that window.
func (e Entry) Criteria() string {
	field := e.Field
	if field == "" {
		field = FieldAppID
	}
	return fmt.Sprintf(`[%s="%s"]`, field, escapeCriterion("^"+regexp.QuoteMeta(e.Label)+"$"))
}

var criterionEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeCriterion(v string) string {
	return criterionEscaper.Replace(v)
}
