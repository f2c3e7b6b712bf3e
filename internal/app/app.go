package app

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"scratchmenu/internal/wm"
	"scratchmenu/pkg/config"
	"scratchmenu/pkg/logger"
)

// Scope selects which windows end up in the menu.
type Scope string

const (
	// ScopeTree lists every window of the scene graph.
	ScopeTree Scope = "tree"
	// ScopeWorkspace lists the windows of the focused workspace.
	ScopeWorkspace Scope = "workspace"
)

var ErrNoEntries = errors.New("no windows to choose from")

// Selector shows a list and returns the user's pick, "" when cancelled.
type Selector interface {
	Show(ctx context.Context, items []string) (string, error)
}

type Options struct {
	// Action is the sway command run on the selection.
	Action string
	// Unique collapses duplicate labels, keeping the first.
	Unique bool
}

// Launcher wires the window manager to the menu.
type Launcher struct {
	wm     wm.WindowManager
	menu   Selector
	log    *logger.Logger
	action string
	unique bool
}

func NewLauncher(windowManager wm.WindowManager, menu Selector, log *logger.Logger, opts Options) *Launcher {
	action := opts.Action
	if action == "" {
		action = config.DefaultAction
	}
	return &Launcher{
		wm:     windowManager,
		menu:   menu,
		log:    log,
		action: action,
		unique: opts.Unique,
	}
}

// Entries queries the window manager and returns the menu entries for scope.
func (l *Launcher) Entries(ctx context.Context, scope Scope) ([]wm.Entry, error) {
	var entries []wm.Entry

	switch scope {
	case ScopeTree, "":
		root, err := l.wm.Tree(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "query window tree")
		}
		entries = wm.Collect(root)
	case ScopeWorkspace:
		workspaces, err := l.wm.Workspaces(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "query workspaces")
		}
		focused, err := wm.FocusedWorkspace(workspaces)
		if err != nil {
			return nil, err
		}
		l.log.Debug("Using focused workspace",
			"workspace", focused.Name,
			"representation", focused.Representation)
		entries = wm.RepresentationEntries(focused.Representation)
	default:
		return nil, errors.Newf("unknown scope %q", scope)
	}

	if l.unique {
		entries = lo.UniqBy(entries, func(e wm.Entry) string {
			return e.Label
		})
	}

	l.log.Debug("Collected entries", "scope", string(scope), "count", len(entries))
	return entries, nil
}

// Run shows the menu and applies the action to the selected window.
func (l *Launcher) Run(ctx context.Context, scope Scope) error {
	l.log.Debug("Starting launcher", "wm", l.wm.Name(), "scope", string(scope), "action", l.action)

	entries, err := l.Entries(ctx, scope)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errors.WithStack(ErrNoEntries)
	}

	selected, err := l.menu.Show(ctx, wm.Labels(entries))
	if err != nil {
		return errors.Wrap(err, "show menu")
	}
	if selected == "" {
		l.log.Info("Nothing selected")
		return nil
	}

	entry := resolveSelection(entries, selected)
	l.log.Info("Selected window", "label", entry.Label, "field", string(entry.Field))

	if err := l.wm.Command(ctx, entry, l.action); err != nil {
		return errors.Wrapf(err, "%s %s", entry.Criteria(), l.action)
	}
	return nil
}

// List writes the labels for scope, one per line.
func (l *Launcher) List(ctx context.Context, scope Scope, w io.Writer) error {
	entries, err := l.Entries(ctx, scope)
	if err != nil {
		return err
	}
	for _, label := range wm.Labels(entries) {
		if _, err := fmt.Fprintln(w, label); err != nil {
			return errors.Wrap(err, "write entry")
		}
	}
	return nil
}

// resolveSelection maps the menu output back to its entry. Text the user
// typed that matches no entry is taken as an app_id.
func resolveSelection(entries []wm.Entry, selected string) wm.Entry {
	entry, ok := lo.Find(entries, func(e wm.Entry) bool {
		return e.Label == selected
	})
	if !ok {
		return wm.Entry{Label: selected, Field: wm.FieldAppID}
	}
	return entry
}
