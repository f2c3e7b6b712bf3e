package wm

import (
	"context"
	"os"
	"time"

	"github.com/cockroachdb/errors"

	"scratchmenu/pkg/logger"
)

// Manager handles window management operations based on the session type
type Manager struct {
	wm WindowManager
}

// NewManager creates a new window manager based on the session type
func NewManager(swaymsg string, timeout time.Duration, log *logger.Logger) (*Manager, error) {
	return newManager(os.Getenv, swaymsg, timeout, log)
}

func newManager(getenv func(string) string, swaymsg string, timeout time.Duration, log *logger.Logger) (*Manager, error) {
	sessionType := getenv("XDG_SESSION_TYPE")
	log.Debug("Session type detected", "session", sessionType)

	socket := getenv("SWAYSOCK")
	if socket == "" {
		if sessionType != "" && sessionType != "wayland" {
			return nil, errors.Wrapf(ErrUnsupportedSession, "session type %q", sessionType)
		}
		return nil, errors.Wrap(ErrUnsupportedSession, "SWAYSOCK is not set")
	}

	log.Debug("Initializing compositor support", "type", "sway", "socket", socket)
	sway, err := NewSway(swaymsg, timeout, log)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize sway support")
	}

	log.Debug("Window manager initialized", "name", sway.Name())
	return &Manager{wm: sway}, nil
}

// Tree wraps the underlying window manager's Tree method
func (m *Manager) Tree(ctx context.Context) (*Node, error) {
	return m.wm.Tree(ctx)
}

// Workspaces wraps the underlying window manager's Workspaces method
func (m *Manager) Workspaces(ctx context.Context) ([]Workspace, error) {
	return m.wm.Workspaces(ctx)
}

// Command wraps the underlying window manager's Command method
func (m *Manager) Command(ctx context.Context, entry Entry, action string) error {
	return m.wm.Command(ctx, entry, action)
}

// Name returns the name of the current window manager
func (m *Manager) Name() string {
	return m.wm.Name()
}
