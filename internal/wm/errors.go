package wm

import "github.com/cockroachdb/errors"

var (
	ErrUnsupportedSession = errors.New("unsupported session: sway is required")
	ErrCommandFailed      = errors.New("sway command failed")
	ErrInvalidReply       = errors.New("invalid swaymsg reply")
	ErrNoFocusedWorkspace = errors.New("no focused workspace")
)
