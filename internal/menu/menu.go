package menu

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"unicode/utf8"

	"al.essio.dev/pkg/shellescape"
	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"

	"scratchmenu/pkg/logger"
)

var (
	ErrNoMenu        = errors.New("no menu program found")
	ErrInvalidOutput = errors.New("menu output is not valid UTF-8")
)

// cancelExitCode is what dmenu-style selectors return on Escape.
const cancelExitCode = 1

// candidates are tried in order when no menu is configured.
var candidates = [][]string{
	{"bemenu"},
	{"wmenu"},
	{"fuzzel", "--dmenu"},
	{"wofi", "--dmenu"},
	{"rofi", "-dmenu"},
	{"dmenu"},
}

// Menu runs a dmenu-compatible selector.
type Menu struct {
	bin  string
	args []string
	log  *logger.Logger
	run  func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// New builds a Menu from a command line such as `bemenu -i -p "jump to"`.
// An empty command picks the first installed candidate.
func New(command string, log *logger.Logger) (*Menu, error) {
	return newMenu(command, exec.LookPath, log)
}

func newMenu(command string, lookPath func(string) (string, error), log *logger.Logger) (*Menu, error) {
	if strings.TrimSpace(command) == "" {
		for _, c := range candidates {
			path, err := lookPath(c[0])
			if err != nil {
				continue
			}
			log.Debug("Detected menu program", "path", path, "args", c[1:])
			return &Menu{bin: path, args: c[1:], log: log, run: exec.CommandContext}, nil
		}
		return nil, errors.WithHint(ErrNoMenu, "install bemenu or wmenu, or set `menu` in the config file")
	}

	words, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.Wrapf(err, "parse menu command %q", command)
	}
	if len(words) == 0 {
		return nil, errors.WithStack(ErrNoMenu)
	}

	path, err := lookPath(words[0])
	if err != nil {
		log.Error("Menu program not found", err, "menu", words[0])
		return nil, errors.Wrapf(errors.Mark(err, ErrNoMenu), "%s not found", words[0])
	}
	return &Menu{bin: path, args: words[1:], log: log, run: exec.CommandContext}, nil
}

// WithExec allows tests to override the exec implementation.
func (m *Menu) WithExec(fn func(context.Context, string, ...string) *exec.Cmd) {
	m.run = fn
}

// Command returns the resolved program and its arguments.
func (m *Menu) Command() []string {
	return append([]string{m.bin}, m.args...)
}

// Show pipes items into the menu and returns the selected line. A
// cancelled menu and an empty item list both yield "".
func (m *Menu) Show(ctx context.Context, items []string) (string, error) {
	if len(items) == 0 {
		m.log.Warn("No menu entries to display")
		return "", nil
	}

	cmd := m.run(ctx, m.bin, m.args...)
	cmd.Stdin = strings.NewReader(strings.Join(items, "\n") + "\n")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	m.log.Debug("Executing menu command",
		"command", shellescape.QuoteCommand(m.Command()),
		"item_count", len(items))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == cancelExitCode {
			m.log.Debug("Menu cancelled")
			return "", nil
		}
		msg := strings.TrimSpace(stderr.String())
		m.log.Error("Failed to run menu", err, "stderr", msg)
		if msg != "" {
			return "", errors.Wrapf(err, "menu: %s", msg)
		}
		return "", errors.Wrap(err, "menu")
	}

	out := stdout.Bytes()
	if !utf8.Valid(out) {
		return "", errors.WithStack(ErrInvalidOutput)
	}

	selected := strings.TrimRight(string(out), "\n")
	m.log.Debug("Menu output", "selected", selected)
	return selected, nil
}
