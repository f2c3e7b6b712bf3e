package wm

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"scratchmenu/pkg/logger"
)

type Sway struct {
	bin     string
	timeout time.Duration
	log     *logger.Logger
	run     func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewSway resolves the swaymsg binary. timeout bounds every swaymsg
// invocation; zero disables it.
func NewSway(bin string, timeout time.Duration, log *logger.Logger) (*Sway, error) {
	if bin == "" {
		bin = "swaymsg"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		log.Error("swaymsg not found", err, "binary", bin)
		return nil, errors.Wrapf(err, "%s not found in PATH", bin)
	}
	log.Debug("Found swaymsg", "path", path)

	return &Sway{bin: path, timeout: timeout, log: log, run: exec.CommandContext}, nil
}

// WithExec allows tests to override the exec implementation.
func (s *Sway) WithExec(fn func(context.Context, string, ...string) *exec.Cmd) {
	s.run = fn
}

func (s *Sway) Name() string {
	return "sway"
}

// Binary returns the resolved swaymsg path.
func (s *Sway) Binary() string {
	return s.bin
}

// Tree runs get_tree. Invalid UTF-8 in the reply is replaced rather than
// rejected.
func (s *Sway) Tree(ctx context.Context) (*Node, error) {
	out, err := s.swaymsg(ctx, "-r", "-t", "get_tree")
	if err != nil {
		return nil, errors.Wrap(err, "get_tree")
	}

	text := strings.ToValidUTF8(string(out), "\uFFFD")
	var root Node
	if err := json.Unmarshal([]byte(text), &root); err != nil {
		s.log.Error("Failed to parse get_tree output", err, "size_bytes", len(out))
		return nil, errors.Wrap(errors.Mark(err, ErrInvalidReply), "parse get_tree")
	}

	s.log.Debug("Parsed tree", "nodes", Count(&root))
	return &root, nil
}

// Workspaces runs get_workspaces.
func (s *Sway) Workspaces(ctx context.Context) ([]Workspace, error) {
	out, err := s.swaymsg(ctx, "-r", "-t", "get_workspaces")
	if err != nil {
		return nil, errors.Wrap(err, "get_workspaces")
	}

	workspaces, err := parseWorkspaces(out)
	if err != nil {
		s.log.Error("Failed to parse get_workspaces output", err, "output", string(out))
		return nil, err
	}

	s.log.Debug("Parsed workspaces", "count", len(workspaces))
	return workspaces, nil
}

// Command runs `swaymsg <criteria> <action>` and checks the reply.
func (s *Sway) Command(ctx context.Context, entry Entry, action string) error {
	fields := strings.Fields(action)
	if len(fields) == 0 {
		return errors.New("empty sway action")
	}
	args := append([]string{"-r", entry.Criteria()}, fields...)

	out, runErr := s.swaymsg(ctx, args...)
	if err := parseCommandReply(out); err != nil {
		s.log.Error("Sway rejected command", err, "criteria", entry.Criteria(), "action", action)
		return err
	}
	if runErr != nil {
		return errors.Wrapf(runErr, "run %s", action)
	}

	s.log.Info("Sway command succeeded", "criteria", entry.Criteria(), "action", action)
	return nil
}

func (s *Sway) swaymsg(ctx context.Context, args ...string) ([]byte, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.log.Debug("Running swaymsg", "command", shellescape.QuoteCommand(append([]string{s.bin}, args...)))

	var stdout, stderr bytes.Buffer
	cmd := s.run(ctx, s.bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		s.log.Error("swaymsg failed", err, "stderr", msg)
		if msg != "" {
			return stdout.Bytes(), errors.Wrapf(err, "swaymsg: %s", msg)
		}
		return stdout.Bytes(), errors.Wrap(err, "swaymsg")
	}
	return stdout.Bytes(), nil
}

func parseWorkspaces(out []byte) ([]Workspace, error) {
	if !gjson.ValidBytes(out) {
		return nil, errors.Wrap(ErrInvalidReply, "get_workspaces")
	}
	res := gjson.ParseBytes(out)
	if !res.IsArray() {
		return nil, errors.Wrap(ErrInvalidReply, "get_workspaces: expected a list")
	}

	var workspaces []Workspace
	res.ForEach(func(_, w gjson.Result) bool {
		workspaces = append(workspaces, Workspace{
			Num:            int(w.Get("num").Int()),
			Name:           w.Get("name").String(),
			Output:         w.Get("output").String(),
			Focused:        w.Get("focused").Bool(),
			Visible:        w.Get("visible").Bool(),
			Representation: w.Get("representation").String(),
		})
		return true
	})
	return workspaces, nil
}

// parseCommandReply turns failed elements of a command reply into an
// error. An empty reply is not an error.
func parseCommandReply(out []byte) error {
	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 {
		return nil
	}
	if !gjson.ValidBytes(trimmed) {
		return errors.Wrapf(ErrInvalidReply, "command reply %q", string(trimmed))
	}

	var failures []string
	for _, r := range gjson.ParseBytes(trimmed).Array() {
		success := r.Get("success")
		if success.Exists() && !success.Bool() {
			msg := r.Get("error").String()
			if msg == "" {
				msg = "unknown error"
			}
			failures = append(failures, msg)
		}
	}
	if len(failures) > 0 {
		return errors.Wrap(ErrCommandFailed, strings.Join(failures, "; "))
	}
	return nil
}
