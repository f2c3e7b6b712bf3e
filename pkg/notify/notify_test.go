package notify

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scratchmenu/pkg/logger"
)

type call struct {
	name string
	args []string
}

type recorder struct {
	calls []call
	exits map[string]int
}

func (r *recorder) run(ctx context.Context, name string, args ...string) *exec.Cmd {
	r.calls = append(r.calls, call{name: name, args: args})
	return helperCmd(ctx, r.exits[name])
}

func helperCmd(ctx context.Context, exit int) *exec.Cmd {
	cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
	cmd.Env = append(os.Environ(),
		"GO_WANT_HELPER_PROCESS=1",
		"NOTIFY_HELPER_EXIT="+strconv.Itoa(exit),
	)
	return cmd
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	code, _ := strconv.Atoi(os.Getenv("NOTIFY_HELPER_EXIT"))
	os.Exit(code)
}

func lookPathFor(available ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.Newf("%s not found", name)
	}
}

func newService(t *testing.T, notifyCommand string, rec *recorder, tty bool, available ...string) *NotifyService {
	t.Helper()
	n := NewNotifyService(notifyCommand, logger.Nop())
	n.run = rec.run
	n.lookPath = lookPathFor(available...)
	n.isTTY = func() bool { return tty }
	n.logPath = filepath.Join(t.TempDir(), "state", "notifications.log")
	return n
}

func TestShowUsesNotifyCommand(t *testing.T) {
	rec := &recorder{}
	n := newService(t, "my-notify --flag", rec, false, "notify-send")

	require.NoError(t, n.Show(context.Background(), "it's broken", Error))
	require.Len(t, rec.calls, 1)
	assert.Equal(t, "sh", rec.calls[0].name)
	assert.Equal(t, []string{"-c", `my-notify --flag ERROR 'it'"'"'s broken'`}, rec.calls[0].args)
}

func TestShowFallsBackToSystemTool(t *testing.T) {
	rec := &recorder{exits: map[string]int{"sh": 1}}
	n := newService(t, "broken", rec, false, "notify-send")

	require.NoError(t, n.Show(context.Background(), "no windows", Info))
	require.Len(t, rec.calls, 2)
	assert.Equal(t, "/usr/bin/notify-send", rec.calls[1].name)
	assert.Equal(t, []string{"-u", "normal", "scratchmenu", "no windows"}, rec.calls[1].args)
}

func TestShowPrefersDunstify(t *testing.T) {
	rec := &recorder{}
	n := newService(t, "", rec, false, "dunstify", "notify-send")

	require.NoError(t, n.Show(context.Background(), "boom", Error))
	require.Len(t, rec.calls, 1)
	assert.Equal(t, "/usr/bin/dunstify", rec.calls[0].name)
	assert.Equal(t, []string{"-u", "critical", "-t", "5000", "scratchmenu Error", "boom"}, rec.calls[0].args)
}

func TestShowPrintsToTerminal(t *testing.T) {
	var buf bytes.Buffer
	old := stderr
	stderr = &buf
	defer func() { stderr = old }()

	rec := &recorder{}
	n := newService(t, "", rec, true)

	require.NoError(t, n.Show(context.Background(), "swaymsg missing", Error))
	assert.Empty(t, rec.calls)
	assert.Equal(t, "\x1b[31mscratchmenu - Error: swaymsg missing\x1b[0m\n", buf.String())
}

func TestShowWritesLogFileLast(t *testing.T) {
	rec := &recorder{exits: map[string]int{"/usr/bin/notify-send": 1}}
	n := newService(t, "", rec, false, "notify-send")

	require.NoError(t, n.Show(context.Background(), "first", Error))
	require.NoError(t, n.Show(context.Background(), "second", Info))

	data, err := os.ReadFile(n.logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scratchmenu - ERROR: first\n")
	assert.Contains(t, string(data), "scratchmenu - INFO: second\n")
}

func TestNotificationTypeString(t *testing.T) {
	assert.Equal(t, "ERROR", Error.String())
	assert.Equal(t, "INFO", Info.String())
}
