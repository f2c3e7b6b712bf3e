package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"scratchmenu/internal/app"
	"scratchmenu/internal/menu"
	"scratchmenu/internal/wm"
	"scratchmenu/pkg/config"
	"scratchmenu/pkg/logger"
	"scratchmenu/pkg/notify"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "scratchmenu",
	Short: "Pick a sway window from a menu and bring it back from the scratchpad",
	Long: `scratchmenu lists the windows of the running sway session in a
dmenu-style selector (bemenu, wmenu, ...) and runs a sway command,
"scratchpad show" by default, on the one you pick.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLauncher(cmd, app.ScopeTree)
	},
}

func init() {
	rootCmd.Version = version
	addPersistentFlags(rootCmd.PersistentFlags())
}

func addPersistentFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "path to config file")
	flags.Bool("debug", false, "enable debug logging on stderr")
	flags.String("menu", "", `menu command line, e.g. "bemenu -i -l 10"`)
	flags.String("action", "", `sway command run on the selection (default "scratchpad show")`)
	flags.Bool("unique", false, "collapse duplicate entries")
}

type notifier interface {
	Show(ctx context.Context, message string, nType notify.NotificationType) error
}

// session holds everything a command needs once flags are parsed.
type session struct {
	log      *logger.Logger
	cfg      *config.Config
	notifier notifier
}

func newSession(cmd *cobra.Command) (*session, error) {
	debug, _ := cmd.Flags().GetBool("debug")

	logLevel := zerolog.InfoLevel
	opts := []logger.Option{}
	if debug {
		logLevel = zerolog.DebugLevel
		opts = append(opts, logger.WithConsole())
	}
	opts = append(opts, logger.WithLevel(logLevel))

	log, err := logger.NewLogger(opts...)
	if err != nil {
		// Read-only state dir, keep going without the file
		log, err = logger.NewLogger(append(opts, logger.WithoutFile())...)
		if err != nil {
			return nil, errors.Wrap(err, "initialize logger")
		}
	}

	log.Debug("Starting scratchmenu",
		"version", version,
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"debug", debug)

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.FindConfig(configPath, log)
	if err != nil {
		log.Error("Failed to load configuration", err, "provided_path", configPath)
		log.Close()
		return nil, err
	}
	cfg = cfg.Apply(overrides(cmd))

	return &session{
		log:      log,
		cfg:      cfg,
		notifier: notify.NewNotifyService(cfg.GetNotifyCommand(), log),
	}, nil
}

// overrides collects the flags the user actually set.
func overrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	flags := cmd.Flags()
	if flags.Changed("menu") {
		v, _ := flags.GetString("menu")
		o.Menu = &v
	}
	if flags.Changed("action") {
		v, _ := flags.GetString("action")
		o.Action = &v
	}
	if flags.Changed("unique") {
		v, _ := flags.GetBool("unique")
		o.Unique = &v
	}
	return o
}

func (s *session) launcher(withMenu bool) (*app.Launcher, error) {
	manager, err := wm.NewManager(s.cfg.GetSwaymsg(), s.cfg.GetQueryTimeout(), s.log)
	if err != nil {
		return nil, err
	}

	var selector app.Selector
	if withMenu {
		m, err := menu.New(s.cfg.GetMenu(), s.log)
		if err != nil {
			return nil, err
		}
		selector = m
	}

	return app.NewLauncher(manager, selector, s.log, app.Options{
		Action: s.cfg.GetAction(),
		Unique: s.cfg.GetUnique(),
	}), nil
}

// report logs err and raises a desktop notification. An empty window
// list is informational and not a failure.
func (s *session) report(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	// Still notify after SIGINT/SIGTERM cancelled the command
	ctx = context.WithoutCancel(ctx)

	if errors.Is(err, app.ErrNoEntries) {
		s.log.Info("No windows to show")
		if nerr := s.notifier.Show(ctx, "No windows to choose from", notify.Info); nerr != nil {
			s.log.Warn("Notification failed", "error", nerr.Error())
		}
		return nil
	}

	s.log.Error("scratchmenu failed", err)
	if nerr := s.notifier.Show(ctx, err.Error(), notify.Error); nerr != nil {
		s.log.Warn("Notification failed", "error", nerr.Error())
	}
	return err
}

// run builds the launcher and hands it to fn. Every failure goes
// through report.
func (s *session) run(ctx context.Context, withMenu bool, fn func(context.Context, *app.Launcher) error) error {
	l, err := s.launcher(withMenu)
	if err != nil {
		return s.report(ctx, err)
	}
	return s.report(ctx, fn(ctx, l))
}

func runSession(cmd *cobra.Command, withMenu bool, fn func(context.Context, *app.Launcher) error) error {
	s, err := newSession(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scratchmenu: %v\n", err)
		return err
	}
	defer s.log.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.run(ctx, withMenu, fn); err != nil {
		fmt.Fprintf(os.Stderr, "scratchmenu: %v\n", err)
		return err
	}
	return nil
}

func runLauncher(cmd *cobra.Command, scope app.Scope) error {
	return runSession(cmd, true, func(ctx context.Context, l *app.Launcher) error {
		return l.Run(ctx, scope)
	})
}
