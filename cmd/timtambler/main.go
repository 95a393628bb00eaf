package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timtambler/internal/clock"
	"timtambler/internal/config"
	"timtambler/internal/ics"
	appLog "timtambler/internal/log"
	"timtambler/internal/schedule"
	"timtambler/internal/timetable"
	"timtambler/internal/watch"
)

const version = "0.3.0"

// flagConfig holds CLI flag values; set flags override the environment.
type flagConfig struct {
	configPath string
	limit      int
	logLevel   string
	watch      string
	icsPath    string
	version    bool
}

func main() {
	flags := parseFlags()
	if flags.version {
		fmt.Println("timtambler", version)
		return
	}

	err := run(flags, os.Stdout)
	appLog.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(flags flagConfig, stdout io.Writer) error {
	settings, err := config.LoadSettings()
	if err != nil {
		appLog.Error("failed to resolve settings", err)
		return err
	}
	applyFlags(settings, flags)

	level, ok := appLog.ParseLevel(settings.LogLevel)
	appLog.SetLevel(level)
	if !ok {
		appLog.Info("unknown log level; using info", "log_level", settings.LogLevel)
	}

	appLog.Debug("effective settings",
		"path", settings.Path,
		"limit", settings.Limit,
		"watch", settings.Watch,
		"ics", flags.icsPath,
	)

	if settings.Watch != "" {
		if err := watch.Validate(settings.Watch); err != nil {
			appLog.Error("bad watch schedule", err)
			return err
		}
	}

	created, err := config.EnsureTimetable(settings.Path)
	if err != nil {
		appLog.Error("failed to create scaffold timetable", err, "path", settings.Path)
		return err
	}
	if created {
		appLog.Info("no timetable found; scaffold created",
			"path", settings.Path,
			"hint", "set "+config.EnvPrefix+"_DIR to use a different file",
		)
	}

	r := &renderer{
		settings:  settings,
		icsPath:   flags.icsPath,
		projector: schedule.NewProjector(clock.System),
		out:       stdout,
	}

	// The first pass is fatal on error; later watch passes only log.
	if err := r.pass(context.Background()); err != nil {
		appLog.Error("failed to render schedule", err, "path", settings.Path)
		return err
	}
	if settings.Watch == "" {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return watch.Run(ctx, settings.Watch, r.pass)
}

type renderer struct {
	settings  *config.Settings
	icsPath   string
	projector *schedule.Projector
	out       io.Writer
}

// pass reloads the timetable, renders it against a single clock sample and
// optionally exports it.
func (r *renderer) pass(_ context.Context) error {
	tt, err := timetable.LoadFile(r.settings.Path, time.Local)
	if err != nil {
		return err
	}

	p := r.projector.Project(tt)
	if err := schedule.Print(r.out, p.Truncate(r.settings.Limit)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if r.icsPath != "" {
		if err := config.WriteFileAtomic(r.icsPath, ics.Marshal(tt, p.At)); err != nil {
			return fmt.Errorf("write ics: %w", err)
		}
		appLog.Debug("ics exported", "path", r.icsPath)
	}
	return nil
}

func applyFlags(s *config.Settings, f flagConfig) {
	if f.configPath != "" {
		s.Path = f.configPath
	}
	if f.limit >= 0 {
		s.Limit = f.limit
	}
	if f.logLevel != "" {
		s.LogLevel = f.logLevel
	}
	if f.watch != "" {
		s.Watch = f.watch
	}
	s.Normalize()
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "", "Path to the timetable file (overrides "+config.EnvPrefix+"_DIR)")
	flag.IntVar(&cfg.limit, "limit", -1, "Show at most N classes and N assignments (0 = all)")
	flag.StringVar(&cfg.logLevel, "log-level", "", "Log level: debug, info or error")
	flag.StringVar(&cfg.watch, "watch", "", `Re-render on a cron schedule, e.g. "* * * * *" or "@every 30s"`)
	flag.StringVar(&cfg.icsPath, "ics", "", "Also export the timetable as an iCalendar file at this path")
	flag.BoolVar(&cfg.version, "version", false, "Print version and exit")

	flag.Parse()

	return cfg
}
