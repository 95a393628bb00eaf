// Package watch re-runs a rendering pass on a cron schedule.
package watch

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	appLog "timtambler/internal/log"
)

// Pass is one rendering pass. Errors are logged and do not stop the watcher.
type Pass func(ctx context.Context) error

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Validate reports whether spec is a usable schedule: five standard fields
// or a descriptor such as "@every 30s" or "@hourly".
func Validate(spec string) error {
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", spec, err)
	}
	return nil
}

// Run calls pass on every tick of spec until ctx is done. Ticks that arrive
// while a pass is still running are skipped.
func Run(ctx context.Context, spec string, pass Pass) error {
	if err := Validate(spec); err != nil {
		return err
	}

	run := func() {
		if err := pass(ctx); err != nil {
			appLog.Error("watch: pass failed", err, "schedule", spec)
		}
	}

	c := cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(spec, run); err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", spec, err)
	}

	appLog.Info("watch started", "schedule", spec)
	c.Start()

	<-ctx.Done()

	// Wait for a pass that is in flight.
	<-c.Stop().Done()
	appLog.Info("watch stopped")
	return nil
}
