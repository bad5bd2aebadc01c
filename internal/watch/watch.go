// Package watch regenerates a document on a cron schedule.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	appLog "hellocal/internal/log"
)

// Job is one regeneration pass.
type Job func(ctx context.Context) error

// cronLogger forwards cron's internal messages to the application log.
type cronLogger struct{}

func (cronLogger) Info(msg string, kv ...interface{}) {
	appLog.Debug("cron: "+msg, kv...)
}

func (cronLogger) Error(err error, msg string, kv ...interface{}) {
	appLog.Error("cron: "+msg, err, kv...)
}

// Validate reports whether spec is a standard five-field cron expression
// (descriptors such as @every 10m are accepted as well).
func Validate(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("watch: invalid schedule %q: %w", spec, err)
	}
	return nil
}

// Run executes job once immediately and then on every tick of spec until
// ctx is cancelled. Job errors are logged and do not stop the loop. A tick
// that fires while the previous run is still busy is skipped.
func Run(ctx context.Context, spec string, job Job) error {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("watch: invalid schedule %q: %w", spec, err)
	}

	runOnce(ctx, job)

	logger := cronLogger{}
	c := cron.New(cron.WithLogger(logger), cron.WithChain(
		cron.Recover(logger),
		cron.SkipIfStillRunning(logger),
	))
	c.Schedule(schedule, cron.FuncJob(func() { runOnce(ctx, job) }))
	c.Start()

	appLog.Info("watching calendar", "schedule", spec, "next", schedule.Next(time.Now()).Format(time.RFC3339))

	<-ctx.Done()
	<-c.Stop().Done()
	appLog.Info("watch stopped")
	return nil
}

func runOnce(ctx context.Context, job Job) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := job(ctx); err != nil {
		appLog.Error("regeneration failed", err)
		return
	}
	appLog.Debug("regeneration done", "elapsed", time.Since(start).String())
}
