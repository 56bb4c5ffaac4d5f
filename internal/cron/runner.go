package cronrunner

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Runner struct {
	cron    *cron.Cron
	logger  *zap.Logger
	baseCtx context.Context
}

// New builds a seconds-resolution runner. Extra cron options (for example
// cron.WithLocation) are applied after WithSeconds.
func New(logger *zap.Logger, baseCtx context.Context, opts ...cron.Option) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cron:    cron.New(append([]cron.Option{cron.WithSeconds()}, opts...)...),
		logger:  logger,
		baseCtx: baseCtx,
	}
}

// Add schedules job under a six-field (seconds first) spec. A panicking job
// is logged and does not stop the scheduler.
func (r *Runner) Add(name, spec string, job func(context.Context)) (cron.EntryID, error) {
	if job == nil {
		return 0, fmt.Errorf("cron job %q is nil", name)
	}
	return r.cron.AddFunc(spec, func() {
		r.run(name, job)
	})
}

func (r *Runner) run(name string, job func(context.Context)) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("cron job panicked", zap.String("job", name), zap.Any("panic", rec))
			return
		}
		r.logger.Debug("cron job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
	}()
	job(r.baseCtx)
}

// Entries reports how many jobs are scheduled.
func (r *Runner) Entries() int {
	return len(r.cron.Entries())
}

func (r *Runner) Start() {
	r.logger.Info("cron started", zap.Int("jobs", r.Entries()))
	r.cron.Start()
}

func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("cron stopped")
}
