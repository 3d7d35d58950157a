package schedule

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"weather-api/internal/domain/usecase/warmup"
	"weather-api/pkg/log"
	"weather-api/pkg/msg"
	"weather-api/pkg/redis"
)

const (
	warmUpLockKey       = "warmup_scheduler"
	warmUpLockNamespace = "weather_schedules"
)

// WarmUpSchedulerConfig holds configuration for the warm-up scheduler
type WarmUpSchedulerConfig struct {
	CronExpression  string
	LockTTL         time.Duration
	RefreshInterval time.Duration
	// RetryInterval is how long a replica without the lock waits before trying to take it again
	RetryInterval time.Duration
	// RunTimeout bounds a single warm-up run
	RunTimeout time.Duration
}

// WarmUpScheduler warms the forecast cache on a cron schedule. Only the replica holding the
// distributed lock schedules runs; the others keep retrying so one takes over when the leader goes away.
type WarmUpScheduler struct {
	mu          sync.Mutex
	cron        *cron.Cron
	useCase     warmup.UseCase
	redisClient *redis.Client
	config      WarmUpSchedulerConfig
}

func NewWarmUpScheduler(useCase warmup.UseCase, redisClient *redis.Client, config WarmUpSchedulerConfig) *WarmUpScheduler {
	return &WarmUpScheduler{
		useCase:     useCase,
		redisClient: redisClient,
		config:      config,
	}
}

// InitWarmUpScheduleTasks starts the scheduler in the background until ctx is done
func (s *WarmUpScheduler) InitWarmUpScheduleTasks(ctx context.Context) {
	go s.run(ctx)
}

// run competes for the lock until ctx is done. It only returns an error for an invalid cron expression.
func (s *WarmUpScheduler) run(ctx context.Context) error {
	schedule, err := cron.ParseStandard(s.config.CronExpression)
	if err != nil {
		log.Error(msg.GetMessage("cron.schedule-invalid", s.config.CronExpression, err), zap.Error(err))
		return err
	}

	lock := redis.NewScheduledTaskLock(
		s.redisClient,
		warmUpLockKey,
		s.getLockTTL(),
		s.getRefreshInterval(),
		warmUpLockNamespace,
	)

	for {
		err := s.lead(ctx, lock, schedule)
		if ctx.Err() != nil {
			log.Info(msg.GetMessage("cron.schedule-stopped"))
			return nil
		}

		switch {
		case errors.Is(err, redis.ErrLockTaken):
			log.Debug(msg.GetMessage("cron.schedule-lock-busy", s.getRetryInterval()))
		case errors.Is(err, redis.ErrLockNotHeld):
			log.Error(msg.GetMessage("cron.schedule-lock-lost", err), zap.Error(err))
		case err != nil:
			log.Warn(msg.GetMessage("cron.schedule-lock-failed", err), zap.Error(err))
		}

		select {
		case <-ctx.Done():
			log.Info(msg.GetMessage("cron.schedule-stopped"))
			return nil
		case <-time.After(s.getRetryInterval()):
		}
	}
}

// lead takes the lock and schedules warm-ups until the lock is lost or ctx ends
func (s *WarmUpScheduler) lead(ctx context.Context, lock *redis.Lock, schedule cron.Schedule) error {
	if err := lock.Lock(ctx); err != nil {
		return err
	}

	refreshErrChan := lock.AutoRefresh(ctx)

	c := cron.New()
	c.Schedule(schedule, cron.FuncJob(s.ExecuteScheduledTask))
	s.mu.Lock()
	s.cron = c
	s.mu.Unlock()

	c.Start()
	log.Info(msg.GetMessage("cron.schedule-started", s.config.CronExpression))

	err := <-refreshErrChan
	s.Stop()
	return err
}

// IsLeader reports whether this replica currently schedules warm-ups
func (s *WarmUpScheduler) IsLeader() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron != nil
}

// ExecuteScheduledTask runs one cache warm-up
func (s *WarmUpScheduler) ExecuteScheduledTask() {
	ctx, cancel := context.WithTimeout(context.Background(), s.getRunTimeout())
	defer cancel()

	report, err := s.useCase.WarmUp(ctx)
	if err != nil {
		log.Error(msg.GetMessage("cron.schedule-run-failed", err), zap.Error(err))
		return
	}
	log.Debug(msg.GetMessage("cron.schedule-run-done", report.RunID), zap.String("runId", report.RunID))
}

// Stop stops scheduling and waits for a running warm-up to finish. run keeps competing for the lock
// until its context ends.
func (s *WarmUpScheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

func (s *WarmUpScheduler) getLockTTL() time.Duration {
	if s.config.LockTTL > 0 {
		return s.config.LockTTL
	}
	return 10 * time.Minute
}

func (s *WarmUpScheduler) getRefreshInterval() time.Duration {
	if s.config.RefreshInterval > 0 {
		return s.config.RefreshInterval
	}
	return time.Minute
}

func (s *WarmUpScheduler) getRetryInterval() time.Duration {
	if s.config.RetryInterval > 0 {
		return s.config.RetryInterval
	}
	return time.Minute
}

func (s *WarmUpScheduler) getRunTimeout() time.Duration {
	if s.config.RunTimeout > 0 {
		return s.config.RunTimeout
	}
	return 2 * time.Minute
}
