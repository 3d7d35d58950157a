package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-api/internal/domain/model"
	"weather-api/pkg/redis"
)

type countingWarmUp struct {
	runs atomic.Int32
	err  error
}

func (c *countingWarmUp) WarmUp(context.Context) (*model.WarmUpReport, error) {
	c.runs.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return &model.WarmUpReport{RunID: "run"}, nil
}

func newRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client, err := redis.NewClient(redis.NewRedisConfig().WithURL("redis://" + server.Addr()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, server
}

func testSchedulerConfig() WarmUpSchedulerConfig {
	return WarmUpSchedulerConfig{
		CronExpression:  "0 * * * *",
		LockTTL:         time.Minute,
		RefreshInterval: 50 * time.Millisecond,
		RetryInterval:   20 * time.Millisecond,
	}
}

const testLockKey = warmUpLockNamespace + "::" + warmUpLockKey

func startScheduler(ctx context.Context, s *WarmUpScheduler) <-chan error {
	done := make(chan error, 1)
	go func() { done <- s.run(ctx) }()
	return done
}

func waitStopped(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestWarmUpSchedulerOnlyOneReplicaSchedules(t *testing.T) {
	client, server := newRedis(t)
	firstCtx, cancelFirst := context.WithCancel(context.Background())
	secondCtx, cancelSecond := context.WithCancel(context.Background())
	defer cancelSecond()

	first := NewWarmUpScheduler(&countingWarmUp{}, client, testSchedulerConfig())
	firstDone := startScheduler(firstCtx, first)
	require.Eventually(t, first.IsLeader, time.Second, 10*time.Millisecond)
	holder, err := server.Get(testLockKey)
	require.NoError(t, err)

	second := NewWarmUpScheduler(&countingWarmUp{}, client, testSchedulerConfig())
	secondDone := startScheduler(secondCtx, second)

	assert.Never(t, second.IsLeader, 200*time.Millisecond, 20*time.Millisecond)
	current, err := server.Get(testLockKey)
	require.NoError(t, err)
	assert.Equal(t, holder, current)

	cancelFirst()
	waitStopped(t, firstDone)
	assert.False(t, first.IsLeader())

	require.Eventually(t, second.IsLeader, 2*time.Second, 10*time.Millisecond)
	current, err = server.Get(testLockKey)
	require.NoError(t, err)
	assert.NotEqual(t, holder, current)

	cancelSecond()
	waitStopped(t, secondDone)
	assert.False(t, server.Exists(testLockKey))
}

func TestWarmUpSchedulerRetakesLostLock(t *testing.T) {
	client, server := newRedis(t)
	ctx, cancel := context.WithCancel(context.Background())

	config := testSchedulerConfig()
	config.RetryInterval = 300 * time.Millisecond
	scheduler := NewWarmUpScheduler(&countingWarmUp{}, client, config)
	done := startScheduler(ctx, scheduler)
	require.Eventually(t, scheduler.IsLeader, time.Second, 10*time.Millisecond)

	server.Del(testLockKey)
	require.Eventually(t, func() bool { return !scheduler.IsLeader() }, time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return scheduler.IsLeader() && server.Exists(testLockKey) }, 2*time.Second, 10*time.Millisecond)

	cancel()
	waitStopped(t, done)
}

func TestWarmUpSchedulerRejectsInvalidCronWithoutLocking(t *testing.T) {
	client, server := newRedis(t)
	config := testSchedulerConfig()
	config.CronExpression = "every hour"

	err := NewWarmUpScheduler(&countingWarmUp{}, client, config).run(context.Background())

	assert.Error(t, err)
	assert.False(t, server.Exists(testLockKey))
}

func TestExecuteScheduledTask(t *testing.T) {
	client, _ := newRedis(t)

	ok := &countingWarmUp{}
	NewWarmUpScheduler(ok, client, testSchedulerConfig()).ExecuteScheduledTask()
	assert.Equal(t, int32(1), ok.runs.Load())

	failing := &countingWarmUp{err: errors.New("no seed cities configured")}
	NewWarmUpScheduler(failing, client, testSchedulerConfig()).ExecuteScheduledTask()
	assert.Equal(t, int32(1), failing.runs.Load())
}
