package task

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTask is a Task whose behavior is supplied by the test.
type mockTask struct {
	id        uuid.UUID
	executeFn func(ctx context.Context) error
	executed  atomic.Bool
}

func newMockTask(fn func(ctx context.Context) error) *mockTask {
	return &mockTask{id: uuid.New(), executeFn: fn}
}

func (m *mockTask) ID() uuid.UUID { return m.id }
func (m *mockTask) Type() string  { return "mock_task" }

func (m *mockTask) Execute(ctx context.Context) error {
	m.executed.Store(true)
	if m.executeFn == nil {
		return nil
	}
	return m.executeFn(ctx)
}

func startedRunner(t *testing.T, maxConcurrent int) *TaskRunner {
	t.Helper()
	runner := NewTaskRunner(TaskRunnerConfig{MaxConcurrent: maxConcurrent}, testLogger())
	require.NoError(t, runner.Start())
	t.Cleanup(runner.Stop)
	return runner
}

func TestTaskRunner_SubmitBeforeStart(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(DefaultTaskRunnerConfig(), testLogger())
	err := runner.Submit(context.Background(), newMockTask(nil))
	assert.ErrorIs(t, err, ErrRunnerNotStarted)
}

func TestTaskRunner_StartTwice(t *testing.T) {
	t.Parallel()

	runner := startedRunner(t, 1)
	assert.Error(t, runner.Start())
}

func TestTaskRunner_ExecutesSubmittedTasks(t *testing.T) {
	t.Parallel()

	runner := startedRunner(t, 2)

	var wg sync.WaitGroup
	tasks := make([]*mockTask, 5)
	for i := range tasks {
		wg.Add(1)
		tasks[i] = newMockTask(func(ctx context.Context) error {
			defer wg.Done()
			return nil
		})
		require.NoError(t, runner.Submit(context.Background(), tasks[i]))
	}
	wg.Wait()

	for _, task := range tasks {
		assert.True(t, task.executed.Load())
	}
}

func TestTaskRunner_SubmitReturnsImmediately(t *testing.T) {
	t.Parallel()

	runner := startedRunner(t, 1)
	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	require.NoError(t, runner.Submit(context.Background(), newMockTask(func(ctx context.Context) error {
		<-release
		return nil
	})))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestTaskRunner_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	const limit = 2
	runner := startedRunner(t, limit)

	var running, peak atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		require.NoError(t, runner.Submit(context.Background(), newMockTask(func(ctx context.Context) error {
			defer wg.Done()
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			running.Add(-1)
			return nil
		})))
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(limit))
	assert.Equal(t, int32(limit), peak.Load())
}

func TestTaskRunner_ErrorHandler(t *testing.T) {
	t.Parallel()

	runner := startedRunner(t, 1)

	type failure struct {
		task Task
		err  error
	}
	failures := make(chan failure, 2)
	runner.SetErrorHandler(func(task Task, err error) {
		failures <- failure{task: task, err: err}
	})

	boom := errors.New("boom")
	failing := newMockTask(func(ctx context.Context) error { return boom })
	panicking := newMockTask(func(ctx context.Context) error { panic("kaboom") })

	require.NoError(t, runner.Submit(context.Background(), failing))
	first := <-failures
	assert.Equal(t, failing.ID(), first.task.ID())
	assert.ErrorIs(t, first.err, boom)

	require.NoError(t, runner.Submit(context.Background(), panicking))
	second := <-failures
	assert.Equal(t, panicking.ID(), second.task.ID())
	assert.Contains(t, second.err.Error(), "kaboom")
}

func TestTaskRunner_SetErrorHandlerWhileRunning(t *testing.T) {
	t.Parallel()

	runner := startedRunner(t, 4)

	release := make(chan struct{})
	var started sync.WaitGroup
	boom := errors.New("boom")
	for i := 0; i < 4; i++ {
		started.Add(1)
		require.NoError(t, runner.Submit(context.Background(), newMockTask(func(ctx context.Context) error {
			started.Done()
			<-release
			return boom
		})))
	}
	started.Wait()

	var old, replaced atomic.Int32
	runner.SetErrorHandler(func(task Task, err error) { old.Add(1) })
	runner.SetErrorHandler(func(task Task, err error) { replaced.Add(1) })
	runner.SetErrorHandler(nil)
	close(release)

	require.Eventually(t, func() bool { return replaced.Load() == 4 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, old.Load())
}

func TestTaskRunner_TaskContextOutlivesSubmitter(t *testing.T) {
	t.Parallel()

	runner := startedRunner(t, 1)

	submitCtx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	require.NoError(t, runner.Submit(submitCtx, newMockTask(func(ctx context.Context) error {
		time.Sleep(20 * time.Millisecond)
		errCh <- ctx.Err()
		return nil
	})))
	cancel()

	assert.NoError(t, <-errCh)
}

func TestTaskRunner_StopWaitsForRunningAndAbandonsWaiting(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(TaskRunnerConfig{MaxConcurrent: 1}, testLogger())
	require.NoError(t, runner.Start())

	started := make(chan struct{})
	var finished atomic.Bool
	running := newMockTask(func(ctx context.Context) error {
		close(started)
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
		return nil
	})
	waiting := newMockTask(nil)

	require.NoError(t, runner.Submit(context.Background(), running))
	<-started
	require.NoError(t, runner.Submit(context.Background(), waiting))

	runner.Stop()

	assert.True(t, finished.Load(), "running task should finish before Stop returns")
	assert.False(t, waiting.executed.Load(), "waiting task should be abandoned")

	err := runner.Submit(context.Background(), newMockTask(nil))
	assert.ErrorIs(t, err, ErrRunnerStopped)
	assert.ErrorIs(t, runner.Start(), ErrRunnerStopped)

	// Stop is idempotent.
	runner.Stop()
}
