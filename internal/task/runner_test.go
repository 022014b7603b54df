package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTask is a controllable Task for exercising the runner.
type recordingTask struct {
	id       uuid.UUID
	executed chan struct{}
	err      error
}

func newRecordingTask() *recordingTask {
	return &recordingTask{
		id:       uuid.New(),
		executed: make(chan struct{}),
	}
}

func (t *recordingTask) ID() uuid.UUID { return t.id }
func (t *recordingTask) Type() string  { return "recording" }

func (t *recordingTask) Execute(ctx context.Context) error {
	close(t.executed)
	return t.err
}

func waitForExecution(t *testing.T, task *recordingTask) {
	t.Helper()
	select {
	case <-task.executed:
	case <-time.After(2 * time.Second):
		t.Fatal("task was not executed in time")
	}
}

func TestRunnerExecutesSubmittedTasks(t *testing.T) {
	t.Parallel()

	runner := NewRunner(DefaultRunnerConfig(), nil)
	runner.Start()
	defer runner.Stop()

	task := newRecordingTask()
	require.NoError(t, runner.Submit(context.Background(), task))

	waitForExecution(t, task)
}

func TestRunnerProcessesTasksConcurrently(t *testing.T) {
	t.Parallel()

	runner := NewRunner(RunnerConfig{WorkerCount: 4, QueueSize: 16}, nil)
	runner.Start()
	defer runner.Stop()

	var executed int32
	tasks := make([]*recordingTask, 8)
	for i := range tasks {
		tasks[i] = newRecordingTask()
		require.NoError(t, runner.Submit(context.Background(), tasks[i]))
	}

	for _, task := range tasks {
		waitForExecution(t, task)
		atomic.AddInt32(&executed, 1)
	}

	assert.Equal(t, int32(len(tasks)), atomic.LoadInt32(&executed))
}

func TestRunnerRejectsWhenQueueFull(t *testing.T) {
	t.Parallel()

	// No workers started, so the queue never drains.
	runner := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 1}, nil)

	require.NoError(t, runner.Submit(context.Background(), newRecordingTask()))

	err := runner.Submit(context.Background(), newRecordingTask())
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestRunnerRejectsAfterStop(t *testing.T) {
	t.Parallel()

	runner := NewRunner(DefaultRunnerConfig(), nil)
	runner.Start()
	runner.Stop()

	err := runner.Submit(context.Background(), newRecordingTask())
	assert.ErrorIs(t, err, ErrRunnerStopped)
}

func TestRunnerStopIsIdempotent(t *testing.T) {
	t.Parallel()

	runner := NewRunner(DefaultRunnerConfig(), nil)
	runner.Start()
	runner.Stop()
	runner.Stop()
}
