// Package executor runs the rendered Nuitka command as a subprocess on a
// worker goroutine, streaming merged stdout/stderr lines to a callback.
//
// Cancellation is cooperative: Stop asks the process to terminate and
// escalates to a hard kill after a short grace period. The executor knows
// nothing about flag plans; it consumes a finished argument vector.
package executor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// Status describes the lifecycle state of one compilation run.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
	StatusCancelled Status = "cancelled"
)

// gracePeriod is how long Stop waits for graceful termination before killing.
const gracePeriod = time.Second

// Executor runs one command. It is not reusable; create a new Executor per
// run.
type Executor struct {
	// OnOutput receives each output line without its trailing newline.
	// Called from the worker goroutine.
	OnOutput func(line string)
	// OnDone receives the final status and exit code (-1 when the process
	// never produced one). Called from the worker goroutine after the last
	// OnOutput.
	OnDone func(status Status, exitCode int)

	command []string

	mu            sync.Mutex
	cmd           *exec.Cmd
	status        Status
	exitCode      int
	stopRequested bool
	startTime     time.Time
	endTime       time.Time
	done          chan struct{}
}

// New creates an Executor for the given argument vector.
func New(command []string) *Executor {
	return &Executor{command: command, status: StatusIdle, exitCode: -1}
}

// Start launches the process and begins streaming output. It returns an
// error if the executor is already running or the process cannot be spawned;
// in the spawn-failure case OnDone is not called.
func (e *Executor) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == StatusRunning {
		return errors.New("compilation already running")
	}
	if len(e.command) == 0 {
		return errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, e.command[0], e.command[1:]...)
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		e.status = StatusError
		return fmt.Errorf("start %s: %w", e.command[0], err)
	}

	e.cmd = cmd
	e.status = StatusRunning
	e.stopRequested = false
	e.exitCode = -1
	e.startTime = time.Now()
	e.endTime = time.Time{}
	e.done = make(chan struct{})

	streamDone := make(chan struct{})
	go e.stream(pr, streamDone)
	go e.wait(ctx, cmd, pw, streamDone)
	return nil
}

// stream reads merged output lines and forwards them to OnOutput.
func (e *Executor) stream(r io.Reader, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if e.OnOutput != nil {
			e.OnOutput(scanner.Text())
		}
	}
}

// wait blocks until the process exits, settles the final status, and fires
// OnDone.
func (e *Executor) wait(ctx context.Context, cmd *exec.Cmd, pw *io.PipeWriter, streamDone <-chan struct{}) {
	waitErr := cmd.Wait()
	pw.Close()
	<-streamDone

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	e.mu.Lock()
	e.exitCode = exitCode
	e.endTime = time.Now()
	switch {
	case e.stopRequested || ctx.Err() != nil:
		e.status = StatusCancelled
	case waitErr == nil && exitCode == 0:
		e.status = StatusSuccess
	default:
		e.status = StatusError
	}
	status := e.status
	done := e.done
	e.mu.Unlock()

	close(done)
	if e.OnDone != nil {
		e.OnDone(status, exitCode)
	}
}

// Stop requests cooperative termination. It sends SIGTERM, waits up to the
// grace period, then kills the process. Returns false when nothing is
// running.
func (e *Executor) Stop() bool {
	e.mu.Lock()
	if e.status != StatusRunning || e.cmd == nil || e.cmd.Process == nil {
		e.mu.Unlock()
		return false
	}
	e.stopRequested = true
	proc := e.cmd.Process
	done := e.done
	e.mu.Unlock()

	// SIGTERM is unsupported on some platforms; fall back to an
	// immediate kill.
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		_ = proc.Kill()
		return true
	}

	select {
	case <-done:
	case <-time.After(gracePeriod):
		_ = proc.Kill()
	}
	return true
}

// IsRunning reports whether the process is currently executing.
func (e *Executor) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status == StatusRunning
}

// GetStatus returns the current lifecycle status.
func (e *Executor) GetStatus() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// ExitCode returns the process exit code, or -1 before completion.
func (e *Executor) ExitCode() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exitCode
}

// Elapsed returns the run duration so far, or the total duration once the
// process has finished. Zero before Start.
func (e *Executor) Elapsed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.startTime.IsZero() {
		return 0
	}
	if !e.endTime.IsZero() {
		return e.endTime.Sub(e.startTime)
	}
	return time.Since(e.startTime)
}

// Wait blocks until the current run finishes. It returns immediately when
// nothing was started.
func (e *Executor) Wait() {
	e.mu.Lock()
	done := e.done
	e.mu.Unlock()
	if done != nil {
		<-done
	}
}
