package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Invocation error taxonomy. Callers recover from all of these by dropping
// the candidate; none of them should abort a task.
var (
	// ErrTimeout means the backend did not answer within the deadline.
	ErrTimeout = errors.New("backend invocation timed out")

	// ErrNonZeroExit means the backend process exited with a failure code.
	ErrNonZeroExit = errors.New("backend exited non-zero")

	// ErrEmptyResponse means the backend exited cleanly but produced no text.
	ErrEmptyResponse = errors.New("backend returned empty response")

	// ErrSpawnFailure means the backend process could not be started at all.
	ErrSpawnFailure = errors.New("backend process could not be started")
)

// Runner executes an external command with input on stdin and returns its
// stdout. It exists so tests can stub subprocess behavior.
type Runner interface {
	Run(ctx context.Context, stdin string, argv []string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes argv, writing stdin to the process and capturing output.
// Context cancellation kills the process.
func (ExecRunner) Run(ctx context.Context, stdin string, argv []string) (string, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%s: %w", argv[0], ErrTimeout)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = exitErr.String()
			}
			return "", fmt.Errorf("%s: %w: %s", argv[0], ErrNonZeroExit, msg)
		}
		return "", fmt.Errorf("%s: %w: %v", argv[0], ErrSpawnFailure, err)
	}
	return stdout.String(), nil
}

// Invoker issues single prompt/response calls to named backends. It is
// stateless and safe for concurrent use.
type Invoker struct {
	runner Runner
}

// NewInvoker returns an invoker using the given runner.
func NewInvoker(runner Runner) *Invoker {
	return &Invoker{runner: runner}
}

// Invoke sends prompt to the named backend and returns its reply, enforcing
// timeout strictly (the process is killed on expiry). Replies are trimmed
// and ANSI-stripped: interactive model runners emit spinner and cursor
// control sequences that would otherwise confuse the response parser.
// No retries happen here; retry policy belongs to the orchestrator.
func (inv *Invoker) Invoke(ctx context.Context, backendID, prompt string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := inv.runner.Run(ctx, prompt, []string{"ollama", "run", backendID})
	if err != nil {
		return "", fmt.Errorf("invoke %s: %w", backendID, err)
	}

	text := strings.TrimSpace(ansi.Strip(out))
	if text == "" {
		return "", fmt.Errorf("invoke %s: %w", backendID, ErrEmptyResponse)
	}
	return text, nil
}
