// Package gitflow runs fixed sequences of external commands for the Git
// workflow shortcuts. Execution is strictly sequential and stops on the first
// failing step.
package gitflow

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"tiedye/internal/log"
)

// DefaultStepTimeout bounds a single external command. Network steps (pull,
// push) dominate; anything slower than this is stuck.
const DefaultStepTimeout = 2 * time.Minute

// Step is one external command in a workflow.
type Step struct {
	Name string
	Args []string
}

// String renders the step as the command line it runs.
func (s Step) String() string {
	return strings.Join(append([]string{s.Name}, s.Args...), " ")
}

// StepError reports which step of a workflow failed and why.
type StepError struct {
	Step   Step
	Stderr string
	Err    error
}

func (e *StepError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("step %q failed: %v: %s", e.Step, e.Err, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Runner executes workflow steps in a working directory.
type Runner struct {
	dir     string
	timeout time.Duration
	stdout  io.Writer
}

// NewRunner creates a runner for the given working directory.
func NewRunner(dir string) *Runner {
	return &Runner{dir: dir, timeout: DefaultStepTimeout, stdout: os.Stdout}
}

// SetOutput redirects step output, mainly for tests.
func (r *Runner) SetOutput(w io.Writer) {
	r.stdout = w
}

// Run executes the steps in order, stopping at the first failure and
// returning a StepError naming the failing step.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		if err := r.runStep(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runStep(ctx context.Context, step Step) error {
	log.Info("running: %s", step)

	stepCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(stepCtx, step.Name, step.Args...)
	cmd.Dir = r.dir
	cmd.Stdout = r.stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &StepError{Step: step, Stderr: stderr.String(), Err: err}
	}
	return nil
}

// StartFeature is the sequence for starting a new feature branch from an
// up-to-date main branch.
func StartFeature(branch string) []Step {
	return []Step{
		{Name: "git", Args: []string{"checkout", "main"}},
		{Name: "git", Args: []string{"pull", "origin", "main"}},
		{Name: "git", Args: []string{"checkout", "-b", branch}},
		{Name: "git", Args: []string{"push", "-u", "origin", branch}},
	}
}
