// Package download fetches the sentence-transformer weights used by the
// original retrieval pipeline through the huggingface-cli tool.
package download

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Runner shells out to a Hugging Face style download CLI
type Runner struct {
	CLI      string
	Endpoint string // exported to the child as HF_ENDPOINT, e.g. https://hf-mirror.com
	Timeout  time.Duration
	Resume   bool
}

// Request names the repository and the destination directory
type Request struct {
	Repo     string
	LocalDir string
}

// Result captures what the CLI printed and how long it took
type Result struct {
	Success  bool
	Output   string
	Error    string
	Duration time.Duration
}

// NewRunner returns a runner for huggingface-cli with resume enabled
func NewRunner() *Runner {
	return &Runner{
		CLI:     "huggingface-cli",
		Timeout: 30 * time.Minute,
		Resume:  true,
	}
}

// Args returns the CLI arguments for req
func (r *Runner) Args(req Request) []string {
	args := []string{"download"}
	if r.Resume {
		args = append(args, "--resume-download")
	}
	args = append(args, req.Repo)
	if req.LocalDir != "" {
		args = append(args, "--local-dir", req.LocalDir)
	}
	return args
}

func (r *Runner) command(ctx context.Context, req Request) *exec.Cmd {
	cmd := exec.CommandContext(ctx, r.CLI, r.Args(req)...)
	if r.Endpoint != "" {
		cmd.Env = append(cmd.Environ(), "HF_ENDPOINT="+r.Endpoint)
	}
	return cmd
}

// Run executes the download. A failing CLI is reported in the Result, not
// as an error; errors are reserved for bad input.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Repo == "" {
		return nil, errors.New("repository is required")
	}
	if r.CLI == "" {
		return nil, errors.New("download CLI is not configured")
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	start := time.Now()
	output, err := r.command(ctx, req).CombinedOutput()
	result := &Result{
		Success:  err == nil,
		Output:   string(output),
		Duration: time.Since(start),
	}

	if err != nil {
		if ctx.Err() != nil {
			result.Error = fmt.Sprintf("download timed out after %s", r.Timeout)
		} else {
			result.Error = err.Error()
		}
	}

	return result, nil
}
