// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notebook runs Jupyter notebooks as plain scripts: the notebook
// is converted with nbconvert and the resulting script is executed with
// the configured interpreter.
package notebook

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/KusmierczykHobbyPrjs/sci-tools/pkg/types"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Runner converts and executes notebooks.
type Runner struct {
	cfg  types.NotebookConfig
	exec executor
}

// NewRunner builds a Runner from config, filling in the jupyter and python
// binary defaults.
func NewRunner(cfg types.NotebookConfig) *Runner {
	return newRunner(cfg, &osExecutor{})
}

func newRunner(cfg types.NotebookConfig, exec executor) *Runner {
	if cfg.Jupyter == "" {
		cfg.Jupyter = "jupyter"
	}
	if cfg.Python == "" {
		cfg.Python = "python3"
	}
	return &Runner{cfg: cfg, exec: exec}
}

// Available reports whether the jupyter binary exists on PATH.
func (r *Runner) Available() bool {
	_, err := r.exec.LookPath(r.cfg.Jupyter)
	return err == nil
}

// Run converts notebookPath to a script and executes it, piping output to
// stdout and stderr. The intermediate script is removed afterwards unless
// the config keeps it.
func (r *Runner) Run(ctx context.Context, notebookPath string, stdout, stderr io.Writer) error {
	if !strings.HasSuffix(notebookPath, ".ipynb") {
		return fmt.Errorf("not a notebook: %s", notebookPath)
	}
	if _, err := os.Stat(notebookPath); err != nil {
		return fmt.Errorf("reading notebook: %w", err)
	}
	if !r.Available() {
		return fmt.Errorf("%s not found on PATH", r.cfg.Jupyter)
	}

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	if err := r.exec.Run(ctx, stderr, stderr, r.cfg.Jupyter,
		"nbconvert", "--to", "script", notebookPath); err != nil {
		return fmt.Errorf("converting notebook %s: %w", notebookPath, err)
	}

	scriptPath := strings.TrimSuffix(notebookPath, filepath.Ext(notebookPath)) + ".py"
	if !r.cfg.KeepScript {
		defer os.Remove(scriptPath)
	}

	if err := r.exec.Run(ctx, stdout, stderr, r.cfg.Python, scriptPath); err != nil {
		return fmt.Errorf("running %s: %w", scriptPath, err)
	}
	return nil
}
