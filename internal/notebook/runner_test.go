// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notebook

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KusmierczykHobbyPrjs/sci-tools/pkg/types"
)

// call records one command dispatched to the mock executor.
type call struct {
	name string
	args []string
}

type mockExecutor struct {
	lookPathErr error
	runErr      map[string]error // command name -> forced error
	calls       []call

	// onRun lets a test observe or create files mid-run.
	onRun func(name string, args []string)
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.lookPathErr != nil {
		return "", m.lookPathErr
	}
	return "/usr/bin/" + file, nil
}

func (m *mockExecutor) Run(_ context.Context, stdout, _ io.Writer, name string, args ...string) error {
	m.calls = append(m.calls, call{name: name, args: args})
	if m.onRun != nil {
		m.onRun(name, args)
	}
	if err := m.runErr[name]; err != nil {
		return err
	}
	fmt.Fprintf(stdout, "ran %s\n", name)
	return nil
}

func writeNotebook(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "analysis.ipynb")
	if err := os.WriteFile(path, []byte(`{"cells": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunConvertsThenExecutes(t *testing.T) {
	dir := t.TempDir()
	nb := writeNotebook(t, dir)

	mock := &mockExecutor{}
	r := newRunner(types.NotebookConfig{}, mock)

	var stdout, stderr strings.Builder
	if err := r.Run(context.Background(), nb, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}

	if len(mock.calls) != 2 {
		t.Fatalf("got %d calls: %+v", len(mock.calls), mock.calls)
	}
	first := mock.calls[0]
	if first.name != "jupyter" || first.args[0] != "nbconvert" {
		t.Errorf("first call = %+v", first)
	}
	second := mock.calls[1]
	wantScript := filepath.Join(dir, "analysis.py")
	if second.name != "python3" || second.args[0] != wantScript {
		t.Errorf("second call = %+v, want python3 %s", second, wantScript)
	}
	if !strings.Contains(stdout.String(), "ran python3") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunUsesConfiguredBinaries(t *testing.T) {
	dir := t.TempDir()
	nb := writeNotebook(t, dir)

	mock := &mockExecutor{}
	r := newRunner(types.NotebookConfig{Jupyter: "jupyter-lab", Python: "python3.12"}, mock)

	var out strings.Builder
	if err := r.Run(context.Background(), nb, &out, &out); err != nil {
		t.Fatal(err)
	}
	if mock.calls[0].name != "jupyter-lab" || mock.calls[1].name != "python3.12" {
		t.Errorf("calls = %+v", mock.calls)
	}
}

func TestRunRemovesScriptUnlessKept(t *testing.T) {
	for _, keep := range []bool{false, true} {
		dir := t.TempDir()
		nb := writeNotebook(t, dir)
		script := filepath.Join(dir, "analysis.py")

		mock := &mockExecutor{
			onRun: func(name string, _ []string) {
				if name == "jupyter" {
					os.WriteFile(script, []byte("print('hi')\n"), 0o644)
				}
			},
		}
		r := newRunner(types.NotebookConfig{KeepScript: keep}, mock)

		var out strings.Builder
		if err := r.Run(context.Background(), nb, &out, &out); err != nil {
			t.Fatal(err)
		}

		_, err := os.Stat(script)
		if keep && err != nil {
			t.Errorf("keep=true: script removed: %v", err)
		}
		if !keep && !os.IsNotExist(err) {
			t.Errorf("keep=false: script still present (err=%v)", err)
		}
	}
}

func TestRunRejectsNonNotebook(t *testing.T) {
	r := newRunner(types.NotebookConfig{}, &mockExecutor{})
	var out strings.Builder
	err := r.Run(context.Background(), "script.py", &out, &out)
	if err == nil || !strings.Contains(err.Error(), "not a notebook") {
		t.Errorf("err = %v", err)
	}
}

func TestRunMissingNotebook(t *testing.T) {
	r := newRunner(types.NotebookConfig{}, &mockExecutor{})
	var out strings.Builder
	err := r.Run(context.Background(), filepath.Join(t.TempDir(), "absent.ipynb"), &out, &out)
	if err == nil {
		t.Fatal("expected error for missing notebook")
	}
}

func TestRunJupyterMissing(t *testing.T) {
	dir := t.TempDir()
	nb := writeNotebook(t, dir)

	mock := &mockExecutor{lookPathErr: fmt.Errorf("not found")}
	r := newRunner(types.NotebookConfig{}, mock)

	var out strings.Builder
	err := r.Run(context.Background(), nb, &out, &out)
	if err == nil || !strings.Contains(err.Error(), "not found on PATH") {
		t.Errorf("err = %v", err)
	}
	if len(mock.calls) != 0 {
		t.Errorf("commands ran without jupyter: %+v", mock.calls)
	}
}

func TestRunConversionFailure(t *testing.T) {
	dir := t.TempDir()
	nb := writeNotebook(t, dir)

	mock := &mockExecutor{runErr: map[string]error{"jupyter": fmt.Errorf("boom")}}
	r := newRunner(types.NotebookConfig{}, mock)

	var out strings.Builder
	err := r.Run(context.Background(), nb, &out, &out)
	if err == nil || !strings.Contains(err.Error(), "converting notebook") {
		t.Errorf("err = %v", err)
	}
	if len(mock.calls) != 1 {
		t.Errorf("python ran after failed conversion: %+v", mock.calls)
	}
}

func TestAvailable(t *testing.T) {
	if !newRunner(types.NotebookConfig{}, &mockExecutor{}).Available() {
		t.Error("Available() = false with working LookPath")
	}
	missing := &mockExecutor{lookPathErr: fmt.Errorf("nope")}
	if newRunner(types.NotebookConfig{}, missing).Available() {
		t.Error("Available() = true with failing LookPath")
	}
}
