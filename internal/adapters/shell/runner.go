// Package shell runs transform actions declared as command templates.
package shell

import (
	"context"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ActionRunner = (*Runner)(nil)

// Runner implements ports.ActionRunner by executing the command template
// declared for each action. Templates substitute "{input}" with the
// input artifact path, "{output_dir}" with the allocated output
// location, and "{param.NAME}" with a declared parameter value.
type Runner struct {
	actions map[string][]string
	logger  ports.Logger
}

// NewRunner creates a Runner over the given action definitions.
func NewRunner(actions []domain.ActionSpec, logger ports.Logger) *Runner {
	m := make(map[string][]string, len(actions))
	for _, a := range actions {
		m[a.Name] = a.Command
	}
	return &Runner{actions: m, logger: logger}
}

// Run executes the action's command and returns the artifacts it
// materialized under the invocation's output directory.
func (r *Runner) Run(ctx context.Context, inv ports.ActionInvocation) ([]domain.Artifact, error) {
	template, ok := r.actions[inv.Action]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownAction, "action", inv.Action)
	}
	if len(template) == 0 {
		return nil, zerr.With(zerr.New("action has an empty command"), "action", inv.Action)
	}

	args := make([]string, len(template))
	for i, t := range template {
		args[i] = r.substitute(t, inv)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // action commands are declared by the build author
	cmd.Stdout = r.outputWriter(ctx, false)
	cmd.Stderr = r.outputWriter(ctx, true)

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		werr := zerr.With(zerr.Wrap(err, "action command failed"), "action", inv.Action)
		return nil, zerr.With(werr, "exit_code", exitCode)
	}

	return collectOutputs(inv.OutputDir)
}

func (r *Runner) substitute(arg string, inv ports.ActionInvocation) string {
	arg = strings.ReplaceAll(arg, "{input}", inv.Input.Path)
	arg = strings.ReplaceAll(arg, "{output_dir}", inv.OutputDir)
	for k, v := range inv.Parameters {
		arg = strings.ReplaceAll(arg, "{param."+k+"}", v)
	}
	return arg
}

// outputWriter streams command output into the recording vertex when one
// is attached to the context, falling back to the logger.
func (r *Runner) outputWriter(ctx context.Context, stderr bool) io.Writer {
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		if stderr {
			return vertex.Stderr()
		}
		return vertex.Stdout()
	}
	return &logWriter{logger: r.logger, stderr: stderr}
}

// collectOutputs lists the files the action materialized, named by their
// path relative to the output directory.
func collectOutputs(outputDir string) ([]domain.Artifact, error) {
	var outputs []domain.Artifact
	matches, err := filepath.Glob(filepath.Join(outputDir, "*"))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list action outputs")
	}
	for _, m := range matches {
		rel, err := filepath.Rel(outputDir, m)
		if err != nil {
			rel = filepath.Base(m)
		}
		outputs = append(outputs, domain.Artifact{Name: rel, Path: m})
	}
	return outputs, nil
}

type logWriter struct {
	logger ports.Logger
	stderr bool
}

func (w *logWriter) Write(p []byte) (int, error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if line == "" {
			continue
		}
		if w.stderr {
			w.logger.Warn(line)
		} else {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}
