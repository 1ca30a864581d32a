package shell_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weft/internal/adapters/shell"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/weft/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func invocation(action, input, outputDir string, params map[string]string) ports.ActionInvocation {
	return ports.ActionInvocation{
		Action:     action,
		Parameters: params,
		Input:      domain.Artifact{Name: filepath.Base(input), Path: input},
		OutputDir:  outputDir,
	}
}

func TestRun_UnknownAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r := shell.NewRunner(nil, mocks.NewMockLogger(ctrl))

	_, err := r.Run(context.Background(), invocation("nope", "in.txt", t.TempDir(), nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownAction))
}

func TestRun_SubstitutesAndCollectsOutputs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("payload"), 0o600))
	outDir := filepath.Join(tmpDir, "out")
	require.NoError(t, os.MkdirAll(outDir, 0o750))

	r := shell.NewRunner([]domain.ActionSpec{{
		Name:    "copy",
		Command: []string{"cp", "{input}", "{output_dir}/copied.txt"},
	}}, mocks.NewMockLogger(ctrl))

	outputs, err := r.Run(context.Background(), invocation("copy", input, outDir, nil))
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, "copied.txt", outputs[0].Name)

	data, err := os.ReadFile(outputs[0].Path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestRun_SubstitutesParameters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	outDir := t.TempDir()
	r := shell.NewRunner([]domain.ActionSpec{{
		Name:    "stamp",
		Command: []string{"sh", "-c", "printf %s {param.level} > {output_dir}/level.txt"},
	}}, mocks.NewMockLogger(ctrl))

	outputs, err := r.Run(context.Background(),
		invocation("stamp", "unused", outDir, map[string]string{"level": "9"}))
	require.NoError(t, err)
	require.Len(t, outputs, 1)

	data, err := os.ReadFile(outputs[0].Path)
	require.NoError(t, err)
	assert.Equal(t, "9", string(data))
}

func TestRun_CommandFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

	r := shell.NewRunner([]domain.ActionSpec{{
		Name:    "fail",
		Command: []string{"sh", "-c", "exit 3"},
	}}, logger)

	_, err := r.Run(context.Background(), invocation("fail", "in.txt", t.TempDir(), nil))
	require.Error(t, err)
}

func TestRun_StreamsOutputToLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info("hello").Times(1)

	r := shell.NewRunner([]domain.ActionSpec{{
		Name:    "say",
		Command: []string{"echo", "hello"},
	}}, logger)

	_, err := r.Run(context.Background(), invocation("say", "in.txt", t.TempDir(), nil))
	require.NoError(t, err)
}

func TestRun_StreamsOutputToVertex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var stdout, stderr bytes.Buffer
	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Stdout().Return(io.Writer(&stdout)).Times(1)
	vertex.EXPECT().Stderr().Return(io.Writer(&stderr)).Times(1)

	// The logger must stay silent when a vertex captures the output.
	r := shell.NewRunner([]domain.ActionSpec{{
		Name:    "say",
		Command: []string{"echo", "hello"},
	}}, mocks.NewMockLogger(ctrl))

	ctx := ports.ContextWithVertex(context.Background(), vertex)
	_, err := r.Run(ctx, invocation("say", "in.txt", t.TempDir(), nil))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout.String())
}
