package app_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weft/internal/adapters/config"
	"go.trai.ch/weft/internal/adapters/telemetry"
	"go.trai.ch/weft/internal/app"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// writeWorkspace materializes a small universe: one library publishing a
// plain artifact, and a minify transform backed by a real command.
func writeWorkspace(t *testing.T) (configPath, cacheDir string) {
	t.Helper()
	tmpDir := t.TempDir()

	input := filepath.Join(tmpDir, "lib.txt")
	require.NoError(t, os.WriteFile(input, []byte("plain content"), 0o600))

	cacheDir = filepath.Join(tmpDir, "cache")
	configPath = filepath.Join(tmpDir, "weft.yaml")
	content := fmt.Sprintf(`
version: "1"
cache_dir: %s
attributes:
  - name: minified
    type: bool
components:
  - group: com.acme
    name: lib
    version: "1.0"
    variants:
      - name: plain
        attributes:
          minified: false
        artifacts:
          - name: lib.txt
            path: %s
transforms:
  - action: minify
    from:
      minified: false
    to:
      minified: true
    cacheable: true
actions:
  - name: minify
    cmd: ["cp", "{input}", "{output_dir}/lib-min.txt"]
`, cacheDir, input)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath, cacheDir
}

func newApp(t *testing.T, ctrl *gomock.Controller) *app.App {
	t.Helper()
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()
	return app.New(config.NewFileLoader(), logger, telemetry.NewNoOp())
}

func TestApp_Resolve_RunsTransform(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	a := newApp(t, ctrl)
	configPath, _ := writeWorkspace(t)

	artifacts, err := a.Resolve(context.Background(), configPath, app.ResolveOptions{
		Attributes: []string{"minified=true"},
	})
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "lib-min.txt", artifacts[0].Artifact.Name)
	assert.Equal(t, 1, artifacts[0].Chain.Len())

	data, err := os.ReadFile(artifacts[0].Artifact.Path)
	require.NoError(t, err)
	assert.Equal(t, "plain content", string(data))
}

func TestApp_Resolve_SecondRunHitsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	a := newApp(t, ctrl)
	configPath, _ := writeWorkspace(t)

	first, err := a.Resolve(context.Background(), configPath, app.ResolveOptions{
		Attributes: []string{"minified=true"},
	})
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Make the cached output recognizable, then resolve again: the
	// output must come back unchanged instead of being rewritten.
	require.NoError(t, os.WriteFile(first[0].Artifact.Path, []byte("from cache"), 0o600))

	second, err := a.Resolve(context.Background(), configPath, app.ResolveOptions{
		Attributes: []string{"minified=true"},
	})
	require.NoError(t, err)
	require.Len(t, second, 1)
	data, err := os.ReadFile(second[0].Artifact.Path)
	require.NoError(t, err)
	assert.Equal(t, "from cache", string(data))
}

func TestApp_Resolve_DirectVariant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	a := newApp(t, ctrl)
	configPath, _ := writeWorkspace(t)

	artifacts, err := a.Resolve(context.Background(), configPath, app.ResolveOptions{
		Attributes: []string{"minified=false"},
	})
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "lib.txt", artifacts[0].Artifact.Name)
	assert.Zero(t, artifacts[0].Chain.Len())
}

func TestApp_Resolve_AttributeValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	a := newApp(t, ctrl)
	configPath, _ := writeWorkspace(t)

	_, err := a.Resolve(context.Background(), configPath, app.ResolveOptions{
		Attributes: []string{"minified"},
	})
	assert.Error(t, err, "attributes must be name=value")

	_, err = a.Resolve(context.Background(), configPath, app.ResolveOptions{
		Attributes: []string{"minified=not-a-bool"},
	})
	assert.Error(t, err, "a declared bool attribute rejects a non-bool value")

	_, err = a.Resolve(context.Background(), configPath, app.ResolveOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoRequestAttributes))
}

func TestApp_Resolve_UnsatisfiableAttribute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	a := newApp(t, ctrl)
	configPath, _ := writeWorkspace(t)

	// No variant or transform ever produces "nonexistent": the request
	// must fail up front instead of matching variants that simply lack it.
	_, err := a.Resolve(context.Background(), configPath, app.ResolveOptions{
		Attributes: []string{"nonexistent=true"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoMatchingVariant))
	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "nonexistent", zErr.Metadata()["attribute"])

	_, err = a.Chains(configPath, []string{"nonexistent=true"}, domain.FilterAll)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoMatchingVariant))
}

func TestApp_Chains_PlansWithoutExecuting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	a := newApp(t, ctrl)
	configPath, cacheDir := writeWorkspace(t)

	plans, err := a.Chains(configPath, []string{"minified=true"}, domain.FilterAll)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "com.acme:lib:1.0", plans[0].Component.String())
	assert.Equal(t, "plain", plans[0].Variant)
	assert.Equal(t, "minify", plans[0].Chain.String())

	// Planning never materializes outputs.
	_, statErr := os.Stat(filepath.Join(cacheDir, "outputs"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestApp_Clean(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	a := newApp(t, ctrl)
	configPath, cacheDir := writeWorkspace(t)

	_, err := a.Resolve(context.Background(), configPath, app.ResolveOptions{
		Attributes: []string{"minified=true"},
	})
	require.NoError(t, err)
	_, statErr := os.Stat(cacheDir)
	require.NoError(t, statErr)

	require.NoError(t, a.Clean(configPath))
	_, statErr = os.Stat(cacheDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestApp_Resolve_LoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := mocks.NewMockLogger(ctrl)
	loader := mocks.NewMockUniverseLoader(ctrl)
	loader.EXPECT().Load("missing.yaml").Return(nil, errors.New("no such file")).Times(1)

	a := app.New(loader, logger, telemetry.NewNoOp())
	_, err := a.Resolve(context.Background(), "missing.yaml", app.ResolveOptions{
		Attributes: []string{"minified=true"},
	})
	assert.Error(t, err)
}
