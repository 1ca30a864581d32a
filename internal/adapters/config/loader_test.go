package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weft/internal/adapters/config"
	"go.trai.ch/weft/internal/core/domain"
)

func writeUniverse(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weft.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FullUniverse(t *testing.T) {
	path := writeUniverse(t, `
version: "1"
cache_dir: .cache/transforms
attributes:
  - name: usage
    type: string
  - name: minified
    type: bool
  - name: jvm
    type: int
    compatibility: at-least
  - name: instrumented
    type: bool
    extra: incompatible
components:
  - group: com.acme
    name: lib
    version: "1.0"
    variants:
      - name: plain
        attributes:
          usage: java-api
          minified: false
          jvm: 11
        capabilities:
          - com.acme:lib
        artifacts:
          - name: lib.jar
            path: libs/lib.jar
        dependencies:
          - com.acme:core:1.0
  - group: com.acme
    name: app
    version: "0.1"
    project: true
    variants:
      - name: main
        attributes:
          usage: java-runtime
transforms:
  - action: minify
    from:
      minified: false
    to:
      minified: true
    parameters:
      level: "9"
    cacheable: true
    uses_dependencies: true
actions:
  - name: minify
    cmd: ["minifier", "--level", "{param.level}", "{input}", "{output_dir}"]
`)

	loader := config.NewFileLoader()
	u, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ".cache/transforms", u.CacheDir)

	require.Len(t, u.Attributes, 4)
	assert.Equal(t, domain.KindInt, u.Attributes[2].Kind)
	assert.Equal(t, "at-least", u.Attributes[2].Compatibility)
	assert.Equal(t, "incompatible", u.Attributes[3].ExtraPolicy)

	require.Len(t, u.Components, 2)
	lib := u.Components[0]
	assert.Equal(t, "com.acme:lib:1.0", lib.Coordinate.String())
	assert.False(t, lib.Project)
	require.Len(t, lib.Variants, 1)
	plain := lib.Variants[0]
	assert.Equal(t, "jvm=11,minified=false,usage=java-api", plain.Attributes.String())
	require.Len(t, plain.Capabilities, 1)
	assert.Equal(t, "com.acme:lib", plain.Capabilities[0].String())
	require.Len(t, plain.Artifacts, 1)
	assert.Equal(t, "libs/lib.jar", plain.Artifacts[0].Path)
	require.Len(t, plain.Dependencies, 1)
	assert.Equal(t, "com.acme:core:1.0", plain.Dependencies[0].String())
	assert.True(t, u.Components[1].Project)

	require.Len(t, u.Transforms, 1)
	minify := u.Transforms[0]
	assert.Equal(t, "minify(level=9)", minify.ID())
	assert.True(t, minify.Cacheable)
	assert.True(t, minify.UsesDependencies)
	v, ok := minify.From.Get("minified")
	require.True(t, ok)
	assert.Equal(t, domain.BoolValue(false), v)

	require.Len(t, u.Actions, 1)
	assert.Equal(t, "minify", u.Actions[0].Name)
	assert.Contains(t, u.Actions[0].Command, "{param.level}")
}

func TestLoad_DefaultCacheDir(t *testing.T) {
	path := writeUniverse(t, `version: "1"`)
	u, err := config.NewFileLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultCacheDir, u.CacheDir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.NewFileLoader().Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeUniverse(t, "components: {not a list")
	_, err := config.NewFileLoader().Load(path)
	assert.Error(t, err)
}

func TestLoad_ValueKindMismatch(t *testing.T) {
	path := writeUniverse(t, `
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
          minified: "yes"
`)
	_, err := config.NewFileLoader().Load(path)
	assert.Error(t, err, "a declared bool attribute rejects a string value")
}

func TestLoad_UnknownAttributeType(t *testing.T) {
	path := writeUniverse(t, `
attributes:
  - name: size
    type: float
`)
	_, err := config.NewFileLoader().Load(path)
	assert.Error(t, err)
}

func TestLoad_MalformedDependency(t *testing.T) {
	path := writeUniverse(t, `
components:
  - group: com.acme
    name: lib
    version: "1.0"
    variants:
      - name: plain
        dependencies:
          - just-a-name
`)
	_, err := config.NewFileLoader().Load(path)
	assert.Error(t, err)
}

func TestLoad_TransformWithoutAction(t *testing.T) {
	path := writeUniverse(t, `
transforms:
  - from:
      minified: false
    to:
      minified: true
`)
	_, err := config.NewFileLoader().Load(path)
	assert.Error(t, err)
}
