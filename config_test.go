package blendlab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/blendlab/particles"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlScene = `
[camera]
distance = 12.0
yaw = 90.0

[emitter]
enabled = true
center = [1.0, 2.0, 3.0]

[emitter.particles]
capacity = 300
spawn_min = 2
spawn_max = 4

[cube]
enabled = false

[[triangles]]
vertices = [[0.0, 0.0, 0.0], [1.0, 0.0, 0.0], [0.0, 1.0, 0.0]]
color = [1.0, 0.0, 0.0, 0.5]
`

const yamlScene = `
camera:
  distance: 8
emitter:
  enabled: false
cube:
  half_size: 2
  alpha: 0.25
`

func TestParseSceneConfig_TOML(t *testing.T) {
	cfg, err := ParseSceneConfig([]byte(tomlScene), "toml")
	require.NoError(t, err)

	assert.Equal(t, float32(12), cfg.Camera.Distance)
	assert.Equal(t, float32(90), cfg.Camera.Yaw)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Emitter.Center)
	assert.Equal(t, 300, cfg.Emitter.Particles.Capacity)
	assert.Equal(t, 2, cfg.Emitter.Particles.SpawnMin)
	assert.Equal(t, 4, cfg.Emitter.Particles.SpawnMax)
	// Untouched keys keep their defaults.
	assert.Equal(t, particles.DefaultConfig().LifetimeMax, cfg.Emitter.Particles.LifetimeMax)
	assert.Equal(t, 0.2, cfg.Emitter.Particles.InitialFraction)
	assert.False(t, cfg.Cube.Enabled)
	require.Len(t, cfg.Triangles, 1)
	assert.Equal(t, [4]float32{1, 0, 0, 0.5}, cfg.Triangles[0].Color)

	modules := cfg.Modules(1)
	require.Len(t, modules, 3)
	assert.IsType(t, CameraModule{}, modules[0])
	pm := modules[1].(ParticleModule)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, pm.Center)
	tm := modules[2].(TransparencyModule)
	assert.Len(t, tm.Triangles, 1)
}

func TestParseSceneConfig_YAML(t *testing.T) {
	cfg, err := ParseSceneConfig([]byte(yamlScene), "yml")
	require.NoError(t, err)

	assert.Equal(t, float32(8), cfg.Camera.Distance)
	assert.False(t, cfg.Emitter.Enabled)
	assert.True(t, cfg.Cube.Enabled)
	assert.Equal(t, float32(2), cfg.Cube.HalfSize)

	modules := cfg.Modules(1)
	require.Len(t, modules, 2)
	tm := modules[1].(TransparencyModule)
	assert.Len(t, tm.Triangles, 12)
	assert.Equal(t, float32(0.25), tm.Colors[0][3])
}

func TestParseSceneConfig_Errors(t *testing.T) {
	_, err := ParseSceneConfig([]byte("a = "), "toml")
	assert.Error(t, err)

	_, err = ParseSceneConfig([]byte("camera: [1"), "yaml")
	assert.Error(t, err)

	_, err = ParseSceneConfig(nil, "json")
	assert.ErrorContains(t, err, "unsupported scene format")
}

func TestLoadSceneConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.TOML")
	require.NoError(t, os.WriteFile(path, []byte(tomlScene), 0644))

	cfg, err := LoadSceneConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Emitter.Particles.Capacity)

	_, err = LoadSceneConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultSceneRuns(t *testing.T) {
	cfg := DefaultSceneConfig()
	app := NewAppBuilder().UseModule(TimeModule{}).UseModule(cfg.Modules(3)...).Build()
	app.Step()
	app.Step()

	pbuf, ok := Resource[ParticleBuffers](app)
	require.True(t, ok)
	assert.Positive(t, pbuf.Count())

	tbuf, ok := Resource[TriangleBuffers](app)
	require.True(t, ok)
	assert.Equal(t, 12, tbuf.Count())

	tm, _ := Resource[Time](app)
	assert.Equal(t, uint64(1), tm.Frame)
}
