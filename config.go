package blendlab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/gekko3d/blendlab/particles"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// SceneConfig describes a demo scene on disk.
type SceneConfig struct {
	Camera    CameraConfig     `toml:"camera" yaml:"camera"`
	Emitter   EmitterConfig    `toml:"emitter" yaml:"emitter"`
	Cube      CubeConfig       `toml:"cube" yaml:"cube"`
	Triangles []TriangleConfig `toml:"triangles" yaml:"triangles"`
}

type CameraConfig struct {
	Target   [3]float32 `toml:"target" yaml:"target"`
	Distance float32    `toml:"distance" yaml:"distance"`
	// Angles in degrees.
	Yaw        float32 `toml:"yaw" yaml:"yaw"`
	Pitch      float32 `toml:"pitch" yaml:"pitch"`
	OrbitSpeed float32 `toml:"orbit_speed" yaml:"orbit_speed"`
}

type EmitterConfig struct {
	Enabled   bool             `toml:"enabled" yaml:"enabled"`
	Center    [3]float32       `toml:"center" yaml:"center"`
	Particles particles.Config `toml:"particles" yaml:"particles"`
}

type CubeConfig struct {
	Enabled  bool    `toml:"enabled" yaml:"enabled"`
	HalfSize float32 `toml:"half_size" yaml:"half_size"`
	Alpha    float32 `toml:"alpha" yaml:"alpha"`
}

type TriangleConfig struct {
	Vertices [3][3]float32 `toml:"vertices" yaml:"vertices"`
	Color    [4]float32    `toml:"color" yaml:"color"`
}

func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Camera: CameraConfig{
			Distance:   10,
			Pitch:      20,
			OrbitSpeed: 0.5,
		},
		Emitter: EmitterConfig{
			Enabled:   true,
			Particles: particles.DefaultConfig(),
		},
		Cube: CubeConfig{
			Enabled:  true,
			HalfSize: 1,
			Alpha:    0.5,
		},
	}
}

// LoadSceneConfig reads a .toml, .yaml or .yml scene. Fields missing from the
// file keep their DefaultSceneConfig values.
func LoadSceneConfig(path string) (SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("read scene config: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	cfg, err := ParseSceneConfig(data, format)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseSceneConfig decodes data in the given format ("toml", "yaml" or "yml").
func ParseSceneConfig(data []byte, format string) (SceneConfig, error) {
	cfg := DefaultSceneConfig()
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return SceneConfig{}, fmt.Errorf("parse toml scene: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return SceneConfig{}, fmt.Errorf("parse yaml scene: %w", err)
		}
	default:
		return SceneConfig{}, fmt.Errorf("unsupported scene format %q", format)
	}
	return cfg, nil
}

func (c CameraConfig) OrbitCamera() OrbitCamera {
	return OrbitCamera{
		Target:     mgl32.Vec3(c.Target),
		Distance:   c.Distance,
		Yaw:        mgl32.DegToRad(c.Yaw),
		Pitch:      mgl32.DegToRad(c.Pitch),
		OrbitSpeed: mgl32.DegToRad(c.OrbitSpeed),
	}
}

// Modules turns the scene into the modules that run it. seed feeds the
// particle emitter.
func (c SceneConfig) Modules(seed int64) []Module {
	modules := []Module{CameraModule{Camera: c.Camera.OrbitCamera()}}

	if c.Emitter.Enabled {
		modules = append(modules, ParticleModule{
			Config: c.Emitter.Particles,
			Center: mgl32.Vec3(c.Emitter.Center),
			Seed:   seed,
		})
	}

	var tris [][3]mgl32.Vec3
	var colors [][4]float32
	if c.Cube.Enabled && math32.Abs(c.Cube.HalfSize) > 0 {
		tris, colors = TranslucentCube(c.Cube.HalfSize, c.Cube.Alpha)
	}
	for _, t := range c.Triangles {
		tris = append(tris, [3]mgl32.Vec3{
			mgl32.Vec3(t.Vertices[0]),
			mgl32.Vec3(t.Vertices[1]),
			mgl32.Vec3(t.Vertices[2]),
		})
		colors = append(colors, t.Color)
	}
	if len(tris) > 0 {
		modules = append(modules, TransparencyModule{Triangles: tris, Colors: colors})
	}
	return modules
}
