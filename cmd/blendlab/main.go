package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/gekko3d/blendlab"
)

// reportModule logs emitter and mesh state every Every frames.
type reportModule struct {
	Every uint64
}

func (m reportModule) Install(app *blendlab.App, cmd *blendlab.Commands) {
	if m.Every == 0 {
		return
	}
	if _, ok := blendlab.Resource[blendlab.ParticleEmitter](app); ok {
		app.UseSystem(blendlab.System(func(em *blendlab.ParticleEmitter, buf *blendlab.ParticleBuffers, t *blendlab.Time, log blendlab.Logger) {
			if t.Frame%m.Every != 0 {
				return
			}
			stats := em.SortStats()
			log.Infof("frame %d: %d particles packed, sorts full=%d incremental=%d shifts=%d, dt=%s",
				t.Frame, buf.Count(), stats.FullSorts, stats.IncrementalSorts, stats.Shifts, t.Dt)
		}).InStage(blendlab.Render))
	}
	if _, ok := blendlab.Resource[blendlab.TranslucentMesh](app); ok {
		app.UseSystem(blendlab.System(func(mesh *blendlab.TranslucentMesh, buf *blendlab.TriangleBuffers, t *blendlab.Time, log blendlab.Logger) {
			if t.Frame%m.Every != 0 {
				return
			}
			log.Debugf("frame %d: triangle order %v", t.Frame, buf.Order)
		}).InStage(blendlab.Render))
	}
}

func main() {
	configPath := flag.String("config", "", "Scene config (.toml, .yaml or .yml); built-in scene when empty")
	frames := flag.Int("frames", 600, "Frames to simulate; 0 runs until interrupted")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Particle random seed")
	debug := flag.Bool("debug", false, "Enable debug logging")
	report := flag.Uint64("report", 60, "Log a summary every N frames; 0 disables")
	flag.Parse()

	logger := blendlab.NewDefaultLogger("blendlab", *debug)

	scene := blendlab.DefaultSceneConfig()
	if *configPath != "" {
		var err error
		scene, err = blendlab.LoadSceneConfig(*configPath)
		if err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
	}

	builder := blendlab.NewAppBuilder().
		UseModule(blendlab.LoggingModule{Logger: logger}, blendlab.TimeModule{}).
		UseModule(scene.Modules(*seed)...).
		UseModule(reportModule{Every: *report})
	app := builder.Build()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Infof("running %d frames (seed %d)", *frames, *seed)
	if err := app.RunFrames(ctx, *frames); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	logger.Infof("stopped after %d frames", app.Frame())
}
