// Command pixelcube renders a rotating lattice of cubes through a low-resolution offscreen target,
// scaled up onto the window for a pixelated look.
package main

import (
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/pixelcube/app"
	"github.com/Carmen-Shannon/pixelcube/config"
	"github.com/Carmen-Shannon/pixelcube/engine"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer"
	"github.com/Carmen-Shannon/pixelcube/engine/window"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	// GLFW and the surface must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		preset     = flag.String("preset", "", "named preset: classic | auto | keystep | drag")
		mode       = flag.String("mode", "", "orientation mode: auto | keystep | drag")
		size       = flag.Int("size", 0, "cubes per lattice edge")
		spacing    = flag.Float64("spacing", 0, "gap between cubes as a fraction of the cube size")
		resolution = flag.Int("resolution", 0, "offscreen resolution divisor")
		width      = flag.Int("width", 0, "window width")
		height     = flag.Int("height", 0, "window height")
		fpsLimit   = flag.Float64("fps", 0, "frame rate cap, 0 for uncapped")
		profile    = flag.Bool("profile", false, "log frame and memory statistics every second")
		debug      = flag.Bool("debug", false, "enable debug logging")
		software   = flag.Bool("software", false, "force the software (fallback) adapter")
		saveConfig = flag.String("save-config", "", "write the effective config to this path and exit")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := loadConfig(*configPath, *preset)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if *mode != "" {
		cfg.Mode = *mode
	}
	if *size > 0 {
		cfg.Lattice.Size = *size
	}
	if *spacing > 0 {
		cfg.Lattice.Spacing = *spacing
	}
	if *resolution > 0 {
		cfg.Compositor.Resolution = *resolution
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	cfg.Profiling = cfg.Profiling || *profile
	cfg.Debug = cfg.Debug || *debug

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	if *saveConfig != "" {
		if err := config.Save(*saveConfig, cfg); err != nil {
			log.Fatal().Err(err).Str("path", *saveConfig).Msg("save config")
		}
		log.Info().Str("path", *saveConfig).Msg("config written")
		return
	}

	if err := run(cfg, *software, *fpsLimit); err != nil {
		log.Fatal().Err(err).Msg("pixelcube")
	}
}

// loadConfig starts from the file when one is given, otherwise from the preset or the defaults.
func loadConfig(path, preset string) (*config.Config, error) {
	switch {
	case path != "":
		return config.Load(path)
	case preset != "":
		return config.Preset(preset)
	default:
		return config.Default(), nil
	}
}

func run(cfg *config.Config, software bool, fpsLimit float64) error {
	w, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Warn().Err(err).Msg("close window")
		}
	}()

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, w, renderer.WithForceSoftwareRenderer(software))
	if err != nil {
		return err
	}
	defer r.Release()

	a, err := app.NewApp(r, w.Width(), w.Height(), app.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer a.Release()
	a.Bind(w)

	e := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithProfiling(cfg.Profiling),
		engine.WithRenderFrameLimit(fpsLimit),
		engine.WithFrameCallback(a.Frame),
		engine.WithResizeCallback(a.Resize),
	)
	return e.Run()
}
