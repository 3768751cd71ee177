package main

import (
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/irfansharif/spirograph/internal/app"
	"github.com/irfansharif/spirograph/internal/chime"
	"github.com/irfansharif/spirograph/internal/config"
	"github.com/irfansharif/spirograph/internal/render"
)

const logFlags = log.Ltime | log.Lshortfile

const defaultConfigPath = "spirograph.toml"

var runtimeLogger *log.Logger = log.New(io.Discard, "", 0)

var (
	configPath  = flag.String("config", "", "TOML file with settings and curves; 'w' saves back to it (default "+defaultConfigPath+")")
	tick        = flag.Duration("tick", 20*time.Millisecond, "time between animation steps")
	screensaver = flag.Bool("screensaver", false, "keep generating random curves")
	sound       = flag.Bool("sound", false, "chime when a curve completes a cycle")
)

func init() {
	log.SetFlags(logFlags)

	// The terminal belongs to the renderer, so debug output goes to stderr.
	if os.Getenv("SPIRO_DEBUG_RUNTIME") == "1" {
		runtimeLogger = log.New(os.Stderr, "[runtime] ", log.Ltime|log.Lmsgprefix)
	}
}

func main() {
	flag.Parse()

	conf, path := loadConfig()

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("Failed to initialize terminal: %v", err)
	}
	defer renderer.Fini()

	w, h := renderer.Screen().Size()
	application := app.NewApp(app.NewView(w, h), seed())
	application.MaxRandomDiameter = conf.MaxRandomDiameter
	if conf.Screensaver {
		application.StartScreensaver()
	} else {
		if err := application.LoadRecords(conf.Spiro); err != nil {
			renderer.Fini()
			log.Fatalf("Failed to load curves: %v", err)
		}
		application.View.Fit(application.Scene.Bounds())
	}

	c, err := chime.New(conf.Sound)
	if err != nil {
		// Non-fatal, the viewer runs fine without sound.
		log.Printf("Audio initialization failed: %v", err)
	}
	defer c.Close()

	eventHandlers := NewEventHandlers(application, renderer, c, conf, path)
	eventHandlers.run(conf.TickInterval.Duration)
}

// loadConfig reads the config file, if any, and applies the flags that were
// set explicitly on top of it.
func loadConfig() (*config.Config, string) {
	path := *configPath
	var conf *config.Config
	var err error
	if path == "" {
		path = defaultConfigPath
		conf, err = config.LoadOrDefault(path)
	} else {
		conf, err = config.Load(path)
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tick":
			conf.TickInterval = config.Duration{Duration: *tick}
		case "screensaver":
			conf.Screensaver = *screensaver
		case "sound":
			conf.Sound = *sound
		}
	})
	if err := conf.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}
	return conf, path
}

func seed() int64 {
	seedStr := os.Getenv("SPIRO_SEED")
	now := time.Now().Unix()
	if seedStr == "" {
		return now
	}
	seed, err := strconv.ParseInt(seedStr, 10, 64)
	if err != nil {
		log.Fatalf("Invalid SPIRO_SEED value '%s': %v", seedStr, err)
	}
	return seed
}
