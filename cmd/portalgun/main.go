package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"portalgun/internal/audio"
	"portalgun/internal/config"
	"portalgun/internal/game"

	"github.com/gopxl/mainthread/v2"
)

func main() {
	configPath := flag.String("config", "", "YAML tuning file, reloaded on change")
	dumpConfig := flag.Bool("dump-config", false, "print the default tuning as YAML and exit")
	mute := flag.Bool("mute", false, "disable audio")
	flag.Parse()

	if *dumpConfig {
		data, err := config.Default().Marshal()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(string(data))
		return
	}

	// Resolve the config path before leaving the launch directory.
	if *configPath != "" {
		if abs, err := filepath.Abs(*configPath); err == nil {
			*configPath = abs
		}
	}

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Printf("Config: %v, using defaults", err)
		}
		cfg = loaded
	}

	var sink audio.Sink = audio.Nop{}
	if cfg.Audio.Enabled && !*mute {
		tones := audio.NewTones(cfg.Audio.Volume)
		if err := tones.Init(); err != nil {
			log.Printf("Audio: %v, continuing without sound", err)
		} else {
			defer tones.Close()
			sink = tones
		}
	}

	g := game.New(cfg, sink)
	if *configPath != "" {
		g.ConfigPath = *configPath
		w, err := config.NewWatcher(*configPath)
		if err != nil {
			log.Printf("Config: %v, live reload disabled", err)
		} else {
			defer w.Close()
			g.Watcher = w
		}
	}

	// raylib and GL calls must stay on the main OS thread
	mainthread.Run(func() {
		mainthread.Call(g.Run)
	})
}
