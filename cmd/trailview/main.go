// Trailview opens a window whose whole area is the hero section: moving the
// cursor stamps images from a folder along its path. Narrow windows show the
// scrolling strip instead.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/phanxgames/trail"
	"github.com/phanxgames/trail/hero"
	"github.com/phanxgames/trail/internal/prefs"
)

func main() {
	store := prefs.Open("trailview")
	p := store.Get()

	var (
		configPath string
		scriptPath string
		debug      bool
	)
	flag.StringVar(&configPath, "config", "", "YAML config file (default: built-in tuning)")
	flag.StringVar(&p.ImageDir, "images", p.ImageDir, "folder of png, jpg, or webp images")
	flag.IntVar(&p.WindowWidth, "width", p.WindowWidth, "window width")
	flag.IntVar(&p.WindowHeight, "height", p.WindowHeight, "window height")
	flag.BoolVar(&p.ShowHUD, "hud", p.ShowHUD, "show the stats overlay")
	flag.BoolVar(&debug, "debug", false, "log effect stats every second")
	flag.StringVar(&scriptPath, "script", "", "JSON test script to replay")
	flag.Parse()

	if err := run(store, p, configPath, scriptPath, debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(store *prefs.Store, p prefs.Prefs, configPath, scriptPath string, debug bool) error {
	cfg, err := trail.Load(configPath)
	if err != nil {
		return err
	}
	if debug {
		cfg.Debug = true
	}

	maxW, maxH := hero.MaxStampSize(p.WindowWidth, p.WindowHeight)
	lib, err := hero.LoadDir(os.DirFS(p.ImageDir), ".", maxW, maxH)
	if err != nil {
		// An empty folder still opens the window, just without a trail.
		log.Printf("[trailview] %v", err)
		lib = hero.NewLibrary()
	}

	h := hero.New(lib, cfg)
	if scriptPath != "" {
		if err := attachScript(h, scriptPath); err != nil {
			return err
		}
	}

	store.Set(p)
	if err := store.Save(); err != nil {
		log.Printf("[trailview] %v", err)
	}

	return hero.Run(h, hero.RunConfig{
		Title:   "Trail",
		Width:   p.WindowWidth,
		Height:  p.WindowHeight,
		ShowHUD: p.ShowHUD,
	})
}

func attachScript(h *hero.Hero, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	runner, err := trail.LoadTestScript(data)
	if err != nil {
		return err
	}
	runner.OnScreenshot = h.Screenshot
	if e := h.Effect(); e != nil {
		e.SetTestRunner(runner)
	}
	return nil
}
