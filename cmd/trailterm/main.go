// Trailterm runs the image trail in a terminal. Each stamp is a tinted block
// of cells; moving the mouse over the terminal draws the trail. Quit with
// Esc, Ctrl-C, or q.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/trail"
	"github.com/phanxgames/trail/internal/prefs"
	"github.com/phanxgames/trail/term"
)

func main() {
	store := prefs.Open("trailterm")
	p := store.Get()

	var (
		configPath string
		logPath    string
		tcfg       term.Config
	)
	flag.StringVar(&configPath, "config", "", "YAML config file (default: built-in tuning)")
	flag.StringVar(&p.ImageDir, "images", p.ImageDir, "folder whose image names become the stamp set")
	flag.BoolVar(&p.Tone, "tone", p.Tone, "beep on every stamp")
	flag.BoolVar(&p.ShowHUD, "stats", p.ShowHUD, "show counters on the top row")
	flag.IntVar(&tcfg.CellW, "cell-w", 8, "pixels per cell horizontally")
	flag.IntVar(&tcfg.CellH, "cell-h", 16, "pixels per cell vertically")
	flag.StringVar(&logPath, "log", "", "write logs to this file instead of discarding them")
	flag.Parse()
	tcfg.ShowStats = p.ShowHUD

	if err := run(store, p, configPath, logPath, tcfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(store *prefs.Store, p prefs.Prefs, configPath, logPath string, tcfg term.Config) error {
	// The screen owns the terminal, so logs go to a file or nowhere.
	logger, closeLog, err := openLog(logPath)
	if err != nil {
		return err
	}
	defer closeLog()
	log.SetOutput(logger.Writer())

	cfg, err := trail.Load(configPath)
	if err != nil {
		return err
	}
	refs := imageRefs(p.ImageDir)
	if len(refs) == 0 {
		refs = []trail.ImageRef{"a", "b", "c", "d", "e"}
	}
	effect, err := trail.NewEffect(refs, cfg, trail.WithLogger(logger))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	r := term.NewRenderer(screen, effect, tcfg)
	defer r.Close()
	if p.Tone {
		tone, err := term.NewTone(880, 40*time.Millisecond)
		if err != nil {
			// Non-fatal, the trail runs silent.
			logger.Printf("audio unavailable: %v", err)
		} else {
			r.AttachTone(tone)
		}
	}

	store.Set(p)
	if err := store.Save(); err != nil {
		logger.Printf("%v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := r.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log.New(f, "[trailterm] ", log.LstdFlags), func() { f.Close() }, nil
}

// imageRefs lists the image file names in dir; the terminal only needs
// their names for coloring.
func imageRefs(dir string) []trail.ImageRef {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".webp":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	refs := make([]trail.ImageRef, len(names))
	for i, n := range names {
		refs[i] = trail.ImageRef(n)
	}
	return refs
}
