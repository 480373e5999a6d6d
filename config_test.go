package trail

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.PoolSize != 10 || cfg.Threshold != 100 {
		t.Errorf("pool %d threshold %v, want 10 and 100", cfg.PoolSize, cfg.Threshold)
	}
	tm, _ := cfg.resolve()
	if tm.pop != 0.3 || tm.dwell != 0.2 || tm.fade != 0.5 {
		t.Errorf("timings = %v/%v/%v", tm.pop, tm.dwell, tm.fade)
	}
	if tm.policy != BusyPreempt {
		t.Errorf("policy = %v", tm.policy)
	}
}

func TestParseConfigFillsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
pool_size: 4
threshold: 60
fade_duration: 750ms
busy_policy: skip-busy
pop_ease: power2.out
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PoolSize != 4 || cfg.Threshold != 60 {
		t.Errorf("explicit fields lost: %+v", cfg)
	}
	if cfg.FadeDuration != 750*time.Millisecond {
		t.Errorf("FadeDuration = %v", cfg.FadeDuration)
	}
	if cfg.BusyPolicy != "skip-busy" || cfg.PopEase != "power2.out" {
		t.Errorf("strings lost: %+v", cfg)
	}
	d := DefaultConfig()
	if cfg.PopDuration != d.PopDuration || cfg.FadeEase != d.FadeEase || cfg.NarrowBreakpoint != d.NarrowBreakpoint {
		t.Errorf("omitted fields should take defaults: %+v", cfg)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative pool", "pool_size: -2"},
		{"negative threshold", "threshold: -5"},
		{"unknown ease", "fade_ease: squiggle"},
		{"unknown policy", "busy_policy: queue"},
		{"marquee shift", "marquee_shift: 2"},
		{"negative fade", "fade_duration: -1s"},
		{"zero pool", "pool_size: 0"},
		{"zero threshold", "threshold: 0"},
		{"zero marquee shift", "marquee_shift: 0"},
		{"zero marquee duration", "marquee_duration: 0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("err = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
	if _, err := ParseConfig([]byte("pool_size: [")); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trail.yaml")
	if err := os.WriteFile(path, []byte("threshold: 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Threshold != 42 || cfg.PoolSize != DefaultPoolSize {
		t.Errorf("cfg = %+v", cfg)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TRAIL_POOL_SIZE", "6")
	t.Setenv("TRAIL_DWELL_DURATION", "1s")
	t.Setenv("TRAIL_BUSY_POLICY", "skip-busy")
	t.Setenv("TRAIL_DEBUG", "true")

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.PoolSize != 6 || cfg.DwellDuration != time.Second || cfg.BusyPolicy != "skip-busy" || !cfg.Debug {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Threshold != 100 {
		t.Errorf("unset vars should keep values; threshold %v", cfg.Threshold)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("TRAIL_THRESHOLD", "-3")
	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("err = %v, want ErrInvalidConfiguration", err)
	}

	t.Setenv("TRAIL_THRESHOLD", "100")
	t.Setenv("TRAIL_MARQUEE_SHIFT", "0")
	cfg = DefaultConfig()
	if err := ApplyEnv(&cfg); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("marquee shift 0: err = %v, want ErrInvalidConfiguration", err)
	}
	t.Setenv("TRAIL_MARQUEE_SHIFT", "0.5")

	t.Setenv("TRAIL_THRESHOLD", "far")
	cfg = DefaultConfig()
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("unparsable value should fail")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trail.yaml")
	if err := os.WriteFile(path, []byte("pool_size: 5\nthreshold: 80\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRAIL_THRESHOLD", "120")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PoolSize != 5 || cfg.Threshold != 120 {
		t.Errorf("file then env: %+v", cfg)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PoolSize != DefaultPoolSize || cfg.Threshold != 120 {
		t.Errorf("defaults then env: %+v", cfg)
	}
}

func TestParseConfigFadeFromStamp(t *testing.T) {
	cfg, err := ParseConfig([]byte("fade_from_stamp: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	tm, _ := cfg.resolve()
	if !tm.fromStamp || tm.appearFor() != 0.2 || tm.holdFor() != 0 {
		t.Errorf("appear %v hold %v, want 0.2 and 0", tm.appearFor(), tm.holdFor())
	}
	tm, _ = DefaultConfig().resolve()
	if tm.appearFor() != 0.3 || tm.holdFor() != 0.2 {
		t.Errorf("sequential appear %v hold %v, want 0.3 and 0.2", tm.appearFor(), tm.holdFor())
	}
}

func TestRotationRange(t *testing.T) {
	tm, err := DefaultConfig().resolve()
	if err != nil {
		t.Fatal(err)
	}
	if tm.rotation.Sample(0) != degToRad(-10) {
		t.Errorf("min rotation = %v", tm.rotation.Sample(0))
	}
	if tm.rotation.Sample(0.5) != 0 {
		t.Errorf("mid rotation = %v", tm.rotation.Sample(0.5))
	}
}
