package trail

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override read by ApplyEnv.
const EnvPrefix = "TRAIL_"

// Config controls pool size, trigger spacing, and the stamp animation.
// Durations accept Go duration strings ("300ms") in YAML and the environment.
type Config struct {
	// PoolSize is the number of reusable slots.
	PoolSize int `yaml:"pool_size" env:"POOL_SIZE"`
	// Threshold is the displacement that must be exceeded before a stamp fires.
	Threshold float64 `yaml:"threshold" env:"THRESHOLD"`

	// StartScale is the scale a stamp appears at before popping to 1.
	StartScale float64 `yaml:"start_scale" env:"START_SCALE"`
	// RestScale is the scale of hidden slots.
	RestScale float64 `yaml:"rest_scale" env:"REST_SCALE"`
	// MaxRotationDeg bounds the random tilt: each stamp gets [-Max, +Max).
	MaxRotationDeg float64 `yaml:"max_rotation_deg" env:"MAX_ROTATION_DEG"`

	PopDuration   time.Duration `yaml:"pop_duration" env:"POP_DURATION"`
	DwellDuration time.Duration `yaml:"dwell_duration" env:"DWELL_DURATION"`
	FadeDuration  time.Duration `yaml:"fade_duration" env:"FADE_DURATION"`
	// FadeFromStamp starts the fade DwellDuration after the stamp instead of
	// after the pop, so a pop longer than the dwell overlaps the fade.
	FadeFromStamp bool `yaml:"fade_from_stamp" env:"FADE_FROM_STAMP"`
	// FadeOffset is how far a stamp drifts down while fading.
	FadeOffset float64 `yaml:"fade_offset" env:"FADE_OFFSET"`
	PopEase    string  `yaml:"pop_ease" env:"POP_EASE"`
	FadeEase   string  `yaml:"fade_ease" env:"FADE_EASE"`

	// BusyPolicy is "preempt" or "skip-busy".
	BusyPolicy string `yaml:"busy_policy" env:"BUSY_POLICY"`

	// Marquee settings for the narrow-viewport variant.
	MarqueeDuration  time.Duration `yaml:"marquee_duration" env:"MARQUEE_DURATION"`
	MarqueeShift     float64       `yaml:"marquee_shift" env:"MARQUEE_SHIFT"`
	NarrowBreakpoint float64       `yaml:"narrow_breakpoint" env:"NARROW_BREAKPOINT"`

	Debug bool `yaml:"debug" env:"DEBUG"`
}

// DefaultConfig returns the hero trail's stock tuning.
func DefaultConfig() Config {
	return Config{
		PoolSize:         DefaultPoolSize,
		Threshold:        DefaultThreshold,
		StartScale:       0.8,
		RestScale:        0.5,
		MaxRotationDeg:   10,
		PopDuration:      300 * time.Millisecond,
		DwellDuration:    200 * time.Millisecond,
		FadeDuration:     500 * time.Millisecond,
		FadeOffset:       100,
		PopEase:          "out-back",
		FadeEase:         "in-cubic",
		BusyPolicy:       BusyPreempt.String(),
		MarqueeDuration:  30 * time.Second,
		MarqueeShift:     0.5,
		NarrowBreakpoint: 768,
	}
}

// LoadConfig reads a YAML config file. Omitted fields take their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data over DefaultConfig, so omitted keys
// keep their defaults and explicit values, zero included, are validated as
// written.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any TRAIL_* environment variables that are set
// and re-validates the result.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return cfg.Validate()
}

// Load resolves the config programs run with: the YAML file at path, or the
// defaults when path is empty, then TRAIL_* environment overrides.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return Config{}, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field, wrapping ErrInvalidConfiguration.
func (c Config) Validate() error {
	_, err := c.resolve()
	return err
}

// timings is Config resolved into the units the driver runs on.
type timings struct {
	startScale float64
	restScale  float64
	rotation   Range // radians
	pop        float32
	dwell      float32
	fade       float32
	fadeOffset float64
	fromStamp  bool
	popEase    ease.TweenFunc
	fadeEase   ease.TweenFunc
	policy     BusyPolicy
}

func (c Config) resolve() (timings, error) {
	invalid := func(field string, v any) (timings, error) {
		return timings{}, fmt.Errorf("config %s = %v: %w", field, v, ErrInvalidConfiguration)
	}
	switch {
	case c.PoolSize <= 0:
		return invalid("pool_size", c.PoolSize)
	case !(c.Threshold > 0):
		return invalid("threshold", c.Threshold)
	case !(c.StartScale > 0):
		return invalid("start_scale", c.StartScale)
	case c.RestScale < 0:
		return invalid("rest_scale", c.RestScale)
	case c.MaxRotationDeg < 0:
		return invalid("max_rotation_deg", c.MaxRotationDeg)
	case c.PopDuration < 0:
		return invalid("pop_duration", c.PopDuration)
	case c.DwellDuration < 0:
		return invalid("dwell_duration", c.DwellDuration)
	case c.FadeDuration < 0:
		return invalid("fade_duration", c.FadeDuration)
	case c.MarqueeDuration <= 0:
		return invalid("marquee_duration", c.MarqueeDuration)
	case !(c.MarqueeShift > 0) || c.MarqueeShift > 1:
		return invalid("marquee_shift", c.MarqueeShift)
	}
	popEase, err := EaseByName(c.PopEase)
	if err != nil {
		return timings{}, fmt.Errorf("config pop_ease: %w", err)
	}
	fadeEase, err := EaseByName(c.FadeEase)
	if err != nil {
		return timings{}, fmt.Errorf("config fade_ease: %w", err)
	}
	policy, err := parseBusyPolicy(c.BusyPolicy)
	if err != nil {
		return timings{}, err
	}
	return timings{
		startScale: c.StartScale,
		restScale:  c.RestScale,
		rotation:   Range{Min: -degToRad(c.MaxRotationDeg), Max: degToRad(c.MaxRotationDeg)},
		pop:        float32(c.PopDuration.Seconds()),
		dwell:      float32(c.DwellDuration.Seconds()),
		fade:       float32(c.FadeDuration.Seconds()),
		fadeOffset: c.FadeOffset,
		fromStamp:  c.FadeFromStamp,
		popEase:    popEase,
		fadeEase:   fadeEase,
		policy:     policy,
	}, nil
}

// appearFor is how long a stamp stays Appearing.
func (t timings) appearFor() float32 {
	if t.fromStamp {
		return min(t.pop, t.dwell)
	}
	return t.pop
}

// holdFor is how long a stamp stays Visible before fading.
func (t timings) holdFor() float32 {
	if t.fromStamp {
		return max(t.dwell-t.pop, 0)
	}
	return t.dwell
}

func parseBusyPolicy(s string) (BusyPolicy, error) {
	switch s {
	case "", "preempt":
		return BusyPreempt, nil
	case "skip-busy":
		return BusySkipBusy, nil
	}
	return 0, fmt.Errorf("config busy_policy = %q: %w", s, ErrInvalidConfiguration)
}
