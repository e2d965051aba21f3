// Package velocity turns analog stick samples into smoothed, accelerated
// pointer deltas. It is a per-tick discrete filter with no knowledge of
// dispatch; all inter-tick memory lives in an explicit State.
package velocity

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// noiseThreshold is the per-tick raw change above which velocity snaps
	// straight to the new sample.
	noiseThreshold = 0.02

	// epsilon is the per-axis delta, in pixels, below which nothing is emitted.
	epsilon = 0.5

	// maxPixelsPerTick bounds speeds so deltas always fit an int32.
	maxPixelsPerTick = math.MaxInt16
)

var ErrInvalidConfig = errors.New("invalid velocity config")

// Config holds the integrator's tunables.
type Config struct {
	BaseSpeed    float64 `mapstructure:"base-speed"`   // pixels per tick at full deflection, before acceleration
	Acceleration float64 `mapstructure:"acceleration"` // approach rate and speed boost
	Deadzone     float64 `mapstructure:"deadzone"`     // |raw| at or below this is no input
	MaxSpeed     float64 `mapstructure:"max-speed"`    // pixels per tick, per axis
	TickRate     int     `mapstructure:"tick-rate"`    // Hz
}

// DefaultConfig returns settings tuned for a 120 Hz loop.
func DefaultConfig() Config {
	return Config{
		BaseSpeed:    6,
		Acceleration: 3,
		Deadzone:     0.12,
		MaxSpeed:     40,
		TickRate:     120,
	}
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick rate %d must be positive", ErrInvalidConfig, c.TickRate)
	case !(c.BaseSpeed > 0 && c.BaseSpeed <= maxPixelsPerTick):
		return fmt.Errorf("%w: base speed %v must be in (0,%d]", ErrInvalidConfig, c.BaseSpeed, maxPixelsPerTick)
	case !(c.MaxSpeed > 0 && c.MaxSpeed <= maxPixelsPerTick):
		return fmt.Errorf("%w: max speed %v must be in (0,%d]", ErrInvalidConfig, c.MaxSpeed, maxPixelsPerTick)
	case c.Acceleration <= 0 || math.IsInf(c.Acceleration, 0):
		return fmt.Errorf("%w: acceleration %v must be positive and finite", ErrInvalidConfig, c.Acceleration)
	case c.Deadzone < 0 || c.Deadzone >= 1:
		return fmt.Errorf("%w: deadzone %v must be in [0,1)", ErrInvalidConfig, c.Deadzone)
	}
	return nil
}

// Tick returns the loop period.
func (c Config) Tick() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Axis is the filter memory for one stick axis.
type Axis struct {
	Velocity float64 // in [-1,1]
	LastRaw  float64
}

// State is the filter memory for both axes. The main loop owns it and passes
// it to every Step.
type State struct {
	X, Y Axis
}

// Integrator applies the filter with a fixed configuration.
type Integrator struct {
	cfg  Config
	rate float64
}

// New validates cfg and returns an integrator.
func New(cfg Config) (*Integrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dt := 1 / float64(cfg.TickRate)
	return &Integrator{cfg: cfg, rate: cfg.Acceleration * dt}, nil
}

// Config returns the integrator's configuration.
func (in *Integrator) Config() Config {
	return in.cfg
}

// Track advances one axis by one tick given its latest raw sample.
func (in *Integrator) Track(a *Axis, raw float64) {
	if math.IsNaN(raw) {
		raw = 0
	}
	delta := raw - a.LastRaw
	switch {
	case math.Abs(delta) > noiseThreshold:
		a.Velocity = raw
	case math.Abs(raw) > in.cfg.Deadzone:
		a.Velocity += (raw - a.Velocity) * math.Min(in.rate, 1)
	default:
		a.Velocity *= clamp(1-2*in.rate, 0, 1)
	}
	a.Velocity = clamp(a.Velocity, -1, 1)
	a.LastRaw = raw
}

// Delta derives the cursor movement for the current velocities. Y is
// inverted so a stick pushed up moves the pointer up the screen. ok is false
// when the movement is too small to emit.
func (in *Integrator) Delta(s *State) (dx, dy int32, ok bool) {
	peak := math.Max(math.Abs(s.X.Velocity), math.Abs(s.Y.Velocity))
	speed := in.cfg.BaseSpeed * (1 + peak*in.cfg.Acceleration)

	fx := clamp(s.X.Velocity*speed, -in.cfg.MaxSpeed, in.cfg.MaxSpeed)
	fy := -clamp(s.Y.Velocity*speed, -in.cfg.MaxSpeed, in.cfg.MaxSpeed)

	if math.Abs(fx) <= epsilon && math.Abs(fy) <= epsilon {
		return 0, 0, false
	}
	return roundWithin(fx, in.cfg.MaxSpeed), roundWithin(fy, in.cfg.MaxSpeed), true
}

// roundWithin rounds f to the nearest pixel without leaving [-limit, limit].
func roundWithin(f, limit float64) int32 {
	r := math.Round(f)
	if math.Abs(r) > limit {
		r = math.Trunc(f)
	}
	return int32(r)
}

// Step tracks both axes and returns the resulting cursor delta.
func (in *Integrator) Step(s *State, rawX, rawY float64) (dx, dy int32, ok bool) {
	in.Track(&s.X, rawX)
	in.Track(&s.Y, rawY)
	return in.Delta(s)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
