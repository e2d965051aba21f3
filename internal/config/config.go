// Package config loads runtime tunables from command-line flags and
// PADMOUSE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soar/PadMouse/internal/control"
	"github.com/soar/PadMouse/internal/dispatch"
	"github.com/soar/PadMouse/internal/velocity"
)

const envPrefix = "PADMOUSE"

var ErrInvalid = errors.New("invalid configuration")

type Monitor struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type Output struct {
	Device       string `mapstructure:"device"`
	Name         string `mapstructure:"name"`
	ScreenWidth  int32  `mapstructure:"screen-width"`
	ScreenHeight int32  `mapstructure:"screen-height"`
	DryRun       bool   `mapstructure:"dry-run"`
}

type Dispatch struct {
	Hysteresis      float64 `mapstructure:"hysteresis"`
	ActiveThreshold float64 `mapstructure:"active-threshold"`
}

type Config struct {
	Velocity velocity.Config `mapstructure:"velocity"`
	Dispatch Dispatch        `mapstructure:"dispatch"`
	Output   Output          `mapstructure:"output"`
	Monitor  Monitor         `mapstructure:"monitor"`
	Stick    string          `mapstructure:"stick"`
	Tray     bool            `mapstructure:"tray"`
	Verbose  bool            `mapstructure:"verbose"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Velocity: velocity.DefaultConfig(),
		Dispatch: Dispatch{
			Hysteresis:      dispatch.DefaultHysteresis,
			ActiveThreshold: dispatch.DefaultActiveThreshold,
		},
		Output: Output{
			Device:       "/dev/uinput",
			Name:         "PadMouse",
			ScreenWidth:  1920,
			ScreenHeight: 1080,
		},
		Monitor: Monitor{Addr: "localhost:8080"},
		Stick:   "left",
	}
}

func newFlagSet(name string) *pflag.FlagSet {
	d := Default()
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)

	fs.Int("velocity.tick-rate", d.Velocity.TickRate, "control loop rate in Hz")
	fs.Float64("velocity.base-speed", d.Velocity.BaseSpeed, "pointer speed in pixels per tick before acceleration")
	fs.Float64("velocity.acceleration", d.Velocity.Acceleration, "stick acceleration factor")
	fs.Float64("velocity.deadzone", d.Velocity.Deadzone, "stick deadzone (0..1)")
	fs.Float64("velocity.max-speed", d.Velocity.MaxSpeed, "maximum pointer speed in pixels per tick")

	fs.Float64("dispatch.hysteresis", d.Dispatch.Hysteresis, "how far past a threshold an analog value must rise before a rising edge fires")
	fs.Float64("dispatch.active-threshold", d.Dispatch.ActiveThreshold, "level above which analog controls count as held for combos")

	fs.String("output.device", d.Output.Device, "uinput device node")
	fs.String("output.name", d.Output.Name, "name prefix for the virtual devices")
	fs.Int32("output.screen-width", d.Output.ScreenWidth, "screen width for absolute moves")
	fs.Int32("output.screen-height", d.Output.ScreenHeight, "screen height for absolute moves")
	fs.Bool("output.dry-run", d.Output.DryRun, "log actions instead of injecting them")

	fs.Bool("monitor.enabled", d.Monitor.Enabled, "serve the live monitor")
	fs.String("monitor.addr", d.Monitor.Addr, "monitor listen address")

	fs.String("stick", d.Stick, "stick that drives the pointer (left or right)")
	fs.Bool("tray", d.Tray, "show a system tray icon")
	fs.BoolP("verbose", "v", d.Verbose, "log every event and fired action")
	return fs
}

// Load parses args (without the program name) and the environment.
// Environment variables use the PADMOUSE_ prefix with dots and dashes
// replaced by underscores, e.g. PADMOUSE_VELOCITY_MAX_SPEED.
func Load(name string, args []string) (Config, error) {
	fs := newFlagSet(name)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges.
func (c Config) Validate() error {
	if err := c.Velocity.Validate(); err != nil {
		return err
	}
	switch {
	case c.Dispatch.Hysteresis < 0 || c.Dispatch.Hysteresis >= 0.5:
		return fmt.Errorf("%w: hysteresis %v must be in [0,0.5)", ErrInvalid, c.Dispatch.Hysteresis)
	case c.Dispatch.ActiveThreshold < 0 || c.Dispatch.ActiveThreshold >= 1:
		return fmt.Errorf("%w: active threshold %v must be in [0,1)", ErrInvalid, c.Dispatch.ActiveThreshold)
	case c.Output.ScreenWidth <= 0 || c.Output.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, c.Output.ScreenWidth, c.Output.ScreenHeight)
	case c.Stick != "left" && c.Stick != "right":
		return fmt.Errorf("%w: stick %q must be left or right", ErrInvalid, c.Stick)
	case c.Monitor.Enabled && c.Monitor.Addr == "":
		return fmt.Errorf("%w: monitor enabled without an address", ErrInvalid)
	}
	return nil
}

// StickAxes returns the axes of the stick that drives the pointer.
func (c Config) StickAxes() (x, y control.ID) {
	if c.Stick == "right" {
		return control.RightX, control.RightY
	}
	return control.LeftX, control.LeftY
}
