package config

import (
	"errors"
	"testing"

	"github.com/soar/PadMouse/internal/control"
	"github.com/soar/PadMouse/internal/dispatch"
	"github.com/soar/PadMouse/internal/velocity"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("padmouse", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadFlags(t *testing.T) {
	cfg, err := Load("padmouse", []string{
		"--velocity.tick-rate=240",
		"--velocity.max-speed", "12.5",
		"--monitor.enabled",
		"--stick=right",
		"-v",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Velocity.TickRate != 240 || cfg.Velocity.MaxSpeed != 12.5 {
		t.Errorf("velocity = %+v", cfg.Velocity)
	}
	if !cfg.Monitor.Enabled || cfg.Stick != "right" || !cfg.Verbose {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("PADMOUSE_VELOCITY_DEADZONE", "0.3")
	t.Setenv("PADMOUSE_OUTPUT_DRY_RUN", "true")

	cfg, err := Load("padmouse", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Velocity.Deadzone != 0.3 {
		t.Errorf("deadzone = %v, want 0.3 from environment", cfg.Velocity.Deadzone)
	}
	if !cfg.Output.DryRun {
		t.Error("dry-run not taken from environment")
	}
}

func TestFlagBeatsEnvironment(t *testing.T) {
	t.Setenv("PADMOUSE_STICK", "right")

	cfg, err := Load("padmouse", []string{"--stick=left"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Stick != "left" {
		t.Errorf("stick = %q, want flag value", cfg.Stick)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"tick rate", []string{"--velocity.tick-rate=0"}, velocity.ErrInvalidConfig},
		{"hysteresis", []string{"--dispatch.hysteresis=0.7"}, ErrInvalid},
		{"stick", []string{"--stick=middle"}, ErrInvalid},
		{"screen", []string{"--output.screen-width=0"}, ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load("padmouse", tt.args); !errors.Is(err, tt.want) {
				t.Errorf("Load err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadUnknownFlag(t *testing.T) {
	if _, err := Load("padmouse", []string{"--no-such-flag"}); err == nil {
		t.Error("Load accepted an unknown flag")
	}
}

func TestStickAxes(t *testing.T) {
	cfg := Default()
	if x, y := cfg.StickAxes(); x != control.LeftX || y != control.LeftY {
		t.Errorf("left stick axes = %v, %v", x, y)
	}
	cfg.Stick = "right"
	if x, y := cfg.StickAxes(); x != control.RightX || y != control.RightY {
		t.Errorf("right stick axes = %v, %v", x, y)
	}
}

func TestDefaultDispatchMatchesEngine(t *testing.T) {
	d := Default().Dispatch
	o := dispatch.DefaultOptions()
	if d.Hysteresis != o.Hysteresis || d.ActiveThreshold != o.ActiveThreshold {
		t.Errorf("default dispatch settings %+v differ from engine defaults %+v", d, o)
	}
}
