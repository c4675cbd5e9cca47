package config

import (
	"testing"

	"github.com/adrg/xdg"
)

func TestValidate(t *testing.T) {
	valid := Config{BoardSize: 9, Komi: 6.5, LadderDepth: 64, PassThreshold: 1}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad board size", Config{BoardSize: 10, Komi: 6.5, LadderDepth: 64}},
		{"komi too high", Config{BoardSize: 9, Komi: 360, LadderDepth: 64}},
		{"komi too low", Config{BoardSize: 9, Komi: -360, LadderDepth: 64}},
		{"zero ladder depth", Config{BoardSize: 9, Komi: 6.5, LadderDepth: 0}},
	}
	for _, tt := range tests {
		if err := tt.cfg.Validate(); err == nil {
			t.Errorf("%s: accepted", tt.name)
		}
	}
}

func TestInitConfigDefaults(t *testing.T) {
	// With no config file present the defaults must already be valid.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	cfg, err := InitConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BoardSize != 19 || cfg.Komi != 6.5 || cfg.LadderDepth != 64 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TESUJI_BOARD_SIZE", "13")
	xdg.Reload()
	cfg, err := InitConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BoardSize != 13 {
		t.Errorf("board size = %d, want 13 from environment", cfg.BoardSize)
	}
}
