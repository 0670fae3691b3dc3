package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "bombfour.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, []string{"4x4", "6x6", "8x6"}, cfg.PresetNames())
}

func TestLoadOverridesDefaults(t *testing.T) {
	p := writeFile(t, `
server:
  addr: ":9000"
  opponent_delay: 0s
log:
  level: debug
  format: json
rules:
  rows: 5
  cols: 7
  win_length: 4
  hazards: 6
  reserved_safe_cells: 1
  hazard_cells_playable: false
  opponent_sees_hazards: true
seed: 12
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, time.Duration(0), cfg.Server.OpponentDelay)
	assert.Equal(t, 2*time.Hour, cfg.Server.RoomTTL, "unset keys keep their default")
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 7, cfg.Rules.Cols)
	assert.Equal(t, 6, cfg.Rules.HazardCount)
	assert.False(t, cfg.Rules.HazardCellsPlayable)
	assert.Equal(t, int64(12), cfg.Seed)
}

func TestLoadRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"unknown key":   "bogus: 1\n",
		"bad rules":     "rules:\n  rows: 0\n  cols: 4\n  win_length: 4\n",
		"bad preset":    "presets:\n  tiny:\n    rows: 3\n    cols: 3\n    win_length: 1\n",
		"bad logformat": "log:\n  format: xml\n",
		"not yaml":      "server: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRulesForFallsBackToDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8, cfg.RulesFor("8x6").Rows)
	assert.Equal(t, cfg.Rules, cfg.RulesFor("nope"))
}
