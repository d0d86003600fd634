package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "decks", cfg.Server.DeckDir)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Empty(t, cfg.Database.DSN)
	assert.Equal(t, 20, cfg.Sim.StartingLife)
	assert.Equal(t, 7, cfg.Sim.OpeningHandSize)
	assert.Equal(t, 50, cfg.Sim.MaxLogEntries)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  address: ":9090"
  deck_dir: /var/decks
logging:
  level: debug
  format: console
sim:
  starting_life: 40
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "/var/decks", cfg.Server.DeckDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 40, cfg.Sim.StartingLife)
	// Untouched keys keep defaults.
	assert.Equal(t, 7, cfg.Sim.OpeningHandSize)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero life", "sim:\n  starting_life: 0\n", "starting_life"},
		{"negative hand", "sim:\n  opening_hand_size: -1\n", "opening_hand_size"},
		{"bad format", "logging:\n  format: xml\n", "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MTGSIM_SERVER_ADDRESS", ":7001")
	t.Setenv("MTGSIM_SIM_STARTING_LIFE", "30")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7001", cfg.Server.Address)
	assert.Equal(t, 30, cfg.Sim.StartingLife)
}
