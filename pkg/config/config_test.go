package config_test

import (
	"testing"

	"lintang/campusnav/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "campus.geojson", cfg.Dataset)
	assert.Equal(t, config.FormatGeoJSON, cfg.DatasetFormat)
	assert.Equal(t, 0.00005, cfg.StitchThreshold)
	assert.Equal(t, 0.0002, cfg.SnapTolerance)
	assert.Equal(t, "", cfg.PlaceDB)
}

func TestLoadFlagsAndEnv(t *testing.T) {
	t.Setenv("CAMPUSNAV_LISTENADDR", ":6000")
	t.Setenv("CAMPUSNAV_DATASET_FORMAT", "OSM")
	t.Setenv("CAMPUSNAV_ENV", "production")

	cfg, err := config.Load([]string{"--listenaddr", ":7000", "--snap-tolerance", "0.0003"})
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ListenAddr, "explicit flag wins over env")
	assert.Equal(t, config.FormatOSM, cfg.DatasetFormat)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, 0.0003, cfg.SnapTolerance)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"--dataset-format", "shapefile"}},
		{"zero snap tolerance", []string{"--snap-tolerance", "0"}},
		{"negative stitch threshold", []string{"--stitch-threshold=-1"}},
		{"unknown flag", []string{"--nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(tt.args)
			assert.Error(t, err)
		})
	}
}
