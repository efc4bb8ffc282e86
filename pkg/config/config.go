package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "CAMPUSNAV"

const (
	FormatGeoJSON = "geojson"
	FormatOSM     = "osm"
	FormatOSMPBF  = "pbf"
)

// ServiceConfig holds all configuration for the campus navigation service.
type ServiceConfig struct {
	ListenAddr      string
	AppEnv          string
	Dataset         string
	DatasetFormat   string
	StitchThreshold float64
	SnapTolerance   float64
	PlaceDB         string
}

// Load reads flags from args, then CAMPUSNAV_* environment variables.
// An explicitly set flag wins over the environment.
func Load(args []string) (*ServiceConfig, error) {
	fs := pflag.NewFlagSet("campusnav", pflag.ContinueOnError)
	fs.String("listenaddr", ":5000", "server listen address")
	fs.String("dataset", "campus.geojson", "campus dataset file with roads, walkways and places")
	fs.String("dataset-format", FormatGeoJSON, "dataset format: geojson, osm or pbf")
	fs.String("env", "development", "app environment: development or production")
	fs.Float64("stitch-threshold", 0.00005, "max distance in degrees between nodes joined by a stitch edge")
	fs.Float64("snap-tolerance", 0.0002, "max distance in degrees a position fix is moved onto a walkway")
	fs.String("place-db", "", "pebble directory for the place index, empty keeps it in memory")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	cfg := &ServiceConfig{
		ListenAddr:      v.GetString("listenaddr"),
		AppEnv:          v.GetString("env"),
		Dataset:         v.GetString("dataset"),
		DatasetFormat:   strings.ToLower(v.GetString("dataset-format")),
		StitchThreshold: v.GetFloat64("stitch-threshold"),
		SnapTolerance:   v.GetFloat64("snap-tolerance"),
		PlaceDB:         v.GetString("place-db"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ServiceConfig) validate() error {
	switch c.DatasetFormat {
	case FormatGeoJSON, FormatOSM, FormatOSMPBF:
	default:
		return fmt.Errorf("unknown dataset format %q", c.DatasetFormat)
	}
	if c.StitchThreshold < 0 {
		return fmt.Errorf("stitch threshold must not be negative")
	}
	if c.SnapTolerance <= 0 {
		return fmt.Errorf("snap tolerance must be positive")
	}
	return nil
}
