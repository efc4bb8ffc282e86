package main

import (
	"context"
	"fmt"
	"os"

	"lintang/campusnav/pkg/builder"
	"lintang/campusnav/pkg/campus"
	"lintang/campusnav/pkg/logger"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	datasetFile     = pflag.StringP("dataset", "f", "campus.geojson", "campus dataset file with roads and walkways")
	datasetFormat   = pflag.String("dataset-format", "geojson", "dataset format: geojson, osm or pbf")
	stitchThreshold = pflag.Float64("stitch-threshold", builder.DefaultStitchThreshold, "max distance in degrees between nodes joined by a stitch edge")
	outFile         = pflag.StringP("out", "o", "campus_graph.geojson", "output geojson file")
)

// graphdump builds the walking graph and writes it as GeoJSON, for checking the
// stitched network in a map viewer.
func main() {
	pflag.Parse()

	log, err := logger.New("development", "graphdump")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	dataset, err := campus.LoadFile(context.Background(), *datasetFile, *datasetFormat)
	if err != nil {
		log.Fatal("failed to load campus dataset", zap.String("path", *datasetFile), zap.Error(err))
	}

	graph := builder.Build(dataset.Features,
		builder.WithStitchThreshold(*stitchThreshold),
		builder.WithLogger(log),
	)

	bb, err := graph.ToGeoJSON().MarshalJSON()
	if err != nil {
		log.Fatal("failed to encode graph", zap.Error(err))
	}
	if err := os.WriteFile(*outFile, bb, 0644); err != nil {
		log.Fatal("failed to write graph", zap.String("path", *outFile), zap.Error(err))
	}

	log.Info("graph written",
		zap.String("path", *outFile),
		zap.Int("nodes", graph.GetNumNodes()),
		zap.Int("edges", graph.GetNumEdges()),
	)
}
