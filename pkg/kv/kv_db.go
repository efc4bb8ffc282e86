package kv

import (
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"sort"

	"lintang/campusnav/pkg/concurrent"
	"lintang/campusnav/pkg/datastructure"
	"lintang/campusnav/pkg/geo"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"github.com/uber/h3-go/v4"
	"go.uber.org/zap"
)

const (
	h3Resolution = 9
	keyPrefix    = "place:"
)

type KVDB struct {
	db           *pebble.DB
	log          *zap.Logger
	showProgress bool
}

func NewKVDB(db *pebble.DB, log *zap.Logger, showProgress bool) *KVDB {
	return &KVDB{db: db, log: log, showProgress: showProgress}
}

// OpenKVDB opens the place store in dir. An empty dir keeps everything in memory,
// which is the default since the index is rebuilt on every start.
func OpenKVDB(dir string, log *zap.Logger, showProgress bool) (*KVDB, error) {
	opts := &pebble.Options{}
	if dir == "" {
		opts.FS = vfs.NewMem()
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open place db: %w", err)
	}
	return NewKVDB(db, log, showProgress), nil
}

func placeKey(cell h3.Cell) []byte {
	return []byte(keyPrefix + cell.String())
}

// CreatePlaceKV buckets places by h3 cell and writes each bucket compressed.
func (k *KVDB) CreatePlaceKV(places []datastructure.Place) error {
	kv := make(map[h3.Cell][]datastructure.Place)
	for _, p := range places {
		if !p.Coord.IsValid() {
			continue
		}
		cell := h3.LatLngToCell(h3.NewLatLng(p.Coord.Lat, p.Coord.Lon), h3Resolution)
		kv[cell] = append(kv[cell], p)
	}

	bar := k.newProgressBar(len(kv), "[cyan][1/1][reset] saving h3 indexed places to pebble db...")

	workers := concurrent.NewWorkerPool[concurrent.SavePlaceJobItem, error](runtime.NumCPU(), len(kv))
	for cell, valArr := range kv {
		workers.AddJob(concurrent.SavePlaceJobItem{KeyStr: string(placeKey(cell)), ValArr: valArr})
	}
	workers.Close()
	workers.Start(k.SavePlaces)
	workers.Wait()

	var errs []error
	for err := range workers.CollectResults() {
		bar.Add(1)
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	k.log.Info("place index built", zap.Int("places", len(places)), zap.Int("cells", len(kv)))
	return nil
}

func (k *KVDB) SavePlaces(item concurrent.SavePlaceJobItem) error {
	val, err := CompressPlaces(item.ValArr)
	if err != nil {
		return fmt.Errorf("failed to encode places for %s: %w", item.KeyStr, err)
	}
	if err := k.db.Set([]byte(item.KeyStr), val, pebble.Sync); err != nil {
		return fmt.Errorf("failed to save places for %s: %w", item.KeyStr, err)
	}
	return nil
}

func (k *KVDB) getCell(cell h3.Cell) ([]datastructure.Place, error) {
	val, closer, err := k.db.Get(placeKey(cell))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return LoadPlaces(val)
}

// GetNearbyPlaces returns places within radiusKm of (lat, lon), nearest first.
func (k *KVDB) GetNearbyPlaces(lat, lon, radiusKm float64) ([]datastructure.PlaceDistance, error) {
	home := datastructure.NewCoordinate(lon, lat)
	res := []datastructure.PlaceDistance{}
	for _, cell := range kRingIndexesArea(lat, lon, radiusKm) {
		places, err := k.getCell(cell)
		if err != nil {
			return nil, err
		}
		for _, p := range places {
			dist := geo.HaversineDistance(home, p.Coord)
			if dist <= radiusKm*1000 {
				res = append(res, datastructure.PlaceDistance{Place: p, Dist: dist})
			}
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Dist < res[j].Dist
	})
	return res, nil
}

/*
*
  - https://observablehq.com/@nrabinowitz/h3-radius-lookup?collection=@nrabinowitz/h3
    neighbor cells of the cell containing lat,lon, enough rings to cover searchRadiusKm
*/
func kRingIndexesArea(lat, lon, searchRadiusKm float64) []h3.Cell {
	origin := h3.LatLngToCell(h3.NewLatLng(lat, lon), h3Resolution)
	originArea := h3.CellAreaKm2(origin)
	searchArea := math.Pi * searchRadiusKm * searchRadiusKm

	radius := 0
	diskArea := originArea
	for diskArea < searchArea {
		radius++
		cellCount := float64(3*radius*(radius+1) + 1)
		diskArea = cellCount * originArea
	}
	// area covers the circle on average; one more ring covers the hexagon edges
	return h3.GridDisk(origin, radius+1)
}

func (k *KVDB) newProgressBar(max int, description string) *progressbar.ProgressBar {
	var w io.Writer = io.Discard
	if k.showProgress {
		w = ansi.NewAnsiStdout()
	}
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func (k *KVDB) Close() error {
	return k.db.Close()
}
