package kv

import (
	"lintang/campusnav/pkg/datastructure"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

// placeRecord is the stored form of a place, flat so the binary codec stays simple.
type placeRecord struct {
	Name        string
	Type        string
	Description string
	Lat         float64
	Lon         float64
}

func Encode(records []placeRecord) ([]byte, error) {
	return binary.Marshal(records)
}

func Decode(bb []byte) ([]placeRecord, error) {
	var records []placeRecord
	if err := binary.Unmarshal(bb, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func Compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func Decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}
	return bb, nil
}

func CompressPlaces(places []datastructure.Place) ([]byte, error) {
	records := make([]placeRecord, len(places))
	for i, p := range places {
		records[i] = placeRecord{
			Name:        p.Name,
			Type:        p.Type,
			Description: p.Description,
			Lat:         p.Coord.Lat,
			Lon:         p.Coord.Lon,
		}
	}
	bb, err := Encode(records)
	if err != nil {
		return nil, err
	}
	return Compress(bb)
}

func LoadPlaces(bbCompressed []byte) ([]datastructure.Place, error) {
	bb, err := Decompress(bbCompressed)
	if err != nil {
		return nil, err
	}
	records, err := Decode(bb)
	if err != nil {
		return nil, err
	}
	places := make([]datastructure.Place, len(records))
	for i, r := range records {
		places[i] = datastructure.Place{
			Name:        r.Name,
			Type:        r.Type,
			Description: r.Description,
			Coord:       datastructure.NewCoordinate(r.Lon, r.Lat),
		}
	}
	return places, nil
}
