package concurrent

import "lintang/campusnav/pkg/datastructure"

// SavePlaceJobItem is one h3 cell worth of places waiting to be written.
type SavePlaceJobItem struct {
	KeyStr string
	ValArr []datastructure.Place
}

// SnapJobItem is one fix of a GPS trace; Index keeps the trace order.
type SnapJobItem struct {
	Index int
	Coord datastructure.Coordinate
}

type JobI interface {
	SavePlaceJobItem | SnapJobItem
}

type JobFunc[T JobI, G any] func(job T) G
