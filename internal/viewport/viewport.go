// Package viewport derives the map framing region from farm geometry.
package viewport

import (
	"log/slog"
	"sync"

	"agriintel/internal/model"
	"agriintel/internal/store"
)

// Bounds is the minimal axis-aligned region enclosing a polygon. A polygon
// collapsed to a single point yields a zero-area region.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// Center returns the midpoint of the region.
func (b Bounds) Center() model.Coordinate {
	return model.Coordinate{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}

// ComputeBounds returns the bounding region of the given vertices, with
// ok=false for empty geometry. Recomputing for the same geometry yields
// identical bounds.
func ComputeBounds(coords []model.Coordinate) (Bounds, bool) {
	if len(coords) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		MinLat: coords[0].Lat,
		MaxLat: coords[0].Lat,
		MinLng: coords[0].Lng,
		MaxLng: coords[0].Lng,
	}
	for _, c := range coords[1:] {
		if c.Lat < b.MinLat {
			b.MinLat = c.Lat
		}
		if c.Lat > b.MaxLat {
			b.MaxLat = c.Lat
		}
		if c.Lng < b.MinLng {
			b.MinLng = c.Lng
		}
		if c.Lng > b.MaxLng {
			b.MaxLng = c.Lng
		}
	}
	return b, true
}

// Synchronizer recomputes the framing region whenever the farm geometry is
// replaced. It never fires for absent or empty geometry.
type Synchronizer struct {
	mu     sync.RWMutex
	bounds Bounds
	ok     bool
	logger *slog.Logger
}

// NewSynchronizer subscribes to farm changes on the given store.
func NewSynchronizer(st *store.Store, logger *slog.Logger) *Synchronizer {
	s := &Synchronizer{logger: logger}
	st.OnFarmChange(s.onFarm)
	return s
}

func (s *Synchronizer) onFarm(farm model.Farm) {
	bounds, ok := ComputeBounds(farm.Boundary)
	if !ok {
		return
	}
	s.mu.Lock()
	s.bounds = bounds
	s.ok = true
	s.mu.Unlock()

	s.logger.Info("viewport fitted",
		"min_lat", bounds.MinLat,
		"min_lng", bounds.MinLng,
		"max_lat", bounds.MaxLat,
		"max_lng", bounds.MaxLng,
	)
}

// Current returns the latest computed bounds, with ok=false before any
// non-empty geometry has arrived.
func (s *Synchronizer) Current() (Bounds, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds, s.ok
}
