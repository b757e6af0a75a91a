// Package store holds the latest value of each independently-arriving
// dashboard dataset plus the session-wide readiness flag. Values are
// overwritten wholesale, never merged, and never validated on the way in;
// classification downstream has to tolerate out-of-range data.
package store

import (
	"sync"

	"agriintel/internal/model"
)

// State is the terminal-aware lifecycle of one dataset. Failed is distinct
// from Absent so the renderer can tell "still loading" from "failed to
// load".
type State string

const (
	StateAbsent State = "absent"
	StateLoaded State = "loaded"
	StateFailed State = "failed"
)

// Store is the owned application state for dataset values. All mutation
// goes through the setters; getters hand out copies.
type Store struct {
	mu sync.RWMutex

	farm       *model.Farm
	ndvi       []model.NdviSample
	soil       []model.SoilParameter
	weather    *model.WeatherSnapshot
	market     []model.MarketQuote
	cropHealth []model.CropHealthRecord

	states  map[model.DatasetKind]State
	reasons map[model.DatasetKind]string

	ready   bool
	readyCh chan struct{}

	farmWatchers []func(model.Farm)
}

// New creates an empty store with every dataset absent.
func New() *Store {
	states := make(map[model.DatasetKind]State, len(model.DatasetKinds()))
	for _, kind := range model.DatasetKinds() {
		states[kind] = StateAbsent
	}
	return &Store{
		states:  states,
		reasons: make(map[model.DatasetKind]string),
		readyCh: make(chan struct{}),
	}
}

// OnFarmChange registers a callback invoked synchronously, on the writer's
// goroutine, every time the farm is replaced. Register before ingestion
// starts.
func (s *Store) OnFarmChange(fn func(model.Farm)) {
	s.mu.Lock()
	s.farmWatchers = append(s.farmWatchers, fn)
	s.mu.Unlock()
}

// SetFarm replaces the farm wholesale and notifies subscribers.
func (s *Store) SetFarm(farm model.Farm) {
	s.mu.Lock()
	f := farm
	s.farm = &f
	s.states[model.KindFarm] = StateLoaded
	watchers := make([]func(model.Farm), len(s.farmWatchers))
	copy(watchers, s.farmWatchers)
	s.mu.Unlock()

	for _, fn := range watchers {
		fn(farm)
	}
}

// Farm returns the current farm and its dataset state.
func (s *Store) Farm() (model.Farm, State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.farm == nil {
		return model.Farm{}, s.states[model.KindFarm]
	}
	return *s.farm, s.states[model.KindFarm]
}

// SetNDVISeries replaces the vegetation-index series.
func (s *Store) SetNDVISeries(samples []model.NdviSample) {
	s.mu.Lock()
	s.ndvi = copySlice(samples)
	s.states[model.KindNDVI] = StateLoaded
	s.mu.Unlock()
}

// NDVISeries returns the current series and its dataset state.
func (s *Store) NDVISeries() ([]model.NdviSample, State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.ndvi), s.states[model.KindNDVI]
}

// SetSoilProfile replaces the soil parameter set.
func (s *Store) SetSoilProfile(params []model.SoilParameter) {
	s.mu.Lock()
	s.soil = copySlice(params)
	s.states[model.KindSoil] = StateLoaded
	s.mu.Unlock()
}

// SoilProfile returns the current soil parameters and their dataset state.
func (s *Store) SoilProfile() ([]model.SoilParameter, State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.soil), s.states[model.KindSoil]
}

// SetWeather replaces the weather snapshot.
func (s *Store) SetWeather(snap model.WeatherSnapshot) {
	s.mu.Lock()
	w := snap
	s.weather = &w
	s.states[model.KindWeather] = StateLoaded
	s.mu.Unlock()
}

// Weather returns the current snapshot and its dataset state.
func (s *Store) Weather() (model.WeatherSnapshot, State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.weather == nil {
		return model.WeatherSnapshot{}, s.states[model.KindWeather]
	}
	return *s.weather, s.states[model.KindWeather]
}

// SetMarketQuotes replaces the market quote set.
func (s *Store) SetMarketQuotes(quotes []model.MarketQuote) {
	s.mu.Lock()
	s.market = copySlice(quotes)
	s.states[model.KindMarket] = StateLoaded
	s.mu.Unlock()
}

// MarketQuotes returns the current quotes and their dataset state.
func (s *Store) MarketQuotes() ([]model.MarketQuote, State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.market), s.states[model.KindMarket]
}

// SetCropHealth replaces the crop-health assessments.
func (s *Store) SetCropHealth(records []model.CropHealthRecord) {
	s.mu.Lock()
	s.cropHealth = copySlice(records)
	s.states[model.KindCropHealth] = StateLoaded
	s.mu.Unlock()
}

// CropHealth returns the current assessments and their dataset state.
func (s *Store) CropHealth() ([]model.CropHealthRecord, State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.cropHealth), s.states[model.KindCropHealth]
}

// MarkDelivered flags a dataset as arrived without storing a value. Used
// when the upstream answers successfully but has nothing yet, e.g. no farm
// registered: the panel must stop rendering its loading placeholder.
func (s *Store) MarkDelivered(kind model.DatasetKind) {
	s.mu.Lock()
	s.states[kind] = StateLoaded
	s.mu.Unlock()
}

// HasFarm reports whether a farm value is present, independent of the
// dataset state.
func (s *Store) HasFarm() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.farm != nil
}

// MarkFailed records a terminal delivery failure for one dataset. The
// previous value, if any, is kept.
func (s *Store) MarkFailed(kind model.DatasetKind, reason string) {
	s.mu.Lock()
	s.states[kind] = StateFailed
	s.reasons[kind] = reason
	s.mu.Unlock()
}

// State reports the lifecycle state of one dataset kind.
func (s *Store) State(kind model.DatasetKind) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[kind]
}

// FailureReason returns the recorded reason for a failed dataset.
func (s *Store) FailureReason(kind model.DatasetKind) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reasons[kind]
}

// MarkReady latches the global readiness flag. The transition happens at
// most once per session and never reverts.
func (s *Store) MarkReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return
	}
	s.ready = true
	close(s.readyCh)
}

// IsReady reports whether the readiness gate has fired.
func (s *Store) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Ready returns a channel closed when the readiness gate fires.
func (s *Store) Ready() <-chan struct{} {
	return s.readyCh
}

func copySlice[T any](src []T) []T {
	if src == nil {
		return nil
	}
	dst := make([]T, len(src))
	copy(dst, src)
	return dst
}
