package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"time"

	"agriintel/internal/analytics"
	"agriintel/internal/model"
	"agriintel/internal/repository"
	"agriintel/internal/store"
	"agriintel/internal/viewport"
)

// PanelStatus is the per-panel render state, independent of the global
// readiness gate.
type PanelStatus string

const (
	StatusLoading     PanelStatus = "loading"
	StatusReady       PanelStatus = "ready"
	StatusUnavailable PanelStatus = "unavailable"
)

var (
	// ErrFarmExists is returned when a registration arrives while a farm
	// is already present.
	ErrFarmExists = errors.New("a farm is already registered")
	// ErrInvalidFarm is returned for registrations missing required fields.
	ErrInvalidFarm = errors.New("farm name is required")
)

// DashboardService defines the interface for dashboard view operations
type DashboardService interface {
	Snapshot() SnapshotResponse
	Panel(name string) (any, bool)
	RegisterFarm(ctx context.Context, input FarmInput) (model.Farm, error)
	WriteNDVICSV(w io.Writer) error
	WriteSoilCSV(w io.Writer) error
}

// SnapshotResponse is the full dashboard state in one payload
type SnapshotResponse struct {
	Ready      bool            `json:"ready"`
	Farm       FarmPanel       `json:"farm"`
	NDVI       NDVIPanel       `json:"ndvi"`
	Soil       SoilPanel       `json:"soil"`
	Weather    WeatherPanel    `json:"weather"`
	Market     MarketPanel     `json:"market"`
	CropHealth CropHealthPanel `json:"crop_health"`
	Viewport   ViewportPanel   `json:"viewport"`
}

// FarmPanel carries the registered farm, or the unregistered state once
// delivery has completed without one
type FarmPanel struct {
	Status     PanelStatus `json:"status"`
	Registered bool        `json:"registered"`
	Farm       *model.Farm `json:"farm,omitempty"`
	Reason     string      `json:"reason,omitempty"`
}

// NDVIPanel carries the vegetation-index series and the classified latest
// reading
type NDVIPanel struct {
	Status PanelStatus            `json:"status"`
	Series []model.NdviSample     `json:"series"`
	Latest *analytics.NDVIReading `json:"latest,omitempty"`
	Reason string                 `json:"reason,omitempty"`
}

// SoilPanel carries soil parameters with their status colors
type SoilPanel struct {
	Status     PanelStatus          `json:"status"`
	Parameters []analytics.SoilView `json:"parameters"`
	Reason     string               `json:"reason,omitempty"`
}

// WeatherPanel carries current conditions and the forecast window
type WeatherPanel struct {
	Status  PanelStatus            `json:"status"`
	Weather *model.WeatherSnapshot `json:"weather,omitempty"`
	Reason  string                 `json:"reason,omitempty"`
}

// MarketPanel carries classified market quotes
type MarketPanel struct {
	Status PanelStatus           `json:"status"`
	Quotes []analytics.QuoteView `json:"quotes"`
	Reason string                `json:"reason,omitempty"`
}

// CropHealthPanel carries raw assessments plus the banded chart series
type CropHealthPanel struct {
	Status  PanelStatus              `json:"status"`
	Records []model.CropHealthRecord `json:"records"`
	Series  []analytics.HealthPoint  `json:"series"`
	Reason  string                   `json:"reason,omitempty"`
}

// ViewportPanel carries the map framing region derived from farm geometry
type ViewportPanel struct {
	Fitted bool              `json:"fitted"`
	Bounds *viewport.Bounds  `json:"bounds,omitempty"`
	Center *model.Coordinate `json:"center,omitempty"`
}

// FarmInput is the registration request body
type FarmInput struct {
	Name       string             `json:"name" binding:"required"`
	SizeAcres  float64            `json:"size"`
	Location   string             `json:"location"`
	Boundary   []model.Coordinate `json:"boundary"`
	Crops      []model.Crop       `json:"crops"`
	SoilType   string             `json:"soil_type"`
	Irrigation string             `json:"irrigation"`
}

// dashboardService implements DashboardService
type dashboardService struct {
	store  *store.Store
	sync   *viewport.Synchronizer
	engine analytics.Engine
	repo   repository.Source
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(st *store.Store, sync *viewport.Synchronizer, engine analytics.Engine, repo repository.Source) DashboardService {
	return &dashboardService{store: st, sync: sync, engine: engine, repo: repo}
}

// panelStatus maps a dataset lifecycle state to its render status.
func panelStatus(s store.State) PanelStatus {
	switch s {
	case store.StateLoaded:
		return StatusReady
	case store.StateFailed:
		return StatusUnavailable
	default:
		return StatusLoading
	}
}

// Snapshot assembles every panel plus the global readiness flag.
func (s *dashboardService) Snapshot() SnapshotResponse {
	return SnapshotResponse{
		Ready:      s.store.IsReady(),
		Farm:       s.farmPanel(),
		NDVI:       s.ndviPanel(),
		Soil:       s.soilPanel(),
		Weather:    s.weatherPanel(),
		Market:     s.marketPanel(),
		CropHealth: s.cropHealthPanel(),
		Viewport:   s.viewportPanel(),
	}
}

// Panel returns a single panel payload by route name, with ok=false for
// unknown names.
func (s *dashboardService) Panel(name string) (any, bool) {
	switch name {
	case "farm":
		return s.farmPanel(), true
	case "ndvi":
		return s.ndviPanel(), true
	case "soil":
		return s.soilPanel(), true
	case "weather":
		return s.weatherPanel(), true
	case "market":
		return s.marketPanel(), true
	case "crop-health":
		return s.cropHealthPanel(), true
	case "viewport":
		return s.viewportPanel(), true
	default:
		return nil, false
	}
}

func (s *dashboardService) farmPanel() FarmPanel {
	farm, state := s.store.Farm()
	panel := FarmPanel{
		Status:     panelStatus(state),
		Registered: s.store.HasFarm(),
		Reason:     s.failureReason(model.KindFarm, state),
	}
	if panel.Registered {
		panel.Farm = &farm
	}
	return panel
}

func (s *dashboardService) ndviPanel() NDVIPanel {
	series, state := s.store.NDVISeries()
	panel := NDVIPanel{
		Status: panelStatus(state),
		Series: series,
		Reason: s.failureReason(model.KindNDVI, state),
	}
	if latest, ok := analytics.LatestNDVI(series); ok {
		reading := s.engine.InterpretNDVI(latest.Value)
		panel.Latest = &reading
	}
	return panel
}

func (s *dashboardService) soilPanel() SoilPanel {
	params, state := s.store.SoilProfile()
	return SoilPanel{
		Status:     panelStatus(state),
		Parameters: analytics.SoilChart(params),
		Reason:     s.failureReason(model.KindSoil, state),
	}
}

func (s *dashboardService) weatherPanel() WeatherPanel {
	snap, state := s.store.Weather()
	panel := WeatherPanel{
		Status: panelStatus(state),
		Reason: s.failureReason(model.KindWeather, state),
	}
	if state == store.StateLoaded {
		panel.Weather = &snap
	}
	return panel
}

func (s *dashboardService) marketPanel() MarketPanel {
	quotes, state := s.store.MarketQuotes()
	return MarketPanel{
		Status: panelStatus(state),
		Quotes: analytics.MarketBoard(quotes),
		Reason: s.failureReason(model.KindMarket, state),
	}
}

func (s *dashboardService) cropHealthPanel() CropHealthPanel {
	records, state := s.store.CropHealth()
	return CropHealthPanel{
		Status:  panelStatus(state),
		Records: records,
		Series:  s.engine.HealthSeries(records),
		Reason:  s.failureReason(model.KindCropHealth, state),
	}
}

func (s *dashboardService) viewportPanel() ViewportPanel {
	bounds, ok := s.sync.Current()
	panel := ViewportPanel{Fitted: ok}
	if ok {
		center := bounds.Center()
		panel.Bounds = &bounds
		panel.Center = &center
	}
	return panel
}

func (s *dashboardService) failureReason(kind model.DatasetKind, state store.State) string {
	if state != store.StateFailed {
		return ""
	}
	return s.store.FailureReason(kind)
}

// RegisterFarm persists and publishes a farm while none is registered.
// The store publish fires the viewport subscription, so the map region is
// refitted before the call returns.
func (s *dashboardService) RegisterFarm(ctx context.Context, input FarmInput) (model.Farm, error) {
	if input.Name == "" {
		return model.Farm{}, ErrInvalidFarm
	}
	if s.store.HasFarm() {
		return model.Farm{}, ErrFarmExists
	}
	farm := model.Farm{
		Name:        input.Name,
		SizeAcres:   input.SizeAcres,
		Location:    input.Location,
		Boundary:    input.Boundary,
		Crops:       input.Crops,
		SoilType:    input.SoilType,
		Irrigation:  input.Irrigation,
		LastUpdated: time.Now().UTC(),
	}
	if err := s.repo.SaveFarm(ctx, &farm); err != nil {
		return model.Farm{}, err
	}
	s.store.SetFarm(farm)
	return farm, nil
}

// WriteNDVICSV streams the vegetation-index series as CSV with a header
// row and one line per sample.
func (s *dashboardService) WriteNDVICSV(w io.Writer) error {
	series, _ := s.store.NDVISeries()
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "ndvi"}); err != nil {
		return err
	}
	for _, sample := range series {
		record := []string{
			sample.Date.Format("2006-01-02"),
			strconv.FormatFloat(sample.Value, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSoilCSV streams the soil profile as CSV with a header row and one
// line per parameter.
func (s *dashboardService) WriteSoilCSV(w io.Writer) error {
	params, _ := s.store.SoilProfile()
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"parameter", "value", "optimal", "status"}); err != nil {
		return err
	}
	for _, p := range params {
		record := []string{
			p.Name,
			strconv.FormatFloat(p.Value, 'f', 1, 64),
			p.Optimal,
			string(p.Status),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
