package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"agriintel/internal/analytics"
	"agriintel/internal/model"
	"agriintel/internal/store"
	"agriintel/internal/viewport"
)

// stubRepo records farm saves without a database
type stubRepo struct {
	saved   []model.Farm
	saveErr error
}

func (r *stubRepo) FetchFarm(ctx context.Context) (*model.Farm, error)                 { return nil, nil }
func (r *stubRepo) FetchNDVISeries(ctx context.Context) ([]model.NdviSample, error)    { return nil, nil }
func (r *stubRepo) FetchSoilProfile(ctx context.Context) ([]model.SoilParameter, error) { return nil, nil }
func (r *stubRepo) FetchWeather(ctx context.Context) (*model.WeatherSnapshot, error)   { return nil, nil }
func (r *stubRepo) FetchMarketQuotes(ctx context.Context) ([]model.MarketQuote, error) { return nil, nil }
func (r *stubRepo) FetchCropHealth(ctx context.Context) ([]model.CropHealthRecord, error) {
	return nil, nil
}
func (r *stubRepo) FetchNotifications(ctx context.Context) ([]model.Notification, error) {
	return nil, nil
}

func (r *stubRepo) SaveFarm(ctx context.Context, farm *model.Farm) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	farm.ID = uint(len(r.saved) + 1)
	r.saved = append(r.saved, *farm)
	return nil
}

func newTestService(st *store.Store) (DashboardService, *stubRepo, *viewport.Synchronizer) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sync := viewport.NewSynchronizer(st, logger)
	repo := &stubRepo{}
	svc := NewDashboardService(st, sync, analytics.NewEngine(analytics.DefaultThresholds()), repo)
	return svc, repo, sync
}

// TestPanelStatuses tests the loading/ready/unavailable mapping
func TestPanelStatuses(t *testing.T) {
	st := store.New()
	svc, _, _ := newTestService(st)

	snap := svc.Snapshot()
	if snap.Ready {
		t.Error("Expected global ready=false before the gate fires")
	}
	if snap.NDVI.Status != StatusLoading {
		t.Errorf("ndvi status = %q, want %q", snap.NDVI.Status, StatusLoading)
	}

	st.SetNDVISeries([]model.NdviSample{{Value: 0.65}, {Value: 0.78}})
	st.MarkFailed(model.KindWeather, "upstream timeout")
	st.MarkReady()

	snap = svc.Snapshot()
	if !snap.Ready {
		t.Error("Expected global ready=true after the gate fires")
	}
	if snap.NDVI.Status != StatusReady {
		t.Errorf("ndvi status = %q, want %q", snap.NDVI.Status, StatusReady)
	}
	if snap.Weather.Status != StatusUnavailable {
		t.Errorf("weather status = %q, want %q", snap.Weather.Status, StatusUnavailable)
	}
	if snap.Weather.Reason != "upstream timeout" {
		t.Errorf("weather reason = %q", snap.Weather.Reason)
	}
	if snap.NDVI.Latest == nil || snap.NDVI.Latest.Value != 0.78 {
		t.Errorf("latest reading missing or wrong: %+v", snap.NDVI.Latest)
	}
}

// TestPanelLookup tests per-panel routing including the unknown case
func TestPanelLookup(t *testing.T) {
	st := store.New()
	svc, _, _ := newTestService(st)

	known := []string{"farm", "ndvi", "soil", "weather", "market", "crop-health", "viewport"}
	for _, name := range known {
		if _, ok := svc.Panel(name); !ok {
			t.Errorf("Panel(%q) not found", name)
		}
	}
	if _, ok := svc.Panel("livestock"); ok {
		t.Error("Expected unknown panel to report ok=false")
	}
}

// TestRegisterFarm tests registration, viewport refit and the duplicate
// rejection
func TestRegisterFarm(t *testing.T) {
	st := store.New()
	svc, repo, sync := newTestService(st)

	input := FarmInput{
		Name:      "Green Valley Farm",
		SizeAcres: 5.2,
		Location:  "Nairobi",
		Boundary: []model.Coordinate{
			{Lng: 36.8, Lat: -1.3},
			{Lng: 36.9, Lat: -1.2},
		},
	}

	before := time.Now().Add(-time.Second)
	farm, err := svc.RegisterFarm(context.Background(), input)
	if err != nil {
		t.Fatalf("RegisterFarm failed: %v", err)
	}
	if farm.ID == 0 {
		t.Error("Expected persisted farm to carry an id")
	}
	if farm.LastUpdated.Before(before) {
		t.Errorf("LastUpdated not stamped: %v", farm.LastUpdated)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("Expected 1 persisted farm, got %d", len(repo.saved))
	}

	// Registration publishes through the store, so the viewport refits
	// before the call returns.
	bounds, ok := sync.Current()
	if !ok {
		t.Fatal("Expected viewport fitted after registration")
	}
	if bounds.MinLng != 36.8 || bounds.MaxLat != -1.2 {
		t.Errorf("bounds = %+v", bounds)
	}

	_, err = svc.RegisterFarm(context.Background(), input)
	if !errors.Is(err, ErrFarmExists) {
		t.Errorf("second registration error = %v, want ErrFarmExists", err)
	}
	if len(repo.saved) != 1 {
		t.Errorf("rejected registration still persisted: %d farms", len(repo.saved))
	}
}

// TestRegisterFarmValidation tests the missing-name rejection
func TestRegisterFarmValidation(t *testing.T) {
	st := store.New()
	svc, repo, _ := newTestService(st)

	_, err := svc.RegisterFarm(context.Background(), FarmInput{Location: "Nairobi"})
	if !errors.Is(err, ErrInvalidFarm) {
		t.Errorf("error = %v, want ErrInvalidFarm", err)
	}
	if len(repo.saved) != 0 {
		t.Error("invalid registration reached the repository")
	}
}

// TestWriteNDVICSV tests header plus one row per sample
func TestWriteNDVICSV(t *testing.T) {
	st := store.New()
	svc, _, _ := newTestService(st)

	st.SetNDVISeries([]model.NdviSample{
		{Date: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), Value: 0.65},
		{Date: time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC), Value: 0.68},
	})

	var buf bytes.Buffer
	if err := svc.WriteNDVICSV(&buf); err != nil {
		t.Fatalf("WriteNDVICSV failed: %v", err)
	}

	expected := "date,ndvi\n2023-01-15,0.65\n2023-02-15,0.68\n"
	if buf.String() != expected {
		t.Errorf("csv = %q, want %q", buf.String(), expected)
	}
}

// TestWriteSoilCSV tests soil profile export
func TestWriteSoilCSV(t *testing.T) {
	st := store.New()
	svc, _, _ := newTestService(st)

	st.SetSoilProfile([]model.SoilParameter{
		{Name: "pH", Value: 6.5, Optimal: "6.0-7.0", Status: model.SoilOptimal},
		{Name: "Potassium", Value: 18, Optimal: "20-30", Status: model.SoilLow},
	})

	var buf bytes.Buffer
	if err := svc.WriteSoilCSV(&buf); err != nil {
		t.Fatalf("WriteSoilCSV failed: %v", err)
	}

	expected := "parameter,value,optimal,status\npH,6.5,6.0-7.0,optimal\nPotassium,18.0,20-30,low\n"
	if buf.String() != expected {
		t.Errorf("csv = %q, want %q", buf.String(), expected)
	}
}

// TestFarmPanelUnregistered tests the delivered-but-empty farm panel
func TestFarmPanelUnregistered(t *testing.T) {
	st := store.New()
	svc, _, _ := newTestService(st)

	st.MarkDelivered(model.KindFarm)

	payload, ok := svc.Panel("farm")
	if !ok {
		t.Fatal("farm panel missing")
	}
	panel := payload.(FarmPanel)
	if panel.Status != StatusReady {
		t.Errorf("status = %q, want %q", panel.Status, StatusReady)
	}
	if panel.Registered {
		t.Error("Expected registered=false without a farm value")
	}
	if panel.Farm != nil {
		t.Error("Expected no farm payload")
	}
}
