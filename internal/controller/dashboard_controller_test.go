package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"agriintel/internal/model"
	"agriintel/internal/service"

	"github.com/gin-gonic/gin"
)

// mockDashboardService is a mock implementation of DashboardService for testing
type mockDashboardService struct {
	snapshot    service.SnapshotResponse
	panels      map[string]any
	registered  model.Farm
	registerErr error
	csv         string
}

func (m *mockDashboardService) Snapshot() service.SnapshotResponse {
	return m.snapshot
}

func (m *mockDashboardService) Panel(name string) (any, bool) {
	payload, ok := m.panels[name]
	return payload, ok
}

func (m *mockDashboardService) RegisterFarm(ctx context.Context, input service.FarmInput) (model.Farm, error) {
	if m.registerErr != nil {
		return model.Farm{}, m.registerErr
	}
	return m.registered, nil
}

func (m *mockDashboardService) WriteNDVICSV(w io.Writer) error {
	_, err := io.WriteString(w, m.csv)
	return err
}

func (m *mockDashboardService) WriteSoilCSV(w io.Writer) error {
	_, err := io.WriteString(w, m.csv)
	return err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupDashboardRouter(c *DashboardController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/v1")
	{
		v1.GET("/dashboard", c.GetSnapshot)
		v1.GET("/dashboard/:panel", c.GetPanel)
		v1.POST("/farm", c.RegisterFarm)
		v1.GET("/export/ndvi.csv", c.ExportNDVI)
	}
	return r
}

func TestGetSnapshot(t *testing.T) {
	mockService := &mockDashboardService{
		snapshot: service.SnapshotResponse{
			Ready: true,
			NDVI:  service.NDVIPanel{Status: service.StatusReady},
		},
	}
	router := setupDashboardRouter(NewDashboardController(mockService, testLogger()))

	req, _ := http.NewRequest("GET", "/v1/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var response service.SnapshotResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !response.Ready {
		t.Error("Expected ready=true in snapshot")
	}
	if response.NDVI.Status != service.StatusReady {
		t.Errorf("Expected ndvi status %q, got %q", service.StatusReady, response.NDVI.Status)
	}
}

func TestGetPanel_Known(t *testing.T) {
	mockService := &mockDashboardService{
		panels: map[string]any{
			"soil": service.SoilPanel{Status: service.StatusLoading},
		},
	}
	router := setupDashboardRouter(NewDashboardController(mockService, testLogger()))

	req, _ := http.NewRequest("GET", "/v1/dashboard/soil", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var panel service.SoilPanel
	if err := json.Unmarshal(w.Body.Bytes(), &panel); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if panel.Status != service.StatusLoading {
		t.Errorf("Expected status %q, got %q", service.StatusLoading, panel.Status)
	}
}

func TestGetPanel_Unknown(t *testing.T) {
	mockService := &mockDashboardService{panels: map[string]any{}}
	router := setupDashboardRouter(NewDashboardController(mockService, testLogger()))

	req, _ := http.NewRequest("GET", "/v1/dashboard/livestock", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestRegisterFarm_Created(t *testing.T) {
	mockService := &mockDashboardService{
		registered: model.Farm{ID: 1, Name: "Green Valley Farm"},
	}
	router := setupDashboardRouter(NewDashboardController(mockService, testLogger()))

	body, _ := json.Marshal(service.FarmInput{Name: "Green Valley Farm"})
	req, _ := http.NewRequest("POST", "/v1/farm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d", http.StatusCreated, w.Code)
	}

	var farm model.Farm
	if err := json.Unmarshal(w.Body.Bytes(), &farm); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if farm.ID != 1 {
		t.Errorf("Expected farm id 1, got %d", farm.ID)
	}
}

func TestRegisterFarm_Conflict(t *testing.T) {
	mockService := &mockDashboardService{registerErr: service.ErrFarmExists}
	router := setupDashboardRouter(NewDashboardController(mockService, testLogger()))

	body, _ := json.Marshal(service.FarmInput{Name: "Green Valley Farm"})
	req, _ := http.NewRequest("POST", "/v1/farm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status code %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestRegisterFarm_Invalid(t *testing.T) {
	mockService := &mockDashboardService{registerErr: service.ErrInvalidFarm}
	router := setupDashboardRouter(NewDashboardController(mockService, testLogger()))

	body := []byte(`{"location": "Nairobi", "name": "x"}`)
	req, _ := http.NewRequest("POST", "/v1/farm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestExportNDVI(t *testing.T) {
	mockService := &mockDashboardService{csv: "date,ndvi\n2023-01-15,0.65\n"}
	router := setupDashboardRouter(NewDashboardController(mockService, testLogger()))

	req, _ := http.NewRequest("GET", "/v1/export/ndvi.csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Expected Content-Type text/csv, got %q", ct)
	}
	if w.Body.String() != mockService.csv {
		t.Errorf("Expected csv body %q, got %q", mockService.csv, w.Body.String())
	}
}
