package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"agriintel/internal/model"
)

// SeedRepository handles database seeding operations
type SeedRepository struct {
	db *gorm.DB
}

// NewSeedRepository creates a new seed repository
func NewSeedRepository(db *gorm.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

// SeedDatabase resets the upstream tables and loads the reference demo
// datasets: one farm with three crops, five NDVI samples, five soil
// parameters, the current weather with a 5-day forecast, five market
// quotes, three crop-health assessments and three notifications.
func (s *SeedRepository) SeedDatabase() error {
	if err := s.clearExistingData(); err != nil {
		return fmt.Errorf("failed to clear existing data: %w", err)
	}

	if err := s.db.Create(seedFarm()).Error; err != nil {
		return fmt.Errorf("failed to seed farm: %w", err)
	}
	if err := s.db.Create(seedNDVISamples()).Error; err != nil {
		return fmt.Errorf("failed to seed ndvi samples: %w", err)
	}
	if err := s.db.Create(seedSoilParameters()).Error; err != nil {
		return fmt.Errorf("failed to seed soil parameters: %w", err)
	}
	if err := s.db.Create(seedWeather()).Error; err != nil {
		return fmt.Errorf("failed to seed weather: %w", err)
	}
	if err := s.db.Create(seedMarketQuotes()).Error; err != nil {
		return fmt.Errorf("failed to seed market quotes: %w", err)
	}
	if err := s.db.Create(seedCropHealth()).Error; err != nil {
		return fmt.Errorf("failed to seed crop health: %w", err)
	}
	if err := s.db.Create(seedNotifications()).Error; err != nil {
		return fmt.Errorf("failed to seed notifications: %w", err)
	}

	return nil
}

// clearExistingData removes existing data. Plain DELETEs so the same
// statements work on sqlite and postgres.
func (s *SeedRepository) clearExistingData() error {
	for _, table := range []string{
		"farms",
		"ndvi_samples",
		"soil_parameters",
		"weather_snapshots",
		"market_quotes",
		"crop_health_records",
		"notifications",
	} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedFarm() *model.Farm {
	return &model.Farm{
		Name:      "Green Valley Farm",
		SizeAcres: 5.2,
		Location:  "Nairobi, Kenya",
		Boundary: []model.Coordinate{
			{Lng: 36.815, Lat: -1.295},
			{Lng: 36.82, Lat: -1.295},
			{Lng: 36.82, Lat: -1.29},
			{Lng: 36.815, Lat: -1.29},
		},
		Crops: []model.Crop{
			{ID: 1, Name: "Maize", AreaAcres: 2.5, Planted: date(2023, 3, 15), Status: model.CropHealthy},
			{ID: 2, Name: "Beans", AreaAcres: 1.2, Planted: date(2023, 3, 20), Status: model.CropModerate},
			{ID: 3, Name: "Tomatoes", AreaAcres: 1.5, Planted: date(2023, 4, 1), Status: model.CropHealthy},
		},
		SoilType:    "Loamy",
		Irrigation:  "Drip system",
		LastUpdated: time.Now().UTC(),
	}
}

func seedNDVISamples() []model.NdviSample {
	return []model.NdviSample{
		{Date: date(2023, 1, 1), Value: 0.65},
		{Date: date(2023, 2, 1), Value: 0.68},
		{Date: date(2023, 3, 1), Value: 0.72},
		{Date: date(2023, 4, 1), Value: 0.75},
		{Date: date(2023, 5, 1), Value: 0.78},
	}
}

func seedSoilParameters() []model.SoilParameter {
	return []model.SoilParameter{
		{Name: "pH", Value: 6.5, Optimal: "6.0-7.0", Status: model.SoilOptimal},
		{Name: "Nitrogen", Value: 25, Optimal: "20-30", Status: model.SoilOptimal},
		{Name: "Phosphorus", Value: 15, Optimal: "15-25", Status: model.SoilOptimal},
		{Name: "Potassium", Value: 18, Optimal: "20-30", Status: model.SoilLow},
		{Name: "Moisture", Value: 62, Optimal: "60-70", Status: model.SoilOptimal},
	}
}

func seedWeather() *model.WeatherSnapshot {
	return &model.WeatherSnapshot{
		Current: model.WeatherReading{
			TempC:      25,
			Humidity:   65,
			WindKPH:    12,
			Condition:  "Partly Cloudy",
			RainfallMM: 0,
		},
		Forecast: []model.ForecastDay{
			{Day: "Today", TempC: 25, Condition: "Partly Cloudy", RainfallMM: 0},
			{Day: "Tomorrow", TempC: 24, Condition: "Light Rain", RainfallMM: 2.5},
			{Day: "Day 3", TempC: 26, Condition: "Sunny", RainfallMM: 0},
			{Day: "Day 4", TempC: 27, Condition: "Sunny", RainfallMM: 0},
			{Day: "Day 5", TempC: 25, Condition: "Cloudy", RainfallMM: 1.2},
		},
	}
}

func seedMarketQuotes() []model.MarketQuote {
	return []model.MarketQuote{
		{Crop: "Maize", Price: 45, Trend: model.TrendUp, ChangePct: 2.5},
		{Crop: "Beans", Price: 120, Trend: model.TrendStable, ChangePct: 0},
		{Crop: "Tomatoes", Price: 80, Trend: model.TrendDown, ChangePct: -5},
		{Crop: "Wheat", Price: 65, Trend: model.TrendUp, ChangePct: 3.2},
		{Crop: "Potatoes", Price: 55, Trend: model.TrendUp, ChangePct: 1.8},
	}
}

func seedCropHealth() []model.CropHealthRecord {
	return []model.CropHealthRecord{
		{Crop: "Maize", Health: 85, Issues: []string{"Minor leaf spot"}, Treatment: "Apply fungicide if spreads"},
		{Crop: "Beans", Health: 72, Issues: []string{"Aphids detected"}, Treatment: "Apply neem oil spray"},
		{Crop: "Tomatoes", Health: 90, Issues: []string{}, Treatment: "None required"},
	}
}

func seedNotifications() []model.Notification {
	return []model.Notification{
		{Type: model.NotifyAlert, Message: "Irrigation scheduled for tomorrow morning", TimeLabel: "2 hours ago", Read: false},
		{Type: model.NotifyWarning, Message: "Potential pest activity detected in maize field", TimeLabel: "1 day ago", Read: false},
		{Type: model.NotifyInfo, Message: "Soil test results available", TimeLabel: "3 days ago", Read: true},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
