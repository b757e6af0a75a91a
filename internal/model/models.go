package model

import (
	"time"
)

// DatasetKind identifies one independently-arriving dashboard dataset.
type DatasetKind string

const (
	KindFarm          DatasetKind = "farm"
	KindNDVI          DatasetKind = "ndvi"
	KindSoil          DatasetKind = "soil"
	KindWeather       DatasetKind = "weather"
	KindMarket        DatasetKind = "market"
	KindCropHealth    DatasetKind = "crop_health"
	KindNotifications DatasetKind = "notifications"
)

// DatasetKinds lists every kind the ingestion layer delivers on a timer.
// Notifications are excluded: they arrive synchronously at startup.
func DatasetKinds() []DatasetKind {
	return []DatasetKind{KindFarm, KindNDVI, KindSoil, KindWeather, KindMarket, KindCropHealth}
}

// CropStatus is the field-observed condition of a planted crop.
type CropStatus string

const (
	CropHealthy  CropStatus = "healthy"
	CropModerate CropStatus = "moderate"
	CropSevere   CropStatus = "severe"
)

// SoilStatus reports a soil parameter against its optimal range.
type SoilStatus string

const (
	SoilOptimal SoilStatus = "optimal"
	SoilLow     SoilStatus = "low"
	SoilHigh    SoilStatus = "high"
)

// Trend is the direction of a market price movement.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// NotificationType classifies a notification entry.
type NotificationType string

const (
	NotifyAlert   NotificationType = "alert"
	NotifyWarning NotificationType = "warning"
	NotifyInfo    NotificationType = "info"
)

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Coordinate is a single polygon vertex in longitude/latitude order,
// matching the GeoJSON convention used by the map surface.
type Coordinate struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Crop is one planted crop belonging to a farm.
type Crop struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	AreaAcres float64    `json:"area"`
	Planted   time.Time  `json:"planted"`
	Status    CropStatus `json:"status"`
}

// Farm is the registered farm. Absence of a row means the unregistered state.
type Farm struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"not null;size:255" json:"name"`
	SizeAcres   float64      `gorm:"type:decimal(10,2)" json:"size"`
	Location    string       `gorm:"size:255" json:"location"`
	Boundary    []Coordinate `gorm:"serializer:json" json:"boundary"`
	Crops       []Crop       `gorm:"serializer:json" json:"crops"`
	SoilType    string       `gorm:"size:64" json:"soil_type"`
	Irrigation  string       `gorm:"size:64" json:"irrigation"`
	LastUpdated time.Time    `json:"last_updated"`
}

// TableName specifies the table name for Farm
func (Farm) TableName() string {
	return "farms"
}

// NdviSample is one vegetation-index reading. Samples are ordered by date;
// the latest reading is the last element of the series, not the maximum.
type NdviSample struct {
	ID    uint      `gorm:"primaryKey" json:"-"`
	Date  time.Time `gorm:"not null;index" json:"date"`
	Value float64   `gorm:"not null" json:"value"`
}

// TableName specifies the table name for NdviSample
func (NdviSample) TableName() string {
	return "ndvi_samples"
}

// SoilParameter is one measured soil chemistry value with its optimal range.
type SoilParameter struct {
	ID      uint       `gorm:"primaryKey" json:"-"`
	Name    string     `gorm:"not null;size:64" json:"parameter"`
	Value   float64    `gorm:"not null" json:"value"`
	Optimal string     `gorm:"size:32" json:"optimal"`
	Status  SoilStatus `gorm:"size:16" json:"status"`
}

// TableName specifies the table name for SoilParameter
func (SoilParameter) TableName() string {
	return "soil_parameters"
}

// WeatherReading is the current conditions block of a weather snapshot.
type WeatherReading struct {
	TempC      float64 `json:"temp"`
	Humidity   float64 `json:"humidity"`
	WindKPH    float64 `json:"wind"`
	Condition  string  `json:"condition"`
	RainfallMM float64 `json:"rainfall"`
}

// ForecastDay is one entry of the short forecast window.
type ForecastDay struct {
	Day        string  `json:"day"`
	TempC      float64 `json:"temp"`
	Condition  string  `json:"condition"`
	RainfallMM float64 `json:"rainfall"`
}

// WeatherSnapshot is the current reading plus the daily forecast sequence.
type WeatherSnapshot struct {
	ID       uint           `gorm:"primaryKey" json:"-"`
	Current  WeatherReading `gorm:"embedded;embeddedPrefix:current_" json:"current"`
	Forecast []ForecastDay  `gorm:"serializer:json" json:"forecast"`
}

// TableName specifies the table name for WeatherSnapshot
func (WeatherSnapshot) TableName() string {
	return "weather_snapshots"
}

// MarketQuote is the current price and trend for one crop.
type MarketQuote struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	Crop      string  `gorm:"not null;size:64" json:"crop"`
	Price     float64 `gorm:"not null" json:"price"`
	Trend     Trend   `gorm:"size:16" json:"trend"`
	ChangePct float64 `json:"change"`
}

// TableName specifies the table name for MarketQuote
func (MarketQuote) TableName() string {
	return "market_quotes"
}

// CropHealthRecord is the assessed health of one crop with known issues
// and the recommended treatment. Health index is nominally 0-100 but the
// store accepts out-of-range values; classification clamps them.
type CropHealthRecord struct {
	ID        uint     `gorm:"primaryKey" json:"-"`
	Crop      string   `gorm:"not null;size:64" json:"crop"`
	Health    float64  `gorm:"not null" json:"health"`
	Issues    []string `gorm:"serializer:json" json:"issues"`
	Treatment string   `gorm:"size:255" json:"treatment"`
}

// TableName specifies the table name for CropHealthRecord
func (CropHealthRecord) TableName() string {
	return "crop_health_records"
}

// Notification is one alert entry. The read flag is only ever mutated by an
// explicit acknowledgment.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Type      NotificationType `gorm:"size:16" json:"type"`
	Message   string           `gorm:"size:255" json:"message"`
	TimeLabel string           `gorm:"size:32" json:"time"`
	Read      bool             `json:"read"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// ChatMessage is one entry of the append-only conversation transcript.
type ChatMessage struct {
	ID     string `json:"id"`
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}
