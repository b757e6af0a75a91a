// Package analytics computes presentation-ready aggregates from raw
// dataset values. Every function here is pure and recomputed per call;
// absent datasets yield empty results, out-of-range inputs fall into the
// nearest classification bucket instead of erroring.
package analytics

import (
	"math"

	"agriintel/internal/model"
)

// Thresholds are the classification boundaries. The NDVI boundaries are
// half-open: a reading must be strictly above Excellent to classify as
// excellent; exactly 0.7 is moderate. Likewise a health index of exactly
// 80 is moderate, not good.
type Thresholds struct {
	NDVIExcellent  float64
	NDVIModerate   float64
	HealthGood     float64
	HealthModerate float64
}

// DefaultThresholds returns the reference boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		NDVIExcellent:  0.7,
		NDVIModerate:   0.5,
		HealthGood:     80,
		HealthModerate: 60,
	}
}

// Engine evaluates classifications against a fixed set of thresholds.
type Engine struct {
	t Thresholds
}

// NewEngine creates an engine. Zero thresholds fall back to the defaults.
func NewEngine(t Thresholds) Engine {
	if t == (Thresholds{}) {
		t = DefaultThresholds()
	}
	return Engine{t: t}
}

// Band is the three-way health classification applied to badges and card
// styling alike.
type Band string

const (
	BandGood     Band = "good"
	BandModerate Band = "moderate"
	BandPoor     Band = "poor"
)

// HealthBand classifies a health index: >80 good, 61-80 moderate, the rest
// poor. The buckets cover the whole number line, so values outside 0-100
// land in the nearest band.
func (e Engine) HealthBand(index float64) Band {
	switch {
	case index > e.t.HealthGood:
		return BandGood
	case index > e.t.HealthModerate:
		return BandModerate
	default:
		return BandPoor
	}
}

// HealthPoint is one entry of the crop-health chart series.
type HealthPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Band  Band    `json:"band"`
	Color string  `json:"color"`
}

// HealthSeries builds the chart series from crop-health records.
func (e Engine) HealthSeries(records []model.CropHealthRecord) []HealthPoint {
	points := make([]HealthPoint, 0, len(records))
	for _, rec := range records {
		band := e.HealthBand(rec.Health)
		points = append(points, HealthPoint{
			Label: rec.Crop,
			Value: rec.Health,
			Band:  band,
			Color: bandColor(band),
		})
	}
	return points
}

func bandColor(b Band) string {
	switch b {
	case BandGood:
		return "green"
	case BandModerate:
		return "amber"
	default:
		return "red"
	}
}

// Vigor is the textual NDVI interpretation.
type Vigor string

const (
	VigorExcellent Vigor = "excellent vigor"
	VigorModerate  Vigor = "moderate vigor, check nutrients"
	VigorLow       Vigor = "low vigor, attention required"
)

// NDVIReading is a classified vegetation-index value.
type NDVIReading struct {
	Value  float64 `json:"value"`
	Vigor  Vigor   `json:"vigor"`
	Advice string  `json:"advice"`
}

// InterpretNDVI classifies a reading: strictly above 0.7 is excellent,
// above 0.5 is moderate, everything else low. Values outside [0,1] are
// accepted and fall into the nearest bucket.
func (e Engine) InterpretNDVI(v float64) NDVIReading {
	r := NDVIReading{Value: v}
	switch {
	case v > e.t.NDVIExcellent:
		r.Vigor = VigorExcellent
		r.Advice = "Excellent crop vigor detected. Maintain current practices."
	case v > e.t.NDVIModerate:
		r.Vigor = VigorModerate
		r.Advice = "Moderate crop vigor. Consider checking soil nutrients."
	default:
		r.Vigor = VigorLow
		r.Advice = "Low crop vigor detected. Immediate attention recommended."
	}
	return r
}

// LatestNDVI returns the last sample of the series. The latest reading is
// positional, not the maximum value.
func LatestNDVI(samples []model.NdviSample) (model.NdviSample, bool) {
	if len(samples) == 0 {
		return model.NdviSample{}, false
	}
	return samples[len(samples)-1], true
}

// QuoteView is a market quote with its presentation classification. The
// change magnitude is always the absolute value; direction lives in the
// trend glyph.
type QuoteView struct {
	Crop      string      `json:"crop"`
	Price     float64     `json:"price"`
	Trend     model.Trend `json:"trend"`
	Color     string      `json:"color"`
	Arrow     string      `json:"arrow"`
	ChangeAbs float64     `json:"change_abs"`
}

// ClassifyTrend maps a trend to its color and arrow glyph. Unknown trends
// render as stable.
func ClassifyTrend(t model.Trend) (color, arrow string) {
	switch t {
	case model.TrendUp:
		return "green", "▲"
	case model.TrendDown:
		return "red", "▼"
	default:
		return "gray", "→"
	}
}

// MarketBoard classifies a set of quotes. Order is preserved and the
// function is free of side effects: repeated calls on the same input give
// identical output.
func MarketBoard(quotes []model.MarketQuote) []QuoteView {
	views := make([]QuoteView, 0, len(quotes))
	for _, q := range quotes {
		color, arrow := ClassifyTrend(q.Trend)
		views = append(views, QuoteView{
			Crop:      q.Crop,
			Price:     q.Price,
			Trend:     q.Trend,
			Color:     color,
			Arrow:     arrow,
			ChangeAbs: math.Abs(q.ChangePct),
		})
	}
	return views
}

// SoilView is a soil parameter with its status color.
type SoilView struct {
	model.SoilParameter
	Color string `json:"color"`
}

// SoilColor maps a soil status to a visual bucket. Low and high get
// distinct colors; anything unrecognized renders as high.
func SoilColor(s model.SoilStatus) string {
	switch s {
	case model.SoilOptimal:
		return "green"
	case model.SoilLow:
		return "amber"
	default:
		return "red"
	}
}

// SoilChart attaches status colors to a soil profile.
func SoilChart(params []model.SoilParameter) []SoilView {
	views := make([]SoilView, 0, len(params))
	for _, p := range params {
		views = append(views, SoilView{SoilParameter: p, Color: SoilColor(p.Status)})
	}
	return views
}
