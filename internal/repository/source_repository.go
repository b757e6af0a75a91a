package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"agriintel/internal/model"
)

// Source is the upstream data provider the ingestion layer fetches from.
// In this deployment it is a seeded local database standing in for the
// eventual remote API; swapping in a real client must not change the
// arrival/aggregation contract.
type Source interface {
	FetchFarm(ctx context.Context) (*model.Farm, error)
	FetchNDVISeries(ctx context.Context) ([]model.NdviSample, error)
	FetchSoilProfile(ctx context.Context) ([]model.SoilParameter, error)
	FetchWeather(ctx context.Context) (*model.WeatherSnapshot, error)
	FetchMarketQuotes(ctx context.Context) ([]model.MarketQuote, error)
	FetchCropHealth(ctx context.Context) ([]model.CropHealthRecord, error)
	FetchNotifications(ctx context.Context) ([]model.Notification, error)
	SaveFarm(ctx context.Context, farm *model.Farm) error
}

// sourceRepository implements Source
type sourceRepository struct {
	db *gorm.DB
}

// NewSource creates a database-backed Source.
func NewSource(db *gorm.DB) Source {
	return &sourceRepository{db: db}
}

// FetchFarm returns the registered farm, or nil when no farm exists yet.
func (r *sourceRepository) FetchFarm(ctx context.Context) (*model.Farm, error) {
	var farm model.Farm
	err := r.db.WithContext(ctx).Order("id").First(&farm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &farm, nil
}

// FetchNDVISeries returns all vegetation-index samples ordered by date.
func (r *sourceRepository) FetchNDVISeries(ctx context.Context) ([]model.NdviSample, error) {
	var samples []model.NdviSample
	if err := r.db.WithContext(ctx).Order("date").Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}

// FetchSoilProfile returns the set of measured soil parameters.
func (r *sourceRepository) FetchSoilProfile(ctx context.Context) ([]model.SoilParameter, error) {
	var params []model.SoilParameter
	if err := r.db.WithContext(ctx).Order("id").Find(&params).Error; err != nil {
		return nil, err
	}
	return params, nil
}

// FetchWeather returns the current weather snapshot, or nil when absent.
func (r *sourceRepository) FetchWeather(ctx context.Context) (*model.WeatherSnapshot, error) {
	var snap model.WeatherSnapshot
	err := r.db.WithContext(ctx).Order("id desc").First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// FetchMarketQuotes returns one quote per tracked crop.
func (r *sourceRepository) FetchMarketQuotes(ctx context.Context) ([]model.MarketQuote, error) {
	var quotes []model.MarketQuote
	if err := r.db.WithContext(ctx).Order("id").Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// FetchCropHealth returns the per-crop health assessments.
func (r *sourceRepository) FetchCropHealth(ctx context.Context) ([]model.CropHealthRecord, error) {
	var records []model.CropHealthRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FetchNotifications returns notifications newest first.
func (r *sourceRepository) FetchNotifications(ctx context.Context) ([]model.Notification, error) {
	var items []model.Notification
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SaveFarm persists a newly registered farm.
func (r *sourceRepository) SaveFarm(ctx context.Context, farm *model.Farm) error {
	return r.db.WithContext(ctx).Create(farm).Error
}
