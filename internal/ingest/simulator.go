// Package ingest models the asynchronous, independently-latent external
// data sources behind the dashboard. Each dataset is delivered once, after
// its configured delay; the crop-health delivery is the sole writer of the
// global readiness gate.
package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"agriintel/internal/model"
	"agriintel/internal/notify"
	"agriintel/internal/repository"
	"agriintel/internal/store"
)

// Delays is the simulated arrival latency per dataset kind. The reference
// schedule increases from farm to crop health, but correctness must not
// depend on that ordering.
type Delays struct {
	Farm       time.Duration
	NDVI       time.Duration
	Soil       time.Duration
	Weather    time.Duration
	Market     time.Duration
	CropHealth time.Duration
}

// DefaultDelays returns the reference schedule.
func DefaultDelays() Delays {
	return Delays{
		Farm:       500 * time.Millisecond,
		NDVI:       600 * time.Millisecond,
		Soil:       700 * time.Millisecond,
		Weather:    800 * time.Millisecond,
		Market:     900 * time.Millisecond,
		CropHealth: 1000 * time.Millisecond,
	}
}

func (d Delays) forKind(kind model.DatasetKind) time.Duration {
	switch kind {
	case model.KindFarm:
		return d.Farm
	case model.KindNDVI:
		return d.NDVI
	case model.KindSoil:
		return d.Soil
	case model.KindWeather:
		return d.Weather
	case model.KindMarket:
		return d.Market
	case model.KindCropHealth:
		return d.CropHealth
	default:
		return 0
	}
}

// Simulator schedules the one-shot delivery of every dataset kind.
type Simulator struct {
	src    repository.Source
	store  *store.Store
	center *notify.Center
	delays Delays
	logger *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSimulator creates a simulator writing into the given store and
// notification center.
func NewSimulator(src repository.Source, st *store.Store, center *notify.Center, delays Delays, logger *slog.Logger) *Simulator {
	return &Simulator{
		src:    src,
		store:  st,
		center: center,
		delays: delays,
		logger: logger,
	}
}

// Start delivers notifications synchronously, then schedules one delayed
// delivery per dataset kind. Pending deliveries are cancelled when ctx is
// done or Stop is called; a delivery scheduled is otherwise guaranteed to
// fire exactly once.
func (s *Simulator) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.deliverNotifications(ctx)

	for _, kind := range model.DatasetKinds() {
		s.wg.Add(1)
		go s.deliver(ctx, kind, s.delays.forKind(kind))
	}
}

// Stop cancels pending deliveries and waits for in-flight ones to settle.
func (s *Simulator) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// deliverNotifications seeds the notification center immediately.
// Notifications are exempt from the readiness gate.
func (s *Simulator) deliverNotifications(ctx context.Context) {
	items, err := s.src.FetchNotifications(ctx)
	if err != nil {
		s.logger.Warn("notification delivery failed",
			"dataset", model.KindNotifications,
			"error", err.Error(),
		)
		return
	}
	s.center.Seed(items)
	s.logger.Info("dataset delivered",
		"dataset", model.KindNotifications,
		"count", len(items),
	)
}

func (s *Simulator) deliver(ctx context.Context, kind model.DatasetKind, delay time.Duration) {
	defer s.wg.Done()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		s.logger.Debug("delivery cancelled", "dataset", kind)
		return
	case <-timer.C:
	}

	start := time.Now()
	err := s.fetchInto(ctx, kind)
	if err != nil {
		// Terminal per-dataset failure: the panel renders unavailable,
		// everything else keeps going.
		s.store.MarkFailed(kind, err.Error())
		s.logger.Error("dataset delivery failed",
			"dataset", kind,
			"error", err.Error(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	} else {
		s.logger.Info("dataset delivered",
			"dataset", kind,
			"delay_ms", delay.Milliseconds(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}

	// Crop health is the designated readiness gate. It resolves the gate
	// whether it loaded or failed, so a broken source cannot hang the
	// dashboard in its loading state.
	if kind == model.KindCropHealth {
		s.store.MarkReady()
		s.logger.Info("dashboard ready", "with_errors", err != nil)
	}
}

func (s *Simulator) fetchInto(ctx context.Context, kind model.DatasetKind) error {
	switch kind {
	case model.KindFarm:
		farm, err := s.src.FetchFarm(ctx)
		if err != nil {
			return err
		}
		if farm != nil {
			s.store.SetFarm(*farm)
		} else {
			s.store.MarkDelivered(model.KindFarm)
		}
	case model.KindNDVI:
		samples, err := s.src.FetchNDVISeries(ctx)
		if err != nil {
			return err
		}
		s.store.SetNDVISeries(samples)
	case model.KindSoil:
		params, err := s.src.FetchSoilProfile(ctx)
		if err != nil {
			return err
		}
		s.store.SetSoilProfile(params)
	case model.KindWeather:
		snap, err := s.src.FetchWeather(ctx)
		if err != nil {
			return err
		}
		if snap != nil {
			s.store.SetWeather(*snap)
		} else {
			s.store.MarkDelivered(model.KindWeather)
		}
	case model.KindMarket:
		quotes, err := s.src.FetchMarketQuotes(ctx)
		if err != nil {
			return err
		}
		s.store.SetMarketQuotes(quotes)
	case model.KindCropHealth:
		records, err := s.src.FetchCropHealth(ctx)
		if err != nil {
			return err
		}
		s.store.SetCropHealth(records)
	}
	return nil
}
