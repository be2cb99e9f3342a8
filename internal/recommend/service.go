// Package recommend orchestrates the crop recommendation pipeline:
// fetch regional data, derive indices, rank the crop catalog, attach
// yield, economics, and risk to the top crops, and order them by the
// composite final rating.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agrosense/crop-advisor-backend/internal/climate"
	"agrosense/crop-advisor-backend/internal/economics"
	"agrosense/crop-advisor-backend/internal/indices"
	"agrosense/crop-advisor-backend/internal/risk"
	"agrosense/crop-advisor-backend/internal/soil"
	"agrosense/crop-advisor-backend/internal/suitability"
)

const (
	climateLookbackDays   = 365
	satelliteLookbackDays = 180
	pipelineSteps         = 6
)

// ClimateSource provides daily climate archives for a coordinate.
type ClimateSource interface {
	FetchDailyArchive(ctx context.Context, lat, lon float64, start, end time.Time) (*climate.Summary, error)
}

// SatelliteSource provides NDVI observation series for a coordinate.
type SatelliteSource interface {
	FetchNDVISeries(ctx context.Context, lat, lon float64, start, end time.Time) ([]indices.NDVIObservation, error)
}

// SoilSource provides soil profiles for a coordinate.
type SoilSource interface {
	FetchProfile(ctx context.Context, lat, lon float64) (*soil.Profile, error)
}

// ProgressNotifier receives step-by-step pipeline progress. Implementers
// must not block.
type ProgressNotifier interface {
	Publish(requestID uuid.UUID, step, total int, message string)
}

// Service runs the recommendation pipeline.
type Service struct {
	repo      Repository
	climate   ClimateSource
	satellite SatelliteSource
	soil      SoilSource
	notifier  ProgressNotifier
	logger    *zap.Logger
}

// NewService creates the pipeline service. satellite, soilSource, and
// notifier may be nil; the pipeline degrades gracefully without them.
func NewService(repo Repository, climateSource ClimateSource, satelliteSource SatelliteSource, soilSource SoilSource, notifier ProgressNotifier, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		climate:   climateSource,
		satellite: satelliteSource,
		soil:      soilSource,
		notifier:  notifier,
		logger:    logger,
	}
}

// Generate runs the full pipeline for a request and persists the
// result. Satellite and soil failures degrade to partial inputs;
// a climate failure aborts, since every index depends on it.
func (s *Service) Generate(ctx context.Context, req Request) (*Recommendation, error) {
	id := uuid.New()
	if req.RequestID != nil {
		id = *req.RequestID
	}
	now := time.Now().UTC()

	if req.AreaHa <= 0 {
		req.AreaHa = 10
	}

	s.progress(id, 1, "fetching climate archive")
	summary, err := s.climate.FetchDailyArchive(ctx, req.Latitude, req.Longitude,
		now.AddDate(0, 0, -climateLookbackDays), now)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch climate data: %w", err)
	}

	s.progress(id, 2, "fetching satellite NDVI")
	var ndvi []indices.NDVIObservation
	if s.satellite != nil {
		ndvi, err = s.satellite.FetchNDVISeries(ctx, req.Latitude, req.Longitude,
			now.AddDate(0, 0, -satelliteLookbackDays), now)
		if err != nil {
			s.logger.Warn("satellite data unavailable, continuing without NDVI", zap.Error(err))
			ndvi = nil
		}
	}

	s.progress(id, 3, "fetching soil profile")
	var soilProfile *soil.Profile
	if s.soil != nil {
		soilProfile, err = s.soil.FetchProfile(ctx, req.Latitude, req.Longitude)
		if err != nil {
			s.logger.Warn("soil data unavailable, continuing without texture", zap.Error(err))
			soilProfile = nil
		}
	}

	s.progress(id, 4, "calculating agronomic indices")
	idx := indices.Calculate(indices.ClimateInputs{
		TemperatureAvg:   summary.TemperatureAvg,
		Precipitation:    summary.PrecipitationMonthly,
		PrecipitationSum: &summary.PrecipitationSum,
	}, ndvi)

	s.progress(id, 5, "ranking crops")
	features := PrepareRegionFeatures(summary, soilProfile, idx)
	topCrops := s.evaluateCrops(features, idx, summary, req.TopN)

	s.progress(id, 6, "assembling recommendation")
	rec := &Recommendation{
		ID:          id,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		AreaHa:      req.AreaHa,
		Features:    features,
		Indices:     idx,
		Soil:        soilProfile,
		TopCrops:    topCrops,
		GeneratedAt: now,
	}

	if err := s.store(ctx, rec, req.TelegramID); err != nil {
		return nil, err
	}

	s.logger.Info("generated recommendation",
		zap.String("id", id.String()),
		zap.Float64("lat", req.Latitude),
		zap.Float64("lon", req.Longitude),
		zap.Int("crops", len(topCrops)))

	return rec, nil
}

// evaluateCrops ranks the catalog by suitability, evaluates yield,
// economics, and risk for the provisional top crops, and re-sorts them
// by final rating.
func (s *Service) evaluateCrops(features suitability.RegionFeatures, idx *indices.Result, summary *climate.Summary, topN int) []CropAdvice {
	var temperatureMin *float64
	if summary != nil {
		temperatureMin = suitability.Float64(summary.TemperatureMin)
	}

	ranked := suitability.TopN(features, topN)

	advice := make([]CropAdvice, 0, len(ranked))
	for _, res := range ranked {
		entry := CropAdvice{Suitability: res}

		if forecast, ok := economics.EstimateYield(res.Crop, res.Score, idx); ok {
			entry.YieldForecast = &forecast
			if econ, ok := economics.Calculate(res.Crop, forecast); ok {
				entry.Economics = econ
			}
		}

		entry.Risk = risk.Assess(res.Crop, temperatureMin, idx)
		entry.FinalRating = FinalRating(res.Score, entry.Economics, entry.Risk)

		advice = append(advice, entry)
	}

	sortByFinalRating(advice)
	return advice
}

// GetByID loads a stored recommendation.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var rec Recommendation
	if err := json.Unmarshal(record.Payload, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode stored recommendation: %w", err)
	}
	return &rec, nil
}

// ListRecent returns recently generated recommendation records.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	return s.repo.ListRecent(ctx, limit)
}

func (s *Service) store(ctx context.Context, rec *Recommendation, telegramID *int64) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode recommendation: %w", err)
	}

	record := &Record{
		ID:         rec.ID,
		TelegramID: telegramID,
		Latitude:   rec.Latitude,
		Longitude:  rec.Longitude,
		AreaHa:     rec.AreaHa,
		Payload:    payload,
		CreatedAt:  rec.GeneratedAt,
	}
	if len(rec.TopCrops) > 0 {
		record.TopCrop = rec.TopCrops[0].Suitability.Crop
		record.FinalRating = rec.TopCrops[0].FinalRating
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to store recommendation: %w", err)
	}
	return nil
}

func (s *Service) progress(id uuid.UUID, step int, message string) {
	if s.notifier != nil {
		s.notifier.Publish(id, step, pipelineSteps, message)
	}
}

// sortByFinalRating orders advice descending by final rating, keeping
// the provisional suitability order for ties.
func sortByFinalRating(advice []CropAdvice) {
	sort.SliceStable(advice, func(i, j int) bool {
		return advice[i].FinalRating > advice[j].FinalRating
	})
}
